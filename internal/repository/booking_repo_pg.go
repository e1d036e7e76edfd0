package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, agent_id, agent_name, service, date_time, location, duration,
	base_price::float8, travel_fee::float8, tax::float8, amount::float8,
	payment_method, transaction_id, status, created_at, updated_at`

func (r *PGBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	d := b.Data
	return r.db.QueryRow(ctx, `INSERT INTO bookings
		(id, agent_id, agent_name, service, date_time, location, duration, base_price, travel_fee, tax, amount, payment_method, transaction_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`,
		b.ID, d.AgentID, d.AgentName, d.Service, d.DateTime, string(d.Location), d.Duration,
		d.BasePrice, d.TravelFee, d.Tax, b.Amount, string(b.PaymentMethod), b.TransactionID, string(b.Status)).
		Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

// UpdateStatus only applies when the stored status still equals from, so two
// concurrent transitions cannot both succeed.
func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now()
		WHERE id=$2 AND status=$3 RETURNING `+bookingColumns, string(to), id, string(from)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvalidTransition
	}
	return b, err
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b        domain.Booking
		location string
		method   string
		status   string
	)
	if err := row.Scan(&b.ID, &b.Data.AgentID, &b.Data.AgentName, &b.Data.Service, &b.Data.DateTime, &location, &b.Data.Duration,
		&b.Data.BasePrice, &b.Data.TravelFee, &b.Data.Tax, &b.Amount,
		&method, &b.TransactionID, &status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Data.Location = domain.LocationKind(location)
	b.PaymentMethod = domain.PaymentMethod(method)
	b.Status = domain.BookingStatus(status)
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
