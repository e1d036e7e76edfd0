package repository

import (
	"context"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
}

type PGReviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) ReviewRepository {
	return &PGReviewRepository{db: db}
}

func (r *PGReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return r.db.QueryRow(ctx, `INSERT INTO reviews (booking_id, agent_id, rating, review)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		review.BookingID, review.AgentID, review.Rating, review.Text).
		Scan(&review.ID, &review.CreatedAt)
}

var _ ReviewRepository = (*PGReviewRepository)(nil)
