package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AgentRepository interface {
	List(ctx context.Context) ([]domain.Agent, error)
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
}

type PGAgentRepository struct {
	db *pgxpool.Pool
}

func NewAgentRepository(db *pgxpool.Pool) AgentRepository {
	return &PGAgentRepository{db: db}
}

const agentColumns = `id, name, service, base_price::float8, rating::float8, reviews_count, description, services, availability, location`

func (r *PGAgentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	rows, err := r.db.Query(ctx, `SELECT `+agentColumns+` FROM agents ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := make([]domain.Agent, 0)
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, *a)
	}
	return agents, rows.Err()
}

func (r *PGAgentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	a, err := scanAgent(r.db.QueryRow(ctx, `SELECT `+agentColumns+` FROM agents WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAgentNotFound
	}
	return a, err
}

func scanAgent(row pgx.Row) (*domain.Agent, error) {
	var a domain.Agent
	if err := row.Scan(&a.ID, &a.Name, &a.Service, &a.BasePrice, &a.Rating, &a.ReviewsCount, &a.Description, &a.Services, &a.Availability, &a.Location); err != nil {
		return nil, err
	}
	return &a, nil
}

var _ AgentRepository = (*PGAgentRepository)(nil)
