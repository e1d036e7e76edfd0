package catalog

import (
	"context"
	"errors"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/Domenick1991/agentbooking/internal/repository"
	"go.uber.org/zap"
)

type CatalogUseCase interface {
	ListAgents(ctx context.Context) ([]domain.Agent, error)
	FetchAgent(ctx context.Context, id string) (*domain.Agent, error)
}

type AgentCache interface {
	GetAgent(ctx context.Context, id string) (*domain.Agent, error)
	SetAgent(ctx context.Context, agent domain.Agent) error
	GetAgents(ctx context.Context) ([]domain.Agent, error)
	SetAgents(ctx context.Context, agents []domain.Agent) error
}

// CatalogService reads agents through the cache. Cache failures are logged
// and fall through to the repository.
type CatalogService struct {
	repo   repository.AgentRepository
	cache  AgentCache
	logger *zap.Logger
}

func NewCatalogService(repo repository.AgentRepository, cache AgentCache, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, cache: cache, logger: logger}
}

func (s *CatalogService) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	if s.cache != nil {
		cached, err := s.cache.GetAgents(ctx)
		if err != nil {
			s.logger.Warn("agent list cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	agents, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.NewTransientError("list agents", err)
	}
	if s.cache != nil {
		if err := s.cache.SetAgents(ctx, agents); err != nil {
			s.logger.Warn("agent list cache write failed", zap.Error(err))
		}
	}
	return agents, nil
}

func (s *CatalogService) FetchAgent(ctx context.Context, id string) (*domain.Agent, error) {
	if id == "" {
		return nil, domain.NewValidationError("agentId", "is required")
	}
	if s.cache != nil {
		cached, err := s.cache.GetAgent(ctx, id)
		if err != nil {
			s.logger.Warn("agent cache read failed", zap.String("agent_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	agent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAgentNotFound) {
			return nil, err
		}
		return nil, domain.NewTransientError("fetch agent", err)
	}
	if s.cache != nil {
		if err := s.cache.SetAgent(ctx, *agent); err != nil {
			s.logger.Warn("agent cache write failed", zap.String("agent_id", id), zap.Error(err))
		}
	}
	return agent, nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
