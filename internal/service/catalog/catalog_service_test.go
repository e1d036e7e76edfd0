package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

type MockAgentCache struct {
	mock.Mock
}

func (m *MockAgentCache) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockAgentCache) SetAgent(ctx context.Context, agent domain.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentCache) GetAgents(ctx context.Context) ([]domain.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agent), args.Error(1)
}

func (m *MockAgentCache) SetAgents(ctx context.Context, agents []domain.Agent) error {
	args := m.Called(ctx, agents)
	return args.Error(0)
}

var sarah = domain.Agent{ID: "1", Name: "Sarah Johnson", Service: "Hair Styling", BasePrice: 80}

func TestCatalogService_FetchAgent_CacheHit(t *testing.T) {
	repo := &MockAgentRepository{}
	cache := &MockAgentCache{}
	service := NewCatalogService(repo, cache, nil)
	ctx := context.Background()

	cache.On("GetAgent", ctx, "1").Return(&sarah, nil).Once()

	agent, err := service.FetchAgent(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", agent.Name)

	cache.AssertExpectations(t)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCatalogService_FetchAgent_CacheMiss(t *testing.T) {
	repo := &MockAgentRepository{}
	cache := &MockAgentCache{}
	service := NewCatalogService(repo, cache, nil)
	ctx := context.Background()

	cache.On("GetAgent", ctx, "1").Return(nil, nil).Once()
	repo.On("GetByID", ctx, "1").Return(&sarah, nil).Once()
	cache.On("SetAgent", ctx, sarah).Return(nil).Once()

	agent, err := service.FetchAgent(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 80.0, agent.BasePrice)

	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCatalogService_FetchAgent_Errors(t *testing.T) {
	ctx := context.Background()

	repo := &MockAgentRepository{}
	service := NewCatalogService(repo, nil, nil)
	repo.On("GetByID", ctx, "9").Return(nil, domain.ErrAgentNotFound).Once()
	_, err := service.FetchAgent(ctx, "9")
	assert.ErrorIs(t, err, domain.ErrAgentNotFound)
	assert.False(t, domain.IsTransient(err))

	repo.On("GetByID", ctx, "1").Return(nil, errors.New("connection refused")).Once()
	_, err = service.FetchAgent(ctx, "1")
	assert.True(t, domain.IsTransient(err))

	_, err = service.FetchAgent(ctx, "")
	assert.True(t, domain.IsValidation(err))

	repo.AssertExpectations(t)
}

func TestCatalogService_FetchAgent_CacheFailureFallsThrough(t *testing.T) {
	repo := &MockAgentRepository{}
	cache := &MockAgentCache{}
	service := NewCatalogService(repo, cache, nil)
	ctx := context.Background()

	cache.On("GetAgent", ctx, "1").Return(nil, errors.New("redis down")).Once()
	repo.On("GetByID", ctx, "1").Return(&sarah, nil).Once()
	cache.On("SetAgent", ctx, sarah).Return(errors.New("redis down")).Once()

	agent, err := service.FetchAgent(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", agent.ID)
}

func TestCatalogService_ListAgents(t *testing.T) {
	repo := &MockAgentRepository{}
	cache := &MockAgentCache{}
	service := NewCatalogService(repo, cache, nil)
	ctx := context.Background()

	agents := []domain.Agent{sarah}
	cache.On("GetAgents", ctx).Return(nil, nil).Once()
	repo.On("List", ctx).Return(agents, nil).Once()
	cache.On("SetAgents", ctx, agents).Return(nil).Once()

	result, err := service.ListAgents(ctx)
	require.NoError(t, err)
	assert.Equal(t, agents, result)

	cache.On("GetAgents", ctx).Return(agents, nil).Once()
	result, err = service.ListAgents(ctx)
	require.NoError(t, err)
	assert.Len(t, result, 1)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
