package api

import (
	"context"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/Domenick1991/agentbooking/internal/flow"
	"github.com/Domenick1991/agentbooking/internal/service/booking"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) session(args mock.Arguments) (*flow.Session, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flow.Session), args.Error(1)
}

func (m *MockBookingUseCase) StartFlow(ctx context.Context, agentID string) (*flow.Session, error) {
	return m.session(m.Called(ctx, agentID))
}

func (m *MockBookingUseCase) GetSession(ctx context.Context, sessionID string) (*flow.Session, error) {
	return m.session(m.Called(ctx, sessionID))
}

func (m *MockBookingUseCase) SelectDateTime(ctx context.Context, sessionID string, input booking.DateTimeInput) (*flow.Session, error) {
	return m.session(m.Called(ctx, sessionID, input))
}

func (m *MockBookingUseCase) ChooseLocation(ctx context.Context, sessionID string, input booking.LocationInput) (*flow.Session, error) {
	return m.session(m.Called(ctx, sessionID, input))
}

func (m *MockBookingUseCase) ConfirmSummary(ctx context.Context, sessionID string) (*flow.Session, error) {
	return m.session(m.Called(ctx, sessionID))
}

func (m *MockBookingUseCase) Back(ctx context.Context, sessionID string) (*flow.Session, error) {
	return m.session(m.Called(ctx, sessionID))
}

func (m *MockBookingUseCase) Pay(ctx context.Context, sessionID string, input booking.PaymentInput) (*domain.Booking, error) {
	args := m.Called(ctx, sessionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelFlow(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockBookingUseCase) GetBookingStatus(ctx context.Context, bookingID string) (*booking.StatusView, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.StatusView), args.Error(1)
}

func (m *MockBookingUseCase) SubmitReview(ctx context.Context, bookingID string, input booking.ReviewInput) (*domain.Review, error) {
	args := m.Called(ctx, bookingID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockBookingUseCase) AdvanceBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agent), args.Error(1)
}

func (m *MockCatalogUseCase) FetchAgent(ctx context.Context, id string) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}
