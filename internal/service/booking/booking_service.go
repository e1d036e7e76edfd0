package booking

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/Domenick1991/agentbooking/internal/flow"
	"github.com/Domenick1991/agentbooking/internal/kafka"
	"github.com/Domenick1991/agentbooking/internal/payment"
	"github.com/Domenick1991/agentbooking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	StartFlow(ctx context.Context, agentID string) (*flow.Session, error)
	GetSession(ctx context.Context, sessionID string) (*flow.Session, error)
	SelectDateTime(ctx context.Context, sessionID string, input DateTimeInput) (*flow.Session, error)
	ChooseLocation(ctx context.Context, sessionID string, input LocationInput) (*flow.Session, error)
	ConfirmSummary(ctx context.Context, sessionID string) (*flow.Session, error)
	Back(ctx context.Context, sessionID string) (*flow.Session, error)
	Pay(ctx context.Context, sessionID string, input PaymentInput) (*domain.Booking, error)
	CancelFlow(ctx context.Context, sessionID string) error
	GetBookingStatus(ctx context.Context, bookingID string) (*StatusView, error)
	SubmitReview(ctx context.Context, bookingID string, input ReviewInput) (*domain.Review, error)
	AdvanceBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error)
}

type SessionStore interface {
	SaveSession(ctx context.Context, session *flow.Session, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (*flow.Session, error)
	DeleteSession(ctx context.Context, id string) error
	AcquirePaymentLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
	ReleasePaymentLock(ctx context.Context, sessionID string) error
}

type AgentCatalog interface {
	FetchAgent(ctx context.Context, id string) (*domain.Agent, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Metrics interface {
	StageEntered(stage string)
	PaymentAttempted(method, outcome string)
	ReviewSubmitted()
}

type noopMetrics struct{}

func (noopMetrics) StageEntered(string)             {}
func (noopMetrics) PaymentAttempted(string, string) {}
func (noopMetrics) ReviewSubmitted()                {}

type DateTimeInput struct {
	DateID string `json:"dateId"`
	Time   string `json:"time"`
}

type LocationInput struct {
	Location domain.LocationKind `json:"location"`
}

type PaymentInput struct {
	Method domain.PaymentMethod `json:"method"`
	Card   *flow.CardDetails    `json:"card,omitempty"`
	Mobile *flow.MobileDetails  `json:"mobile,omitempty"`
}

type ReviewInput struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// StatusView is what the status stage renders for a stored booking.
type StatusView struct {
	Booking *domain.Booking
	Steps   []domain.StatusStep
}

type BookingService struct {
	sessions           SessionStore
	catalog            AgentCatalog
	bookings           repository.BookingRepository
	reviews            repository.ReviewRepository
	payments           payment.Processor
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	pricing            flow.Pricing
	idPrefix           string
	currency           string
	sessionTTL         time.Duration
	payLockTTL         time.Duration
	logger             *zap.Logger
	metrics            Metrics
	now                func() time.Time
	newID              func() string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithPricing(p flow.Pricing) BookingServiceOption {
	return func(s *BookingService) {
		s.pricing = p
	}
}

func WithBookingIDPrefix(prefix string) BookingServiceOption {
	return func(s *BookingService) {
		s.idPrefix = prefix
	}
}

func WithCurrency(currency string) BookingServiceOption {
	return func(s *BookingService) {
		s.currency = currency
	}
}

func WithSessionTTL(ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.sessionTTL = ttl
	}
}

func WithLogger(logger *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

func WithMetrics(m Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	sessions SessionStore,
	catalog AgentCatalog,
	bookings repository.BookingRepository,
	reviews repository.ReviewRepository,
	payments payment.Processor,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		sessions:     sessions,
		catalog:      catalog,
		bookings:     bookings,
		reviews:      reviews,
		payments:     payments,
		producer:     producer,
		bookingTopic: bookingTopic,
		pricing:      flow.DefaultPricing(),
		idPrefix:     "BK",
		currency:     "usd",
		sessionTTL:   30 * time.Minute,
		payLockTTL:   time.Minute,
		logger:       zap.NewNop(),
		metrics:      noopMetrics{},
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) StartFlow(ctx context.Context, agentID string) (*flow.Session, error) {
	agent, err := s.catalog.FetchAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &flow.Session{
		ID:        s.newID(),
		Stack:     flow.NewStack(*agent),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	s.metrics.StageEntered(string(flow.StageDateTime))
	s.logger.Info("booking flow started",
		zap.String("session_id", session.ID),
		zap.String("agent_id", agent.ID),
	)
	return session, nil
}

func (s *BookingService) GetSession(ctx context.Context, sessionID string) (*flow.Session, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, domain.NewTransientError("load session", err)
	}
	return session, nil
}

func (s *BookingService) SelectDateTime(ctx context.Context, sessionID string, input DateTimeInput) (*flow.Session, error) {
	session, top, err := s.atStage(ctx, sessionID, flow.StageDateTime)
	if err != nil {
		return nil, err
	}

	draft, err := flow.SelectDateTime(top.Draft, flow.DateTimeSelection{DateID: input.DateID, Time: input.Time})
	if err != nil {
		return nil, err
	}
	return s.advance(ctx, session, flow.Frame{Stage: flow.StageLocation, Draft: draft})
}

func (s *BookingService) ChooseLocation(ctx context.Context, sessionID string, input LocationInput) (*flow.Session, error) {
	session, top, err := s.atStage(ctx, sessionID, flow.StageLocation)
	if err != nil {
		return nil, err
	}

	draft, err := flow.ChooseLocation(top.Draft, flow.LocationSelection{Location: input.Location})
	if err != nil {
		return nil, err
	}
	agent, err := s.catalog.FetchAgent(ctx, draft.AgentID)
	if err != nil {
		return nil, err
	}
	data, err := s.pricing.Summarize(draft, *agent)
	if err != nil {
		return nil, err
	}
	return s.advance(ctx, session, flow.Frame{Stage: flow.StageSummary, Draft: draft, BookingData: &data})
}

func (s *BookingService) ConfirmSummary(ctx context.Context, sessionID string) (*flow.Session, error) {
	session, top, err := s.atStage(ctx, sessionID, flow.StageSummary)
	if err != nil {
		return nil, err
	}
	if top.BookingData == nil {
		return nil, domain.NewValidationError("bookingData", "is required")
	}
	return s.advance(ctx, session, flow.Frame{Stage: flow.StagePayment, Draft: top.Draft, BookingData: top.BookingData})
}

// Back pops the current stage. Leaving the date and time stage returns to
// service selection, which ends the session.
func (s *BookingService) Back(ctx context.Context, sessionID string) (*flow.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	stack, err := session.Stack.Pop()
	if err != nil {
		return nil, err
	}

	session.Stack = stack
	session.UpdatedAt = s.now()
	if len(stack) == 0 {
		if err := s.sessions.DeleteSession(ctx, session.ID); err != nil {
			return nil, domain.NewTransientError("drop session", err)
		}
		return session, nil
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Pay charges the amount of the payment frame and, on success, stores the
// booking and enters the status stage. On any failure the session stays on
// the payment stage with its booking data intact.
//
// The booking id and the captured transaction are recorded on the payment
// frame before the booking is stored, so a retry after a storage failure
// finishes the same booking without charging again.
func (s *BookingService) Pay(ctx context.Context, sessionID string, input PaymentInput) (*domain.Booking, error) {
	selection := flow.PaymentSelection{Method: input.Method, Card: input.Card, Mobile: input.Mobile}
	if err := selection.Validate(); err != nil {
		return nil, err
	}

	acquired, err := s.sessions.AcquirePaymentLock(ctx, sessionID, s.payLockTTL)
	if err != nil {
		return nil, domain.NewTransientError("lock payment", err)
	}
	if !acquired {
		return nil, domain.ErrPaymentInProgress
	}
	defer func() {
		if err := s.sessions.ReleasePaymentLock(context.WithoutCancel(ctx), sessionID); err != nil {
			s.logger.Warn("failed to release payment lock", zap.String("session_id", sessionID), zap.Error(err))
		}
	}()

	session, top, err := s.atStage(ctx, sessionID, flow.StagePayment)
	if err != nil {
		return nil, err
	}
	if top.BookingData == nil {
		return nil, domain.NewValidationError("bookingData", "is required")
	}
	data := *top.BookingData
	amount := flow.AmountDue(data)

	if top.BookingID == "" {
		top.BookingID = flow.NewBookingID(s.idPrefix, s.now())
		if session, err = s.replaceTop(ctx, session, top); err != nil {
			return nil, err
		}
	}

	if top.TransactionID == "" {
		transactionID, err := s.charge(ctx, sessionID, input, amount, top.BookingID)
		if err != nil {
			if !domain.IsTransient(err) {
				// A rejected attempt never reached the processor's ledger.
				top.BookingID = ""
				if _, resetErr := s.replaceTop(ctx, session, top); resetErr != nil {
					s.logger.Warn("failed to reset payment attempt", zap.String("session_id", sessionID), zap.Error(resetErr))
				}
			}
			return nil, err
		}
		top.TransactionID = transactionID
		if session, err = s.replaceTop(ctx, session, top); err != nil {
			s.logger.Warn("failed to record captured payment",
				zap.String("session_id", sessionID),
				zap.String("transaction_id", transactionID),
				zap.Error(err),
			)
		}
	}

	booking, err := s.storeBooking(ctx, top, input.Method, amount)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingPaid, booking, 0)

	if _, err := s.advance(ctx, session, flow.Frame{
		Stage:       flow.StageStatus,
		Draft:       top.Draft,
		BookingData: &data,
		BookingID:   booking.ID,
	}); err != nil {
		// The booking exists; the client can still reach it by id.
		s.logger.Warn("failed to enter status stage", zap.String("session_id", sessionID), zap.Error(err))
	}
	return booking, nil
}

func (s *BookingService) charge(ctx context.Context, sessionID string, input PaymentInput, amount float64, reference string) (string, error) {
	result, err := s.payments.SubmitPayment(ctx, payment.Request{
		Method:    input.Method,
		Card:      input.Card,
		Mobile:    input.Mobile,
		Amount:    amount,
		Currency:  s.currency,
		Reference: reference,
	})
	if err != nil {
		if domain.IsValidation(err) || domain.IsFatal(err) {
			s.metrics.PaymentAttempted(string(input.Method), "rejected")
			return "", err
		}
		s.metrics.PaymentAttempted(string(input.Method), "error")
		s.logger.Warn("payment submission failed",
			zap.String("session_id", sessionID),
			zap.String("method", string(input.Method)),
			zap.Error(err),
		)
		return "", domain.NewTransientError("submit payment", err)
	}
	if !result.Success {
		s.metrics.PaymentAttempted(string(input.Method), "declined")
		return "", domain.NewFatalError("submit payment", result.Reason)
	}
	s.metrics.PaymentAttempted(string(input.Method), "success")
	return result.TransactionID, nil
}

// storeBooking persists the paid booking of the payment frame. A booking
// already stored by an earlier attempt is returned as is.
func (s *BookingService) storeBooking(ctx context.Context, top flow.Frame, method domain.PaymentMethod, amount float64) (*domain.Booking, error) {
	now := s.now()
	booking := &domain.Booking{
		ID:            top.BookingID,
		Data:          *top.BookingData,
		PaymentMethod: method,
		TransactionID: top.TransactionID,
		Amount:        amount,
		Status:        domain.BookingStatusBooked,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := s.bookings.Create(ctx, booking)
	if err == nil {
		return booking, nil
	}
	if existing, getErr := s.bookings.GetByID(ctx, top.BookingID); getErr == nil && existing.TransactionID == top.TransactionID {
		return existing, nil
	}
	s.logger.Error("payment captured but booking was not stored",
		zap.String("booking_id", top.BookingID),
		zap.String("transaction_id", top.TransactionID),
		zap.Error(err),
	)
	return nil, domain.NewTransientError("store booking", err)
}

func (s *BookingService) CancelFlow(ctx context.Context, sessionID string) error {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return err
	}
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return domain.NewTransientError("drop session", err)
	}
	return nil
}

func (s *BookingService) GetBookingStatus(ctx context.Context, bookingID string) (*StatusView, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &StatusView{Booking: booking, Steps: flow.Tracker(booking.Status)}, nil
}

func (s *BookingService) SubmitReview(ctx context.Context, bookingID string, input ReviewInput) (*domain.Review, error) {
	form := flow.ReviewForm{Rating: input.Rating, Review: input.Review}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, domain.NewValidationError("bookingId", "cancelled bookings cannot be reviewed")
	}

	review := &domain.Review{
		BookingID: booking.ID,
		AgentID:   booking.Data.AgentID,
		Rating:    form.Rating,
		Text:      form.Review,
		CreatedAt: s.now(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, domain.NewTransientError("store review", err)
	}
	s.metrics.ReviewSubmitted()
	s.publish(ctx, kafka.EventReviewSubmitted, booking, review.Rating)
	return review, nil
}

func (s *BookingService) AdvanceBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	current, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !flow.CanTransition(current.Status, status) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, current.Status, status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrBookingNotFound) {
			return nil, err
		}
		return nil, domain.NewTransientError("update booking status", err)
	}
	s.publish(ctx, kafka.EventBookingStatusChanged, updated, 0)
	return updated, nil
}

func (s *BookingService) atStage(ctx context.Context, sessionID string, stage flow.Stage) (*flow.Session, flow.Frame, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, flow.Frame{}, err
	}
	top, ok := session.Current()
	if !ok || top.Stage != stage {
		return nil, flow.Frame{}, domain.ErrWrongStage
	}
	return session, top, nil
}

func (s *BookingService) advance(ctx context.Context, session *flow.Session, frame flow.Frame) (*flow.Session, error) {
	next := *session
	next.Stack = session.Stack.Push(frame)
	next.UpdatedAt = s.now()
	if err := s.save(ctx, &next); err != nil {
		return nil, err
	}
	s.metrics.StageEntered(string(frame.Stage))
	return &next, nil
}

// replaceTop saves the session with its top frame swapped for frame.
func (s *BookingService) replaceTop(ctx context.Context, session *flow.Session, frame flow.Frame) (*flow.Session, error) {
	next := *session
	next.Stack = session.Stack.ReplaceTop(frame)
	next.UpdatedAt = s.now()
	if err := s.save(ctx, &next); err != nil {
		return session, err
	}
	return &next, nil
}

func (s *BookingService) save(ctx context.Context, session *flow.Session) error {
	if err := s.sessions.SaveSession(ctx, session, s.sessionTTL); err != nil {
		return domain.NewTransientError("save session", err)
	}
	return nil
}

func (s *BookingService) loadBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, domain.NewValidationError("bookingId", "is required")
	}
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return nil, err
		}
		return nil, domain.NewTransientError("load booking", err)
	}
	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, rating int) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		AgentID:       booking.Data.AgentID,
		AgentName:     booking.Data.AgentName,
		Service:       booking.Data.Service,
		DateTime:      booking.Data.DateTime,
		Location:      string(booking.Data.Location),
		Amount:        booking.Amount,
		PaymentMethod: string(booking.PaymentMethod),
		Status:        string(booking.Status),
		Rating:        rating,
		OccurredAt:    s.now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("type", eventType),
			zap.String("booking_id", booking.ID),
			zap.Error(err),
		)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event); err != nil {
			s.logger.Warn("failed to publish notification event",
				zap.String("type", eventType),
				zap.String("booking_id", booking.ID),
				zap.Error(err),
			)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
