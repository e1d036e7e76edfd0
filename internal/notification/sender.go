package notification

import (
	"context"
	"fmt"

	"github.com/Domenick1991/agentbooking/internal/kafka"
	"go.uber.org/zap"
)

// Notification is what the client's notifications screen lists.
type Notification struct {
	BookingID string `json:"bookingId"`
	Title     string `json:"title"`
	Message   string `json:"message"`
}

// Sender turns booking events into user notifications. Delivery is a log
// line until a push provider is configured.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	n, ok := Build(event)
	if !ok {
		s.logger.Debug("no notification for event", zap.String("type", event.Type), zap.String("booking_id", event.BookingID))
		return nil
	}
	s.logger.Info("notification sent",
		zap.String("booking_id", n.BookingID),
		zap.String("title", n.Title),
		zap.String("message", n.Message),
	)
	return nil
}

// Build returns false for events that do not notify anyone.
func Build(event kafka.BookingEvent) (Notification, bool) {
	n := Notification{BookingID: event.BookingID}
	switch event.Type {
	case kafka.EventBookingPaid:
		n.Title = "Booking Confirmed"
		n.Message = fmt.Sprintf("Your %s appointment with %s on %s is confirmed. Paid $%.2f via %s.",
			event.Service, event.AgentName, event.DateTime, event.Amount, event.PaymentMethod)
	case kafka.EventBookingStatusChanged:
		switch event.Status {
		case "IN_PROGRESS":
			n.Title = "Service Started"
			n.Message = fmt.Sprintf("%s has started your %s.", event.AgentName, event.Service)
		case "COMPLETED":
			n.Title = "Service Completed"
			n.Message = fmt.Sprintf("Your %s with %s is complete. Leave a review!", event.Service, event.AgentName)
		case "CANCELLED":
			n.Title = "Booking Cancelled"
			n.Message = fmt.Sprintf("Your booking %s was cancelled.", event.BookingID)
		default:
			return Notification{}, false
		}
	case kafka.EventReviewSubmitted:
		n.Title = "New Review"
		n.Message = fmt.Sprintf("%s received a %d-star review.", event.AgentName, event.Rating)
	default:
		return Notification{}, false
	}
	return n, true
}
