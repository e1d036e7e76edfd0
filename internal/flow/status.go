package flow

import (
	"github.com/Domenick1991/agentbooking/internal/domain"
)

var trackerSteps = []struct {
	status      domain.BookingStatus
	title       string
	description string
}{
	{domain.BookingStatusBooked, "Booked", "Your booking is confirmed"},
	{domain.BookingStatusInProgress, "In Progress", "Service is being provided"},
	{domain.BookingStatusCompleted, "Completed", "Service completed successfully"},
}

func progress(status domain.BookingStatus) int {
	for i, step := range trackerSteps {
		if step.status == status {
			return i + 1
		}
	}
	return 0
}

// Tracker renders the 3-step progress indicator for a stored status. A freshly
// paid booking has only the first step completed.
func Tracker(status domain.BookingStatus) []domain.StatusStep {
	reached := progress(status)
	steps := make([]domain.StatusStep, 0, len(trackerSteps))
	for i, step := range trackerSteps {
		steps = append(steps, domain.StatusStep{
			ID:          i + 1,
			Title:       step.title,
			Description: step.description,
			Completed:   i < reached,
		})
	}
	return steps
}

var statusTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingStatusBooked:     {domain.BookingStatusInProgress, domain.BookingStatusCancelled},
	domain.BookingStatusInProgress: {domain.BookingStatusCompleted},
}

func CanTransition(from, to domain.BookingStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
