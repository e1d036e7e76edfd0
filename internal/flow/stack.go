package flow

import (
	"time"

	"github.com/Domenick1991/agentbooking/internal/domain"
)

// Frame is one entry of the navigation stack: the parameter record a stage
// was entered with. On the payment frame BookingID and TransactionID record
// the attempt in progress, so a retry reuses the same processor idempotency
// key and never charges a second time once TransactionID is set.
type Frame struct {
	Stage         Stage               `json:"stage"`
	Draft         domain.Draft        `json:"draft"`
	BookingData   *domain.BookingData `json:"bookingData,omitempty"`
	BookingID     string              `json:"bookingId,omitempty"`
	TransactionID string              `json:"transactionId,omitempty"`
}

// Stack is never mutated in place; Push and Pop return new stacks so an
// earlier frame cannot observe what later stages did.
type Stack []Frame

func NewStack(agent domain.Agent) Stack {
	return Stack{{
		Stage: StageDateTime,
		Draft: domain.Draft{AgentID: agent.ID, ServiceName: agent.Service},
	}}
}

func (s Stack) Top() (Frame, bool) {
	if len(s) == 0 {
		return Frame{}, false
	}
	return s[len(s)-1], true
}

func (s Stack) Push(f Frame) Stack {
	next := make(Stack, len(s), len(s)+1)
	copy(next, s)
	if f.BookingData != nil {
		data := *f.BookingData
		f.BookingData = &data
	}
	return append(next, f)
}

// ReplaceTop returns a copy of the stack with its top frame swapped for f.
func (s Stack) ReplaceTop(f Frame) Stack {
	if len(s) == 0 {
		return s.Push(f)
	}
	return s[:len(s)-1:len(s)-1].Push(f)
}

// Pop leaves the current stage. Popping the first in-flow stage yields an
// empty stack (back to service selection); the status stage cannot be left
// backwards.
func (s Stack) Pop() (Stack, error) {
	top, ok := s.Top()
	if !ok || top.Stage == StageStatus {
		return s, domain.ErrCannotGoBack
	}
	next := make(Stack, len(s)-1)
	copy(next, s[:len(s)-1])
	return next, nil
}

// Session is the server-side navigation stack of one booking flow.
type Session struct {
	ID        string    `json:"id"`
	Stack     Stack     `json:"stack"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Session) Stage() Stage {
	top, ok := s.Stack.Top()
	if !ok {
		return StageServiceSelection
	}
	return top.Stage
}

func (s *Session) Current() (Frame, bool) {
	return s.Stack.Top()
}
