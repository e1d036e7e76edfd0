package payment

import (
	"context"
	"fmt"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/Domenick1991/agentbooking/internal/flow"
)

type Request struct {
	Method   domain.PaymentMethod
	Card     *flow.CardDetails
	Mobile   *flow.MobileDetails
	Amount   float64
	Currency string
	// Reference identifies the attempt at the processor and doubles as the
	// idempotency key.
	Reference string
}

// Result is either {Success, TransactionID} or {!Success, Reason}.
type Result struct {
	Success       bool
	TransactionID string
	Reason        string
}

// Processor submits a payment. A returned error means the processor could
// not be reached or misbehaved; a declined payment is a Result with
// Success == false.
type Processor interface {
	SubmitPayment(ctx context.Context, req Request) (*Result, error)
}

// MethodRouter dispatches each request to the processor registered for its
// method.
type MethodRouter struct {
	processors map[domain.PaymentMethod]Processor
}

func NewMethodRouter(processors map[domain.PaymentMethod]Processor) *MethodRouter {
	return &MethodRouter{processors: processors}
}

func (r *MethodRouter) SubmitPayment(ctx context.Context, req Request) (*Result, error) {
	p, ok := r.processors[req.Method]
	if !ok {
		return nil, domain.NewValidationError("method", fmt.Sprintf("unsupported payment method %q", req.Method))
	}
	return p.SubmitPayment(ctx, req)
}

var _ Processor = (*MethodRouter)(nil)
