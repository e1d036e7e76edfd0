package payment

import (
	"context"

	"github.com/google/uuid"
)

// MockProcessor accepts every payment without contacting anyone.
type MockProcessor struct {
	newID func() string
}

func NewMockProcessor() *MockProcessor {
	return &MockProcessor{newID: uuid.NewString}
}

func (p *MockProcessor) SubmitPayment(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Result{Success: true, TransactionID: "txn_" + p.newID()}, nil
}

var _ Processor = (*MockProcessor)(nil)
