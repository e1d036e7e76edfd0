package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// PaymentIntents is the part of the Stripe API the processor uses.
type PaymentIntents interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeProcessor charges cards through a confirmed PaymentIntent. Card data
// never reaches the server in raw form; the client sends a payment method
// token.
type StripeProcessor struct {
	intents  PaymentIntents
	currency string
}

func NewStripeProcessor(key, currency string) *StripeProcessor {
	sc := &client.API{}
	sc.Init(key, nil)
	return NewStripeProcessorWithClient(sc.PaymentIntents, currency)
}

func NewStripeProcessorWithClient(intents PaymentIntents, currency string) *StripeProcessor {
	return &StripeProcessor{intents: intents, currency: strings.ToLower(currency)}
}

func (p *StripeProcessor) SubmitPayment(ctx context.Context, req Request) (*Result, error) {
	if req.Method != domain.PaymentMethodCard {
		return nil, domain.NewValidationError("method", fmt.Sprintf("stripe cannot process %q payments", req.Method))
	}
	if req.Card == nil || req.Card.Token == "" {
		return nil, domain.NewValidationError("card.token", "a card payment token is required")
	}
	if req.Amount <= 0 {
		return nil, domain.NewValidationError("amount", "must be positive")
	}

	currency := req.Currency
	if currency == "" {
		currency = p.currency
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(toMinorUnits(req.Amount)),
		Currency:           stripe.String(currency),
		PaymentMethod:      stripe.String(req.Card.Token),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Confirm:            stripe.Bool(true),
	}
	params.Context = ctx
	if req.Reference != "" {
		params.SetIdempotencyKey(req.Reference)
		params.AddMetadata("reference", req.Reference)
	}

	intent, err := p.intents.New(params)
	if err != nil {
		return classifyStripeError(err)
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusProcessing:
		return &Result{Success: true, TransactionID: intent.ID}, nil
	case stripe.PaymentIntentStatusRequiresAction:
		return &Result{Success: false, TransactionID: intent.ID, Reason: "additional authentication required"}, nil
	default:
		return &Result{Success: false, TransactionID: intent.ID, Reason: fmt.Sprintf("payment not completed: %s", intent.Status)}, nil
	}
}

func classifyStripeError(err error) (*Result, error) {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return nil, err
	}
	switch stripeErr.Type {
	case stripe.ErrorTypeCard:
		return &Result{Success: false, Reason: stripeErr.Msg}, nil
	case stripe.ErrorTypeInvalidRequest, stripe.ErrorTypeIdempotency:
		return nil, domain.NewFatalError("stripe", stripeErr.Msg)
	default:
		return nil, err
	}
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

var _ Processor = (*StripeProcessor)(nil)
