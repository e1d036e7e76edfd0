package flow

import (
	"fmt"

	"github.com/Domenick1991/agentbooking/internal/domain"
)

type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
	Name   string `json:"name"`
	// Token is a processor-side payment method reference produced by the
	// client SDK. The mock processor ignores it.
	Token string `json:"token,omitempty"`
}

// String keeps card data out of logs and error messages.
func (c CardDetails) String() string {
	return fmt.Sprintf("card(%s)", maskNumber(c.Number))
}

type MobileDetails struct {
	PhoneNumber string `json:"phoneNumber"`
}

func (m MobileDetails) String() string {
	return fmt.Sprintf("mobile(%s)", maskNumber(m.PhoneNumber))
}

// PaymentSelection is the state of the payment stage. Only the method gates
// the pay action; the form fields are never inspected here.
type PaymentSelection struct {
	Method domain.PaymentMethod `json:"method"`
	Card   *CardDetails         `json:"card,omitempty"`
	Mobile *MobileDetails       `json:"mobile,omitempty"`
}

func (s PaymentSelection) CanPay() bool {
	return s.Method.Valid()
}

func (s PaymentSelection) Validate() error {
	if s.Method == "" {
		return domain.NewValidationError("method", "a payment method must be selected")
	}
	if !s.Method.Valid() {
		return domain.NewValidationError("method", fmt.Sprintf("unsupported payment method %q", s.Method))
	}
	return nil
}

// AmountDue is what the payment stage charges. It is the same computation the
// summary stage displays.
func AmountDue(data domain.BookingData) float64 {
	return data.Total()
}

func maskNumber(n string) string {
	if len(n) <= 4 {
		return "****"
	}
	return "****" + n[len(n)-4:]
}
