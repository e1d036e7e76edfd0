package flow

import (
	"github.com/Domenick1991/agentbooking/internal/domain"
)

// Pricing carries the fixed parts of the price breakdown.
type Pricing struct {
	DurationLabel string
	Tax           float64
	TravelFee     float64
}

func DefaultPricing() Pricing {
	return Pricing{DurationLabel: "2 hours", Tax: 10, TravelFee: 20}
}

// TravelFeeFor depends on the option identity only.
func (p Pricing) TravelFeeFor(kind domain.LocationKind) float64 {
	if kind == domain.LocationHome {
		return p.TravelFee
	}
	return 0
}

// Summarize finalizes a complete draft into the priced BookingData.
func (p Pricing) Summarize(d domain.Draft, agent domain.Agent) (domain.BookingData, error) {
	if err := requireService(d); err != nil {
		return domain.BookingData{}, err
	}
	if d.DateTime == "" {
		return domain.BookingData{}, domain.NewValidationError("dateTime", "is required")
	}
	if !d.Location.Valid() {
		return domain.BookingData{}, domain.NewValidationError("location", "is required")
	}
	if agent.ID != d.AgentID {
		return domain.BookingData{}, domain.NewValidationError("agentId", "does not match the catalog agent")
	}

	return domain.BookingData{
		AgentID:   d.AgentID,
		AgentName: agent.Name,
		Service:   d.ServiceName,
		DateTime:  d.DateTime,
		Location:  d.Location,
		Duration:  p.DurationLabel,
		BasePrice: agent.BasePrice,
		TravelFee: p.TravelFeeFor(d.Location),
		Tax:       p.Tax,
	}, nil
}

// PriceLine is one row of the itemized breakdown.
type PriceLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Breakdown lists the price lines shown on the summary; the travel fee row is
// omitted when it is zero.
func Breakdown(data domain.BookingData) []PriceLine {
	lines := []PriceLine{{Label: "Service Fee", Amount: data.BasePrice}}
	if data.TravelFee > 0 {
		lines = append(lines, PriceLine{Label: "Travel Fee", Amount: data.TravelFee})
	}
	return append(lines, PriceLine{Label: "Tax", Amount: data.Tax})
}
