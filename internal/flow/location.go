package flow

import (
	"fmt"

	"github.com/Domenick1991/agentbooking/internal/domain"
)

type LocationSelection struct {
	Location domain.LocationKind `json:"location"`
}

func (s LocationSelection) CanProceed() bool {
	return s.Location != ""
}

// ChooseLocation forwards the prior triple and the chosen option's identifier.
func ChooseLocation(prior domain.Draft, sel LocationSelection) (domain.Draft, error) {
	if err := requireService(prior); err != nil {
		return domain.Draft{}, err
	}
	if prior.DateTime == "" {
		return domain.Draft{}, domain.NewValidationError("dateTime", "is required")
	}
	if !sel.CanProceed() {
		return domain.Draft{}, domain.NewValidationError("location", "a location must be selected")
	}
	if !sel.Location.Valid() {
		return domain.Draft{}, domain.NewValidationError("location", fmt.Sprintf("unknown location option %q", sel.Location))
	}

	next := prior
	next.Location = sel.Location
	return next, nil
}
