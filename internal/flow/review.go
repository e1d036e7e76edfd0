package flow

import (
	"github.com/Domenick1991/agentbooking/internal/domain"
)

const (
	MinRating = 1
	MaxRating = 5
)

type ReviewForm struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

func (f ReviewForm) CanSubmit() bool {
	return f.Rating >= MinRating && f.Rating <= MaxRating && f.Review != ""
}

func (f ReviewForm) Validate() error {
	if f.Rating < MinRating || f.Rating > MaxRating {
		return domain.NewValidationError("rating", "must be between 1 and 5")
	}
	if f.Review == "" {
		return domain.NewValidationError("review", "must not be empty")
	}
	return nil
}
