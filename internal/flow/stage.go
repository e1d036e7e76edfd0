// Package flow holds the booking pipeline: each stage is a pure function of
// the record produced by its predecessor and the user's input.
package flow

type Stage string

const (
	// StageServiceSelection is outside the pipeline. A session reports it once
	// the user has backed out of the first in-flow stage.
	StageServiceSelection Stage = "SERVICE_SELECTION"
	StageDateTime         Stage = "SELECT_DATE_TIME"
	StageLocation         Stage = "CHOOSE_LOCATION"
	StageSummary          Stage = "BOOKING_SUMMARY"
	StagePayment          Stage = "PAYMENT"
	StageStatus           Stage = "BOOKING_STATUS"
)
