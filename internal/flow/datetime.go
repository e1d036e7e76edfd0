package flow

import (
	"fmt"

	"github.com/Domenick1991/agentbooking/internal/domain"
)

// DateTimeSelection is the single-select state of the date and time axes.
type DateTimeSelection struct {
	DateID string `json:"dateId"`
	Time   string `json:"time"`
}

func (s DateTimeSelection) CanProceed() bool {
	return s.DateID != "" && s.Time != ""
}

// SelectDateTime forwards agentId and serviceName unchanged and adds the
// composed "<ISO-date> at <time>" string.
func SelectDateTime(prior domain.Draft, sel DateTimeSelection) (domain.Draft, error) {
	if err := requireService(prior); err != nil {
		return domain.Draft{}, err
	}
	if sel.DateID == "" {
		return domain.Draft{}, domain.NewValidationError("dateId", "a date must be selected")
	}
	if sel.Time == "" {
		return domain.Draft{}, domain.NewValidationError("time", "a time must be selected")
	}

	date, ok := findDate(sel.DateID)
	if !ok {
		return domain.Draft{}, domain.NewValidationError("dateId", fmt.Sprintf("unknown date option %q", sel.DateID))
	}
	if !knownTime(sel.Time) {
		return domain.Draft{}, domain.NewValidationError("time", fmt.Sprintf("unknown time option %q", sel.Time))
	}

	return domain.Draft{
		AgentID:     prior.AgentID,
		ServiceName: prior.ServiceName,
		DateTime:    FormatDateTime(date.FullDate, sel.Time),
	}, nil
}

func FormatDateTime(isoDate, timeLabel string) string {
	return isoDate + " at " + timeLabel
}

func requireService(d domain.Draft) error {
	if d.AgentID == "" {
		return domain.NewValidationError("agentId", "is required")
	}
	if d.ServiceName == "" {
		return domain.NewValidationError("serviceName", "is required")
	}
	return nil
}

func findDate(id string) (domain.DateOption, bool) {
	for _, d := range domain.DateOptions {
		if d.ID == id {
			return d, true
		}
	}
	return domain.DateOption{}, false
}

func knownTime(label string) bool {
	for _, t := range domain.TimeOptions {
		if t == label {
			return true
		}
	}
	return false
}
