package flow

import (
	"fmt"
	"time"
)

// NewBookingID appends the last six digits of the millisecond clock to prefix.
// Uniqueness relies on the time of generation only.
func NewBookingID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%06d", prefix, now.UnixMilli()%1_000_000)
}
