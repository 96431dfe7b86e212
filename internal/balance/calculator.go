package balance

import (
	"time"

	balanceerrors "go-leaveflow/internal/balance/errors"
)

// DefaultAnnualCap is the institution-wide yearly leave allowance in
// days, used when LEAVE_ANNUAL_CAP is not configured.
const DefaultAnnualCap = 10

type DateRange struct {
	Start time.Time
	End   time.Time
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysInRange counts whole calendar days in an inclusive range, so a
// single-day leave counts as 1. Time-of-day is ignored.
func DaysInRange(start, end time.Time) (int, error) {
	s := truncateToDay(start)
	e := truncateToDay(end)

	if e.Before(s) {
		return 0, balanceerrors.ErrInvalidRange
	}

	return int(e.Sub(s).Hours()/24) + 1, nil
}

// YearlyUsage sums the inclusive day counts of the given ranges. The
// caller is responsible for supplying only approved requests of the
// target year; this function just adds.
func YearlyUsage(ranges []DateRange) int {
	total := 0
	for _, r := range ranges {
		days, err := DaysInRange(r.Start, r.End)
		if err != nil {
			continue // inverted ranges can never be stored
		}
		total += days
	}
	return total
}

// Remaining may be negative when usage exceeds the cap. Callers must
// surface the overage instead of clamping it away.
func Remaining(cap, usage int) int {
	return cap - usage
}
