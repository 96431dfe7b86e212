package balance_test

import (
	"testing"
	"time"

	"go-leaveflow/internal/balance"
	balanceerrors "go-leaveflow/internal/balance/errors"

	"github.com/stretchr/testify/assert"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDaysInRange(t *testing.T) {
	t.Run("single day counts as one", func(t *testing.T) {
		days, err := balance.DaysInRange(day("2025-06-01"), day("2025-06-01"))
		assert.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("inclusive range", func(t *testing.T) {
		days, err := balance.DaysInRange(day("2025-12-15"), day("2025-12-17"))
		assert.NoError(t, err)
		assert.Equal(t, 3, days)
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		start := day("2025-04-10").Add(23 * time.Hour)
		end := day("2025-04-11").Add(1 * time.Minute)
		days, err := balance.DaysInRange(start, end)
		assert.NoError(t, err)
		assert.Equal(t, 2, days)
	})

	t.Run("inverted range fails", func(t *testing.T) {
		_, err := balance.DaysInRange(day("2025-12-17"), day("2025-12-15"))
		assert.ErrorIs(t, err, balanceerrors.ErrInvalidRange)
	})

	t.Run("crosses a year boundary", func(t *testing.T) {
		days, err := balance.DaysInRange(day("2025-12-30"), day("2026-01-02"))
		assert.NoError(t, err)
		assert.Equal(t, 4, days)
	})
}

func TestYearlyUsage(t *testing.T) {
	ranges := []balance.DateRange{
		{Start: day("2025-01-02"), End: day("2025-01-02")},
		{Start: day("2025-03-10"), End: day("2025-03-12")},
	}

	assert.Equal(t, 4, balance.YearlyUsage(ranges))
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, 6, balance.Remaining(10, 4))

	// over-cap stays negative so callers can surface the violation
	assert.Equal(t, -2, balance.Remaining(10, 12))
}
