package leave

import (
	"math"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
)

type QuotaCalculator struct {
}

func NewQuotaCalculator() *QuotaCalculator {
	return &QuotaCalculator{}
}

// Prorate returns the allotment of a finite leave type for year. Hires during
// year get round(default * monthsRemaining / 12) where a January hire keeps
// all twelve months; earlier hires and unknown hire dates get the full
// default.
func (c *QuotaCalculator) Prorate(t leave.LeaveType, hireDate *time.Time, year int) int {
	if t.Unlimited() {
		return 0
	}
	if hireDate == nil || hireDate.Year() < year {
		return t.DefaultDays
	}
	if hireDate.Year() > year {
		return 0
	}
	monthsRemaining := 12 - (int(hireDate.Month()) - 1)
	return int(math.Round(float64(t.DefaultDays*monthsRemaining) / 12))
}

// CarryForward caps the unused days that move into the next year.
func (c *QuotaCalculator) CarryForward(remaining, maxDays int) int {
	if remaining < 0 {
		return 0
	}
	return min(remaining, maxDays)
}
