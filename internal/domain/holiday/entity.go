package holiday

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

type Holiday struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	IsRecurring bool      `json:"is_recurring"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// In returns the holiday with its date moved into year, or false when a
// one-off holiday falls in another year.
func (h Holiday) In(year int) (Holiday, bool) {
	if h.IsRecurring {
		h.Date = calendar.ResolveInYear(h.Date, year)
		return h, true
	}
	return h, h.Date.Year() == year
}

func (h Holiday) Matches(day time.Time) bool {
	d := calendar.DateOnly(day)
	if h.IsRecurring {
		return calendar.ResolveInYear(h.Date, d.Year()).Equal(d)
	}
	return calendar.DateOnly(h.Date).Equal(d)
}

// Calendar is a set of stored holidays, recurring ones still carrying the
// year they were entered with.
type Calendar []Holiday

// ForYear resolves every holiday that applies in year, sorted by date.
func (c Calendar) ForYear(year int) []Holiday {
	out := []Holiday{}
	for _, h := range c {
		if resolved, ok := h.In(year); ok {
			out = append(out, resolved)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Find returns the first holiday that falls on day.
func (c Calendar) Find(day time.Time) *Holiday {
	for _, h := range c {
		if h.Matches(day) {
			resolved, _ := h.In(day.Year())
			return &resolved
		}
	}
	return nil
}

// WorkingDays counts the days in [start, end] that are neither weekends nor
// holidays.
func (c Calendar) WorkingDays(start, end time.Time) int {
	off := map[time.Time]bool{}
	for y := start.Year(); y <= end.Year(); y++ {
		for _, h := range c.ForYear(y) {
			off[calendar.DateOnly(h.Date)] = true
		}
	}

	count := 0
	calendar.EachDay(start, end, func(day time.Time) {
		if !calendar.IsWeekend(day) && !off[day] {
			count++
		}
	})
	return count
}

// Upcoming returns holidays on or after today, soonest first. A recurring
// holiday that already passed this year appears with next year's date.
func (c Calendar) Upcoming(today time.Time, limit int) []Holiday {
	today = calendar.DateOnly(today)
	out := []Holiday{}
	for _, h := range c {
		if !h.IsRecurring {
			if !h.Date.Before(today) {
				out = append(out, h)
			}
			continue
		}
		resolved, _ := h.In(today.Year())
		if resolved.Date.Before(today) {
			resolved, _ = h.In(today.Year() + 1)
		}
		out = append(out, resolved)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type Summary struct {
	TotalHolidaysThisYear int       `json:"total_holidays_this_year"`
	UpcomingHolidays      []Holiday `json:"upcoming_holidays"`
	PTODaysTaken          int       `json:"pto_days_taken"`
}
