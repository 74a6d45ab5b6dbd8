package calendar

import (
	"time"
)

const DateLayout = "2006-01-02"

// Clock supplies the current instant in the application timezone.
type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Location *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return SystemClock{Location: loc}
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.Location)
}

// FixedClock always reports the same instant. Used by tests and batch replays.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

// DateOnly returns the calendar day of t, read in t's own location, as a UTC
// midnight. Every date-only value in the service uses this form so that dates
// compare and encode the same regardless of the app timezone.
func DateOnly(t time.Time) time.Time {
	return civil(t)
}

// Today returns midnight of the clock's current day.
func Today(c Clock) time.Time {
	return DateOnly(c.Now())
}

// MonthRange returns the first and last calendar day of the month.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// YearRange returns Jan 1 and Dec 31 of year.
func YearRange(year int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, loc), time.Date(year, time.December, 31, 0, 0, 0, 0, loc)
}

// WeekStart returns the Sunday that starts t's week.
func WeekStart(t time.Time) time.Time {
	d := DateOnly(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekEnd returns the last day of the 7-day week that starts on start.
func WeekEnd(start time.Time) time.Time {
	return DateOnly(start).AddDate(0, 0, 6)
}

// InclusiveDays counts calendar days in [start, end]. Zero when end is before start.
func InclusiveDays(start, end time.Time) int {
	s, e := civil(start), civil(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// EachDay calls fn for every calendar day in [start, end].
func EachDay(start, end time.Time, fn func(day time.Time)) {
	for d := DateOnly(start); !d.After(DateOnly(end)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// Overlap returns the intersection of [aStart, aEnd] and [bStart, bEnd].
func Overlap(aStart, aEnd, bStart, bEnd time.Time) (time.Time, time.Time, bool) {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// SameMonthDay reports whether a and b share month and day, ignoring year.
func SameMonthDay(a, b time.Time) bool {
	return a.Month() == b.Month() && a.Day() == b.Day()
}

// ResolveInYear moves a recurring date into year. Feb 29 falls on Feb 28 in
// non-leap years.
func ResolveInYear(date time.Time, year int) time.Time {
	m, d := date.Month(), date.Day()
	if m == time.February && d == 29 && !isLeap(year) {
		d = 28
	}
	return time.Date(year, m, d, 0, 0, 0, 0, date.Location())
}

// AtClock returns the instant at the "HH:MM" or "HH:MM:SS" wall time in loc on
// the day that at falls on in loc.
func AtClock(at time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = at.Location()
	}
	y, m, d := at.In(loc).Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}

// ParseClock accepts "HH:MM" and "HH:MM:SS".
func ParseClock(clock string) (time.Time, error) {
	if t, err := time.Parse("15:04", clock); err == nil {
		return t, nil
	}
	return time.Parse("15:04:05", clock)
}

func MonthLabel(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
