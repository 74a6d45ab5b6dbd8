package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

const defaultUpcomingLimit = 5

type HolidayServiceImpl struct {
	holiday.HolidayRepository
	leaveDays holiday.LeaveDaysReader
	clock     calendar.Clock
	audit     *audit.Recorder
}

func NewHolidayService(
	holidays holiday.HolidayRepository,
	leaveDays holiday.LeaveDaysReader,
	clock calendar.Clock,
	recorder *audit.Recorder,
) holiday.HolidayService {
	return &HolidayServiceImpl{
		HolidayRepository: holidays,
		leaveDays:         leaveDays,
		clock:             clock,
		audit:             recorder,
	}
}

func (s *HolidayServiceImpl) load(ctx context.Context) (holiday.Calendar, error) {
	c, err := s.HolidayRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	return c, nil
}

// Add implements holiday.HolidayService.
func (s *HolidayServiceImpl) Add(ctx context.Context, actorID string, req holiday.CreateRequest) (holiday.Holiday, error) {
	if err := req.Validate(); err != nil {
		return holiday.Holiday{}, err
	}

	h := holiday.Holiday{
		ID:          utils.NewID(),
		Name:        req.Name,
		Date:        req.ParsedDate(),
		IsRecurring: req.IsRecurring,
		Description: req.Description,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.HolidayRepository.Create(ctx, h); err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	s.audit.Record(ctx, actorID, "holiday.create", map[string]any{"holiday_id": h.ID, "name": h.Name})
	return h, nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, actorID, id string) error {
	if err := s.HolidayRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actorID, "holiday.delete", map[string]any{"holiday_id": id})
	return nil
}

// ForYear implements holiday.HolidayService.
func (s *HolidayServiceImpl) ForYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	if year == 0 {
		year = s.clock.Now().Year()
	}
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.ForYear(year), nil
}

// IsHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) IsHoliday(ctx context.Context, day time.Time) (*holiday.Holiday, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Find(day), nil
}

// Upcoming implements holiday.HolidayService.
func (s *HolidayServiceImpl) Upcoming(ctx context.Context, limit int) ([]holiday.Holiday, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Upcoming(calendar.Today(s.clock), limit), nil
}

// WorkingDays implements holiday.HolidayService.
func (s *HolidayServiceImpl) WorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	c, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return c.WorkingDays(start, end), nil
}

// Summary implements holiday.HolidayService.
func (s *HolidayServiceImpl) Summary(ctx context.Context, userID string) (holiday.Summary, error) {
	c, err := s.load(ctx)
	if err != nil {
		return holiday.Summary{}, err
	}
	today := calendar.Today(s.clock)

	pto, err := s.leaveDays.ApprovedDays(ctx, userID, today.Year())
	if err != nil {
		return holiday.Summary{}, fmt.Errorf("failed to sum approved leave: %w", err)
	}

	return holiday.Summary{
		TotalHolidaysThisYear: len(c.ForYear(today.Year())),
		UpcomingHolidays:      c.Upcoming(today, 3),
		PTODaysTaken:          pto,
	}, nil
}
