package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var defaultPolicy []byte

const (
	DistancePlanar    = "planar"
	DistanceHaversine = "haversine"
)

// Policy holds the workforce rules that differ between deployments.
type Policy struct {
	Geofence   GeofencePolicy   `yaml:"geofence"`
	Locations  []LocationSeed   `yaml:"locations"`
	LeaveTypes []LeaveTypeEntry `yaml:"leave_types"`
	Leave      LeavePolicy      `yaml:"leave"`
	Work       WorkPolicy       `yaml:"work"`
	Overtime   OvertimePolicy   `yaml:"overtime"`
	Lateness   LatenessPolicy   `yaml:"lateness"`
	Shifts     ShiftPolicy      `yaml:"shifts"`
	Jobs       JobsPolicy       `yaml:"jobs"`
}

type GeofencePolicy struct {
	Mode      string  `yaml:"mode"`
	Threshold float64 `yaml:"threshold"`
}

type LocationSeed struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// LeaveTypeEntry with DefaultDays < 0 is unlimited.
type LeaveTypeEntry struct {
	Name        string `yaml:"name"`
	DefaultDays int    `yaml:"default_days"`
	Description string `yaml:"description"`
}

type LeavePolicy struct {
	CarryForwardType    string `yaml:"carry_forward_type"`
	CarryForwardMaxDays int    `yaml:"carry_forward_max_days"`
}

type WorkPolicy struct {
	StandardDailyHours  float64 `yaml:"standard_daily_hours"`
	ExpectedWorkingDays int     `yaml:"expected_working_days"`
}

type OvertimePolicy struct {
	OvertimeTierHours    float64 `yaml:"overtime_tier_hours"`
	OvertimeMultiplier   float64 `yaml:"overtime_multiplier"`
	DoubleTimeMultiplier float64 `yaml:"double_time_multiplier"`
}

type LatenessPolicy struct {
	GracePeriodMinutes int               `yaml:"grace_period_minutes"`
	WarningThresholds  WarningThresholds `yaml:"warning_thresholds"`
}

type WarningThresholds struct {
	Verbal  int `yaml:"verbal"`
	Written int `yaml:"written"`
	Final   int `yaml:"final"`
}

type ShiftPolicy struct {
	DefaultBreakMinutes int `yaml:"default_break_minutes"`
}

type JobsPolicy struct {
	WeeklyTimesheetWeekday string `yaml:"weekly_timesheet_weekday"`
}

// DefaultPolicy returns the embedded policy.
func DefaultPolicy() Policy {
	p, err := ParsePolicy(defaultPolicy)
	if err != nil {
		panic(fmt.Sprintf("embedded policy is invalid: %v", err))
	}
	return p
}

// LoadPolicy reads path, or the embedded default when path is empty.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return ParsePolicy(defaultPolicy)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read policy file: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes YAML on top of the embedded defaults, so a file only
// needs the keys it changes.
func ParsePolicy(data []byte) (Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(defaultPolicy, &p); err != nil {
		return Policy{}, fmt.Errorf("failed to parse default policy: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("failed to parse policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func (p Policy) Validate() error {
	switch p.Geofence.Mode {
	case DistancePlanar, DistanceHaversine:
	default:
		return fmt.Errorf("policy: geofence.mode must be %q or %q", DistancePlanar, DistanceHaversine)
	}
	if p.Geofence.Threshold <= 0 {
		return fmt.Errorf("policy: geofence.threshold must be positive")
	}
	if len(p.LeaveTypes) == 0 {
		return fmt.Errorf("policy: at least one leave type is required")
	}
	seen := make(map[string]bool)
	for _, lt := range p.LeaveTypes {
		if strings.TrimSpace(lt.Name) == "" {
			return fmt.Errorf("policy: leave type name is required")
		}
		if seen[lt.Name] {
			return fmt.Errorf("policy: duplicate leave type %q", lt.Name)
		}
		seen[lt.Name] = true
	}
	if p.Leave.CarryForwardType != "" && !seen[p.Leave.CarryForwardType] {
		return fmt.Errorf("policy: carry_forward_type %q is not a leave type", p.Leave.CarryForwardType)
	}
	if p.Work.StandardDailyHours <= 0 || p.Work.ExpectedWorkingDays <= 0 {
		return fmt.Errorf("policy: work hours and expected working days must be positive")
	}
	w := p.Lateness.WarningThresholds
	if !(w.Verbal > 0 && w.Verbal < w.Written && w.Written < w.Final) {
		return fmt.Errorf("policy: warning thresholds must be increasing: verbal < written < final")
	}
	if p.Lateness.GracePeriodMinutes < 0 {
		return fmt.Errorf("policy: grace_period_minutes must not be negative")
	}
	if _, err := p.Jobs.Weekday(); err != nil {
		return err
	}
	return nil
}

// Weekday parses jobs.weekly_timesheet_weekday.
func (j JobsPolicy) Weekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), j.WeeklyTimesheetWeekday) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("policy: invalid weekly_timesheet_weekday %q", j.WeeklyTimesheetWeekday)
}

// LeaveType looks up a configured leave type by name.
func (p Policy) LeaveType(name string) (LeaveTypeEntry, bool) {
	for _, lt := range p.LeaveTypes {
		if lt.Name == name {
			return lt, true
		}
	}
	return LeaveTypeEntry{}, false
}

// RegularMonthlyHours is the expected hours in a month before overtime.
func (w WorkPolicy) RegularMonthlyHours() float64 {
	return float64(w.ExpectedWorkingDays) * w.StandardDailyHours
}
