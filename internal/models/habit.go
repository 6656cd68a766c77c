package models

import (
	"time"

	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/errors"
	"github.com/julianstephens/weekplan/internal/weeks"
)

// Habit is a recurring weekly time-block overlay, active on all 7 days and
// visible from its start day's week onward. Habits are never stored per-cell;
// the planner recomputes their overlay on every render.
type Habit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"startTime"` // HH:MM, half-hour aligned
	EndTime     string `json:"endTime"`   // HH:MM, half-hour aligned
	StartDay    string `json:"startDay"`  // YYYY-WW-D
}

// Validate checks the habit's user-supplied fields.
func (h Habit) Validate() error {
	if h.Name == "" {
		return errors.Validationf("habit name is required")
	}
	start, err := parseHalfHour(h.StartTime)
	if err != nil {
		return err
	}
	end, err := parseHalfHour(h.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return errors.Validationf("start time %s must be before end time %s", h.StartTime, h.EndTime)
	}
	if _, err := weeks.ParseDay(h.StartDay); err != nil {
		return err
	}
	return nil
}

// SlotRange returns the half-open [start, end) slot-index range the habit
// covers on each day.
func (h Habit) SlotRange() (int, int) {
	start, _ := parseHalfHour(h.StartTime)
	end, _ := parseHalfHour(h.EndTime)
	return start / constants.SlotMinutes, end / constants.SlotMinutes
}

// parseHalfHour parses an HH:MM clock time and returns minutes from midnight,
// rejecting anything not aligned to a half-hour boundary.
func parseHalfHour(s string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, s)
	if err != nil {
		return 0, errors.Validationf("invalid time %q (expected HH:MM)", s)
	}
	min := t.Hour()*60 + t.Minute()
	if min%constants.SlotMinutes != 0 {
		return 0, errors.Validationf("time %q must be aligned to %d minutes", s, constants.SlotMinutes)
	}
	return min, nil
}
