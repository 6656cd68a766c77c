package models

import (
	"github.com/julianstephens/weekplan/internal/errors"
	"github.com/julianstephens/weekplan/internal/weeks"
)

// WeekRecord is one week's target data point inside a goal's timeline.
// WeekNum is the 1-based position and is recomputed on every structural
// change; WeekLabel is the calendar week the record lands on, recomputed from
// the goal's start week.
type WeekRecord struct {
	WeekNum   int     `json:"weekNum"`
	WeekLabel string  `json:"weekLabel"` // YYYY-WW
	Hours     float64 `json:"hours"`
	SubGoal   string  `json:"subGoal"`
	IsPaused  bool    `json:"isPaused"`
}

// Goal is a user-defined multi-week objective. The structural invariant is
// len(Weeks) == TotalWeeks at all times: after create, update, shift and
// pause.
type Goal struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	TotalWeeks int          `json:"totalWeeks"`
	StartWeek  string       `json:"startWeek"` // YYYY-WW
	Weeks      []WeekRecord `json:"weeks"`
	StartDate  string       `json:"startDate,omitempty"` // RFC3339, informational only
}

// Validate checks the goal's structural invariants.
func (g Goal) Validate() error {
	if g.Title == "" {
		return errors.Validationf("goal title is required")
	}
	if g.TotalWeeks < 1 {
		return errors.Validationf("goal duration must be at least 1 week")
	}
	if len(g.Weeks) != g.TotalWeeks {
		return errors.Validationf("goal has %d week records but totalWeeks is %d", len(g.Weeks), g.TotalWeeks)
	}
	if _, err := weeks.ParseWeek(g.StartWeek); err != nil {
		return err
	}
	return nil
}

// EndWeek returns the last calendar week of the goal's timeline.
func (g Goal) EndWeek() (weeks.Week, error) {
	start, err := weeks.ParseWeek(g.StartWeek)
	if err != nil {
		return weeks.Week{}, err
	}
	return weeks.AddWeeks(start, g.TotalWeeks-1), nil
}
