package cli

import (
	"github.com/julianstephens/weekplan/internal/goals"
	"github.com/julianstephens/weekplan/internal/planner"
	"github.com/julianstephens/weekplan/internal/shift"
	"github.com/julianstephens/weekplan/internal/storage"
	"github.com/julianstephens/weekplan/internal/weeks"
)

type Context struct {
	Store   storage.Provider
	Goals   *goals.Manager
	Shift   *shift.Engine
	Planner *planner.Planner
}

// resolveWeek normalizes a --week flag, defaulting to the current calendar
// week when empty.
func resolveWeek(s string) (string, error) {
	if s == "" {
		// AddWeeks(w, 0) folds a raw week 53 into the next year
		return weeks.AddWeeks(weeks.CurrentWeek(), 0).String(), nil
	}
	return weeks.Normalize(s)
}
