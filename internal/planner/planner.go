// Package planner paints and reads the per-week half-hour grid. All state
// that used to be ambient in the original UI (active tool, selected goal,
// viewed week) travels in an explicit Session owned by the caller.
package planner

import (
	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/errors"
	"github.com/julianstephens/weekplan/internal/models"
	"github.com/julianstephens/weekplan/internal/storage"
	"github.com/julianstephens/weekplan/internal/weeks"
)

// Session is the explicit editing context for grid operations.
type Session struct {
	Week         string // YYYY-WW, the week being edited
	Tool         constants.Tool
	ActiveGoalID string // required for ToolGoal
	CustomName   string // label for ToolCustom cells
}

// Stats summarizes a week's painted goal work.
type Stats struct {
	GoalSlots int
	Hours     float64
}

type Planner struct {
	store storage.Provider
}

func New(store storage.Provider) *Planner {
	return &Planner{store: store}
}

// Paint applies the session's tool to one cell. Cells covered by a live
// habit overlay are locked against every tool, including erase.
func (p *Planner) Paint(sess Session, day, slot int) error {
	if err := models.ValidateSlot(day, slot); err != nil {
		return err
	}
	week, err := weeks.ParseWeek(sess.Week)
	if err != nil {
		return err
	}

	habits, err := p.store.GetHabits()
	if err != nil {
		return err
	}
	overlay := HabitOverlayFor(habits, week)
	key := models.SlotKey(day, slot)
	if _, locked := overlay[key]; locked {
		return errors.ErrLockedCell
	}

	grid, err := p.store.GetGrid(week.String())
	if err != nil {
		return err
	}

	switch sess.Tool {
	case constants.ToolErase:
		delete(grid, key)
	case constants.ToolGoal:
		if sess.ActiveGoalID == "" {
			return errors.ErrNoGoalSelected
		}
		goal, err := p.store.GetGoal(sess.ActiveGoalID)
		if err != nil {
			return err
		}
		grid[key] = models.Cell{Type: constants.CellGoal, Name: goal.Title, GoalID: goal.ID}
	case constants.ToolCustom:
		name := sess.CustomName
		if name == "" {
			name = "Event"
		}
		grid[key] = models.Cell{Type: constants.CellCustom, Name: name}
	default:
		return errors.Validationf("unknown tool %q", sess.Tool)
	}

	return p.store.PutGrid(week.String(), grid)
}

// HabitOverlayFor computes the cells covered by habit overlays for a week:
// every habit whose start day's week is at or before the viewed week covers
// all 7 days across its time range. The result is render-state only and is
// never persisted.
func HabitOverlayFor(habits []models.Habit, week weeks.Week) map[string]models.Habit {
	overlay := make(map[string]models.Habit)
	for _, h := range habits {
		startDay, err := weeks.ParseDay(h.StartDay)
		if err != nil {
			continue
		}
		startWeek := weeks.Week{Year: startDay.Year, Num: startDay.Week}
		if weeks.Compare(startWeek, week) > 0 {
			continue
		}

		startSlot, endSlot := h.SlotRange()
		for day := 0; day < constants.DaysPerWeek; day++ {
			for slot := startSlot; slot < endSlot; slot++ {
				overlay[models.SlotKey(day, slot)] = h
			}
		}
	}
	return overlay
}

// Grid loads the stored cells for a week.
func (p *Planner) Grid(week string) (models.Grid, error) {
	w, err := weeks.ParseWeek(week)
	if err != nil {
		return nil, err
	}
	return p.store.GetGrid(w.String())
}

// ClearWeek removes every painted cell for a week. Habit overlays are
// unaffected since they are never stored.
func (p *Planner) ClearWeek(week string) error {
	w, err := weeks.ParseWeek(week)
	if err != nil {
		return err
	}
	return p.store.DeleteGrid(w.String())
}

// ComputeStats counts painted goal cells; each slot is 30 minutes.
func ComputeStats(grid models.Grid) Stats {
	count := 0
	for _, cell := range grid {
		if cell.Type == constants.CellGoal {
			count++
		}
	}
	return Stats{GoalSlots: count, Hours: float64(count) * 0.5}
}
