// Package shift relocates a goal's timeline by a signed number of weeks and
// migrates every planner cell tagged with the goal from its old week slot to
// the corresponding new one, without disturbing other goals' or custom cells
// sharing the same grids.
package shift

import (
	"sort"

	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/errors"
	"github.com/julianstephens/weekplan/internal/logger"
	"github.com/julianstephens/weekplan/internal/models"
	"github.com/julianstephens/weekplan/internal/storage"
	"github.com/julianstephens/weekplan/internal/weeks"
)

type Engine struct {
	store storage.Provider
}

func New(store storage.Provider) *Engine {
	return &Engine{store: store}
}

// migration captures one source week during the collection phase: the cells
// leaving with the goal and the remainder staying behind.
type migration struct {
	idx       int
	oldWeek   string
	goalCells models.Grid
	remaining models.Grid
}

// ShiftGoal moves the goal's start week by n (any non-zero signed integer)
// and migrates its tagged grid cells. The migration runs in three phases
// (collect, write, cleanup) so that every source grid is fully read before
// any grid is rewritten; this is what makes overlapping old/new week ranges
// safe. A crash between the write and cleanup phases leaves the goal's cells
// present at both old and new weeks, never absent from both.
func (e *Engine) ShiftGoal(goalID string, n int) error {
	if n == 0 {
		return errors.Validationf("shift must be a non-zero number of weeks")
	}

	goal, err := e.store.GetGoal(goalID)
	if err != nil {
		return err
	}

	oldStart, err := weeks.ParseWeek(goal.StartWeek)
	if err != nil {
		return err
	}
	newStart := weeks.AddWeeks(oldStart, n)

	goal.StartWeek = newStart.String()
	for i := range goal.Weeks {
		goal.Weeks[i].WeekLabel = weeks.AddWeeks(newStart, i).String()
	}
	if err := e.store.SaveGoal(goal); err != nil {
		return err
	}

	// Collection phase: read every source week, partition its cells. No
	// storage mutation happens here.
	var recorded []migration
	sources := make(map[string]*migration)
	for idx := 0; idx < goal.TotalWeeks; idx++ {
		oldWeek := weeks.AddWeeks(oldStart, idx).String()
		grid, err := e.store.GetGrid(oldWeek)
		if err != nil {
			if errors.IsCorrupt(err) {
				// One corrupt week must not block migrating the rest.
				logger.Warn("Skipping corrupt grid during shift", "week", oldWeek, "goal", goalID, "error", err)
				continue
			}
			return err
		}

		goalCells := models.Grid{}
		remaining := models.Grid{}
		for key, cell := range grid {
			if cell.Type == constants.CellGoal && cell.GoalID == goalID {
				goalCells[key] = cell
			} else {
				remaining[key] = cell
			}
		}
		if len(goalCells) == 0 {
			continue
		}
		recorded = append(recorded, migration{idx: idx, oldWeek: oldWeek, goalCells: goalCells, remaining: remaining})
	}
	for i := range recorded {
		sources[recorded[i].oldWeek] = &recorded[i]
	}

	// Write phase, far-end-first: when old and new ranges overlap, a week's
	// outgoing cells must reach their destination before that week is
	// rewritten as a destination itself.
	ordered := make([]migration, len(recorded))
	copy(ordered, recorded)
	sort.Slice(ordered, func(i, j int) bool {
		if n > 0 {
			return ordered[i].idx > ordered[j].idx
		}
		return ordered[i].idx < ordered[j].idx
	})

	written := make(map[string]bool)
	for _, rec := range ordered {
		newWeek := weeks.AddWeeks(newStart, rec.idx).String()

		// A destination that is itself a recorded source is rewritten once,
		// from its collected remainder, so its stale goal cells vanish in
		// the same write that lands the migrated ones.
		var base models.Grid
		if src, ok := sources[newWeek]; ok {
			base = src.remaining.Clone()
		} else {
			live, err := e.store.GetGrid(newWeek)
			if err != nil {
				if !errors.IsCorrupt(err) {
					return err
				}
				logger.Warn("Replacing corrupt destination grid during shift", "week", newWeek, "goal", goalID, "error", err)
				live = models.Grid{}
			}
			base = live
		}

		// Last write wins on key collisions at the destination.
		for key, cell := range rec.goalCells {
			base[key] = cell
		}
		if err := e.store.PutGrid(newWeek, base); err != nil {
			return err
		}
		written[newWeek] = true
	}

	// Cleanup phase: only after all destination writes, restore each source
	// week to its remainder. Weeks already rewritten as destinations carry
	// their remainder from the write phase.
	for _, rec := range recorded {
		if written[rec.oldWeek] {
			continue
		}
		if err := e.store.PutGrid(rec.oldWeek, rec.remaining); err != nil {
			return err
		}
	}

	logger.Info("Shifted goal", "goal", goalID, "by", n, "from", oldStart.String(), "to", newStart.String(), "migratedWeeks", len(recorded))
	return nil
}
