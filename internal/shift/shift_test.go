package shift

import (
	"testing"

	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/errors"
	"github.com/julianstephens/weekplan/internal/goals"
	"github.com/julianstephens/weekplan/internal/models"
	"github.com/julianstephens/weekplan/internal/storage"
)

func setup(t *testing.T) (*Engine, *goals.Manager, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return New(store), goals.New(store), store
}

func mustCreate(t *testing.T, m *goals.Manager, title string, totalWeeks int, startWeek string) models.Goal {
	t.Helper()
	goal, err := m.CreateGoal(title, totalWeeks, startWeek, nil)
	if err != nil {
		t.Fatalf("CreateGoal(%q) error = %v", title, err)
	}
	return goal
}

func paintGoal(t *testing.T, store *storage.MemoryStore, week string, goal models.Goal, keys ...string) {
	t.Helper()
	grid, err := store.GetGrid(week)
	if err != nil {
		t.Fatalf("GetGrid(%q) error = %v", week, err)
	}
	for _, key := range keys {
		grid[key] = models.Cell{Type: constants.CellGoal, Name: goal.Title, GoalID: goal.ID}
	}
	if err := store.PutGrid(week, grid); err != nil {
		t.Fatalf("PutGrid(%q) error = %v", week, err)
	}
}

func TestShiftGoalRejectsZero(t *testing.T) {
	engine, mgr, _ := setup(t)
	goal := mustCreate(t, mgr, "G", 1, "2025-10")

	if err := engine.ShiftGoal(goal.ID, 0); !errors.IsValidation(err) {
		t.Errorf("ShiftGoal(0) error = %v, want ValidationError", err)
	}
}

func TestShiftGoalNotFound(t *testing.T) {
	engine, _, _ := setup(t)

	if err := engine.ShiftGoal("missing", 2); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("ShiftGoal() error = %v, want ErrNotFound", err)
	}
}

// Learn Guitar, 3 weeks from 2025-10, a goal cell at monday 08:00 of the
// first week. Shifting by 2 lands the cell at 2025-12 unchanged and empties
// 2025-10.
func TestShiftGoalMigratesCells(t *testing.T) {
	engine, mgr, store := setup(t)

	goal := mustCreate(t, mgr, "Learn Guitar", 3, "2025-10")
	paintGoal(t, store, "2025-10", goal, "0-16")

	if err := engine.ShiftGoal(goal.ID, 2); err != nil {
		t.Fatalf("ShiftGoal() error = %v", err)
	}

	shifted, err := store.GetGoal(goal.ID)
	if err != nil {
		t.Fatalf("GetGoal() error = %v", err)
	}
	if shifted.StartWeek != "2025-12" {
		t.Errorf("StartWeek = %q, want \"2025-12\"", shifted.StartWeek)
	}
	wantLabels := []string{"2025-12", "2025-13", "2025-14"}
	for i, rec := range shifted.Weeks {
		if rec.WeekLabel != wantLabels[i] {
			t.Errorf("week %d: WeekLabel = %q, want %q", i+1, rec.WeekLabel, wantLabels[i])
		}
	}

	oldGrid, err := store.GetGrid("2025-10")
	if err != nil {
		t.Fatalf("GetGrid(old) error = %v", err)
	}
	if _, ok := oldGrid["0-16"]; ok {
		t.Error("cell still present at the old week after shift")
	}

	newGrid, err := store.GetGrid("2025-12")
	if err != nil {
		t.Fatalf("GetGrid(new) error = %v", err)
	}
	cell, ok := newGrid["0-16"]
	if !ok {
		t.Fatal("cell missing at the new week after shift")
	}
	if cell.Name != "Learn Guitar" || cell.GoalID != goal.ID || cell.Type != constants.CellGoal {
		t.Errorf("migrated cell altered: %+v", cell)
	}
}

// A 5-week goal shifted by 1: weeks 2..5 of the old range are also weeks
// 1..4 of the new range. Every painted cell must land one week later with
// nothing lost to the cleanup pass.
func TestShiftGoalOverlappingRanges(t *testing.T) {
	engine, mgr, store := setup(t)

	goal := mustCreate(t, mgr, "Marathon", 5, "2025-10")
	oldWeeks := []string{"2025-10", "2025-11", "2025-12", "2025-13", "2025-14"}
	for i, week := range oldWeeks {
		paintGoal(t, store, week, goal, models.SlotKey(i, 20))
	}

	if err := engine.ShiftGoal(goal.ID, 1); err != nil {
		t.Fatalf("ShiftGoal() error = %v", err)
	}

	for i, oldWeek := range oldWeeks {
		newWeek := []string{"2025-11", "2025-12", "2025-13", "2025-14", "2025-15"}[i]
		key := models.SlotKey(i, 20)

		grid, err := store.GetGrid(newWeek)
		if err != nil {
			t.Fatalf("GetGrid(%q) error = %v", newWeek, err)
		}
		if _, ok := grid[key]; !ok {
			t.Errorf("cell %s missing at %s after shift", key, newWeek)
		}

		// Each source week used a distinct key, so the key must be gone from
		// its old week even when that week doubles as another cell's
		// destination.
		old, err := store.GetGrid(oldWeek)
		if err != nil {
			t.Fatalf("GetGrid(%q) error = %v", oldWeek, err)
		}
		if _, ok := old[key]; ok {
			t.Errorf("stale cell %s left at %s", key, oldWeek)
		}
	}

	// Total goal cells conserved
	total := 0
	for _, week := range []string{"2025-10", "2025-11", "2025-12", "2025-13", "2025-14", "2025-15"} {
		grid, err := store.GetGrid(week)
		if err != nil {
			t.Fatalf("GetGrid(%q) error = %v", week, err)
		}
		for _, cell := range grid {
			if cell.GoalID == goal.ID {
				total++
			}
		}
	}
	if total != 5 {
		t.Errorf("goal cell count after overlapping shift = %d, want 5", total)
	}
}

// Shifting by n then -n restores both the goal timeline and the grids.
func TestShiftGoalInverse(t *testing.T) {
	engine, mgr, store := setup(t)

	goal := mustCreate(t, mgr, "G", 3, "2025-10")
	paintGoal(t, store, "2025-10", goal, "0-16", "2-30")
	paintGoal(t, store, "2025-11", goal, "4-10")

	if err := engine.ShiftGoal(goal.ID, 2); err != nil {
		t.Fatalf("forward shift error = %v", err)
	}
	if err := engine.ShiftGoal(goal.ID, -2); err != nil {
		t.Fatalf("inverse shift error = %v", err)
	}

	restored, err := store.GetGoal(goal.ID)
	if err != nil {
		t.Fatalf("GetGoal() error = %v", err)
	}
	if restored.StartWeek != "2025-10" {
		t.Errorf("StartWeek = %q, want \"2025-10\"", restored.StartWeek)
	}

	for week, keys := range map[string][]string{
		"2025-10": {"0-16", "2-30"},
		"2025-11": {"4-10"},
	} {
		grid, err := store.GetGrid(week)
		if err != nil {
			t.Fatalf("GetGrid(%q) error = %v", week, err)
		}
		if len(grid) != len(keys) {
			t.Errorf("week %s has %d cells, want %d", week, len(grid), len(keys))
		}
		for _, key := range keys {
			if _, ok := grid[key]; !ok {
				t.Errorf("cell %s not restored at %s", key, week)
			}
		}
	}

	// Intermediate weeks fully vacated
	for _, week := range []string{"2025-12", "2025-13"} {
		grid, err := store.GetGrid(week)
		if err != nil {
			t.Fatalf("GetGrid(%q) error = %v", week, err)
		}
		if len(grid) != 0 {
			t.Errorf("week %s not empty after inverse shift: %v", week, grid)
		}
	}
}

// Other goals' cells and custom cells sharing a migrated week stay put.
func TestShiftGoalLeavesOthersUntouched(t *testing.T) {
	engine, mgr, store := setup(t)

	target := mustCreate(t, mgr, "Target", 2, "2025-10")
	other := mustCreate(t, mgr, "Other", 2, "2025-10")

	paintGoal(t, store, "2025-10", target, "0-16")
	paintGoal(t, store, "2025-10", other, "1-16")
	grid, _ := store.GetGrid("2025-10")
	grid["3-20"] = models.Cell{Type: constants.CellCustom, Name: "Dentist"}
	if err := store.PutGrid("2025-10", grid); err != nil {
		t.Fatalf("PutGrid() error = %v", err)
	}

	if err := engine.ShiftGoal(target.ID, 3); err != nil {
		t.Fatalf("ShiftGoal() error = %v", err)
	}

	old, err := store.GetGrid("2025-10")
	if err != nil {
		t.Fatalf("GetGrid() error = %v", err)
	}
	if _, ok := old["0-16"]; ok {
		t.Error("target goal cell not removed from source week")
	}
	if cell, ok := old["1-16"]; !ok || cell.GoalID != other.ID {
		t.Errorf("other goal's cell disturbed: %+v", old)
	}
	if cell, ok := old["3-20"]; !ok || cell.Name != "Dentist" {
		t.Errorf("custom cell disturbed: %+v", old)
	}

	otherGoal, err := store.GetGoal(other.ID)
	if err != nil {
		t.Fatalf("GetGoal(other) error = %v", err)
	}
	if otherGoal.StartWeek != "2025-10" {
		t.Errorf("other goal's start week moved: %q", otherGoal.StartWeek)
	}
}

// A destination week already holding unrelated cells keeps them and gains
// the migrated cells; a colliding key is overwritten by the incoming cell.
func TestShiftGoalMergesIntoDestination(t *testing.T) {
	engine, mgr, store := setup(t)

	goal := mustCreate(t, mgr, "G", 1, "2025-10")
	paintGoal(t, store, "2025-10", goal, "0-16")

	dest := models.Grid{
		"5-40": {Type: constants.CellCustom, Name: "Dinner"},
		"0-16": {Type: constants.CellCustom, Name: "Clobbered"},
	}
	if err := store.PutGrid("2025-12", dest); err != nil {
		t.Fatalf("PutGrid() error = %v", err)
	}

	if err := engine.ShiftGoal(goal.ID, 2); err != nil {
		t.Fatalf("ShiftGoal() error = %v", err)
	}

	grid, err := store.GetGrid("2025-12")
	if err != nil {
		t.Fatalf("GetGrid() error = %v", err)
	}
	if cell := grid["5-40"]; cell.Name != "Dinner" {
		t.Errorf("pre-existing destination cell lost: %+v", grid)
	}
	if cell := grid["0-16"]; cell.GoalID != goal.ID {
		t.Errorf("incoming cell did not win the key collision: %+v", grid["0-16"])
	}
}

// A corrupt source week is skipped with a warning; the rest still migrate.
func TestShiftGoalSkipsCorruptSource(t *testing.T) {
	engine, mgr, store := setup(t)

	goal := mustCreate(t, mgr, "G", 3, "2025-10")
	paintGoal(t, store, "2025-10", goal, "0-16")
	store.SetRawGrid("2025-11", []byte("{not json"))
	paintGoal(t, store, "2025-12", goal, "2-20")

	if err := engine.ShiftGoal(goal.ID, 10); err != nil {
		t.Fatalf("ShiftGoal() error = %v", err)
	}

	for _, week := range []string{"2025-20", "2025-22"} {
		grid, err := store.GetGrid(week)
		if err != nil {
			t.Fatalf("GetGrid(%q) error = %v", week, err)
		}
		if len(grid) != 1 {
			t.Errorf("week %s has %d cells, want 1", week, len(grid))
		}
	}

	// The corrupt payload is untouched
	if _, err := store.GetGrid("2025-11"); !errors.IsCorrupt(err) {
		t.Errorf("GetGrid(corrupt) error = %v, want CorruptRecord", err)
	}
}

// A corrupt destination grid is replaced by the migrated cells rather than
// aborting the shift.
func TestShiftGoalReplacesCorruptDestination(t *testing.T) {
	engine, mgr, store := setup(t)

	goal := mustCreate(t, mgr, "G", 1, "2025-10")
	paintGoal(t, store, "2025-10", goal, "0-16")
	store.SetRawGrid("2025-12", []byte("][garbage"))

	if err := engine.ShiftGoal(goal.ID, 2); err != nil {
		t.Fatalf("ShiftGoal() error = %v", err)
	}

	grid, err := store.GetGrid("2025-12")
	if err != nil {
		t.Fatalf("GetGrid() error = %v", err)
	}
	if len(grid) != 1 {
		t.Errorf("destination grid = %v, want just the migrated cell", grid)
	}
	if cell := grid["0-16"]; cell.GoalID != goal.ID {
		t.Errorf("migrated cell missing: %+v", grid)
	}
}

// Shifting across a year boundary relabels into the next year.
func TestShiftGoalAcrossYearBoundary(t *testing.T) {
	engine, mgr, store := setup(t)

	goal := mustCreate(t, mgr, "G", 2, "2025-51")
	paintGoal(t, store, "2025-52", goal, "1-10")

	if err := engine.ShiftGoal(goal.ID, 2); err != nil {
		t.Fatalf("ShiftGoal() error = %v", err)
	}

	shifted, err := store.GetGoal(goal.ID)
	if err != nil {
		t.Fatalf("GetGoal() error = %v", err)
	}
	if shifted.StartWeek != "2026-01" {
		t.Errorf("StartWeek = %q, want \"2026-01\"", shifted.StartWeek)
	}

	grid, err := store.GetGrid("2026-02")
	if err != nil {
		t.Fatalf("GetGrid() error = %v", err)
	}
	if _, ok := grid["1-10"]; !ok {
		t.Errorf("cell not migrated across the year boundary: %v", grid)
	}
}
