package cli

import (
	"testing"

	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/goals"
	"github.com/julianstephens/weekplan/internal/models"
	"github.com/julianstephens/weekplan/internal/planner"
	"github.com/julianstephens/weekplan/internal/shift"
	"github.com/julianstephens/weekplan/internal/storage"
)

func newTestContext() (*Context, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return &Context{
		Store:   store,
		Goals:   goals.New(store),
		Shift:   shift.New(store),
		Planner: planner.New(store),
	}, store
}

func TestScanPlansFindsOrphans(t *testing.T) {
	ctx, store := newTestContext()

	goal, err := ctx.Goals.CreateGoal("G", 1, "2025-10", nil)
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	grid := models.Grid{
		"0-16": {Type: constants.CellGoal, Name: "G", GoalID: goal.ID},
		"1-16": {Type: constants.CellGoal, Name: "Ghost", GoalID: "deleted-goal"},
		"2-16": {Type: constants.CellCustom, Name: "Dentist"},
	}
	if err := store.PutGrid("2025-10", grid); err != nil {
		t.Fatalf("PutGrid() error = %v", err)
	}

	orphans, corrupt, err := scanPlans(ctx)
	if err != nil {
		t.Fatalf("scanPlans() error = %v", err)
	}
	if len(corrupt) != 0 {
		t.Errorf("corrupt = %v, want none", corrupt)
	}
	if len(orphans) != 1 || len(orphans["2025-10"]) != 1 || orphans["2025-10"][0] != "1-16" {
		t.Errorf("orphans = %v, want one cell 1-16 at 2025-10", orphans)
	}
}

func TestScanPlansReportsCorrupt(t *testing.T) {
	ctx, store := newTestContext()
	store.SetRawGrid("2025-10", []byte("{nope"))

	orphans, corrupt, err := scanPlans(ctx)
	if err != nil {
		t.Fatalf("scanPlans() error = %v", err)
	}
	if orphans != nil {
		t.Errorf("orphans = %v, want none", orphans)
	}
	if len(corrupt) != 1 || corrupt[0] != "2025-10" {
		t.Errorf("corrupt = %v, want [2025-10]", corrupt)
	}
}

func TestRemoveOrphans(t *testing.T) {
	ctx, store := newTestContext()

	grid := models.Grid{
		"1-16": {Type: constants.CellGoal, Name: "Ghost", GoalID: "deleted-goal"},
		"2-16": {Type: constants.CellCustom, Name: "Dentist"},
	}
	if err := store.PutGrid("2025-10", grid); err != nil {
		t.Fatalf("PutGrid() error = %v", err)
	}

	orphans, _, err := scanPlans(ctx)
	if err != nil {
		t.Fatalf("scanPlans() error = %v", err)
	}
	if err := removeOrphans(ctx, orphans); err != nil {
		t.Fatalf("removeOrphans() error = %v", err)
	}

	got, err := store.GetGrid("2025-10")
	if err != nil {
		t.Fatalf("GetGrid() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("grid = %v, want only the custom cell", got)
	}
	if _, ok := got["2-16"]; !ok {
		t.Error("custom cell removed by orphan cleanup")
	}

	// Clean store scans clean
	orphans, corrupt, err := scanPlans(ctx)
	if err != nil {
		t.Fatalf("second scanPlans() error = %v", err)
	}
	if orphans != nil || len(corrupt) != 0 {
		t.Errorf("after cleanup: orphans=%v corrupt=%v", orphans, corrupt)
	}
}

func TestCheckGoalInvariants(t *testing.T) {
	ctx, store := newTestContext()

	if _, err := ctx.Goals.CreateGoal("G", 2, "2025-10", nil); err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}
	if err := checkGoalInvariants(ctx); err != nil {
		t.Errorf("checkGoalInvariants() on healthy store error = %v", err)
	}

	// Break the length invariant behind the manager's back
	broken := models.Goal{
		ID:         "bad",
		Title:      "Bad",
		TotalWeeks: 3,
		StartWeek:  "2025-10",
		Weeks:      []models.WeekRecord{{WeekNum: 1, WeekLabel: "2025-10"}},
	}
	if err := store.SaveGoal(broken); err != nil {
		t.Fatalf("SaveGoal() error = %v", err)
	}
	if err := checkGoalInvariants(ctx); err == nil {
		t.Error("checkGoalInvariants() missed a broken goal")
	}
}

func TestResolveWeek(t *testing.T) {
	got, err := resolveWeek("2025-7")
	if err != nil {
		t.Fatalf("resolveWeek() error = %v", err)
	}
	if got != "2025-07" {
		t.Errorf("resolveWeek(\"2025-7\") = %q, want \"2025-07\"", got)
	}

	if _, err := resolveWeek("garbage"); err == nil {
		t.Error("resolveWeek() accepted garbage")
	}

	// Empty input yields the current week in canonical form
	got, err = resolveWeek("")
	if err != nil {
		t.Fatalf("resolveWeek(\"\") error = %v", err)
	}
	if _, err := resolveWeek(got); err != nil {
		t.Errorf("current week %q does not round-trip: %v", got, err)
	}
}
