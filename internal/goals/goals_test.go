package goals

import (
	"testing"

	"github.com/julianstephens/weekplan/internal/errors"
	"github.com/julianstephens/weekplan/internal/storage"
)

func newManager() (*Manager, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return New(store), store
}

func TestCreateGoal(t *testing.T) {
	m, _ := newManager()

	goal, err := m.CreateGoal("Learn Guitar", 3, "2025-10", []WeekInput{
		{Hours: 10, SubGoal: "Chords"},
		{Hours: 8, SubGoal: "Strumming"},
	})
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	if goal.ID == "" {
		t.Error("expected goal to be assigned an id")
	}
	if goal.StartDate == "" {
		t.Error("expected goal start date to be stamped")
	}
	if len(goal.Weeks) != goal.TotalWeeks {
		t.Fatalf("len(Weeks) = %d, want %d", len(goal.Weeks), goal.TotalWeeks)
	}

	wantLabels := []string{"2025-10", "2025-11", "2025-12"}
	for i, rec := range goal.Weeks {
		if rec.WeekNum != i+1 {
			t.Errorf("week %d: WeekNum = %d, want %d", i, rec.WeekNum, i+1)
		}
		if rec.WeekLabel != wantLabels[i] {
			t.Errorf("week %d: WeekLabel = %q, want %q", i, rec.WeekLabel, wantLabels[i])
		}
		if rec.IsPaused {
			t.Errorf("week %d: should not be paused on creation", i)
		}
	}

	if goal.Weeks[0].Hours != 10 || goal.Weeks[0].SubGoal != "Chords" {
		t.Errorf("week 1 inputs not applied: %+v", goal.Weeks[0])
	}
	// Third week had no input: zero hours, placeholder description
	if goal.Weeks[2].Hours != 0 || goal.Weeks[2].SubGoal != "No Description" {
		t.Errorf("week 3 defaults not applied: %+v", goal.Weeks[2])
	}
}

func TestCreateGoalValidation(t *testing.T) {
	m, _ := newManager()

	tests := []struct {
		name       string
		title      string
		totalWeeks int
		startWeek  string
	}{
		{"zero weeks", "G", 0, "2025-10"},
		{"negative weeks", "G", -2, "2025-10"},
		{"bad week grammar", "G", 3, "soon"},
		{"week out of range", "G", 3, "2025-53"},
		{"missing title", "", 3, "2025-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.CreateGoal(tt.title, tt.totalWeeks, tt.startWeek, nil)
			if !errors.IsValidation(err) {
				t.Errorf("CreateGoal() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestUpdateGoal(t *testing.T) {
	m, _ := newManager()

	created, err := m.CreateGoal("Draft", 2, "2025-10", nil)
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	updated, err := m.UpdateGoal(created.ID, "Final", 4, "2025-12", []WeekInput{{Hours: 5}})
	if err != nil {
		t.Fatalf("UpdateGoal() error = %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("id changed on update: %s -> %s", created.ID, updated.ID)
	}
	if updated.StartDate != created.StartDate {
		t.Errorf("start date changed on update")
	}
	if updated.Title != "Final" || updated.TotalWeeks != 4 {
		t.Errorf("update not applied: %+v", updated)
	}
	if len(updated.Weeks) != 4 {
		t.Errorf("len(Weeks) = %d, want 4", len(updated.Weeks))
	}
	if updated.Weeks[0].WeekLabel != "2025-12" {
		t.Errorf("WeekLabel = %q, want \"2025-12\"", updated.Weeks[0].WeekLabel)
	}
}

func TestUpdateGoalNotFound(t *testing.T) {
	m, _ := newManager()

	_, err := m.UpdateGoal("missing", "X", 1, "2025-10", nil)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("UpdateGoal() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteGoalIdempotent(t *testing.T) {
	m, store := newManager()

	goal, err := m.CreateGoal("G", 1, "2025-10", nil)
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	if err := m.DeleteGoal(goal.ID); err != nil {
		t.Fatalf("DeleteGoal() error = %v", err)
	}
	// Deleting again is a silent no-op
	if err := m.DeleteGoal(goal.ID); err != nil {
		t.Fatalf("second DeleteGoal() error = %v", err)
	}

	goals, _ := store.GetGoals()
	if len(goals) != 0 {
		t.Errorf("expected no goals after delete, got %d", len(goals))
	}
}

func TestActiveWeekRecordFor(t *testing.T) {
	m, _ := newManager()

	goal, err := m.CreateGoal("G", 3, "2025-10", []WeekInput{
		{Hours: 1}, {Hours: 2}, {Hours: 3},
	})
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	tests := []struct {
		name       string
		viewed     string
		wantStatus Status
		wantHours  float64
	}{
		{"before start", "2025-09", StatusNotStarted, 0},
		{"first week", "2025-10", StatusActive, 1},
		{"middle week", "2025-11", StatusActive, 2},
		{"last week", "2025-12", StatusActive, 3},
		{"after end", "2025-13", StatusCompleted, 0},
		{"previous year", "2024-52", StatusNotStarted, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, status, err := ActiveWeekRecordFor(goal, tt.viewed)
			if err != nil {
				t.Fatalf("ActiveWeekRecordFor() error = %v", err)
			}
			if status != tt.wantStatus {
				t.Errorf("status = %v, want %v", status, tt.wantStatus)
			}
			if status == StatusActive {
				if rec == nil {
					t.Fatal("expected a record for active status")
				}
				if rec.Hours != tt.wantHours {
					t.Errorf("Hours = %v, want %v", rec.Hours, tt.wantHours)
				}
			} else if rec != nil {
				t.Errorf("expected nil record for %v, got %+v", status, rec)
			}
		})
	}
}

func TestActiveWeekRecordAcrossYearBoundary(t *testing.T) {
	m, _ := newManager()

	goal, err := m.CreateGoal("G", 4, "2025-51", []WeekInput{
		{Hours: 1}, {Hours: 2}, {Hours: 3}, {Hours: 4},
	})
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	rec, status, err := ActiveWeekRecordFor(goal, "2026-02")
	if err != nil {
		t.Fatalf("ActiveWeekRecordFor() error = %v", err)
	}
	if status != StatusActive {
		t.Fatalf("status = %v, want active", status)
	}
	// 2026-02 is 3 weeks after 2025-51
	if rec.Hours != 4 {
		t.Errorf("Hours = %v, want 4", rec.Hours)
	}
}

func TestIsGoalActiveInWeek(t *testing.T) {
	m, _ := newManager()

	goal, err := m.CreateGoal("G", 3, "2025-10", nil)
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	tests := []struct {
		viewed string
		want   bool
	}{
		{"2025-09", false},
		{"2025-10", true},
		{"2025-12", true},
		{"2025-13", false},
	}

	for _, tt := range tests {
		got, err := IsGoalActiveInWeek(goal, tt.viewed)
		if err != nil {
			t.Fatalf("IsGoalActiveInWeek(%q) error = %v", tt.viewed, err)
		}
		if got != tt.want {
			t.Errorf("IsGoalActiveInWeek(%q) = %v, want %v", tt.viewed, got, tt.want)
		}
	}
}

func TestPauseGoal(t *testing.T) {
	m, _ := newManager()

	goal, err := m.CreateGoal("G", 2, "2025-10", []WeekInput{
		{Hours: 5, SubGoal: "A"},
		{Hours: 6, SubGoal: "B"},
	})
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	paused, err := m.PauseGoal(goal.ID, 2)
	if err != nil {
		t.Fatalf("PauseGoal() error = %v", err)
	}

	if paused.TotalWeeks != 4 {
		t.Errorf("TotalWeeks = %d, want 4", paused.TotalWeeks)
	}
	if len(paused.Weeks) != paused.TotalWeeks {
		t.Fatalf("len(Weeks) = %d, want %d", len(paused.Weeks), paused.TotalWeeks)
	}
	if paused.StartWeek != "2025-10" {
		t.Errorf("StartWeek = %q, pause must not move the start", paused.StartWeek)
	}

	for i := 0; i < 2; i++ {
		rec := paused.Weeks[i]
		if !rec.IsPaused || rec.Hours != 0 {
			t.Errorf("week %d should be a zero-hour paused placeholder: %+v", i+1, rec)
		}
		if rec.SubGoal != "SHIFTED / PAUSED" {
			t.Errorf("week %d SubGoal = %q", i+1, rec.SubGoal)
		}
	}

	// Original content pushed right, renumbered and relabeled
	if paused.Weeks[2].SubGoal != "A" || paused.Weeks[3].SubGoal != "B" {
		t.Errorf("original weeks not preserved in order: %+v", paused.Weeks)
	}
	for i, rec := range paused.Weeks {
		if rec.WeekNum != i+1 {
			t.Errorf("week %d: WeekNum = %d", i, rec.WeekNum)
		}
	}
	if paused.Weeks[2].WeekLabel != "2025-12" {
		t.Errorf("pushed week label = %q, want \"2025-12\"", paused.Weeks[2].WeekLabel)
	}
}

func TestPauseGoalValidation(t *testing.T) {
	m, _ := newManager()

	goal, err := m.CreateGoal("G", 1, "2025-10", nil)
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	for _, n := range []int{0, -1} {
		if _, err := m.PauseGoal(goal.ID, n); !errors.IsValidation(err) {
			t.Errorf("PauseGoal(%d) error = %v, want ValidationError", n, err)
		}
	}
}
