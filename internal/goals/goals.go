// Package goals manages the lifecycle of multi-week goals: creation,
// editing, deletion, pause placeholders, and locating the week record that is
// active for a given calendar week.
package goals

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/errors"
	"github.com/julianstephens/weekplan/internal/models"
	"github.com/julianstephens/weekplan/internal/storage"
	"github.com/julianstephens/weekplan/internal/weeks"
)

// WeekInput carries the per-week user input collected at create/edit time.
type WeekInput struct {
	Hours   float64
	SubGoal string
}

// Status describes where a viewed week falls relative to a goal's timeline.
type Status int

const (
	StatusNotStarted Status = iota
	StatusActive
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not started"
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

type Manager struct {
	store storage.Provider
}

func New(store storage.Provider) *Manager {
	return &Manager{store: store}
}

// CreateGoal builds a goal with totalWeeks numbered records, each labeled
// with the calendar week it lands on. Missing inputs default to zero hours
// and a placeholder description.
func (m *Manager) CreateGoal(title string, totalWeeks int, startWeek string, inputs []WeekInput) (models.Goal, error) {
	goal := models.Goal{
		ID:         uuid.New().String(),
		Title:      title,
		TotalWeeks: totalWeeks,
		StartWeek:  startWeek,
		StartDate:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := m.buildWeeks(&goal, inputs); err != nil {
		return models.Goal{}, err
	}

	if err := m.store.SaveGoal(goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

// UpdateGoal rebuilds an existing goal with the same construction as
// CreateGoal, preserving its id and start date.
func (m *Manager) UpdateGoal(id, title string, totalWeeks int, startWeek string, inputs []WeekInput) (models.Goal, error) {
	existing, err := m.store.GetGoal(id)
	if err != nil {
		return models.Goal{}, err
	}

	goal := models.Goal{
		ID:         existing.ID,
		Title:      title,
		TotalWeeks: totalWeeks,
		StartWeek:  startWeek,
		StartDate:  existing.StartDate,
	}
	if err := m.buildWeeks(&goal, inputs); err != nil {
		return models.Goal{}, err
	}

	if err := m.store.SaveGoal(goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

func (m *Manager) buildWeeks(goal *models.Goal, inputs []WeekInput) error {
	if goal.Title == "" {
		return errors.Validationf("goal title is required")
	}
	if goal.TotalWeeks < 1 {
		return errors.Validationf("goal duration must be at least 1 week")
	}
	start, err := weeks.ParseWeek(goal.StartWeek)
	if err != nil {
		return err
	}
	goal.StartWeek = start.String()

	goal.Weeks = make([]models.WeekRecord, goal.TotalWeeks)
	for i := 0; i < goal.TotalWeeks; i++ {
		rec := models.WeekRecord{
			WeekNum:   i + 1,
			WeekLabel: weeks.AddWeeks(start, i).String(),
			SubGoal:   constants.DefaultSubGoal,
		}
		if i < len(inputs) {
			rec.Hours = inputs[i].Hours
			if inputs[i].SubGoal != "" {
				rec.SubGoal = inputs[i].SubGoal
			}
		}
		goal.Weeks[i] = rec
	}
	return nil
}

// DeleteGoal removes the goal from the collection. Planner cells tagged with
// the goal's id are left in place; `weekplan doctor --fix` cleans them up.
func (m *Manager) DeleteGoal(id string) error {
	return m.store.DeleteGoal(id)
}

// Get returns the stored goal by id.
func (m *Manager) Get(id string) (models.Goal, error) {
	return m.store.GetGoal(id)
}

// List returns all stored goals.
func (m *Manager) List() ([]models.Goal, error) {
	return m.store.GetGoals()
}

// ActiveWeekRecordFor locates the week record covering viewedWeek by index
// arithmetic: the Nth record always corresponds to AddWeeks(startWeek, N).
// The returned record is nil unless the status is StatusActive.
func ActiveWeekRecordFor(goal models.Goal, viewedWeek string) (*models.WeekRecord, Status, error) {
	start, err := weeks.ParseWeek(goal.StartWeek)
	if err != nil {
		return nil, StatusNotStarted, err
	}
	viewed, err := weeks.ParseWeek(viewedWeek)
	if err != nil {
		return nil, StatusNotStarted, err
	}

	offset := weeks.Diff(start, viewed)
	switch {
	case offset < 0:
		return nil, StatusNotStarted, nil
	case offset >= goal.TotalWeeks:
		return nil, StatusCompleted, nil
	default:
		rec := goal.Weeks[offset]
		return &rec, StatusActive, nil
	}
}

// IsGoalActiveInWeek reports whether viewedWeek falls inside the goal's
// timeline.
func IsGoalActiveInWeek(goal models.Goal, viewedWeek string) (bool, error) {
	_, status, err := ActiveWeekRecordFor(goal, viewedWeek)
	if err != nil {
		return false, err
	}
	return status == StatusActive, nil
}

// PauseGoal absorbs an n-week delay by inserting paused placeholder records
// at the front of the timeline, growing totalWeeks to match. Week numbers and
// labels are recomputed; painted planner cells are untouched (relocating them
// is the shift engine's job).
func (m *Manager) PauseGoal(id string, n int) (models.Goal, error) {
	if n < 1 {
		return models.Goal{}, errors.Validationf("pause must be a positive number of weeks")
	}

	goal, err := m.store.GetGoal(id)
	if err != nil {
		return models.Goal{}, err
	}
	start, err := weeks.ParseWeek(goal.StartWeek)
	if err != nil {
		return models.Goal{}, err
	}

	paused := make([]models.WeekRecord, n)
	for i := range paused {
		paused[i] = models.WeekRecord{
			SubGoal:  constants.PausedSubGoal,
			IsPaused: true,
		}
	}

	goal.Weeks = append(paused, goal.Weeks...)
	goal.TotalWeeks += n
	for i := range goal.Weeks {
		goal.Weeks[i].WeekNum = i + 1
		goal.Weeks[i].WeekLabel = weeks.AddWeeks(start, i).String()
	}

	if err := m.store.SaveGoal(goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}
