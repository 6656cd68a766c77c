package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/errors"
	"github.com/julianstephens/weekplan/internal/models"
)

// MemoryStore is an in-process Provider used by tests and ephemeral runs. It
// mirrors the JSON store's semantics, including raw grid payloads so corrupt
// records can be exercised.
type MemoryStore struct {
	habits []models.Habit
	goals  []models.Goal
	plans  map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		habits: []models.Habit{},
		goals:  []models.Goal{},
		plans:  make(map[string]json.RawMessage),
	}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetHabits() ([]models.Habit, error) {
	habits := make([]models.Habit, len(s.habits))
	copy(habits, s.habits)
	return habits, nil
}

func (s *MemoryStore) SaveHabit(habit models.Habit) error {
	for i, h := range s.habits {
		if h.ID == habit.ID {
			s.habits[i] = habit
			return nil
		}
	}
	s.habits = append(s.habits, habit)
	return nil
}

func (s *MemoryStore) DeleteHabit(id string) error {
	kept := s.habits[:0]
	for _, h := range s.habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	s.habits = kept
	return nil
}

func (s *MemoryStore) GetGoals() ([]models.Goal, error) {
	goals := make([]models.Goal, len(s.goals))
	copy(goals, s.goals)
	return goals, nil
}

func (s *MemoryStore) GetGoal(id string) (models.Goal, error) {
	for _, g := range s.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Goal{}, fmt.Errorf("goal %s: %w", id, errors.ErrNotFound)
}

func (s *MemoryStore) SaveGoal(goal models.Goal) error {
	for i, g := range s.goals {
		if g.ID == goal.ID {
			s.goals[i] = goal
			return nil
		}
	}
	s.goals = append(s.goals, goal)
	return nil
}

func (s *MemoryStore) DeleteGoal(id string) error {
	kept := s.goals[:0]
	for _, g := range s.goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	s.goals = kept
	return nil
}

func (s *MemoryStore) GetGrid(week string) (models.Grid, error) {
	key := planKey(week)
	raw, ok := s.plans[key]
	if !ok {
		return models.Grid{}, nil
	}

	var grid models.Grid
	if err := json.Unmarshal(raw, &grid); err != nil {
		return nil, errors.Corrupt(key, err)
	}
	if grid == nil {
		grid = models.Grid{}
	}
	return grid, nil
}

func (s *MemoryStore) PutGrid(week string, grid models.Grid) error {
	if len(grid) == 0 {
		delete(s.plans, planKey(week))
		return nil
	}

	raw, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("failed to serialize grid for %s: %w", week, err)
	}
	s.plans[planKey(week)] = raw
	return nil
}

func (s *MemoryStore) DeleteGrid(week string) error {
	delete(s.plans, planKey(week))
	return nil
}

func (s *MemoryStore) ListGridWeeks() ([]string, error) {
	var out []string
	for key := range s.plans {
		out = append(out, strings.TrimPrefix(key, constants.PlanKeyPrefix))
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}

// SetRawGrid installs an arbitrary payload under a week's plan key. Tests use
// it to simulate corrupted persisted data.
func (s *MemoryStore) SetRawGrid(week string, raw []byte) {
	s.plans[planKey(week)] = json.RawMessage(raw)
}
