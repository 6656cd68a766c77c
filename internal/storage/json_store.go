package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/errors"
	"github.com/julianstephens/weekplan/internal/models"
)

// Store is the on-disk JSON document. Plans are kept as raw payloads keyed
// "plan_<YYYY-WW>" so a single corrupt grid surfaces as a CorruptRecord when
// that week is read, instead of failing the whole Load.
type Store struct {
	Version int                        `json:"version"`
	Habits  []models.Habit             `json:"habits"`
	Goals   []models.Goal              `json:"goals"`
	Plans   map[string]json.RawMessage `json:"plans"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Habits:  []models.Habit{},
		Goals:   []models.Goal{},
		Plans:   make(map[string]json.RawMessage),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'weekplan init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure collections are initialized
	if s.store.Habits == nil {
		s.store.Habits = []models.Habit{}
	}
	if s.store.Goals == nil {
		s.store.Goals = []models.Goal{}
	}
	if s.store.Plans == nil {
		s.store.Plans = make(map[string]json.RawMessage)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetHabits() ([]models.Habit, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	habits := make([]models.Habit, len(s.store.Habits))
	copy(habits, s.store.Habits)
	return habits, nil
}

func (s *JSONStore) SaveHabit(habit models.Habit) error {
	if err := s.loaded(); err != nil {
		return err
	}

	for i, h := range s.store.Habits {
		if h.ID == habit.ID {
			s.store.Habits[i] = habit
			return s.save()
		}
	}
	s.store.Habits = append(s.store.Habits, habit)
	return s.save()
}

func (s *JSONStore) DeleteHabit(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	// Idempotent: filtering out a missing id is a no-op, not an error.
	kept := s.store.Habits[:0]
	for _, h := range s.store.Habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	s.store.Habits = kept
	return s.save()
}

func (s *JSONStore) GetGoals() ([]models.Goal, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	goals := make([]models.Goal, len(s.store.Goals))
	copy(goals, s.store.Goals)
	return goals, nil
}

func (s *JSONStore) GetGoal(id string) (models.Goal, error) {
	if err := s.loaded(); err != nil {
		return models.Goal{}, err
	}

	for _, g := range s.store.Goals {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Goal{}, fmt.Errorf("goal %s: %w", id, errors.ErrNotFound)
}

func (s *JSONStore) SaveGoal(goal models.Goal) error {
	if err := s.loaded(); err != nil {
		return err
	}

	for i, g := range s.store.Goals {
		if g.ID == goal.ID {
			s.store.Goals[i] = goal
			return s.save()
		}
	}
	s.store.Goals = append(s.store.Goals, goal)
	return s.save()
}

func (s *JSONStore) DeleteGoal(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	kept := s.store.Goals[:0]
	for _, g := range s.store.Goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	s.store.Goals = kept
	return s.save()
}

func (s *JSONStore) GetGrid(week string) (models.Grid, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	key := planKey(week)
	raw, ok := s.store.Plans[key]
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

func (s *JSONStore) PutGrid(week string, grid models.Grid) error {
	if err := s.loaded(); err != nil {
		return err
	}

	// Empty grids are not stored; this keeps the plan key space free of
	// placeholder objects.
	if len(grid) == 0 {
		delete(s.store.Plans, planKey(week))
		return s.save()
	}

	raw, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("failed to serialize grid for %s: %w", week, err)
	}
	s.store.Plans[planKey(week)] = raw
	return s.save()
}

func (s *JSONStore) DeleteGrid(week string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	delete(s.store.Plans, planKey(week))
	return s.save()
}

func (s *JSONStore) ListGridWeeks() ([]string, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	var out []string
	for key := range s.store.Plans {
		out = append(out, strings.TrimPrefix(key, constants.PlanKeyPrefix))
	}
	sort.Strings(out)
	return out, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func planKey(week string) string {
	return constants.PlanKeyPrefix + week
}
