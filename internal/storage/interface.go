package storage

import "github.com/julianstephens/weekplan/internal/models"

// Provider is the key-value persistence surface for the three entity
// collections. All writes are whole-value read-modify-write; there are no
// transactions across keys and a single writer is assumed.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	GetHabits() ([]models.Habit, error)
	SaveHabit(models.Habit) error
	DeleteHabit(id string) error

	// Goals
	GetGoals() ([]models.Goal, error)
	GetGoal(id string) (models.Goal, error)
	SaveGoal(models.Goal) error
	DeleteGoal(id string) error

	// Planner grids, keyed by normalized week string "YYYY-WW". A missing
	// grid reads as empty; putting an empty grid deletes the key.
	GetGrid(week string) (models.Grid, error)
	PutGrid(week string, grid models.Grid) error
	DeleteGrid(week string) error
	ListGridWeeks() ([]string, error)

	// Utils
	GetConfigPath() string
}
