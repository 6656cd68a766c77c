package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/weekplan/internal/errors"
	"github.com/julianstephens/weekplan/internal/models"
)

// schema is applied on Init. The layout is deliberately small: habits and
// goals as typed rows (a goal's week records travel with it as a JSON
// column, matching the whole-entity write semantics), and one row per painted
// week with the sparse cell map as JSON text.
const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	start_day TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS goals (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	total_weeks INTEGER NOT NULL,
	start_week TEXT NOT NULL,
	weeks TEXT NOT NULL,
	start_date TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS plans (
	week TEXT PRIMARY KEY,
	cells TEXT NOT NULL
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'weekplan init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Idempotent schema application doubles as version validation for the
	// single-schema layout.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetHabits() ([]models.Habit, error) {
	rows, err := s.db.Query("SELECT id, name, description, start_time, end_time, start_day FROM habits ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		var h models.Habit
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &h.StartTime, &h.EndTime, &h.StartDay); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *SQLiteStore) SaveHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO habits (id, name, description, start_time, end_time, start_day)
		VALUES (?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.Name, habit.Description, habit.StartTime, habit.EndTime, habit.StartDay,
	)
	return err
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	// Deleting a missing id is a no-op
	_, err := s.db.Exec("DELETE FROM habits WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) GetGoals() ([]models.Goal, error) {
	rows, err := s.db.Query("SELECT id, title, total_weeks, start_week, weeks, start_date FROM goals ORDER BY start_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *SQLiteStore) GetGoal(id string) (models.Goal, error) {
	row := s.db.QueryRow("SELECT id, title, total_weeks, start_week, weeks, start_date FROM goals WHERE id = ?", id)

	g, err := scanGoal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Goal{}, fmt.Errorf("goal %s: %w", id, errors.ErrNotFound)
		}
		return models.Goal{}, err
	}
	return g, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (models.Goal, error) {
	var g models.Goal
	var weeksJSON string
	if err := row.Scan(&g.ID, &g.Title, &g.TotalWeeks, &g.StartWeek, &weeksJSON, &g.StartDate); err != nil {
		return models.Goal{}, err
	}
	if err := json.Unmarshal([]byte(weeksJSON), &g.Weeks); err != nil {
		return models.Goal{}, errors.Corrupt("goal:"+g.ID, err)
	}
	return g, nil
}

func (s *SQLiteStore) SaveGoal(goal models.Goal) error {
	weeksJSON, err := json.Marshal(goal.Weeks)
	if err != nil {
		return fmt.Errorf("failed to marshal goal weeks: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO goals (id, title, total_weeks, start_week, weeks, start_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.Title, goal.TotalWeeks, goal.StartWeek, string(weeksJSON), goal.StartDate,
	)
	return err
}

func (s *SQLiteStore) DeleteGoal(id string) error {
	_, err := s.db.Exec("DELETE FROM goals WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) GetGrid(week string) (models.Grid, error) {
	var cells string
	err := s.db.QueryRow("SELECT cells FROM plans WHERE week = ?", week).Scan(&cells)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Grid{}, nil
		}
		return nil, err
	}

	var grid models.Grid
	if err := json.Unmarshal([]byte(cells), &grid); err != nil {
		return nil, errors.Corrupt(planKey(week), err)
	}
	if grid == nil {
		grid = models.Grid{}
	}
	return grid, nil
}

func (s *SQLiteStore) PutGrid(week string, grid models.Grid) error {
	if len(grid) == 0 {
		return s.DeleteGrid(week)
	}

	cells, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("failed to serialize grid for %s: %w", week, err)
	}

	_, err = s.db.Exec("INSERT OR REPLACE INTO plans (week, cells) VALUES (?, ?)", week, string(cells))
	return err
}

func (s *SQLiteStore) DeleteGrid(week string) error {
	_, err := s.db.Exec("DELETE FROM plans WHERE week = ?", week)
	return err
}

func (s *SQLiteStore) ListGridWeeks() ([]string, error) {
	rows, err := s.db.Query("SELECT week FROM plans ORDER BY week")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var week string
		if err := rows.Scan(&week); err != nil {
			return nil, err
		}
		out = append(out, week)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection for diagnostics.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
