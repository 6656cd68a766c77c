// Package tui is the interactive week-grid painter: a 7x48 half-hour grid
// per week, painted with the selected goal or a custom label, with habit
// overlays rendered read-only on top.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/models"
	"github.com/julianstephens/weekplan/internal/planner"
	"github.com/julianstephens/weekplan/internal/storage"
	"github.com/julianstephens/weekplan/internal/weeks"
)

type Model struct {
	store   storage.Provider
	planner *planner.Planner

	week    weeks.Week
	grid    models.Grid
	overlay map[string]models.Habit
	goals   []models.Goal

	cursorDay  int
	cursorSlot int
	tool       constants.Tool
	goalIdx    int

	now       time.Time
	keys      KeyMap
	help      help.Model
	showStats bool
	errMsg    string
	quitting  bool
	width     int
	height    int
}

func NewModel(store storage.Provider, pl *planner.Planner) Model {
	m := Model{
		store:      store,
		planner:    pl,
		week:       weeks.AddWeeks(weeks.CurrentWeek(), 0),
		tool:       constants.ToolGoal,
		cursorSlot: 16, // start the cursor at 08:00
		now:        time.Now(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}
	m.reload()
	return m
}

// tickMsg drives the header clock.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// reload refreshes the grid, overlay and goal list for the viewed week.
func (m *Model) reload() {
	m.errMsg = ""

	grid, err := m.planner.Grid(m.week.String())
	if err != nil {
		m.grid = models.Grid{}
		m.errMsg = err.Error()
	} else {
		m.grid = grid
	}

	habits, err := m.store.GetHabits()
	if err != nil {
		m.errMsg = err.Error()
		habits = nil
	}
	m.overlay = planner.HabitOverlayFor(habits, m.week)

	goals, err := m.store.GetGoals()
	if err != nil {
		m.errMsg = err.Error()
		goals = nil
	}
	m.goals = goals
	if m.goalIdx >= len(m.goals) {
		m.goalIdx = 0
	}
}

// session builds the planner session for the current tool and selection.
func (m Model) session() planner.Session {
	sess := planner.Session{Week: m.week.String(), Tool: m.tool}
	if m.tool == constants.ToolGoal && m.goalIdx < len(m.goals) {
		sess.ActiveGoalID = m.goals[m.goalIdx].ID
	}
	if m.tool == constants.ToolCustom {
		sess.CustomName = "Event"
	}
	return sess
}
