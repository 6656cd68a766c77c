package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/planner"
	"github.com/julianstephens/weekplan/internal/weeks"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Up):
			if m.cursorSlot > 0 {
				m.cursorSlot--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursorSlot < constants.SlotsPerDay-1 {
				m.cursorSlot++
			}
		case key.Matches(msg, m.keys.Left):
			if m.cursorDay > 0 {
				m.cursorDay--
			}
		case key.Matches(msg, m.keys.Right):
			if m.cursorDay < constants.DaysPerWeek-1 {
				m.cursorDay++
			}

		case key.Matches(msg, m.keys.PrevWeek):
			m.week = weeks.AddWeeks(m.week, -1)
			m.reload()
		case key.Matches(msg, m.keys.NextWeek):
			m.week = weeks.AddWeeks(m.week, 1)
			m.reload()
		case key.Matches(msg, m.keys.ThisWeek):
			m.week = weeks.AddWeeks(weeks.CurrentWeek(), 0)
			m.reload()

		case key.Matches(msg, m.keys.Tool):
			if m.tool == constants.ToolGoal {
				m.tool = constants.ToolCustom
			} else {
				m.tool = constants.ToolGoal
			}

		case key.Matches(msg, m.keys.Goal):
			if len(m.goals) > 0 {
				m.goalIdx = (m.goalIdx + 1) % len(m.goals)
				m.tool = constants.ToolGoal
			}

		case key.Matches(msg, m.keys.Stats):
			m.showStats = !m.showStats

		case key.Matches(msg, m.keys.Paint):
			m.paint(m.session())

		case key.Matches(msg, m.keys.Erase):
			m.paint(planner.Session{Week: m.week.String(), Tool: constants.ToolErase})
		}
	}

	return m, nil
}

func (m *Model) paint(sess planner.Session) {
	if err := m.planner.Paint(sess, m.cursorDay, m.cursorSlot); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.reload()
}
