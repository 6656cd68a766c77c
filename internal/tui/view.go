package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/models"
	"github.com/julianstephens/weekplan/internal/planner"
	"github.com/julianstephens/weekplan/internal/weeks"
)

var dayHeaders = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// cellWidth is the rendered width of one grid cell, sized to the day header
// column layout.
const cellWidth = 5

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := weeks.FormatWeekDisplay(m.week)
	if m.week == weeks.AddWeeks(weeks.WeekOf(m.now), 0) {
		title += " (current)"
	}
	title += "  " + m.now.Format("Mon 15:04")

	sections := []string{
		titleStyle.Render(title),
		m.viewGrid(),
		m.viewStatus(),
	}
	if m.showStats {
		sections = append(sections, m.viewStats())
	}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewGrid() string {
	var b strings.Builder

	b.WriteString("       ")
	for _, name := range dayHeaders {
		b.WriteString(fmt.Sprintf("%-*s", cellWidth, name))
	}
	b.WriteString("\n")

	for slot := 0; slot < constants.SlotsPerDay; slot++ {
		min := slot * constants.SlotMinutes
		b.WriteString(fmt.Sprintf("%02d:%02d  ", min/60, min%60))
		for day := 0; day < constants.DaysPerWeek; day++ {
			b.WriteString(m.renderCell(day, slot))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCell(day, slot int) string {
	key := models.SlotKey(day, slot)

	var body string
	var style lipgloss.Style
	if habit, ok := m.overlay[key]; ok {
		body = clip(habit.Name, cellWidth-1)
		style = habitCellStyle
	} else if cell, ok := m.grid[key]; ok {
		body = clip(cell.Name, cellWidth-1)
		if cell.Type == constants.CellGoal {
			style = goalCellStyle
		} else {
			style = customCellStyle
		}
	} else {
		body = "."
		style = emptyCellStyle
	}

	text := fmt.Sprintf("%-*s", cellWidth, body)
	if day == m.cursorDay && slot == m.cursorSlot {
		return cursorStyle.Render(text)
	}
	return style.Render(text)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (m Model) viewStatus() string {
	tool := string(m.tool)
	if m.tool == constants.ToolGoal {
		if m.goalIdx < len(m.goals) {
			tool = fmt.Sprintf("goal: %s", m.goals[m.goalIdx].Title)
		} else {
			tool = "goal: none selected"
		}
	}
	min := m.cursorSlot * constants.SlotMinutes
	return statusStyle.Render(fmt.Sprintf("%s %02d:%02d | tool: %s",
		dayHeaders[m.cursorDay], min/60, min%60, tool))
}

func (m Model) viewStats() string {
	stats := planner.ComputeStats(m.grid)
	return statusStyle.Render(fmt.Sprintf("%d goal slots planned (%.1f hours)", stats.GoalSlots, stats.Hours))
}
