package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/goals"
	"github.com/julianstephens/weekplan/internal/models"
	"github.com/julianstephens/weekplan/internal/planner"
	"github.com/julianstephens/weekplan/internal/weeks"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	goalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	customStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	habitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type PlanPaintCmd struct {
	Day  int    `arg:"" help:"Day column (0=Monday..6=Sunday)."`
	Slot int    `arg:"" help:"Half-hour slot row (0..47)."`
	Week string `short:"w" help:"Week to paint (YYYY-WW). Defaults to the current week."`
	Goal string `short:"g" help:"Goal ID to paint with."`
	Name string `short:"n" help:"Custom event name to paint with instead of a goal."`
}

func (c *PlanPaintCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	week, err := resolveWeek(c.Week)
	if err != nil {
		return err
	}

	sess := planner.Session{Week: week}
	switch {
	case c.Goal != "":
		sess.Tool = constants.ToolGoal
		sess.ActiveGoalID = c.Goal
	default:
		sess.Tool = constants.ToolCustom
		sess.CustomName = c.Name
	}

	if err := ctx.Planner.Paint(sess, c.Day, c.Slot); err != nil {
		return err
	}
	fmt.Printf("Painted %s slot %d-%d\n", week, c.Day, c.Slot)
	return nil
}

type PlanEraseCmd struct {
	Day  int    `arg:"" help:"Day column (0=Monday..6=Sunday)."`
	Slot int    `arg:"" help:"Half-hour slot row (0..47)."`
	Week string `short:"w" help:"Week to erase in (YYYY-WW). Defaults to the current week."`
}

func (c *PlanEraseCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	week, err := resolveWeek(c.Week)
	if err != nil {
		return err
	}

	sess := planner.Session{Week: week, Tool: constants.ToolErase}
	if err := ctx.Planner.Paint(sess, c.Day, c.Slot); err != nil {
		return err
	}
	fmt.Printf("Erased %s slot %d-%d\n", week, c.Day, c.Slot)
	return nil
}

type PlanShowCmd struct {
	Week string `arg:"" optional:"" help:"Week to show (YYYY-WW). Defaults to the current week."`
}

func (c *PlanShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	label, err := resolveWeek(c.Week)
	if err != nil {
		return err
	}
	week, err := weeks.ParseWeek(label)
	if err != nil {
		return err
	}

	grid, err := ctx.Planner.Grid(label)
	if err != nil {
		return err
	}
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}
	overlay := planner.HabitOverlayFor(habits, week)

	fmt.Println(headerStyle.Render(weeks.FormatWeekDisplay(week)))
	if len(grid) == 0 && len(overlay) == 0 {
		fmt.Println("Nothing planned")
		return nil
	}

	dayNames := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for day := 0; day < constants.DaysPerWeek; day++ {
		var lines []string
		for slot := 0; slot < constants.SlotsPerDay; slot++ {
			key := models.SlotKey(day, slot)
			if h, ok := overlay[key]; ok {
				lines = append(lines, habitStyle.Render(fmt.Sprintf("  %s  %s (habit)", slotClock(slot), h.Name)))
				continue
			}
			cell, ok := grid[key]
			if !ok {
				continue
			}
			switch cell.Type {
			case constants.CellGoal:
				lines = append(lines, goalStyle.Render(fmt.Sprintf("  %s  %s", slotClock(slot), cell.Name)))
			default:
				lines = append(lines, customStyle.Render(fmt.Sprintf("  %s  %s", slotClock(slot), cell.Name)))
			}
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Println(headerStyle.Render(dayNames[day]))
		fmt.Println(strings.Join(lines, "\n"))
	}
	return nil
}

// slotClock renders a slot index as its wall-clock start time.
func slotClock(slot int) string {
	min := slot * constants.SlotMinutes
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

type PlanClearCmd struct {
	Week string `arg:"" optional:"" help:"Week to clear (YYYY-WW). Defaults to the current week."`
}

func (c *PlanClearCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	week, err := resolveWeek(c.Week)
	if err != nil {
		return err
	}
	if err := ctx.Planner.ClearWeek(week); err != nil {
		return err
	}
	fmt.Printf("Cleared all painted cells for %s\n", week)
	return nil
}

type PlanStatsCmd struct {
	Week string `arg:"" optional:"" help:"Week to summarize (YYYY-WW). Defaults to the current week."`
}

func (c *PlanStatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	week, err := resolveWeek(c.Week)
	if err != nil {
		return err
	}
	grid, err := ctx.Planner.Grid(week)
	if err != nil {
		return err
	}

	stats := planner.ComputeStats(grid)
	fmt.Printf("%s: %d goal slots planned (%.1f hours)\n", week, stats.GoalSlots, stats.Hours)

	// Per-goal: painted hours vs the active week record's target
	perGoal := make(map[string]float64)
	for _, cell := range grid {
		if cell.Type == constants.CellGoal {
			perGoal[cell.GoalID] += 0.5
		}
	}

	all, err := ctx.Goals.List()
	if err != nil {
		return err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	for _, goal := range all {
		rec, status, err := goals.ActiveWeekRecordFor(goal, week)
		if err != nil {
			return err
		}
		painted := perGoal[goal.ID]
		delete(perGoal, goal.ID)
		if status != goals.StatusActive {
			if painted > 0 {
				fmt.Printf("  %s: %.1fh planned (%s this week)\n", goal.Title, painted, status)
			}
			continue
		}
		fmt.Printf("  %s: %.1fh planned of %.1fh target (week %d/%d)\n",
			goal.Title, painted, rec.Hours, rec.WeekNum, goal.TotalWeeks)
	}

	// Cells tagged with goals that no longer exist
	for id, painted := range perGoal {
		fmt.Printf("  (deleted goal %s): %.1fh planned\n", id, painted)
	}
	return nil
}
