package cli

import (
	"fmt"

	"github.com/julianstephens/weekplan/internal/goals"
	"github.com/julianstephens/weekplan/internal/weeks"
)

type WeekCmd struct {
	Week string `arg:"" optional:"" help:"Week to describe (YYYY-WW). Defaults to the current week."`
}

func (c *WeekCmd) Run(ctx *Context) error {
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

	fmt.Println(weeks.FormatWeekDisplay(week))

	all, err := ctx.Goals.List()
	if err != nil {
		return err
	}
	active := 0
	for _, goal := range all {
		rec, status, err := goals.ActiveWeekRecordFor(goal, label)
		if err != nil {
			continue
		}
		if status != goals.StatusActive {
			continue
		}
		active++
		marker := ""
		if rec.IsPaused {
			marker = " (paused)"
		}
		fmt.Printf("  %s - week %d/%d: %s, %.1fh%s\n",
			goal.Title, rec.WeekNum, goal.TotalWeeks, rec.SubGoal, rec.Hours, marker)
	}
	if active == 0 {
		fmt.Println("  No active goals this week")
	}
	return nil
}
