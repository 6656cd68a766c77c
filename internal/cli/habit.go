package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/weekplan/internal/models"
	"github.com/julianstephens/weekplan/internal/weeks"
)

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Start       string `short:"s" help:"Start time (HH:MM, half-hour aligned)." required:""`
	End         string `short:"e" help:"End time (HH:MM, half-hour aligned)." required:""`
	StartDay    string `short:"d" help:"First day the habit applies (YYYY-WW-D). Defaults to today."`
	Description string `help:"Optional description."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	startDay := c.StartDay
	if startDay == "" {
		// Fold a raw week 53 at year end into the next year
		d := weeks.CurrentDay()
		w := weeks.AddWeeks(weeks.Week{Year: d.Year, Num: d.Week}, 0)
		startDay = weeks.Day{Year: w.Year, Week: w.Num, Num: d.Num}.String()
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		Name:        c.Name,
		Description: c.Description,
		StartTime:   c.Start,
		EndTime:     c.End,
		StartDay:    startDay,
	}
	if err := habit.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.SaveHabit(habit); err != nil {
		return err
	}
	fmt.Printf("Added habit: %s (%s-%s daily from %s)\n", habit.Name, habit.StartTime, habit.EndTime, habit.StartDay)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found")
		return nil
	}

	fmt.Println("Habits:")
	for _, h := range habits {
		fmt.Printf("  %s: %s-%s daily from %s\n", h.Name, h.StartTime, h.EndTime, h.StartDay)
		if h.Description != "" {
			fmt.Printf("      %s\n", h.Description)
		}
		fmt.Printf("      ID: %s\n", h.ID)
	}
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Store.DeleteHabit(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", c.ID)
	return nil
}
