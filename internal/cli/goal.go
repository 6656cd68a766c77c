package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/julianstephens/weekplan/internal/errors"
	"github.com/julianstephens/weekplan/internal/goals"
	"github.com/julianstephens/weekplan/internal/models"
	"github.com/julianstephens/weekplan/internal/weeks"
)

type GoalAddCmd struct {
	Title       string `arg:"" help:"Goal title."`
	Weeks       int    `short:"w" help:"Goal duration in weeks." required:""`
	Start       string `short:"s" help:"Start week (YYYY-WW). Defaults to the current week."`
	Interactive bool   `short:"i" help:"Collect per-week hours and sub-goals interactively."`
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	start, err := resolveWeek(c.Start)
	if err != nil {
		return err
	}

	var inputs []goals.WeekInput
	if c.Interactive {
		inputs, err = collectWeekInputs(c.Weeks, start, nil)
		if err != nil {
			return err
		}
	}

	goal, err := ctx.Goals.CreateGoal(c.Title, c.Weeks, start, inputs)
	if err != nil {
		return err
	}
	fmt.Printf("Added goal: %s (%d weeks from %s, ID: %s)\n", goal.Title, goal.TotalWeeks, goal.StartWeek, goal.ID)
	return nil
}

type GoalListCmd struct {
	Week string `help:"Show each goal's status relative to this week (YYYY-WW). Defaults to the current week."`
}

func (c *GoalListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	viewed, err := resolveWeek(c.Week)
	if err != nil {
		return err
	}

	all, err := ctx.Goals.List()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No goals found")
		return nil
	}

	fmt.Println("Goals:")
	for _, goal := range all {
		rec, status, err := goals.ActiveWeekRecordFor(goal, viewed)
		if err != nil {
			return err
		}
		end, err := goal.EndWeek()
		if err != nil {
			return err
		}

		fmt.Printf("  [%s] %s - %s to %s (%d weeks)\n", status, goal.Title, goal.StartWeek, end, goal.TotalWeeks)
		if rec != nil {
			fmt.Printf("      This week (%d/%d): %s, %.1fh\n", rec.WeekNum, goal.TotalWeeks, rec.SubGoal, rec.Hours)
		}
		fmt.Printf("      ID: %s\n", goal.ID)
	}
	return nil
}

type GoalEditCmd struct {
	ID string `arg:"" help:"Goal ID."`
}

func (c *GoalEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	existing, err := ctx.Goals.Get(c.ID)
	if err != nil {
		return err
	}

	title := existing.Title
	totalWeeksStr := strconv.Itoa(existing.TotalWeeks)
	start := existing.StartWeek

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&title),
			huh.NewInput().
				Title("Duration (weeks)").
				Value(&totalWeeksStr).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i < 1 {
						return fmt.Errorf("duration must be at least 1 week")
					}
					return nil
				}),
			huh.NewInput().
				Title("Start week (YYYY-WW)").
				Value(&start).
				Validate(func(s string) error {
					_, err := weeks.ParseWeek(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return err
	}

	totalWeeks, err := strconv.Atoi(totalWeeksStr)
	if err != nil {
		return err
	}
	start, err = weeks.Normalize(start)
	if err != nil {
		return err
	}

	inputs, err := collectWeekInputs(totalWeeks, start, existing.Weeks)
	if err != nil {
		return err
	}

	// Skip the write entirely when the form changed nothing.
	before, err := hashstructure.Hash(editSnapshot(existing), hashstructure.FormatV2, nil)
	if err != nil {
		return err
	}
	after, err := hashstructure.Hash(goalEdit{Title: title, TotalWeeks: totalWeeks, StartWeek: start, Inputs: inputs}, hashstructure.FormatV2, nil)
	if err != nil {
		return err
	}
	if before == after {
		fmt.Println("No changes")
		return nil
	}

	updated, err := ctx.Goals.UpdateGoal(c.ID, title, totalWeeks, start, inputs)
	if err != nil {
		return err
	}
	fmt.Printf("Updated goal: %s\n", updated.Title)
	return nil
}

// goalEdit is the hashable shape of an edit form's result.
type goalEdit struct {
	Title      string
	TotalWeeks int
	StartWeek  string
	Inputs     []goals.WeekInput
}

func editSnapshot(goal models.Goal) goalEdit {
	inputs := make([]goals.WeekInput, len(goal.Weeks))
	for i, rec := range goal.Weeks {
		inputs[i] = goals.WeekInput{Hours: rec.Hours, SubGoal: rec.SubGoal}
	}
	return goalEdit{Title: goal.Title, TotalWeeks: goal.TotalWeeks, StartWeek: goal.StartWeek, Inputs: inputs}
}

// collectWeekInputs walks a huh form across every week of the goal. Existing
// records pre-fill the fields when editing.
func collectWeekInputs(totalWeeks int, startWeek string, existing []models.WeekRecord) ([]goals.WeekInput, error) {
	start, err := weeks.ParseWeek(startWeek)
	if err != nil {
		return nil, err
	}

	hours := make([]string, totalWeeks)
	subs := make([]string, totalWeeks)
	for i := 0; i < totalWeeks; i++ {
		if i < len(existing) {
			hours[i] = strconv.FormatFloat(existing[i].Hours, 'f', -1, 64)
			subs[i] = existing[i].SubGoal
		}
	}

	groups := make([]*huh.Group, totalWeeks)
	for i := 0; i < totalWeeks; i++ {
		label := weeks.AddWeeks(start, i)
		groups[i] = huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Week %d (%s) - target hours", i+1, label)).
				Value(&hours[i]).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					f, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return err
					}
					if f < 0 {
						return fmt.Errorf("hours must not be negative")
					}
					return nil
				}),
			huh.NewInput().
				Title(fmt.Sprintf("Week %d (%s) - sub-goal", i+1, label)).
				Value(&subs[i]),
		)
	}

	if err := huh.NewForm(groups...).WithTheme(huh.ThemeDracula()).Run(); err != nil {
		return nil, err
	}

	inputs := make([]goals.WeekInput, totalWeeks)
	for i := 0; i < totalWeeks; i++ {
		if s := strings.TrimSpace(hours[i]); s != "" {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, errors.Validationf("invalid hours %q for week %d", s, i+1)
			}
			inputs[i].Hours = f
		}
		inputs[i].SubGoal = strings.TrimSpace(subs[i])
	}
	return inputs, nil
}

type GoalDeleteCmd struct {
	ID string `arg:"" help:"Goal ID."`
}

func (c *GoalDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Goals.DeleteGoal(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted goal: %s\n", c.ID)
	fmt.Println("Painted cells referencing it remain; run 'weekplan doctor --fix' to clean them up.")
	return nil
}

type GoalShiftCmd struct {
	ID string `arg:"" help:"Goal ID."`
	By int    `arg:"" help:"Signed number of weeks to shift by (negative shifts earlier)."`
}

func (c *GoalShiftCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Shift.ShiftGoal(c.ID, c.By); err != nil {
		return err
	}

	goal, err := ctx.Goals.Get(c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Shifted goal %s by %+d weeks; now starts %s\n", goal.Title, c.By, goal.StartWeek)
	return nil
}

type GoalPauseCmd struct {
	ID    string `arg:"" help:"Goal ID."`
	Weeks int    `arg:"" help:"Number of paused placeholder weeks to insert."`
}

func (c *GoalPauseCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	goal, err := ctx.Goals.PauseGoal(c.ID, c.Weeks)
	if err != nil {
		return err
	}
	fmt.Printf("Paused goal %s for %d weeks; timeline is now %d weeks\n", goal.Title, c.Weeks, goal.TotalWeeks)
	return nil
}
