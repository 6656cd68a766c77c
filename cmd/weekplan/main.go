package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/weekplan/internal/cli"
	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/errors"
	"github.com/julianstephens/weekplan/internal/goals"
	"github.com/julianstephens/weekplan/internal/logger"
	"github.com/julianstephens/weekplan/internal/planner"
	"github.com/julianstephens/weekplan/internal/shift"
	"github.com/julianstephens/weekplan/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init  cli.InitCmd `cmd:"" help:"Initialize weekplan storage."`
	Tui   cli.TuiCmd  `cmd:"" help:"Launch the interactive week grid." default:"1"`
	Week  cli.WeekCmd `cmd:"" help:"Show a week and its active goals."`
	Habit struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a recurring habit."`
		List   cli.HabitListCmd   `cmd:"" help:"List all habits."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	} `cmd:"" help:"Manage habits."`
	Goal struct {
		Add    cli.GoalAddCmd    `cmd:"" help:"Add a multi-week goal."`
		List   cli.GoalListCmd   `cmd:"" help:"List all goals."`
		Edit   cli.GoalEditCmd   `cmd:"" help:"Edit a goal interactively."`
		Delete cli.GoalDeleteCmd `cmd:"" help:"Delete a goal."`
		Shift  cli.GoalShiftCmd  `cmd:"" help:"Shift a goal and its painted cells by N weeks."`
		Pause  cli.GoalPauseCmd  `cmd:"" help:"Insert paused placeholder weeks at the front of a goal."`
	} `cmd:"" help:"Manage goals."`
	Plan struct {
		Paint cli.PlanPaintCmd `cmd:"" help:"Paint one grid cell."`
		Erase cli.PlanEraseCmd `cmd:"" help:"Erase one grid cell."`
		Show  cli.PlanShowCmd  `cmd:"" help:"Show a week's planned cells."`
		Clear cli.PlanClearCmd `cmd:"" help:"Clear all painted cells for a week."`
		Stats cli.PlanStatsCmd `cmd:"" help:"Summarize a week's planned goal hours."`
	} `cmd:"" help:"Paint and inspect week grids."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run storage diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Week-based goal planner / time-blocking companion"),
		kong.UsageOnError(),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		// Logging is best-effort; the CLI still works without the file log.
		fmt.Fprintf(os.Stderr, "warning: failed to initialize logging: %v\n", err)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:   store,
		Goals:   goals.New(store),
		Shift:   shift.New(store),
		Planner: planner.New(store),
	}

	errors.Fatal(ctx.Run(appCtx))
}
