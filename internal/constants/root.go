package constants

// CellType represents the kind of painted planner cell
type CellType string

// Tool represents the active painting tool on the planner grid
type Tool string

const (
	AppName           = "weekplan"
	DefaultConfigPath = "~/.config/weekplan/weekplan.db"
	Version           = "v0.3.0"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Week coordinate formats. Weeks are "YYYY-WW" (zero-padded), days are
	// "YYYY-WW-D" with 1=Monday..7=Sunday.
	WeekFormat = "%d-%02d"
	DayFormat  = "%d-%02d-%d"

	// WeeksPerYear fixes the simplified calendar: every year has exactly 52
	// weeks. 53-week Gregorian years are intentionally not modeled.
	WeeksPerYear = 52

	// Grid geometry: 7 day columns, 48 half-hour rows per day.
	DaysPerWeek = 7
	SlotsPerDay = 48
	SlotMinutes = 30

	// PlanKeyPrefix is the storage key prefix for per-week planner grids,
	// e.g. "plan_2025-10". Fixed for compatibility with existing data.
	PlanKeyPrefix = "plan_"

	// Cell types
	CellGoal   CellType = "goal"
	CellCustom CellType = "custom"

	// Painting tools
	ToolGoal   Tool = "goal"
	ToolCustom Tool = "custom"
	ToolErase  Tool = "erase"

	// PausedSubGoal is the placeholder description stamped on weeks inserted
	// by a pause.
	PausedSubGoal = "SHIFTED / PAUSED"

	// DefaultSubGoal is used when a week is created without a description.
	DefaultSubGoal = "No Description"
)
