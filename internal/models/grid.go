package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/errors"
)

// Cell is one painted half-hour block on a week's planner grid. GoalID is
// set only for goal cells; it is a back-reference, not ownership: deleting a
// goal does not remove its tagged cells.
type Cell struct {
	Type   constants.CellType `json:"type"`
	Name   string             `json:"name"`
	GoalID string             `json:"goalId,omitempty"`
}

// Grid is a week's sparse cell map keyed by "day-slot" (day 0..6,
// slot 0..47). Only painted cells are stored; habit overlays never appear
// here.
type Grid map[string]Cell

// SlotKey builds the canonical "day-slot" cell key.
func SlotKey(day, slot int) string {
	return fmt.Sprintf("%d-%d", day, slot)
}

// ParseSlotKey splits a "day-slot" key back into coordinates.
func ParseSlotKey(key string) (day, slot int, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, errors.Validationf("invalid slot key %q", key)
	}
	day, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errors.Validationf("invalid slot key %q", key)
	}
	slot, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, errors.Validationf("invalid slot key %q", key)
	}
	if err := ValidateSlot(day, slot); err != nil {
		return 0, 0, err
	}
	return day, slot, nil
}

// ValidateSlot bounds-checks a grid coordinate.
func ValidateSlot(day, slot int) error {
	if day < 0 || day >= constants.DaysPerWeek {
		return errors.Validationf("day %d out of range 0..%d", day, constants.DaysPerWeek-1)
	}
	if slot < 0 || slot >= constants.SlotsPerDay {
		return errors.Validationf("slot %d out of range 0..%d", slot, constants.SlotsPerDay-1)
	}
	return nil
}

// Clone returns an independent copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out
}
