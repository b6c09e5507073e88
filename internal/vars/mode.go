package vars

import (
	"fmt"
	"strings"
)

// Mode selects how many questions are asked.
type Mode string

const (
	Easy   Mode = "easy"
	Expert Mode = "expert"
	// All disables filtering: every variable is asked.
	All Mode = "all"
)

// ModeVarName is the variable whose answer switches the active mode.
const ModeVarName = "expert_mode"

// DefaultModes is the mode set given to variables that do not declare one.
var DefaultModes = []Mode{Easy, Expert}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Easy, Expert, All:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want easy, expert or all)", s)
	}
}

// Hidden returns, for every variable not asked in mode, its name mapped to
// its default. Mode All hides nothing.
func Hidden(mode Mode, list []Var) map[string]any {
	hidden := make(map[string]any)
	if mode == All {
		return hidden
	}
	for i := range list {
		if !list[i].AskedIn(mode) {
			hidden[list[i].Name] = list[i].Default
		}
	}
	return hidden
}
