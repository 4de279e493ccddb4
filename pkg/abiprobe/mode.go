package abiprobe

import (
	"fmt"
	"strings"
)

// Mode selects which assignment table a fill uses.
type Mode int

// Fill modes.
const (
	ModePattern Mode = iota
	ModeRealistic

	modeCount
)

// Modes returns every supported mode in declaration order.
func Modes() []Mode {
	return []Mode{ModePattern, ModeRealistic}
}

func (m Mode) String() string {
	switch m {
	case ModePattern:
		return "pattern"
	case ModeRealistic:
		return "realistic"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) valid() bool {
	return m >= 0 && m < modeCount
}

// ParseMode converts "pattern" or "realistic" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pattern", "sentinel":
		return ModePattern, nil
	case "realistic", "real":
		return ModeRealistic, nil
	default:
		return 0, fmt.Errorf("unknown fill mode %q (want pattern or realistic)", s)
	}
}
