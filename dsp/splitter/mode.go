package splitter

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects a splitting strategy.
type Mode int

const (
	LeftRight Mode = iota
	MidSide
	LowHigh
	TransientSteady
	PeakSteady
	None
)

// ErrUnknownMode is returned by ParseMode for unrecognized names.
var ErrUnknownMode = errors.New("splitter: unknown mode")

// Modes returns all modes in declaration order. The slice is fresh on
// every call.
func Modes() []Mode {
	return []Mode{LeftRight, MidSide, LowHigh, TransientSteady, PeakSteady, None}
}

func (m Mode) String() string {
	switch m {
	case LeftRight:
		return "lr"
	case MidSide:
		return "ms"
	case LowHigh:
		return "lh"
	case TransientSteady:
		return "ts"
	case PeakSteady:
		return "ps"
	case None:
		return "none"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= LeftRight && m <= None
}

// ParseMode accepts the short names returned by String as well as the
// spelled-out names ("left-right", "mid-side", "low-high",
// "transient-steady", "peak-steady").
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)

	switch key {
	case "lr", "left-right":
		return LeftRight, nil
	case "ms", "mid-side":
		return MidSide, nil
	case "lh", "low-high":
		return LowHigh, nil
	case "ts", "transient-steady":
		return TransientSteady, nil
	case "ps", "peak-steady":
		return PeakSteady, nil
	case "none", "off":
		return None, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}
