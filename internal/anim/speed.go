package anim

import (
	"errors"
	"fmt"
	"strings"
)

// Speed is an angle step magnitude in radians per tick.
type Speed float64

// Speeds offered by the UI.
const (
	Slow    Speed = 0.03
	Normal  Speed = 0.06
	Fast    Speed = 0.12
	Instant Speed = QuarterTurn
)

// ErrUnknownSpeed is returned by ParseSpeed.
var ErrUnknownSpeed = errors.New("anim: unknown speed")

// Speeds lists the selectable speeds from slowest to fastest.
var Speeds = []Speed{Slow, Normal, Fast, Instant}

func (s Speed) String() string {
	switch s {
	case Slow:
		return "slow"
	case Normal:
		return "normal"
	case Fast:
		return "fast"
	case Instant:
		return "instant"
	default:
		return fmt.Sprintf("%.3f", float64(s))
	}
}

// Step returns the signed step for a turn in the given direction
// (+1 or -1).
func (s Speed) Step(dir int) float64 {
	return float64(s) * float64(dir)
}

// ParseSpeed parses a speed name.
func ParseSpeed(name string) (Speed, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "slow":
		return Slow, nil
	case "normal", "":
		return Normal, nil
	case "fast":
		return Fast, nil
	case "instant":
		return Instant, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSpeed, name)
	}
}

// Next returns the next faster speed, wrapping to the slowest.
func (s Speed) Next() Speed {
	for i, sp := range Speeds {
		if sp == s {
			return Speeds[(i+1)%len(Speeds)]
		}
	}
	return Normal
}
