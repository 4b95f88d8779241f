package limits

import (
	"errors"
	"fmt"
)

// Axis identifies one of the two rotational degrees of freedom.
type Axis int

const (
	Pan Axis = iota
	Tilt
)

func (a Axis) String() string {
	switch a {
	case Pan:
		return "pan"
	case Tilt:
		return "tilt"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// ErrInvalidBounds is returned when an axis is configured with min > max.
// It is fatal at startup: no motion command runs with broken bounds.
var ErrInvalidBounds = errors.New("invalid axis bounds")

// Bounds is the allowed angle interval for one axis, in degrees.
type Bounds struct {
	Min float64
	Max float64
}

// Contains reports whether angle lies within the bounds.
func (b Bounds) Contains(angle float64) bool {
	return angle >= b.Min && angle <= b.Max
}

// Policy holds the per-axis angle bounds and clamps requested angles
// to them. Clamping is total and silent: out-of-range requests are a
// policy decision, not an error, and callers may warn if they care.
type Policy struct {
	pan  Bounds
	tilt Bounds
}

// NewPolicy validates the bounds once and builds the policy.
func NewPolicy(pan, tilt Bounds) (*Policy, error) {
	if pan.Min > pan.Max {
		return nil, fmt.Errorf("pan bounds [%g, %g]: %w", pan.Min, pan.Max, ErrInvalidBounds)
	}
	if tilt.Min > tilt.Max {
		return nil, fmt.Errorf("tilt bounds [%g, %g]: %w", tilt.Min, tilt.Max, ErrInvalidBounds)
	}
	return &Policy{pan: pan, tilt: tilt}, nil
}

// Bounds returns the configured bounds for an axis.
func (p *Policy) Bounds(a Axis) Bounds {
	if a == Tilt {
		return p.tilt
	}
	return p.pan
}

// Clamp returns angle unchanged when it lies within the axis bounds,
// otherwise the nearest bound.
func (p *Policy) Clamp(a Axis, angle float64) float64 {
	b := p.Bounds(a)
	if angle < b.Min {
		return b.Min
	}
	if angle > b.Max {
		return b.Max
	}
	return angle
}
