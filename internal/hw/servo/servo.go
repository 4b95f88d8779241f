package servo

import (
	"math"

	"github.com/cjeanneret/ptzgo/internal/debug"
	"github.com/cjeanneret/ptzgo/internal/hw/pulse"
)

// Calibration maps an axis's angle span onto its pulse span. The span
// is a hardware property of the servo and its mount, independent of
// the angle limits enforced upstream: a tilt axis limited to
// [-90°, 30°] still maps over the full mechanical span.
type Calibration struct {
	AngleMin float64
	AngleMax float64
	PulseMin pulse.Width
	PulseMax pulse.Width
}

// DefaultCalibration matches a standard hobby servo: ±90° over the
// 500-2500µs pulse range.
var DefaultCalibration = Calibration{
	AngleMin: -90,
	AngleMax: 90,
	PulseMin: pulse.MinWidth,
	PulseMax: pulse.MaxWidth,
}

// PulseForAngle converts an angle to a pulse width by linear
// interpolation between the two calibration points.
//
// The angle must already be clamped by the limit policy: the mapping
// does not re-validate and will extrapolate past the hardware pulse
// range for out-of-range angles.
func (c Calibration) PulseForAngle(angle float64) pulse.Width {
	span := c.AngleMax - c.AngleMin
	w := (angle-c.AngleMin)*float64(c.PulseMax-c.PulseMin)/span + float64(c.PulseMin)
	return pulse.Width(math.Round(w))
}

// Servo drives one physical servo channel through a pulse driver.
type Servo struct {
	driver  pulse.Driver
	name    string
	channel int
	cal     Calibration
}

// New creates a servo bound to a channel of the given driver.
func New(d pulse.Driver, name string, channel int, cal Calibration) *Servo {
	return &Servo{
		driver:  d,
		name:    name,
		channel: channel,
		cal:     cal,
	}
}

// Channel returns the physical channel identifier.
func (s *Servo) Channel() int {
	return s.channel
}

// Apply commands the servo to the given (already clamped) angle.
// Failures surface immediately and are never retried.
func (s *Servo) Apply(angle float64) error {
	w := s.cal.PulseForAngle(angle)
	debug.Trace("%s: angle %.2f° -> %dµs on channel %d", s.name, angle, int(w), s.channel)
	return s.driver.SetPulse(s.channel, w)
}
