package pulse

import (
	"fmt"

	"github.com/cjeanneret/ptzgo/internal/debug"
	"github.com/stianeikeland/go-rpio/v4"
)

// Servo PWM timing: 50 Hz frame, 20000-tick cycle, so one duty tick
// is exactly one microsecond of pulse width.
const (
	rpioFrameHz   = 50
	rpioCycleLen  = 20000
	rpioClockFreq = rpioFrameHz * rpioCycleLen
)

// RPIODriver drives servos from the Pi's hardware PWM using go-rpio.
// Only the hardware PWM pins (BCM 12, 13, 18, 19) can carry a channel;
// the default pan=13 / tilt=12 wiring uses two of them.
type RPIODriver struct {
	pins map[int]rpio.Pin
}

// NewRPIODriver memory-maps the GPIO registers. Requires running on a
// Raspberry Pi with access to /dev/gpiomem or as root.
func NewRPIODriver() (*RPIODriver, error) {
	debug.Info("Initializing rpio pulse driver (hardware PWM)")

	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open GPIO: %v (are you running on a Raspberry Pi?): %w", err, ErrHardware)
	}

	return &RPIODriver{
		pins: make(map[int]rpio.Pin),
	}, nil
}

func (r *RPIODriver) SetPulse(channel int, width Width) error {
	debug.Pulse(channel, int(width))

	p, ok := r.pins[channel]
	if !ok {
		p = rpio.Pin(channel)
		p.Mode(rpio.Pwm)
		p.Freq(rpioClockFreq)
		r.pins[channel] = p
	}

	p.DutyCycle(uint32(width), rpioCycleLen)
	return nil
}

func (r *RPIODriver) Close() error {
	debug.Trace("pulse Close (rpio driver)")

	// Stop driving the pins before unmapping (safe state).
	for channel, p := range r.pins {
		debug.Trace("resetting channel %d to input", channel)
		p.Input()
	}

	if err := rpio.Close(); err != nil {
		return fmt.Errorf("close GPIO: %v: %w", err, ErrHardware)
	}
	return nil
}
