package pulse

import (
	"fmt"

	"github.com/cjeanneret/ptzgo/internal/debug"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/pca9685"
	"periph.io/x/host/v3"
)

// PCA9685 timing: 50 Hz frame split into 4096 counter ticks, so a
// pulse width in microseconds maps to width*4096/20000 ticks.
const (
	pcaFrameUs    = 20000
	pcaResolution = 4096
)

// PCA9685Driver drives servos through a PCA9685 16-channel PWM board
// on the I2C bus. The usual board address is 0x40.
type PCA9685Driver struct {
	bus i2c.BusCloser
	dev *pca9685.Dev
}

// NewPCA9685Driver opens the I2C bus and configures the board for the
// standard 50 Hz servo frame.
func NewPCA9685Driver(busName string, addr uint16) (*PCA9685Driver, error) {
	debug.Info("Initializing pca9685 pulse driver (bus=%q addr=%#x)", busName, addr)

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %v: %w", err, ErrHardware)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open I2C bus %q: %v: %w", busName, err, ErrHardware)
	}

	dev, err := pca9685.NewI2C(bus, addr)
	if err != nil {
		err = fmt.Errorf("init PCA9685 at %#x: %v: %w", addr, err, ErrHardware)
		return nil, multierr.Append(err, bus.Close())
	}
	if err := dev.SetPwmFreq(50 * physic.Hertz); err != nil {
		err = fmt.Errorf("set PCA9685 frequency: %v: %w", err, ErrHardware)
		return nil, multierr.Append(err, bus.Close())
	}

	return &PCA9685Driver{bus: bus, dev: dev}, nil
}

func (d *PCA9685Driver) SetPulse(channel int, width Width) error {
	debug.Pulse(channel, int(width))

	// Pulse starts at counter 0 and ends after width microseconds.
	off := gpio.Duty(int(width) * pcaResolution / pcaFrameUs)
	if err := d.dev.SetPwm(channel, 0, off); err != nil {
		return fmt.Errorf("set channel %d to %dµs: %v: %w", channel, int(width), err, ErrHardware)
	}
	return nil
}

func (d *PCA9685Driver) Close() error {
	debug.Trace("pulse Close (pca9685 driver)")
	if err := d.bus.Close(); err != nil {
		return fmt.Errorf("close I2C bus: %v: %w", err, ErrHardware)
	}
	return nil
}
