package pulse

import (
	"errors"
	"fmt"

	"github.com/cjeanneret/ptzgo/internal/debug"
)

// Width is a servo pulse width in microseconds.
type Width int

// Hardware pulse range for standard hobby servos. These bound what the
// signal hardware accepts, independently of any angle limit.
const (
	MinWidth Width = 500
	MaxWidth Width = 2500
)

// ErrHardware marks a failed pulse command. It is never retried here:
// retrying a servo command without knowing whether the previous one
// landed risks motion glitches, so the failure surfaces immediately.
var ErrHardware = errors.New("pulse signal failed")

// Driver defines the abstract interface for the pulse-signal backend.
// A call is equivalent to "set channel C to width W microseconds".
// This allows plugging in real Raspberry Pi implementations or a mock
// for development on PC.
type Driver interface {
	SetPulse(channel int, width Width) error
	Close() error
}

// Config selects and parameterizes a driver backend.
type Config struct {
	Type       string // "mock", "rpio", "pca9685" or "maestro"
	SerialPort string // maestro only
	SerialBaud int    // maestro only
	I2CBus     string // pca9685 only; empty = first available bus
	I2CAddr    uint16 // pca9685 only
}

// NewDriver creates a pulse driver based on the configured type.
func NewDriver(cfg Config) (Driver, error) {
	switch cfg.Type {
	case "mock":
		debug.Info("Using MOCK pulse driver (development mode)")
		return &MockDriver{}, nil
	case "rpio":
		return NewRPIODriver()
	case "pca9685":
		return NewPCA9685Driver(cfg.I2CBus, cfg.I2CAddr)
	case "maestro":
		return NewMaestroDriver(cfg.SerialPort, cfg.SerialBaud)
	default:
		return nil, fmt.Errorf("unsupported pulse driver type: %q", cfg.Type)
	}
}

// MockDriver is a test implementation that simply logs pulses.
// Used for development on PC or testing.
type MockDriver struct{}

func (m *MockDriver) SetPulse(channel int, width Width) error {
	debug.Pulse(channel, int(width))
	return nil
}

func (m *MockDriver) Close() error {
	debug.Trace("pulse Close (mock)")
	return nil
}
