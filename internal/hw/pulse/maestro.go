package pulse

import (
	"fmt"
	"io"

	"github.com/cjeanneret/ptzgo/internal/debug"
	"github.com/tarm/serial"
)

// Pololu compact-protocol Set Target command byte. The target is the
// pulse width in quarter-microseconds, split into two 7-bit bytes.
const maestroSetTarget = 0x84

// MaestroDriver drives servos through a Pololu Maestro controller on a
// serial port, using the compact protocol.
type MaestroDriver struct {
	port io.WriteCloser
}

// NewMaestroDriver opens the serial port of the controller.
func NewMaestroDriver(portName string, baud int) (*MaestroDriver, error) {
	debug.Info("Initializing maestro pulse driver (port=%s baud=%d)", portName, baud)

	port, err := serial.OpenPort(&serial.Config{Name: portName, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %v: %w", portName, err, ErrHardware)
	}
	return &MaestroDriver{port: port}, nil
}

// maestroFrame encodes a Set Target command for one channel.
func maestroFrame(channel int, width Width) []byte {
	target := int(width) * 4 // quarter-microseconds
	return []byte{
		maestroSetTarget,
		byte(channel),
		byte(target & 0x7F),
		byte((target >> 7) & 0x7F),
	}
}

func (d *MaestroDriver) SetPulse(channel int, width Width) error {
	debug.Pulse(channel, int(width))

	if _, err := d.port.Write(maestroFrame(channel, width)); err != nil {
		return fmt.Errorf("set target on channel %d: %v: %w", channel, err, ErrHardware)
	}
	return nil
}

func (d *MaestroDriver) Close() error {
	debug.Trace("pulse Close (maestro driver)")
	if err := d.port.Close(); err != nil {
		return fmt.Errorf("close serial port: %v: %w", err, ErrHardware)
	}
	return nil
}
