package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cjeanneret/ptzgo/internal/hw/pulse"
	"github.com/cjeanneret/ptzgo/internal/hw/servo"
	"github.com/cjeanneret/ptzgo/internal/logic/limits"
)

// AxisConfig holds the physical channel and angle bounds for one axis.
type AxisConfig struct {
	Channel int     `yaml:"channel"`
	MinDeg  float64 `yaml:"min_deg"`
	MaxDeg  float64 `yaml:"max_deg"`
}

// CalibrationConfig maps the mechanical angle span to the pulse span.
// It is a property of the servos, separate from the axis bounds.
type CalibrationConfig struct {
	AngleMinDeg float64 `yaml:"angle_min_deg"`
	AngleMaxDeg float64 `yaml:"angle_max_deg"`
	PulseMinUs  int     `yaml:"pulse_min_us"`
	PulseMaxUs  int     `yaml:"pulse_max_us"`
}

// DriverConfig selects the pulse-signal backend.
type DriverConfig struct {
	Type       string `yaml:"type"`        // "mock", "rpio", "pca9685", "maestro"
	SerialPort string `yaml:"serial_port"` // maestro
	SerialBaud int    `yaml:"serial_baud"` // maestro
	I2CBus     string `yaml:"i2c_bus"`     // pca9685; empty = first bus
	I2CAddr    uint16 `yaml:"i2c_addr"`    // pca9685
}

// DefaultsConfig contains generic motion parameters.
type DefaultsConfig struct {
	SmoothMs   int `yaml:"smooth_ms"`   // default smoothing for move
	TickMs     int `yaml:"tick_ms"`     // interpolation tick interval
	DebugLevel int `yaml:"debug_level"` // debug level 0-4
}

// Config aggregates all application configuration.
type Config struct {
	Pan         AxisConfig        `yaml:"pan"`
	Tilt        AxisConfig        `yaml:"tilt"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Driver      DriverConfig      `yaml:"driver"`
	Defaults    DefaultsConfig    `yaml:"defaults"`
	StatePath   string            `yaml:"state_path"` // empty = per-user cache path
}

// Default returns the built-in configuration: pan on BCM 13 over
// [-90°, 90°], tilt on BCM 12 over [-90°, 30°], standard hobby-servo
// calibration, hardware PWM driver, 300ms smoothing at 20ms ticks.
func Default() *Config {
	return &Config{
		Pan:  AxisConfig{Channel: 13, MinDeg: -90, MaxDeg: 90},
		Tilt: AxisConfig{Channel: 12, MinDeg: -90, MaxDeg: 30},
		Calibration: CalibrationConfig{
			AngleMinDeg: -90,
			AngleMaxDeg: 90,
			PulseMinUs:  500,
			PulseMaxUs:  2500,
		},
		Driver: DriverConfig{
			Type:       "rpio",
			SerialPort: "/dev/ttyACM0",
			SerialBaud: 9600,
			I2CAddr:    0x40,
		},
		Defaults: DefaultsConfig{
			SmoothMs: 300,
			TickMs:   20,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "ptzgo", "config.yaml"), nil
}

// Load reads a YAML file over the built-in defaults and validates the
// result. A missing file is fine: the defaults apply as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration once, before any motion.
func (c *Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return err
	}
	if c.Calibration.AngleMinDeg >= c.Calibration.AngleMaxDeg {
		return fmt.Errorf("calibration angle span [%g, %g]: %w",
			c.Calibration.AngleMinDeg, c.Calibration.AngleMaxDeg, limits.ErrInvalidBounds)
	}
	if c.Calibration.PulseMinUs >= c.Calibration.PulseMaxUs {
		return fmt.Errorf("calibration pulse span [%d, %d]: %w",
			c.Calibration.PulseMinUs, c.Calibration.PulseMaxUs, limits.ErrInvalidBounds)
	}
	if c.Defaults.SmoothMs < 0 {
		return fmt.Errorf("smooth_ms must be >= 0, got %d", c.Defaults.SmoothMs)
	}
	if c.Defaults.TickMs <= 0 {
		c.Defaults.TickMs = 20
	}
	if c.Defaults.DebugLevel < 0 || c.Defaults.DebugLevel > 4 {
		return fmt.Errorf("debug_level must be 0-4, got %d", c.Defaults.DebugLevel)
	}
	return nil
}

// Policy builds the limit policy from the axis bounds.
func (c *Config) Policy() (*limits.Policy, error) {
	return limits.NewPolicy(
		limits.Bounds{Min: c.Pan.MinDeg, Max: c.Pan.MaxDeg},
		limits.Bounds{Min: c.Tilt.MinDeg, Max: c.Tilt.MaxDeg},
	)
}

// ServoCalibration converts the calibration section for the mapper.
func (c *Config) ServoCalibration() servo.Calibration {
	return servo.Calibration{
		AngleMin: c.Calibration.AngleMinDeg,
		AngleMax: c.Calibration.AngleMaxDeg,
		PulseMin: pulse.Width(c.Calibration.PulseMinUs),
		PulseMax: pulse.Width(c.Calibration.PulseMaxUs),
	}
}

// PulseConfig converts the driver section for the pulse factory.
func (c *Config) PulseConfig() pulse.Config {
	return pulse.Config{
		Type:       c.Driver.Type,
		SerialPort: c.Driver.SerialPort,
		SerialBaud: c.Driver.SerialBaud,
		I2CBus:     c.Driver.I2CBus,
		I2CAddr:    c.Driver.I2CAddr,
	}
}

// Smooth returns the default smoothing duration for moves.
func (c *Config) Smooth() time.Duration {
	return time.Duration(c.Defaults.SmoothMs) * time.Millisecond
}

// Tick returns the interpolation tick interval.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.Defaults.TickMs) * time.Millisecond
}
