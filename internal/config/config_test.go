package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cjeanneret/ptzgo/internal/logic/limits"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}

	if cfg.Pan.Channel != 13 || cfg.Tilt.Channel != 12 {
		t.Errorf("default channels pan=%d tilt=%d, want 13/12", cfg.Pan.Channel, cfg.Tilt.Channel)
	}
	if cfg.Tilt.MaxDeg != 30 {
		t.Errorf("default tilt max = %g, want 30", cfg.Tilt.MaxDeg)
	}
	if cfg.Driver.Type != "rpio" {
		t.Errorf("default driver = %q, want rpio", cfg.Driver.Type)
	}
	if cfg.Smooth() != 300*time.Millisecond || cfg.Tick() != 20*time.Millisecond {
		t.Errorf("default timings smooth=%v tick=%v", cfg.Smooth(), cfg.Tick())
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
pan:
  channel: 5
  min_deg: -45
  max_deg: 45
driver:
  type: pca9685
  i2c_addr: 0x41
defaults:
  smooth_ms: 150
  debug_level: 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Pan.Channel != 5 || cfg.Pan.MinDeg != -45 || cfg.Pan.MaxDeg != 45 {
		t.Errorf("pan section not applied: %+v", cfg.Pan)
	}
	// Untouched sections keep their defaults.
	if cfg.Tilt.Channel != 12 || cfg.Tilt.MaxDeg != 30 {
		t.Errorf("tilt defaults lost: %+v", cfg.Tilt)
	}
	if cfg.Driver.Type != "pca9685" || cfg.Driver.I2CAddr != 0x41 {
		t.Errorf("driver section not applied: %+v", cfg.Driver)
	}
	if cfg.Defaults.SmoothMs != 150 || cfg.Defaults.DebugLevel != 2 {
		t.Errorf("defaults section not applied: %+v", cfg.Defaults)
	}
}

func TestLoad_InvalidBounds(t *testing.T) {
	path := writeConfig(t, `
tilt:
  channel: 12
  min_deg: 40
  max_deg: 30
`)

	if _, err := Load(path); !errors.Is(err, limits.ErrInvalidBounds) {
		t.Errorf("min > max should wrap ErrInvalidBounds, got %v", err)
	}
}

func TestLoad_InvalidCalibration(t *testing.T) {
	path := writeConfig(t, `
calibration:
  angle_min_deg: 90
  angle_max_deg: -90
  pulse_min_us: 500
  pulse_max_us: 2500
`)

	if _, err := Load(path); !errors.Is(err, limits.ErrInvalidBounds) {
		t.Errorf("inverted calibration should wrap ErrInvalidBounds, got %v", err)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "pan: [not: a: mapping")

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate_DebugLevelRange(t *testing.T) {
	cfg := Default()
	cfg.Defaults.DebugLevel = 9
	if err := cfg.Validate(); err == nil {
		t.Error("debug_level 9 should be rejected")
	}
}

func TestServoCalibration(t *testing.T) {
	cal := Default().ServoCalibration()
	if cal.AngleMin != -90 || cal.AngleMax != 90 || cal.PulseMin != 500 || cal.PulseMax != 2500 {
		t.Errorf("default calibration %+v", cal)
	}
}
