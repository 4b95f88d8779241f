package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/ptzgo/internal/config"
	"github.com/cjeanneret/ptzgo/internal/debug"
	"github.com/cjeanneret/ptzgo/internal/hw/camera"
	"github.com/cjeanneret/ptzgo/internal/hw/pulse"
	"github.com/cjeanneret/ptzgo/internal/hw/servo"
	"github.com/cjeanneret/ptzgo/internal/logic/limits"
	"github.com/cjeanneret/ptzgo/internal/logic/motion"
	"github.com/cjeanneret/ptzgo/internal/state"
)

var (
	cfgPath    string
	debugLevel int
	driverType string
	panMin     float64
	panMax     float64
	tiltMin    float64
	tiltMax    float64
)

var rootCmd = &cobra.Command{
	Use:   "ptzgo",
	Short: "Pan/tilt head positioning and camera capture for Raspberry Pi",
	Long: `ptzgo positions a two-axis pan/tilt servo mount and triggers photo or
video capture through the rpicam-apps binaries. The last commanded
position persists across invocations in a per-user state file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default: <user config dir>/ptzgo/config.yaml)")
	pf.IntVar(&debugLevel, "debug-level", -1, "debug level 0-4 (overrides config)")
	pf.StringVar(&driverType, "driver", "", "pulse driver: mock, rpio, pca9685 or maestro (overrides config)")
	pf.Float64Var(&panMin, "pan-min", -90, "minimum pan angle in degrees")
	pf.Float64Var(&panMax, "pan-max", 90, "maximum pan angle in degrees")
	pf.Float64Var(&tiltMin, "tilt-min", -90, "minimum tilt angle in degrees")
	pf.Float64Var(&tiltMax, "tilt-max", 30, "maximum tilt angle in degrees")
}

// Execute runs the command tree and exits with the kind-specific code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error kind to a process exit code. Only this layer
// decides exit codes; the core packages surface kinds unmodified.
func exitCode(err error) int {
	switch {
	case errors.Is(err, limits.ErrInvalidBounds):
		return 3
	case errors.Is(err, pulse.ErrHardware):
		return 1
	case errors.Is(err, state.ErrPersist):
		return 2
	case errors.Is(err, camera.ErrCapture):
		return 4
	default:
		return 1
	}
}

// loadConfig loads the config file, applies the persistent flag
// overrides and initializes the debug system.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	pf := rootCmd.PersistentFlags()
	if pf.Changed("pan-min") {
		cfg.Pan.MinDeg = panMin
	}
	if pf.Changed("pan-max") {
		cfg.Pan.MaxDeg = panMax
	}
	if pf.Changed("tilt-min") {
		cfg.Tilt.MinDeg = tiltMin
	}
	if pf.Changed("tilt-max") {
		cfg.Tilt.MaxDeg = tiltMax
	}
	if driverType != "" {
		cfg.Driver.Type = driverType
	}
	if debugLevel >= 0 {
		cfg.Defaults.DebugLevel = debugLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	debug.Init(cfg.Defaults.DebugLevel)
	debug.Section("Configuration")
	debug.Value("config path", path)
	debug.Value("driver", cfg.Driver.Type)
	return cfg, nil
}

// newController builds the motion controller on top of a pulse driver.
// The caller owns closing the returned driver.
func newController(cfg *config.Config, drv pulse.Driver) (*motion.Controller, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	statePath := cfg.StatePath
	if statePath == "" {
		statePath, err = state.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cal := cfg.ServoCalibration()
	pan := servo.New(drv, "pan", cfg.Pan.Channel, cal)
	tilt := servo.New(drv, "tilt", cfg.Tilt.Channel, cal)

	return motion.NewController(pan, tilt, policy, state.NewStore(statePath), motion.Config{Tick: cfg.Tick()}), nil
}
