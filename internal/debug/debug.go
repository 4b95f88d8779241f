package debug

import (
	"log"
	"os"
)

// Debug levels
const (
	LevelOff     = 0 // No output
	LevelInfo    = 1 // Important info (driver, resolved targets)
	LevelLive    = 2 // Live info (moves, ticks)
	LevelVerbose = 3 // Verbose (plans, intermediate angles)
	LevelTrace   = 4 // Trace (pulse emission, very low level)
)

var (
	level   int
	logger  *log.Logger
	warnLog = log.New(os.Stderr, "[ptzgo] ", log.LstdFlags)
)

// Init initializes the debug system with a level (0-4).
// 0 = no output
// 1 = important info (selected driver, resolved target)
// 2 = live info (moves, ticks completed)
// 3 = verbose (tick plans, intermediate angles)
// 4 = trace (pulse widths, very low level)
func Init(debugLevel int) {
	level = debugLevel
	if level > LevelOff {
		logger = log.New(os.Stdout, "[ptzgo] ", log.LstdFlags|log.Lmicroseconds)
	}
}

// Level returns the current debug level.
func Level() int {
	return level
}

// IsEnabled returns true if debug level is >= the requested level.
func IsEnabled(minLevel int) bool {
	return level >= minLevel
}

// Info prints a level 1 message (important info).
func Info(format string, args ...interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] "+format, args...)
	}
}

// Value prints a named value (level 1).
func Value(name string, value interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO]   %s = %v", name, value)
	}
}

// Live prints a level 2 message (live info).
func Live(format string, args ...interface{}) {
	if level >= LevelLive && logger != nil {
		logger.Printf("[LIVE] "+format, args...)
	}
}

// Move prints a resolved axis move (level 2).
func Move(axis string, from, to float64) {
	if level >= LevelLive && logger != nil {
		logger.Printf("[LIVE] %s: %.2f° -> %.2f°", axis, from, to)
	}
}

// Verbose prints a level 3 message (verbose).
func Verbose(format string, args ...interface{}) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] "+format, args...)
	}
}

// Tick prints one interpolation tick (level 3).
func Tick(i, total int, pan, tilt float64) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] tick %d/%d: pan=%.2f° tilt=%.2f°", i, total, pan, tilt)
	}
}

// Section prints a section separator (level 3).
func Section(name string) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		logger.Printf("  %s", name)
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	}
}

// Trace prints a level 4 message (trace).
func Trace(format string, args ...interface{}) {
	if level >= LevelTrace && logger != nil {
		logger.Printf("[TRACE] "+format, args...)
	}
}

// Pulse prints a pulse emission (level 4).
func Pulse(channel int, widthUs int) {
	if level >= LevelTrace && logger != nil {
		logger.Printf("[PULSE] channel=%d width=%dµs", channel, widthUs)
	}
}

// Warn prints a warning to stderr regardless of the debug level.
// Used for recoverable conditions the operator should always see
// (e.g. an unreadable state file).
func Warn(format string, args ...interface{}) {
	warnLog.Printf("[WARN] "+format, args...)
}

// Error prints a debug error (level 1+).
func Error(err error) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[ERROR] %v", err)
	}
}
