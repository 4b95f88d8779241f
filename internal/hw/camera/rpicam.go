package camera

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cjeanneret/ptzgo/internal/debug"
)

// runner executes a command and returns its combined output.
// Swappable so tests never exec anything.
type runner func(name string, args ...string) (string, error)

func execRunner(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	return string(out), err
}

// Markers in rpicam output meaning another process holds the camera.
var busyMarkers = []string{
	"Pipeline handler in use by another process",
	"Device or resource busy",
	"failed to acquire camera",
}

// Rpicam triggers captures by shelling out to the rpicam-apps
// binaries (rpicam-still, rpicam-vid).
type Rpicam struct {
	run runner
	now func() time.Time
}

// NewRpicam creates the rpicam-apps backed trigger.
func NewRpicam() *Rpicam {
	return &Rpicam{run: execRunner, now: time.Now}
}

// Photo takes a still via rpicam-still.
func (r *Rpicam) Photo(opts PhotoOptions) (string, error) {
	out := opts.Output
	if out == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %v: %w", err, ErrCapture)
		}
		out = filepath.Join(home, "Pictures", fmt.Sprintf("photo_%s.jpg", r.stamp()))
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %v: %w", err, ErrCapture)
	}

	args := []string{"--timeout", strconv.Itoa(int(opts.Timeout.Milliseconds())), "--nopreview", "-o", out}
	if opts.HFlip {
		args = append(args, "--hflip")
	}
	if opts.VFlip {
		args = append(args, "--vflip")
	}
	if opts.AFMode != "" {
		args = append(args, "--autofocus-mode", opts.AFMode)
	}
	if opts.AFRange != "" {
		args = append(args, "--autofocus-range", opts.AFRange)
	}
	if opts.AFSpeed != "" {
		args = append(args, "--autofocus-speed", opts.AFSpeed)
	}
	if opts.AFOnCapture {
		args = append(args, "--autofocus-on-capture")
	}
	if opts.LensPosition != nil {
		args = append(args, "--lens-position", strconv.FormatFloat(*opts.LensPosition, 'f', -1, 64))
	}

	if err := r.runCapture("rpicam-still", args); err != nil {
		return "", err
	}
	return out, nil
}

// Video records a clip via rpicam-vid.
func (r *Rpicam) Video(opts VideoOptions) (string, error) {
	out := opts.Output
	if out == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %v: %w", err, ErrCapture)
		}
		out = filepath.Join(home, "Videos", fmt.Sprintf("video_%s.h264", r.stamp()))
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %v: %w", err, ErrCapture)
	}

	// Non-positive duration records until the process is killed.
	timeoutMs := 0
	if opts.Duration > 0 {
		timeoutMs = int(opts.Duration.Milliseconds())
	}
	args := []string{"--timeout", strconv.Itoa(timeoutMs), "--nopreview", "-o", out}
	if opts.HFlip {
		args = append(args, "--hflip")
	}
	if opts.VFlip {
		args = append(args, "--vflip")
	}

	if err := r.runCapture("rpicam-vid", args); err != nil {
		return "", err
	}
	return out, nil
}

func (r *Rpicam) runCapture(bin string, args []string) error {
	debug.Live("running %s %s", bin, strings.Join(args, " "))

	output, err := r.run(bin, args...)
	if err == nil {
		return nil
	}

	for _, marker := range busyMarkers {
		if strings.Contains(output, marker) {
			fmt.Fprintln(os.Stderr, r.busyMessage())
			return fmt.Errorf("%s: camera busy: %w", bin, ErrCapture)
		}
	}
	if msg := strings.TrimSpace(output); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	return fmt.Errorf("%s: %v: %w", bin, err, ErrCapture)
}

// busyMessage explains a busy camera and lists the likely culprits.
func (r *Rpicam) busyMessage() string {
	lines := []string{
		"Camera appears busy (another process has the device open).",
		"Close any running previews/streams (rpicam-*, libcamera-hello, Vilib).",
	}

	procs, err := r.run("sh", "-c", "ps -ef | egrep 'rpicam|libcamera|vilib|picamera' | grep -v egrep")
	if err == nil && strings.TrimSpace(procs) != "" {
		lines = append(lines, "Active camera-related processes:", strings.TrimSpace(procs))
	} else {
		lines = append(lines, "No obvious camera processes found.")
	}
	return strings.Join(lines, "\n")
}

func (r *Rpicam) stamp() string {
	return r.now().Format("20060102_150405")
}
