package cli

import (
	"errors"
	"fmt"
	"testing"

	"go.uber.org/multierr"

	"github.com/cjeanneret/ptzgo/internal/hw/camera"
	"github.com/cjeanneret/ptzgo/internal/hw/pulse"
	"github.com/cjeanneret/ptzgo/internal/logic/limits"
	"github.com/cjeanneret/ptzgo/internal/state"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("pan bounds: %w", limits.ErrInvalidBounds), 3},
		{fmt.Errorf("tick 3/20 pan: %w", pulse.ErrHardware), 1},
		{fmt.Errorf("moved but %w", state.ErrPersist), 2},
		{fmt.Errorf("rpicam-still: %w", camera.ErrCapture), 4},
		{errors.New("something else"), 1},
	}
	for _, c := range cases {
		if got := exitCode(c.err); got != c.want {
			t.Errorf("exitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestExitCode_HardwareWinsOverPersistence(t *testing.T) {
	// A mid-move hardware failure followed by a failed state save
	// carries both kinds; the hardware code is the primary outcome.
	err := multierr.Append(
		fmt.Errorf("tick 3/20 tilt: %w", pulse.ErrHardware),
		fmt.Errorf("save: %w", state.ErrPersist),
	)
	if got := exitCode(err); got != 1 {
		t.Errorf("exitCode(combined) = %d, want 1", got)
	}
}

func TestValidateChoice(t *testing.T) {
	if err := validateChoice("af-mode", "", "auto"); err != nil {
		t.Errorf("empty value should pass: %v", err)
	}
	if err := validateChoice("af-mode", "auto", "manual", "auto"); err != nil {
		t.Errorf("allowed value should pass: %v", err)
	}
	if err := validateChoice("af-mode", "psychic", "manual", "auto"); err == nil {
		t.Error("disallowed value should fail")
	}
}
