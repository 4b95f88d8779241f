package motion

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/cjeanneret/ptzgo/internal/debug"
	"github.com/cjeanneret/ptzgo/internal/hw/servo"
	"github.com/cjeanneret/ptzgo/internal/logic/limits"
	"github.com/cjeanneret/ptzgo/internal/state"
)

// DefaultTick is the interval between smoothed interpolation ticks.
const DefaultTick = 20 * time.Millisecond

// MoveRequest describes one motion command. A nil axis target leaves
// that axis where it is. Relative makes the targets deltas from the
// current position; clamping happens exactly once, after addition.
type MoveRequest struct {
	Pan      *float64
	Tilt     *float64
	Relative bool
	Smooth   time.Duration
}

// Config tunes the controller.
type Config struct {
	Tick time.Duration // interval between ticks; 0 = DefaultTick
}

// Controller orchestrates pan/tilt moves. One command invocation is a
// complete transaction: load the persisted position, resolve and clamp
// the target, emit pulses for both axes in lockstep, persist the
// reached position. It is an intermediate layer between the CLI and
// the servo hardware.
type Controller struct {
	pan    *servo.Servo
	tilt   *servo.Servo
	policy *limits.Policy
	store  *state.Store
	tick   time.Duration
	sleep  func(time.Duration)
}

// NewController wires the two axis servos, the limit policy and the
// position store together.
func NewController(pan, tilt *servo.Servo, policy *limits.Policy, store *state.Store, cfg Config) *Controller {
	tick := cfg.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Controller{
		pan:    pan,
		tilt:   tilt,
		policy: policy,
		store:  store,
		tick:   tick,
		sleep:  time.Sleep,
	}
}

// Plan returns the ordered lockstep tick positions from start to
// target: max(1, smooth/tick) linearly interpolated (pan, tilt) pairs,
// the last one exactly the target. Precomputing the whole sequence
// before any hardware call keeps the two axes arriving together.
func Plan(start, target state.Position, smooth, tick time.Duration) []state.Position {
	steps := 1
	if smooth > 0 && tick > 0 {
		steps = int(smooth / tick)
		if steps < 1 {
			steps = 1
		}
	}

	seq := make([]state.Position, steps)
	for i := 1; i < steps; i++ {
		f := float64(i) / float64(steps)
		seq[i-1] = state.Position{
			Pan:  start.Pan + (target.Pan-start.Pan)*f,
			Tilt: start.Tilt + (target.Tilt-start.Tilt)*f,
		}
	}
	seq[steps-1] = target
	return seq
}

// Move executes an absolute or relative move and returns the position
// actually reached. On a mid-sequence hardware failure the remaining
// ticks are dropped, the last completed tick is persisted and the
// hardware error surfaces; the partial motion is kept rather than
// reversed, since reversing an already-moved servo is itself a motion
// with its own failure risk.
func (c *Controller) Move(req MoveRequest) (state.Position, error) {
	start := c.loadOrDefault()
	target := c.resolveTarget(start, req)

	debug.Move("pan", start.Pan, target.Pan)
	debug.Move("tilt", start.Tilt, target.Tilt)

	seq := Plan(start, target, req.Smooth, c.tick)
	debug.Verbose("tick plan: %d ticks of %v", len(seq), c.tick)

	reached, runErr := c.run(start, seq)
	if runErr != nil {
		saveErr := c.store.Save(reached)
		return reached, multierr.Append(runErr, saveErr)
	}

	if err := c.store.Save(reached); err != nil {
		// The servos already moved; report "moved, but state not saved".
		return reached, fmt.Errorf("moved to pan=%.1f tilt=%.1f but %w", reached.Pan, reached.Tilt, err)
	}
	return reached, nil
}

// Center moves both axes to 0° sharing the absolute-move path.
// No smoothing unless explicitly requested.
func (c *Controller) Center(smooth time.Duration) (state.Position, error) {
	zero := 0.0
	return c.Move(MoveRequest{Pan: &zero, Tilt: &zero, Smooth: smooth})
}

// Status reports the stored position and the active bounds. Read-only:
// a corrupt state file degrades to the centered position with a
// warning, it never fails the command.
type Status struct {
	Position   state.Position
	PanBounds  limits.Bounds
	TiltBounds limits.Bounds
}

func (c *Controller) Status() Status {
	return Status{
		Position:   c.loadOrDefault(),
		PanBounds:  c.policy.Bounds(limits.Pan),
		TiltBounds: c.policy.Bounds(limits.Tilt),
	}
}

// resolveTarget applies the request to the current position and clamps
// both axes. The unchanged axis is clamped too, so a hand-edited state
// file cannot push a move outside the bounds.
func (c *Controller) resolveTarget(start state.Position, req MoveRequest) state.Position {
	pan := start.Pan
	if req.Pan != nil {
		pan = *req.Pan
		if req.Relative {
			pan += start.Pan
		}
	}

	tilt := start.Tilt
	if req.Tilt != nil {
		tilt = *req.Tilt
		if req.Relative {
			tilt += start.Tilt
		}
	}

	return state.Position{
		Pan:  c.policy.Clamp(limits.Pan, pan),
		Tilt: c.policy.Clamp(limits.Tilt, tilt),
	}
}

// run emits the tick sequence, pan then tilt per tick so both axes
// arrive together, and returns the last completed tick's position.
func (c *Controller) run(start state.Position, seq []state.Position) (state.Position, error) {
	reached := start
	for i, p := range seq {
		if err := c.pan.Apply(p.Pan); err != nil {
			return reached, fmt.Errorf("tick %d/%d pan: %w", i+1, len(seq), err)
		}
		if err := c.tilt.Apply(p.Tilt); err != nil {
			return reached, fmt.Errorf("tick %d/%d tilt: %w", i+1, len(seq), err)
		}
		reached = p
		debug.Tick(i+1, len(seq), p.Pan, p.Tilt)
		c.sleep(c.tick)
	}
	return reached, nil
}

// loadOrDefault reads the persisted position, degrading to center on
// an unusable state file.
func (c *Controller) loadOrDefault() state.Position {
	pos, err := c.store.Load()
	if err != nil {
		debug.Warn("assuming centered position: %v", err)
		return state.Position{}
	}
	return pos
}
