package limits

import (
	"errors"
	"testing"
)

func defaultPolicy(t *testing.T) *Policy {
	t.Helper()
	p, err := NewPolicy(Bounds{Min: -90, Max: 90}, Bounds{Min: -90, Max: 30})
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	return p
}

func TestNewPolicy_InvalidBounds(t *testing.T) {
	if _, err := NewPolicy(Bounds{Min: 10, Max: -10}, Bounds{Min: -90, Max: 30}); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("pan min > max should wrap ErrInvalidBounds, got %v", err)
	}
	if _, err := NewPolicy(Bounds{Min: -90, Max: 90}, Bounds{Min: 31, Max: 30}); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("tilt min > max should wrap ErrInvalidBounds, got %v", err)
	}
	// A degenerate single-point interval is still a valid interval.
	if _, err := NewPolicy(Bounds{Min: 0, Max: 0}, Bounds{Min: 0, Max: 0}); err != nil {
		t.Errorf("min == max should be valid, got %v", err)
	}
}

func TestClamp_InRangeUnchanged(t *testing.T) {
	p := defaultPolicy(t)

	for _, angle := range []float64{-90, -45.5, 0, 12.3, 90} {
		if got := p.Clamp(Pan, angle); got != angle {
			t.Errorf("Clamp(Pan, %g) = %g, want unchanged", angle, got)
		}
	}
	if got := p.Clamp(Tilt, 30); got != 30 {
		t.Errorf("Clamp(Tilt, 30) = %g, want 30", got)
	}
}

func TestClamp_OutOfRange(t *testing.T) {
	p := defaultPolicy(t)

	cases := []struct {
		axis  Axis
		angle float64
		want  float64
	}{
		{Pan, -200, -90},
		{Pan, 90.001, 90},
		{Tilt, 45, 30},
		{Tilt, -1000, -90},
	}
	for _, c := range cases {
		if got := p.Clamp(c.axis, c.angle); got != c.want {
			t.Errorf("Clamp(%s, %g) = %g, want %g", c.axis, c.angle, got, c.want)
		}
	}
}

func TestClamp_TotalAndIdempotent(t *testing.T) {
	p := defaultPolicy(t)

	for _, axis := range []Axis{Pan, Tilt} {
		for angle := -400.0; angle <= 400.0; angle += 13.7 {
			once := p.Clamp(axis, angle)
			if !p.Bounds(axis).Contains(once) {
				t.Fatalf("Clamp(%s, %g) = %g is outside %+v", axis, angle, once, p.Bounds(axis))
			}
			if twice := p.Clamp(axis, once); twice != once {
				t.Fatalf("Clamp not idempotent on %s: %g then %g", axis, once, twice)
			}
		}
	}
}

func TestAxisString(t *testing.T) {
	if Pan.String() != "pan" || Tilt.String() != "tilt" {
		t.Errorf("axis names: got %q and %q", Pan.String(), Tilt.String())
	}
}
