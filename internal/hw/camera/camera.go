package camera

import (
	"errors"
	"time"
)

// ErrCapture marks a failed photo or video capture.
var ErrCapture = errors.New("capture failed")

// PhotoOptions parameterizes a still capture.
type PhotoOptions struct {
	Output       string // empty = ~/Pictures/photo_<stamp>.jpg
	Timeout      time.Duration
	HFlip        bool
	VFlip        bool
	AFMode       string // "manual", "auto", "continuous", "default"
	AFRange      string // "normal", "macro", "full"
	AFSpeed      string // "normal", "fast"
	AFOnCapture  bool
	LensPosition *float64
}

// VideoOptions parameterizes a video capture.
type VideoOptions struct {
	Output   string        // empty = ~/Videos/video_<stamp>.h264
	Duration time.Duration // <= 0 = record until killed
	HFlip    bool
	VFlip    bool
}

// Trigger is the high-level capture interface used by the CLI layer.
// It is independent of the motion controller: capture shares no state
// with motion beyond the persisted position.
type Trigger interface {
	// Photo takes a still and returns the output path.
	Photo(opts PhotoOptions) (string, error)
	// Video records a clip and returns the output path.
	Video(opts VideoOptions) (string, error)
}
