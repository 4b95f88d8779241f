package camera

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakeRunner records invocations and replays scripted results.
type fakeRunner struct {
	invocations [][]string
	output      string
	err         error
}

func (f *fakeRunner) run(name string, args ...string) (string, error) {
	f.invocations = append(f.invocations, append([]string{name}, args...))
	return f.output, f.err
}

func newTestRpicam(f *fakeRunner) *Rpicam {
	return &Rpicam{
		run: f.run,
		now: func() time.Time { return time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC) },
	}
}

func TestPhoto_CommandLine(t *testing.T) {
	f := &fakeRunner{}
	r := newTestRpicam(f)
	out := filepath.Join(t.TempDir(), "shot.jpg")

	lens := 2.5
	got, err := r.Photo(PhotoOptions{
		Output:       out,
		Timeout:      2 * time.Second,
		HFlip:        true,
		VFlip:        true,
		AFMode:       "continuous",
		AFRange:      "macro",
		AFSpeed:      "fast",
		AFOnCapture:  true,
		LensPosition: &lens,
	})
	if err != nil {
		t.Fatalf("Photo: %v", err)
	}
	if got != out {
		t.Errorf("returned path %q, want %q", got, out)
	}

	if len(f.invocations) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(f.invocations))
	}
	cmd := strings.Join(f.invocations[0], " ")
	for _, want := range []string{
		"rpicam-still",
		"--timeout 2000",
		"--nopreview",
		"-o " + out,
		"--hflip",
		"--vflip",
		"--autofocus-mode continuous",
		"--autofocus-range macro",
		"--autofocus-speed fast",
		"--autofocus-on-capture",
		"--lens-position 2.5",
	} {
		if !strings.Contains(cmd, want) {
			t.Errorf("command %q missing %q", cmd, want)
		}
	}
}

func TestPhoto_MinimalFlags(t *testing.T) {
	f := &fakeRunner{}
	r := newTestRpicam(f)
	out := filepath.Join(t.TempDir(), "shot.jpg")

	if _, err := r.Photo(PhotoOptions{Output: out, Timeout: time.Second}); err != nil {
		t.Fatalf("Photo: %v", err)
	}

	cmd := strings.Join(f.invocations[0], " ")
	for _, unwanted := range []string{"--hflip", "--vflip", "--autofocus", "--lens-position"} {
		if strings.Contains(cmd, unwanted) {
			t.Errorf("command %q should not contain %q", cmd, unwanted)
		}
	}
}

func TestVideo_CommandLine(t *testing.T) {
	f := &fakeRunner{}
	r := newTestRpicam(f)
	out := filepath.Join(t.TempDir(), "clip.h264")

	got, err := r.Video(VideoOptions{Output: out, Duration: 5 * time.Second, HFlip: true})
	if err != nil {
		t.Fatalf("Video: %v", err)
	}
	if got != out {
		t.Errorf("returned path %q, want %q", got, out)
	}

	cmd := strings.Join(f.invocations[0], " ")
	if !strings.HasPrefix(cmd, "rpicam-vid ") {
		t.Errorf("command %q should invoke rpicam-vid", cmd)
	}
	if !strings.Contains(cmd, "--timeout 5000") {
		t.Errorf("command %q missing --timeout 5000", cmd)
	}
	if strings.Contains(cmd, "--vflip") {
		t.Errorf("command %q should not contain --vflip", cmd)
	}
}

func TestVideo_ZeroDurationRecordsUntilKilled(t *testing.T) {
	f := &fakeRunner{}
	r := newTestRpicam(f)
	out := filepath.Join(t.TempDir(), "clip.h264")

	if _, err := r.Video(VideoOptions{Output: out, Duration: 0}); err != nil {
		t.Fatalf("Video: %v", err)
	}
	if cmd := strings.Join(f.invocations[0], " "); !strings.Contains(cmd, "--timeout 0") {
		t.Errorf("command %q should use --timeout 0", cmd)
	}
}

func TestRunCapture_Failure(t *testing.T) {
	f := &fakeRunner{output: "something exploded", err: errors.New("exit status 1")}
	r := newTestRpicam(f)

	_, err := r.Photo(PhotoOptions{Output: filepath.Join(t.TempDir(), "x.jpg")})
	if !errors.Is(err, ErrCapture) {
		t.Errorf("failure should wrap ErrCapture, got %v", err)
	}
}

func TestRunCapture_BusyCamera(t *testing.T) {
	f := &fakeRunner{
		output: "ERROR: Pipeline handler in use by another process",
		err:    errors.New("exit status 1"),
	}
	r := newTestRpicam(f)

	_, err := r.Photo(PhotoOptions{Output: filepath.Join(t.TempDir(), "x.jpg")})
	if !errors.Is(err, ErrCapture) {
		t.Errorf("busy camera should wrap ErrCapture, got %v", err)
	}
	if !strings.Contains(err.Error(), "busy") {
		t.Errorf("error %v should mention the busy camera", err)
	}
	// The busy path also probes for camera processes.
	if len(f.invocations) != 2 {
		t.Errorf("expected capture + process probe, got %d invocations", len(f.invocations))
	}
}
