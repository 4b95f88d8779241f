package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/ptzgo/internal/hw/camera"
)

var (
	photoOutput      string
	photoTimeoutMs   int
	photoHFlip       bool
	photoVFlip       bool
	photoAFMode      string
	photoAFRange     string
	photoAFSpeed     string
	photoAFOnCapture bool
	photoLensPos     float64
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Take a photo with rpicam-still",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		if err := validateChoice("af-mode", photoAFMode, "manual", "auto", "continuous", "default"); err != nil {
			return err
		}
		if err := validateChoice("af-range", photoAFRange, "normal", "macro", "full"); err != nil {
			return err
		}
		if err := validateChoice("af-speed", photoAFSpeed, "normal", "fast"); err != nil {
			return err
		}

		opts := camera.PhotoOptions{
			Output:      photoOutput,
			Timeout:     time.Duration(photoTimeoutMs) * time.Millisecond,
			HFlip:       photoHFlip,
			VFlip:       photoVFlip,
			AFMode:      photoAFMode,
			AFRange:     photoAFRange,
			AFSpeed:     photoAFSpeed,
			AFOnCapture: photoAFOnCapture,
		}
		if cmd.Flags().Changed("lens-position") {
			opts.LensPosition = &photoLensPos
		}

		out, err := camera.NewRpicam().Photo(opts)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func validateChoice(flag, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid --%s %q (allowed: %v)", flag, value, allowed)
}

func init() {
	photoCmd.Flags().StringVarP(&photoOutput, "output", "o", "", "output file path (default: ~/Pictures/photo_<stamp>.jpg)")
	photoCmd.Flags().IntVar(&photoTimeoutMs, "timeout-ms", 2000, "capture timeout in ms")
	photoCmd.Flags().BoolVar(&photoHFlip, "hflip", true, "flip the image horizontally")
	photoCmd.Flags().BoolVar(&photoVFlip, "vflip", true, "flip the image vertically")
	photoCmd.Flags().StringVar(&photoAFMode, "af-mode", "", "autofocus mode: manual, auto, continuous or default")
	photoCmd.Flags().StringVar(&photoAFRange, "af-range", "", "autofocus range: normal, macro or full")
	photoCmd.Flags().StringVar(&photoAFSpeed, "af-speed", "", "autofocus speed: normal or fast")
	photoCmd.Flags().BoolVar(&photoAFOnCapture, "af-on-capture", false, "run autofocus right before capture")
	photoCmd.Flags().Float64Var(&photoLensPos, "lens-position", 0, "manual lens position")
	rootCmd.AddCommand(photoCmd)
}
