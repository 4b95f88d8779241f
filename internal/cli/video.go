package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/ptzgo/internal/hw/camera"
)

var (
	videoOutput    string
	videoDurationS float64
	videoHFlip     bool
	videoVFlip     bool
)

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Record a video with rpicam-vid",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}

		out, err := camera.NewRpicam().Video(camera.VideoOptions{
			Output:   videoOutput,
			Duration: time.Duration(videoDurationS * float64(time.Second)),
			HFlip:    videoHFlip,
			VFlip:    videoVFlip,
		})
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	videoCmd.Flags().StringVarP(&videoOutput, "output", "o", "", "output file path (default: ~/Videos/video_<stamp>.h264)")
	videoCmd.Flags().Float64Var(&videoDurationS, "duration-s", 5, "recording duration in seconds (0 = until Ctrl+C)")
	videoCmd.Flags().BoolVar(&videoHFlip, "hflip", true, "flip the image horizontally")
	videoCmd.Flags().BoolVar(&videoVFlip, "vflip", true, "flip the image vertically")
	rootCmd.AddCommand(videoCmd)
}
