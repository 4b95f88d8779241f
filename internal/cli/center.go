package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/cjeanneret/ptzgo/internal/hw/pulse"
)

var centerSmoothMs int

var centerCmd = &cobra.Command{
	Use:   "center",
	Short: "Move both axes to 0°",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		drv, err := pulse.NewDriver(cfg.PulseConfig())
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, drv.Close())
		}()

		ctrl, err := newController(cfg, drv)
		if err != nil {
			return err
		}

		pos, err := ctrl.Center(time.Duration(centerSmoothMs) * time.Millisecond)
		if err != nil {
			return err
		}
		fmt.Printf("pan=%.1f tilt=%.1f\n", pos.Pan, pos.Tilt)
		return nil
	},
}

func init() {
	centerCmd.Flags().IntVar(&centerSmoothMs, "smooth-ms", 0, "smooth move duration in ms (0 = jump directly)")
	rootCmd.AddCommand(centerCmd)
}
