package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/cjeanneret/ptzgo/internal/hw/pulse"
	"github.com/cjeanneret/ptzgo/internal/logic/motion"
)

var (
	movePan      float64
	moveTilt     float64
	moveRelative bool
	moveSmoothMs int
)

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move the pan/tilt head",
	Long: `Move one or both axes to an absolute angle, or by a delta with
--relative. Targets outside the axis bounds are clamped to the nearest
bound. A smoothing duration interpolates the motion in 20ms ticks.`,
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

		req := motion.MoveRequest{
			Relative: moveRelative,
			Smooth:   cfg.Smooth(),
		}
		if cmd.Flags().Changed("pan") {
			req.Pan = &movePan
		}
		if cmd.Flags().Changed("tilt") {
			req.Tilt = &moveTilt
		}
		if cmd.Flags().Changed("smooth-ms") {
			req.Smooth = time.Duration(moveSmoothMs) * time.Millisecond
		}

		pos, err := ctrl.Move(req)
		if err != nil {
			return err
		}
		fmt.Printf("pan=%.1f tilt=%.1f\n", pos.Pan, pos.Tilt)
		return nil
	},
}

func init() {
	moveCmd.Flags().Float64Var(&movePan, "pan", 0, "pan angle in degrees")
	moveCmd.Flags().Float64Var(&moveTilt, "tilt", 0, "tilt angle in degrees")
	moveCmd.Flags().BoolVar(&moveRelative, "relative", false, "treat pan/tilt as deltas")
	moveCmd.Flags().IntVar(&moveSmoothMs, "smooth-ms", 300, "smooth move duration in ms (0 = jump directly)")
	rootCmd.AddCommand(moveCmd)
}
