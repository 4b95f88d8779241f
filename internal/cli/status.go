package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/ptzgo/internal/hw/pulse"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored pan/tilt position and bounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Read-only: no hardware is touched, so no real driver opens.
		ctrl, err := newController(cfg, &pulse.MockDriver{})
		if err != nil {
			return err
		}

		st := ctrl.Status()
		out := struct {
			Pan     float64 `json:"pan"`
			Tilt    float64 `json:"tilt"`
			PanMin  float64 `json:"pan_min"`
			PanMax  float64 `json:"pan_max"`
			TiltMin float64 `json:"tilt_min"`
			TiltMax float64 `json:"tilt_max"`
		}{
			Pan:     st.Position.Pan,
			Tilt:    st.Position.Tilt,
			PanMin:  st.PanBounds.Min,
			PanMax:  st.PanBounds.Max,
			TiltMin: st.TiltBounds.Min,
			TiltMax: st.TiltBounds.Max,
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode status: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
