package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/suraksha-app/suraksha/internal/model"
	"github.com/suraksha-app/suraksha/internal/safety"
)

var (
	scoreLat  float64
	scoreLng  float64
	scoreAt   string
	scoreJSON bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the safety score for a location",
	Long:  "Evaluates the five-factor safety model at the given coordinates and time and prints the factor breakdown.",
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := model.GeoPoint{Lat: scoreLat, Lng: scoreLng}
		if !cmd.Flags().Changed("lat") && !cmd.Flags().Changed("lng") {
			lat, lng := cfg.DefaultLocation()
			loc = model.GeoPoint{Lat: lat, Lng: lng}
		}
		if !loc.Valid() {
			return eris.New("lat and lng must be finite numbers")
		}

		now := time.Now()
		if scoreAt != "" {
			t, err := time.Parse(time.RFC3339, scoreAt)
			if err != nil {
				return eris.Wrap(err, "parse --at")
			}
			now = t
		}

		factors := safety.ComputeFactors(loc, now)
		score := safety.ScoreWeighted(loc, now, cfg.Safety.Weights)

		if scoreJSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"location": loc,
				"time":     now,
				"score":    score,
				"factors":  factors,
			})
		}

		fmt.Printf("Safety score at (%.4f, %.4f) on %s\n\n", loc.Lat, loc.Lng, now.Format(time.RFC1123))
		fmt.Printf("  Time of day:  %5.2f\n", factors.TimeOfDay)
		fmt.Printf("  Crime rate:   %5.2f\n", factors.CrimeRate)
		fmt.Printf("  Crowdedness:  %5.2f\n", factors.Crowdedness)
		fmt.Printf("  Lighting:     %5.2f\n", factors.Lighting)
		fmt.Printf("  Safe zones:   %5.2f\n", factors.KnownSafeZones)
		fmt.Printf("\n  Overall: %d/10\n", score)
		return nil
	},
}

func init() {
	scoreCmd.Flags().Float64Var(&scoreLat, "lat", 0, "latitude (default from config)")
	scoreCmd.Flags().Float64Var(&scoreLng, "lng", 0, "longitude (default from config)")
	scoreCmd.Flags().StringVar(&scoreAt, "at", "", "evaluation time, RFC3339 (default now)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "emit JSON")
	rootCmd.AddCommand(scoreCmd)
}
