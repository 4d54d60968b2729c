package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/suraksha-app/suraksha/internal/model"
	"github.com/suraksha-app/suraksha/internal/notify"
	"github.com/suraksha-app/suraksha/internal/sos"
	"github.com/suraksha-app/suraksha/internal/store"
)

var (
	sosLat float64
	sosLng float64
)

var sosCmd = &cobra.Command{
	Use:   "sos",
	Short: "Trigger an emergency SOS alert",
	Long:  "Records an SOS event and notifies every emergency contact. Without --lat/--lng the configured default location is used and the alert is marked approximate.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		lat, lng := cfg.DefaultLocation()
		fallback := model.GeoPoint{Lat: lat, Lng: lng}

		var loc *model.GeoPoint
		if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
			loc = &model.GeoPoint{Lat: sosLat, Lng: sosLng}
		}

		svc := sos.NewService(st, notify.FromWebhookURL(cfg.Notify.WebhookURL), fallback)
		event, err := svc.Trigger(ctx, loc, time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("SOS triggered: %s\n", event.ID)
		fmt.Printf("  Location: %.4f, %.4f", event.Location.Lat, event.Location.Lng)
		if event.Approximate {
			fmt.Printf(" (approximate)")
		}
		fmt.Printf("\n  Contacts notified: %d\n", len(event.Notified))
		return nil
	},
}

func init() {
	sosCmd.Flags().Float64Var(&sosLat, "lat", 0, "latitude of the emergency")
	sosCmd.Flags().Float64Var(&sosLng, "lng", 0, "longitude of the emergency")
	rootCmd.AddCommand(sosCmd)
}
