package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/suraksha-app/suraksha/internal/api"
	"github.com/suraksha-app/suraksha/internal/checkin"
	"github.com/suraksha-app/suraksha/internal/guardian"
	"github.com/suraksha-app/suraksha/internal/identity"
	"github.com/suraksha-app/suraksha/internal/maparea"
	"github.com/suraksha-app/suraksha/internal/model"
	"github.com/suraksha-app/suraksha/internal/notify"
	"github.com/suraksha-app/suraksha/internal/sos"
	"github.com/suraksha-app/suraksha/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the safety API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		lat, lng := cfg.DefaultLocation()
		home := model.GeoPoint{Lat: lat, Lng: lng}

		if err := seedRatings(ctx, st, home, cfg.Map.SeedFile); err != nil {
			return err
		}

		notifier := notify.FromWebhookURL(cfg.Notify.WebhookURL)
		interval := time.Duration(cfg.CheckIn.IntervalMinutes) * time.Minute
		tracker := checkin.NewTracker(interval, time.Now())
		checkinSvc := checkin.NewService(st, tracker, home)

		deps := api.Deps{
			Store:    st,
			SOS:      sos.NewService(st, notifier, home),
			CheckIn:  checkinSvc,
			Guardian: guardian.NewService(st, home, float64(cfg.CheckIn.SafetyRadiusMeter)),
			Identity: identity.NewService(st),
		}

		srv := api.NewServer(cfg, deps)

		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})

		g.Go(func() error {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		// Watch for missed check-ins while the server runs.
		g.Go(func() error {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case now := <-ticker.C:
					alert, err := checkinSvc.ReportMissed(ctx, now)
					if err != nil {
						zap.L().Error("checkin: missed report failed", zap.Error(err))
						continue
					}
					if alert != nil {
						zap.L().Warn("checkin: missed", zap.String("alert_id", alert.ID))
					}
				}
			}
		})

		return g.Wait()
	},
}

// seedRatings loads the seed set into an empty store so the map has content
// on first run. A configured seed file overrides the built-in demo set.
func seedRatings(ctx context.Context, st store.Store, anchor model.GeoPoint, seedFile string) error {
	existing, err := st.ListRatings(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	seed := maparea.DefaultSeed()
	if seedFile != "" {
		if seed, err = maparea.ReadSeedFile(seedFile); err != nil {
			return err
		}
	}

	for _, r := range maparea.ResolveSeed(anchor, seed) {
		if err := st.AppendRating(ctx, r); err != nil {
			return err
		}
	}
	zap.L().Info("seeded ratings", zap.Int("count", len(seed)))
	return nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
