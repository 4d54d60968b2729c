// Package api exposes the safety application over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/suraksha-app/suraksha/internal/checkin"
	"github.com/suraksha-app/suraksha/internal/config"
	"github.com/suraksha-app/suraksha/internal/guardian"
	"github.com/suraksha-app/suraksha/internal/identity"
	"github.com/suraksha-app/suraksha/internal/sos"
	"github.com/suraksha-app/suraksha/internal/store"
)

// Deps carries the services the HTTP layer exposes.
type Deps struct {
	Store    store.Store
	SOS      *sos.Service
	CheckIn  *checkin.Service
	Guardian *guardian.Service
	Identity *identity.Service
}

// Server is the HTTP API server.
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer builds the router and wraps it in an http.Server.
func NewServer(cfg *config.Config, deps Deps) *Server {
	h := &handler{deps: deps, cfg: cfg}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(requestLogger)
	router.Use(rateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateBurst))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.Server.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte("OK")) //nolint:errcheck
		})

		r.Route("/v1", func(r chi.Router) {
			r.Get("/safety/score", h.getSafetyScore)

			r.Route("/ratings", func(r chi.Router) {
				r.Get("/", h.listRatings)
				r.Post("/", h.createRating)
			})

			r.Route("/map", func(r chi.Router) {
				r.Get("/unproject", h.unprojectPoint)
				r.Get("/hittest", h.hitTestRating)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.getProfile)
				r.Put("/", h.updateProfile)
				r.Post("/verify", h.verifyAadhaar)
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", h.listContacts)
				r.Post("/", h.addContact)
				r.Delete("/{id}", h.deleteContact)
			})

			r.Route("/guardian", func(r chi.Router) {
				r.Get("/", h.getGuardianMode)
				r.Post("/activate", h.activateGuardian)
				r.Post("/deactivate", h.deactivateGuardian)
				r.Post("/location", h.shareGuardianLocation)
				r.Get("/trail", h.getGuardianTrail)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.getSettings)
				r.Put("/", h.updateSettings)
			})

			r.Route("/alerts", func(r chi.Router) {
				r.Get("/", h.listAlerts)
				r.Post("/{id}/read", h.markAlertRead)
				r.Post("/read-all", h.markAllAlertsRead)
				r.Delete("/{id}", h.deleteAlert)
			})

			r.Route("/sos", func(r chi.Router) {
				r.Post("/", h.triggerSOS)
				r.Get("/", h.listSOSEvents)
			})

			r.Route("/checkins", func(r chi.Router) {
				r.Get("/", h.listCheckIns)
				r.Post("/", h.recordCheckIn)
			})
		})
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return &Server{server: httpServer, router: router}
}

// Handler returns the underlying router, used by tests.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
