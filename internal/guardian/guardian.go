// Package guardian implements guardian mode: real-time location sharing with
// trusted contacts while the user is traveling.
package guardian

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/suraksha-app/suraksha/internal/model"
	"github.com/suraksha-app/suraksha/internal/store"
)

// ErrInactive is returned when a route share is attempted while guardian
// mode is off.
var ErrInactive = eris.New("guardian: mode not active")

// TrailPoint is one shared position on the journey trail.
type TrailPoint struct {
	Location model.GeoPoint `json:"location"`
	SharedAt time.Time      `json:"shared_at"`
}

// Service tracks guardian mode state and the shared location trail. The
// trail is kept in memory only; it exists for the duration of a journey.
type Service struct {
	store  store.Store
	home   model.GeoPoint
	radius float64

	mu      sync.Mutex
	trail   []TrailPoint
	arrived bool
}

// NewService creates a guardian service. home and radius define the "near
// home" zone that ends a journey.
func NewService(st store.Store, home model.GeoPoint, radiusMeters float64) *Service {
	return &Service{store: st, home: home, radius: radiusMeters}
}

// Activate turns guardian mode on and raises a system alert so the activation
// shows up in the alert feed.
func (s *Service) Activate(ctx context.Context, now time.Time) (*model.GuardianState, error) {
	state, err := s.store.SetGuardianMode(ctx, true, now)
	if err != nil {
		return nil, eris.Wrap(err, "guardian: activate")
	}

	if _, err := s.store.AddAlert(ctx, model.Alert{
		Type:      model.AlertSystem,
		Title:     "Guardian Mode Activated",
		Message:   "Guardian mode was activated for your journey home.",
		CreatedAt: now.UTC(),
	}); err != nil {
		zap.L().Error("guardian: record activation alert failed", zap.Error(err))
	}

	s.mu.Lock()
	s.arrived = false
	s.mu.Unlock()

	zap.L().Info("guardian: activated")
	return state, nil
}

// Deactivate turns guardian mode off and clears the journey trail.
func (s *Service) Deactivate(ctx context.Context, now time.Time) (*model.GuardianState, error) {
	state, err := s.store.SetGuardianMode(ctx, false, now)
	if err != nil {
		return nil, eris.Wrap(err, "guardian: deactivate")
	}

	s.mu.Lock()
	s.trail = nil
	s.arrived = false
	s.mu.Unlock()

	zap.L().Info("guardian: deactivated")
	return state, nil
}

// ShareLocation appends the current position to the journey trail. It fails
// with ErrInactive when guardian mode is off. The first shared position
// inside the home safety zone raises an arrival alert, once per journey.
func (s *Service) ShareLocation(ctx context.Context, loc model.GeoPoint, now time.Time) error {
	state, err := s.store.GetGuardianMode(ctx)
	if err != nil {
		return eris.Wrap(err, "guardian: get mode")
	}
	if !state.Active {
		return ErrInactive
	}
	if !loc.Valid() {
		return eris.New("guardian: invalid location")
	}

	s.mu.Lock()
	s.trail = append(s.trail, TrailPoint{Location: loc, SharedAt: now.UTC()})
	arrivedNow := !s.arrived && s.NearHome(loc)
	if arrivedNow {
		s.arrived = true
	}
	s.mu.Unlock()

	if arrivedNow {
		if _, err := s.store.AddAlert(ctx, model.Alert{
			Type:      model.AlertSystem,
			Title:     "Arrived Home",
			Message:   "Your shared location is within the home safety zone. Guardian mode can be turned off.",
			CreatedAt: now.UTC(),
		}); err != nil {
			zap.L().Error("guardian: record arrival alert failed", zap.Error(err))
		}
		zap.L().Info("guardian: arrived home")
	}
	return nil
}

// Trail returns a copy of the shared journey trail.
func (s *Service) Trail() []TrailPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TrailPoint, len(s.trail))
	copy(out, s.trail)
	return out
}

// NearHome reports whether loc is within the configured safety radius of the
// home position.
func (s *Service) NearHome(loc model.GeoPoint) bool {
	return loc.DistanceMeters(s.home) <= s.radius
}
