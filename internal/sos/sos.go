// Package sos implements the emergency alert flow: record the event, notify
// every emergency contact, and raise an in-app alert.
package sos

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/suraksha-app/suraksha/internal/model"
	"github.com/suraksha-app/suraksha/internal/notify"
	"github.com/suraksha-app/suraksha/internal/store"
)

// Service coordinates SOS activation.
type Service struct {
	store    store.Store
	notifier notify.Notifier
	fallback model.GeoPoint
}

// NewService creates an SOS service. fallback is used when the caller has no
// usable position.
func NewService(st store.Store, n notify.Notifier, fallback model.GeoPoint) *Service {
	return &Service{store: st, notifier: n, fallback: fallback}
}

// Trigger activates an SOS at the given location. A nil or invalid location
// falls back to the configured default and marks the event approximate. The
// event is recorded even when some notifications fail; Notified reports how
// many contacts were reached.
func (s *Service) Trigger(ctx context.Context, loc *model.GeoPoint, now time.Time) (*model.SOSEvent, error) {
	event := model.SOSEvent{
		Location:    s.fallback,
		Approximate: true,
		TriggeredAt: now.UTC(),
	}
	if loc != nil && loc.Valid() {
		event.Location = *loc
		event.Approximate = false
	}

	saved, err := s.store.AddSOSEvent(ctx, event)
	if err != nil {
		return nil, eris.Wrap(err, "sos: record event")
	}

	userName := "Unknown"
	if p, err := s.store.GetProfile(ctx); err == nil {
		userName = p.FullName
	}

	contacts, err := s.store.ListContacts(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "sos: list contacts")
	}

	for _, c := range contacts {
		msg := notify.ComposeSOS(c, userName, *saved)
		if err := s.notifier.Send(ctx, msg); err != nil {
			zap.L().Error("sos: notify contact failed",
				zap.String("contact", c.Name),
				zap.Error(err),
			)
			continue
		}
		saved.Notified = append(saved.Notified, c.ID)
	}

	alertMsg := fmt.Sprintf("Emergency contacts have been notified (%d of %d reached).",
		len(saved.Notified), len(contacts))
	if event.Approximate {
		alertMsg = fmt.Sprintf("Emergency contacts have been notified with approximate location (%d of %d reached).",
			len(saved.Notified), len(contacts))
	}
	if _, err := s.store.AddAlert(ctx, model.Alert{
		Type:      model.AlertSystem,
		Title:     "SOS Activated",
		Message:   alertMsg,
		CreatedAt: now.UTC(),
	}); err != nil {
		zap.L().Error("sos: record alert failed", zap.Error(err))
	}

	zap.L().Warn("sos: triggered",
		zap.String("id", saved.ID),
		zap.Float64("lat", saved.Location.Lat),
		zap.Float64("lng", saved.Location.Lng),
		zap.Bool("approximate", saved.Approximate),
		zap.Int("notified", len(saved.Notified)),
	)
	return saved, nil
}
