// Package checkin implements periodic safety check-ins: a pure interval
// tracker plus a service that records check-ins and raises missed alerts.
package checkin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/suraksha-app/suraksha/internal/model"
	"github.com/suraksha-app/suraksha/internal/store"
)

// Tracker tracks the check-in schedule. All methods take the current time so
// the logic stays deterministic under test.
type Tracker struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewTracker creates a Tracker. start anchors the first interval.
func NewTracker(interval time.Duration, start time.Time) *Tracker {
	return &Tracker{interval: interval, last: start}
}

// Due reports whether a check-in is due at now.
func (t *Tracker) Due(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !now.Before(t.last.Add(t.interval))
}

// Remaining returns the time left until the next check-in is due. It is zero
// when a check-in is already due.
func (t *Tracker) Remaining(now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	d := t.last.Add(t.interval).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Missed reports whether a full extra interval has elapsed with no check-in,
// meaning the scheduled slot was skipped rather than merely reached.
func (t *Tracker) Missed(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !now.Before(t.last.Add(2 * t.interval))
}

// NextDue returns when the next check-in is due.
func (t *Tracker) NextDue() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last.Add(t.interval)
}

// Mark records a check-in at now, resetting the interval.
func (t *Tracker) Mark(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = now
}

// Service records check-ins and raises alerts for missed ones.
type Service struct {
	store    store.Store
	tracker  *Tracker
	fallback model.GeoPoint
}

// NewService creates a check-in service.
func NewService(st store.Store, tracker *Tracker, fallback model.GeoPoint) *Service {
	return &Service{store: st, tracker: tracker, fallback: fallback}
}

// CheckIn records a safety check-in at the given location and resets the
// schedule. A nil or invalid location falls back to the default position.
func (s *Service) CheckIn(ctx context.Context, loc *model.GeoPoint, now time.Time) (*model.CheckIn, error) {
	c := model.CheckIn{
		Location:  s.fallback,
		CheckedAt: now.UTC(),
	}
	if loc != nil && loc.Valid() {
		c.Location = *loc
	}

	saved, err := s.store.AddCheckIn(ctx, c)
	if err != nil {
		return nil, eris.Wrap(err, "checkin: record")
	}
	s.tracker.Mark(now)
	return saved, nil
}

// ReportMissed raises a missed-check-in alert if the schedule was skipped.
// It returns the alert, or nil when no check-in is overdue. The tracker is
// re-anchored so one miss produces one alert.
func (s *Service) ReportMissed(ctx context.Context, now time.Time) (*model.Alert, error) {
	if !s.tracker.Missed(now) {
		return nil, nil
	}

	due := s.tracker.NextDue()
	alert, err := s.store.AddAlert(ctx, model.Alert{
		Type:      model.AlertCheckIn,
		Title:     "Missed Check-in",
		Message:   fmt.Sprintf("You missed your scheduled safety check-in at %s.", due.Format("3:04 PM")),
		CreatedAt: now.UTC(),
	})
	if err != nil {
		return nil, eris.Wrap(err, "checkin: record missed alert")
	}
	s.tracker.Mark(now)
	return alert, nil
}
