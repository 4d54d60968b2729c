package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/suraksha-app/suraksha/internal/model"
)

// MemoryStore is the in-memory backend used by the prototype. It ships
// pre-seeded with the demo dataset so the app is usable with no database.
type MemoryStore struct {
	mu       sync.RWMutex
	profile  model.Profile
	contacts []model.EmergencyContact
	guardian model.GuardianState
	settings model.Settings
	alerts   []model.Alert
	ratings  []model.AreaRating
	sos      []model.SOSEvent
	checkins []model.CheckIn
}

// NewMemory creates a MemoryStore seeded with the demo dataset.
func NewMemory() *MemoryStore {
	now := time.Now().UTC()
	return &MemoryStore{
		profile: model.Profile{
			ID:          "user-123",
			FullName:    "Priya Sharma",
			Email:       "demo@example.com",
			Phone:       "XXXXXXXXXX",
			Address:     "123 Main Street, Mumbai",
			BloodGroup:  "O+",
			Allergies:   "None",
			Medications: "None",
		},
		contacts: []model.EmergencyContact{
			{ID: "contact-1", Name: "Mom", Phone: "XXXXXXXXXX", Email: "mom@example.com", Relation: "Family"},
			{ID: "contact-2", Name: "Sister", Phone: "XXXXXXXXXX", Email: "sister@example.com", Relation: "Family"},
		},
		settings: model.Settings{
			Notifications:    true,
			Sound:            true,
			LocationTracking: true,
			PrivacyMode:      model.PrivacyStandard,
			CheckInInterval:  15,
			SafetyRadius:     50,
		},
		alerts: []model.Alert{
			{
				ID:        "alert-1",
				Type:      model.AlertArea,
				Title:     "Safety Alert: Your Area",
				Message:   "Recent incidents reported in your vicinity. Exercise caution when traveling alone.",
				Location:  "Within 500m of your location",
				CreatedAt: now.Add(-2 * time.Hour),
			},
			{
				ID:        "alert-2",
				Type:      model.AlertCheckIn,
				Title:     "Missed Check-in",
				Message:   "You missed your scheduled safety check-in at 9:00 AM.",
				CreatedAt: now.Add(-3 * time.Hour),
				Read:      true,
			},
			{
				ID:        "alert-3",
				Type:      model.AlertSystem,
				Title:     "Guardian Mode Activated",
				Message:   "Guardian mode was activated for your journey home.",
				CreatedAt: now.Add(-26 * time.Hour),
				Read:      true,
			},
		},
	}
}

func (s *MemoryStore) GetProfile(ctx context.Context) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.profile
	return &p, nil
}

func (s *MemoryStore) UpdateProfile(ctx context.Context, p model.Profile) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.profile.ID
	s.profile = p
	out := s.profile
	return &out, nil
}

func (s *MemoryStore) ListContacts(ctx context.Context) ([]model.EmergencyContact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.EmergencyContact, len(s.contacts))
	copy(out, s.contacts)
	return out, nil
}

func (s *MemoryStore) AddContact(ctx context.Context, c model.EmergencyContact) (*model.EmergencyContact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = "contact-" + uuid.New().String()
	}
	s.contacts = append(s.contacts, c)
	return &c, nil
}

func (s *MemoryStore) DeleteContact(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.contacts {
		if c.ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) GetGuardianMode(ctx context.Context) (*model.GuardianState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g := s.guardian
	return &g, nil
}

func (s *MemoryStore) SetGuardianMode(ctx context.Context, active bool, now time.Time) (*model.GuardianState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guardian = model.GuardianState{Active: active, UpdatedAt: now}
	g := s.guardian
	return &g, nil
}

func (s *MemoryStore) GetSettings(ctx context.Context) (*model.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.settings
	return &st, nil
}

func (s *MemoryStore) UpdateSettings(ctx context.Context, st model.Settings) (*model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = st
	out := s.settings
	return &out, nil
}

func (s *MemoryStore) ListAlerts(ctx context.Context) ([]model.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out, nil
}

func (s *MemoryStore) AddAlert(ctx context.Context, a model.Alert) (*model.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = "alert-" + uuid.New().String()
	}
	s.alerts = append(s.alerts, a)
	return &a, nil
}

func (s *MemoryStore) MarkAlertRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) MarkAllAlertsRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		s.alerts[i].Read = true
	}
	return nil
}

func (s *MemoryStore) DeleteAlert(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.alerts {
		if a.ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListRatings(ctx context.Context) ([]model.AreaRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AreaRating, len(s.ratings))
	copy(out, s.ratings)
	return out, nil
}

func (s *MemoryStore) AppendRating(ctx context.Context, r model.AreaRating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings = append(s.ratings, r)
	return nil
}

func (s *MemoryStore) AddSOSEvent(ctx context.Context, e model.SOSEvent) (*model.SOSEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = "sos-" + uuid.New().String()
	}
	s.sos = append(s.sos, e)
	return &e, nil
}

func (s *MemoryStore) ListSOSEvents(ctx context.Context) ([]model.SOSEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.SOSEvent, len(s.sos))
	copy(out, s.sos)
	return out, nil
}

func (s *MemoryStore) AddCheckIn(ctx context.Context, c model.CheckIn) (*model.CheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = "checkin-" + uuid.New().String()
	}
	s.checkins = append(s.checkins, c)
	return &c, nil
}

func (s *MemoryStore) ListCheckIns(ctx context.Context) ([]model.CheckIn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.CheckIn, len(s.checkins))
	copy(out, s.checkins)
	return out, nil
}

// Migrate is a no-op for the memory backend.
func (s *MemoryStore) Migrate(ctx context.Context) error { return nil }

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error { return nil }
