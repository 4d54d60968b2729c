// Package store provides the persistence interface for profile, contacts,
// alerts, and safety records, with memory, sqlite, and postgres backends.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/suraksha-app/suraksha/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = eris.New("store: not found")

// Store defines the data-access surface for the safety application. The map
// and scoring cores never touch it directly; it is injected into the HTTP
// layer and the CLI commands.
type Store interface {
	// Profile
	GetProfile(ctx context.Context) (*model.Profile, error)
	UpdateProfile(ctx context.Context, p model.Profile) (*model.Profile, error)

	// Emergency contacts
	ListContacts(ctx context.Context) ([]model.EmergencyContact, error)
	AddContact(ctx context.Context, c model.EmergencyContact) (*model.EmergencyContact, error)
	DeleteContact(ctx context.Context, id string) error

	// Guardian mode
	GetGuardianMode(ctx context.Context) (*model.GuardianState, error)
	SetGuardianMode(ctx context.Context, active bool, now time.Time) (*model.GuardianState, error)

	// Settings
	GetSettings(ctx context.Context) (*model.Settings, error)
	UpdateSettings(ctx context.Context, s model.Settings) (*model.Settings, error)

	// Alerts
	ListAlerts(ctx context.Context) ([]model.Alert, error)
	AddAlert(ctx context.Context, a model.Alert) (*model.Alert, error)
	MarkAlertRead(ctx context.Context, id string) error
	MarkAllAlertsRead(ctx context.Context) error
	DeleteAlert(ctx context.Context, id string) error

	// Area ratings
	ListRatings(ctx context.Context) ([]model.AreaRating, error)
	AppendRating(ctx context.Context, r model.AreaRating) error

	// SOS events
	AddSOSEvent(ctx context.Context, e model.SOSEvent) (*model.SOSEvent, error)
	ListSOSEvents(ctx context.Context) ([]model.SOSEvent, error)

	// Check-ins
	AddCheckIn(ctx context.Context, c model.CheckIn) (*model.CheckIn, error)
	ListCheckIns(ctx context.Context) ([]model.CheckIn, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the given driver. The memory driver ignores dsn.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
