package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suraksha-app/suraksha/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_Migrate_Idempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	require.NoError(t, st.Migrate(context.Background()))
}

func TestSQLite_Profile_DefaultRowAndUpdate(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	p, err := st.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.ID)
	assert.Empty(t, p.FullName)

	p.FullName = "Priya Sharma"
	p.BloodGroup = "O+"
	p.AadhaarVerified = true
	updated, err := st.UpdateProfile(ctx, *p)
	require.NoError(t, err)
	assert.Equal(t, "user-1", updated.ID)

	got, err := st.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", got.FullName)
	assert.Equal(t, "O+", got.BloodGroup)
	assert.True(t, got.AadhaarVerified)
}

func TestSQLite_Contacts_CRUD(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	contacts, err := st.ListContacts(ctx)
	require.NoError(t, err)
	assert.Empty(t, contacts)

	mom, err := st.AddContact(ctx, model.EmergencyContact{Name: "Mom", Relation: "Family"})
	require.NoError(t, err)
	sis, err := st.AddContact(ctx, model.EmergencyContact{Name: "Sister", Relation: "Family"})
	require.NoError(t, err)

	contacts, err = st.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	// Insertion order preserved.
	assert.Equal(t, "Mom", contacts[0].Name)
	assert.Equal(t, "Sister", contacts[1].Name)

	require.NoError(t, st.DeleteContact(ctx, mom.ID))
	contacts, err = st.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, sis.ID, contacts[0].ID)

	assert.ErrorIs(t, st.DeleteContact(ctx, "no-such-id"), ErrNotFound)
}

func TestSQLite_GuardianMode_Toggle(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	g, err := st.GetGuardianMode(ctx)
	require.NoError(t, err)
	assert.False(t, g.Active)

	now := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	_, err = st.SetGuardianMode(ctx, true, now)
	require.NoError(t, err)

	g, err = st.GetGuardianMode(ctx)
	require.NoError(t, err)
	assert.True(t, g.Active)
}

func TestSQLite_Settings_DefaultsAndUpdate(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	s, err := st.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, s.Notifications)
	assert.Equal(t, model.PrivacyStandard, s.PrivacyMode)
	assert.Equal(t, 15, s.CheckInInterval)
	assert.Equal(t, 50, s.SafetyRadius)

	s.DarkMode = true
	s.CheckInInterval = 30
	_, err = st.UpdateSettings(ctx, *s)
	require.NoError(t, err)

	got, err := st.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, got.DarkMode)
	assert.Equal(t, 30, got.CheckInInterval)
}

func TestSQLite_Alerts_Lifecycle(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	older := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	a1, err := st.AddAlert(ctx, model.Alert{Type: model.AlertArea, Title: "Safety Alert: Your Area", CreatedAt: older})
	require.NoError(t, err)
	a2, err := st.AddAlert(ctx, model.Alert{Type: model.AlertCheckIn, Title: "Missed Check-in", CreatedAt: newer})
	require.NoError(t, err)

	alerts, err := st.ListAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	// Newest first.
	assert.Equal(t, a2.ID, alerts[0].ID)
	assert.Equal(t, a1.ID, alerts[1].ID)

	require.NoError(t, st.MarkAlertRead(ctx, a1.ID))
	alerts, err = st.ListAlerts(ctx)
	require.NoError(t, err)
	assert.True(t, alerts[1].Read)
	assert.False(t, alerts[0].Read)

	require.NoError(t, st.MarkAllAlertsRead(ctx))
	alerts, err = st.ListAlerts(ctx)
	require.NoError(t, err)
	assert.True(t, alerts[0].Read)

	require.NoError(t, st.DeleteAlert(ctx, a2.ID))
	alerts, err = st.ListAlerts(ctx)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)

	assert.ErrorIs(t, st.MarkAlertRead(ctx, "gone"), ErrNotFound)
	assert.ErrorIs(t, st.DeleteAlert(ctx, "gone"), ErrNotFound)
}

func TestSQLite_Ratings_RoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	r := model.AreaRating{
		ID:        "safety-1709294400000",
		Location:  model.GeoPoint{Lat: 19.036, Lng: 73.0317},
		Score:     9,
		Comment:   "Well-lit area with good security presence",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		CreatedBy: model.Author{Name: "Priya S.", IsVerified: true},
	}
	require.NoError(t, st.AppendRating(ctx, r))
	require.NoError(t, st.AppendRating(ctx, model.AreaRating{
		ID:        "safety-1709294500000",
		Location:  model.GeoPoint{Lat: 19.031, Lng: 73.0337},
		Score:     3,
		CreatedAt: time.Date(2024, 3, 1, 12, 5, 0, 0, time.UTC),
		CreatedBy: model.Author{Name: "Anjali K."},
	}))

	ratings, err := st.ListRatings(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, r.ID, ratings[0].ID)
	assert.InDelta(t, 19.036, ratings[0].Location.Lat, 1e-9)
	assert.InDelta(t, 73.0317, ratings[0].Location.Lng, 1e-9)
	assert.Equal(t, 9, ratings[0].Score)
	assert.Equal(t, "Priya S.", ratings[0].CreatedBy.Name)
	assert.True(t, ratings[0].CreatedBy.IsVerified)
	assert.False(t, ratings[1].CreatedBy.IsVerified)
}

func TestSQLite_SOSEvents(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	e, err := st.AddSOSEvent(ctx, model.SOSEvent{
		Location:    model.DefaultLocation,
		Approximate: true,
		TriggeredAt: time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)

	events, err := st.ListSOSEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Approximate)
	assert.InDelta(t, model.DefaultLocation.Lat, events[0].Location.Lat, 1e-9)
}

func TestSQLite_CheckIns(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.AddCheckIn(ctx, model.CheckIn{
		Location:  model.GeoPoint{Lat: 19.04, Lng: 73.02},
		CheckedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = st.AddCheckIn(ctx, model.CheckIn{
		Location:  model.GeoPoint{Lat: 19.05, Lng: 73.03},
		CheckedAt: time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	checkins, err := st.ListCheckIns(ctx)
	require.NoError(t, err)
	require.Len(t, checkins, 2)
	// Newest first.
	assert.InDelta(t, 19.05, checkins[0].Location.Lat, 1e-9)
}
