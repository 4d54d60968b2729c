package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suraksha-app/suraksha/internal/model"
)

func TestOpen_Memory(t *testing.T) {
	st, err := Open(context.Background(), "memory", "")
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck

	_, ok := st.(*MemoryStore)
	assert.True(t, ok)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

func TestMemory_SeededProfile(t *testing.T) {
	st := NewMemory()
	p, err := st.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", p.FullName)
	assert.False(t, p.AadhaarVerified)
}

func TestMemory_UpdateProfile_KeepsID(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	orig, err := st.GetProfile(ctx)
	require.NoError(t, err)

	updated, err := st.UpdateProfile(ctx, model.Profile{
		ID:       "spoofed-id",
		FullName: "Priya S. Sharma",
		Email:    "priya@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, orig.ID, updated.ID)
	assert.Equal(t, "Priya S. Sharma", updated.FullName)
}

func TestMemory_Contacts_AddAndDelete(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	before, err := st.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, before, 2)

	added, err := st.AddContact(ctx, model.EmergencyContact{Name: "Ravi", Relation: "Friend"})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	after, err := st.ListContacts(ctx)
	require.NoError(t, err)
	assert.Len(t, after, 3)

	require.NoError(t, st.DeleteContact(ctx, added.ID))

	final, err := st.ListContacts(ctx)
	require.NoError(t, err)
	assert.Len(t, final, 2)
}

func TestMemory_DeleteContact_NotFound(t *testing.T) {
	st := NewMemory()
	err := st.DeleteContact(context.Background(), "no-such-contact")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_GuardianMode_Toggle(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	g, err := st.GetGuardianMode(ctx)
	require.NoError(t, err)
	assert.False(t, g.Active)

	now := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	g, err = st.SetGuardianMode(ctx, true, now)
	require.NoError(t, err)
	assert.True(t, g.Active)
	assert.Equal(t, now, g.UpdatedAt)

	g, err = st.GetGuardianMode(ctx)
	require.NoError(t, err)
	assert.True(t, g.Active)
}

func TestMemory_Settings_Update(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	s, err := st.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.PrivacyStandard, s.PrivacyMode)
	assert.Equal(t, 15, s.CheckInInterval)

	s.DarkMode = true
	s.PrivacyMode = model.PrivacyEnhanced
	_, err = st.UpdateSettings(ctx, *s)
	require.NoError(t, err)

	got, err := st.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, got.DarkMode)
	assert.Equal(t, model.PrivacyEnhanced, got.PrivacyMode)
}

func TestMemory_Alerts_ReadLifecycle(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	alerts, err := st.ListAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.False(t, alerts[0].Read)

	require.NoError(t, st.MarkAlertRead(ctx, alerts[0].ID))

	alerts, err = st.ListAlerts(ctx)
	require.NoError(t, err)
	assert.True(t, alerts[0].Read)

	require.NoError(t, st.MarkAllAlertsRead(ctx))
	alerts, err = st.ListAlerts(ctx)
	require.NoError(t, err)
	for _, a := range alerts {
		assert.True(t, a.Read)
	}

	require.NoError(t, st.DeleteAlert(ctx, alerts[0].ID))
	alerts, err = st.ListAlerts(ctx)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestMemory_Alerts_NotFound(t *testing.T) {
	st := NewMemory()
	assert.ErrorIs(t, st.MarkAlertRead(context.Background(), "nope"), ErrNotFound)
	assert.ErrorIs(t, st.DeleteAlert(context.Background(), "nope"), ErrNotFound)
}

func TestMemory_Ratings_AppendOnly(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	ratings, err := st.ListRatings(ctx)
	require.NoError(t, err)
	assert.Empty(t, ratings)

	r := model.AreaRating{
		ID:        "safety-100",
		Location:  model.GeoPoint{Lat: 19.036, Lng: 73.0317},
		Score:     9,
		Comment:   "Well-lit area with good security presence",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		CreatedBy: model.Author{Name: "Priya S.", IsVerified: true},
	}
	require.NoError(t, st.AppendRating(ctx, r))

	ratings, err = st.ListRatings(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, r, ratings[0])

	// The returned slice is a copy; mutating it must not affect the store.
	ratings[0].Score = 1
	again, err := st.ListRatings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, again[0].Score)
}

func TestMemory_SOSEvents(t *testing.T) {
	st := NewMemory()
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
}

func TestMemory_CheckIns(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	c, err := st.AddCheckIn(ctx, model.CheckIn{
		Location:  model.DefaultLocation,
		CheckedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)

	checkins, err := st.ListCheckIns(ctx)
	require.NoError(t, err)
	assert.Len(t, checkins, 1)
}
