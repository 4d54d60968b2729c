package guardian

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suraksha-app/suraksha/internal/model"
	"github.com/suraksha-app/suraksha/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemory()
	return NewService(st, model.DefaultLocation, 50), st
}

func TestActivate_SetsModeAndRaisesAlert(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

	state, err := svc.Activate(ctx, now)
	require.NoError(t, err)
	assert.True(t, state.Active)

	g, err := st.GetGuardianMode(ctx)
	require.NoError(t, err)
	assert.True(t, g.Active)

	alerts, err := st.ListAlerts(ctx)
	require.NoError(t, err)
	var found bool
	for _, a := range alerts {
		if a.Title == "Guardian Mode Activated" && a.CreatedAt.Equal(now) {
			found = true
			assert.Equal(t, model.AlertSystem, a.Type)
		}
	}
	assert.True(t, found)
}

func TestShareLocation_RequiresActiveMode(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.ShareLocation(ctx, model.GeoPoint{Lat: 19.04, Lng: 73.02}, time.Now())
	assert.ErrorIs(t, err, ErrInactive)
}

func TestShareLocation_BuildsTrail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

	_, err := svc.Activate(ctx, now)
	require.NoError(t, err)

	require.NoError(t, svc.ShareLocation(ctx, model.GeoPoint{Lat: 19.04, Lng: 73.02}, now.Add(time.Minute)))
	require.NoError(t, svc.ShareLocation(ctx, model.GeoPoint{Lat: 19.038, Lng: 73.025}, now.Add(2*time.Minute)))

	trail := svc.Trail()
	require.Len(t, trail, 2)
	assert.Equal(t, 19.04, trail[0].Location.Lat)
	assert.True(t, trail[1].SharedAt.After(trail[0].SharedAt))
}

func countAlerts(t *testing.T, st *store.MemoryStore, title string) int {
	t.Helper()
	alerts, err := st.ListAlerts(context.Background())
	require.NoError(t, err)
	n := 0
	for _, a := range alerts {
		if a.Title == title {
			n++
		}
	}
	return n
}

func TestShareLocation_ArrivalAlertOncePerJourney(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	away := model.GeoPoint{Lat: model.DefaultLocation.Lat + 0.003, Lng: model.DefaultLocation.Lng}

	_, err := svc.Activate(ctx, now)
	require.NoError(t, err)

	// Still traveling: no arrival alert.
	require.NoError(t, svc.ShareLocation(ctx, away, now.Add(time.Minute)))
	assert.Equal(t, 0, countAlerts(t, st, "Arrived Home"))

	// First position inside the safety radius raises the alert.
	require.NoError(t, svc.ShareLocation(ctx, model.DefaultLocation, now.Add(2*time.Minute)))
	assert.Equal(t, 1, countAlerts(t, st, "Arrived Home"))

	// Lingering near home does not repeat it.
	require.NoError(t, svc.ShareLocation(ctx, model.DefaultLocation, now.Add(3*time.Minute)))
	assert.Equal(t, 1, countAlerts(t, st, "Arrived Home"))

	// A new journey arms the alert again.
	_, err = svc.Deactivate(ctx, now.Add(4*time.Minute))
	require.NoError(t, err)
	_, err = svc.Activate(ctx, now.Add(5*time.Minute))
	require.NoError(t, err)
	require.NoError(t, svc.ShareLocation(ctx, model.DefaultLocation, now.Add(6*time.Minute)))
	assert.Equal(t, 2, countAlerts(t, st, "Arrived Home"))
}

func TestDeactivate_ClearsTrail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	now := time.Now()

	_, err := svc.Activate(ctx, now)
	require.NoError(t, err)
	require.NoError(t, svc.ShareLocation(ctx, model.DefaultLocation, now))

	state, err := svc.Deactivate(ctx, now)
	require.NoError(t, err)
	assert.False(t, state.Active)
	assert.Empty(t, svc.Trail())
}

func TestNearHome(t *testing.T) {
	svc, _ := newTestService(t)

	assert.True(t, svc.NearHome(model.DefaultLocation))
	// 0.003 degrees of latitude is roughly 330 m, well outside a 50 m radius.
	far := model.GeoPoint{Lat: model.DefaultLocation.Lat + 0.003, Lng: model.DefaultLocation.Lng}
	assert.False(t, svc.NearHome(far))
}
