package sos

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suraksha-app/suraksha/internal/model"
	"github.com/suraksha-app/suraksha/internal/notify"
	"github.com/suraksha-app/suraksha/internal/store"
)

// recordingNotifier captures sent messages, failing the first n sends.
type recordingNotifier struct {
	sent     []notify.Message
	failures int
}

func (r *recordingNotifier) Send(ctx context.Context, msg notify.Message) error {
	if r.failures > 0 {
		r.failures--
		return eris.New("notify: send failed")
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestTrigger_WithLiveLocation(t *testing.T) {
	st := store.NewMemory()
	rec := &recordingNotifier{}
	svc := NewService(st, rec, model.DefaultLocation)

	loc := model.GeoPoint{Lat: 19.05, Lng: 73.01}
	now := time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC)

	event, err := svc.Trigger(context.Background(), &loc, now)
	require.NoError(t, err)
	assert.Equal(t, loc, event.Location)
	assert.False(t, event.Approximate)
	assert.Equal(t, []string{"contact-1", "contact-2"}, event.Notified) // seeded contacts
	require.Len(t, rec.sent, 2)
	assert.Equal(t, "EMERGENCY SOS ALERT", rec.sent[0].Subject)
	assert.Contains(t, rec.sent[0].Body, "User: Priya Sharma")
}

func TestTrigger_NilLocationUsesFallback(t *testing.T) {
	st := store.NewMemory()
	rec := &recordingNotifier{}
	svc := NewService(st, rec, model.DefaultLocation)

	event, err := svc.Trigger(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLocation, event.Location)
	assert.True(t, event.Approximate)
	assert.Contains(t, rec.sent[0].Body, "(approximate)")
}

func TestTrigger_InvalidLocationUsesFallback(t *testing.T) {
	st := store.NewMemory()
	rec := &recordingNotifier{}
	svc := NewService(st, rec, model.DefaultLocation)

	bad := model.GeoPoint{Lat: math.NaN(), Lng: 0}
	event, err := svc.Trigger(context.Background(), &bad, time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLocation, event.Location)
	assert.True(t, event.Approximate)
}

func TestTrigger_PartialNotifyFailure(t *testing.T) {
	st := store.NewMemory()
	rec := &recordingNotifier{failures: 1}
	svc := NewService(st, rec, model.DefaultLocation)

	event, err := svc.Trigger(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"contact-2"}, event.Notified)

	// Event is recorded regardless of delivery outcome.
	events, err := st.ListSOSEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestTrigger_RaisesSystemAlert(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st, &recordingNotifier{}, model.DefaultLocation)

	before, err := st.ListAlerts(context.Background())
	require.NoError(t, err)

	_, err = svc.Trigger(context.Background(), nil, time.Now())
	require.NoError(t, err)

	after, err := st.ListAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)

	var found bool
	for _, a := range after {
		if a.Title == "SOS Activated" {
			found = true
			assert.Equal(t, model.AlertSystem, a.Type)
			assert.Contains(t, a.Message, "approximate location")
		}
	}
	assert.True(t, found)
}
