package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeoPoint_Valid(t *testing.T) {
	assert.True(t, GeoPoint{Lat: 19.033, Lng: 73.0297}.Valid())
	assert.True(t, GeoPoint{}.Valid())
	assert.False(t, GeoPoint{Lat: math.NaN(), Lng: 0}.Valid())
	assert.False(t, GeoPoint{Lat: 0, Lng: math.Inf(1)}.Valid())
	assert.False(t, GeoPoint{Lat: math.Inf(-1), Lng: math.NaN()}.Valid())
}

func TestGeoPoint_DistanceMeters(t *testing.T) {
	p := DefaultLocation

	// Distance to self is zero.
	assert.InDelta(t, 0, p.DistanceMeters(p), 1e-6)

	// ~0.003 degrees of latitude is roughly 333 m.
	q := GeoPoint{Lat: p.Lat + 0.003, Lng: p.Lng}
	d := p.DistanceMeters(q)
	assert.InDelta(t, 333, d, 5)

	// Symmetric.
	assert.InDelta(t, d, q.DistanceMeters(p), 1e-6)
}
