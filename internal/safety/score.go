// Package safety implements the synthetic safety-score engine.
//
// The score is a deterministic placeholder for a real geospatial risk model:
// five factors are derived from the coordinates and the hour of day, combined
// as a weighted sum, and clamped to [1,10]. The factor formulas are frozen —
// downstream displays and the seeded demo data depend on exact output parity.
package safety

import (
	"math"
	"time"

	"github.com/suraksha-app/suraksha/internal/model"
)

// Factors holds the five intermediate factor scores, each in [0,10].
type Factors struct {
	TimeOfDay      float64 `json:"time_of_day"`
	CrimeRate      float64 `json:"crime_rate"`
	Crowdedness    float64 `json:"crowdedness"`
	Lighting       float64 `json:"lighting"`
	KnownSafeZones float64 `json:"known_safe_zones"`
}

// Weights are the factor weights used in the final weighted sum.
type Weights struct {
	TimeOfDay      float64 `yaml:"time_of_day" mapstructure:"time_of_day"`
	CrimeRate      float64 `yaml:"crime_rate" mapstructure:"crime_rate"`
	Crowdedness    float64 `yaml:"crowdedness" mapstructure:"crowdedness"`
	Lighting       float64 `yaml:"lighting" mapstructure:"lighting"`
	KnownSafeZones float64 `yaml:"known_safe_zones" mapstructure:"known_safe_zones"`
}

// DefaultWeights returns the production factor weights. They sum to 1.0.
func DefaultWeights() Weights {
	return Weights{
		TimeOfDay:      0.30,
		CrimeRate:      0.25,
		Crowdedness:    0.15,
		Lighting:       0.15,
		KnownSafeZones: 0.15,
	}
}

// Sum returns the sum of all weights.
func (w Weights) Sum() float64 {
	return w.TimeOfDay + w.CrimeRate + w.Crowdedness + w.Lighting + w.KnownSafeZones
}

// ComputeFactors evaluates the five factor scores for a location at a given
// time. Pure: the same inputs always produce the same factors.
func ComputeFactors(loc model.GeoPoint, now time.Time) Factors {
	hour := now.Hour()
	return Factors{
		TimeOfDay:      timeOfDayScore(hour),
		CrimeRate:      crimeRateScore(loc),
		Crowdedness:    crowdednessScore(loc, hour),
		Lighting:       lightingScore(hour),
		KnownSafeZones: safeZonesScore(loc),
	}
}

// Score computes the integer safety score in [1,10] for a location at a
// given time using the default weights.
func Score(loc model.GeoPoint, now time.Time) int {
	return ScoreWeighted(loc, now, DefaultWeights())
}

// ScoreWeighted computes the integer safety score using custom weights.
// Coordinates are not validated here: non-finite input propagates NaN and the
// caller is expected to reject it up front.
func ScoreWeighted(loc model.GeoPoint, now time.Time, w Weights) int {
	f := ComputeFactors(loc, now)
	weighted := f.TimeOfDay*w.TimeOfDay +
		f.CrimeRate*w.CrimeRate +
		f.Crowdedness*w.Crowdedness +
		f.Lighting*w.Lighting +
		f.KnownSafeZones*w.KnownSafeZones
	return int(clamp(math.Round(weighted), 1, 10))
}

// timeOfDayScore penalizes night hours. The second branch is kept exactly as
// the product shipped it, including the always-partially-shadowed OR
// condition; changing the branch order or thresholds is a product decision,
// not a code fix.
func timeOfDayScore(hour int) float64 {
	if hour >= 22 || hour <= 5 {
		return 5 // night (10 PM - 5 AM)
	}
	if hour >= 18 || hour <= 7 {
		return 7 // evening / early morning
	}
	return 10
}

// crimeRateScore derives a pseudo crime-rate factor from the coordinates.
func crimeRateScore(loc model.GeoPoint) float64 {
	base := 7.0
	latVariation := math.Sin(loc.Lat*10) * 2
	lngVariation := math.Cos(loc.Lng*10) * 2
	return clamp(base+latVariation+lngVariation, 1, 10)
}

// crowdednessScore is higher during business hours, lower at night, with a
// bounded location-dependent variation.
func crowdednessScore(loc model.GeoPoint, hour int) float64 {
	base := 7.0
	switch {
	case hour >= 9 && hour <= 17:
		base = 8 // daytime
	case hour >= 18 && hour <= 22:
		base = 7 // evening
	default:
		base = 4 // night
	}
	variation := (math.Sin(loc.Lat+loc.Lng) + 1) * 2
	return clamp(base+variation, 1, 10)
}

// lightingScore is a fixed day/night split.
func lightingScore(hour int) float64 {
	if hour >= 18 || hour <= 6 {
		return 6
	}
	return 9
}

// safeZonesScore approximates proximity to police stations, hospitals, etc.
func safeZonesScore(loc model.GeoPoint) float64 {
	return clamp(6+math.Cos(loc.Lat*loc.Lng)*3, 1, 10)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
