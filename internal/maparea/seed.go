package maparea

import (
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/suraksha-app/suraksha/internal/model"
)

// SeedPoint defines one seed rating as an offset from the session anchor.
type SeedPoint struct {
	DLat      float64   `yaml:"dlat"`
	DLng      float64   `yaml:"dlng"`
	Score     int       `yaml:"score"`
	Comment   string    `yaml:"comment"`
	Author    string    `yaml:"author"`
	Verified  bool      `yaml:"verified"`
	CreatedAt time.Time `yaml:"created_at"`
}

// DefaultSeed returns the built-in demo seed set. Offsets, scores, comments,
// and authors are fixed so demo sessions are reproducible.
func DefaultSeed() []SeedPoint {
	return []SeedPoint{
		{
			DLat: 0.003, DLng: 0.002, Score: 9,
			Comment:   "Well-lit area with regular police patrols. Safe for walking even at night.",
			Author:    "Priya S.",
			Verified:  true,
			CreatedAt: time.Date(2023, 5, 15, 14, 30, 0, 0, time.UTC),
		},
		{
			DLat: -0.002, DLng: 0.004, Score: 3,
			Comment:   "Poorly lit street with few people around. Avoid at night.",
			Author:    "Anjali K.",
			Verified:  true,
			CreatedAt: time.Date(2023, 5, 10, 18, 45, 0, 0, time.UTC),
		},
		{
			DLat: 0.005, DLng: -0.003, Score: 7,
			Comment:   "Busy market area. Safe during day, moderate caution at night.",
			Author:    "Meera R.",
			Verified:  false,
			CreatedAt: time.Date(2023, 5, 12, 10, 15, 0, 0, time.UTC),
		},
	}
}

// ResolveSeed converts seed points to ratings anchored at the given point.
func ResolveSeed(anchor model.GeoPoint, seed []SeedPoint) []model.AreaRating {
	ratings := make([]model.AreaRating, 0, len(seed))
	for i, sp := range seed {
		ratings = append(ratings, model.AreaRating{
			ID: fmt.Sprintf("safety-%d", i+1),
			Location: model.GeoPoint{
				Lat: anchor.Lat + sp.DLat,
				Lng: anchor.Lng + sp.DLng,
			},
			Score:     sp.Score,
			Comment:   sp.Comment,
			CreatedAt: sp.CreatedAt,
			CreatedBy: model.Author{Name: sp.Author, IsVerified: sp.Verified},
		})
	}
	return ratings
}

// LoadSeed replaces the session's ratings with the given seed points
// resolved against the anchor.
func (s *Session) LoadSeed(seed []SeedPoint) {
	s.ratings = ResolveSeed(s.anchor, seed)
}

// ReadSeedFile reads seed points from a YAML file holding a list of
// SeedPoint entries.
func ReadSeedFile(path string) ([]SeedPoint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "maparea: read seed file")
	}
	var seed []SeedPoint
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, eris.Wrap(err, "maparea: parse seed file")
	}
	return seed, nil
}

// LoadSeedFile reads seed points from a YAML file and loads them.
func (s *Session) LoadSeedFile(path string) error {
	seed, err := ReadSeedFile(path)
	if err != nil {
		return err
	}
	s.LoadSeed(seed)
	return nil
}
