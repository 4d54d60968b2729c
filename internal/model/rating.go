package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Author identifies who submitted an area rating.
type Author struct {
	Name       string `json:"name"`
	IsVerified bool   `json:"is_verified"`
}

// AreaRating is a community-submitted safety assessment anchored to a
// geographic point. Ratings are append-only for the lifetime of a map
// session; they are never edited after creation.
type AreaRating struct {
	ID        string    `json:"id"`
	Location  GeoPoint  `json:"location"`
	Score     int       `json:"score"` // 1-10
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy Author    `json:"created_by"`
}

// NewRatingID builds a rating ID from the submission time plus a random
// suffix. The timestamp keeps IDs sortable by creation; the suffix keeps two
// submissions in the same millisecond from colliding on the primary key.
func NewRatingID(now time.Time) string {
	return fmt.Sprintf("safety-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
