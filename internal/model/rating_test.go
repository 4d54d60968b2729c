package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRatingID(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	id := NewRatingID(now)
	assert.True(t, strings.HasPrefix(id, "safety-1709294400000-"), "id %q", id)

	// Same millisecond, distinct IDs.
	seen := make(map[string]bool)
	for range 100 {
		other := NewRatingID(now)
		assert.False(t, seen[other], "duplicate id %q", other)
		seen[other] = true
	}
}
