package maparea

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/suraksha-app/suraksha/internal/model"
)

// Marker is a pending, unsaved rating position. It exists only between a
// click on empty map space and either SaveRating or DiscardRating.
type Marker struct {
	Location model.GeoPoint `json:"location"`
	Screen   ScreenPoint    `json:"screen"`
}

// Session owns the rating collection, view transform, and gesture state for
// one active map view. It is not safe for concurrent use; a session belongs
// to a single view.
type Session struct {
	anchor    model.GeoPoint
	viewport  Viewport
	transform ViewTransform
	hitRadius float64

	ratings []model.AreaRating
	pending *Marker

	pointerDown bool
	dragging    bool
}

// NewSession creates a map session anchored at the given point.
func NewSession(anchor model.GeoPoint, vp Viewport) *Session {
	return &Session{
		anchor:    anchor,
		viewport:  vp,
		transform: NewViewTransform(),
		hitRadius: DefaultHitRadiusPx,
	}
}

// Anchor returns the session's reference location.
func (s *Session) Anchor() model.GeoPoint { return s.anchor }

// Transform returns the current view transform.
func (s *Session) Transform() ViewTransform { return s.transform }

// Ratings returns the ratings in insertion order. The returned slice is a
// copy; the session keeps ownership of the underlying collection.
func (s *Session) Ratings() []model.AreaRating {
	out := make([]model.AreaRating, len(s.ratings))
	copy(out, s.ratings)
	return out
}

// Pending returns the pending marker, or nil when none exists.
func (s *Session) Pending() *Marker { return s.pending }

// Replace swaps the entire rating collection. Used by seed loading and by
// callers hydrating a session from a store.
func (s *Session) Replace(ratings []model.AreaRating) {
	s.ratings = make([]model.AreaRating, len(ratings))
	copy(s.ratings, ratings)
}

// Pan shifts the view by a raw pointer delta.
func (s *Session) Pan(dx, dy float64) { s.transform.PanBy(dx, dy) }

// ZoomIn increases the zoom one step.
func (s *Session) ZoomIn() { s.transform.ZoomIn() }

// ZoomOut decreases the zoom one step.
func (s *Session) ZoomOut() { s.transform.ZoomOut() }

// PointerDown begins a pointer gesture.
func (s *Session) PointerDown() {
	s.pointerDown = true
	s.dragging = false
}

// PointerMove pans the view while the pointer is down. Any movement marks
// the gesture as a drag, which suppresses click resolution until the next
// PointerDown.
func (s *Session) PointerMove(dx, dy float64) {
	if !s.pointerDown {
		return
	}
	if dx != 0 || dy != 0 {
		s.dragging = true
		s.transform.PanBy(dx, dy)
	}
}

// PointerUp ends the gesture and reports whether it was a drag.
func (s *Session) PointerUp() bool {
	s.pointerDown = false
	return s.dragging
}

// Project maps a geographic point through the session's current transform.
func (s *Session) Project(p model.GeoPoint) ScreenPoint {
	return Project(p, s.anchor, s.transform, s.viewport)
}

// Unproject maps a screen position back to geographic coordinates.
func (s *Session) Unproject(p ScreenPoint) model.GeoPoint {
	return Unproject(p, s.anchor, s.transform, s.viewport)
}

// HitTest returns the first rating (in insertion order) whose projected
// position lies within the hit radius of the click, or nil when none does.
// Ties resolve to the first match, not the nearest.
func (s *Session) HitTest(click ScreenPoint) *model.AreaRating {
	for i := range s.ratings {
		pos := s.Project(s.ratings[i].Location)
		if distancePx(click, pos) <= s.hitRadius {
			return &s.ratings[i]
		}
	}
	return nil
}

// Click resolves a click into one of two intents: selecting an existing
// rating, or beginning a new one at the clicked location. A click that ends
// a drag gesture resolves to neither.
func (s *Session) Click(p ScreenPoint) (selected *model.AreaRating, pending *Marker) {
	if s.dragging {
		s.dragging = false
		return nil, nil
	}
	if hit := s.HitTest(p); hit != nil {
		return hit, nil
	}
	return nil, s.BeginRating(p)
}

// BeginRating creates a pending marker at the clicked screen position. The
// rating collection is not touched until SaveRating.
func (s *Session) BeginRating(p ScreenPoint) *Marker {
	s.pending = &Marker{
		Location: s.Unproject(p),
		Screen:   p,
	}
	return s.pending
}

// SaveRating materializes the pending marker into a new AreaRating, appends
// it to the collection, and discards the marker. The score is trusted to be
// within [1,10]: the submitting control is a bounded slider, and the HTTP
// layer validates its own inputs before reaching the session.
func (s *Session) SaveRating(score int, comment string, author model.Author, now time.Time) (*model.AreaRating, error) {
	if s.pending == nil {
		return nil, eris.New("maparea: no pending rating marker")
	}
	rating := model.AreaRating{
		ID:        model.NewRatingID(now),
		Location:  s.pending.Location,
		Score:     score,
		Comment:   comment,
		CreatedAt: now,
		CreatedBy: author,
	}
	s.ratings = append(s.ratings, rating)
	s.pending = nil
	return &s.ratings[len(s.ratings)-1], nil
}

// DiscardRating drops the pending marker without mutating the collection.
// Confirming the discard of a non-default draft is the caller's job; the
// session never prompts.
func (s *Session) DiscardRating() {
	s.pending = nil
}
