// Package maparea implements the crowd-sourced area-rating map model: a
// local flat projection around an anchor point, pan/zoom view state, marker
// hit-testing, and append-only rating submission.
package maparea

import (
	"math"

	"github.com/suraksha-app/suraksha/internal/model"
)

const (
	// MinZoom and MaxZoom bound the view zoom factor.
	MinZoom = 0.5
	MaxZoom = 5.0
	// ZoomStep is the multiplicative step applied per zoom action.
	ZoomStep = 1.2
	// ProjectionScale converts degrees of offset from the anchor to pixels
	// at zoom 1. A linear approximation, only valid near the anchor.
	ProjectionScale = 10000.0
	// DefaultHitRadiusPx is the marker selection radius in pixels.
	DefaultHitRadiusPx = 10.0
)

// Offset is a 2-D pixel offset.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScreenPoint is a position on the view surface in pixels.
type ScreenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the size of the view surface.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the viewport center point.
func (v Viewport) Center() ScreenPoint {
	return ScreenPoint{X: v.Width / 2, Y: v.Height / 2}
}

// ViewTransform is the pan/zoom state applied when projecting points.
type ViewTransform struct {
	Pan  Offset  `json:"pan"`
	Zoom float64 `json:"zoom"`
}

// NewViewTransform returns the identity transform (no pan, zoom 1).
func NewViewTransform() ViewTransform {
	return ViewTransform{Zoom: 1}
}

// PanBy accumulates a pointer delta into the pan offset. Unbounded.
func (t *ViewTransform) PanBy(dx, dy float64) {
	t.Pan.X += dx
	t.Pan.Y += dy
}

// ZoomIn multiplies the zoom factor by ZoomStep, clamped to MaxZoom.
func (t *ViewTransform) ZoomIn() {
	t.Zoom = math.Min(t.Zoom*ZoomStep, MaxZoom)
}

// ZoomOut divides the zoom factor by ZoomStep, clamped to MinZoom.
func (t *ViewTransform) ZoomOut() {
	t.Zoom = math.Max(t.Zoom/ZoomStep, MinZoom)
}

// Project maps a geographic point to screen coordinates relative to the
// anchor under the given transform. North is up: latitude increases toward
// smaller y.
func Project(p, anchor model.GeoPoint, t ViewTransform, vp Viewport) ScreenPoint {
	c := vp.Center()
	return ScreenPoint{
		X: c.X + (p.Lng-anchor.Lng)*ProjectionScale*t.Zoom + t.Pan.X,
		Y: c.Y - (p.Lat-anchor.Lat)*ProjectionScale*t.Zoom + t.Pan.Y,
	}
}

// Unproject is the exact inverse of Project.
func Unproject(s ScreenPoint, anchor model.GeoPoint, t ViewTransform, vp Viewport) model.GeoPoint {
	c := vp.Center()
	return model.GeoPoint{
		Lat: anchor.Lat - (s.Y-c.Y-t.Pan.Y)/(ProjectionScale*t.Zoom),
		Lng: anchor.Lng + (s.X-c.X-t.Pan.X)/(ProjectionScale*t.Zoom),
	}
}

// distancePx returns the Euclidean distance between two screen points.
func distancePx(a, b ScreenPoint) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
