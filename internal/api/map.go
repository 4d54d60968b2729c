package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/suraksha-app/suraksha/internal/maparea"
	"github.com/suraksha-app/suraksha/internal/model"
)

// viewParams are the screen position and view transform a thin map client
// sends with projection queries.
type viewParams struct {
	point     maparea.ScreenPoint
	transform maparea.ViewTransform
}

// parseFinite parses a query value and rejects NaN and infinities, which
// would otherwise flow through the projection math and break JSON encoding.
func parseFinite(raw, name string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "api: parse %s", name)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, eris.Errorf("api: %s must be finite", name)
	}
	return v, nil
}

func parseViewParams(r *http.Request) (viewParams, error) {
	q := r.URL.Query()

	x, err := parseFinite(q.Get("x"), "x")
	if err != nil {
		return viewParams{}, err
	}
	y, err := parseFinite(q.Get("y"), "y")
	if err != nil {
		return viewParams{}, err
	}

	t := maparea.NewViewTransform()
	if z := q.Get("zoom"); z != "" {
		zoom, err := parseFinite(z, "zoom")
		if err != nil || zoom < maparea.MinZoom || zoom > maparea.MaxZoom {
			return viewParams{}, eris.New("api: zoom out of range")
		}
		t.Zoom = zoom
	}
	if p := q.Get("pan_x"); p != "" {
		if t.Pan.X, err = parseFinite(p, "pan_x"); err != nil {
			return viewParams{}, err
		}
	}
	if p := q.Get("pan_y"); p != "" {
		if t.Pan.Y, err = parseFinite(p, "pan_y"); err != nil {
			return viewParams{}, err
		}
	}

	return viewParams{point: maparea.ScreenPoint{X: x, Y: y}, transform: t}, nil
}

func (h *handler) anchor() model.GeoPoint {
	lat, lng := h.cfg.DefaultLocation()
	return model.GeoPoint{Lat: lat, Lng: lng}
}

func (h *handler) viewport() maparea.Viewport {
	return maparea.Viewport{
		Width:  h.cfg.Map.ViewportWidth,
		Height: h.cfg.Map.ViewportHeight,
	}
}

// unprojectPoint converts a screen position under the given transform back to
// geographic coordinates.
func (h *handler) unprojectPoint(w http.ResponseWriter, r *http.Request) {
	params, err := parseViewParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "x, y, zoom, pan_x, pan_y must be finite numbers")
		return
	}
	loc := maparea.Unproject(params.point, h.anchor(), params.transform, h.viewport())
	writeJSON(w, http.StatusOK, loc)
}

// hitTestRating resolves a screen position to the first stored rating within
// the configured hit radius, in insertion order.
func (h *handler) hitTestRating(w http.ResponseWriter, r *http.Request) {
	params, err := parseViewParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "x, y, zoom, pan_x, pan_y must be finite numbers")
		return
	}

	ratings, err := h.deps.Store.ListRatings(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}

	anchor, vp := h.anchor(), h.viewport()
	for i := range ratings {
		pos := maparea.Project(ratings[i].Location, anchor, params.transform, vp)
		if math.Hypot(pos.X-params.point.X, pos.Y-params.point.Y) <= h.cfg.Map.HitRadiusPx {
			writeJSON(w, http.StatusOK, ratings[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "no rating at that position")
}
