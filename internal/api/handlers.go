package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/suraksha-app/suraksha/internal/config"
	"github.com/suraksha-app/suraksha/internal/guardian"
	"github.com/suraksha-app/suraksha/internal/identity"
	"github.com/suraksha-app/suraksha/internal/model"
	"github.com/suraksha-app/suraksha/internal/safety"
	"github.com/suraksha-app/suraksha/internal/store"
)

type handler struct {
	deps Deps
	cfg  *config.Config
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseLocation reads lat/lng query parameters and rejects non-finite values.
func parseLocation(r *http.Request) (model.GeoPoint, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		return model.GeoPoint{}, eris.Wrap(err, "api: parse lat")
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		return model.GeoPoint{}, eris.Wrap(err, "api: parse lng")
	}
	p := model.GeoPoint{Lat: lat, Lng: lng}
	if !p.Valid() {
		return model.GeoPoint{}, eris.New("api: coordinates must be finite")
	}
	return p, nil
}

// --- Safety score ---

type scoreResponse struct {
	Location model.GeoPoint `json:"location"`
	Time     time.Time      `json:"time"`
	Score    int            `json:"score"`
	Factors  safety.Factors `json:"factors"`
}

func (h *handler) getSafetyScore(w http.ResponseWriter, r *http.Request) {
	loc, err := parseLocation(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat and lng must be finite numbers")
		return
	}

	now := time.Now()
	if at := r.URL.Query().Get("at"); at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			writeError(w, http.StatusBadRequest, "at must be RFC3339")
			return
		}
		now = t
	}

	writeJSON(w, http.StatusOK, scoreResponse{
		Location: loc,
		Time:     now,
		Score:    safety.ScoreWeighted(loc, now, h.cfg.Safety.Weights),
		Factors:  safety.ComputeFactors(loc, now),
	})
}

// --- Area ratings ---

func (h *handler) listRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.deps.Store.ListRatings(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}
	if ratings == nil {
		ratings = []model.AreaRating{}
	}
	writeJSON(w, http.StatusOK, ratings)
}

type createRatingRequest struct {
	Location model.GeoPoint `json:"location"`
	Score    int            `json:"score"`
	Comment  string         `json:"comment"`
	Author   model.Author   `json:"author"`
}

func (h *handler) createRating(w http.ResponseWriter, r *http.Request) {
	var req createRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Location.Valid() {
		writeError(w, http.StatusBadRequest, "location must be finite")
		return
	}
	if req.Score < 1 || req.Score > 10 {
		writeError(w, http.StatusBadRequest, "score must be between 1 and 10")
		return
	}

	now := time.Now()
	rating := model.AreaRating{
		ID:        model.NewRatingID(now),
		Location:  req.Location,
		Score:     req.Score,
		Comment:   req.Comment,
		CreatedAt: now.UTC(),
		CreatedBy: req.Author,
	}
	if err := h.deps.Store.AppendRating(r.Context(), rating); err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rating)
}

// --- Profile ---

func (h *handler) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.Store.GetProfile(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var p model.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.deps.Store.UpdateProfile(r.Context(), p)
	if err != nil {
		h.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type verifyRequest struct {
	AadhaarNumber string `json:"aadhaar_number"`
}

func (h *handler) verifyAadhaar(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.deps.Identity.VerifyAadhaar(r.Context(), req.AadhaarNumber)
	if eris.Is(err, identity.ErrInvalidNumber) {
		writeError(w, http.StatusBadRequest, "aadhaar number must be 12 digits")
		return
	}
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// --- Emergency contacts ---

func (h *handler) listContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.deps.Store.ListContacts(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}
	if contacts == nil {
		contacts = []model.EmergencyContact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *handler) addContact(w http.ResponseWriter, r *http.Request) {
	var c model.EmergencyContact
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if c.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	added, err := h.deps.Store.AddContact(r.Context(), c)
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (h *handler) deleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Store.DeleteContact(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Guardian mode ---

func (h *handler) getGuardianMode(w http.ResponseWriter, r *http.Request) {
	g, err := h.deps.Store.GetGuardianMode(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *handler) activateGuardian(w http.ResponseWriter, r *http.Request) {
	g, err := h.deps.Guardian.Activate(r.Context(), time.Now())
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *handler) deactivateGuardian(w http.ResponseWriter, r *http.Request) {
	g, err := h.deps.Guardian.Deactivate(r.Context(), time.Now())
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

type shareLocationRequest struct {
	Location model.GeoPoint `json:"location"`
}

func (h *handler) shareGuardianLocation(w http.ResponseWriter, r *http.Request) {
	var req shareLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.deps.Guardian.ShareLocation(r.Context(), req.Location, time.Now())
	if eris.Is(err, guardian.ErrInactive) {
		writeError(w, http.StatusConflict, "guardian mode is not active")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "location must be finite")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) getGuardianTrail(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Guardian.Trail())
}

// --- Settings ---

func (h *handler) getSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.deps.Store.GetSettings(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var s model.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.deps.Store.UpdateSettings(r.Context(), s)
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// --- Alerts ---

func (h *handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.deps.Store.ListAlerts(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}
	if alerts == nil {
		alerts = []model.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (h *handler) markAlertRead(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Store.MarkAlertRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) markAllAlertsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Store.MarkAllAlertsRead(r.Context()); err != nil {
		h.internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) deleteAlert(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Store.DeleteAlert(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- SOS ---

type triggerSOSRequest struct {
	Location *model.GeoPoint `json:"location,omitempty"`
}

func (h *handler) triggerSOS(w http.ResponseWriter, r *http.Request) {
	var req triggerSOSRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	event, err := h.deps.SOS.Trigger(r.Context(), req.Location, time.Now())
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *handler) listSOSEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.deps.Store.ListSOSEvents(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}
	if events == nil {
		events = []model.SOSEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

// --- Check-ins ---

type checkInRequest struct {
	Location *model.GeoPoint `json:"location,omitempty"`
}

func (h *handler) recordCheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	c, err := h.deps.CheckIn.CheckIn(r.Context(), req.Location, time.Now())
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *handler) listCheckIns(w http.ResponseWriter, r *http.Request) {
	checkins, err := h.deps.Store.ListCheckIns(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}
	if checkins == nil {
		checkins = []model.CheckIn{}
	}
	writeJSON(w, http.StatusOK, checkins)
}

// --- Error helpers ---

func (h *handler) internalError(w http.ResponseWriter, err error) {
	zap.L().Error("api: request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (h *handler) storeError(w http.ResponseWriter, err error) {
	if eris.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	h.internalError(w, err)
}
