/*
handlers.go - HTTP API handlers for the calendar view engine

PURPOSE:
  Exposes the calendar engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the engine and session manager.

ENDPOINTS:
  Matrix:
    GET    /api/matrix                 Stateless matrix render

  Profiles:
    GET    /api/profiles               List stored profiles
    POST   /api/profiles               Create profile from JSON
    GET    /api/profiles/{id}          Get profile
    DELETE /api/profiles/{id}          Delete profile

  Sessions:
    POST   /api/sessions               Open session
    GET    /api/sessions/{id}          Session snapshot
    POST   /api/sessions/{id}/keys     Apply keyboard command
    POST   /api/sessions/{id}/cells    Apply cell click
    POST   /api/sessions/{id}/navigate Apply surface action (prev/next/...)
    DELETE /api/sessions/{id}          Close session

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/{name}       Seed demo profiles

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Commit attempted against an improper (inverted) range
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo profile seeding
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/factory"
	"github.com/warp/calendar-engine/session"
	"github.com/warp/calendar-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Factory  *factory.ProfileFactory
	Sessions *session.Manager
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:    store,
		Factory:  factory.NewProfileFactory(),
		Sessions: session.NewManager(store),
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// MATRIX HANDLER (stateless)
// =============================================================================

// GetMatrix renders a matrix without a session. The grid is configured via
// query parameters, or via ?profile={id} to use a stored profile.
func (h *Handler) GetMatrix(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pj := factory.ProfileJSON{
		Calendar:       q.Get("calendar"),
		MinDate:        q.Get("min_date"),
		MaxDate:        q.Get("max_date"),
		Locale:         q.Get("locale"),
		WeekRule:       q.Get("week_rule"),
		WeekdaysFormat: q.Get("weekdays_format"),
	}
	if profileID := q.Get("profile"); profileID != "" {
		record, err := h.Store.GetProfile(r.Context(), profileID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load profile", err)
			return
		}
		if record == nil {
			writeError(w, http.StatusNotFound, "Profile not found", nil)
			return
		}
		pj, err = sqlite.ParseProfileRecord(*record)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Corrupt profile", err)
			return
		}
	}
	if fdw := q.Get("first_day_of_week"); fdw != "" {
		// Single digit per the weekday numbering.
		if len(fdw) != 1 || fdw[0] < '0' || fdw[0] > '6' {
			writeError(w, http.StatusBadRequest, "Invalid first_day_of_week (use 0-6)", nil)
			return
		}
		pj.FirstDayOfWeek = int(fdw[0] - '0')
	}

	view := calendar.ViewMonth
	if vs := q.Get("view"); vs != "" {
		var err error
		view, err = calendar.ParseView(vs)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid view (use month, year or decade)", err)
			return
		}
	}

	base := calendar.Today()
	if ds := q.Get("date"); ds != "" {
		var err error
		base, err = calendar.ParseDate(ds)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
	}

	cfg, err := h.Factory.FromJSON(pj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid calendar options", err)
		return
	}

	ctrl, err := calendar.RestoreController(cfg, calendar.State{View: view, Anchor: base, Focused: base}, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid calendar options", err)
		return
	}
	writeJSON(w, http.StatusOK, h.matrixDTO(ctrl, cfg))
}

// =============================================================================
// PROFILE HANDLERS
// =============================================================================

// ListProfiles returns all stored profiles.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListProfiles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles", err)
		return
	}

	dtos := make([]ProfileDTO, 0, len(records))
	for _, rec := range records {
		pj, err := sqlite.ParseProfileRecord(rec)
		if err != nil {
			continue // Skip corrupt records
		}
		dtos = append(dtos, profileDTO(rec, pj))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateProfile validates and stores a profile definition.
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Config.ID == "" {
		writeError(w, http.StatusBadRequest, "Profile id is required", nil)
		return
	}

	// Resolve once up front so broken profiles are rejected at creation,
	// not when the first session opens.
	if _, err := h.Factory.FromJSON(req.Config); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid profile", err)
		return
	}

	configJSON, err := json.Marshal(req.Config)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode profile", err)
		return
	}
	record := sqlite.ProfileRecord{
		ID:         req.Config.ID,
		Name:       req.Config.Name,
		ConfigJSON: string(configJSON),
		Version:    1,
	}
	if err := h.Store.SaveProfile(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save profile", err)
		return
	}

	writeJSON(w, http.StatusCreated, profileDTO(record, req.Config))
}

// GetProfile returns a single profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.Store.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get profile", err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "Profile not found", nil)
		return
	}
	pj, err := sqlite.ParseProfileRecord(*record)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Corrupt profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profileDTO(*record, pj))
}

// DeleteProfile removes a profile.
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteProfile(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete profile", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SESSION HANDLERS
// =============================================================================

// OpenSession opens a session from a stored profile ID or an inline profile.
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var pj factory.ProfileJSON
	switch {
	case req.Profile != nil:
		pj = *req.Profile
	case req.ProfileID != "":
		record, err := h.Store.GetProfile(r.Context(), req.ProfileID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load profile", err)
			return
		}
		if record == nil {
			writeError(w, http.StatusNotFound, "Profile not found", nil)
			return
		}
		pj, err = sqlite.ParseProfileRecord(*record)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Corrupt profile", err)
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "Either profile_id or profile is required", nil)
		return
	}

	s, err := h.Sessions.Open(r.Context(), pj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid profile", err)
		return
	}

	dto, err := h.sessionSnapshot(r, s.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to snapshot session", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// GetSession returns the full session snapshot.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	dto, err := h.sessionSnapshot(r, chi.URLParam(r, "id"))
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Session not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load session", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// ApplyKey applies one keyboard command.
func (h *Handler) ApplyKey(w http.ResponseWriter, r *http.Request) {
	var req KeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	key, err := calendar.ParseKey(req.Key)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown key", err)
		return
	}
	h.applyCommand(w, r, chi.URLParam(r, "id"), calendar.Command{
		Key:   key,
		Ctrl:  req.Ctrl,
		Shift: req.Shift,
	})
}

// ApplyCell applies a pointer activation of one cell.
func (h *Handler) ApplyCell(w http.ResponseWriter, r *http.Request) {
	var req CellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	h.applyCommand(w, r, chi.URLParam(r, "id"), calendar.Command{
		Key:  calendar.KeyCellClick,
		Date: date,
	})
}

// Navigate applies a host-surface action (prev, next, today, drill_up,
// drill_down).
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	key, err := calendar.ParseKey(req.Action)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown action", err)
		return
	}
	h.applyCommand(w, r, chi.URLParam(r, "id"), calendar.Command{Key: key})
}

// CloseSession deletes a session.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to close session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// applyCommand runs one command against a session and writes the outcome.
func (h *Handler) applyCommand(w http.ResponseWriter, r *http.Request, id string, cmd calendar.Command) {
	_, ctrl, err := h.Sessions.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Session not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load session", err)
		return
	}

	// Commits against an inverted range are a conflict, not a silent no-op,
	// so clients surface the misconfiguration.
	if ctrl.Improper() && (cmd.Key == calendar.KeyEnter || cmd.Key == calendar.KeyCellClick) {
		writeError(w, http.StatusConflict, "Calendar range is improper (min after max)", calendar.ErrImproperBounds)
		return
	}

	_, res, err := h.Sessions.Apply(r.Context(), id, cmd)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to apply command", err)
		return
	}

	dto, err := h.sessionSnapshot(r, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to snapshot session", err)
		return
	}
	writeJSON(w, http.StatusOK, ApplyResponse{
		Session:      dto,
		Committed:    dateStrings(res.Committed),
		ValueChanged: res.ValueChanged,
		ViewChanged:  res.ViewChanged,
	})
}

// =============================================================================
// DTO BUILDERS
// =============================================================================

func (h *Handler) sessionSnapshot(r *http.Request, id string) (SessionDTO, error) {
	s, ctrl, err := h.Sessions.Get(r.Context(), id)
	if err != nil {
		return SessionDTO{}, err
	}
	cfg, err := h.Factory.FromJSON(s.Profile)
	if err != nil {
		return SessionDTO{}, err
	}

	st := ctrl.State()
	return SessionDTO{
		ID:        s.ID,
		ProfileID: s.ProfileID,
		View:      st.View.String(),
		Anchor:    dateString(st.Anchor),
		Focused:   dateString(st.Focused),
		Selection: dateStrings(ctrl.Selection()),
		Improper:  ctrl.Improper(),
		CanPrev:   ctrl.CanStep(-1),
		CanNext:   ctrl.CanStep(1),
		Matrix:    h.matrixDTO(ctrl, cfg),
	}, nil
}

func (h *Handler) matrixDTO(ctrl *calendar.Controller, cfg calendar.Config) MatrixDTO {
	view := ctrl.State().View
	ctx := ctrl.CellContext()

	dto := MatrixDTO{
		View:  view.String(),
		Title: ctrl.Title(),
	}
	if view == calendar.ViewMonth {
		dto.Weekdays = cfg.Sys.WeekdayNames(
			cfg.Options.Locale,
			cfg.Options.FirstDayOfWeek,
			cfg.Options.WeekdaysFormat,
		)
	}

	for _, row := range ctrl.Matrix() {
		rowDTO := RowDTO{Cells: make([]CellDTO, 0, len(row))}
		if view == calendar.ViewMonth && len(row) > 0 {
			rowDTO.Week = calendar.WeekOfYear(row[0].Date, cfg.Options.WeekRule, cfg.Sys)
		}
		for _, cell := range row {
			st := calendar.ClassifyCell(cell, ctx)
			rowDTO.Cells = append(rowDTO.Cells, CellDTO{
				Date:       dateString(cell.Date),
				Label:      cell.Label,
				Row:        cell.Row,
				Col:        cell.Col,
				InRange:    cell.InRange,
				Disabled:   st.Disabled,
				OtherRange: st.OtherRange,
				Weekend:    st.Weekend,
				Today:      st.Today,
				Focused:    st.Focused,
				Selected:   st.Selected,
				Classes:    st.Classes,
			})
		}
		dto.Rows = append(dto.Rows, rowDTO)
	}
	return dto
}

func profileDTO(record sqlite.ProfileRecord, pj factory.ProfileJSON) ProfileDTO {
	dto := ProfileDTO{
		ID:      record.ID,
		Name:    record.Name,
		Config:  pj,
		Version: record.Version,
	}
	if !record.CreatedAt.IsZero() {
		dto.CreatedAt = record.CreatedAt.Format(time.RFC3339)
		dto.UpdatedAt = record.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
