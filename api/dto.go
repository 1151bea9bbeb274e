/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal engine model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Profile:
    ProfileDTO (wraps factory.ProfileJSON), CreateProfileRequest

  Session:
    SessionDTO, OpenSessionRequest, KeyRequest, CellRequest,
    NavigateRequest, ApplyResponse

  Matrix:
    MatrixDTO, CellDTO, RowDTO

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/profile.go: ProfileJSON type
*/
package api

import (
	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/factory"
)

// =============================================================================
// PROFILE TYPES
// =============================================================================

// ProfileDTO represents a stored profile in API responses.
type ProfileDTO struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Config    factory.ProfileJSON `json:"config"`
	Version   int                 `json:"version"`
	CreatedAt string              `json:"created_at,omitempty"`
	UpdatedAt string              `json:"updated_at,omitempty"`
}

// CreateProfileRequest is the request to create a profile.
type CreateProfileRequest struct {
	Config factory.ProfileJSON `json:"config"`
}

// =============================================================================
// MATRIX TYPES
// =============================================================================

// CellDTO is one cell of a rendered matrix plus its resolved state.
type CellDTO struct {
	Date       string   `json:"date,omitempty"`
	Label      string   `json:"label"`
	Row        int      `json:"row"`
	Col        int      `json:"col"`
	InRange    bool     `json:"in_range"`
	Disabled   bool     `json:"disabled"`
	OtherRange bool     `json:"other_range"`
	Weekend    bool     `json:"weekend"`
	Today      bool     `json:"today"`
	Focused    bool     `json:"focused"`
	Selected   bool     `json:"selected"`
	Classes    []string `json:"classes"`
}

// RowDTO is one matrix row with its week number (month view only).
type RowDTO struct {
	Week  int       `json:"week,omitempty"`
	Cells []CellDTO `json:"cells"`
}

// MatrixDTO is a rendered grid with its header metadata.
type MatrixDTO struct {
	View     string   `json:"view"`
	Title    string   `json:"title"`
	Weekdays []string `json:"weekdays,omitempty"`
	Rows     []RowDTO `json:"rows"`
}

// =============================================================================
// SESSION TYPES
// =============================================================================

// OpenSessionRequest opens a session from a stored profile ID or an inline
// profile definition. Exactly one of the two should be set; an inline
// profile wins when both are.
type OpenSessionRequest struct {
	ProfileID string               `json:"profile_id,omitempty"`
	Profile   *factory.ProfileJSON `json:"profile,omitempty"`
}

// KeyRequest is one keyboard command against a session.
type KeyRequest struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl,omitempty"`
	Shift bool   `json:"shift,omitempty"`
}

// CellRequest is a pointer activation of one cell.
type CellRequest struct {
	Date string `json:"date"`
}

// NavigateRequest is a host-surface navigation action
// (prev, next, today, drill_up, drill_down).
type NavigateRequest struct {
	Action string `json:"action"`
}

// SessionDTO is the full client-facing session snapshot.
type SessionDTO struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id,omitempty"`
	View      string    `json:"view"`
	Anchor    string    `json:"anchor"`
	Focused   string    `json:"focused"`
	Selection []string  `json:"selection"`
	Improper  bool      `json:"improper"`
	CanPrev   bool      `json:"can_prev"`
	CanNext   bool      `json:"can_next"`
	Matrix    MatrixDTO `json:"matrix"`
}

// ApplyResponse is the outcome of one command.
type ApplyResponse struct {
	Session      SessionDTO `json:"session"`
	Committed    []string   `json:"committed,omitempty"`
	ValueChanged bool       `json:"value_changed"`
	ViewChanged  bool       `json:"view_changed"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// SCENARIO TYPES
// =============================================================================

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func dateString(d calendar.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func dateStrings(dates []calendar.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, dateString(d))
	}
	return out
}
