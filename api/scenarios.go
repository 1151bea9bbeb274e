/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	calendar profiles for testing and demos. Each scenario creates one or
	more profiles that demonstrate specific engine features.

AVAILABLE SCENARIOS:

	booking-window:  Day picker limited to a rolling booking window
	birthday-picker: Decade-first drill-down for picking a past date
	event-planner:   Multi-select planner with weekend highlighting
	regional:        Locale, first day of week and week numbering variants

HOW SCENARIOS WORK:
 1. Reset database (clear all profiles and sessions)
 2. Build profile definitions as factory JSON
 3. Validate each through the profile factory
 4. Save the records

USAGE VIA API:

	POST /api/scenarios/booking-window

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: CreateProfile, OpenSession handlers
  - factory/profile.go: Profile JSON definitions
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/calendar-engine/factory"
	"github.com/warp/calendar-engine/store/sqlite"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "booking-window",
		Name:        "Booking Window",
		Description: "Single-date picker limited to the next six months, past days disabled",
	},
	{
		ID:          "birthday-picker",
		Name:        "Birthday Picker",
		Description: "Opens on the decade grid and drills down to a day, future days disabled",
	},
	{
		ID:          "event-planner",
		Name:        "Event Planner",
		Description: "Multi-select day picker with weekend highlighting and week numbers",
	},
	{
		ID:          "regional",
		Name:        "Regional Settings",
		Description: "German locale, Monday week start, ISO-style first four day week rule",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario resets the database and seeds the named scenario's profiles.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ctx := r.Context()

	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	if err := h.SeedScenario(ctx, name); err != nil {
		if err == errUnknownScenario {
			writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": name})
}

var errUnknownScenario = fmt.Errorf("unknown scenario")

// SeedScenario seeds one scenario's profiles, or all of them for "all".
// Used by LoadScenario and by the server's -seed flag.
func (h *Handler) SeedScenario(ctx context.Context, name string) error {
	var profiles []factory.ProfileJSON
	switch name {
	case "booking-window":
		profiles = bookingWindowProfiles()
	case "birthday-picker":
		profiles = birthdayPickerProfiles()
	case "event-planner":
		profiles = eventPlannerProfiles()
	case "regional":
		profiles = regionalProfiles()
	case "all":
		profiles = append(profiles, bookingWindowProfiles()...)
		profiles = append(profiles, birthdayPickerProfiles()...)
		profiles = append(profiles, eventPlannerProfiles()...)
		profiles = append(profiles, regionalProfiles()...)
	default:
		return errUnknownScenario
	}

	for _, pj := range profiles {
		if err := h.createProfileFromJSON(ctx, pj); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// SCENARIO PROFILES
// =============================================================================

func bookingWindowProfiles() []factory.ProfileJSON {
	today := time.Now().UTC()
	return []factory.ProfileJSON{
		{
			ID:              "booking-window",
			Name:            "Booking Window",
			MinDate:         today.Format("2006-01-02"),
			MaxDate:         today.AddDate(0, 6, 0).Format("2006-01-02"),
			Start:           "month",
			Depth:           "month",
			DisablePastDays: true,
		},
	}
}

func birthdayPickerProfiles() []factory.ProfileJSON {
	today := time.Now().UTC()
	return []factory.ProfileJSON{
		{
			ID:                "birthday-picker",
			Name:              "Birthday Picker",
			MinDate:           today.AddDate(-120, 0, 0).Format("2006-01-02"),
			MaxDate:           today.Format("2006-01-02"),
			Start:             "decade",
			Depth:             "month",
			DisableFutureDays: true,
		},
	}
}

func eventPlannerProfiles() []factory.ProfileJSON {
	return []factory.ProfileJSON{
		{
			ID:          "event-planner",
			Name:        "Event Planner",
			Start:       "month",
			Depth:       "month",
			MultiSelect: true,
			WeekRule:    "first_four_day_week",
		},
	}
}

func regionalProfiles() []factory.ProfileJSON {
	showOther := false
	return []factory.ProfileJSON{
		{
			ID:             "regional-de",
			Name:           "German (ISO weeks)",
			Locale:         "de",
			FirstDayOfWeek: 1,
			WeekRule:       "first_four_day_week",
			WeekdaysFormat: "short",
		},
		{
			ID:                 "regional-ar",
			Name:               "Arabic (Saturday start)",
			Locale:             "ar",
			FirstDayOfWeek:     6,
			WeekendDays:        []int{5, 6},
			ShowOtherMonthDays: &showOther,
		},
	}
}

func (h *Handler) createProfileFromJSON(ctx context.Context, pj factory.ProfileJSON) error {
	if _, err := h.Factory.FromJSON(pj); err != nil {
		return err
	}

	configJSON, err := json.Marshal(pj)
	if err != nil {
		return err
	}
	return h.Store.SaveProfile(ctx, sqlite.ProfileRecord{
		ID:         pj.ID,
		Name:       pj.Name,
		ConfigJSON: string(configJSON),
		Version:    1,
	})
}
