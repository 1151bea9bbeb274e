/*
Package factory provides JSON to Go profile conversion.

PURPOSE:
  Converts JSON profile definitions into a resolved calendar.Config. This
  enables calendar configuration without code changes - product teams can
  define profiles in JSON, and the factory creates the proper Go structs.

WHY JSON?
  - Non-developers can modify profiles
  - Easy integration with admin UI
  - Version control for profile definitions
  - Database storage of profile configs

JSON SCHEMA:
  {
    "id": "booking-window",
    "name": "Booking window",
    "calendar": "gregorian",
    "min_date": "2024-06-01",
    "max_date": "2024-12-31",
    "first_day_of_week": 1,
    "start": "decade",
    "depth": "month",
    "multi_select": false,
    "week_rule": "first_four_day_week",
    "weekdays_format": "short",
    "show_other_month_days": true,
    "disable_past_days": true,
    "weekend_days": [0, 6],
    "locale": "en"
  }

KEY FEATURES:
  - Validates JSON structure
  - Resolves defaults exactly once; nothing falls back at call sites
  - Unknown calendar types fail at construction, not first use
  - Inverted min/max parses fine: improper bounds are data, not an error

USAGE:
  factory := NewProfileFactory()

  // From JSON string
  profile, cfg, err := factory.ParseProfile(jsonString)

  // Use with the engine
  ctrl, err := calendar.NewController(cfg, nil)

SEE ALSO:
  - calendar/navigation.go: Config definition and defaults
  - api/scenarios.go: Preset demo profiles built on this schema
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/warp/calendar-engine/calendar"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ProfileJSON is the JSON representation of a calendar profile.
type ProfileJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Calendar string `json:"calendar,omitempty"` // default "gregorian"

	MinDate string `json:"min_date,omitempty"` // "2006-01-02"
	MaxDate string `json:"max_date,omitempty"`

	Start string `json:"start,omitempty"` // coarsest view, default "month"
	Depth string `json:"depth,omitempty"` // terminal view, default "month"

	MultiSelect bool     `json:"multi_select,omitempty"`
	Disabled    bool     `json:"disabled,omitempty"`
	Values      []string `json:"values,omitempty"` // initial selection

	DisablePastDays   bool `json:"disable_past_days,omitempty"`
	DisableFutureDays bool `json:"disable_future_days,omitempty"`

	FirstDayOfWeek     int    `json:"first_day_of_week,omitempty"` // 0=Sunday .. 6=Saturday
	Locale             string `json:"locale,omitempty"`
	WeekRule           string `json:"week_rule,omitempty"`
	WeekdaysFormat     string `json:"weekdays_format,omitempty"`
	ShowOtherMonthDays *bool  `json:"show_other_month_days,omitempty"` // default true
	WeekendDays        []int  `json:"weekend_days,omitempty"`          // weekday numbers
	Rows               int    `json:"rows,omitempty"`
	Cols               int    `json:"cols,omitempty"`
}

// =============================================================================
// PROFILE FACTORY
// =============================================================================

// ProfileFactory converts JSON profiles to engine configs.
type ProfileFactory struct{}

// NewProfileFactory creates a new profile factory.
func NewProfileFactory() *ProfileFactory {
	return &ProfileFactory{}
}

// ParseProfile parses a JSON string into the profile and its resolved Config.
func (f *ProfileFactory) ParseProfile(jsonStr string) (ProfileJSON, calendar.Config, error) {
	var pj ProfileJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return pj, calendar.Config{}, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	cfg, err := f.FromJSON(pj)
	return pj, cfg, err
}

// FromJSON resolves a ProfileJSON into a calendar.Config. All defaults are
// filled here; the returned config is complete.
func (f *ProfileFactory) FromJSON(pj ProfileJSON) (calendar.Config, error) {
	sys, err := calendar.NewSystem(parseSystemType(pj.Calendar))
	if err != nil {
		return calendar.Config{}, err
	}

	bounds, err := parseBounds(pj.MinDate, pj.MaxDate)
	if err != nil {
		return calendar.Config{}, err
	}

	start, depth, err := parseViewRange(pj.Start, pj.Depth)
	if err != nil {
		return calendar.Config{}, err
	}
	if depth > start {
		return calendar.Config{}, calendar.ErrInvalidDepth
	}

	opts, err := parseViewOptions(pj)
	if err != nil {
		return calendar.Config{}, err
	}

	return calendar.Config{
		Sys:     sys,
		Bounds:  bounds,
		Rules:   calendar.Rules{DisablePast: pj.DisablePastDays, DisableFuture: pj.DisableFutureDays},
		Options: opts,
		Start:   start,
		Depth:   depth,
		Multi:   pj.MultiSelect,
		Disabled: pj.Disabled,
	}, nil
}

// ParseValues parses the profile's initial selection dates.
func (f *ProfileFactory) ParseValues(pj ProfileJSON) ([]calendar.Date, error) {
	if len(pj.Values) == 0 {
		return nil, nil
	}
	dates := make([]calendar.Date, 0, len(pj.Values))
	for _, s := range pj.Values {
		d, err := calendar.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", s, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// ToJSON renders a config back into its profile form. Used by the API to
// echo stored profiles.
func (f *ProfileFactory) ToJSON(id, name string, cfg calendar.Config) ProfileJSON {
	pj := ProfileJSON{
		ID:                id,
		Name:              name,
		Calendar:          string(calendar.SystemGregorian),
		Start:             cfg.Start.String(),
		Depth:             cfg.Depth.String(),
		MultiSelect:       cfg.Multi,
		Disabled:          cfg.Disabled,
		DisablePastDays:   cfg.Rules.DisablePast,
		DisableFutureDays: cfg.Rules.DisableFuture,
		FirstDayOfWeek:    cfg.Options.FirstDayOfWeek,
		Locale:            cfg.Options.Locale,
		WeekRule:          cfg.Options.WeekRule.String(),
		WeekdaysFormat:    string(cfg.Options.WeekdaysFormat),
		Rows:              cfg.Options.Rows,
		Cols:              cfg.Options.Cols,
	}
	show := cfg.Options.ShowOtherMonthDays
	pj.ShowOtherMonthDays = &show
	if !cfg.Bounds.Min.IsZero() {
		pj.MinDate = cfg.Bounds.Min.String()
	}
	if !cfg.Bounds.Max.IsZero() {
		pj.MaxDate = cfg.Bounds.Max.String()
	}
	for _, wd := range cfg.Options.WeekendDays {
		pj.WeekendDays = append(pj.WeekendDays, int(wd))
	}
	return pj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseSystemType(s string) calendar.SystemType {
	if s == "" {
		return calendar.SystemGregorian
	}
	return calendar.SystemType(s)
}

func parseBounds(minStr, maxStr string) (calendar.Bounds, error) {
	var b calendar.Bounds
	if minStr != "" {
		d, err := calendar.ParseDate(minStr)
		if err != nil {
			return b, fmt.Errorf("invalid min_date: %w", err)
		}
		b.Min = d
	}
	if maxStr != "" {
		d, err := calendar.ParseDate(maxStr)
		if err != nil {
			return b, fmt.Errorf("invalid max_date: %w", err)
		}
		b.Max = d
	}
	// Min after Max is deliberately not rejected: the engine surfaces it
	// via Improper and freezes interaction.
	return b, nil
}

func parseViewRange(startStr, depthStr string) (start, depth calendar.View, err error) {
	start = calendar.ViewMonth
	if startStr != "" {
		start, err = calendar.ParseView(startStr)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start view %q: %w", startStr, err)
		}
	}
	depth = calendar.ViewMonth
	if depthStr != "" {
		depth, err = calendar.ParseView(depthStr)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid depth view %q: %w", depthStr, err)
		}
	}
	return start, depth, nil
}

func parseViewOptions(pj ProfileJSON) (calendar.ViewOptions, error) {
	rule, err := calendar.ParseWeekRule(pj.WeekRule)
	if err != nil {
		return calendar.ViewOptions{}, fmt.Errorf("invalid week_rule %q: %w", pj.WeekRule, err)
	}
	format, err := calendar.ParseNameFormat(pj.WeekdaysFormat)
	if err != nil {
		return calendar.ViewOptions{}, fmt.Errorf("invalid weekdays_format %q: %w", pj.WeekdaysFormat, err)
	}

	opts := calendar.ViewOptions{
		Rows:           pj.Rows,
		Cols:           pj.Cols,
		FirstDayOfWeek: pj.FirstDayOfWeek,
		Locale:         pj.Locale,
		WeekRule:       rule,
		WeekdaysFormat: format,
		// Filler cells are shown unless the profile turns them off.
		ShowOtherMonthDays: pj.ShowOtherMonthDays == nil || *pj.ShowOtherMonthDays,
	}
	for _, wd := range pj.WeekendDays {
		if wd < 0 || wd > 6 {
			return calendar.ViewOptions{}, fmt.Errorf("invalid weekend day %d", wd)
		}
		opts.WeekendDays = append(opts.WeekendDays, time.Weekday(wd))
	}
	return opts, nil
}
