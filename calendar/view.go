package calendar

import (
	"time"
)

// =============================================================================
// VIEW - The three grid granularities
// =============================================================================

// View is the grid granularity of the calendar. The ordering matters:
// drilling down moves toward ViewMonth, drilling up toward ViewDecade.
type View int

const (
	ViewMonth  View = iota // day grid
	ViewYear               // month grid
	ViewDecade             // year grid
)

func (v View) String() string {
	switch v {
	case ViewMonth:
		return "month"
	case ViewYear:
		return "year"
	case ViewDecade:
		return "decade"
	default:
		return "unknown"
	}
}

// ParseView parses a view name ("month", "year", "decade").
func ParseView(s string) (View, error) {
	switch s {
	case "month":
		return ViewMonth, nil
	case "year":
		return ViewYear, nil
	case "decade":
		return ViewDecade, nil
	default:
		return ViewMonth, ErrUnknownView
	}
}

// =============================================================================
// NAME FORMATS AND WEEK RULES
// =============================================================================

// NameFormat selects how month and weekday names are rendered.
type NameFormat string

const (
	FormatWide        NameFormat = "wide"        // "Wednesday", "January"
	FormatAbbreviated NameFormat = "abbreviated" // "Wed", "Jan"
	FormatShort       NameFormat = "short"       // "We" (the fixed two-letter table)
	FormatNarrow      NameFormat = "narrow"      // "W"
)

// ParseNameFormat parses a name format, defaulting empty to FormatShort.
func ParseNameFormat(s string) (NameFormat, error) {
	switch NameFormat(s) {
	case "":
		return FormatShort, nil
	case FormatWide, FormatAbbreviated, FormatShort, FormatNarrow:
		return NameFormat(s), nil
	default:
		return FormatShort, ErrUnknownNameFormat
	}
}

// WeekRule selects the first-week-of-year convention. The rule is applied
// by shifting the reference date before the week-number formula runs.
type WeekRule int

const (
	WeekRuleFirstDay WeekRule = iota
	WeekRuleFirstFullWeek
	WeekRuleFirstFourDayWeek
)

// Offset returns the reference-date shift, in days, for the rule.
func (r WeekRule) Offset() int {
	switch r {
	case WeekRuleFirstDay:
		return 6
	case WeekRuleFirstFullWeek:
		return 3
	default:
		return 0
	}
}

func (r WeekRule) String() string {
	switch r {
	case WeekRuleFirstDay:
		return "first_day"
	case WeekRuleFirstFullWeek:
		return "first_full_week"
	case WeekRuleFirstFourDayWeek:
		return "first_four_day_week"
	default:
		return "unknown"
	}
}

// ParseWeekRule parses a week rule name, defaulting empty to WeekRuleFirstDay.
func ParseWeekRule(s string) (WeekRule, error) {
	switch s {
	case "", "first_day":
		return WeekRuleFirstDay, nil
	case "first_full_week":
		return WeekRuleFirstFullWeek, nil
	case "first_four_day_week":
		return WeekRuleFirstFourDayWeek, nil
	default:
		return WeekRuleFirstDay, ErrUnknownWeekRule
	}
}

// =============================================================================
// CELL DATA - One cell of a generated matrix
// =============================================================================

// CellData describes one cell of a view matrix. InRange means the cell
// belongs to the view's primary period (same month for ViewMonth, the true
// decade for ViewDecade) as opposed to a leading/trailing filler cell.
type CellData struct {
	Kind      View
	Date      Date
	Row, Col  int
	Label     string
	InRange   bool
	IsToday   bool
	IsWeekend bool
}

// =============================================================================
// VIEW OPTIONS - Layout configuration
// =============================================================================

// ViewOptions configures matrix layout. The zero value is usable: defaults
// are filled per view by withDefaults, exactly once per build.
type ViewOptions struct {
	// Rows and Cols of the grid. Zero means the per-view default
	// (6x7 for ViewMonth, 4x3 for ViewYear and ViewDecade).
	Rows, Cols int

	// FirstDayOfWeek is 0 (Sunday) through 6 (Saturday); any other value
	// is normalized via modulo.
	FirstDayOfWeek int

	// Locale is a BCP-47 tag for name lookup ("en", "de", "fr-CA", ...).
	// Unknown locales fall back to English.
	Locale string

	// ShowOtherMonthDays keeps the leading/trailing filler rows of the
	// month grid. When false, rows that are entirely outside the current
	// month are trimmed.
	ShowOtherMonthDays bool

	// WeekendDays is the set of weekdays rendered as weekend.
	// Nil means Saturday and Sunday.
	WeekendDays []time.Weekday

	// IsWeekend, when set, overrides WeekendDays.
	IsWeekend func(Date) bool

	// WeekdaysFormat selects the weekday header format.
	WeekdaysFormat NameFormat

	// WeekRule selects the first-week-of-year convention.
	WeekRule WeekRule

	// Today overrides the reference "today" used for IsToday marking.
	// Zero means the current local day. Tests and the controller pin this.
	Today Date
}

func defaultDims(view View) (rows, cols int) {
	if view == ViewMonth {
		return 6, 7
	}
	return 4, 3
}

// withDefaults resolves the options for one view. Rows/Cols fall back to
// the per-view defaults, FirstDayOfWeek is reduced modulo 7, and Today is
// pinned so one build observes one consistent "now".
func (o ViewOptions) withDefaults(view View) ViewOptions {
	dr, dc := defaultDims(view)
	if o.Rows <= 0 {
		o.Rows = dr
	}
	if o.Cols <= 0 {
		o.Cols = dc
	}
	o.FirstDayOfWeek = ((o.FirstDayOfWeek % 7) + 7) % 7
	if o.WeekendDays == nil {
		o.WeekendDays = []time.Weekday{time.Saturday, time.Sunday}
	}
	if o.WeekdaysFormat == "" {
		o.WeekdaysFormat = FormatShort
	}
	if o.Today.IsZero() {
		o.Today = Today()
	}
	return o
}

// weekend reports whether a date is a weekend under these options.
func (o ViewOptions) weekend(d Date) bool {
	if o.IsWeekend != nil {
		return o.IsWeekend(d)
	}
	for _, wd := range o.WeekendDays {
		if d.Weekday() == wd {
			return true
		}
	}
	return false
}
