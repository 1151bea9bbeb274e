/*
system.go - Pluggable calendar arithmetic

PURPOSE:
  Defines the capability set any calendar system must implement. The rest
  of the engine (matrix builders, guards, navigation) only talks to this
  interface, so an alternate system (fiscal, non-Gregorian) can be dropped
  in without touching matrix or navigation code.

ERROR POLICY:
  Arithmetic on the zero Date returns the zero Date. Nothing in this
  interface panics or returns an error; validity is a property of the
  Date value itself.

SEE ALSO:
  - gregorian.go: The one shipped implementation
  - locale.go: Name catalogs backing MonthName / WeekdayNames
*/
package calendar

import "time"

// =============================================================================
// SYSTEM - Calendar arithmetic capability set
// =============================================================================

// System is the calendar-arithmetic abstraction the engine is built on.
type System interface {
	// AddDays, AddMonths and AddYears shift a date. Month and year
	// arithmetic clamps the day-of-month to the last valid day of the
	// resulting month (Jan 31 + 1 month is the last day of February).
	// The zero Date passes through unchanged.
	AddDays(d Date, n int) Date
	AddMonths(d Date, n int) Date
	AddYears(d Date, n int) Date

	// DaysInMonth returns the number of days in a month.
	DaysInMonth(year int, month time.Month) int

	// Period boundaries. StartOfDecade snaps to the year divisible by ten.
	StartOfMonth(d Date) Date
	EndOfMonth(d Date) Date
	StartOfYear(d Date) Date
	EndOfYear(d Date) Date
	StartOfDecade(d Date) Date
	EndOfDecade(d Date) Date

	// Field comparisons.
	SameDay(a, b Date) bool
	SameMonth(a, b Date) bool
	SameYear(a, b Date) bool

	// WeekNumber returns the week ordinal within the year:
	// ceil((days since Jan 1 + 1) / 7). Callers apply the WeekRule offset
	// to the date before the lookup.
	WeekNumber(d Date) int

	// MonthName returns the localized name of a month.
	MonthName(m time.Month, locale string, format NameFormat) string

	// WeekdayNames returns the seven localized weekday names rotated so
	// the slice starts at firstDay.
	WeekdayNames(locale string, firstDay int, format NameFormat) []string
}

// =============================================================================
// FACTORY - Selects a System by type
// =============================================================================

// SystemType identifies a calendar system implementation.
type SystemType string

const (
	SystemGregorian SystemType = "gregorian"
)

// NewSystem constructs the calendar system for the given type. Unknown or
// unimplemented types fail here, at wiring time.
func NewSystem(t SystemType) (System, error) {
	switch t {
	case SystemGregorian, "":
		return Gregorian{}, nil
	default:
		return nil, ErrUnsupportedCalendar
	}
}
