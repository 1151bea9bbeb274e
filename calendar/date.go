/*
Package calendar provides the calendar view engine.

PURPOSE:
  This package contains the arithmetic, matrix generation and navigation
  logic behind a calendar widget: given a date and a view granularity
  (day grid, month grid, year grid) it decides which cells exist, which
  cell is focused, which cells are selectable, and how focus and
  selection evolve under navigation commands.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: A calendar-day value (year, month, day) at local-midnight
    semantics. The zero Date is the invalid-date sentinel.

DESIGN PRINCIPLES:
  1. Purity: matrix builders and guards are pure functions of their inputs
  2. No exceptions: arithmetic on an invalid date yields the invalid
     sentinel, never a panic; malformed options yield best-effort results
  3. Atomic state: navigation replaces the whole state tuple, never
     mutates it in place

USAGE:
  sys, _ := calendar.NewSystem(calendar.SystemGregorian)
  matrix := calendar.BuildMatrix(calendar.ViewMonth, base, opts, sys)

SEE ALSO:
  - system.go: CalendarSystem capability interface and factory
  - matrix.go: Grid generation for the three view granularities
  - navigation.go: Focus/view state machine
*/
package calendar

import (
	"time"
)

// =============================================================================
// DATE - Calendar-day value type
// =============================================================================

// Date is a calendar date with day granularity. Equality and ordering are
// by (year, month, day) at midnight. The zero Date is the invalid-date
// sentinel: all arithmetic on it returns the zero Date, and callers are
// expected to check IsZero before trusting a result.
type Date struct {
	t time.Time
}

// NewDate constructs a Date from year, month and day-of-month.
// Out-of-range components are normalized the way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar day.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a date in ISO form (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) Time() time.Time       { return d.t }

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format("2006-01-02")
}

// DaysBetween returns the number of calendar days from one date to another,
// negative when to precedes from.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}
