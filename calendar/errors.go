/*
errors.go - Centralized error types for the calendar engine

PURPOSE:
  All sentinel errors in one place. The engine never errors on expected
  edge cases (empty ranges, boundary dates, malformed rows/cols): those
  produce well-formed, inert results. Errors here are reserved for
  integration mistakes caught at construction time.

USAGE:
  if errors.Is(err, calendar.ErrUnsupportedCalendar) { ... }

SEE ALSO:
  - system.go: NewSystem returns ErrUnsupportedCalendar
  - navigation.go: NewController returns ErrInvalidDepth
*/
package calendar

import "errors"

var (
	// ErrUnsupportedCalendar is returned by NewSystem for a calendar type
	// that has no implementation. This fails at construction, not at call
	// time, so a misconfigured host blows up during wiring.
	ErrUnsupportedCalendar = errors.New("unsupported calendar system")

	// ErrInvalidDepth is returned when the configured drill-down limit is
	// coarser than the configured start view.
	ErrInvalidDepth = errors.New("depth must be equal to or finer than start")

	// ErrUnknownView is returned when parsing an unrecognized view name.
	ErrUnknownView = errors.New("unknown view")

	// ErrUnknownWeekRule is returned when parsing an unrecognized week rule.
	ErrUnknownWeekRule = errors.New("unknown week rule")

	// ErrUnknownNameFormat is returned when parsing an unrecognized name format.
	ErrUnknownNameFormat = errors.New("unknown name format")

	// ErrUnknownKey is returned when parsing an unrecognized key command name.
	ErrUnknownKey = errors.New("unknown key command")

	// ErrImproperBounds marks an inverted [min, max] range. The engine
	// never returns it from navigation (improper bounds freeze commands
	// instead); it exists for hosts that want to refuse a config outright.
	ErrImproperBounds = errors.New("improper bounds: min after max")
)

// IsConfigError reports whether the error is a construction-time
// configuration problem rather than a runtime condition.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrUnsupportedCalendar) ||
		errors.Is(err, ErrInvalidDepth) ||
		errors.Is(err, ErrUnknownView) ||
		errors.Is(err, ErrUnknownWeekRule) ||
		errors.Is(err, ErrUnknownNameFormat)
}
