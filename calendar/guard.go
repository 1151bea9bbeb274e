/*
guard.go - Bounds and rule disablement

PURPOSE:
  Two independent disablement sources that compose with OR:
    1. Bounds: the configured inclusive [Min, Max] window.
    2. Rules: disable-past / disable-future policies relative to "today".

GRANULARITY:
  ViewMonth checks at day level. ViewYear and ViewDecade check at period
  level: a month or year is out of bounds only when the ENTIRE period falls
  outside the window, so a partially-in-range month stays selectable in the
  coarse view while the month view still disables its out-of-range days.
  The unit containing "today" is always exempt from the past/future rules.
*/
package calendar

// =============================================================================
// BOUNDS
// =============================================================================

// Bounds is the inclusive [Min, Max] date window. A zero endpoint means
// unbounded on that side. Min after Max is a valid, if degenerate, input:
// it is surfaced via Improper, not rejected.
type Bounds struct {
	Min, Max Date
}

// Improper reports whether the bounds are inverted (Min strictly after Max).
func (b Bounds) Improper() bool {
	return !b.Min.IsZero() && !b.Max.IsZero() && b.Min.After(b.Max)
}

// Contains is the day-level check: d within [Min, Max].
func (b Bounds) Contains(d Date) bool {
	if d.IsZero() {
		return false
	}
	if !b.Min.IsZero() && d.Before(b.Min) {
		return false
	}
	if !b.Max.IsZero() && d.After(b.Max) {
		return false
	}
	return true
}

// InBounds reports whether a date is inside the bounds at the granularity
// of the given view: day level for ViewMonth, whole-month for ViewYear,
// whole-year for ViewDecade.
func InBounds(d Date, view View, b Bounds, sys System) bool {
	if d.IsZero() {
		return false
	}
	switch view {
	case ViewYear:
		return periodInBounds(sys.StartOfMonth(d), sys.EndOfMonth(d), b)
	case ViewDecade:
		return periodInBounds(sys.StartOfYear(d), sys.EndOfYear(d), b)
	default:
		return b.Contains(d)
	}
}

// periodInBounds is false only when the entire [start, end] period falls
// outside the bounds.
func periodInBounds(start, end Date, b Bounds) bool {
	if !b.Min.IsZero() && end.Before(b.Min) {
		return false
	}
	if !b.Max.IsZero() && start.After(b.Max) {
		return false
	}
	return true
}

// =============================================================================
// PAST/FUTURE RULES
// =============================================================================

// Rules is the past/future disablement policy, independent of bounds.
type Rules struct {
	DisablePast   bool
	DisableFuture bool
}

// RuleDisabled reports whether the date is forbidden by the past/future
// rules, evaluated at the granularity of the view. The unit containing
// today is exempt even when both flags are set.
func RuleDisabled(d Date, view View, r Rules, today Date, sys System) bool {
	if d.IsZero() || (!r.DisablePast && !r.DisableFuture) {
		return false
	}
	var start, end Date
	switch view {
	case ViewYear:
		start, end = sys.StartOfMonth(d), sys.EndOfMonth(d)
	case ViewDecade:
		start, end = sys.StartOfYear(d), sys.EndOfYear(d)
	default:
		start, end = d, d
	}
	// The unit containing today satisfies neither comparison.
	if r.DisablePast && end.Before(today) {
		return true
	}
	if r.DisableFuture && start.After(today) {
		return true
	}
	return false
}

// Disabled composes the two sources: out of bounds OR rule-disabled.
func Disabled(d Date, view View, b Bounds, r Rules, today Date, sys System) bool {
	return !InBounds(d, view, b, sys) || RuleDisabled(d, view, r, today, sys)
}
