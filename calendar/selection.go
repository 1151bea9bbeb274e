/*
selection.go - Selection normalization and toggling

PURPOSE:
  Turns a raw selection value into a canonical in-bounds list, and applies
  the select/toggle intent of a commit. Dates compare by calendar-day
  equality throughout; insertion order is preserved.
*/
package calendar

// NormalizeSelection normalizes a raw value against the bounds.
//
// Multi-select filters the list to in-bounds dates, preserving order.
// Single-select keeps only the first date and clamps an out-of-bounds
// value to the nearer bound instead of discarding it. Improper bounds
// pass the value through untouched: the improper flag freezes interaction
// upstream, and clamping against an inverted window has no right answer.
// The result is idempotent under re-normalization.
func NormalizeSelection(dates []Date, b Bounds, multi bool) []Date {
	if b.Improper() {
		out := make([]Date, 0, len(dates))
		for _, d := range dates {
			if !d.IsZero() {
				out = append(out, d)
			}
		}
		return out
	}

	if multi {
		out := make([]Date, 0, len(dates))
		for _, d := range dates {
			if b.Contains(d) {
				out = append(out, d)
			}
		}
		return out
	}

	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if !b.Min.IsZero() && d.Before(b.Min) {
			d = b.Min
		} else if !b.Max.IsZero() && d.After(b.Max) {
			d = b.Max
		}
		return []Date{d}
	}
	return nil
}

// ToggleSelection applies a commit on date. Multi-select adds the date if
// absent and removes every day-equal occurrence if present; single-select
// replaces the value unconditionally.
func ToggleSelection(sel []Date, date Date, multi bool) []Date {
	if date.IsZero() {
		return sel
	}
	if !multi {
		return []Date{date}
	}

	out := make([]Date, 0, len(sel)+1)
	removed := false
	for _, d := range sel {
		if d.Equal(date) {
			removed = true
			continue
		}
		out = append(out, d)
	}
	if !removed {
		out = append(out, date)
	}
	return out
}

// SelectSelection applies a non-toggling commit: the date ends up selected
// whether or not it already was. Used by the Today command.
func SelectSelection(sel []Date, date Date, multi bool) []Date {
	if date.IsZero() {
		return sel
	}
	if !multi {
		return []Date{date}
	}
	for _, d := range sel {
		if d.Equal(date) {
			return sel
		}
	}
	return append(append([]Date{}, sel...), date)
}

// SelectionAnchor returns the date coarse views match selection against:
// the last element for multi-select, the only element for single-select.
// Zero when the selection is empty.
func SelectionAnchor(sel []Date) Date {
	if len(sel) == 0 {
		return Date{}
	}
	return sel[len(sel)-1]
}
