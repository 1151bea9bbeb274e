/*
cellstate.go - Per-cell UI state resolution

PURPOSE:
  Derives the renderable state of one matrix cell from the cell descriptor
  plus the selection/focus/bounds context. The class token list is an
  opaque convenience for hosts that map state to style hooks; the booleans
  are the contract.

RULES:
  - Focused is never true on an out-of-bounds cell, and matches at the
    granularity of the cell's view (day / month / year).
  - Month-view selection matches by calendar-day equality against the
    normalized list (multi) or the sole value (single); coarse views match
    the selection anchor's month/year.
*/
package calendar

// CellContext is the classification context shared by the cells of one
// rendered matrix.
type CellContext struct {
	Bounds    Bounds
	Rules     Rules
	Focused   Date
	Selection []Date
	Multi     bool
	Disabled  bool // host-level global disable
	Today     Date // zero means the current local day
	Sys       System
}

// CellState is the resolved per-cell UI state.
type CellState struct {
	OutOfBounds  bool
	RuleDisabled bool
	Disabled     bool // composed: out of bounds, rule-disabled, or global
	OtherRange   bool
	Weekend      bool
	Today        bool
	Focused      bool
	Selected     bool
	Classes      []string
}

// ClassifyCell resolves the UI state for one cell.
func ClassifyCell(cell CellData, ctx CellContext) CellState {
	sys := ctx.Sys
	if sys == nil {
		sys = Gregorian{}
	}
	today := ctx.Today
	if today.IsZero() {
		today = Today()
	}

	st := CellState{
		OutOfBounds:  !InBounds(cell.Date, cell.Kind, ctx.Bounds, sys),
		RuleDisabled: RuleDisabled(cell.Date, cell.Kind, ctx.Rules, today, sys),
		OtherRange:   !cell.InRange,
		Weekend:      cell.IsWeekend,
		Today:        cell.IsToday,
	}
	st.Disabled = st.OutOfBounds || st.RuleDisabled || ctx.Disabled

	if !st.OutOfBounds && !ctx.Focused.IsZero() {
		st.Focused = sameAtGranularity(cell.Date, ctx.Focused, cell.Kind, sys)
	}
	st.Selected = selected(cell, ctx, sys)
	st.Classes = classTokens(st)
	return st
}

func selected(cell CellData, ctx CellContext, sys System) bool {
	if len(ctx.Selection) == 0 {
		return false
	}
	if cell.Kind == ViewMonth {
		if ctx.Multi {
			for _, d := range ctx.Selection {
				if sys.SameDay(cell.Date, d) {
					return true
				}
			}
			return false
		}
		return sys.SameDay(cell.Date, ctx.Selection[0])
	}
	// Coarse views match the anchor selected date's period.
	return sameAtGranularity(cell.Date, SelectionAnchor(ctx.Selection), cell.Kind, sys)
}

func sameAtGranularity(a, b Date, view View, sys System) bool {
	switch view {
	case ViewYear:
		return sys.SameMonth(a, b)
	case ViewDecade:
		return sys.SameYear(a, b)
	default:
		return sys.SameDay(a, b)
	}
}

func classTokens(st CellState) []string {
	tokens := make([]string, 0, 6)
	if st.Disabled {
		tokens = append(tokens, "disabled")
	}
	if st.OtherRange {
		tokens = append(tokens, "other-range")
	}
	if st.Weekend {
		tokens = append(tokens, "weekend")
	}
	if st.Today {
		tokens = append(tokens, "today")
	}
	if st.Selected {
		tokens = append(tokens, "selected")
	}
	if st.Focused {
		tokens = append(tokens, "focused")
	}
	return tokens
}
