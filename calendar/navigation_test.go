package calendar_test

import (
	"testing"
	"time"

	"github.com/warp/calendar-engine/calendar"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// june15 is the pinned "today" for navigation tests.
var june15 = calendar.NewDate(2024, time.June, 15)

func navConfig(t *testing.T, mutate func(*calendar.Config)) calendar.Config {
	t.Helper()
	cfg := calendar.Config{
		Sys: gregorian(t),
		Now: func() calendar.Date { return june15 },
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return cfg
}

func newController(t *testing.T, cfg calendar.Config, value ...calendar.Date) *calendar.Controller {
	t.Helper()
	c, err := calendar.NewController(cfg, value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func press(c *calendar.Controller, key calendar.Key) calendar.Result {
	return c.Handle(calendar.Command{Key: key})
}

// =============================================================================
// INITIAL FOCUS RESOLUTION
// =============================================================================

func TestNewController_InitialFocus_PrefersSelectionAnchor(t *testing.T) {
	cfg := navConfig(t, nil)
	c := newController(t, cfg, date(2024, time.June, 20))

	st := c.State()
	if !st.Focused.Equal(date(2024, time.June, 20)) {
		t.Errorf("focused = %s, want the selected date", st.Focused)
	}
	if !st.Anchor.Equal(st.Focused) {
		t.Errorf("anchor should follow initial focus, got %s", st.Anchor)
	}
}

func TestNewController_InitialFocus_FallsBackToToday(t *testing.T) {
	c := newController(t, navConfig(t, nil))

	if st := c.State(); !st.Focused.Equal(june15) {
		t.Errorf("focused = %s, want today", st.Focused)
	}
}

func TestNewController_InitialFocus_ScansForwardWhenTodayOutOfBounds(t *testing.T) {
	// GIVEN: Bounds entirely in the future
	// WHEN: Constructing without a selection
	// THEN: Focus lands on the first focusable date toward Max

	cfg := navConfig(t, func(c *calendar.Config) {
		c.Bounds = bounds(date(2024, time.July, 1), date(2024, time.July, 31))
	})
	c := newController(t, cfg)

	if st := c.State(); !st.Focused.Equal(date(2024, time.July, 1)) {
		t.Errorf("focused = %s, want 2024-07-01", st.Focused)
	}
}

func TestNewController_InitialFocus_MaxAsLastResort(t *testing.T) {
	// Bounds entirely in the past and every day rule-disabled: focus still
	// needs an anchor, so Max wins even though it is nominally disabled.

	cfg := navConfig(t, func(c *calendar.Config) {
		c.Bounds = bounds(date(2024, time.May, 1), date(2024, time.May, 31))
		c.Rules = calendar.Rules{DisablePast: true}
	})
	c := newController(t, cfg)

	if st := c.State(); !st.Focused.Equal(date(2024, time.May, 31)) {
		t.Errorf("focused = %s, want Max", st.Focused)
	}
}

func TestNewController_IgnoresOutOfBoundsSelectionForFocus(t *testing.T) {
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Bounds = bounds(date(2024, time.June, 1), date(2024, time.June, 30))
		c.Multi = true
	})
	c := newController(t, cfg, date(2024, time.August, 1))

	if len(c.Selection()) != 0 {
		t.Errorf("out-of-bounds multi value should be filtered, got %v", c.Selection())
	}
	if st := c.State(); !st.Focused.Equal(june15) {
		t.Errorf("focused = %s, want today", st.Focused)
	}
}

func TestNewController_DepthCoarserThanStart_Fails(t *testing.T) {
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Start = calendar.ViewMonth
		c.Depth = calendar.ViewYear
	})
	if _, err := calendar.NewController(cfg, nil); err == nil {
		t.Fatal("expected ErrInvalidDepth")
	}
}

// =============================================================================
// ARROW MOVEMENT
// =============================================================================

func TestHandle_ArrowRight_MovesOneDay(t *testing.T) {
	c := newController(t, navConfig(t, nil))

	res := press(c, calendar.KeyArrowRight)
	if !res.State.Focused.Equal(date(2024, time.June, 16)) {
		t.Errorf("focused = %s", res.State.Focused)
	}
	if res.ValueChanged || res.ViewChanged {
		t.Error("plain focus movement changes neither value nor view")
	}
}

func TestHandle_ArrowDown_MovesOneRow(t *testing.T) {
	c := newController(t, navConfig(t, nil))

	res := press(c, calendar.KeyArrowDown)
	if !res.State.Focused.Equal(date(2024, time.June, 22)) {
		t.Errorf("month view: +7 days, got %s", res.State.Focused)
	}

	cfgYear := navConfig(t, func(c *calendar.Config) { c.Start = calendar.ViewYear })
	cy := newController(t, cfgYear)
	res = press(cy, calendar.KeyArrowDown)
	if !res.State.Focused.Equal(date(2024, time.September, 15)) {
		t.Errorf("year view: +3 months, got %s", res.State.Focused)
	}
}

func TestHandle_Arrow_CrossingPeriodAdvancesAnchor(t *testing.T) {
	c := newController(t, navConfig(t, nil), date(2024, time.June, 30))

	res := press(c, calendar.KeyArrowRight)
	if !res.State.Focused.Equal(date(2024, time.July, 1)) {
		t.Fatalf("focused = %s", res.State.Focused)
	}
	if res.State.Anchor.Month() != time.July {
		t.Errorf("anchor should follow into July, got %s", res.State.Anchor)
	}
}

func TestHandle_Arrow_RejectedAtBound(t *testing.T) {
	// GIVEN: Focus on the Min bound
	// WHEN: Moving left
	// THEN: The command is a silent no-op, never an error or a wrap

	cfg := navConfig(t, func(c *calendar.Config) {
		c.Bounds = bounds(date(2024, time.June, 10), date(2024, time.June, 20))
	})
	c := newController(t, cfg, date(2024, time.June, 10))

	res := press(c, calendar.KeyArrowLeft)
	if !res.State.Focused.Equal(date(2024, time.June, 10)) {
		t.Errorf("focused moved to %s", res.State.Focused)
	}
}

func TestHandle_DecadeArrows_PaddingYearReAnchors(t *testing.T) {
	// Arrowing from 2020 down to 2019 leaves the displayed decade: the
	// anchor moves to the 2010s rather than focus parking on a padding cell.

	cfg := navConfig(t, func(c *calendar.Config) {
		c.Start = calendar.ViewDecade
		c.Depth = calendar.ViewDecade
	})
	c := newController(t, cfg, date(2020, time.June, 1))

	res := press(c, calendar.KeyArrowLeft)
	if res.State.Focused.Year() != 2019 {
		t.Fatalf("focused year = %d", res.State.Focused.Year())
	}
	if res.State.Anchor.Year() != 2019 {
		t.Errorf("anchor should re-anchor to the previous decade, got %s", res.State.Anchor)
	}
}

// =============================================================================
// HOME / END
// =============================================================================

func TestHandle_HomeEnd_SkipDisabledEdges(t *testing.T) {
	// GIVEN: Past days disabled, today mid-month
	// WHEN: Pressing Home and End
	// THEN: Home lands on today (first focusable), End on the last day

	cfg := navConfig(t, func(c *calendar.Config) {
		c.Rules = calendar.Rules{DisablePast: true}
	})
	c := newController(t, cfg)

	if res := press(c, calendar.KeyHome); !res.State.Focused.Equal(june15) {
		t.Errorf("Home: got %s", res.State.Focused)
	}
	if res := press(c, calendar.KeyEnd); !res.State.Focused.Equal(date(2024, time.June, 30)) {
		t.Errorf("End: got %s", res.State.Focused)
	}
}

// =============================================================================
// PAGING
// =============================================================================

func TestHandle_PageDown_StepsMonthOrYear(t *testing.T) {
	c := newController(t, navConfig(t, nil))

	res := press(c, calendar.KeyPageDown)
	if !res.State.Focused.Equal(date(2024, time.July, 15)) {
		t.Errorf("PageDown: got %s", res.State.Focused)
	}

	res = c.Handle(calendar.Command{Key: calendar.KeyPageDown, Ctrl: true})
	if !res.State.Focused.Equal(date(2025, time.July, 15)) {
		t.Errorf("Ctrl+PageDown: got %s", res.State.Focused)
	}
}

func TestHandle_PageDown_ClampsDayOfMonth(t *testing.T) {
	c := newController(t, navConfig(t, nil), date(2024, time.January, 31))

	res := press(c, calendar.KeyPageDown)
	if !res.State.Focused.Equal(date(2024, time.February, 29)) {
		t.Errorf("got %s, want clamp to Feb 29", res.State.Focused)
	}
}

func TestHandle_PageUp_NoOpOutsideBounds(t *testing.T) {
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Bounds = bounds(date(2024, time.June, 1), date(2024, time.June, 30))
	})
	c := newController(t, cfg)

	res := press(c, calendar.KeyPageUp)
	if !res.State.Focused.Equal(june15) {
		t.Errorf("May holds no focusable date; got %s", res.State.Focused)
	}
}

// =============================================================================
// DRILLING
// =============================================================================

func TestHandle_Enter_DrillsDownUntilDepthThenCommits(t *testing.T) {
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Start = calendar.ViewDecade
		c.Depth = calendar.ViewMonth
	})
	c := newController(t, cfg)

	if st := c.State(); st.View != calendar.ViewDecade {
		t.Fatalf("initial view = %s, want decade", st.View)
	}

	res := press(c, calendar.KeyEnter)
	if res.State.View != calendar.ViewYear || !res.ViewChanged {
		t.Fatalf("first Enter: view = %s, viewChanged = %v", res.State.View, res.ViewChanged)
	}
	res = press(c, calendar.KeyEnter)
	if res.State.View != calendar.ViewMonth || !res.ViewChanged {
		t.Fatalf("second Enter: view = %s", res.State.View)
	}

	res = press(c, calendar.KeyEnter)
	if !res.ValueChanged {
		t.Fatal("Enter at terminal depth commits")
	}
	if len(res.Committed) != 1 || !res.Committed[0].Equal(june15) {
		t.Errorf("committed %v", res.Committed)
	}
}

func TestHandle_DrillUp_CappedAtStart(t *testing.T) {
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Start = calendar.ViewYear
		c.Depth = calendar.ViewMonth
	})
	c := newController(t, cfg)

	res := c.Handle(calendar.Command{Key: calendar.KeyArrowDown, Ctrl: true})
	if res.State.View != calendar.ViewMonth {
		t.Fatalf("Ctrl+Down drills down, got %s", res.State.View)
	}
	res = c.Handle(calendar.Command{Key: calendar.KeyArrowUp, Ctrl: true})
	if res.State.View != calendar.ViewYear || !res.ViewChanged {
		t.Fatalf("Ctrl+Up drills up, got %s", res.State.View)
	}
	res = c.Handle(calendar.Command{Key: calendar.KeyArrowUp, Ctrl: true})
	if res.State.View != calendar.ViewYear || res.ViewChanged {
		t.Error("drill-up past the start view must be a no-op")
	}
}

func TestHandle_DrillDown_AnchorsAtFocus(t *testing.T) {
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Start = calendar.ViewDecade
		c.Depth = calendar.ViewMonth
	})
	c := newController(t, cfg)

	press(c, calendar.KeyArrowRight) // focus 2025
	res := press(c, calendar.KeyEnter)
	if res.State.View != calendar.ViewYear {
		t.Fatalf("view = %s", res.State.View)
	}
	if res.State.Anchor.Year() != 2025 {
		t.Errorf("drill-down should anchor at the focused year, got %s", res.State.Anchor)
	}
}

// =============================================================================
// SELECTION COMMITS
// =============================================================================

func TestHandle_Enter_MultiSelect_TogglesOff(t *testing.T) {
	// GIVEN: Multi-select with [Jan 5, Jan 20] and focus on Jan 5
	// WHEN: Pressing Enter a second time on Jan 5
	// THEN: The selection becomes [Jan 20]

	jan5 := date(2024, time.January, 5)
	jan20 := date(2024, time.January, 20)
	cfg := navConfig(t, func(c *calendar.Config) { c.Multi = true })
	c := newController(t, cfg, jan5, jan20)

	res := c.Handle(calendar.Command{Key: calendar.KeyCellClick, Date: jan5})
	if !res.ValueChanged {
		t.Fatal("expected a value change")
	}
	if len(res.Selection) != 1 || !res.Selection[0].Equal(jan20) {
		t.Errorf("selection = %v, want [Jan 20]", res.Selection)
	}
}

func TestHandle_Click_FillerCell_ReAnchorsWithoutSelecting(t *testing.T) {
	// A click on a leading filler cell re-anchors the displayed month and
	// commits nothing.

	c := newController(t, navConfig(t, nil))

	res := c.Handle(calendar.Command{Key: calendar.KeyCellClick, Date: date(2024, time.May, 28)})
	if res.ValueChanged {
		t.Fatal("filler click must not select")
	}
	if res.State.Anchor.Month() != time.May {
		t.Errorf("anchor = %s, want May", res.State.Anchor)
	}
	if len(c.Selection()) != 0 {
		t.Errorf("selection = %v", c.Selection())
	}
}

func TestHandle_Commit_RejectedOnDisabledDate(t *testing.T) {
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Rules = calendar.Rules{DisablePast: true}
	})
	c := newController(t, cfg)

	res := c.Handle(calendar.Command{Key: calendar.KeyCellClick, Date: date(2024, time.June, 1)})
	if res.ValueChanged || len(c.Selection()) != 0 {
		t.Error("committing a rule-disabled date must be rejected")
	}
}

// =============================================================================
// PERIOD STEPPING AND TODAY
// =============================================================================

func TestHandle_PrevNext_StepPeriodWithoutViewChange(t *testing.T) {
	c := newController(t, navConfig(t, nil))

	res := press(c, calendar.KeyNext)
	if res.State.Anchor.Month() != time.July || res.State.View != calendar.ViewMonth {
		t.Errorf("anchor = %s, view = %s", res.State.Anchor, res.State.View)
	}
	res = press(c, calendar.KeyPrev)
	if res.State.Anchor.Month() != time.June {
		t.Errorf("anchor = %s", res.State.Anchor)
	}
}

func TestCanStep_FalseWhenAdjacentPeriodUnreachable(t *testing.T) {
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Bounds = bounds(date(2024, time.June, 1), date(2024, time.June, 30))
	})
	c := newController(t, cfg)

	if c.CanStep(-1) {
		t.Error("no focusable date in May")
	}
	if c.CanStep(1) {
		t.Error("no focusable date in July")
	}
	res := press(c, calendar.KeyNext)
	if res.State.Anchor.Month() != time.June {
		t.Errorf("Next must be a no-op, anchor = %s", res.State.Anchor)
	}
}

func TestHandle_Today_NavigatesToDepthAndSelects(t *testing.T) {
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Start = calendar.ViewDecade
		c.Depth = calendar.ViewMonth
	})
	c := newController(t, cfg)

	res := press(c, calendar.KeyToday)
	if res.State.View != calendar.ViewMonth || !res.ViewChanged {
		t.Fatalf("view = %s", res.State.View)
	}
	if !res.State.Focused.Equal(june15) || !res.State.Anchor.Equal(june15) {
		t.Errorf("state = %+v", res.State)
	}
	if !res.ValueChanged || len(res.Selection) != 1 || !res.Selection[0].Equal(june15) {
		t.Errorf("selection = %v", res.Selection)
	}
}

func TestHandle_Today_DisabledOutOfBounds(t *testing.T) {
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Bounds = bounds(date(2024, time.July, 1), date(2024, time.July, 31))
	})
	c := newController(t, cfg)

	res := press(c, calendar.KeyToday)
	if res.ValueChanged || len(c.Selection()) != 0 {
		t.Error("Today must be disabled while today is out of bounds")
	}
}

// =============================================================================
// DEGENERATE AND IMPROPER BOUNDS
// =============================================================================

func TestSingleDayBounds_ExactlyOneFocusableCellPerView(t *testing.T) {
	// GIVEN: minDate == maxDate == June 10 2024
	// WHEN: Classifying each view's matrix
	// THEN: The range is proper and each view holds exactly one enabled cell

	jun10 := date(2024, time.June, 10)
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Bounds = bounds(jun10, jun10)
		c.Start = calendar.ViewDecade
		c.Depth = calendar.ViewMonth
	})
	c := newController(t, cfg)

	if c.Improper() {
		t.Fatal("min == max is a proper range")
	}
	if !c.State().Focused.Equal(jun10) {
		t.Fatalf("focused = %s", c.State().Focused)
	}

	sys := gregorian(t)
	for _, view := range []calendar.View{calendar.ViewMonth, calendar.ViewYear, calendar.ViewDecade} {
		matrix := calendar.BuildMatrix(view, jun10, calendar.ViewOptions{ShowOtherMonthDays: true}, sys)
		enabled := 0
		for _, row := range matrix {
			for _, cell := range row {
				st := calendar.ClassifyCell(cell, calendar.CellContext{
					Bounds: bounds(jun10, jun10),
					Today:  june15,
					Sys:    sys,
				})
				if !st.Disabled {
					enabled++
				}
			}
		}
		if enabled != 1 {
			t.Errorf("%s: %d enabled cells, want exactly 1", view, enabled)
		}
	}

	// Today (June 15) is not the single allowed day, so the command is inert.
	if res := press(c, calendar.KeyToday); res.ValueChanged {
		t.Error("Today must be disabled unless today equals the single day")
	}
}

func TestImproperBounds_FreezeAllCommands(t *testing.T) {
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Bounds = bounds(date(2024, time.June, 20), date(2024, time.June, 10))
	})
	c := newController(t, cfg)

	if !c.Improper() {
		t.Fatal("expected improper bounds")
	}
	before := c.State()
	for _, key := range []calendar.Key{
		calendar.KeyArrowRight, calendar.KeyEnter, calendar.KeyPageDown,
		calendar.KeyNext, calendar.KeyToday, calendar.KeyDrillUp,
	} {
		res := press(c, key)
		if res.State != before || res.ValueChanged || res.ViewChanged {
			t.Errorf("key %d leaked through improper bounds", key)
		}
	}
}

// =============================================================================
// BOUNDS INVARIANT
// =============================================================================

func TestBoundsInvariant_FocusNeverLeavesWindow(t *testing.T) {
	// GIVEN: A tight bounds window and the full drill range
	// WHEN: Hammering the controller with a long command sequence
	// THEN: Focused never sits strictly outside [Min, Max]

	min, max := date(2024, time.June, 10), date(2024, time.June, 20)
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Bounds = bounds(min, max)
		c.Start = calendar.ViewDecade
		c.Depth = calendar.ViewMonth
	})
	c := newController(t, cfg)

	sequence := []calendar.Command{
		{Key: calendar.KeyArrowRight}, {Key: calendar.KeyArrowDown},
		{Key: calendar.KeyEnter}, {Key: calendar.KeyArrowLeft},
		{Key: calendar.KeyPageDown}, {Key: calendar.KeyEnter},
		{Key: calendar.KeyHome}, {Key: calendar.KeyEnd},
		{Key: calendar.KeyArrowUp}, {Key: calendar.KeyNext},
		{Key: calendar.KeyArrowUp, Ctrl: true}, {Key: calendar.KeyPageUp},
		{Key: calendar.KeyArrowDown, Ctrl: true}, {Key: calendar.KeyPrev},
		{Key: calendar.KeyEnd}, {Key: calendar.KeyArrowRight},
	}
	for i, cmd := range sequence {
		res := c.Handle(cmd)
		f := res.State.Focused
		if f.Before(min) || f.After(max) {
			t.Fatalf("step %d (%+v): focused %s escaped [%s, %s]", i, cmd, f, min, max)
		}
	}
}

// =============================================================================
// SNAPSHOT RESTORE AND STATELESS FORM
// =============================================================================

func TestRestoreController_ClampsViewIntoConfiguredRange(t *testing.T) {
	cfg := navConfig(t, func(c *calendar.Config) {
		c.Start = calendar.ViewYear
		c.Depth = calendar.ViewMonth
	})
	c, err := calendar.RestoreController(cfg, calendar.State{
		View:    calendar.ViewDecade, // coarser than Start
		Anchor:  june15,
		Focused: june15,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.State().View; got != calendar.ViewYear {
		t.Errorf("view = %s, want clamp to start", got)
	}
}

func TestHandleKey_StatelessRoundTrip(t *testing.T) {
	cfg := navConfig(t, nil)
	st := calendar.State{View: calendar.ViewMonth, Anchor: june15, Focused: june15}

	res, err := calendar.HandleKey(st, nil, calendar.Command{Key: calendar.KeyArrowRight}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.State.Focused.Equal(date(2024, time.June, 16)) {
		t.Errorf("focused = %s", res.State.Focused)
	}

	// Feeding the result back in continues the walk.
	res, err = calendar.HandleKey(res.State, res.Selection, calendar.Command{Key: calendar.KeyArrowRight}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.State.Focused.Equal(date(2024, time.June, 17)) {
		t.Errorf("focused = %s", res.State.Focused)
	}
}
