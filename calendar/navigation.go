/*
navigation.go - Focus/view state machine

PURPOSE:
  Interprets keyboard and pointer commands against the engine state tuple
  (view, period anchor, focused date): focus movement within a view,
  drill-down/drill-up between views, period stepping, and selection
  commits. Every transition is an atomic value replacement of the whole
  state; there is no partial update.

INVARIANTS:
  - Focused always lies within the period visible under the anchor, and
    is not disabled whenever a focusable date exists in that period.
  - No command ever moves Focused strictly outside [Min, Max].
  - While the bounds are improper or the host disabled the widget, every
    command is a no-op.

SEE ALSO:
  - matrix.go: The grids this machine navigates
  - guard.go: The disablement checks gating every move
  - selection.go: Commit semantics
*/
package calendar

import "strconv"

// =============================================================================
// CONFIG AND STATE
// =============================================================================

// Config is the fully-resolved engine configuration, constructed once per
// widget instance. Defaults are filled by the constructor; nothing else
// falls back at call sites.
type Config struct {
	Sys     System
	Bounds  Bounds
	Rules   Rules
	Options ViewOptions

	// Start is the coarsest view navigation may return to; it is also the
	// initial view. Depth is the terminal view drilling down stops at.
	// Depth must be equal to or finer than Start.
	Start View
	Depth View

	Multi    bool
	Disabled bool

	// Now supplies "today". Nil means the current local day.
	Now func() Date
}

func (c Config) withDefaults() (Config, error) {
	if c.Sys == nil {
		c.Sys, _ = NewSystem(SystemGregorian)
	}
	if c.Now == nil {
		c.Now = Today
	}
	if c.Depth > c.Start {
		return c, ErrInvalidDepth
	}
	return c, nil
}

// State is the navigation state tuple. Anchor is the date whose enclosing
// period (month/year/decade) is displayed.
type State struct {
	View    View
	Anchor  Date
	Focused Date
}

// Command is one navigation input. Date carries the target of a cell click.
type Command struct {
	Key   Key
	Ctrl  bool
	Shift bool
	Date  Date
}

// Key identifies a navigation command.
type Key int

const (
	KeyNone Key = iota
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyEnter
	KeyPrev
	KeyNext
	KeyToday
	KeyDrillUp
	KeyDrillDown
	KeyCellClick
)

var keyNames = map[string]Key{
	"ArrowLeft":  KeyArrowLeft,
	"ArrowRight": KeyArrowRight,
	"ArrowUp":    KeyArrowUp,
	"ArrowDown":  KeyArrowDown,
	"Home":       KeyHome,
	"End":        KeyEnd,
	"PageUp":     KeyPageUp,
	"PageDown":   KeyPageDown,
	"Enter":      KeyEnter,
	"prev":       KeyPrev,
	"next":       KeyNext,
	"today":      KeyToday,
	"drill_up":   KeyDrillUp,
	"drill_down": KeyDrillDown,
	"click":      KeyCellClick,
}

// ParseKey maps a DOM-style key name or action word to a Key.
func ParseKey(s string) (Key, error) {
	if k, ok := keyNames[s]; ok {
		return k, nil
	}
	return KeyNone, ErrUnknownKey
}

// Result is the outcome of one command. Committed is non-nil exactly when
// the selection value changed.
type Result struct {
	State        State
	Selection    []Date
	Committed    []Date
	ValueChanged bool
	ViewChanged  bool
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the navigation state for one calendar widget. It is not
// safe for concurrent use; the host event loop serializes commands.
type Controller struct {
	cfg       Config
	state     State
	selection []Date
}

// NewController builds a controller from a config and an initial raw
// selection value. Initial focus resolution: the selection anchor if it is
// in bounds, else today if in bounds, else the first focusable date
// scanning forward from today toward Max, else Max itself as a last resort
// so focus always has some date to hang on.
func NewController(cfg Config, value []Date) (*Controller, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	c := &Controller{cfg: cfg}
	c.selection = NormalizeSelection(value, cfg.Bounds, cfg.Multi)

	focused := c.initialFocus()
	c.state = State{View: cfg.Start, Anchor: focused, Focused: focused}
	return c, nil
}

// RestoreController rebuilds a controller from a persisted state snapshot.
// A snapshot whose view falls outside the configured [Depth, Start] window
// is clamped; a snapshot without dates falls back to initial resolution.
func RestoreController(cfg Config, st State, selection []Date) (*Controller, error) {
	c, err := NewController(cfg, selection)
	if err != nil {
		return nil, err
	}
	if st.Anchor.IsZero() || st.Focused.IsZero() {
		return c, nil
	}
	if st.View < c.cfg.Depth {
		st.View = c.cfg.Depth
	}
	if st.View > c.cfg.Start {
		st.View = c.cfg.Start
	}
	if !c.samePeriod(st.Focused, st.Anchor, st.View) {
		st.Focused = st.Anchor
	}
	c.state = st
	return c, nil
}

// HandleKey is the stateless form of the command interface: it rebuilds a
// controller around the given state, applies one command, and returns the
// outcome.
func HandleKey(st State, selection []Date, cmd Command, cfg Config) (Result, error) {
	c, err := RestoreController(cfg, st, selection)
	if err != nil {
		return Result{}, err
	}
	return c.Handle(cmd), nil
}

func (c *Controller) State() State { return c.state }

// Selection returns a copy of the normalized selection.
func (c *Controller) Selection() []Date {
	return append([]Date{}, c.selection...)
}

// Improper reports whether the configured bounds are inverted. While true,
// every command is a no-op and the host is expected to render the widget
// inert.
func (c *Controller) Improper() bool { return c.cfg.Bounds.Improper() }

// Matrix builds the grid for the current view and anchor.
func (c *Controller) Matrix() [][]CellData {
	opts := c.cfg.Options
	opts.Today = c.cfg.Now()
	return BuildMatrix(c.state.View, c.state.Anchor, opts, c.cfg.Sys)
}

// CellContext returns the classification context matching the current state.
func (c *Controller) CellContext() CellContext {
	return CellContext{
		Bounds:    c.cfg.Bounds,
		Rules:     c.cfg.Rules,
		Focused:   c.state.Focused,
		Selection: c.Selection(),
		Multi:     c.cfg.Multi,
		Disabled:  c.cfg.Disabled,
		Today:     c.cfg.Now(),
		Sys:       c.cfg.Sys,
	}
}

// Title returns the localized heading for the current period, e.g.
// "March 2024", "2024" or "2020-2029".
func (c *Controller) Title() string {
	a := c.state.Anchor
	if a.IsZero() {
		return ""
	}
	switch c.state.View {
	case ViewYear:
		return strconv.Itoa(a.Year())
	case ViewDecade:
		start := decadeStart(a.Year())
		return strconv.Itoa(start) + "-" + strconv.Itoa(start+9)
	default:
		return c.cfg.Sys.MonthName(a.Month(), c.cfg.Options.Locale, FormatWide) + " " + strconv.Itoa(a.Year())
	}
}

// Handle applies one command and returns the resulting state snapshot.
// Out-of-bounds targets are rejected silently: the command is a no-op,
// never an error.
func (c *Controller) Handle(cmd Command) Result {
	if c.cfg.Disabled || c.cfg.Bounds.Improper() {
		return c.result(false, nil)
	}

	switch cmd.Key {
	case KeyArrowLeft:
		return c.moveFocus(-1)
	case KeyArrowRight:
		return c.moveFocus(1)
	case KeyArrowUp:
		if cmd.Ctrl {
			return c.drillUp()
		}
		return c.moveFocus(-c.rowWidth())
	case KeyArrowDown:
		if cmd.Ctrl {
			return c.drillDown(c.state.Focused)
		}
		return c.moveFocus(c.rowWidth())
	case KeyHome:
		return c.focusEdge(false)
	case KeyEnd:
		return c.focusEdge(true)
	case KeyPageUp:
		return c.page(-1, cmd.Ctrl)
	case KeyPageDown:
		return c.page(1, cmd.Ctrl)
	case KeyEnter:
		if c.state.View > c.cfg.Depth {
			return c.drillDown(c.state.Focused)
		}
		return c.commit(c.state.Focused, true)
	case KeyPrev:
		return c.stepPeriodCmd(-1)
	case KeyNext:
		return c.stepPeriodCmd(1)
	case KeyToday:
		return c.today()
	case KeyDrillUp:
		return c.drillUp()
	case KeyDrillDown:
		return c.drillDown(c.state.Focused)
	case KeyCellClick:
		return c.click(cmd.Date)
	}
	return c.result(false, nil)
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// moveFocus shifts focus by n cell-steps (days, months or years depending
// on the view). A disabled or out-of-bounds target rejects the move; a
// move crossing into an adjacent period drags the anchor along.
func (c *Controller) moveFocus(n int) Result {
	target := c.stepUnit(c.state.Focused, n)
	if target.IsZero() || !c.focusable(target, c.state.View) {
		return c.result(false, nil)
	}
	st := c.state
	st.Focused = c.clampFocus(target)
	if !c.samePeriod(target, st.Anchor, st.View) {
		st.Anchor = target
	}
	c.state = st
	return c.result(false, nil)
}

// focusEdge moves focus to the first (Home) or last (End) focusable unit
// of the current period, scanning inward from the period boundary.
func (c *Controller) focusEdge(end bool) Result {
	units := c.periodUnits(c.state.Anchor, c.state.View)
	if end {
		for i := len(units) - 1; i >= 0; i-- {
			if c.focusable(units[i], c.state.View) {
				return c.setFocus(c.clampFocus(units[i]))
			}
		}
	} else {
		for _, u := range units {
			if c.focusable(u, c.state.View) {
				return c.setFocus(c.clampFocus(u))
			}
		}
	}
	return c.result(false, nil)
}

// page steps both focus and anchor by one month (or one year with the
// modifier) in month view, one year in year view, one decade in decade
// view. The command is a no-op when the target period holds no focusable
// date inside the bounds.
func (c *Controller) page(dir int, byYear bool) Result {
	var target Date
	switch {
	case c.state.View == ViewMonth && !byYear:
		target = c.cfg.Sys.AddMonths(c.state.Focused, dir)
	case c.state.View == ViewDecade:
		target = c.cfg.Sys.AddYears(c.state.Focused, 10*dir)
	default:
		target = c.cfg.Sys.AddYears(c.state.Focused, dir)
	}
	return c.moveToPeriod(target)
}

// stepPeriodCmd is the prev/next period button: the anchor steps by one
// unit of the current view without changing the view.
func (c *Controller) stepPeriodCmd(dir int) Result {
	return c.moveToPeriod(c.stepPeriod(c.state.Focused, dir))
}

// CanStep reports whether the prev (dir < 0) or next (dir > 0) period
// holds any focusable date. Hosts use this to disable the period buttons.
func (c *Controller) CanStep(dir int) bool {
	if c.cfg.Disabled || c.cfg.Bounds.Improper() {
		return false
	}
	target := c.stepPeriod(c.state.Anchor, dir)
	return !c.firstFocusableIn(target, c.state.View).IsZero()
}

func (c *Controller) moveToPeriod(target Date) Result {
	if target.IsZero() {
		return c.result(false, nil)
	}
	focused := target
	if !c.focusable(focused, c.state.View) {
		focused = c.firstFocusableIn(target, c.state.View)
		if focused.IsZero() {
			return c.result(false, nil)
		}
	}
	st := c.state
	st.Anchor = focused
	st.Focused = c.clampFocus(focused)
	c.state = st
	return c.result(false, nil)
}

// drillDown moves one view finer, anchored at the given date. At terminal
// depth the command is a no-op (Enter handles commits separately).
func (c *Controller) drillDown(anchor Date) Result {
	if c.state.View <= c.cfg.Depth || anchor.IsZero() {
		return c.result(false, nil)
	}
	st := c.state
	st.View--
	st.Anchor = anchor
	st.Focused = anchor
	if !c.focusable(st.Focused, st.View) {
		if f := c.firstFocusableIn(st.Anchor, st.View); !f.IsZero() {
			st.Focused = f
		}
	}
	st.Focused = c.clampFocus(st.Focused)
	c.state = st
	return c.resultView(false, nil)
}

// drillUp moves one view coarser, capped at the configured start view.
func (c *Controller) drillUp() Result {
	if c.state.View >= c.cfg.Start {
		return c.result(false, nil)
	}
	st := c.state
	st.View++
	if !c.focusable(st.Focused, st.View) {
		if f := c.firstFocusableIn(st.Anchor, st.View); !f.IsZero() {
			st.Focused = f
		}
	}
	st.Focused = c.clampFocus(st.Focused)
	c.state = st
	return c.resultView(false, nil)
}

// commit runs the focused/clicked date through the selection model. A
// disabled target rejects the commit.
func (c *Controller) commit(date Date, toggle bool) Result {
	if date.IsZero() || !c.focusable(date, c.state.View) {
		return c.result(false, nil)
	}
	// At coarse terminal depths the committed unit may only partially
	// overlap the bounds; the stored date is pulled inside them.
	date = c.clampFocus(date)
	var sel []Date
	if toggle {
		sel = ToggleSelection(c.selection, date, c.cfg.Multi)
	} else {
		sel = SelectSelection(c.selection, date, c.cfg.Multi)
	}
	c.selection = NormalizeSelection(sel, c.cfg.Bounds, c.cfg.Multi)

	st := c.state
	st.Focused = date
	if !c.samePeriod(date, st.Anchor, st.View) {
		st.Anchor = date
	}
	c.state = st
	return c.result(true, c.Selection())
}

// today commits today's date and navigates to the terminal depth view
// anchored there. Disabled when today is outside the bounds.
func (c *Controller) today() Result {
	now := c.cfg.Now()
	if !c.cfg.Bounds.Contains(now) {
		return c.result(false, nil)
	}
	viewChanged := c.state.View != c.cfg.Depth
	c.state = State{View: c.cfg.Depth, Anchor: now, Focused: now}
	c.selection = NormalizeSelection(SelectSelection(c.selection, now, c.cfg.Multi), c.cfg.Bounds, c.cfg.Multi)
	res := c.result(true, c.Selection())
	res.ViewChanged = viewChanged
	return res
}

// click handles a pointer activation of a cell. In month view a click on a
// filler cell from an adjacent month re-anchors the displayed month
// without selecting; above terminal depth a click drills into the cell.
func (c *Controller) click(date Date) Result {
	if date.IsZero() {
		return c.result(false, nil)
	}
	if c.state.View == ViewMonth && !c.cfg.Sys.SameMonth(date, c.state.Anchor) {
		return c.moveToPeriod(date)
	}
	if c.state.View > c.cfg.Depth {
		return c.drillDown(date)
	}
	return c.commit(date, true)
}

// =============================================================================
// HELPERS
// =============================================================================

func (c *Controller) result(valueChanged bool, committed []Date) Result {
	return Result{
		State:        c.state,
		Selection:    c.Selection(),
		Committed:    committed,
		ValueChanged: valueChanged,
	}
}

func (c *Controller) resultView(valueChanged bool, committed []Date) Result {
	res := c.result(valueChanged, committed)
	res.ViewChanged = true
	return res
}

func (c *Controller) setFocus(d Date) Result {
	st := c.state
	st.Focused = d
	c.state = st
	return c.result(false, nil)
}

// focusable composes the guards at the granularity of the given view.
func (c *Controller) focusable(d Date, view View) bool {
	return !Disabled(d, view, c.cfg.Bounds, c.cfg.Rules, c.cfg.Now(), c.cfg.Sys)
}

// clampFocus pulls a focused date inside the bounds at day granularity.
// A coarse-view unit is focusable when it partially overlaps the bounds;
// its representative date must still never sit strictly outside [Min, Max].
func (c *Controller) clampFocus(d Date) Date {
	b := c.cfg.Bounds
	if d.IsZero() || b.Improper() {
		return d
	}
	if !b.Min.IsZero() && d.Before(b.Min) {
		return b.Min
	}
	if !b.Max.IsZero() && d.After(b.Max) {
		return b.Max
	}
	return d
}

// rowWidth is the vertical arrow step: the resolved column count of the
// current view (7 for the day grid, 3 for the coarse grids by default).
func (c *Controller) rowWidth() int {
	return c.cfg.Options.withDefaults(c.state.View).Cols
}

// stepUnit advances by n of the view's cell unit.
func (c *Controller) stepUnit(d Date, n int) Date {
	switch c.state.View {
	case ViewYear:
		return c.cfg.Sys.AddMonths(d, n)
	case ViewDecade:
		return c.cfg.Sys.AddYears(d, n)
	default:
		return c.cfg.Sys.AddDays(d, n)
	}
}

// stepPeriod advances by one whole period of the view.
func (c *Controller) stepPeriod(d Date, dir int) Date {
	switch c.state.View {
	case ViewYear:
		return c.cfg.Sys.AddYears(d, dir)
	case ViewDecade:
		return c.cfg.Sys.AddYears(d, 10*dir)
	default:
		return c.cfg.Sys.AddMonths(d, dir)
	}
}

func (c *Controller) samePeriod(a, b Date, view View) bool {
	switch view {
	case ViewYear:
		return c.cfg.Sys.SameYear(a, b)
	case ViewDecade:
		return !a.IsZero() && !b.IsZero() && decadeStart(a.Year()) == decadeStart(b.Year())
	default:
		return c.cfg.Sys.SameMonth(a, b)
	}
}

// periodUnits enumerates the primary period of d at the view's cell
// granularity: the days of the month, the twelve months of the year, or
// the ten years of the true decade (padding years excluded).
func (c *Controller) periodUnits(d Date, view View) []Date {
	sys := c.cfg.Sys
	switch view {
	case ViewYear:
		start := sys.StartOfYear(d)
		units := make([]Date, 12)
		for i := range units {
			units[i] = sys.AddMonths(start, i)
		}
		return units
	case ViewDecade:
		start := sys.StartOfDecade(d)
		units := make([]Date, 10)
		for i := range units {
			units[i] = sys.AddYears(start, i)
		}
		return units
	default:
		start := sys.StartOfMonth(d)
		n := sys.DaysInMonth(d.Year(), d.Month())
		units := make([]Date, n)
		for i := range units {
			units[i] = sys.AddDays(start, i)
		}
		return units
	}
}

// firstFocusableIn returns the first focusable unit of d's period, or the
// zero Date when the whole period is disabled.
func (c *Controller) firstFocusableIn(d Date, view View) Date {
	if d.IsZero() {
		return Date{}
	}
	for _, u := range c.periodUnits(d, view) {
		if c.focusable(u, view) {
			return u
		}
	}
	return Date{}
}

// initialFocus resolves where focus lands when the controller is built.
func (c *Controller) initialFocus() Date {
	if a := SelectionAnchor(c.selection); !a.IsZero() && c.cfg.Bounds.Contains(a) {
		return a
	}
	now := c.cfg.Now()
	if c.cfg.Bounds.Contains(now) {
		return now
	}
	if c.cfg.Bounds.Improper() {
		return now
	}
	if !c.cfg.Bounds.Max.IsZero() {
		start := now
		if !c.cfg.Bounds.Min.IsZero() && start.Before(c.cfg.Bounds.Min) {
			start = c.cfg.Bounds.Min
		}
		for d := start; d.BeforeOrEqual(c.cfg.Bounds.Max); d = c.cfg.Sys.AddDays(d, 1) {
			if c.focusable(d, c.cfg.Start) {
				return d
			}
		}
		// Last resort: Max itself, even if nominally disabled, so focus
		// always has an anchor.
		return c.cfg.Bounds.Max
	}
	if !c.cfg.Bounds.Min.IsZero() && now.Before(c.cfg.Bounds.Min) {
		return c.cfg.Bounds.Min
	}
	return now
}

