/*
matrix.go - Grid generation for the three view granularities

PURPOSE:
  Pure functions that turn (base date, options, calendar system) into a
  rectangular grid of CellData. No hidden state: the same inputs always
  produce the same matrix, which makes results safe to memoize upstream.

INVARIANTS:
  - Every matrix is rectangular: all rows have exactly Cols cells.
  - Row/Col indices are zero-based and dense, also after row trimming.
  - An invalid base date produces an empty matrix, never garbage cells.

SEE ALSO:
  - view.go: CellData and ViewOptions
  - guard.go: Bounds/rule classification applied on top of these cells
*/
package calendar

import (
	"fmt"
	"strconv"
)

// BuildMatrix dispatches to the builder for the given view.
func BuildMatrix(view View, base Date, opts ViewOptions, sys System) [][]CellData {
	switch view {
	case ViewYear:
		return YearMatrix(base, opts, sys)
	case ViewDecade:
		return DecadeMatrix(base, opts, sys)
	default:
		return MonthMatrix(base, opts, sys)
	}
}

// =============================================================================
// MONTH MATRIX - Day grid
// =============================================================================

// MonthMatrix builds the day grid for the month containing base. The grid
// starts on the most recent occurrence of FirstDayOfWeek on or before the
// first of the month and walks forward Rows*Cols consecutive days.
//
// With ShowOtherMonthDays=false, leading and trailing rows that contain no
// in-month cell are trimmed; a row with at least one in-month cell is kept
// whole, filler cells included.
func MonthMatrix(base Date, opts ViewOptions, sys System) [][]CellData {
	if base.IsZero() || sys == nil {
		return [][]CellData{}
	}
	o := opts.withDefaults(ViewMonth)

	first := sys.StartOfMonth(base)
	back := (int(first.Weekday()) - o.FirstDayOfWeek + 7) % 7
	cur := sys.AddDays(first, -back)

	rows := make([][]CellData, 0, o.Rows)
	for r := 0; r < o.Rows; r++ {
		row := make([]CellData, o.Cols)
		for c := 0; c < o.Cols; c++ {
			row[c] = CellData{
				Kind:      ViewMonth,
				Date:      cur,
				Row:       r,
				Col:       c,
				Label:     strconv.Itoa(cur.Day()),
				InRange:   sys.SameMonth(cur, base),
				IsToday:   sys.SameDay(cur, o.Today),
				IsWeekend: o.weekend(cur),
			}
			cur = sys.AddDays(cur, 1)
		}
		rows = append(rows, row)
	}

	if !o.ShowOtherMonthDays {
		rows = trimOuterRows(rows)
	}
	return rows
}

// trimOuterRows drops leading and trailing rows with no in-range cell and
// renumbers the kept rows so indices stay dense.
func trimOuterRows(rows [][]CellData) [][]CellData {
	lo, hi := 0, len(rows)
	for lo < hi && !rowHasInRange(rows[lo]) {
		lo++
	}
	for hi > lo && !rowHasInRange(rows[hi-1]) {
		hi--
	}
	kept := rows[lo:hi]
	for r := range kept {
		for c := range kept[r] {
			kept[r][c].Row = r
		}
	}
	return kept
}

func rowHasInRange(row []CellData) bool {
	for _, cell := range row {
		if cell.InRange {
			return true
		}
	}
	return false
}

// =============================================================================
// YEAR MATRIX - Month grid
// =============================================================================

// YearMatrix builds the month grid for the year containing base: one cell
// per calendar month in row-major order. All twelve months are in range;
// when Rows*Cols exceeds twelve the walk continues into the next year with
// InRange=false so the grid stays rectangular.
func YearMatrix(base Date, opts ViewOptions, sys System) [][]CellData {
	if base.IsZero() || sys == nil {
		return [][]CellData{}
	}
	o := opts.withDefaults(ViewYear)

	start := sys.StartOfYear(base)
	rows := make([][]CellData, 0, o.Rows)
	idx := 0
	for r := 0; r < o.Rows; r++ {
		row := make([]CellData, o.Cols)
		for c := 0; c < o.Cols; c++ {
			d := sys.AddMonths(start, idx)
			row[c] = CellData{
				Kind:    ViewYear,
				Date:    d,
				Row:     r,
				Col:     c,
				Label:   sys.MonthName(d.Month(), o.Locale, FormatAbbreviated),
				InRange: idx < 12,
			}
			idx++
		}
		rows = append(rows, row)
	}
	return rows
}

// =============================================================================
// DECADE MATRIX - Year grid
// =============================================================================

// DecadeMatrix builds the year grid for the decade containing base. The
// default 4x3 grid covers decadeStart-1 through decadeStart+10: one padding
// year on each side of the true decade, marked InRange=false.
func DecadeMatrix(base Date, opts ViewOptions, sys System) [][]CellData {
	if base.IsZero() || sys == nil {
		return [][]CellData{}
	}
	o := opts.withDefaults(ViewDecade)

	start := decadeStart(base.Year())
	year := start - 1
	rows := make([][]CellData, 0, o.Rows)
	for r := 0; r < o.Rows; r++ {
		row := make([]CellData, o.Cols)
		for c := 0; c < o.Cols; c++ {
			d := sys.StartOfYear(NewDate(year, 1, 1))
			row[c] = CellData{
				Kind:    ViewDecade,
				Date:    d,
				Row:     r,
				Col:     c,
				Label:   fmt.Sprintf("%04d", year),
				InRange: year >= start && year <= start+9,
			}
			year++
		}
		rows = append(rows, row)
	}
	return rows
}
