package calendar

import "time"

// =============================================================================
// GREGORIAN - The shipped calendar system
// =============================================================================

// Gregorian implements System for the Gregorian calendar. It is stateless;
// the zero value is ready to use.
type Gregorian struct{}

var _ System = Gregorian{}

func (Gregorian) AddDays(d Date, n int) Date {
	if d.IsZero() {
		return Date{}
	}
	return DateOf(d.t.AddDate(0, 0, n))
}

// AddMonths clamps the day-of-month: Jan 31 + 1 month lands on the last
// day of February, not on an overflow into March.
func (g Gregorian) AddMonths(d Date, n int) Date {
	if d.IsZero() {
		return Date{}
	}
	total := d.Year()*12 + int(d.Month()) - 1 + n
	year := floorDiv(total, 12)
	month := time.Month(floorMod(total, 12) + 1)
	day := d.Day()
	if last := g.DaysInMonth(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

// AddYears clamps Feb 29 to Feb 28 when the target year is not a leap year.
func (g Gregorian) AddYears(d Date, n int) Date {
	if d.IsZero() {
		return Date{}
	}
	year := d.Year() + n
	day := d.Day()
	if last := g.DaysInMonth(year, d.Month()); day > last {
		day = last
	}
	return NewDate(year, d.Month(), day)
}

func (Gregorian) DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (Gregorian) StartOfMonth(d Date) Date {
	if d.IsZero() {
		return Date{}
	}
	return NewDate(d.Year(), d.Month(), 1)
}

func (g Gregorian) EndOfMonth(d Date) Date {
	if d.IsZero() {
		return Date{}
	}
	return NewDate(d.Year(), d.Month(), g.DaysInMonth(d.Year(), d.Month()))
}

func (Gregorian) StartOfYear(d Date) Date {
	if d.IsZero() {
		return Date{}
	}
	return NewDate(d.Year(), time.January, 1)
}

func (Gregorian) EndOfYear(d Date) Date {
	if d.IsZero() {
		return Date{}
	}
	return NewDate(d.Year(), time.December, 31)
}

func (Gregorian) StartOfDecade(d Date) Date {
	if d.IsZero() {
		return Date{}
	}
	return NewDate(decadeStart(d.Year()), time.January, 1)
}

func (Gregorian) EndOfDecade(d Date) Date {
	if d.IsZero() {
		return Date{}
	}
	return NewDate(decadeStart(d.Year())+9, time.December, 31)
}

func (Gregorian) SameDay(a, b Date) bool {
	return !a.IsZero() && !b.IsZero() && a.Equal(b)
}

func (Gregorian) SameMonth(a, b Date) bool {
	return !a.IsZero() && !b.IsZero() && a.Year() == b.Year() && a.Month() == b.Month()
}

func (Gregorian) SameYear(a, b Date) bool {
	return !a.IsZero() && !b.IsZero() && a.Year() == b.Year()
}

// WeekNumber is ceil((days since Jan 1 + 1) / 7). The first-week rule is
// applied by the caller as a reference-date shift, not here.
func (g Gregorian) WeekNumber(d Date) int {
	if d.IsZero() {
		return 0
	}
	jan1 := g.StartOfYear(d)
	return DaysBetween(jan1, d)/7 + 1
}

func (Gregorian) MonthName(m time.Month, locale string, format NameFormat) string {
	return monthName(m, locale, format)
}

func (Gregorian) WeekdayNames(locale string, firstDay int, format NameFormat) []string {
	return weekdayNames(locale, firstDay, format)
}

// WeekOfYear applies a WeekRule before the week-number lookup. This is the
// call sites' entry point; WeekNumber stays rule-agnostic.
func WeekOfYear(d Date, rule WeekRule, sys System) int {
	if d.IsZero() || sys == nil {
		return 0
	}
	return sys.WeekNumber(sys.AddDays(d, rule.Offset()))
}

func decadeStart(year int) int {
	return year - floorMod(year, 10)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
