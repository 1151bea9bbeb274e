/*
locale.go - Month and weekday name catalogs

PURPOSE:
  Small built-in name catalogs for the locales the engine ships with,
  resolved by BCP-47 matching. This intentionally does not pull in a full
  CLDR dataset: the engine needs names for grid headers and labels, and an
  unknown locale must degrade to English rather than fail.

FALLBACK:
  Unknown or unparseable locales resolve to English. The FormatShort
  weekday table is the fixed two-letter table (Su Mo Tu We Th Fr Sa in
  English) regardless of how wide names are spelled.
*/
package calendar

import (
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// =============================================================================
// CATALOGS
// =============================================================================

type nameCatalog struct {
	monthsWide    [12]string
	monthsAbbr    [12]string
	weekdaysWide  [7]string // Sunday first
	weekdaysAbbr  [7]string
	weekdaysShort [7]string
}

var catalogEnglish = nameCatalog{
	monthsWide: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	monthsAbbr: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	weekdaysWide:  [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	weekdaysAbbr:  [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	weekdaysShort: [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
}

var catalogGerman = nameCatalog{
	monthsWide: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember"},
	monthsAbbr: [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun",
		"Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
	weekdaysWide:  [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
	weekdaysAbbr:  [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
	weekdaysShort: [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
}

var catalogFrench = nameCatalog{
	monthsWide: [12]string{"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	monthsAbbr: [12]string{"janv", "févr", "mars", "avr", "mai", "juin",
		"juil", "août", "sept", "oct", "nov", "déc"},
	weekdaysWide:  [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
	weekdaysAbbr:  [7]string{"dim", "lun", "mar", "mer", "jeu", "ven", "sam"},
	weekdaysShort: [7]string{"di", "lu", "ma", "me", "je", "ve", "sa"},
}

var catalogSpanish = nameCatalog{
	monthsWide: [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	monthsAbbr: [12]string{"ene", "feb", "mar", "abr", "may", "jun",
		"jul", "ago", "sep", "oct", "nov", "dic"},
	weekdaysWide:  [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
	weekdaysAbbr:  [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	weekdaysShort: [7]string{"do", "lu", "ma", "mi", "ju", "vi", "sá"},
}

var (
	catalogTags = []language.Tag{
		language.English,
		language.German,
		language.French,
		language.Spanish,
	}
	catalogByIndex = []*nameCatalog{
		&catalogEnglish,
		&catalogGerman,
		&catalogFrench,
		&catalogSpanish,
	}
	catalogMatcher = language.NewMatcher(catalogTags)
)

// lookupCatalog resolves a locale string to the best-matching catalog.
// English is the fallback for empty, unparseable or unmatched locales.
func lookupCatalog(locale string) *nameCatalog {
	if locale == "" {
		return &catalogEnglish
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return &catalogEnglish
	}
	_, idx, conf := catalogMatcher.Match(tag)
	if conf == language.No {
		return &catalogEnglish
	}
	return catalogByIndex[idx]
}

// =============================================================================
// LOOKUPS
// =============================================================================

func monthName(m time.Month, locale string, format NameFormat) string {
	if m < time.January || m > time.December {
		return ""
	}
	cat := lookupCatalog(locale)
	switch format {
	case FormatWide:
		return cat.monthsWide[m-1]
	case FormatNarrow:
		return firstRune(cat.monthsWide[m-1])
	default:
		return cat.monthsAbbr[m-1]
	}
}

// weekdayNames returns the seven weekday names rotated so the result
// starts at firstDay (0 = Sunday).
func weekdayNames(locale string, firstDay int, format NameFormat) []string {
	cat := lookupCatalog(locale)
	firstDay = ((firstDay % 7) + 7) % 7

	names := make([]string, 7)
	for i := 0; i < 7; i++ {
		idx := (firstDay + i) % 7
		switch format {
		case FormatWide:
			names[i] = cat.weekdaysWide[idx]
		case FormatAbbreviated:
			names[i] = cat.weekdaysAbbr[idx]
		case FormatNarrow:
			names[i] = firstRune(cat.weekdaysWide[idx])
		default:
			names[i] = cat.weekdaysShort[idx]
		}
	}
	return names
}

func firstRune(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}
