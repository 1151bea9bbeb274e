package factory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/factory"
)

func TestParseProfile_ResolvesDefaultsOnce(t *testing.T) {
	// GIVEN: A minimal profile
	// WHEN: Parsing it
	// THEN: The config comes out with every default already resolved

	f := factory.NewProfileFactory()
	pj, cfg, err := f.ParseProfile(`{"id": "plain", "name": "Plain"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pj.ID != "plain" {
		t.Errorf("id = %q", pj.ID)
	}
	if cfg.Sys == nil {
		t.Fatal("system must be resolved at parse time")
	}
	if cfg.Start != calendar.ViewMonth || cfg.Depth != calendar.ViewMonth {
		t.Errorf("views = %s/%s, want month/month", cfg.Start, cfg.Depth)
	}
	if !cfg.Options.ShowOtherMonthDays {
		t.Error("filler cells default on")
	}
}

func TestParseProfile_FullSchema(t *testing.T) {
	f := factory.NewProfileFactory()
	_, cfg, err := f.ParseProfile(`{
		"id": "booking-window",
		"name": "Booking window",
		"calendar": "gregorian",
		"min_date": "2024-06-01",
		"max_date": "2024-12-31",
		"first_day_of_week": 1,
		"start": "decade",
		"depth": "month",
		"week_rule": "first_four_day_week",
		"weekdays_format": "short",
		"show_other_month_days": false,
		"disable_past_days": true,
		"weekend_days": [5, 6],
		"locale": "de"
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Start != calendar.ViewDecade || cfg.Depth != calendar.ViewMonth {
		t.Errorf("views = %s/%s", cfg.Start, cfg.Depth)
	}
	if !cfg.Bounds.Min.Equal(calendar.NewDate(2024, time.June, 1)) {
		t.Errorf("min = %s", cfg.Bounds.Min)
	}
	if !cfg.Rules.DisablePast || cfg.Rules.DisableFuture {
		t.Errorf("rules = %+v", cfg.Rules)
	}
	if cfg.Options.WeekRule != calendar.WeekRuleFirstFourDayWeek {
		t.Errorf("week rule = %s", cfg.Options.WeekRule)
	}
	if cfg.Options.ShowOtherMonthDays {
		t.Error("show_other_month_days: false must stick")
	}
	want := []time.Weekday{time.Friday, time.Saturday}
	if len(cfg.Options.WeekendDays) != 2 || cfg.Options.WeekendDays[0] != want[0] || cfg.Options.WeekendDays[1] != want[1] {
		t.Errorf("weekend days = %v", cfg.Options.WeekendDays)
	}
	if cfg.Options.Locale != "de" || cfg.Options.FirstDayOfWeek != 1 {
		t.Errorf("locale/fdow = %q/%d", cfg.Options.Locale, cfg.Options.FirstDayOfWeek)
	}
}

func TestParseProfile_UnknownCalendarFailsAtConstruction(t *testing.T) {
	f := factory.NewProfileFactory()
	_, _, err := f.ParseProfile(`{"id": "x", "calendar": "lunar"}`)
	if !errors.Is(err, calendar.ErrUnsupportedCalendar) {
		t.Fatalf("err = %v, want ErrUnsupportedCalendar", err)
	}
}

func TestParseProfile_DepthCoarserThanStartRejected(t *testing.T) {
	f := factory.NewProfileFactory()
	_, _, err := f.ParseProfile(`{"id": "x", "start": "month", "depth": "year"}`)
	if !errors.Is(err, calendar.ErrInvalidDepth) {
		t.Fatalf("err = %v, want ErrInvalidDepth", err)
	}
}

func TestParseProfile_InvertedBoundsAreDataNotError(t *testing.T) {
	// GIVEN: min_date after max_date
	// WHEN: Parsing
	// THEN: Parsing succeeds and the bounds report improper

	f := factory.NewProfileFactory()
	_, cfg, err := f.ParseProfile(`{"id": "x", "min_date": "2024-06-20", "max_date": "2024-06-10"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Bounds.Improper() {
		t.Error("expected improper bounds")
	}
}

func TestParseProfile_MalformedInputsRejected(t *testing.T) {
	f := factory.NewProfileFactory()
	cases := map[string]string{
		"bad json":      `{"id": `,
		"bad date":      `{"id": "x", "min_date": "June 1st"}`,
		"bad view":      `{"id": "x", "start": "century"}`,
		"bad week rule": `{"id": "x", "week_rule": "iso"}`,
		"bad weekend":   `{"id": "x", "weekend_days": [9]}`,
	}
	for name, input := range cases {
		if _, _, err := f.ParseProfile(input); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestParseValues(t *testing.T) {
	f := factory.NewProfileFactory()
	dates, err := f.ParseValues(factory.ProfileJSON{Values: []string{"2024-06-10", "2024-06-12"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 2 || !dates[0].Equal(calendar.NewDate(2024, time.June, 10)) {
		t.Errorf("dates = %v", dates)
	}

	if _, err := f.ParseValues(factory.ProfileJSON{Values: []string{"nope"}}); err == nil {
		t.Error("invalid date must error")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	f := factory.NewProfileFactory()
	_, cfg, err := f.ParseProfile(`{
		"id": "rt", "name": "Round trip",
		"min_date": "2024-01-01", "max_date": "2024-12-31",
		"start": "year", "depth": "month",
		"multi_select": true, "locale": "fr", "first_day_of_week": 1
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pj := f.ToJSON("rt", "Round trip", cfg)
	cfg2, err := f.FromJSON(pj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg2.Start != cfg.Start || cfg2.Depth != cfg.Depth || cfg2.Multi != cfg.Multi {
		t.Errorf("round trip drifted: %+v vs %+v", cfg2, cfg)
	}
	if !cfg2.Bounds.Min.Equal(cfg.Bounds.Min) || !cfg2.Bounds.Max.Equal(cfg.Bounds.Max) {
		t.Errorf("bounds drifted")
	}
	if cfg2.Options.Locale != "fr" {
		t.Errorf("locale = %q", cfg2.Options.Locale)
	}
}
