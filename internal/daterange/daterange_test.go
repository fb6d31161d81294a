package daterange

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.Local)
}

func mustResolve(t *testing.T, r Range, today time.Time) (string, string) {
	t.Helper()
	from, to, err := Resolve(r, today)
	if err != nil {
		t.Fatalf("Resolve(%s): %v", r, err)
	}
	return from, to
}

// ============================================================
// Week ranges
// ============================================================

func TestThisWeekMidweek(t *testing.T) {
	// 2024-01-10 is a Wednesday.
	from, to := mustResolve(t, ThisWeek, date(2024, time.January, 10))
	if from != "2024-01-08" {
		t.Fatalf("from = %q, want Monday 2024-01-08", from)
	}
	if to != "2024-01-10" {
		t.Fatalf("to = %q, want today", to)
	}
}

func TestThisWeekOnSunday(t *testing.T) {
	// 2024-01-14 is a Sunday: day 6 of its week, never the start of the next.
	from, to := mustResolve(t, ThisWeek, date(2024, time.January, 14))
	if from != "2024-01-08" {
		t.Fatalf("from = %q, want 2024-01-08", from)
	}
	if to != "2024-01-14" {
		t.Fatalf("to = %q, want 2024-01-14", to)
	}
}

func TestThisWeekOnMonday(t *testing.T) {
	from, to := mustResolve(t, ThisWeek, date(2024, time.January, 8))
	if from != to || from != "2024-01-08" {
		t.Fatalf("monday should collapse to a single day, got %q..%q", from, to)
	}
}

func TestLastWeek(t *testing.T) {
	// From a Wednesday: the full Monday..Sunday span before this Monday.
	from, to := mustResolve(t, LastWeek, date(2024, time.January, 10))
	if from != "2024-01-01" {
		t.Fatalf("from = %q, want 2024-01-01", from)
	}
	if to != "2024-01-07" {
		t.Fatalf("to = %q, want 2024-01-07", to)
	}
}

func TestLastWeekAlwaysSevenDaysEndingSunday(t *testing.T) {
	// Regardless of where today falls in its week.
	for d := 8; d <= 14; d++ {
		today := date(2024, time.January, d)
		from, to := mustResolve(t, LastWeek, today)

		f, _ := time.Parse("2006-01-02", from)
		tt, _ := time.Parse("2006-01-02", to)
		if tt.Sub(f) != 6*24*time.Hour {
			t.Fatalf("today=%s: span %s..%s is not 7 days", today.Format("2006-01-02"), from, to)
		}
		if tt.Weekday() != time.Sunday {
			t.Fatalf("today=%s: to=%s is not a Sunday", today.Format("2006-01-02"), to)
		}
	}
}

// ============================================================
// Month ranges
// ============================================================

func TestThisMonth(t *testing.T) {
	from, to := mustResolve(t, ThisMonth, date(2024, time.February, 15))
	if from != "2024-02-01" || to != "2024-02-15" {
		t.Fatalf("got %q..%q", from, to)
	}
}

func TestLastMonthLeapFebruary(t *testing.T) {
	from, to := mustResolve(t, LastMonth, date(2024, time.March, 10))
	if from != "2024-02-01" {
		t.Fatalf("from = %q, want 2024-02-01", from)
	}
	if to != "2024-02-29" {
		t.Fatalf("to = %q, want leap-year 2024-02-29", to)
	}
}

func TestLastMonthYearWrap(t *testing.T) {
	from, to := mustResolve(t, LastMonth, date(2024, time.January, 15))
	if from != "2023-12-01" || to != "2023-12-31" {
		t.Fatalf("got %q..%q, want December 2023", from, to)
	}
}

func TestLast3Months(t *testing.T) {
	from, to := mustResolve(t, Last3Months, date(2024, time.January, 15))
	if from != "2023-10-01" {
		t.Fatalf("from = %q, want 2023-10-01", from)
	}
	if to != "2024-01-15" {
		t.Fatalf("to = %q, want today", to)
	}
}

// ============================================================
// Properties
// ============================================================

func TestAllSelectorsProduceOrderedValidDates(t *testing.T) {
	ranges := []Range{ThisWeek, LastWeek, ThisMonth, LastMonth, Last3Months}
	// Sweep a year of anchor days.
	day := date(2024, time.January, 1)
	for i := 0; i < 366; i++ {
		for _, r := range ranges {
			from, to := mustResolve(t, r, day)
			if _, err := time.Parse("2006-01-02", from); err != nil {
				t.Fatalf("%s on %s: bad from %q", r, day.Format("2006-01-02"), from)
			}
			if _, err := time.Parse("2006-01-02", to); err != nil {
				t.Fatalf("%s on %s: bad to %q", r, day.Format("2006-01-02"), to)
			}
			if from > to {
				t.Fatalf("%s on %s: from %q > to %q", r, day.Format("2006-01-02"), from, to)
			}
		}
		day = day.AddDate(0, 0, 1)
	}
}

func TestResolveCustomSelector(t *testing.T) {
	// Custom never goes through Resolve; it needs explicit bounds.
	if _, _, err := Resolve(Custom, date(2024, time.June, 1)); !errors.Is(err, ErrUnknownRange) {
		t.Fatalf("expected ErrUnknownRange, got %v", err)
	}
}

// ============================================================
// Custom bounds
// ============================================================

func TestResolveCustom(t *testing.T) {
	from, to, err := ResolveCustom("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatal(err)
	}
	if from != "2024-01-01" || to != "2024-01-31" {
		t.Fatalf("bounds mangled: %q..%q", from, to)
	}
}

func TestResolveCustomSameDay(t *testing.T) {
	if _, _, err := ResolveCustom("2024-01-01", "2024-01-01"); err != nil {
		t.Fatalf("equal bounds should be valid: %v", err)
	}
}

func TestResolveCustomMissingBound(t *testing.T) {
	cases := [][2]string{{"", "2024-01-31"}, {"2024-01-01", ""}, {"", ""}}
	for _, c := range cases {
		if _, _, err := ResolveCustom(c[0], c[1]); !errors.Is(err, ErrMissingBound) {
			t.Fatalf("ResolveCustom(%q, %q): expected ErrMissingBound, got %v", c[0], c[1], err)
		}
	}
}

func TestResolveCustomInverted(t *testing.T) {
	if _, _, err := ResolveCustom("2024-02-01", "2024-01-31"); !errors.Is(err, ErrInvertedSpan) {
		t.Fatalf("expected ErrInvertedSpan, got %v", err)
	}
}

func TestResolveCustomBadFormat(t *testing.T) {
	cases := [][2]string{
		{"01/01/2024", "2024-01-31"},
		{"2024-01-01", "31-01-2024"},
		{"2024-1-1", "2024-01-31"},
	}
	for _, c := range cases {
		if _, _, err := ResolveCustom(c[0], c[1]); !errors.Is(err, ErrBadDate) {
			t.Fatalf("ResolveCustom(%q, %q): expected ErrBadDate, got %v", c[0], c[1], err)
		}
	}
}
