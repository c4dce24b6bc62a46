package dateutil

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-03-14")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(date(2025, time.March, 14)) {
			t.Errorf("got %v, want 2025-03-14", got)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !SameDay(got, time.Now()) {
			t.Errorf("got %v, want today", got)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		if _, err := ParseDate("14/03/2025"); err != ErrInvalidDateFormat {
			t.Errorf("got %v, want ErrInvalidDateFormat", err)
		}
	})
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("06:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h != 6 || m != 30 {
		t.Errorf("got %d:%d, want 6:30", h, m)
	}

	if _, _, err := ParseClock("6:30am"); err != ErrInvalidClockFormat {
		t.Errorf("got %v, want ErrInvalidClockFormat", err)
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"wednesday", date(2025, time.January, 15), date(2025, time.January, 13)},
		{"monday is identity", date(2025, time.January, 13), date(2025, time.January, 13)},
		{"sunday belongs to preceding monday", date(2025, time.January, 19), date(2025, time.January, 13)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.in); !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthGridRange(t *testing.T) {
	t.Run("february 2025 spans five whole weeks", func(t *testing.T) {
		first, last := MonthGridRange(date(2025, time.February, 10))
		if !first.Equal(date(2025, time.January, 27)) {
			t.Errorf("first = %v, want 2025-01-27", first)
		}
		if !last.Equal(date(2025, time.March, 2)) {
			t.Errorf("last = %v, want 2025-03-02", last)
		}
		if days := int(last.Sub(first).Hours()/24) + 1; days != 35 {
			t.Errorf("grid covers %d days, want 35", days)
		}
	})

	t.Run("august 2025 needs six weeks", func(t *testing.T) {
		first, last := MonthGridRange(date(2025, time.August, 1))
		if days := int(last.Sub(first).Hours()/24) + 1; days != 42 {
			t.Errorf("grid covers %d days, want 42", days)
		}
	})
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"mid-month forward", date(2025, time.March, 12), 1, date(2025, time.April, 12)},
		{"mid-month back", date(2025, time.March, 12), -1, date(2025, time.February, 12)},
		{"jan 31 clamps to feb 28", date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{"jan 31 clamps to feb 29 in leap years", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"mar 31 back clamps to feb 28", date(2025, time.March, 31), -1, date(2025, time.February, 28)},
		{"dec 31 crosses the year", date(2024, time.December, 31), 1, date(2025, time.January, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonths(tt.in, tt.n); !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAtClock(t *testing.T) {
	got := AtClock(date(2025, time.June, 2), 14, 45)
	want := time.Date(2025, time.June, 2, 14, 45, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
