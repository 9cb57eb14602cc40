package kst

import (
	"testing"
	"time"
)

func TestSundayOf(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "wednesday resolves to preceding sunday",
			input:    "2025-09-17",
			expected: "2025-09-14",
		},
		{
			name:     "sunday resolves to itself",
			input:    "2025-09-14",
			expected: "2025-09-14",
		},
		{
			name:     "saturday resolves to start of same week",
			input:    "2025-09-20",
			expected: "2025-09-14",
		},
		{
			name:     "crosses a month boundary",
			input:    "2025-09-02",
			expected: "2025-08-31",
		},
		{
			name:     "crosses a year boundary",
			input:    "2025-01-03",
			expected: "2024-12-29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := SundayOf(tt.input)
			if !ok {
				t.Fatalf("SundayOf(%q) unexpectedly failed", tt.input)
			}
			if result != tt.expected {
				t.Errorf("SundayOf(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSundayOfIdempotent(t *testing.T) {
	days := []string{"2025-09-17", "2025-01-01", "2024-02-29", "2025-12-31"}
	for _, day := range days {
		once, ok := SundayOf(day)
		if !ok {
			t.Fatalf("SundayOf(%q) unexpectedly failed", day)
		}
		twice, _ := SundayOf(once)
		if once != twice {
			t.Errorf("SundayOf not idempotent for %q: %v then %v", day, once, twice)
		}
	}
}

func TestSundayOfUnparseable(t *testing.T) {
	if _, ok := SundayOf("not-a-date"); ok {
		t.Error("SundayOf(not-a-date) should fail")
	}
}

func TestWeekRangeOf(t *testing.T) {
	rng, ok := WeekRangeOf("2025-09-14")
	if !ok {
		t.Fatal("WeekRangeOf() unexpectedly failed")
	}

	expected := WeekRange{Start: "2025-09-14", End: "2025-09-20", Sunday: "2025-09-14"}
	if rng != expected {
		t.Errorf("WeekRangeOf() = %+v, want %+v", rng, expected)
	}

	if rng.Start != rng.Sunday {
		t.Error("week start must equal sunday")
	}
}

func TestWeekRangeContains(t *testing.T) {
	rng, _ := WeekRangeOf("2025-09-17")

	tests := []struct {
		day      string
		expected bool
	}{
		{"2025-09-14", true},
		{"2025-09-17", true},
		{"2025-09-20", true},
		{"2025-09-13", false},
		{"2025-09-21", false},
	}

	for _, tt := range tests {
		if got := rng.Contains(tt.day); got != tt.expected {
			t.Errorf("Contains(%q) = %v, want %v", tt.day, got, tt.expected)
		}
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"forward within month", "2025-09-14", 6, "2025-09-20"},
		{"backward across month boundary", "2025-09-03", -7, "2025-08-27"},
		{"forward across year boundary", "2025-12-29", 7, "2026-01-05"},
		{"across leap day", "2024-02-28", 2, "2024-03-01"},
		{"zero days", "2025-09-14", 0, "2025-09-14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := AddDays(tt.input, tt.n)
			if !ok {
				t.Fatalf("AddDays(%q, %d) unexpectedly failed", tt.input, tt.n)
			}
			if result != tt.expected {
				t.Errorf("AddDays(%q, %d) = %v, want %v", tt.input, tt.n, result, tt.expected)
			}
		})
	}
}

func TestAddDaysRoundTrip(t *testing.T) {
	day := "2025-09-14"
	for _, n := range []int{1, 6, 7, 30, 365, -1, -7, -100} {
		shifted, ok := AddDays(day, n)
		if !ok {
			t.Fatalf("AddDays(%q, %d) unexpectedly failed", day, n)
		}
		back, _ := AddDays(shifted, -n)
		if back != day {
			t.Errorf("AddDays round trip failed for n=%d: got %v", n, back)
		}
	}
}

func TestAddWeeks(t *testing.T) {
	result, ok := AddWeeks("2025-09-14", -2)
	if !ok {
		t.Fatal("AddWeeks() unexpectedly failed")
	}
	if result != "2025-08-31" {
		t.Errorf("AddWeeks(-2) = %v, want 2025-08-31", result)
	}
}

func TestIsCurrentWeekAt(t *testing.T) {
	sunday := "2025-09-14"
	start, _ := Midnight(sunday)

	tests := []struct {
		name     string
		now      time.Time
		expected bool
	}{
		{"start of the week", start, true},
		{"middle of the week", start.AddDate(0, 0, 3), true},
		{"last instant of saturday", start.AddDate(0, 0, 7).Add(-time.Second), true},
		{"next sunday midnight excluded", start.AddDate(0, 0, 7), false},
		{"before the week", start.Add(-time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isCurrentWeekAt(sunday, tt.now); got != tt.expected {
				t.Errorf("isCurrentWeekAt(%v) = %v, want %v", tt.now, got, tt.expected)
			}
		})
	}
}
