package kst

import (
	"testing"
	"time"
)

func TestNormalizeDay(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:     "canonical string is authoritative",
			input:    "2025-09-14",
			expected: "2025-09-14",
			ok:       true,
		},
		{
			name:     "date prefix is not re-shifted",
			input:    "2025-09-14T23:30:00Z",
			expected: "2025-09-14",
			ok:       true,
		},
		{
			name:     "impossible calendar date rejected",
			input:    "2025-02-30",
			ok:       false,
		},
		{
			name:     "unix milliseconds shifted into KST",
			input:    "1757808000000", // 2025-09-14 00:00:00 UTC -> 09:00 KST
			expected: "2025-09-14",
			ok:       true,
		},
		{
			name:  "empty string",
			input: "",
			ok:    false,
		},
		{
			name:  "garbage string",
			input: "not-a-date",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := NormalizeDay(tt.input)
			if ok != tt.ok {
				t.Fatalf("NormalizeDay(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && result != tt.expected {
				t.Errorf("NormalizeDay(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeDayIdempotent(t *testing.T) {
	days := []string{"2025-01-01", "2025-09-14", "2024-02-29", "2025-12-31"}
	for _, day := range days {
		once, ok := NormalizeDay(day)
		if !ok {
			t.Fatalf("NormalizeDay(%q) unexpectedly failed", day)
		}
		twice, _ := NormalizeDay(once)
		if once != twice {
			t.Errorf("NormalizeDay not idempotent for %q: %v then %v", day, once, twice)
		}
	}
}

func TestDayShiftsAcrossUTCMidnight(t *testing.T) {
	// 16:00 UTC is already the next calendar day in KST (+9).
	instant := time.Date(2025, 9, 13, 16, 0, 0, 0, time.UTC)
	day, ok := Day(instant)
	if !ok {
		t.Fatal("Day() unexpectedly failed")
	}
	if day != "2025-09-14" {
		t.Errorf("Day() = %v, want 2025-09-14", day)
	}
}

func TestDayZeroTime(t *testing.T) {
	if _, ok := Day(time.Time{}); ok {
		t.Error("Day(zero time) should report unparseable")
	}
}

func TestParts(t *testing.T) {
	year, month, dom, ok := Parts("2025-09-14")
	if !ok {
		t.Fatal("Parts() unexpectedly failed")
	}
	if year != 2025 || month != 9 || dom != 14 {
		t.Errorf("Parts() = %d-%d-%d, want 2025-9-14", year, month, dom)
	}

	if _, _, _, ok := Parts("bogus"); ok {
		t.Error("Parts(bogus) should fail")
	}
}

func TestMidnight(t *testing.T) {
	instant, ok := Midnight("2025-09-14")
	if !ok {
		t.Fatal("Midnight() unexpectedly failed")
	}

	if instant.Hour() != 0 || instant.Minute() != 0 {
		t.Errorf("Midnight() not at start of day: %v", instant)
	}

	// 00:00 KST is 15:00 UTC the previous day.
	utc := instant.UTC()
	if utc.Day() != 13 || utc.Hour() != 15 {
		t.Errorf("Midnight() in UTC = %v, want 2025-09-13 15:00", utc)
	}
}
