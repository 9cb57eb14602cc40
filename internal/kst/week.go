package kst

import "time"

// WeekRange is a Sunday-anchored 7-day window in the KST calendar.
// Start always equals Sunday; End is Start+6 days. All three are canonical
// day strings, so inclusive range checks can use plain string comparison.
type WeekRange struct {
	Start  string
	End    string
	Sunday string
}

// SundayOf returns the Sunday on or before the given day.
func SundayOf(day string) (string, bool) {
	t, ok := Midnight(day)
	if !ok {
		return "", false
	}
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	return sunday.Format(DayFormat), true
}

// WeekRangeOf returns the week window containing the given day.
func WeekRangeOf(day string) (WeekRange, bool) {
	sunday, ok := SundayOf(day)
	if !ok {
		return WeekRange{}, false
	}
	end, _ := AddDays(sunday, 6)
	return WeekRange{Start: sunday, End: end, Sunday: sunday}, true
}

// Contains reports whether the given canonical day falls inside the window.
func (w WeekRange) Contains(day string) bool {
	return day >= w.Start && day <= w.End
}

// AddDays shifts a canonical day by n calendar days (n may be negative).
// Exact across month and year boundaries.
func AddDays(day string, n int) (string, bool) {
	t, ok := Midnight(day)
	if !ok {
		return "", false
	}
	return t.AddDate(0, 0, n).Format(DayFormat), true
}

// AddWeeks shifts a canonical day by n weeks.
func AddWeeks(day string, n int) (string, bool) {
	return AddDays(day, n*7)
}

// IsCurrentWeek reports whether the real wall clock currently falls within
// the week starting at the given Sunday.
func IsCurrentWeek(sunday string) bool {
	return isCurrentWeekAt(sunday, time.Now())
}

func isCurrentWeekAt(sunday string, now time.Time) bool {
	start, ok := Midnight(sunday)
	if !ok {
		return false
	}
	end := start.AddDate(0, 0, 7)
	return !now.Before(start) && now.Before(end)
}
