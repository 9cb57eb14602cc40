package models

import "time"

// WeeklyTheme is the free-text caption shown on a week's report.
// Keyed by the week's Sunday date; absence is valid and renders as a
// placeholder.
type WeeklyTheme struct {
	ID        int64
	WeekDate  string // the week's Sunday, YYYY-MM-DD
	Theme     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
