package models

import "time"

// Yohoe represents a congregation subgroup that submits one attendance
// report per week.
type Yohoe struct {
	ID          int64
	Name        string
	Shepherd    string
	LeaderCount int
	OrderNum    *int64 // display order, nil sorts last
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
