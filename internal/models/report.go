package models

import "time"

// Report represents a single weekly attendance submission for a yohoe.
// Resubmission for the same week inserts a new row; the effective report
// is resolved at read time by the attendance package.
type Report struct {
	ID      int64
	YohoeID int64

	// ReportDate is the calendar day the report covers, canonically
	// YYYY-MM-DD. By convention it is the week's Sunday, but that is not
	// enforced at input time.
	ReportDate string

	AttendedLeadersCount   int
	AbsentLeadersCount     int
	AttendedGraduatesCount int
	AttendedStudentsCount  int
	AttendedFreshmenCount  int
	AttendedOthersCount    int
	OneToOneCount          int

	AttendedGraduatesNames string
	AttendedStudentsNames  string
	AttendedFreshmenNames  string
	AttendedOthersNames    string
	AbsentLeadersNames     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
