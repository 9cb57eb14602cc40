package attendance

import (
	"github.com/pond75jnu/AttendanceReport-sub000/internal/models"
)

// AttendeeSum is the current attendee total for a report: attended leaders
// plus every attendee category.
func AttendeeSum(r models.Report) int {
	return r.AttendedLeadersCount +
		r.AttendedGraduatesCount +
		r.AttendedStudentsCount +
		r.AttendedFreshmenCount +
		r.AttendedOthersCount
}

// LegacyAttendeeSum is the older total formula still used by some report
// layouts: the group's configured leader count minus absentees, plus the
// yang categories. It ignores the others category. The two formulas are
// intentionally kept as separate named variants; callers must pick one.
func LegacyAttendeeSum(r models.Report, leaderCount int) int {
	sum := leaderCount - r.AbsentLeadersCount +
		r.AttendedGraduatesCount +
		r.AttendedStudentsCount +
		r.AttendedFreshmenCount
	if sum < 0 {
		return 0
	}
	return sum
}

// YangSum counts the yang categories: graduates, students and freshmen.
// Leaders and others are excluded.
func YangSum(r models.Report) int {
	return r.AttendedGraduatesCount +
		r.AttendedStudentsCount +
		r.AttendedFreshmenCount
}
