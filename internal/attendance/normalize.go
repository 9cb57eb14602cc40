// Package attendance turns flat yohoe and report rows into per-group weekly
// views, week totals, and historical series. Everything here is a pure
// function of its inputs: no I/O, no retained state, safe to call from any
// number of goroutines.
package attendance

import (
	"github.com/pond75jnu/AttendanceReport-sub000/internal/models"
)

// NamePlaceholder is displayed for name-list fields that were left empty.
const NamePlaceholder = "-"

// NormalizeReport fills defaults on a report row so downstream logic can
// assume fully populated records: empty name lists become the display
// placeholder and negative counts clamp to zero. The input is not mutated.
func NormalizeReport(r models.Report) models.Report {
	r.AttendedLeadersCount = clampCount(r.AttendedLeadersCount)
	r.AbsentLeadersCount = clampCount(r.AbsentLeadersCount)
	r.AttendedGraduatesCount = clampCount(r.AttendedGraduatesCount)
	r.AttendedStudentsCount = clampCount(r.AttendedStudentsCount)
	r.AttendedFreshmenCount = clampCount(r.AttendedFreshmenCount)
	r.AttendedOthersCount = clampCount(r.AttendedOthersCount)
	r.OneToOneCount = clampCount(r.OneToOneCount)

	r.AttendedGraduatesNames = orPlaceholder(r.AttendedGraduatesNames)
	r.AttendedStudentsNames = orPlaceholder(r.AttendedStudentsNames)
	r.AttendedFreshmenNames = orPlaceholder(r.AttendedFreshmenNames)
	r.AttendedOthersNames = orPlaceholder(r.AttendedOthersNames)
	r.AbsentLeadersNames = orPlaceholder(r.AbsentLeadersNames)

	return r
}

// NormalizeReports normalizes every row of a fetched snapshot.
func NormalizeReports(reports []models.Report) []models.Report {
	normalized := make([]models.Report, len(reports))
	for i, r := range reports {
		normalized[i] = NormalizeReport(r)
	}
	return normalized
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func orPlaceholder(s string) string {
	if s == "" {
		return NamePlaceholder
	}
	return s
}
