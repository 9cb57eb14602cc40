package attendance

import (
	"testing"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/models"
)

func TestNormalizeReport(t *testing.T) {
	r := models.Report{
		ID:                     1,
		AttendedLeadersCount:   -3,
		AttendedStudentsCount:  4,
		AttendedStudentsNames:  "Kim, Lee",
		AttendedGraduatesNames: "",
	}

	normalized := NormalizeReport(r)

	if normalized.AttendedLeadersCount != 0 {
		t.Errorf("negative count should clamp to 0, got %d", normalized.AttendedLeadersCount)
	}
	if normalized.AttendedStudentsCount != 4 {
		t.Errorf("valid count changed: got %d", normalized.AttendedStudentsCount)
	}
	if normalized.AttendedGraduatesNames != NamePlaceholder {
		t.Errorf("empty names should become %q, got %q", NamePlaceholder, normalized.AttendedGraduatesNames)
	}
	if normalized.AttendedStudentsNames != "Kim, Lee" {
		t.Errorf("populated names changed: got %q", normalized.AttendedStudentsNames)
	}

	// Input untouched.
	if r.AttendedGraduatesNames != "" || r.AttendedLeadersCount != -3 {
		t.Error("NormalizeReport must not mutate its input")
	}
}

func TestNormalizeReports(t *testing.T) {
	reports := []models.Report{{ID: 1}, {ID: 2, AbsentLeadersNames: "Park"}}

	normalized := NormalizeReports(reports)

	if len(normalized) != 2 {
		t.Fatalf("got %d reports, want 2", len(normalized))
	}
	if normalized[0].AbsentLeadersNames != NamePlaceholder {
		t.Errorf("report 1 names = %q, want placeholder", normalized[0].AbsentLeadersNames)
	}
	if normalized[1].AbsentLeadersNames != "Park" {
		t.Errorf("report 2 names = %q, want Park", normalized[1].AbsentLeadersNames)
	}
}
