package attendance

import (
	"testing"
	"time"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/models"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSelectEffectiveReport(t *testing.T) {
	older := models.Report{ID: 1, ReportDate: "2025-09-14", UpdatedAt: ts("2025-09-14T10:00:00Z")}
	newer := models.Report{ID: 2, ReportDate: "2025-09-14", UpdatedAt: ts("2025-09-14T12:00:00Z")}

	tests := []struct {
		name       string
		candidates []models.Report
		expectedID int64
		expectNil  bool
	}{
		{
			name:      "empty candidates",
			expectNil: true,
		},
		{
			name:       "single candidate",
			candidates: []models.Report{older},
			expectedID: 1,
		},
		{
			name:       "latest updated_at wins",
			candidates: []models.Report{older, newer},
			expectedID: 2,
		},
		{
			name:       "latest wins regardless of order",
			candidates: []models.Report{newer, older},
			expectedID: 2,
		},
		{
			name: "created_at breaks updated_at tie",
			candidates: []models.Report{
				{ID: 3, UpdatedAt: ts("2025-09-14T10:00:00Z"), CreatedAt: ts("2025-09-14T08:00:00Z")},
				{ID: 4, UpdatedAt: ts("2025-09-14T10:00:00Z"), CreatedAt: ts("2025-09-14T09:00:00Z")},
			},
			expectedID: 4,
		},
		{
			name: "report_date breaks remaining tie",
			candidates: []models.Report{
				{ID: 5, ReportDate: "2025-09-14"},
				{ID: 6, ReportDate: "2025-09-15"},
			},
			expectedID: 6,
		},
		{
			name: "missing updated_at loses to present one",
			candidates: []models.Report{
				{ID: 7, CreatedAt: ts("2025-09-14T23:00:00Z")},
				{ID: 8, UpdatedAt: ts("2025-09-14T01:00:00Z")},
			},
			expectedID: 8,
		},
		{
			name: "exact tie keeps earlier record",
			candidates: []models.Report{
				{ID: 9, ReportDate: "2025-09-14"},
				{ID: 10, ReportDate: "2025-09-14"},
			},
			expectedID: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SelectEffectiveReport(tt.candidates)
			if tt.expectNil {
				if result != nil {
					t.Fatalf("expected nil, got report %d", result.ID)
				}
				return
			}
			if result == nil {
				t.Fatal("expected a report, got nil")
			}
			if result.ID != tt.expectedID {
				t.Errorf("selected report %d, want %d", result.ID, tt.expectedID)
			}
		})
	}
}

func TestAttendeeSums(t *testing.T) {
	r := models.Report{
		AttendedLeadersCount:   5,
		AttendedGraduatesCount: 2,
		AttendedStudentsCount:  3,
		AttendedFreshmenCount:  1,
		AttendedOthersCount:    0,
	}

	if got := AttendeeSum(r); got != 11 {
		t.Errorf("AttendeeSum() = %d, want 11", got)
	}
	if got := YangSum(r); got != 6 {
		t.Errorf("YangSum() = %d, want 6", got)
	}
}

func TestLegacyAttendeeSum(t *testing.T) {
	r := models.Report{
		AbsentLeadersCount:     2,
		AttendedGraduatesCount: 2,
		AttendedStudentsCount:  3,
		AttendedFreshmenCount:  1,
		AttendedOthersCount:    4, // ignored by the legacy formula
	}

	// 7 configured leaders - 2 absent + 6 yang
	if got := LegacyAttendeeSum(r, 7); got != 11 {
		t.Errorf("LegacyAttendeeSum() = %d, want 11", got)
	}

	// Never goes negative even with inconsistent data.
	if got := LegacyAttendeeSum(models.Report{AbsentLeadersCount: 5}, 2); got != 0 {
		t.Errorf("LegacyAttendeeSum() = %d, want 0", got)
	}
}

func TestSumWeekTotals(t *testing.T) {
	t.Run("empty group list is all zero", func(t *testing.T) {
		totals := SumWeekTotals(nil, CurrentWeek, SumCurrent)
		if totals != (WeekTotals{}) {
			t.Errorf("SumWeekTotals() = %+v, want zero totals", totals)
		}
	})

	t.Run("all-nil reports contribute zero", func(t *testing.T) {
		entries := []GroupWeek{
			{Yohoe: models.Yohoe{ID: 1, LeaderCount: 5}},
			{Yohoe: models.Yohoe{ID: 2, LeaderCount: 3}},
		}
		totals := SumWeekTotals(entries, CurrentWeek, SumCurrent)
		if totals != (WeekTotals{}) {
			t.Errorf("SumWeekTotals() = %+v, want zero totals", totals)
		}
	})

	t.Run("sums across groups", func(t *testing.T) {
		r1 := models.Report{
			AttendedLeadersCount: 5, AbsentLeadersCount: 1,
			AttendedGraduatesCount: 2, AttendedStudentsCount: 3,
			AttendedFreshmenCount: 1, AttendedOthersCount: 0,
			OneToOneCount: 4,
		}
		r2 := models.Report{
			AttendedLeadersCount: 3, AbsentLeadersCount: 0,
			AttendedGraduatesCount: 1, AttendedStudentsCount: 0,
			AttendedFreshmenCount: 2, AttendedOthersCount: 1,
			OneToOneCount: 2,
		}
		entries := []GroupWeek{
			{Yohoe: models.Yohoe{ID: 1}, CurrentWeekReport: &r1},
			{Yohoe: models.Yohoe{ID: 2}, CurrentWeekReport: &r2},
			{Yohoe: models.Yohoe{ID: 3}}, // no report this week
		}

		totals := SumWeekTotals(entries, CurrentWeek, SumCurrent)
		expected := WeekTotals{
			Total:           18,
			OneToOne:        6,
			AttendedLeaders: 8,
			AbsentLeaders:   1,
			Yang:            9,
			Freshmen:        3,
			Others:          1,
		}
		if totals != expected {
			t.Errorf("SumWeekTotals() = %+v, want %+v", totals, expected)
		}
	})

	t.Run("legacy variant uses configured leader count", func(t *testing.T) {
		r := models.Report{
			AttendedLeadersCount: 5, AbsentLeadersCount: 2,
			AttendedGraduatesCount: 1, AttendedStudentsCount: 1,
			AttendedFreshmenCount: 0, AttendedOthersCount: 9,
		}
		entries := []GroupWeek{
			{Yohoe: models.Yohoe{ID: 1, LeaderCount: 10}, CurrentWeekReport: &r},
		}
		totals := SumWeekTotals(entries, CurrentWeek, SumLegacy)
		// 10 - 2 + 2 yang; others ignored by the legacy formula
		if totals.Total != 10 {
			t.Errorf("legacy Total = %d, want 10", totals.Total)
		}
	})
}

func TestBuildWeekView(t *testing.T) {
	groups := []models.Yohoe{
		{ID: 1, Name: "Abraham", CreatedAt: ts("2024-01-01T00:00:00Z")},
		{ID: 2, Name: "Sarah", CreatedAt: ts("2024-01-02T00:00:00Z")},
	}
	reports := []models.Report{
		{ID: 10, YohoeID: 1, ReportDate: "2025-09-14", UpdatedAt: ts("2025-09-14T10:00:00Z")},
		{ID: 11, YohoeID: 1, ReportDate: "2025-09-14", UpdatedAt: ts("2025-09-14T12:00:00Z")}, // resubmission
		{ID: 12, YohoeID: 1, ReportDate: "2025-09-07"},                                        // previous week
		{ID: 13, YohoeID: 2, ReportDate: "2025-09-20"},                                        // saturday, still current week
		{ID: 14, YohoeID: 2, ReportDate: "garbage"},                                           // excluded from every bucket
		{ID: 15, YohoeID: 1, ReportDate: "2025-08-31"},                                        // two weeks back, outside view
	}

	entries, ok := BuildWeekView(groups, reports, "2025-09-17")
	if !ok {
		t.Fatal("BuildWeekView() unexpectedly failed")
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	first := entries[0]
	if first.Yohoe.ID != 1 {
		t.Fatalf("first entry is group %d, want 1", first.Yohoe.ID)
	}
	if first.CurrentWeekReport == nil || first.CurrentWeekReport.ID != 11 {
		t.Errorf("group 1 current week should resolve to resubmission 11, got %+v", first.CurrentWeekReport)
	}
	if first.PreviousWeekReport == nil || first.PreviousWeekReport.ID != 12 {
		t.Errorf("group 1 previous week should be report 12, got %+v", first.PreviousWeekReport)
	}

	second := entries[1]
	if second.CurrentWeekReport == nil || second.CurrentWeekReport.ID != 13 {
		t.Errorf("group 2 current week should be report 13, got %+v", second.CurrentWeekReport)
	}
	if second.PreviousWeekReport != nil {
		t.Errorf("group 2 previous week should be nil, got %+v", second.PreviousWeekReport)
	}
}

func TestBuildWeekViewUnparseableTarget(t *testing.T) {
	if _, ok := BuildWeekView(nil, nil, "bogus"); ok {
		t.Error("BuildWeekView(bogus) should fail")
	}
}

func TestBuildHistoricalSeries(t *testing.T) {
	reports := []models.Report{
		{ID: 1, YohoeID: 1, ReportDate: "2025-09-07", AttendedLeadersCount: 3, AttendedFreshmenCount: 1, OneToOneCount: 2},
		{ID: 2, YohoeID: 1, ReportDate: "2025-09-07", AttendedStudentsCount: 2}, // same week, summed directly
		{ID: 3, YohoeID: 99, ReportDate: "2025-08-31", AttendedGraduatesCount: 4}, // orphan group still counts
		{ID: 4, YohoeID: 1, ReportDate: "bad-date"},
	}

	series := BuildHistoricalSeries(reports, "2025-09-17", 5)
	if len(series) != 5 {
		t.Fatalf("got %d entries, want 5", len(series))
	}

	for i, entry := range series {
		if entry.WeekOffset != i+1 {
			t.Errorf("entry %d has offset %d, want %d", i, entry.WeekOffset, i+1)
		}
		if i > 0 && series[i].SundayDate >= series[i-1].SundayDate {
			t.Errorf("sunday dates not strictly decreasing at entry %d", i)
		}
	}

	week1 := series[0]
	if week1.SundayDate != "2025-09-07" {
		t.Errorf("week 1 sunday = %v, want 2025-09-07", week1.SundayDate)
	}
	if week1.Total != 6 || week1.Yang != 3 || week1.Shin != 1 || week1.OneToOne != 2 {
		t.Errorf("week 1 totals = %+v", week1)
	}

	week2 := series[1]
	if week2.SundayDate != "2025-08-31" {
		t.Errorf("week 2 sunday = %v, want 2025-08-31", week2.SundayDate)
	}
	if week2.Total != 4 || week2.Yang != 4 {
		t.Errorf("orphan report should count in week 2 totals: %+v", week2)
	}

	if series[2].Total != 0 {
		t.Errorf("empty week should have zero totals: %+v", series[2])
	}
}

func TestBuildHistoricalSeriesInvalidInput(t *testing.T) {
	if got := BuildHistoricalSeries(nil, "garbage", 5); got != nil {
		t.Errorf("expected nil series for unparseable target, got %v", got)
	}
	if got := BuildHistoricalSeries(nil, "2025-09-14", 0); got != nil {
		t.Errorf("expected nil series for zero week count, got %v", got)
	}
}

func TestOrphanReportCount(t *testing.T) {
	groups := []models.Yohoe{{ID: 1}, {ID: 2}}
	reports := []models.Report{
		{ID: 1, YohoeID: 1},
		{ID: 2, YohoeID: 7},
		{ID: 3, YohoeID: 8},
	}

	if got := OrphanReportCount(groups, reports); got != 2 {
		t.Errorf("OrphanReportCount() = %d, want 2", got)
	}
	if got := OrphanReportCount(groups, nil); got != 0 {
		t.Errorf("OrphanReportCount(no reports) = %d, want 0", got)
	}
}

func TestSortYohoe(t *testing.T) {
	order := func(n int64) *int64 { return &n }
	groups := []models.Yohoe{
		{ID: 1, OrderNum: nil, CreatedAt: ts("2024-01-01T00:00:00Z")},
		{ID: 2, OrderNum: order(2), CreatedAt: ts("2024-01-02T00:00:00Z")},
		{ID: 3, OrderNum: order(1), CreatedAt: ts("2024-01-03T00:00:00Z")},
		{ID: 4, OrderNum: order(2), CreatedAt: ts("2024-01-01T00:00:00Z")},
		{ID: 5, OrderNum: nil, CreatedAt: ts("2023-12-01T00:00:00Z")},
	}

	sorted := SortYohoe(groups)

	expected := []int64{3, 4, 2, 5, 1}
	for i, g := range sorted {
		if g.ID != expected[i] {
			t.Fatalf("position %d: got group %d, want %d (order %v)", i, g.ID, expected[i], ids(sorted))
		}
	}

	// Input order untouched.
	if groups[0].ID != 1 {
		t.Error("SortYohoe must not mutate its input")
	}
}

func ids(groups []models.Yohoe) []int64 {
	out := make([]int64, len(groups))
	for i, g := range groups {
		out[i] = g.ID
	}
	return out
}
