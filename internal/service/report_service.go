package service

import (
	"errors"
	"fmt"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/attendance"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/kst"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/models"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/repository"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/validation"
)

var (
	ErrInvalidDate    = errors.New("invalid report date")
	ErrYohoeNotFound  = errors.New("yohoe not found")
	ErrReportNotFound = errors.New("report not found")
)

// ThemePlaceholder is displayed when no theme is set for a week.
const ThemePlaceholder = "-"

// DashboardView is everything one dashboard render needs, computed from a
// single snapshot fetch. The target week is always an explicit parameter;
// nothing here reads an ambient "current view date".
type DashboardView struct {
	Week          kst.WeekRange
	PreviousWeek  kst.WeekRange
	IsCurrentWeek bool
	Theme         string

	Entries        []attendance.GroupWeek
	CurrentTotals  attendance.WeekTotals
	PreviousTotals attendance.WeekTotals
	History        []attendance.HistoryEntry

	// OrphanReports counts fetched reports referencing a deleted group.
	// Surfaced as a diagnostic, not an error.
	OrphanReports int
}

// ReportService handles report CRUD and dashboard aggregation
type ReportService struct {
	reportRepo   *repository.ReportRepository
	yohoeRepo    *repository.YohoeRepository
	themeRepo    *repository.ThemeRepository
	settingsRepo *repository.SettingsRepository
	historyWeeks int
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo *repository.ReportRepository,
	yohoeRepo *repository.YohoeRepository,
	themeRepo *repository.ThemeRepository,
	settingsRepo *repository.SettingsRepository,
	historyWeeks int,
) *ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		yohoeRepo:    yohoeRepo,
		themeRepo:    themeRepo,
		settingsRepo: settingsRepo,
		historyWeeks: historyWeeks,
	}
}

// BuildDashboard fetches one snapshot and aggregates the week view, totals
// and historical series for the week containing targetDate.
func (s *ReportService) BuildDashboard(targetDate string) (*DashboardView, error) {
	day, ok := kst.NormalizeDay(targetDate)
	if !ok {
		return nil, ErrInvalidDate
	}

	week, _ := kst.WeekRangeOf(day)
	prevSunday, _ := kst.AddWeeks(week.Sunday, -1)
	previous, _ := kst.WeekRangeOf(prevSunday)

	historyWeeks := s.settingsRepo.HistoryWeeks(s.historyWeeks)

	// One fetch covers the displayed weeks and the historical window.
	fetchStart, _ := kst.AddWeeks(week.Sunday, -historyWeeks)
	reports, err := s.reportRepo.GetReportsByDateRange(fetchStart, week.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}

	groups, err := s.yohoeRepo.GetAllYohoe()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch yohoe groups: %w", err)
	}

	entries, _ := attendance.BuildWeekView(groups, reports, day)

	view := &DashboardView{
		Week:           week,
		PreviousWeek:   previous,
		IsCurrentWeek:  kst.IsCurrentWeek(week.Sunday),
		Theme:          ThemePlaceholder,
		Entries:        entries,
		CurrentTotals:  attendance.SumWeekTotals(entries, attendance.CurrentWeek, attendance.SumCurrent),
		PreviousTotals: attendance.SumWeekTotals(entries, attendance.PreviousWeek, attendance.SumCurrent),
		History:        attendance.BuildHistoricalSeries(reports, day, historyWeeks),
		OrphanReports:  attendance.OrphanReportCount(groups, reports),
	}

	theme, err := s.themeRepo.GetThemeByWeek(week.Sunday)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weekly theme: %w", err)
	}
	if theme != nil && theme.Theme != "" {
		view.Theme = theme.Theme
	}

	return view, nil
}

// CreateReport validates and stores a new report submission
func (s *ReportService) CreateReport(report *models.Report) (*models.Report, error) {
	if err := s.validateReport(report); err != nil {
		return nil, err
	}

	yohoe, err := s.yohoeRepo.GetYohoeByID(report.YohoeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check yohoe: %w", err)
	}
	if yohoe == nil {
		return nil, ErrYohoeNotFound
	}

	return s.reportRepo.CreateReport(report)
}

// GetReport retrieves one report
func (s *ReportService) GetReport(id int64) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

// UpdateReport validates and fully replaces a report's category fields
func (s *ReportService) UpdateReport(report *models.Report) error {
	if err := s.validateReport(report); err != nil {
		return err
	}

	existing, err := s.reportRepo.GetReportByID(report.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrReportNotFound
	}

	return s.reportRepo.UpdateReport(report)
}

// DeleteReport removes a report
func (s *ReportService) DeleteReport(id int64) error {
	return s.reportRepo.DeleteReport(id)
}

// SetWeeklyTheme upserts the theme for the week containing targetDate
func (s *ReportService) SetWeeklyTheme(targetDate, theme string) error {
	if err := validation.ValidateTheme(theme); err != nil {
		return err
	}

	sunday, ok := kst.SundayOf(targetDate)
	if !ok {
		return ErrInvalidDate
	}
	return s.themeRepo.UpsertTheme(sunday, theme)
}

// validateReport normalizes the report date to its canonical form and
// checks the count fields.
func (s *ReportService) validateReport(report *models.Report) error {
	day, ok := kst.NormalizeDay(report.ReportDate)
	if !ok {
		return ErrInvalidDate
	}
	report.ReportDate = day

	counts := map[string]int{
		"attended_leaders_count":   report.AttendedLeadersCount,
		"absent_leaders_count":     report.AbsentLeadersCount,
		"attended_graduates_count": report.AttendedGraduatesCount,
		"attended_students_count":  report.AttendedStudentsCount,
		"attended_freshmen_count":  report.AttendedFreshmenCount,
		"attended_others_count":    report.AttendedOthersCount,
		"one_to_one_count":         report.OneToOneCount,
	}
	for field, n := range counts {
		if err := validation.ValidateCount(field, n); err != nil {
			return err
		}
	}
	return nil
}
