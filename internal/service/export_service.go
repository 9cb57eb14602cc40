package service

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/attendance"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/repository"
)

// ExportService renders a dashboard view into an Excel workbook
type ExportService struct {
	settingsRepo *repository.SettingsRepository
}

// NewExportService creates a new export service
func NewExportService(settingsRepo *repository.SettingsRepository) *ExportService {
	return &ExportService{settingsRepo: settingsRepo}
}

const (
	sheetReport  = "주간보고"
	sheetHistory = "주별현황"
)

var reportHeader = []string{
	"요회", "목자", "리더 참석", "리더 결석", "졸업생", "재학생", "신입생", "기타", "1:1", "양", "합계",
}

var historyHeader = []string{"주", "날짜", "합계", "1:1", "리더 참석", "리더 결석", "양", "신입생"}

// WriteWorkbook renders the weekly report for a dashboard view as an .xlsx
// to the given writer.
func (s *ExportService) WriteWorkbook(view *DashboardView, w io.Writer) error {
	f, err := s.buildWorkbook(view)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (s *ExportService) buildWorkbook(view *DashboardView) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetReport); err != nil {
		return nil, fmt.Errorf("failed to name report sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	// Title, week range and theme
	if err := f.MergeCell(sheetReport, "A1", "K1"); err != nil {
		return nil, fmt.Errorf("failed to merge title cells: %w", err)
	}
	f.SetCellValue(sheetReport, "A1", s.settingsRepo.OrgName())
	f.SetCellStyle(sheetReport, "A1", "K1", titleStyle)
	f.SetRowHeight(sheetReport, 1, 28)

	f.SetCellValue(sheetReport, "A2", fmt.Sprintf("%s ~ %s", view.Week.Start, view.Week.End))
	f.SetCellValue(sheetReport, "A3", "주제: "+view.Theme)

	// Table header
	headerRow := 5
	for i, h := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheetReport, cell, h)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(reportHeader), headerRow)
	f.SetCellStyle(sheetReport, first, last, headerStyle)

	// One row per group; groups without a report this week render dashes
	row := headerRow
	for _, entry := range view.Entries {
		row++
		values := groupRow(entry)
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheetReport, cell, v)
		}
	}

	// Totals row
	row++
	totals := view.CurrentTotals
	totalValues := []interface{}{
		"합계", "",
		totals.AttendedLeaders, totals.AbsentLeaders,
		"", "", totals.Freshmen, totals.Others,
		totals.OneToOne, totals.Yang, totals.Total,
	}
	for i, v := range totalValues {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheetReport, cell, v)
	}

	bodyFirst, _ := excelize.CoordinatesToCellName(1, headerRow+1)
	bodyLast, _ := excelize.CoordinatesToCellName(len(reportHeader), row)
	f.SetCellStyle(sheetReport, bodyFirst, bodyLast, cellStyle)

	f.SetColWidth(sheetReport, "A", "B", 14)
	f.SetColWidth(sheetReport, "C", "K", 9)

	if err := s.addHistorySheet(f, view, headerStyle, cellStyle); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *ExportService) addHistorySheet(f *excelize.File, view *DashboardView, headerStyle, cellStyle int) error {
	if _, err := f.NewSheet(sheetHistory); err != nil {
		return fmt.Errorf("failed to create history sheet: %w", err)
	}

	for i, h := range historyHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetHistory, cell, h)
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(historyHeader), 1)
	f.SetCellStyle(sheetHistory, first, last, headerStyle)

	for i, entry := range view.History {
		values := []interface{}{
			fmt.Sprintf("%d주 전", entry.WeekOffset),
			entry.SundayDate,
			entry.Total,
			entry.OneToOne,
			entry.AttendedLeaders,
			entry.AbsentLeaders,
			entry.Yang,
			entry.Shin,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheetHistory, cell, v)
		}
	}

	if len(view.History) > 0 {
		bodyFirst, _ := excelize.CoordinatesToCellName(1, 2)
		bodyLast, _ := excelize.CoordinatesToCellName(len(historyHeader), len(view.History)+1)
		f.SetCellStyle(sheetHistory, bodyFirst, bodyLast, cellStyle)
	}

	f.SetColWidth(sheetHistory, "A", "B", 12)
	return nil
}

func groupRow(entry attendance.GroupWeek) []interface{} {
	r := entry.CurrentWeekReport
	if r == nil {
		return []interface{}{
			entry.Yohoe.Name, entry.Yohoe.Shepherd,
			"-", "-", "-", "-", "-", "-", "-", "-", "-",
		}
	}
	return []interface{}{
		entry.Yohoe.Name, entry.Yohoe.Shepherd,
		r.AttendedLeadersCount, r.AbsentLeadersCount,
		r.AttendedGraduatesCount, r.AttendedStudentsCount,
		r.AttendedFreshmenCount, r.AttendedOthersCount,
		r.OneToOneCount,
		attendance.YangSum(*r),
		attendance.AttendeeSum(*r),
	}
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
}
