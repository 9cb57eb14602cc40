package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/database"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/models"
)

// ReportRepository handles database operations for weekly reports
type ReportRepository struct {
	db *database.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *database.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `id, yohoe_id, report_date,
	attended_leaders_count, absent_leaders_count,
	attended_graduates_count, attended_students_count,
	attended_freshmen_count, attended_others_count, one_to_one_count,
	COALESCE(attended_graduates_names, ''), COALESCE(attended_students_names, ''),
	COALESCE(attended_freshmen_names, ''), COALESCE(attended_others_names, ''),
	COALESCE(absent_leaders_names, ''), created_at, updated_at`

func scanReport(row interface{ Scan(...interface{}) error }) (*models.Report, error) {
	report := &models.Report{}
	err := row.Scan(
		&report.ID,
		&report.YohoeID,
		&report.ReportDate,
		&report.AttendedLeadersCount,
		&report.AbsentLeadersCount,
		&report.AttendedGraduatesCount,
		&report.AttendedStudentsCount,
		&report.AttendedFreshmenCount,
		&report.AttendedOthersCount,
		&report.OneToOneCount,
		&report.AttendedGraduatesNames,
		&report.AttendedStudentsNames,
		&report.AttendedFreshmenNames,
		&report.AttendedOthersNames,
		&report.AbsentLeadersNames,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// CreateReport inserts a new report row. Resubmitting for the same group
// and week inserts another row; the effective one is resolved at read time.
func (r *ReportRepository) CreateReport(report *models.Report) (*models.Report, error) {
	query := `
		INSERT INTO reports (
			yohoe_id, report_date,
			attended_leaders_count, absent_leaders_count,
			attended_graduates_count, attended_students_count,
			attended_freshmen_count, attended_others_count, one_to_one_count,
			attended_graduates_names, attended_students_names,
			attended_freshmen_names, attended_others_names, absent_leaders_names
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		report.YohoeID, report.ReportDate,
		report.AttendedLeadersCount, report.AbsentLeadersCount,
		report.AttendedGraduatesCount, report.AttendedStudentsCount,
		report.AttendedFreshmenCount, report.AttendedOthersCount, report.OneToOneCount,
		report.AttendedGraduatesNames, report.AttendedStudentsNames,
		report.AttendedFreshmenNames, report.AttendedOthersNames, report.AbsentLeadersNames,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	created := *report
	created.ID = id
	created.CreatedAt = time.Now()
	created.UpdatedAt = time.Now()
	return &created, nil
}

// GetReportByID retrieves a report by ID
func (r *ReportRepository) GetReportByID(id int64) (*models.Report, error) {
	query := "SELECT " + reportColumns + " FROM reports WHERE id = ?"
	report, err := scanReport(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return report, nil
}

// GetReportsByDateRange retrieves all reports whose report_date falls in
// the inclusive [start, end] range of canonical date strings.
func (r *ReportRepository) GetReportsByDateRange(start, end string) ([]models.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE report_date >= ? AND report_date <= ?
		ORDER BY report_date ASC, id ASC
	`
	return r.queryReports(query, start, end)
}

// GetAllReports retrieves every report row
func (r *ReportRepository) GetAllReports() ([]models.Report, error) {
	query := "SELECT " + reportColumns + " FROM reports ORDER BY report_date ASC, id ASC"
	return r.queryReports(query)
}

func (r *ReportRepository) queryReports(query string, args ...interface{}) ([]models.Report, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, *report)
	}

	return reports, rows.Err()
}

// UpdateReport replaces every category field of an existing report
func (r *ReportRepository) UpdateReport(report *models.Report) error {
	query := `
		UPDATE reports SET
			yohoe_id = ?, report_date = ?,
			attended_leaders_count = ?, absent_leaders_count = ?,
			attended_graduates_count = ?, attended_students_count = ?,
			attended_freshmen_count = ?, attended_others_count = ?, one_to_one_count = ?,
			attended_graduates_names = ?, attended_students_names = ?,
			attended_freshmen_names = ?, attended_others_names = ?, absent_leaders_names = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		report.YohoeID, report.ReportDate,
		report.AttendedLeadersCount, report.AbsentLeadersCount,
		report.AttendedGraduatesCount, report.AttendedStudentsCount,
		report.AttendedFreshmenCount, report.AttendedOthersCount, report.OneToOneCount,
		report.AttendedGraduatesNames, report.AttendedStudentsNames,
		report.AttendedFreshmenNames, report.AttendedOthersNames, report.AbsentLeadersNames,
		report.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	return nil
}

// DeleteReport deletes a report. No soft delete.
func (r *ReportRepository) DeleteReport(id int64) error {
	query := "DELETE FROM reports WHERE id = ?"
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}
