package repository

import (
	"strconv"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/database"
)

// Setting keys used by the application.
const (
	SettingOrgName         = "org_name"
	SettingHistoryWeeks    = "history_weeks"
	SettingReportRecipient = "report_recipient_email"
)

type SettingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a setting value by key
func (r *SettingsRepository) GetSetting(key string) (string, error) {
	var value string
	query := `SELECT value FROM settings WHERE key = ?`
	err := r.db.QueryRow(query, key).Scan(&value)
	return value, err
}

// SetSetting updates or inserts a setting
func (r *SettingsRepository) SetSetting(key, value string) error {
	query := r.db.Dialect.UpsertSettingQuery()
	_, err := r.db.Exec(query, key, value)
	return err
}

// OrgName returns the organization display name shown on reports
func (r *SettingsRepository) OrgName() string {
	value, err := r.GetSetting(SettingOrgName)
	if err != nil || value == "" {
		return "주간 요회 보고"
	}
	return value
}

// HistoryWeeks returns the configured historical series length,
// falling back to the given default
func (r *SettingsRepository) HistoryWeeks(defaultWeeks int) int {
	value, err := r.GetSetting(SettingHistoryWeeks)
	if err != nil {
		return defaultWeeks
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultWeeks
	}
	return n
}

// ReportRecipient returns the email address weekly summaries are sent to,
// or empty when none is configured
func (r *SettingsRepository) ReportRecipient() string {
	value, err := r.GetSetting(SettingReportRecipient)
	if err != nil {
		return ""
	}
	return value
}
