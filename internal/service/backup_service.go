package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string        `json:"version"`
	ExportedAt   time.Time     `json:"exported_at"`
	Users        []UserBackup  `json:"users"`
	Yohoe        []YohoeBackup `json:"yohoe"`
	Reports      []ReportBackup `json:"reports"`
	WeeklyThemes []ThemeBackup `json:"weekly_themes"`
	Settings     []SettingBackup `json:"settings"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider,omitempty"`
	OAuthSubject  string    `json:"oauth_subject,omitempty"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
}

// YohoeBackup represents a yohoe group record for backup
type YohoeBackup struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Shepherd    string    `json:"shepherd"`
	LeaderCount int       `json:"leader_count"`
	OrderNum    *int64    `json:"order_num"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReportBackup represents a report record for backup
type ReportBackup struct {
	ID                     int64     `json:"id"`
	YohoeID                int64     `json:"yohoe_id"`
	ReportDate             string    `json:"report_date"`
	AttendedLeadersCount   int       `json:"attended_leaders_count"`
	AbsentLeadersCount     int       `json:"absent_leaders_count"`
	AttendedGraduatesCount int       `json:"attended_graduates_count"`
	AttendedStudentsCount  int       `json:"attended_students_count"`
	AttendedFreshmenCount  int       `json:"attended_freshmen_count"`
	AttendedOthersCount    int       `json:"attended_others_count"`
	OneToOneCount          int       `json:"one_to_one_count"`
	AttendedGraduatesNames string    `json:"attended_graduates_names"`
	AttendedStudentsNames  string    `json:"attended_students_names"`
	AttendedFreshmenNames  string    `json:"attended_freshmen_names"`
	AttendedOthersNames    string    `json:"attended_others_names"`
	AbsentLeadersNames     string    `json:"absent_leaders_names"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// ThemeBackup represents a weekly theme record for backup
type ThemeBackup struct {
	WeekDate string `json:"week_date"`
	Theme    string `json:"theme"`
}

// SettingBackup represents a settings row for backup
type SettingBackup struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BackupService exports and imports the full database as JSON
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup to the given path
func (s *BackupService) Export(outputPath string) error {
	backup := BackupData{
		Version:    "1",
		ExportedAt: time.Now(),
	}

	var err error
	if backup.Users, err = s.exportUsers(); err != nil {
		return err
	}
	if backup.Yohoe, err = s.exportYohoe(); err != nil {
		return err
	}
	if backup.Reports, err = s.exportReports(); err != nil {
		return err
	}
	if backup.WeeklyThemes, err = s.exportThemes(); err != nil {
		return err
	}
	if backup.Settings, err = s.exportSettings(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// Import restores a backup file. When clear is true all existing rows are
// removed first.
func (s *BackupService) Import(inputPath string, clear bool) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("failed to parse backup file: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if clear {
		for _, table := range []string{"reports", "weekly_themes", "yohoe", "sessions", "users", "settings"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
		}
	}

	for _, u := range backup.Users {
		_, err := tx.Exec(
			"INSERT INTO users (id, email, password_hash, name, oauth_provider, oauth_subject, is_admin, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			u.ID, u.Email, u.PasswordHash, u.Name, u.OAuthProvider, u.OAuthSubject, u.IsAdmin, u.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}

	for _, y := range backup.Yohoe {
		var orderArg interface{}
		if y.OrderNum != nil {
			orderArg = *y.OrderNum
		}
		_, err := tx.Exec(
			"INSERT INTO yohoe (id, name, shepherd, leader_count, order_num, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			y.ID, y.Name, y.Shepherd, y.LeaderCount, orderArg, y.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import yohoe %d: %w", y.ID, err)
		}
	}

	for _, r := range backup.Reports {
		_, err := tx.Exec(
			`INSERT INTO reports (
				id, yohoe_id, report_date,
				attended_leaders_count, absent_leaders_count,
				attended_graduates_count, attended_students_count,
				attended_freshmen_count, attended_others_count, one_to_one_count,
				attended_graduates_names, attended_students_names,
				attended_freshmen_names, attended_others_names, absent_leaders_names,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.YohoeID, r.ReportDate,
			r.AttendedLeadersCount, r.AbsentLeadersCount,
			r.AttendedGraduatesCount, r.AttendedStudentsCount,
			r.AttendedFreshmenCount, r.AttendedOthersCount, r.OneToOneCount,
			r.AttendedGraduatesNames, r.AttendedStudentsNames,
			r.AttendedFreshmenNames, r.AttendedOthersNames, r.AbsentLeadersNames,
			r.CreatedAt, r.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import report %d: %w", r.ID, err)
		}
	}

	for _, th := range backup.WeeklyThemes {
		_, err := tx.Exec(
			"INSERT INTO weekly_themes (week_date, theme) VALUES (?, ?)",
			th.WeekDate, th.Theme,
		)
		if err != nil {
			return fmt.Errorf("failed to import theme for %s: %w", th.WeekDate, err)
		}
	}

	for _, st := range backup.Settings {
		if _, err := tx.Exec(tx.GetDialect().UpsertSettingQuery(), st.Key, st.Value); err != nil {
			return fmt.Errorf("failed to import setting %s: %w", st.Key, err)
		}
	}

	return tx.Commit()
}

func (s *BackupService) exportUsers() ([]UserBackup, error) {
	rows, err := s.db.Query("SELECT id, email, password_hash, name, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), is_admin, created_at FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	defer rows.Close()

	var users []UserBackup
	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.OAuthProvider, &u.OAuthSubject, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *BackupService) exportYohoe() ([]YohoeBackup, error) {
	rows, err := s.db.Query("SELECT id, name, shepherd, leader_count, order_num, created_at FROM yohoe ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to export yohoe: %w", err)
	}
	defer rows.Close()

	var groups []YohoeBackup
	for rows.Next() {
		var y YohoeBackup
		var orderNum sql.NullInt64
		if err := rows.Scan(&y.ID, &y.Name, &y.Shepherd, &y.LeaderCount, &orderNum, &y.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan yohoe: %w", err)
		}
		if orderNum.Valid {
			y.OrderNum = &orderNum.Int64
		}
		groups = append(groups, y)
	}
	return groups, rows.Err()
}

func (s *BackupService) exportReports() ([]ReportBackup, error) {
	rows, err := s.db.Query(`
		SELECT id, yohoe_id, report_date,
			attended_leaders_count, absent_leaders_count,
			attended_graduates_count, attended_students_count,
			attended_freshmen_count, attended_others_count, one_to_one_count,
			COALESCE(attended_graduates_names, ''), COALESCE(attended_students_names, ''),
			COALESCE(attended_freshmen_names, ''), COALESCE(attended_others_names, ''),
			COALESCE(absent_leaders_names, ''), created_at, updated_at
		FROM reports ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to export reports: %w", err)
	}
	defer rows.Close()

	var reports []ReportBackup
	for rows.Next() {
		var r ReportBackup
		if err := rows.Scan(
			&r.ID, &r.YohoeID, &r.ReportDate,
			&r.AttendedLeadersCount, &r.AbsentLeadersCount,
			&r.AttendedGraduatesCount, &r.AttendedStudentsCount,
			&r.AttendedFreshmenCount, &r.AttendedOthersCount, &r.OneToOneCount,
			&r.AttendedGraduatesNames, &r.AttendedStudentsNames,
			&r.AttendedFreshmenNames, &r.AttendedOthersNames, &r.AbsentLeadersNames,
			&r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (s *BackupService) exportThemes() ([]ThemeBackup, error) {
	rows, err := s.db.Query("SELECT week_date, theme FROM weekly_themes ORDER BY week_date")
	if err != nil {
		return nil, fmt.Errorf("failed to export themes: %w", err)
	}
	defer rows.Close()

	var themes []ThemeBackup
	for rows.Next() {
		var th ThemeBackup
		if err := rows.Scan(&th.WeekDate, &th.Theme); err != nil {
			return nil, fmt.Errorf("failed to scan theme: %w", err)
		}
		themes = append(themes, th)
	}
	return themes, rows.Err()
}

func (s *BackupService) exportSettings() ([]SettingBackup, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to export settings: %w", err)
	}
	defer rows.Close()

	var settings []SettingBackup
	for rows.Next() {
		var st SettingBackup
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}
