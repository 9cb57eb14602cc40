package repository

import (
	"database/sql"
	"fmt"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/database"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/models"
)

// ThemeRepository handles database operations for weekly themes
type ThemeRepository struct {
	db *database.DB
}

// NewThemeRepository creates a new theme repository
func NewThemeRepository(db *database.DB) *ThemeRepository {
	return &ThemeRepository{db: db}
}

// GetThemeByWeek retrieves the theme for a week's Sunday date.
// Returns nil when no theme was set; callers render a placeholder.
func (r *ThemeRepository) GetThemeByWeek(weekDate string) (*models.WeeklyTheme, error) {
	query := `
		SELECT id, week_date, theme, created_at, updated_at
		FROM weekly_themes
		WHERE week_date = ?
	`
	theme := &models.WeeklyTheme{}
	err := r.db.QueryRow(query, weekDate).Scan(
		&theme.ID,
		&theme.WeekDate,
		&theme.Theme,
		&theme.CreatedAt,
		&theme.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly theme: %w", err)
	}

	return theme, nil
}

// UpsertTheme inserts or replaces the theme for a week, keyed by the
// week's Sunday date.
func (r *ThemeRepository) UpsertTheme(weekDate, theme string) error {
	query := r.db.Dialect.UpsertThemeQuery()
	_, err := r.db.Exec(query, weekDate, theme)
	if err != nil {
		return fmt.Errorf("failed to upsert weekly theme: %w", err)
	}
	return nil
}

// GetAllThemes retrieves every stored theme, newest week first
func (r *ThemeRepository) GetAllThemes() ([]models.WeeklyTheme, error) {
	query := `
		SELECT id, week_date, theme, created_at, updated_at
		FROM weekly_themes
		ORDER BY week_date DESC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly themes: %w", err)
	}
	defer rows.Close()

	var themes []models.WeeklyTheme
	for rows.Next() {
		var theme models.WeeklyTheme
		if err := rows.Scan(
			&theme.ID,
			&theme.WeekDate,
			&theme.Theme,
			&theme.CreatedAt,
			&theme.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan weekly theme: %w", err)
		}
		themes = append(themes, theme)
	}

	return themes, rows.Err()
}
