package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/database"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/models"
)

// YohoeRepository handles database operations for yohoe groups
type YohoeRepository struct {
	db *database.DB
}

// NewYohoeRepository creates a new yohoe repository
func NewYohoeRepository(db *database.DB) *YohoeRepository {
	return &YohoeRepository{db: db}
}

const yohoeColumns = "id, name, shepherd, leader_count, order_num, created_at, updated_at"

func scanYohoe(row interface{ Scan(...interface{}) error }) (*models.Yohoe, error) {
	yohoe := &models.Yohoe{}
	var orderNum sql.NullInt64
	err := row.Scan(
		&yohoe.ID,
		&yohoe.Name,
		&yohoe.Shepherd,
		&yohoe.LeaderCount,
		&orderNum,
		&yohoe.CreatedAt,
		&yohoe.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if orderNum.Valid {
		yohoe.OrderNum = &orderNum.Int64
	}
	return yohoe, nil
}

// CreateYohoe creates a new yohoe group
func (r *YohoeRepository) CreateYohoe(name, shepherd string, leaderCount int, orderNum *int64) (*models.Yohoe, error) {
	query := `
		INSERT INTO yohoe (name, shepherd, leader_count, order_num)
		VALUES (?, ?, ?, ?)
	`
	var orderArg interface{}
	if orderNum != nil {
		orderArg = *orderNum
	}
	id, err := r.db.ExecReturningID(query, name, shepherd, leaderCount, orderArg)
	if err != nil {
		return nil, fmt.Errorf("failed to create yohoe: %w", err)
	}

	return &models.Yohoe{
		ID:          id,
		Name:        name,
		Shepherd:    shepherd,
		LeaderCount: leaderCount,
		OrderNum:    orderNum,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// GetYohoeByID retrieves a yohoe group by ID
func (r *YohoeRepository) GetYohoeByID(id int64) (*models.Yohoe, error) {
	query := "SELECT " + yohoeColumns + " FROM yohoe WHERE id = ?"
	yohoe, err := scanYohoe(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get yohoe: %w", err)
	}
	return yohoe, nil
}

// GetAllYohoe retrieves all yohoe groups in display order:
// order_num ascending with NULLs last, then creation time
func (r *YohoeRepository) GetAllYohoe() ([]models.Yohoe, error) {
	query := `
		SELECT ` + yohoeColumns + `
		FROM yohoe
		ORDER BY CASE WHEN order_num IS NULL THEN 1 ELSE 0 END, order_num ASC, created_at ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query yohoe: %w", err)
	}
	defer rows.Close()

	var groups []models.Yohoe
	for rows.Next() {
		yohoe, err := scanYohoe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan yohoe: %w", err)
		}
		groups = append(groups, *yohoe)
	}

	return groups, rows.Err()
}

// UpdateYohoe updates a yohoe group's attributes
func (r *YohoeRepository) UpdateYohoe(id int64, name, shepherd string, leaderCount int, orderNum *int64) error {
	query := `
		UPDATE yohoe
		SET name = ?, shepherd = ?, leader_count = ?, order_num = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	var orderArg interface{}
	if orderNum != nil {
		orderArg = *orderNum
	}
	_, err := r.db.Exec(query, name, shepherd, leaderCount, orderArg, id)
	if err != nil {
		return fmt.Errorf("failed to update yohoe: %w", err)
	}
	return nil
}

// DeleteYohoe deletes a yohoe group. Its reports become orphans; they stay
// out of group-keyed views but still count in historical sums.
func (r *YohoeRepository) DeleteYohoe(id int64) error {
	query := "DELETE FROM yohoe WHERE id = ?"
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete yohoe: %w", err)
	}
	return nil
}
