package service

import (
	"fmt"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/models"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/repository"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/validation"
)

// YohoeService handles yohoe group business logic
type YohoeService struct {
	yohoeRepo *repository.YohoeRepository
}

// NewYohoeService creates a new yohoe service
func NewYohoeService(yohoeRepo *repository.YohoeRepository) *YohoeService {
	return &YohoeService{yohoeRepo: yohoeRepo}
}

// CreateYohoe validates and creates a new group
func (s *YohoeService) CreateYohoe(name, shepherd string, leaderCount int, orderNum *int64) (*models.Yohoe, error) {
	if err := validation.ValidateGroupName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateCount("leader_count", leaderCount); err != nil {
		return nil, err
	}

	return s.yohoeRepo.CreateYohoe(name, shepherd, leaderCount, orderNum)
}

// GetYohoe retrieves one group
func (s *YohoeService) GetYohoe(id int64) (*models.Yohoe, error) {
	yohoe, err := s.yohoeRepo.GetYohoeByID(id)
	if err != nil {
		return nil, err
	}
	if yohoe == nil {
		return nil, ErrYohoeNotFound
	}
	return yohoe, nil
}

// ListYohoe returns all groups in display order
func (s *YohoeService) ListYohoe() ([]models.Yohoe, error) {
	return s.yohoeRepo.GetAllYohoe()
}

// UpdateYohoe validates and updates a group
func (s *YohoeService) UpdateYohoe(id int64, name, shepherd string, leaderCount int, orderNum *int64) error {
	if err := validation.ValidateGroupName(name); err != nil {
		return err
	}
	if err := validation.ValidateCount("leader_count", leaderCount); err != nil {
		return err
	}

	existing, err := s.yohoeRepo.GetYohoeByID(id)
	if err != nil {
		return fmt.Errorf("failed to check yohoe: %w", err)
	}
	if existing == nil {
		return ErrYohoeNotFound
	}

	return s.yohoeRepo.UpdateYohoe(id, name, shepherd, leaderCount, orderNum)
}

// DeleteYohoe removes a group
func (s *YohoeService) DeleteYohoe(id int64) error {
	return s.yohoeRepo.DeleteYohoe(id)
}
