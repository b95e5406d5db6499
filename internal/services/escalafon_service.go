package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sigelp/backend/internal/models"
	"gorm.io/gorm"
)

type EscalafonService struct {
	db *gorm.DB
}

func NewEscalafonService(db *gorm.DB) *EscalafonService {
	return &EscalafonService{db: db}
}

// Create stores a career row. A row without an end date is the person's
// current assignment, so the mirrored "current" columns on the personnel
// record are updated in the same transaction.
func (s *EscalafonService) Create(row *models.Escalafon) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var person models.Personnel
		if err := tx.First(&person, "id = ?", row.PersonnelID).Error; err != nil {
			return errors.New("personnel not found")
		}

		if err := tx.Create(row).Error; err != nil {
			return err
		}

		if row.EndDate == nil {
			updates := map[string]interface{}{
				"area_id":      row.AreaID,
				"regime_id":    row.RegimeID,
				"condition_id": row.ConditionID,
				"position_id":  row.PositionID,
			}
			if err := tx.Model(&person).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// EscalafonUpdate carries the mutable career-row fields
type EscalafonUpdate struct {
	AreaID      *uint
	RegimeID    *uint
	ConditionID *uint
	PositionID  *uint
	StartDate   *time.Time
	EndDate     *time.Time
	ClearEnd    bool
	Resolution  *string
	Notes       *string
}

// Update applies field changes to a career row
func (s *EscalafonService) Update(id uuid.UUID, upd EscalafonUpdate) (*models.Escalafon, error) {
	var row models.Escalafon
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if upd.AreaID != nil {
		row.AreaID = *upd.AreaID
	}
	if upd.RegimeID != nil {
		row.RegimeID = *upd.RegimeID
	}
	if upd.ConditionID != nil {
		row.ConditionID = *upd.ConditionID
	}
	if upd.PositionID != nil {
		row.PositionID = *upd.PositionID
	}
	if upd.StartDate != nil {
		row.StartDate = *upd.StartDate
	}
	if upd.ClearEnd {
		row.EndDate = nil
	} else if upd.EndDate != nil {
		row.EndDate = upd.EndDate
	}
	if upd.Resolution != nil {
		row.Resolution = *upd.Resolution
	}
	if upd.Notes != nil {
		row.Notes = *upd.Notes
	}

	if err := s.db.Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByID retrieves a career row with its relations
func (s *EscalafonService) GetByID(id uuid.UUID) (*models.Escalafon, error) {
	var row models.Escalafon
	err := s.db.Preload("Personnel").Preload("Area").Preload("Regime").Preload("Condition").Preload("Position").
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetAll retrieves career rows newest-first by start date, optionally
// filtered by personnel
func (s *EscalafonService) GetAll(page, limit int, personnelID *uuid.UUID) ([]*models.Escalafon, int64, error) {
	var rows []*models.Escalafon
	var total int64

	query := s.db.Model(&models.Escalafon{}).
		Preload("Personnel").Preload("Area").Preload("Regime").Preload("Condition").Preload("Position")
	if personnelID != nil {
		query = query.Where("personnel_id = ?", *personnelID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("start_date DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// GetByPersonnel returns the full career history of one person
func (s *EscalafonService) GetByPersonnel(personnelID uuid.UUID) ([]*models.Escalafon, error) {
	var rows []*models.Escalafon
	err := s.db.Preload("Area").Preload("Regime").Preload("Condition").Preload("Position").
		Where("personnel_id = ?", personnelID).
		Order("start_date DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
