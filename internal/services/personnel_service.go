package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sigelp/backend/internal/models"
	"gorm.io/gorm"
)

type PersonnelService struct {
	db *gorm.DB
}

func NewPersonnelService(db *gorm.DB) *PersonnelService {
	return &PersonnelService{db: db}
}

// Create stores a new personnel record
func (s *PersonnelService) Create(person *models.Personnel) error {
	var existing models.Personnel
	if err := s.db.Where("dni = ?", person.DNI).First(&existing).Error; err == nil {
		return errors.New("dni already registered")
	}
	return s.db.Create(person).Error
}

// GetByID retrieves a personnel record with its current assignment catalogs
func (s *PersonnelService) GetByID(id uuid.UUID) (*models.Personnel, error) {
	var person models.Personnel
	err := s.db.Preload("Area").Preload("Regime").Preload("Condition").Preload("Position").
		First(&person, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("personnel not found")
		}
		return nil, err
	}
	return &person, nil
}

// PersonnelFilter narrows GetAll results; zero values mean no filter
type PersonnelFilter struct {
	DNI         string
	Active      *bool
	AreaID      *uint
	RegimeID    *uint
	ConditionID *uint
	Search      string
}

// GetAll retrieves personnel ordered by surnames with optional filters
func (s *PersonnelService) GetAll(page, limit int, filter PersonnelFilter) ([]*models.Personnel, int64, error) {
	var people []*models.Personnel
	var total int64

	query := s.db.Model(&models.Personnel{}).
		Preload("Area").Preload("Regime").Preload("Condition").Preload("Position")

	if filter.DNI != "" {
		query = query.Where("dni = ?", filter.DNI)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.AreaID != nil {
		query = query.Where("area_id = ?", *filter.AreaID)
	}
	if filter.RegimeID != nil {
		query = query.Where("regime_id = ?", *filter.RegimeID)
	}
	if filter.ConditionID != nil {
		query = query.Where("condition_id = ?", *filter.ConditionID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"dni LIKE ? OR first_names LIKE ? OR paternal_name LIKE ? OR maternal_name LIKE ?",
			like, like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("paternal_name, maternal_name, first_names").
		Offset(offset).Limit(limit).Find(&people).Error
	if err != nil {
		return nil, 0, err
	}

	return people, total, nil
}

// PersonnelUpdate carries the mutable personnel fields
type PersonnelUpdate struct {
	FirstNames   *string
	PaternalName *string
	MaternalName *string
	BirthDate    *time.Time
	Sex          *string
	Phone        *string
	Email        *string
	Address      *string
	AreaID       *uint
	RegimeID     *uint
	ConditionID  *uint
	PositionID   *uint
	HireDate     *time.Time
	Notes        *string
}

// Update applies field changes to a personnel record. The DNI is immutable.
func (s *PersonnelService) Update(id uuid.UUID, upd PersonnelUpdate) (*models.Personnel, error) {
	var person models.Personnel
	if err := s.db.First(&person, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("personnel not found")
		}
		return nil, err
	}

	if upd.FirstNames != nil {
		person.FirstNames = *upd.FirstNames
	}
	if upd.PaternalName != nil {
		person.PaternalName = *upd.PaternalName
	}
	if upd.MaternalName != nil {
		person.MaternalName = *upd.MaternalName
	}
	if upd.BirthDate != nil {
		person.BirthDate = upd.BirthDate
	}
	if upd.Sex != nil {
		person.Sex = *upd.Sex
	}
	if upd.Phone != nil {
		person.Phone = *upd.Phone
	}
	if upd.Email != nil {
		person.Email = *upd.Email
	}
	if upd.Address != nil {
		person.Address = *upd.Address
	}
	if upd.AreaID != nil {
		person.AreaID = upd.AreaID
	}
	if upd.RegimeID != nil {
		person.RegimeID = upd.RegimeID
	}
	if upd.ConditionID != nil {
		person.ConditionID = upd.ConditionID
	}
	if upd.PositionID != nil {
		person.PositionID = upd.PositionID
	}
	if upd.HireDate != nil {
		person.HireDate = upd.HireDate
	}
	if upd.Notes != nil {
		person.Notes = *upd.Notes
	}

	if err := s.db.Save(&person).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// ToggleActive flips the active flag of a personnel record
func (s *PersonnelService) ToggleActive(id uuid.UUID) (*models.Personnel, error) {
	var person models.Personnel
	if err := s.db.First(&person, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("personnel not found")
		}
		return nil, err
	}

	person.Active = !person.Active
	if err := s.db.Model(&person).Update("active", person.Active).Error; err != nil {
		return nil, err
	}
	return &person, nil
}
