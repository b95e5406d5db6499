package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sigelp/backend/internal/config"
	"github.com/sigelp/backend/internal/models"
	"github.com/sigelp/backend/pkg/crypto"
	"gorm.io/gorm"
)

type UserService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{db: db, cfg: cfg}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// Create stores a new user with a hashed password
func (s *UserService) Create(user *models.User, password string) error {
	var existing models.User
	if err := s.db.Where("username = ? OR email = ?", user.Username, user.Email).First(&existing).Error; err == nil {
		if existing.Username == user.Username {
			return errors.New("username already taken")
		}
		return errors.New("email already registered")
	}

	hashed, err := crypto.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	user.Password = hashed

	return s.db.Create(user).Error
}

// UserUpdate carries the mutable user fields
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	DNI       *string
	Phone     *string
	Role      *string
}

// Update applies field changes to a user
func (s *UserService) Update(userID uuid.UUID, upd UserUpdate) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.DNI != nil {
		user.DNI = *upd.DNI
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	if upd.Role != nil {
		if !models.ValidRole(*upd.Role) {
			return nil, errors.New("invalid role")
		}
		user.Role = *upd.Role
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ToggleActive flips the active flag and reports whether the call
// deactivated the account (the only direction the audit trail tracks).
func (s *UserService) ToggleActive(userID uuid.UUID) (*models.User, bool, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, errors.New("user not found")
		}
		return nil, false, err
	}

	wasActive := user.IsActive
	user.IsActive = !user.IsActive
	if err := s.db.Model(&user).Update("is_active", user.IsActive).Error; err != nil {
		return nil, false, err
	}

	deactivated := wasActive && !user.IsActive
	return &user, deactivated, nil
}

// ResetPassword stores a new password hash without checking the old one.
// Admin-only path.
func (s *UserService) ResetPassword(userID uuid.UUID, newPassword string) error {
	hashed, err := crypto.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("password", hashed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("user not found")
	}
	return nil
}

// GetAll retrieves users newest-first with optional filters
func (s *UserService) GetAll(page, limit int, role string, isActive *bool, search string) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := s.db.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"username LIKE ? OR first_name LIKE ? OR last_name LIKE ? OR email LIKE ?",
			like, like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
