package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// System roles. The strings are stored as-is and match the municipal
// role names used across the frontend.
const (
	RoleAdmin       = "ADMIN"
	RoleSubgerente  = "SUBGERENTE"
	RoleEncargado   = "ENCARGADO"
	RoleCoordinador = "COORDINADOR"
)

// ValidRole reports whether r is one of the known system roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleSubgerente, RoleEncargado, RoleCoordinador:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	DNI       string    `gorm:"size:8;uniqueIndex" json:"dni,omitempty"`
	Phone     string    `gorm:"size:15" json:"phone,omitempty"`
	Role      string    `gorm:"size:20;not null;default:'ENCARGADO'" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "usuarios"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName returns first and last names joined
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time

	// Relations
	User User `gorm:"foreignKey:UserID"`
}

func (r *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
