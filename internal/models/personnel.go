package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Personnel is an employee record. The FK'd area/regime/condition/position
// columns mirror the most recent open escalafon row for quick listing.
type Personnel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	DNI            string     `gorm:"size:8;uniqueIndex;not null" json:"dni"`
	FirstNames     string     `gorm:"size:200;not null" json:"first_names"`
	PaternalName   string     `gorm:"size:100;not null" json:"paternal_name"`
	MaternalName   string     `gorm:"size:100;not null" json:"maternal_name"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	Sex            string     `gorm:"size:1" json:"sex,omitempty"` // M | F
	Phone          string     `gorm:"size:15" json:"phone,omitempty"`
	Email          string     `json:"email,omitempty"`
	Address        string     `gorm:"type:text" json:"address,omitempty"`
	AreaID         *uint      `json:"area_id,omitempty"`
	Area           *Area      `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	RegimeID       *uint      `json:"regime_id,omitempty"`
	Regime         *Regime    `gorm:"foreignKey:RegimeID" json:"regime,omitempty"`
	ConditionID    *uint      `json:"condition_id,omitempty"`
	Condition      *LaborCondition `gorm:"foreignKey:ConditionID" json:"condition,omitempty"`
	PositionID     *uint      `json:"position_id,omitempty"`
	Position       *Position  `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	HireDate       *time.Time `json:"hire_date,omitempty"`
	Active         bool       `gorm:"default:true" json:"active"`
	Notes          string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Personnel) TableName() string {
	return "personal"
}

func (p *Personnel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// FullName returns names followed by both surnames
func (p *Personnel) FullName() string {
	return p.FirstNames + " " + p.PaternalName + " " + p.MaternalName
}

// Escalafon is one row of the chronological career ledger of a person.
// A row with no end date is the current assignment.
type Escalafon struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	PersonnelID uuid.UUID  `gorm:"type:uuid;not null;index" json:"personnel_id"`
	Personnel   *Personnel `gorm:"foreignKey:PersonnelID" json:"personnel,omitempty"`
	AreaID      uint       `gorm:"not null" json:"area_id"`
	Area        *Area      `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	RegimeID    uint       `gorm:"not null" json:"regime_id"`
	Regime      *Regime    `gorm:"foreignKey:RegimeID" json:"regime,omitempty"`
	ConditionID uint       `gorm:"not null" json:"condition_id"`
	Condition   *LaborCondition `gorm:"foreignKey:ConditionID" json:"condition,omitempty"`
	PositionID  uint       `gorm:"not null" json:"position_id"`
	Position    *Position  `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Resolution  string     `gorm:"size:100" json:"resolution,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Escalafon) TableName() string {
	return "escalafones"
}

func (e *Escalafon) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// IsCurrent reports whether the row is the open (current) assignment
func (e *Escalafon) IsCurrent() bool {
	return e.EndDate == nil
}

// LegajoDocument is an archived file in a person's legajo, classified by
// document type. Blob metadata follows the local storage service.
type LegajoDocument struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	PersonnelID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"personnel_id"`
	Personnel      *Personnel    `gorm:"foreignKey:PersonnelID" json:"personnel,omitempty"`
	DocumentTypeID uint          `gorm:"not null;index" json:"document_type_id"`
	DocumentType   *DocumentType `gorm:"foreignKey:DocumentTypeID" json:"document_type,omitempty"`
	Name           string        `gorm:"size:200;not null" json:"name"`
	Description    string        `gorm:"type:text" json:"description,omitempty"`
	DocumentNumber string        `gorm:"size:100" json:"document_number,omitempty"`
	DocumentDate   *time.Time    `json:"document_date,omitempty"`

	// Blob metadata
	StorageKey  string `gorm:"not null" json:"-"`
	FileName    string `gorm:"not null" json:"file_name"`
	ContentType string `gorm:"size:100" json:"content_type"`
	Size        int64  `json:"size"`
	Checksum    string `gorm:"size:64" json:"checksum,omitempty"`
	MirroredS3  bool   `gorm:"default:false" json:"-"`

	UploadedByID uuid.UUID `gorm:"type:uuid;not null" json:"uploaded_by_id"`
	UploadedBy   *User     `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (LegajoDocument) TableName() string {
	return "legajos"
}

func (d *LegajoDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
