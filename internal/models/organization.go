package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Area is an organizational unit personnel and tickets reference
type Area struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Code        string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Area) TableName() string {
	return "areas"
}

// Regime is a labor regime (e.g. D.L. 276, CAS)
type Regime struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Regime) TableName() string {
	return "regimenes"
}

// LaborCondition is the contractual condition of a worker (named, contracted, ...)
type LaborCondition struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (LaborCondition) TableName() string {
	return "condiciones_laborales"
}

// Position is a job position catalog entry
type Position struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Position) TableName() string {
	return "cargos"
}

// LegajoSection is one of the nine top-level sections of the personnel file
type LegajoSection struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	Number      int       `gorm:"uniqueIndex;not null" json:"number"`
	Name        string    `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Color       string    `gorm:"size:20;default:'#1976d2'" json:"color"`
	Active      bool      `gorm:"default:true" json:"active"`
	Order       int       `gorm:"column:sort_order;default:0" json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (LegajoSection) TableName() string {
	return "secciones_legajo"
}

// DocumentType is a document subtype within a legajo section (e.g. 1.2)
type DocumentType struct {
	ID          uint           `gorm:"primary_key" json:"id"`
	SectionID   uint           `gorm:"not null;uniqueIndex:idx_section_number" json:"section_id"`
	Section     *LegajoSection `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Number      int            `gorm:"not null;uniqueIndex:idx_section_number" json:"number"`
	Code        string         `gorm:"size:10;uniqueIndex;not null" json:"code"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Active      bool           `gorm:"default:true" json:"active"`
	Mandatory   bool           `gorm:"default:false" json:"mandatory"`
	Order       int            `gorm:"column:sort_order;default:0" json:"order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (DocumentType) TableName() string {
	return "tipos_documento"
}

// BeforeSave derives the dotted code from the section and subtype numbers
func (t *DocumentType) BeforeSave(tx *gorm.DB) error {
	if t.Code == "" && t.SectionID != 0 {
		var section LegajoSection
		if err := tx.First(&section, t.SectionID).Error; err == nil {
			t.Code = fmt.Sprintf("%d.%d", section.Number, t.Number)
		}
	}
	return nil
}
