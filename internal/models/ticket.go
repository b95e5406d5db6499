package models

import (
	"time"

	"github.com/google/uuid"
)

// Ticket status values
const (
	TicketPending   = "PENDIENTE"
	TicketCompleted = "COMPLETADO"
)

// Ticket is a tracked support request. The integer primary key doubles as
// the insertion order used by the sequential number generator.
type Ticket struct {
	ID                uint       `gorm:"primary_key" json:"id"`
	TicketNumber      string     `gorm:"size:20;uniqueIndex" json:"ticket_number"`
	FirstName         string     `gorm:"size:200;not null" json:"first_name"`
	LastName          string     `gorm:"size:200;not null" json:"last_name"`
	ResponsiblePerson string     `gorm:"size:200" json:"responsible_person,omitempty"`
	AreaID            *uint      `json:"area_id,omitempty"`
	Area              *Area      `gorm:"foreignKey:AreaID;constraint:OnDelete:SET NULL" json:"area,omitempty"`
	Notes             string     `gorm:"type:text;not null" json:"notes"`
	Status            string     `gorm:"size:20;not null;default:'PENDIENTE'" json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
	CreatedByID       *uuid.UUID `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedBy         *User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"created_by,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// RequesterName returns the requester's full name for display
func (t *Ticket) RequesterName() string {
	return t.FirstName + " " + t.LastName
}
