package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies one of the fixed administrative action kinds.
// Values are the persisted catalog ids and must stay in sync with Catalog.
type EventType uint

const (
	EventUserModified      EventType = 1
	EventUserCreated       EventType = 2
	EventPersonnelCreated  EventType = 3
	EventDocumentAdded     EventType = 4
	EventDocumentModified  EventType = 5
	EventTicketCreated     EventType = 6
	EventTicketResolved    EventType = 7
	EventEscalafonModified EventType = 8
	EventUserDeactivated   EventType = 9
)

// AuditEventType is a catalog row describing an administrative action kind.
// Rows are only written by the seeding routine.
type AuditEventType struct {
	ID          uint   `gorm:"primary_key" json:"id"`
	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (AuditEventType) TableName() string {
	return "eventos"
}

// Catalog returns the fixed event-type catalog in seeding order.
func Catalog() []AuditEventType {
	return []AuditEventType{
		{ID: uint(EventUserModified), Name: "Modificación de Usuario", Description: "Se modificaron los datos de un usuario"},
		{ID: uint(EventUserCreated), Name: "Creación de Usuario", Description: "Se creó un nuevo usuario"},
		{ID: uint(EventPersonnelCreated), Name: "Creación de Nuevo Personal", Description: "Se agregó un nuevo personal al sistema"},
		{ID: uint(EventDocumentAdded), Name: "Agregado de Documento al Legajo", Description: "Se agregó un documento al legajo"},
		{ID: uint(EventDocumentModified), Name: "Modificación de Documento del Legajo", Description: "Se modificó un documento del legajo"},
		{ID: uint(EventTicketCreated), Name: "Creación de Ticket", Description: "Se creó un nuevo ticket"},
		{ID: uint(EventTicketResolved), Name: "Resolución de Ticket", Description: "Se resolvió un ticket"},
		{ID: uint(EventEscalafonModified), Name: "Modificación de Escalafón", Description: "Se modificó un escalafón"},
		{ID: uint(EventUserDeactivated), Name: "Desactivación de Usuario", Description: "Se desactivó un usuario"},
	}
}

// AuditRecord is one immutable entry of the audit trail. Rows are created
// only by the audit recorder and never updated or deleted by request paths.
type AuditRecord struct {
	ID                  uint            `gorm:"primary_key" json:"id"`
	ActorID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"actor_id"`
	Actor               *User           `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	EventTypeID         uint            `gorm:"not null;index" json:"event_type_id"`
	EventType           *AuditEventType `gorm:"foreignKey:EventTypeID" json:"event_type,omitempty"`
	AffectedUserID      *uuid.UUID      `gorm:"type:uuid" json:"affected_user_id,omitempty"`
	AffectedUser        *User           `gorm:"foreignKey:AffectedUserID" json:"affected_user,omitempty"`
	AffectedPersonnelID *uuid.UUID      `gorm:"type:uuid;index" json:"affected_personnel_id,omitempty"`
	AffectedPersonnel   *Personnel      `gorm:"foreignKey:AffectedPersonnelID" json:"affected_personnel,omitempty"`
	CreatedAt           time.Time       `gorm:"index" json:"created_at"`
}

func (AuditRecord) TableName() string {
	return "registro_eventos"
}
