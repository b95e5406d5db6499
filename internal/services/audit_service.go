package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sigelp/backend/internal/models"
	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends one audit record for an administrative action. It is
// deliberately non-fatal: an unknown event type or a store failure is
// logged and yields nil so the caller's primary write is never aborted.
// It must be invoked after the primary entity has been saved.
func (s *AuditService) Record(actorID uuid.UUID, event models.EventType, affectedUser, affectedPersonnel *uuid.UUID) *models.AuditRecord {
	var eventType models.AuditEventType
	if err := s.db.First(&eventType, uint(event)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("audit: event type %d does not exist, action not recorded", event)
		} else {
			log.Printf("ERROR: audit: event type lookup failed: %v", err)
		}
		return nil
	}

	record := &models.AuditRecord{
		ActorID:             actorID,
		EventTypeID:         eventType.ID,
		AffectedUserID:      affectedUser,
		AffectedPersonnelID: affectedPersonnel,
	}

	if err := s.db.Create(record).Error; err != nil {
		log.Printf("ERROR: audit: failed to persist record for event %q: %v", eventType.Name, err)
		return nil
	}

	summary := "actor=" + actorID.String() + " event=" + eventType.Name
	if affectedUser != nil {
		summary += " affected_user=" + affectedUser.String()
	}
	if affectedPersonnel != nil {
		summary += " affected_personnel=" + affectedPersonnel.String()
	}
	log.Printf("audit: %s", summary)

	return record
}

// GetEventTypes returns the event-type catalog
func (s *AuditService) GetEventTypes() ([]models.AuditEventType, error) {
	var types []models.AuditEventType
	if err := s.db.Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// GetRecords retrieves audit records newest-first with optional filters.
// From/to bounds are inclusive against the record timestamp.
func (s *AuditService) GetRecords(page, limit int, actorID *uuid.UUID, eventTypeID *uint, from, to *time.Time) ([]*models.AuditRecord, int64, error) {
	var records []*models.AuditRecord
	var total int64

	query := s.db.Model(&models.AuditRecord{}).
		Preload("Actor").
		Preload("AffectedUser").
		Preload("AffectedPersonnel").
		Preload("EventType")

	if actorID != nil {
		query = query.Where("actor_id = ?", *actorID)
	}
	if eventTypeID != nil {
		query = query.Where("event_type_id = ?", *eventTypeID)
	}
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetActionCount returns how many times an actor triggered an event since a
// given time. Used by the admin action rate limiter.
func (s *AuditService) GetActionCount(actorID uuid.UUID, event models.EventType, since time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.AuditRecord{}).
		Where("actor_id = ? AND event_type_id = ? AND created_at > ?", actorID, uint(event), since).
		Count(&count).Error
	return count, err
}

// EnsureCatalog inserts any missing event types without touching existing
// rows or records. Run at startup so Record never hits an empty catalog.
func (s *AuditService) EnsureCatalog() error {
	for _, eventType := range models.Catalog() {
		row := eventType
		if err := s.db.Where("id = ?", row.ID).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// Reseed destructively rebuilds the event-type catalog: all audit records
// and event types are deleted, then the fixed nine-entry catalog is
// inserted with its stable ids. Safe to run repeatedly.
func (s *AuditService) Reseed() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.AuditRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.AuditEventType{}).Error; err != nil {
			return err
		}
		for _, eventType := range models.Catalog() {
			if err := tx.Create(&eventType).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
