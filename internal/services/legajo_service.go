package services

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sigelp/backend/internal/config"
	"github.com/sigelp/backend/internal/models"
	"gorm.io/gorm"
)

// LegajoService manages the per-person document archive: metadata rows in
// the database, blobs in local storage, and an optional S3 mirror.
type LegajoService struct {
	db      *gorm.DB
	cfg     *config.Config
	storage *StorageService
	s3      *S3Service
}

func NewLegajoService(db *gorm.DB, cfg *config.Config, storage *StorageService, s3 *S3Service) *LegajoService {
	return &LegajoService{db: db, cfg: cfg, storage: storage, s3: s3}
}

// CreateDocument stores the uploaded blob and its metadata row. The blob is
// written first so a failed insert never leaves a dangling row; the S3
// mirror runs last and is best-effort.
func (s *LegajoService) CreateDocument(ctx context.Context, doc *models.LegajoDocument, file io.Reader) error {
	var docType models.DocumentType
	if err := s.db.First(&docType, doc.DocumentTypeID).Error; err != nil {
		return errors.New("document type not found")
	}
	var person models.Personnel
	if err := s.db.First(&person, "id = ?", doc.PersonnelID).Error; err != nil {
		return errors.New("personnel not found")
	}

	key := s.storage.BuildObjectKey("legajos", doc.FileName)
	_, size, checksum, err := s.storage.SaveStream(ctx, key, file)
	if err != nil {
		return err
	}

	doc.StorageKey = key
	doc.Size = size
	doc.Checksum = checksum
	if doc.Name == "" {
		doc.Name = doc.FileName
	}

	if err := s.db.Create(doc).Error; err != nil {
		_ = s.storage.Remove(key)
		return err
	}

	s.mirror(ctx, doc)
	return nil
}

// mirror pushes the blob to the S3 bucket when configured. Failures are
// logged, never surfaced: the local copy is authoritative.
func (s *LegajoService) mirror(ctx context.Context, doc *models.LegajoDocument) {
	if s.s3 == nil || !s.s3.Enabled() {
		return
	}

	f, err := os.Open(s.storage.AbsPath(doc.StorageKey))
	if err != nil {
		log.Printf("legajo: mirror open failed for %s: %v", doc.StorageKey, err)
		return
	}
	defer f.Close()

	if err := s.s3.UploadDocument(ctx, doc.StorageKey, f, doc.ContentType); err != nil {
		log.Printf("legajo: mirror upload failed for %s: %v", doc.StorageKey, err)
		return
	}

	if err := s.db.Model(doc).Update("mirrored_s3", true).Error; err == nil {
		doc.MirroredS3 = true
	}
}

// DocumentUpdate carries the mutable metadata fields of a legajo document
type DocumentUpdate struct {
	DocumentTypeID *uint
	Name           *string
	Description    *string
	DocumentNumber *string
	DocumentDate   *time.Time
}

// UpdateDocument applies metadata changes; the blob itself is immutable
func (s *LegajoService) UpdateDocument(id uuid.UUID, upd DocumentUpdate) (*models.LegajoDocument, error) {
	var doc models.LegajoDocument
	if err := s.db.First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if upd.DocumentTypeID != nil {
		var docType models.DocumentType
		if err := s.db.First(&docType, *upd.DocumentTypeID).Error; err != nil {
			return nil, errors.New("document type not found")
		}
		doc.DocumentTypeID = *upd.DocumentTypeID
	}
	if upd.Name != nil {
		doc.Name = *upd.Name
	}
	if upd.Description != nil {
		doc.Description = *upd.Description
	}
	if upd.DocumentNumber != nil {
		doc.DocumentNumber = *upd.DocumentNumber
	}
	if upd.DocumentDate != nil {
		doc.DocumentDate = upd.DocumentDate
	}

	if err := s.db.Save(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes the metadata row, the local blob, and the mirror
func (s *LegajoService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	var doc models.LegajoDocument
	if err := s.db.First(&doc, "id = ?", id).Error; err != nil {
		return err
	}

	if err := s.db.Delete(&doc).Error; err != nil {
		return err
	}

	if err := s.storage.Remove(doc.StorageKey); err != nil {
		log.Printf("legajo: failed to remove blob %s: %v", doc.StorageKey, err)
	}
	if s.s3 != nil && s.s3.Enabled() && doc.MirroredS3 {
		if err := s.s3.DeleteDocument(ctx, doc.StorageKey); err != nil {
			log.Printf("legajo: failed to remove mirror %s: %v", doc.StorageKey, err)
		}
	}
	return nil
}

// GetByID retrieves a document with its relations
func (s *LegajoService) GetByID(id uuid.UUID) (*models.LegajoDocument, error) {
	var doc models.LegajoDocument
	err := s.db.Preload("Personnel").Preload("DocumentType").Preload("DocumentType.Section").Preload("UploadedBy").
		First(&doc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetAll retrieves documents newest-first with optional filters
func (s *LegajoService) GetAll(page, limit int, personnelID *uuid.UUID, documentTypeID *uint) ([]*models.LegajoDocument, int64, error) {
	var docs []*models.LegajoDocument
	var total int64

	query := s.db.Model(&models.LegajoDocument{}).
		Preload("Personnel").Preload("DocumentType").Preload("UploadedBy")
	if personnelID != nil {
		query = query.Where("personnel_id = ?", *personnelID)
	}
	if documentTypeID != nil {
		query = query.Where("document_type_id = ?", *documentTypeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&docs).Error; err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// TypeGroup is a document type with the person's documents filed under it
type TypeGroup struct {
	Type      models.DocumentType      `json:"type"`
	Documents []*models.LegajoDocument `json:"documents"`
	Count     int                      `json:"count"`
}

// GroupByType returns a person's documents organized by active document
// type, in catalog order, including empty types
func (s *LegajoService) GroupByType(personnelID uuid.UUID) ([]TypeGroup, error) {
	var types []models.DocumentType
	if err := s.db.Preload("Section").Where("active = ?", true).Order("sort_order, number").Find(&types).Error; err != nil {
		return nil, err
	}

	groups := make([]TypeGroup, 0, len(types))
	for _, docType := range types {
		var docs []*models.LegajoDocument
		err := s.db.Preload("UploadedBy").
			Where("personnel_id = ? AND document_type_id = ?", personnelID, docType.ID).
			Order("created_at DESC").Find(&docs).Error
		if err != nil {
			return nil, err
		}
		groups = append(groups, TypeGroup{Type: docType, Documents: docs, Count: len(docs)})
	}
	return groups, nil
}

// DocumentTypeByNumber finds a document type by its subtype number,
// regardless of section. Used to auto-file uploads under "Documentos
// Varios" (number 9) when personnel records are created.
func (s *LegajoService) DocumentTypeByNumber(number int) (*models.DocumentType, error) {
	var docType models.DocumentType
	if err := s.db.Where("number = ?", number).Order("id").First(&docType).Error; err != nil {
		return nil, err
	}
	return &docType, nil
}

// PresignDownload returns a temporary S3 URL for a mirrored document, or
// an empty string when the document must be streamed locally
func (s *LegajoService) PresignDownload(ctx context.Context, doc *models.LegajoDocument, ttl time.Duration) (string, error) {
	if s.s3 == nil || !s.s3.Enabled() || !doc.MirroredS3 {
		return "", nil
	}
	return s.s3.PresignGet(ctx, doc.StorageKey, ttl)
}

// LocalPath resolves a document to its absolute path on disk
func (s *LegajoService) LocalPath(doc *models.LegajoDocument) string {
	return s.storage.AbsPath(doc.StorageKey)
}
