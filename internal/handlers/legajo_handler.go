package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sigelp/backend/internal/config"
	"github.com/sigelp/backend/internal/models"
	"github.com/sigelp/backend/internal/services"
	"github.com/sigelp/backend/pkg/validation"
)

type LegajoHandler struct {
	legajoService *services.LegajoService
	auditService  *services.AuditService
	storage       *services.StorageService
	cfg           *config.Config
}

func NewLegajoHandler(legajoService *services.LegajoService, auditService *services.AuditService, storage *services.StorageService, cfg *config.Config) *LegajoHandler {
	return &LegajoHandler{legajoService: legajoService, auditService: auditService, storage: storage, cfg: cfg}
}

// List returns legajo documents with optional filters
func (h *LegajoHandler) List(c *gin.Context) {
	page, limit := pagination(c)

	var personnelID *uuid.UUID
	if raw := c.Query("personnel_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid personnel_id"})
			return
		}
		personnelID = &id
	}
	documentTypeID := queryUint(c, "document_type_id")

	docs, total, err := h.legajoService.GetAll(page, limit, personnelID, documentTypeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": docs,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// Get returns one document's metadata
func (h *LegajoHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	doc, err := h.legajoService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Upload archives a PDF into a person's legajo
func (h *LegajoHandler) Upload(c *gin.Context) {
	var req struct {
		PersonnelID    string `form:"personnel_id" binding:"required"`
		DocumentTypeID uint   `form:"document_type_id" binding:"required"`
		Name           string `form:"name"`
		Description    string `form:"description"`
		DocumentNumber string `form:"document_number"`
		DocumentDate   string `form:"document_date"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	personnelID, err := uuid.Parse(req.PersonnelID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid personnel_id"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if !validation.IsPDFFilename(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF documents are accepted"})
		return
	}
	if fileHeader.Size > int64(h.cfg.MaxDocumentSizeMB)<<20 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file exceeds the %d MB limit", h.cfg.MaxDocumentSizeMB),
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file could not be read"})
		return
	}
	defer f.Close()

	doc := &models.LegajoDocument{
		PersonnelID:    personnelID,
		DocumentTypeID: req.DocumentTypeID,
		Name:           req.Name,
		Description:    req.Description,
		DocumentNumber: req.DocumentNumber,
		DocumentDate:   parseDate(req.DocumentDate),
		FileName:       fileHeader.Filename,
		ContentType:    "application/pdf",
		UploadedByID:   currentUserID(c),
	}
	if err := h.legajoService.CreateDocument(c.Request.Context(), doc, f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.auditService.Record(currentUserID(c), models.EventDocumentAdded, nil, &doc.PersonnelID)

	c.JSON(http.StatusCreated, doc)
}

// Update edits document metadata; the stored file never changes
func (h *LegajoHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	var req struct {
		DocumentTypeID *uint   `json:"document_type_id"`
		Name           *string `json:"name"`
		Description    *string `json:"description"`
		DocumentNumber *string `json:"document_number"`
		DocumentDate   *string `json:"document_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := services.DocumentUpdate{
		DocumentTypeID: req.DocumentTypeID,
		Name:           req.Name,
		Description:    req.Description,
		DocumentNumber: req.DocumentNumber,
	}
	if req.DocumentDate != nil {
		upd.DocumentDate = parseDate(*req.DocumentDate)
	}

	doc, err := h.legajoService.UpdateDocument(id, upd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.auditService.Record(currentUserID(c), models.EventDocumentModified, nil, &doc.PersonnelID)

	c.JSON(http.StatusOK, doc)
}

// Delete removes a document and its stored file
func (h *LegajoHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	if err := h.legajoService.DeleteDocument(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}

// Download streams the stored PDF. When the document is mirrored to S3 a
// presigned URL is returned instead of the bytes.
func (h *LegajoHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	doc, err := h.legajoService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}

	if c.Query("presign") == "true" && doc.MirroredS3 {
		url, err := h.legajoService.PresignDownload(c.Request.Context(), doc, 15*time.Minute)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"url": url, "expires_in_seconds": 900})
			return
		}
		// fall back to local streaming
	}

	absPath := h.legajoService.LocalPath(doc)
	if err := h.storage.ServeFileWithRange(c.Writer, c.Request, absPath, doc.FileName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stream document"})
	}
}
