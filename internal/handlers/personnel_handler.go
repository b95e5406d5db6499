package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sigelp/backend/internal/config"
	"github.com/sigelp/backend/internal/models"
	"github.com/sigelp/backend/internal/services"
	"github.com/sigelp/backend/pkg/validation"
)

type PersonnelHandler struct {
	personnelService *services.PersonnelService
	escalafonService *services.EscalafonService
	legajoService    *services.LegajoService
	auditService     *services.AuditService
	cfg              *config.Config
}

func NewPersonnelHandler(
	personnelService *services.PersonnelService,
	escalafonService *services.EscalafonService,
	legajoService *services.LegajoService,
	auditService *services.AuditService,
	cfg *config.Config,
) *PersonnelHandler {
	return &PersonnelHandler{
		personnelService: personnelService,
		escalafonService: escalafonService,
		legajoService:    legajoService,
		auditService:     auditService,
		cfg:              cfg,
	}
}

// List returns personnel with the standard filters
func (h *PersonnelHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	filter := services.PersonnelFilter{
		DNI:         c.Query("dni"),
		Active:      queryBool(c, "active"),
		AreaID:      queryUint(c, "area_id"),
		RegimeID:    queryUint(c, "regime_id"),
		ConditionID: queryUint(c, "condition_id"),
		Search:      c.Query("search"),
	}

	people, total, err := h.personnelService.GetAll(page, limit, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list personnel"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"personnel": people,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// Get returns one personnel record with its catalog relations
func (h *PersonnelHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid personnel id"})
		return
	}

	person, err := h.personnelService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "personnel not found"})
		return
	}
	c.JSON(http.StatusOK, person)
}

// Create registers a new employee. The request is multipart so an initial
// PDF can be attached; when present it is auto-filed under the catch-all
// document type.
func (h *PersonnelHandler) Create(c *gin.Context) {
	var req struct {
		DNI          string `form:"dni" binding:"required"`
		FirstNames   string `form:"first_names" binding:"required"`
		PaternalName string `form:"paternal_name" binding:"required"`
		MaternalName string `form:"maternal_name" binding:"required"`
		BirthDate    string `form:"birth_date"`
		Sex          string `form:"sex"`
		Phone        string `form:"phone"`
		Email        string `form:"email"`
		Address      string `form:"address"`
		AreaID       *uint  `form:"area_id"`
		RegimeID     *uint  `form:"regime_id"`
		ConditionID  *uint  `form:"condition_id"`
		PositionID   *uint  `form:"position_id"`
		HireDate     string `form:"hire_date"`
		Notes        string `form:"notes"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validation.ValidateDNI(req.DNI) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "DNI must be 8 digits"})
		return
	}
	if req.Email != "" && !validation.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}

	person := &models.Personnel{
		DNI:          req.DNI,
		FirstNames:   req.FirstNames,
		PaternalName: req.PaternalName,
		MaternalName: req.MaternalName,
		BirthDate:    parseDate(req.BirthDate),
		Sex:          req.Sex,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		AreaID:       req.AreaID,
		RegimeID:     req.RegimeID,
		ConditionID:  req.ConditionID,
		PositionID:   req.PositionID,
		HireDate:     parseDate(req.HireDate),
		Notes:        req.Notes,
		Active:       true,
	}
	if err := h.personnelService.Create(person); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := currentUserID(c)
	h.auditService.Record(actorID, models.EventPersonnelCreated, nil, &person.ID)

	// Optional initial document, filed under the catch-all type
	if fileHeader, err := c.FormFile("document"); err == nil {
		if !validation.IsPDFFilename(fileHeader.Filename) {
			c.JSON(http.StatusCreated, gin.H{
				"personnel": person,
				"warning":   "attached file ignored, only PDF is accepted",
			})
			return
		}
		if fileHeader.Size > int64(h.cfg.MaxDocumentSizeMB)<<20 {
			c.JSON(http.StatusCreated, gin.H{
				"personnel": person,
				"warning":   fmt.Sprintf("attached file ignored, exceeds %d MB", h.cfg.MaxDocumentSizeMB),
			})
			return
		}

		docType, err := h.legajoService.DocumentTypeByNumber(9)
		if err != nil {
			log.Printf("personnel: catch-all document type missing, initial file skipped: %v", err)
			c.JSON(http.StatusCreated, gin.H{"personnel": person})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusCreated, gin.H{"personnel": person, "warning": "attached file could not be read"})
			return
		}
		defer f.Close()

		doc := &models.LegajoDocument{
			PersonnelID:    person.ID,
			DocumentTypeID: docType.ID,
			Name:           "Documento inicial",
			FileName:       fileHeader.Filename,
			ContentType:    "application/pdf",
			UploadedByID:   actorID,
		}
		if err := h.legajoService.CreateDocument(c.Request.Context(), doc, f); err != nil {
			log.Printf("personnel: initial document upload failed for %s: %v", person.ID, err)
			c.JSON(http.StatusCreated, gin.H{"personnel": person, "warning": "initial document could not be stored"})
			return
		}
		h.auditService.Record(actorID, models.EventDocumentAdded, nil, &person.ID)

		c.JSON(http.StatusCreated, gin.H{"personnel": person, "document": doc})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"personnel": person})
}

// Update edits a personnel record. The DNI cannot change.
func (h *PersonnelHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid personnel id"})
		return
	}

	var req struct {
		FirstNames   *string `json:"first_names"`
		PaternalName *string `json:"paternal_name"`
		MaternalName *string `json:"maternal_name"`
		BirthDate    *string `json:"birth_date"`
		Sex          *string `json:"sex"`
		Phone        *string `json:"phone"`
		Email        *string `json:"email"`
		Address      *string `json:"address"`
		AreaID       *uint   `json:"area_id"`
		RegimeID     *uint   `json:"regime_id"`
		ConditionID  *uint   `json:"condition_id"`
		PositionID   *uint   `json:"position_id"`
		HireDate     *string `json:"hire_date"`
		Notes        *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email != nil && *req.Email != "" && !validation.ValidateEmail(*req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}

	upd := services.PersonnelUpdate{
		FirstNames:   req.FirstNames,
		PaternalName: req.PaternalName,
		MaternalName: req.MaternalName,
		Sex:          req.Sex,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		AreaID:       req.AreaID,
		RegimeID:     req.RegimeID,
		ConditionID:  req.ConditionID,
		PositionID:   req.PositionID,
		Notes:        req.Notes,
	}
	if req.BirthDate != nil {
		upd.BirthDate = parseDate(*req.BirthDate)
	}
	if req.HireDate != nil {
		upd.HireDate = parseDate(*req.HireDate)
	}

	person, err := h.personnelService.Update(id, upd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, person)
}

// ToggleActive flips the active flag of a personnel record
func (h *PersonnelHandler) ToggleActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid personnel id"})
		return
	}

	person, err := h.personnelService.ToggleActive(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "personnel not found"})
		return
	}
	c.JSON(http.StatusOK, person)
}

// GetEscalafon returns the full career ledger of one person
func (h *PersonnelHandler) GetEscalafon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid personnel id"})
		return
	}

	rows, err := h.escalafonService.GetByPersonnel(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load escalafon"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"escalafon": rows, "count": len(rows)})
}

// GetLegajo returns the person's documents grouped by document type
func (h *PersonnelHandler) GetLegajo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid personnel id"})
		return
	}

	if _, err := h.personnelService.GetByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "personnel not found"})
		return
	}

	groups, err := h.legajoService.GroupByType(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load legajo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": groups})
}
