package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sigelp/backend/internal/models"
	"github.com/sigelp/backend/internal/services"
)

type OrganizationHandler struct {
	orgService *services.OrganizationService
}

func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// Areas

func (h *OrganizationHandler) ListAreas(c *gin.Context) {
	areas, err := h.orgService.GetAreas(queryBool(c, "active"), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list areas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"areas": areas, "count": len(areas)})
}

func (h *OrganizationHandler) GetArea(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	area, err := h.orgService.GetArea(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "area not found"})
		return
	}
	c.JSON(http.StatusOK, area)
}

func (h *OrganizationHandler) CreateArea(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Code        string `json:"code" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	area := &models.Area{Name: req.Name, Code: req.Code, Description: req.Description, Active: true}
	if err := h.orgService.CreateArea(area); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, area)
}

func (h *OrganizationHandler) UpdateArea(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Code        *string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	area, err := h.orgService.UpdateArea(id, req.Name, req.Description, req.Code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "area not found"})
		return
	}
	c.JSON(http.StatusOK, area)
}

func (h *OrganizationHandler) ToggleArea(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	area, err := h.orgService.ToggleArea(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "area not found"})
		return
	}
	c.JSON(http.StatusOK, area)
}

// Regimes

func (h *OrganizationHandler) ListRegimes(c *gin.Context) {
	regimes, err := h.orgService.GetRegimes(queryBool(c, "active"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list regimes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"regimes": regimes, "count": len(regimes)})
}

func (h *OrganizationHandler) CreateRegime(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	regime := &models.Regime{Name: req.Name, Description: req.Description, Active: true}
	if err := h.orgService.CreateRegime(regime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, regime)
}

func (h *OrganizationHandler) UpdateRegime(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	regime, err := h.orgService.UpdateRegime(id, req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "regime not found"})
		return
	}
	c.JSON(http.StatusOK, regime)
}

func (h *OrganizationHandler) ToggleRegime(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	regime, err := h.orgService.ToggleRegime(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "regime not found"})
		return
	}
	c.JSON(http.StatusOK, regime)
}

// Labor conditions

func (h *OrganizationHandler) ListLaborConditions(c *gin.Context) {
	conditions, err := h.orgService.GetLaborConditions(queryBool(c, "active"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list labor conditions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"labor_conditions": conditions, "count": len(conditions)})
}

func (h *OrganizationHandler) CreateLaborCondition(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	condition := &models.LaborCondition{Name: req.Name, Description: req.Description, Active: true}
	if err := h.orgService.CreateLaborCondition(condition); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, condition)
}

func (h *OrganizationHandler) UpdateLaborCondition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	condition, err := h.orgService.UpdateLaborCondition(id, req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "labor condition not found"})
		return
	}
	c.JSON(http.StatusOK, condition)
}

func (h *OrganizationHandler) ToggleLaborCondition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	condition, err := h.orgService.ToggleLaborCondition(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "labor condition not found"})
		return
	}
	c.JSON(http.StatusOK, condition)
}

// Positions

func (h *OrganizationHandler) ListPositions(c *gin.Context) {
	positions, err := h.orgService.GetPositions(queryBool(c, "active"), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list positions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": positions, "count": len(positions)})
}

func (h *OrganizationHandler) CreatePosition(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	position := &models.Position{Name: req.Name, Description: req.Description, Active: true}
	if err := h.orgService.CreatePosition(position); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, position)
}

func (h *OrganizationHandler) UpdatePosition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	position, err := h.orgService.UpdatePosition(id, req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "position not found"})
		return
	}
	c.JSON(http.StatusOK, position)
}

func (h *OrganizationHandler) TogglePosition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	position, err := h.orgService.TogglePosition(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "position not found"})
		return
	}
	c.JSON(http.StatusOK, position)
}

// Legajo sections and document types

func (h *OrganizationHandler) ListSections(c *gin.Context) {
	sections, err := h.orgService.GetSections(queryBool(c, "active"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sections"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections, "count": len(sections)})
}

func (h *OrganizationHandler) GetSection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	section, types, err := h.orgService.GetSectionWithTypes(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": section, "document_types": types})
}

func (h *OrganizationHandler) UpdateSection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Color       *string `json:"color"`
		Order       *int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	section, err := h.orgService.UpdateSection(id, req.Name, req.Description, req.Color, req.Order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
		return
	}
	c.JSON(http.StatusOK, section)
}

func (h *OrganizationHandler) ListDocumentTypes(c *gin.Context) {
	types, err := h.orgService.GetDocumentTypes(queryUint(c, "section_id"), queryBool(c, "active"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list document types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"document_types": types, "count": len(types)})
}

func (h *OrganizationHandler) CreateDocumentType(c *gin.Context) {
	var req struct {
		SectionID   uint   `json:"section_id" binding:"required"`
		Number      int    `json:"number" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Mandatory   bool   `json:"mandatory"`
		Order       int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	docType := &models.DocumentType{
		SectionID:   req.SectionID,
		Number:      req.Number,
		Name:        req.Name,
		Description: req.Description,
		Mandatory:   req.Mandatory,
		Order:       req.Order,
		Active:      true,
	}
	if err := h.orgService.CreateDocumentType(docType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, docType)
}

func (h *OrganizationHandler) UpdateDocumentType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Mandatory   *bool   `json:"mandatory"`
		Order       *int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	docType, err := h.orgService.UpdateDocumentType(id, req.Name, req.Description, req.Mandatory, req.Order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document type not found"})
		return
	}
	c.JSON(http.StatusOK, docType)
}

func (h *OrganizationHandler) ToggleDocumentType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	docType, err := h.orgService.ToggleDocumentType(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document type not found"})
		return
	}
	c.JSON(http.StatusOK, docType)
}
