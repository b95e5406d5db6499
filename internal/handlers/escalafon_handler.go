package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sigelp/backend/internal/models"
	"github.com/sigelp/backend/internal/services"
)

type EscalafonHandler struct {
	escalafonService *services.EscalafonService
	auditService     *services.AuditService
}

func NewEscalafonHandler(escalafonService *services.EscalafonService, auditService *services.AuditService) *EscalafonHandler {
	return &EscalafonHandler{escalafonService: escalafonService, auditService: auditService}
}

// List returns career rows, optionally for one person
func (h *EscalafonHandler) List(c *gin.Context) {
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

	rows, total, err := h.escalafonService.GetAll(page, limit, personnelID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list escalafon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"escalafon": rows,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// Get returns one career row
func (h *EscalafonHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid escalafon id"})
		return
	}

	row, err := h.escalafonService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "escalafon entry not found"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// Create appends a row to a person's career ledger. An open row (no end
// date) becomes the current assignment and is propagated to the personnel
// record.
func (h *EscalafonHandler) Create(c *gin.Context) {
	var req struct {
		PersonnelID string `json:"personnel_id" binding:"required"`
		AreaID      uint   `json:"area_id" binding:"required"`
		RegimeID    uint   `json:"regime_id" binding:"required"`
		ConditionID uint   `json:"condition_id" binding:"required"`
		PositionID  uint   `json:"position_id" binding:"required"`
		StartDate   string `json:"start_date" binding:"required"`
		EndDate     string `json:"end_date"`
		Resolution  string `json:"resolution"`
		Notes       string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	personnelID, err := uuid.Parse(req.PersonnelID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid personnel_id"})
		return
	}
	start := parseDate(req.StartDate)
	if start == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	var end *time.Time
	if req.EndDate != "" {
		end = parseDate(req.EndDate)
		if end == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		if end.Before(*start) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date cannot precede start_date"})
			return
		}
	}

	row := &models.Escalafon{
		PersonnelID: personnelID,
		AreaID:      req.AreaID,
		RegimeID:    req.RegimeID,
		ConditionID: req.ConditionID,
		PositionID:  req.PositionID,
		StartDate:   *start,
		EndDate:     end,
		Resolution:  req.Resolution,
		Notes:       req.Notes,
	}
	if err := h.escalafonService.Create(row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.auditService.Record(currentUserID(c), models.EventEscalafonModified, nil, &row.PersonnelID)

	c.JSON(http.StatusCreated, row)
}

// Update edits an existing career row
func (h *EscalafonHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid escalafon id"})
		return
	}

	var req struct {
		AreaID      *uint   `json:"area_id"`
		RegimeID    *uint   `json:"regime_id"`
		ConditionID *uint   `json:"condition_id"`
		PositionID  *uint   `json:"position_id"`
		StartDate   *string `json:"start_date"`
		EndDate     *string `json:"end_date"`
		ClearEnd    bool    `json:"clear_end"`
		Resolution  *string `json:"resolution"`
		Notes       *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := services.EscalafonUpdate{
		AreaID:      req.AreaID,
		RegimeID:    req.RegimeID,
		ConditionID: req.ConditionID,
		PositionID:  req.PositionID,
		ClearEnd:    req.ClearEnd,
		Resolution:  req.Resolution,
		Notes:       req.Notes,
	}
	if req.StartDate != nil {
		upd.StartDate = parseDate(*req.StartDate)
	}
	if req.EndDate != nil {
		upd.EndDate = parseDate(*req.EndDate)
	}

	row, err := h.escalafonService.Update(id, upd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.auditService.Record(currentUserID(c), models.EventEscalafonModified, nil, &row.PersonnelID)

	c.JSON(http.StatusOK, row)
}
