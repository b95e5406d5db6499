package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sigelp/backend/internal/models"
	"github.com/sigelp/backend/internal/services"
)

type TicketHandler struct {
	ticketService *services.TicketService
	reportService *services.ReportService
	auditService  *services.AuditService
}

func NewTicketHandler(ticketService *services.TicketService, reportService *services.ReportService, auditService *services.AuditService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService, reportService: reportService, auditService: auditService}
}

// List returns tickets, newest first, optionally filtered by status
func (h *TicketHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	status := c.Query("status")
	if status != "" && status != models.TicketPending && status != models.TicketCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be PENDIENTE or COMPLETADO"})
		return
	}

	tickets, total, err := h.ticketService.GetAll(page, limit, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tickets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tickets": tickets,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// Get returns one ticket
func (h *TicketHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	ticket, err := h.ticketService.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Create opens a new ticket with the next sequential number
func (h *TicketHandler) Create(c *gin.Context) {
	var req struct {
		FirstName         string `json:"first_name" binding:"required"`
		LastName          string `json:"last_name" binding:"required"`
		ResponsiblePerson string `json:"responsible_person"`
		AreaID            *uint  `json:"area_id"`
		Notes             string `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := currentUserID(c)
	ticket := &models.Ticket{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		ResponsiblePerson: req.ResponsiblePerson,
		AreaID:            req.AreaID,
		Notes:             req.Notes,
		Status:            models.TicketPending,
		CreatedByID:       &actorID,
	}
	if err := h.ticketService.Create(ticket); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ticket"})
		return
	}

	h.auditService.Record(actorID, models.EventTicketCreated, nil, nil)

	c.JSON(http.StatusCreated, ticket)
}

// Update edits a ticket's fields. Setting status to COMPLETADO stamps the
// resolution time only on the first transition.
func (h *TicketHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	var req struct {
		FirstName         *string `json:"first_name"`
		LastName          *string `json:"last_name"`
		ResponsiblePerson *string `json:"responsible_person"`
		AreaID            *uint   `json:"area_id"`
		Notes             *string `json:"notes"`
		Status            *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != nil && *req.Status != models.TicketPending && *req.Status != models.TicketCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be PENDIENTE or COMPLETADO"})
		return
	}

	before, err := h.ticketService.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}
	wasCompleted := before.Status == models.TicketCompleted

	ticket, err := h.ticketService.Update(uint(id), services.TicketUpdate{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		ResponsiblePerson: req.ResponsiblePerson,
		AreaID:            req.AreaID,
		Notes:             req.Notes,
		Status:            req.Status,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !wasCompleted && ticket.Status == models.TicketCompleted {
		h.auditService.Record(currentUserID(c), models.EventTicketResolved, nil, nil)
	}

	c.JSON(http.StatusOK, ticket)
}

// Complete marks a ticket resolved. Already-completed tickets are a no-op.
func (h *TicketHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	ticket, transitioned, err := h.ticketService.Complete(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}

	if transitioned {
		h.auditService.Record(currentUserID(c), models.EventTicketResolved, nil, nil)
	}

	c.JSON(http.StatusOK, ticket)
}

// Stats returns the ticket counters for the dashboard
func (h *TicketHandler) Stats(c *gin.Context) {
	stats, err := h.ticketService.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// PDF renders the printable ticket sheet
func (h *TicketHandler) PDF(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	ticket, err := h.ticketService.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}

	pdf, err := h.reportService.GenerateTicketPDF(ticket)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", ticket.TicketNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
