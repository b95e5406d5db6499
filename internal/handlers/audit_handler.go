package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sigelp/backend/internal/services"
)

// AuditHandler exposes the read-only audit surface. Records are written
// exclusively by the other handlers through AuditService.Record.
type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListEventTypes returns the fixed catalog of auditable actions
func (h *AuditHandler) ListEventTypes(c *gin.Context) {
	types, err := h.auditService.GetEventTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list event types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"event_types": types, "count": len(types)})
}

// ListRecords returns audit records filtered by actor, event type and date
// range, newest first
func (h *AuditHandler) ListRecords(c *gin.Context) {
	page, limit := pagination(c)

	var actorID *uuid.UUID
	if raw := c.Query("actor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid actor_id"})
			return
		}
		actorID = &id
	}
	eventTypeID := queryUint(c, "event_type_id")
	from := queryDate(c, "from")
	to := queryDate(c, "to")

	records, total, err := h.auditService.GetRecords(page, limit, actorID, eventTypeID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list audit records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
