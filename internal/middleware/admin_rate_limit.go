package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sigelp/backend/internal/models"
	"github.com/sigelp/backend/internal/services"
)

// AdminActionRateLimit counts an admin's recent occurrences of the given
// audited event and blocks the account for an hour when the burst looks like
// mass modification. Routes opt in by wrapping their sensitive handlers.
func AdminActionRateLimit(auditService *services.AuditService, redisClient *redis.Client, event models.EventType, maxActions, windowMinutes int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDInterface, exists := c.Get("userID")
		if !exists {
			c.Next()
			return
		}
		adminID, ok := userIDInterface.(uuid.UUID)
		if !ok {
			c.Next()
			return
		}

		ctx := context.Background()
		blockKey := fmt.Sprintf("admin_blocked:%s:%d", adminID.String(), event)

		if redisClient != nil {
			blocked, err := redisClient.Get(ctx, blockKey).Result()
			if err == nil && blocked == "1" {
				ttl, _ := redisClient.TTL(ctx, blockKey).Result()
				c.JSON(http.StatusForbidden, gin.H{
					"error":                 "admin_temporarily_blocked",
					"message":               "Cuenta bloqueada temporalmente por actividad masiva. Contacte al administrador del sistema.",
					"blocked_until_minutes": int(ttl.Minutes()),
				})
				c.Abort()
				return
			}
		}

		since := time.Now().Add(-time.Duration(windowMinutes) * time.Minute)
		count, err := auditService.GetActionCount(adminID, event, since)
		if err != nil {
			// counting failed, let the request through
			c.Next()
			return
		}

		if count >= int64(maxActions)*2 && redisClient != nil {
			_ = redisClient.Set(ctx, blockKey, "1", time.Hour).Err()
			c.JSON(http.StatusForbidden, gin.H{
				"error":               "admin_temporarily_blocked",
				"message":             "Demasiadas acciones detectadas. La cuenta queda bloqueada por una hora.",
				"blocked_for_minutes": 60,
			})
			c.Abort()
			return
		}

		if count >= int64(maxActions) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":               "rate_limit_exceeded",
				"message":             "Demasiadas acciones en poco tiempo. Espere unos minutos.",
				"retry_after_minutes": windowMinutes,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
