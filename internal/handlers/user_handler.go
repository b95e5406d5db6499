package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sigelp/backend/internal/models"
	"github.com/sigelp/backend/internal/services"
	"github.com/sigelp/backend/pkg/validation"
)

type UserHandler struct {
	userService  *services.UserService
	auditService *services.AuditService
}

func NewUserHandler(userService *services.UserService, auditService *services.AuditService) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

// List returns users with optional role/active/search filters
func (h *UserHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	role := c.Query("role")
	isActive := queryBool(c, "is_active")
	search := c.Query("search")

	users, total, err := h.userService.GetAll(page, limit, role, isActive, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Get returns a single user by id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Create registers a new system user
func (h *UserHandler) Create(c *gin.Context) {
	var req struct {
		Username  string `json:"username" binding:"required"`
		Email     string `json:"email" binding:"required"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		DNI       string `json:"dni"`
		Phone     string `json:"phone"`
		Role      string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validation.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}
	if !validation.ValidateUsername(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username"})
		return
	}
	if !validation.ValidatePassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters with upper, lower and digit"})
		return
	}
	if req.DNI != "" && !validation.ValidateDNI(req.DNI) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "DNI must be 8 digits"})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleEncargado
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DNI:       req.DNI,
		Phone:     req.Phone,
		Role:      req.Role,
		IsActive:  true,
	}
	if err := h.userService.Create(user, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.auditService.Record(currentUserID(c), models.EventUserCreated, &user.ID, nil)

	c.JSON(http.StatusCreated, user)
}

// Update edits a user's profile fields or role
func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req struct {
		Email     *string `json:"email"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		DNI       *string `json:"dni"`
		Phone     *string `json:"phone"`
		Role      *string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email != nil && !validation.ValidateEmail(*req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}
	if req.DNI != nil && *req.DNI != "" && !validation.ValidateDNI(*req.DNI) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "DNI must be 8 digits"})
		return
	}

	user, err := h.userService.Update(id, services.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DNI:       req.DNI,
		Phone:     req.Phone,
		Role:      req.Role,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.auditService.Record(currentUserID(c), models.EventUserModified, &user.ID, nil)

	c.JSON(http.StatusOK, user)
}

// ToggleActive flips a user's active flag. Deactivation is the audited
// transition; re-activation is not.
func (h *UserHandler) ToggleActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	actorID := currentUserID(c)
	if id == actorID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot deactivate your own account"})
		return
	}

	user, deactivated, err := h.userService.ToggleActive(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if deactivated {
		h.auditService.Record(actorID, models.EventUserDeactivated, &user.ID, nil)
	}

	c.JSON(http.StatusOK, user)
}

// ResetPassword lets an admin set a new password for a user
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req struct {
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validation.ValidatePassword(req.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters with upper, lower and digit"})
		return
	}

	if err := h.userService.ResetPassword(id, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.auditService.Record(currentUserID(c), models.EventUserModified, &id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "password reset"})
}

// Delete is intentionally not supported. Accounts are deactivated so their
// audit trail stays attributable.
func (h *UserHandler) Delete(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "users cannot be deleted, deactivate instead"})
}
