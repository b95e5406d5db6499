package services

import (
	"log"

	"github.com/sigelp/backend/internal/config"
	"github.com/sigelp/backend/internal/models"
	"github.com/sigelp/backend/pkg/crypto"
	"gorm.io/gorm"
)

// AdminService covers bootstrap and dashboard concerns that do not belong
// to a single domain entity.
type AdminService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{db: db, cfg: cfg}
}

// CreateDefaultAdmin ensures at least one ADMIN account exists so a fresh
// deployment can be logged into. Does nothing when any admin is present.
func (s *AdminService) CreateDefaultAdmin() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := crypto.HashPassword(s.cfg.AdminPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:  s.cfg.AdminUsername,
		Email:     s.cfg.AdminEmail,
		Password:  hash,
		FirstName: "Administrador",
		LastName:  "SIGELP",
		Role:      models.RoleAdmin,
		IsActive:  true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("created default admin user %s", admin.Username)
	return nil
}

// DashboardStats aggregates the counters the admin landing page shows.
type DashboardStats struct {
	Users             int64 `json:"usuarios"`
	ActiveUsers       int64 `json:"usuarios_activos"`
	Personnel         int64 `json:"personal"`
	ActivePersonnel   int64 `json:"personal_activo"`
	LegajoDocuments   int64 `json:"documentos_legajo"`
	PendingTickets    int64 `json:"tickets_pendientes"`
	CompletedTickets  int64 `json:"tickets_completados"`
	EscalafonEntries  int64 `json:"registros_escalafon"`
	AuditRecordsToday int64 `json:"eventos_hoy"`
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.Users, s.db.Model(&models.User{})},
		{&stats.ActiveUsers, s.db.Model(&models.User{}).Where("is_active = ?", true)},
		{&stats.Personnel, s.db.Model(&models.Personnel{})},
		{&stats.ActivePersonnel, s.db.Model(&models.Personnel{}).Where("active = ?", true)},
		{&stats.LegajoDocuments, s.db.Model(&models.LegajoDocument{})},
		{&stats.PendingTickets, s.db.Model(&models.Ticket{}).Where("status = ?", models.TicketPending)},
		{&stats.CompletedTickets, s.db.Model(&models.Ticket{}).Where("status = ?", models.TicketCompleted)},
		{&stats.EscalafonEntries, s.db.Model(&models.Escalafon{})},
		{&stats.AuditRecordsToday, s.db.Model(&models.AuditRecord{}).Where("created_at >= CURRENT_DATE")},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
