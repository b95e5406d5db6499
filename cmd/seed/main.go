package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/sigelp/backend/internal/config"
	"github.com/sigelp/backend/internal/models"
	"github.com/sigelp/backend/internal/services"
)

// Seeds the catalogs a fresh SIGELP deployment needs: the audit event
// types, the nine legajo sections with their baseline document types, and
// the default admin account.
func main() {
	resetAudit := flag.Bool("reset-audit", false, "destructively rebuild the audit catalog, deleting ALL audit records")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.New()

	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	auditService := services.NewAuditService(db)
	orgService := services.NewOrganizationService(db)
	adminService := services.NewAdminService(db, cfg)

	if *resetAudit {
		if err := auditService.Reseed(); err != nil {
			log.Fatalf("Failed to reseed audit catalog: %v", err)
		}
		log.Println("Audit catalog rebuilt, existing records removed")
	} else {
		if err := auditService.EnsureCatalog(); err != nil {
			log.Fatalf("Failed to seed audit catalog: %v", err)
		}
		log.Println("Audit event types in place")
	}

	if err := orgService.SeedLegajoSections(); err != nil {
		log.Fatalf("Failed to seed legajo sections: %v", err)
	}
	log.Println("Legajo sections and baseline document types in place")

	if err := adminService.CreateDefaultAdmin(); err != nil {
		log.Fatalf("Failed to create default admin: %v", err)
	}

	log.Println("Seed complete")
}
