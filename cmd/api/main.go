package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sigelp/backend/internal/config"
	"github.com/sigelp/backend/internal/handlers"
	"github.com/sigelp/backend/internal/middleware"
	"github.com/sigelp/backend/internal/models"
	"github.com/sigelp/backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database
	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize services
	authService := services.NewAuthService(db, redisClient, cfg)
	userService := services.NewUserService(db, cfg)
	auditService := services.NewAuditService(db)
	personnelService := services.NewPersonnelService(db)
	escalafonService := services.NewEscalafonService(db)
	ticketService := services.NewTicketService(db, cfg)
	orgService := services.NewOrganizationService(db)
	adminService := services.NewAdminService(db, cfg)
	storageService := services.NewStorageService(cfg)
	s3Service, err := services.NewS3Service(cfg)
	if err != nil {
		log.Fatalf("Failed to init S3 service: %v", err)
	}
	legajoService := services.NewLegajoService(db, cfg, storageService, s3Service)
	reportService := services.NewReportService(cfg)

	// Seed the legajo section catalog and the event type catalog when empty
	if err := orgService.SeedLegajoSections(); err != nil {
		log.Printf("Failed to seed legajo sections: %v", err)
	}
	if err := auditService.EnsureCatalog(); err != nil {
		log.Printf("Failed to seed audit event types: %v", err)
	}

	// Create admin user if not exists
	if err := adminService.CreateDefaultAdmin(); err != nil {
		log.Printf("Failed to create default admin: %v", err)
	}

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	personnelHandler := handlers.NewPersonnelHandler(personnelService, escalafonService, legajoService, auditService, cfg)
	escalafonHandler := handlers.NewEscalafonHandler(escalafonService, auditService)
	legajoHandler := handlers.NewLegajoHandler(legajoService, auditService, storageService, cfg)
	ticketHandler := handlers.NewTicketHandler(ticketService, reportService, auditService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	auditHandler := handlers.NewAuditHandler(auditService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Health check outside API group
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", middleware.Auth(authService), authHandler.Logout)
			auth.GET("/me", middleware.Auth(authService), authHandler.Me)
			auth.PUT("/password", middleware.Auth(authService), authHandler.ChangePassword)
		}

		// Everything below requires a valid session
		authed := api.Group("")
		authed.Use(middleware.Auth(authService))

		// Organization catalogs: readable by everyone, writable by admins
		org := authed.Group("/organizacion")
		{
			org.GET("/areas", orgHandler.ListAreas)
			org.GET("/areas/:id", orgHandler.GetArea)
			org.GET("/regimenes", orgHandler.ListRegimes)
			org.GET("/condiciones", orgHandler.ListLaborConditions)
			org.GET("/cargos", orgHandler.ListPositions)
			org.GET("/secciones", orgHandler.ListSections)
			org.GET("/secciones/:id", orgHandler.GetSection)
			org.GET("/tipos-documento", orgHandler.ListDocumentTypes)

			orgAdmin := org.Group("")
			orgAdmin.Use(middleware.AdminOnly())
			{
				orgAdmin.POST("/areas", orgHandler.CreateArea)
				orgAdmin.PUT("/areas/:id", orgHandler.UpdateArea)
				orgAdmin.POST("/areas/:id/toggle", orgHandler.ToggleArea)
				orgAdmin.POST("/regimenes", orgHandler.CreateRegime)
				orgAdmin.PUT("/regimenes/:id", orgHandler.UpdateRegime)
				orgAdmin.POST("/regimenes/:id/toggle", orgHandler.ToggleRegime)
				orgAdmin.POST("/condiciones", orgHandler.CreateLaborCondition)
				orgAdmin.PUT("/condiciones/:id", orgHandler.UpdateLaborCondition)
				orgAdmin.POST("/condiciones/:id/toggle", orgHandler.ToggleLaborCondition)
				orgAdmin.POST("/cargos", orgHandler.CreatePosition)
				orgAdmin.PUT("/cargos/:id", orgHandler.UpdatePosition)
				orgAdmin.POST("/cargos/:id/toggle", orgHandler.TogglePosition)
				orgAdmin.PUT("/secciones/:id", orgHandler.UpdateSection)
				orgAdmin.POST("/tipos-documento", orgHandler.CreateDocumentType)
				orgAdmin.PUT("/tipos-documento/:id", orgHandler.UpdateDocumentType)
				orgAdmin.POST("/tipos-documento/:id/toggle", orgHandler.ToggleDocumentType)
			}
		}

		// Personnel records
		personnel := authed.Group("/personal")
		personnel.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSubgerente, models.RoleEncargado))
		{
			personnel.GET("", personnelHandler.List)
			personnel.GET("/:id", personnelHandler.Get)
			personnel.POST("", personnelHandler.Create)
			personnel.PUT("/:id", personnelHandler.Update)
			personnel.POST("/:id/toggle", personnelHandler.ToggleActive)
			personnel.GET("/:id/escalafon", personnelHandler.GetEscalafon)
			personnel.GET("/:id/legajo", personnelHandler.GetLegajo)
		}

		// Career ledger
		escalafon := authed.Group("/escalafon")
		escalafon.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSubgerente, models.RoleEncargado))
		{
			escalafon.GET("", escalafonHandler.List)
			escalafon.GET("/:id", escalafonHandler.Get)
			escalafon.POST("", escalafonHandler.Create)
			escalafon.PUT("/:id", escalafonHandler.Update)
		}

		// Legajo document archive
		legajo := authed.Group("/legajos")
		legajo.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSubgerente, models.RoleEncargado))
		{
			legajo.GET("", legajoHandler.List)
			legajo.GET("/:id", legajoHandler.Get)
			legajo.GET("/:id/descargar", legajoHandler.Download)
			legajo.PUT("/:id", legajoHandler.Update)
			legajo.DELETE("/:id", middleware.AdminOnly(), legajoHandler.Delete)

			upload := legajo.Group("")
			upload.Use(middleware.UploadRateLimit(redisClient, cfg))
			{
				upload.POST("", legajoHandler.Upload)
			}
		}

		// Support tickets
		tickets := authed.Group("/tickets")
		{
			tickets.GET("", ticketHandler.List)
			tickets.GET("/estadisticas", ticketHandler.Stats)
			tickets.GET("/:id", ticketHandler.Get)
			tickets.GET("/:id/pdf", ticketHandler.PDF)
			tickets.POST("", middleware.RequireRoles(models.RoleCoordinador, models.RoleAdmin), ticketHandler.Create)
			tickets.PUT("/:id", middleware.RequireRoles(models.RoleCoordinador, models.RoleAdmin), ticketHandler.Update)
			tickets.POST("/:id/completar", middleware.RequireRoles(models.RoleCoordinador, models.RoleAdmin), ticketHandler.Complete)
		}

		// Admin surface
		admin := authed.Group("/admin")
		admin.Use(middleware.AdminOnly())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)

			admin.GET("/usuarios", userHandler.List)
			admin.GET("/usuarios/:id", userHandler.Get)
			admin.POST("/usuarios", userHandler.Create)
			admin.PUT("/usuarios/:id", userHandler.Update)
			admin.PUT("/usuarios/:id/password", userHandler.ResetPassword)
			admin.DELETE("/usuarios/:id", userHandler.Delete)

			// Deactivation bursts get blocked before they become mass actions
			deactivate := admin.Group("/usuarios")
			deactivate.Use(middleware.AdminActionRateLimit(auditService, redisClient, models.EventUserDeactivated, cfg.AdminRateLimitActions, cfg.AdminRateLimitWindowMinutes))
			{
				deactivate.POST("/:id/toggle", userHandler.ToggleActive)
			}

			admin.GET("/eventos", auditHandler.ListEventTypes)
			admin.GET("/registro-eventos", auditHandler.ListRecords)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
