package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sigelp/backend/internal/config"
	"github.com/sigelp/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
// One connection max, so every query sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Area{},
		&models.Regime{},
		&models.LaborCondition{},
		&models.Position{},
		&models.LegajoSection{},
		&models.DocumentType{},
		&models.Personnel{},
		&models.Escalafon{},
		&models.LegajoDocument{},
		&models.Ticket{},
		&models.AuditEventType{},
		&models.AuditRecord{},
	))
	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.BcryptCost = 4
	cfg.LocalDocsPath = t.TempDir()
	return cfg
}

// seedCatalogs inserts the minimal area/regime/condition/position rows most
// scenarios need and returns their ids in that order.
func seedCatalogs(t *testing.T, db *gorm.DB) (uint, uint, uint, uint) {
	t.Helper()

	area := models.Area{Name: "Gerencia de Administración", Code: "GAF", Active: true}
	require.NoError(t, db.Create(&area).Error)
	regime := models.Regime{Name: "Decreto Legislativo 276", Active: true}
	require.NoError(t, db.Create(&regime).Error)
	condition := models.LaborCondition{Name: "NOMBRADOS", Active: true}
	require.NoError(t, db.Create(&condition).Error)
	position := models.Position{Name: "Especialista Administrativo", Active: true}
	require.NoError(t, db.Create(&position).Error)

	return area.ID, regime.ID, condition.ID, position.ID
}

func seedPersonnel(t *testing.T, db *gorm.DB, dni string) *models.Personnel {
	t.Helper()

	person := &models.Personnel{
		DNI:          dni,
		FirstNames:   "María Elena",
		PaternalName: "Quispe",
		MaternalName: "Huamán",
		Active:       true,
	}
	require.NoError(t, db.Create(person).Error)
	return person
}

var testDNICounter uint32

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := &models.User{
		Username:  username,
		Email:     username + "@sigelp.gob.pe",
		Password:  "x",
		FirstName: "Test",
		LastName:  "User",
		DNI:       fmt.Sprintf("%08d", atomic.AddUint32(&testDNICounter, 1)),
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
