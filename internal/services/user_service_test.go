package services

import (
	"testing"

	"github.com/sigelp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserCreateHashesPasswordAndRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig(t))

	user := &models.User{
		Username:  "jperez",
		Email:     "jperez@sigelp.gob.pe",
		FirstName: "Juan",
		LastName:  "Pérez",
		DNI:       "45678912",
		Role:      models.RoleEncargado,
		IsActive:  true,
	}
	require.NoError(t, svc.Create(user, "Secreto123"))

	stored, err := svc.GetByUsername("jperez")
	require.NoError(t, err)
	assert.NotEqual(t, "Secreto123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("Secreto123")))

	dup := &models.User{
		Username:  "jperez",
		Email:     "otro@sigelp.gob.pe",
		FirstName: "Otro",
		LastName:  "Pérez",
		DNI:       "11223344",
		Role:      models.RoleEncargado,
	}
	err = svc.Create(dup, "Secreto123")
	assert.Error(t, err)
}

func TestUserUpdateRejectsUnknownRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig(t))
	user := seedUser(t, db, "jperez", models.RoleEncargado)

	bad := "GERENTE"
	_, err := svc.Update(user.ID, UserUpdate{Role: &bad})
	assert.Error(t, err)

	good := models.RoleSubgerente
	updated, err := svc.Update(user.ID, UserUpdate{Role: &good})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSubgerente, updated.Role)
}

func TestUserToggleActiveReportsDeactivationEdge(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig(t))
	user := seedUser(t, db, "jperez", models.RoleEncargado)

	toggled, deactivated, err := svc.ToggleActive(user.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	assert.True(t, deactivated)

	toggled, deactivated, err = svc.ToggleActive(user.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
	assert.False(t, deactivated)
}

// Deactivating twice records exactly one deactivation event: the second
// toggle re-activates and the edge is only the active to inactive flip.
func TestUserDeactivationAuditedOnlyOnTransition(t *testing.T) {
	db := newTestDB(t)
	userSvc := NewUserService(db, testConfig(t))
	auditSvc := NewAuditService(db)
	require.NoError(t, auditSvc.EnsureCatalog())

	admin := seedUser(t, db, "admin", models.RoleAdmin)
	target := seedUser(t, db, "jperez", models.RoleEncargado)

	for i := 0; i < 2; i++ {
		_, deactivated, err := userSvc.ToggleActive(target.ID)
		require.NoError(t, err)
		if deactivated {
			auditSvc.Record(admin.ID, models.EventUserDeactivated, &target.ID, nil)
		}
	}

	eventID := uint(models.EventUserDeactivated)
	records, total, err := auditSvc.GetRecords(1, 10, nil, &eventID, nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, records, 1)
	assert.Equal(t, admin.ID, records[0].ActorID)
	require.NotNil(t, records[0].AffectedUserID)
	assert.Equal(t, target.ID, *records[0].AffectedUserID)
}

func TestUserGetAllFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig(t))

	seedUser(t, db, "admin", models.RoleAdmin)
	active := seedUser(t, db, "jperez", models.RoleEncargado)
	inactive := seedUser(t, db, "mquispe", models.RoleEncargado)
	_, _, err := svc.ToggleActive(inactive.ID)
	require.NoError(t, err)

	users, total, err := svc.GetAll(1, 10, models.RoleEncargado, nil, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)

	isActive := true
	users, total, err = svc.GetAll(1, 10, models.RoleEncargado, &isActive, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, active.ID, users[0].ID)

	users, total, err = svc.GetAll(1, 10, "", nil, "quispe")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, inactive.ID, users[0].ID)
}
