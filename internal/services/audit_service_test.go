package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sigelp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuditService(t *testing.T) (*gorm.DB, *AuditService, *models.User) {
	db := newTestDB(t)
	svc := NewAuditService(db)
	require.NoError(t, svc.EnsureCatalog())
	actor := seedUser(t, db, "auditor", models.RoleAdmin)
	return db, svc, actor
}

func TestAuditCatalogHasNineFixedEntries(t *testing.T) {
	_, svc, _ := newAuditService(t)

	types, err := svc.GetEventTypes()
	require.NoError(t, err)
	require.Len(t, types, 9)

	assert.Equal(t, uint(1), types[0].ID)
	assert.Equal(t, "Modificación de Usuario", types[0].Name)
	assert.Equal(t, uint(2), types[1].ID)
	assert.Equal(t, "Creación de Usuario", types[1].Name)
	assert.Equal(t, uint(9), types[8].ID)
	assert.Equal(t, "Desactivación de Usuario", types[8].Name)
}

func TestAuditRecordSuccess(t *testing.T) {
	db, svc, actor := newAuditService(t)
	affected := seedUser(t, db, "afectado", models.RoleEncargado).ID

	record := svc.Record(actor.ID, models.EventUserCreated, &affected, nil)
	require.NotNil(t, record)
	assert.Equal(t, actor.ID, record.ActorID)
	assert.Equal(t, uint(models.EventUserCreated), record.EventTypeID)
	require.NotNil(t, record.AffectedUserID)
	assert.Equal(t, affected, *record.AffectedUserID)
	assert.Nil(t, record.AffectedPersonnelID)
}

func TestAuditRecordUnknownEventIsSwallowed(t *testing.T) {
	_, svc, actor := newAuditService(t)

	record := svc.Record(actor.ID, models.EventType(42), nil, nil)
	assert.Nil(t, record)

	// nothing was stored
	records, total, err := svc.GetRecords(1, 10, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, records)
}

func TestAuditGetRecordsFilters(t *testing.T) {
	db, svc, actor := newAuditService(t)
	other := seedUser(t, db, "otro", models.RoleEncargado).ID

	svc.Record(actor.ID, models.EventUserCreated, &other, nil)
	svc.Record(actor.ID, models.EventTicketCreated, nil, nil)
	svc.Record(actor.ID, models.EventTicketResolved, nil, nil)

	// by event type
	eventID := uint(models.EventTicketCreated)
	records, total, err := svc.GetRecords(1, 10, nil, &eventID, nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, records, 1)
	assert.Equal(t, uint(models.EventTicketCreated), records[0].EventTypeID)

	// by actor
	records, total, err = svc.GetRecords(1, 10, &actor.ID, nil, nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	unknownActor := uuid.New()
	_, total, err = svc.GetRecords(1, 10, &unknownActor, nil, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, total)

	// inclusive date bounds
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	_, total, err = svc.GetRecords(1, 10, nil, nil, &past, &future)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	_, total, err = svc.GetRecords(1, 10, nil, nil, &future, nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestAuditRecordsNewestFirst(t *testing.T) {
	_, svc, actor := newAuditService(t)

	first := svc.Record(actor.ID, models.EventUserCreated, nil, nil)
	time.Sleep(5 * time.Millisecond)
	second := svc.Record(actor.ID, models.EventUserModified, nil, nil)

	records, _, err := svc.GetRecords(1, 10, nil, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
}

func TestAuditGetActionCount(t *testing.T) {
	_, svc, actor := newAuditService(t)

	svc.Record(actor.ID, models.EventUserDeactivated, nil, nil)
	svc.Record(actor.ID, models.EventUserDeactivated, nil, nil)
	svc.Record(actor.ID, models.EventUserCreated, nil, nil)

	since := time.Now().Add(-time.Minute)
	count, err := svc.GetActionCount(actor.ID, models.EventUserDeactivated, since)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = svc.GetActionCount(actor.ID, models.EventUserDeactivated, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAuditReseedIsDestructiveAndIdempotent(t *testing.T) {
	_, svc, actor := newAuditService(t)

	svc.Record(actor.ID, models.EventUserCreated, nil, nil)
	_, total, err := svc.GetRecords(1, 10, nil, nil, nil, nil)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	require.NoError(t, svc.Reseed())
	require.NoError(t, svc.Reseed())

	_, total, err = svc.GetRecords(1, 10, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, total)

	types, err := svc.GetEventTypes()
	require.NoError(t, err)
	assert.Len(t, types, 9)
}

func TestAuditEnsureCatalogKeepsRecords(t *testing.T) {
	_, svc, actor := newAuditService(t)

	svc.Record(actor.ID, models.EventUserCreated, nil, nil)
	require.NoError(t, svc.EnsureCatalog())

	_, total, err := svc.GetRecords(1, 10, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
