package services

import (
	"testing"
	"time"

	"github.com/sigelp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscalafonOpenRowPropagatesToPersonnel(t *testing.T) {
	db := newTestDB(t)
	svc := NewEscalafonService(db)
	areaID, regimeID, conditionID, positionID := seedCatalogs(t, db)
	person := seedPersonnel(t, db, "45678912")

	row := &models.Escalafon{
		PersonnelID: person.ID,
		AreaID:      areaID,
		RegimeID:    regimeID,
		ConditionID: conditionID,
		PositionID:  positionID,
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Resolution:  "R.A. 123-2024",
	}
	require.NoError(t, svc.Create(row))
	assert.True(t, row.IsCurrent())

	var refreshed models.Personnel
	require.NoError(t, db.First(&refreshed, "id = ?", person.ID).Error)
	require.NotNil(t, refreshed.AreaID)
	assert.Equal(t, areaID, *refreshed.AreaID)
	require.NotNil(t, refreshed.RegimeID)
	assert.Equal(t, regimeID, *refreshed.RegimeID)
	require.NotNil(t, refreshed.ConditionID)
	assert.Equal(t, conditionID, *refreshed.ConditionID)
	require.NotNil(t, refreshed.PositionID)
	assert.Equal(t, positionID, *refreshed.PositionID)
}

func TestEscalafonClosedRowDoesNotPropagate(t *testing.T) {
	db := newTestDB(t)
	svc := NewEscalafonService(db)
	areaID, regimeID, conditionID, positionID := seedCatalogs(t, db)
	person := seedPersonnel(t, db, "45678912")

	end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	row := &models.Escalafon{
		PersonnelID: person.ID,
		AreaID:      areaID,
		RegimeID:    regimeID,
		ConditionID: conditionID,
		PositionID:  positionID,
		StartDate:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     &end,
	}
	require.NoError(t, svc.Create(row))
	assert.False(t, row.IsCurrent())

	var refreshed models.Personnel
	require.NoError(t, db.First(&refreshed, "id = ?", person.ID).Error)
	assert.Nil(t, refreshed.AreaID)
	assert.Nil(t, refreshed.PositionID)
}

func TestEscalafonCreateUnknownPersonnelFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewEscalafonService(db)
	areaID, regimeID, conditionID, positionID := seedCatalogs(t, db)

	row := &models.Escalafon{
		PersonnelID: seedPersonnel(t, db, "11111111").ID,
		AreaID:      areaID,
		RegimeID:    regimeID,
		ConditionID: conditionID,
		PositionID:  positionID,
		StartDate:   time.Now(),
	}
	require.NoError(t, svc.Create(row))

	require.NoError(t, db.Where("1 = 1").Delete(&models.Personnel{}).Error)
	orphan := &models.Escalafon{
		PersonnelID: row.PersonnelID,
		AreaID:      areaID,
		RegimeID:    regimeID,
		ConditionID: conditionID,
		PositionID:  positionID,
		StartDate:   time.Now(),
	}
	err := svc.Create(orphan)
	assert.Error(t, err)
}

func TestEscalafonUpdateClearEndReopensRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewEscalafonService(db)
	areaID, regimeID, conditionID, positionID := seedCatalogs(t, db)
	person := seedPersonnel(t, db, "45678912")

	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	row := &models.Escalafon{
		PersonnelID: person.ID,
		AreaID:      areaID,
		RegimeID:    regimeID,
		ConditionID: conditionID,
		PositionID:  positionID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     &end,
	}
	require.NoError(t, svc.Create(row))

	updated, err := svc.Update(row.ID, EscalafonUpdate{ClearEnd: true})
	require.NoError(t, err)
	assert.Nil(t, updated.EndDate)
	assert.True(t, updated.IsCurrent())
}

func TestEscalafonHistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewEscalafonService(db)
	areaID, regimeID, conditionID, positionID := seedCatalogs(t, db)
	person := seedPersonnel(t, db, "45678912")

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	oldEnd := time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	first := &models.Escalafon{
		PersonnelID: person.ID, AreaID: areaID, RegimeID: regimeID,
		ConditionID: conditionID, PositionID: positionID,
		StartDate: old, EndDate: &oldEnd,
	}
	require.NoError(t, svc.Create(first))
	second := &models.Escalafon{
		PersonnelID: person.ID, AreaID: areaID, RegimeID: regimeID,
		ConditionID: conditionID, PositionID: positionID,
		StartDate: recent,
	}
	require.NoError(t, svc.Create(second))

	rows, err := svc.GetByPersonnel(person.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)
}
