package services

import (
	"testing"

	"github.com/sigelp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedLegajoSectionsIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)

	require.NoError(t, svc.SeedLegajoSections())
	require.NoError(t, svc.SeedLegajoSections())

	var sections int64
	require.NoError(t, db.Model(&models.LegajoSection{}).Count(&sections).Error)
	assert.EqualValues(t, 9, sections)

	var first models.LegajoSection
	require.NoError(t, db.Where("number = ?", 1).First(&first).Error)
	assert.Equal(t, "Currículo Vitae Datos", first.Name)

	var last models.LegajoSection
	require.NoError(t, db.Where("number = ?", 9).First(&last).Error)
	assert.Equal(t, "Documentos Varios", last.Name)
}

func TestSeedLegajoSectionsCreatesCatchAllType(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	require.NoError(t, svc.SeedLegajoSections())

	var docType models.DocumentType
	require.NoError(t, db.Where("number = ?", 9).First(&docType).Error)
	assert.Equal(t, "Documentos Varios", docType.Name)
	assert.Equal(t, "9.9", docType.Code)
}

func TestDocumentTypeCodeDerivedFromSection(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	require.NoError(t, svc.SeedLegajoSections())

	var section models.LegajoSection
	require.NoError(t, db.Where("number = ?", 3).First(&section).Error)

	docType := &models.DocumentType{
		SectionID: section.ID,
		Number:    3,
		Name:      "Título Profesional",
	}
	require.NoError(t, svc.CreateDocumentType(docType))
	assert.Equal(t, "3.3", docType.Code)
}

func TestAreaSearchMatchesNameAndCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)

	require.NoError(t, svc.CreateArea(&models.Area{Name: "Gerencia de Administración y Finanzas", Code: "GAF", Active: true}))
	require.NoError(t, svc.CreateArea(&models.Area{Name: "Sub Gerencia de Recursos Humanos", Code: "SGRH", Active: true}))

	byName, err := svc.GetAreas(nil, "recursos")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "SGRH", byName[0].Code)

	byCode, err := svc.GetAreas(nil, "GAF")
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "Gerencia de Administración y Finanzas", byCode[0].Name)
}

func TestGetAreaByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)

	area := &models.Area{Name: "Gerencia Municipal", Code: "GM", Active: true}
	require.NoError(t, svc.CreateArea(area))

	found, err := svc.GetArea(area.ID)
	require.NoError(t, err)
	assert.Equal(t, "GM", found.Code)

	_, err = svc.GetArea(9999)
	assert.Error(t, err)
}

func TestToggleAreaFlipsActiveFlag(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)

	area := &models.Area{Name: "Gerencia Municipal", Code: "GM", Active: true}
	require.NoError(t, svc.CreateArea(area))

	toggled, err := svc.ToggleArea(area.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	active := true
	listed, err := svc.GetAreas(&active, "")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestGetSectionWithTypesReturnsOnlyItsTypes(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	require.NoError(t, svc.SeedLegajoSections())

	var varios models.LegajoSection
	require.NoError(t, db.Where("number = ?", 9).First(&varios).Error)

	section, types, err := svc.GetSectionWithTypes(varios.ID)
	require.NoError(t, err)
	assert.Equal(t, "Documentos Varios", section.Name)
	require.NotEmpty(t, types)
	for _, dt := range types {
		assert.Equal(t, varios.ID, dt.SectionID)
	}
}
