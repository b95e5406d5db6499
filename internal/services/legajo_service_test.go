package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/sigelp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLegajoService(t *testing.T) (*gorm.DB, *LegajoService, *StorageService) {
	db := newTestDB(t)
	cfg := testConfig(t)
	storage := NewStorageService(cfg)
	svc := NewLegajoService(db, cfg, storage, nil)
	return db, svc, storage
}

func seedDocumentType(t *testing.T, db *gorm.DB, sectionNumber, typeNumber int) *models.DocumentType {
	t.Helper()

	section := models.LegajoSection{
		Number: sectionNumber,
		Name:   fmt.Sprintf("Sección de prueba %d", sectionNumber),
		Active: true,
		Order:  sectionNumber,
	}
	require.NoError(t, db.Where("number = ?", sectionNumber).FirstOrCreate(&section).Error)
	docType := models.DocumentType{
		SectionID: section.ID,
		Number:    typeNumber,
		Name:      "Tipo de prueba",
		Active:    true,
	}
	require.NoError(t, db.Create(&docType).Error)
	return &docType
}

func TestLegajoCreateDocumentStoresBlobAndRow(t *testing.T) {
	db, svc, storage := newLegajoService(t)
	person := seedPersonnel(t, db, "45678912")
	uploader := seedUser(t, db, "archivero", models.RoleEncargado)
	docType := seedDocumentType(t, db, 1, 1)

	content := "%PDF-1.4 contenido de prueba"
	doc := &models.LegajoDocument{
		PersonnelID:    person.ID,
		DocumentTypeID: docType.ID,
		Name:           "Currículum Vitae",
		FileName:       "cv.pdf",
		ContentType:    "application/pdf",
		UploadedByID:   uploader.ID,
	}
	require.NoError(t, svc.CreateDocument(context.Background(), doc, strings.NewReader(content)))

	assert.NotEmpty(t, doc.StorageKey)
	assert.EqualValues(t, len(content), doc.Size)
	assert.Len(t, doc.Checksum, 64)

	stored, err := os.ReadFile(storage.AbsPath(doc.StorageKey))
	require.NoError(t, err)
	assert.Equal(t, content, string(stored))
}

func TestLegajoCreateDocumentUnknownTypeFails(t *testing.T) {
	db, svc, _ := newLegajoService(t)
	person := seedPersonnel(t, db, "45678912")
	uploader := seedUser(t, db, "archivero", models.RoleEncargado)

	doc := &models.LegajoDocument{
		PersonnelID:    person.ID,
		DocumentTypeID: 99,
		Name:           "Documento",
		FileName:       "doc.pdf",
		UploadedByID:   uploader.ID,
	}
	err := svc.CreateDocument(context.Background(), doc, strings.NewReader("x"))
	assert.ErrorContains(t, err, "document type")
}

func TestLegajoUpdateDocumentKeepsBlob(t *testing.T) {
	db, svc, _ := newLegajoService(t)
	person := seedPersonnel(t, db, "45678912")
	uploader := seedUser(t, db, "archivero", models.RoleEncargado)
	docType := seedDocumentType(t, db, 1, 1)

	doc := &models.LegajoDocument{
		PersonnelID:    person.ID,
		DocumentTypeID: docType.ID,
		Name:           "Original",
		FileName:       "doc.pdf",
		UploadedByID:   uploader.ID,
	}
	require.NoError(t, svc.CreateDocument(context.Background(), doc, strings.NewReader("datos")))
	key := doc.StorageKey

	newName := "Renombrado"
	updated, err := svc.UpdateDocument(doc.ID, DocumentUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", updated.Name)
	assert.Equal(t, key, updated.StorageKey)
}

func TestLegajoDeleteDocumentRemovesBlob(t *testing.T) {
	db, svc, storage := newLegajoService(t)
	person := seedPersonnel(t, db, "45678912")
	uploader := seedUser(t, db, "archivero", models.RoleEncargado)
	docType := seedDocumentType(t, db, 1, 1)

	doc := &models.LegajoDocument{
		PersonnelID:    person.ID,
		DocumentTypeID: docType.ID,
		FileName:       "doc.pdf",
		UploadedByID:   uploader.ID,
	}
	require.NoError(t, svc.CreateDocument(context.Background(), doc, strings.NewReader("datos")))
	abs := storage.AbsPath(doc.StorageKey)

	require.NoError(t, svc.DeleteDocument(context.Background(), doc.ID))

	_, err := os.Stat(abs)
	assert.True(t, os.IsNotExist(err))
	_, err = svc.GetByID(doc.ID)
	assert.Error(t, err)
}

func TestLegajoGroupByType(t *testing.T) {
	db, svc, _ := newLegajoService(t)
	person := seedPersonnel(t, db, "45678912")
	uploader := seedUser(t, db, "archivero", models.RoleEncargado)
	cvType := seedDocumentType(t, db, 1, 1)
	variosType := seedDocumentType(t, db, 9, 9)

	for i := 0; i < 2; i++ {
		doc := &models.LegajoDocument{
			PersonnelID:    person.ID,
			DocumentTypeID: cvType.ID,
			FileName:       "cv.pdf",
			UploadedByID:   uploader.ID,
		}
		require.NoError(t, svc.CreateDocument(context.Background(), doc, strings.NewReader("cv")))
	}
	doc := &models.LegajoDocument{
		PersonnelID:    person.ID,
		DocumentTypeID: variosType.ID,
		FileName:       "varios.pdf",
		UploadedByID:   uploader.ID,
	}
	require.NoError(t, svc.CreateDocument(context.Background(), doc, strings.NewReader("v")))

	groups, err := svc.GroupByType(person.ID)
	require.NoError(t, err)

	counts := map[uint]int{}
	for _, g := range groups {
		counts[g.Type.ID] = g.Count
	}
	assert.Equal(t, 2, counts[cvType.ID])
	assert.Equal(t, 1, counts[variosType.ID])
}

func TestLegajoDocumentTypeByNumber(t *testing.T) {
	db, svc, _ := newLegajoService(t)
	seedDocumentType(t, db, 1, 1)
	varios := seedDocumentType(t, db, 9, 9)

	found, err := svc.DocumentTypeByNumber(9)
	require.NoError(t, err)
	assert.Equal(t, varios.ID, found.ID)

	_, err = svc.DocumentTypeByNumber(77)
	assert.Error(t, err)
}
