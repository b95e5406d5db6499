package services

import (
	"errors"

	"github.com/sigelp/backend/internal/models"
	"gorm.io/gorm"
)

// OrganizationService manages the catalog entities everything else
// references: areas, regimes, labor conditions, positions, legajo sections
// and document types.
type OrganizationService struct {
	db *gorm.DB
}

func NewOrganizationService(db *gorm.DB) *OrganizationService {
	return &OrganizationService{db: db}
}

// catalogFilter applies the shared active/search list filters
func catalogFilter(query *gorm.DB, active *bool, search, searchColumns string) *gorm.DB {
	if active != nil {
		query = query.Where("active = ?", *active)
	}
	if search != "" {
		like := "%" + search + "%"
		if searchColumns == "name_and_code" {
			query = query.Where("name LIKE ? OR code LIKE ?", like, like)
		} else {
			query = query.Where("name LIKE ?", like)
		}
	}
	return query
}

// Areas

func (s *OrganizationService) CreateArea(area *models.Area) error {
	return s.db.Create(area).Error
}

func (s *OrganizationService) GetAreas(active *bool, search string) ([]*models.Area, error) {
	var areas []*models.Area
	query := catalogFilter(s.db.Model(&models.Area{}), active, search, "name_and_code")
	if err := query.Order("name").Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

func (s *OrganizationService) GetArea(id uint) (*models.Area, error) {
	var area models.Area
	if err := s.db.First(&area, id).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

func (s *OrganizationService) UpdateArea(id uint, name, description, code *string) (*models.Area, error) {
	var area models.Area
	if err := s.db.First(&area, id).Error; err != nil {
		return nil, err
	}
	if name != nil {
		area.Name = *name
	}
	if description != nil {
		area.Description = *description
	}
	if code != nil {
		area.Code = *code
	}
	if err := s.db.Save(&area).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

func (s *OrganizationService) ToggleArea(id uint) (*models.Area, error) {
	var area models.Area
	if err := s.db.First(&area, id).Error; err != nil {
		return nil, err
	}
	area.Active = !area.Active
	if err := s.db.Model(&area).Update("active", area.Active).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

func (s *OrganizationService) DeleteArea(id uint) error {
	result := s.db.Delete(&models.Area{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Regimes

func (s *OrganizationService) CreateRegime(regime *models.Regime) error {
	return s.db.Create(regime).Error
}

func (s *OrganizationService) GetRegimes(active *bool) ([]*models.Regime, error) {
	var regimes []*models.Regime
	query := catalogFilter(s.db.Model(&models.Regime{}), active, "", "")
	if err := query.Order("name").Find(&regimes).Error; err != nil {
		return nil, err
	}
	return regimes, nil
}

func (s *OrganizationService) UpdateRegime(id uint, name, description *string) (*models.Regime, error) {
	var regime models.Regime
	if err := s.db.First(&regime, id).Error; err != nil {
		return nil, err
	}
	if name != nil {
		regime.Name = *name
	}
	if description != nil {
		regime.Description = *description
	}
	if err := s.db.Save(&regime).Error; err != nil {
		return nil, err
	}
	return &regime, nil
}

func (s *OrganizationService) ToggleRegime(id uint) (*models.Regime, error) {
	var regime models.Regime
	if err := s.db.First(&regime, id).Error; err != nil {
		return nil, err
	}
	regime.Active = !regime.Active
	if err := s.db.Model(&regime).Update("active", regime.Active).Error; err != nil {
		return nil, err
	}
	return &regime, nil
}

// Labor conditions

func (s *OrganizationService) CreateLaborCondition(condition *models.LaborCondition) error {
	return s.db.Create(condition).Error
}

func (s *OrganizationService) GetLaborConditions(active *bool) ([]*models.LaborCondition, error) {
	var conditions []*models.LaborCondition
	query := catalogFilter(s.db.Model(&models.LaborCondition{}), active, "", "")
	if err := query.Order("name").Find(&conditions).Error; err != nil {
		return nil, err
	}
	return conditions, nil
}

func (s *OrganizationService) UpdateLaborCondition(id uint, name, description *string) (*models.LaborCondition, error) {
	var condition models.LaborCondition
	if err := s.db.First(&condition, id).Error; err != nil {
		return nil, err
	}
	if name != nil {
		condition.Name = *name
	}
	if description != nil {
		condition.Description = *description
	}
	if err := s.db.Save(&condition).Error; err != nil {
		return nil, err
	}
	return &condition, nil
}

func (s *OrganizationService) ToggleLaborCondition(id uint) (*models.LaborCondition, error) {
	var condition models.LaborCondition
	if err := s.db.First(&condition, id).Error; err != nil {
		return nil, err
	}
	condition.Active = !condition.Active
	if err := s.db.Model(&condition).Update("active", condition.Active).Error; err != nil {
		return nil, err
	}
	return &condition, nil
}

// Positions

func (s *OrganizationService) CreatePosition(position *models.Position) error {
	return s.db.Create(position).Error
}

func (s *OrganizationService) GetPositions(active *bool, search string) ([]*models.Position, error) {
	var positions []*models.Position
	query := catalogFilter(s.db.Model(&models.Position{}), active, search, "")
	if err := query.Order("name").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *OrganizationService) UpdatePosition(id uint, name, description *string) (*models.Position, error) {
	var position models.Position
	if err := s.db.First(&position, id).Error; err != nil {
		return nil, err
	}
	if name != nil {
		position.Name = *name
	}
	if description != nil {
		position.Description = *description
	}
	if err := s.db.Save(&position).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

func (s *OrganizationService) TogglePosition(id uint) (*models.Position, error) {
	var position models.Position
	if err := s.db.First(&position, id).Error; err != nil {
		return nil, err
	}
	position.Active = !position.Active
	if err := s.db.Model(&position).Update("active", position.Active).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

// Legajo sections

func (s *OrganizationService) GetSections(active *bool) ([]*models.LegajoSection, error) {
	var sections []*models.LegajoSection
	query := s.db.Model(&models.LegajoSection{})
	if active != nil {
		query = query.Where("active = ?", *active)
	}
	if err := query.Order("number").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// GetSectionWithTypes loads a section and its document types in order
func (s *OrganizationService) GetSectionWithTypes(id uint) (*models.LegajoSection, []*models.DocumentType, error) {
	var section models.LegajoSection
	if err := s.db.First(&section, id).Error; err != nil {
		return nil, nil, err
	}
	var types []*models.DocumentType
	if err := s.db.Where("section_id = ?", id).Order("number").Find(&types).Error; err != nil {
		return nil, nil, err
	}
	return &section, types, nil
}

func (s *OrganizationService) UpdateSection(id uint, name, description, color *string, order *int) (*models.LegajoSection, error) {
	var section models.LegajoSection
	if err := s.db.First(&section, id).Error; err != nil {
		return nil, err
	}
	if name != nil {
		section.Name = *name
	}
	if description != nil {
		section.Description = *description
	}
	if color != nil {
		section.Color = *color
	}
	if order != nil {
		section.Order = *order
	}
	if err := s.db.Save(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// Document types

func (s *OrganizationService) CreateDocumentType(docType *models.DocumentType) error {
	var section models.LegajoSection
	if err := s.db.First(&section, docType.SectionID).Error; err != nil {
		return errors.New("section not found")
	}
	return s.db.Create(docType).Error
}

func (s *OrganizationService) GetDocumentTypes(sectionID *uint, active *bool) ([]*models.DocumentType, error) {
	var types []*models.DocumentType
	query := s.db.Model(&models.DocumentType{}).Preload("Section")
	if sectionID != nil {
		query = query.Where("section_id = ?", *sectionID)
	}
	if active != nil {
		query = query.Where("active = ?", *active)
	}
	if err := query.Order("section_id, number").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (s *OrganizationService) UpdateDocumentType(id uint, name, description *string, mandatory *bool, order *int) (*models.DocumentType, error) {
	var docType models.DocumentType
	if err := s.db.First(&docType, id).Error; err != nil {
		return nil, err
	}
	if name != nil {
		docType.Name = *name
	}
	if description != nil {
		docType.Description = *description
	}
	if mandatory != nil {
		docType.Mandatory = *mandatory
	}
	if order != nil {
		docType.Order = *order
	}
	if err := s.db.Save(&docType).Error; err != nil {
		return nil, err
	}
	return &docType, nil
}

// Seeding

type sectionSeed struct {
	number int
	name   string
	color  string
	types  []string
}

var legajoSectionSeeds = []sectionSeed{
	{1, "Currículo Vitae Datos", "#1976d2", []string{"Currículum Vitae", "Hoja de Datos Personales y Laborales"}},
	{2, "Documentos Personales y Familiares del Trabajador", "#388e3c", []string{"Documento Nacional de Identidad", "Registro de Estado Civil", "Declaración Jurada"}},
	{3, "Documentos de Estudio y de Capacitación", "#f57c00", []string{"Certificado de Estudios", "Constancia de Capacitación"}},
	{4, "Documentos de Ingreso y Vínculo Laboral", "#7b1fa2", []string{"Resolución de Nombramiento", "Contrato de Servicios Personales"}},
	{5, "Documentos de Desplazamiento", "#c2185b", []string{"Resolución de Rotación", "Resolución de Encargatura"}},
	{6, "Reconocimientos y Méritos", "#00796b", []string{"Resolución de Felicitación"}},
	{7, "Sanciones y Procesos Administrativos", "#d32f2f", []string{"Resolución de Sanción", "Informe de Proceso Administrativo"}},
	{8, "Documentos de Cese", "#5d4037", []string{"Resolución de Cese", "Liquidación de Beneficios Sociales"}},
	{9, "Documentos Varios", "#455a64", []string{"Documentos Varios"}},
}

// SeedLegajoSections creates the nine legajo sections and their baseline
// document types when missing. Safe to run repeatedly.
func (s *OrganizationService) SeedLegajoSections() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, seed := range legajoSectionSeeds {
			section := models.LegajoSection{
				Number: seed.number,
				Name:   seed.name,
				Color:  seed.color,
				Order:  seed.number,
				Active: true,
			}
			if err := tx.Where("number = ?", seed.number).
				FirstOrCreate(&section).Error; err != nil {
				return err
			}
			for i, typeName := range seed.types {
				docType := models.DocumentType{
					SectionID: section.ID,
					Number:    i + 1,
					Name:      typeName,
					Order:     i + 1,
					Active:    true,
				}
				// the catch-all type keeps number 9 so personnel
				// creation can auto-file under it
				if seed.number == 9 && typeName == "Documentos Varios" {
					docType.Number = 9
				}
				if err := tx.Where("section_id = ? AND number = ?", section.ID, docType.Number).
					FirstOrCreate(&docType).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *OrganizationService) ToggleDocumentType(id uint) (*models.DocumentType, error) {
	var docType models.DocumentType
	if err := s.db.First(&docType, id).Error; err != nil {
		return nil, err
	}
	docType.Active = !docType.Active
	if err := s.db.Model(&docType).Update("active", docType.Active).Error; err != nil {
		return nil, err
	}
	return &docType, nil
}
