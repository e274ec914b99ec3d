package persistence

import (
	"context"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCatalogRepository implements correspondence.CatalogRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// ListLetterTypes returns the letter types ordered by code
func (r *GormCatalogRepository) ListLetterTypes(ctx context.Context) ([]correspondence.LetterType, error) {
	var rows []models.LetterTypeModel
	if err := r.db.WithContext(ctx).Order("sort_order ASC, code ASC").Find(&rows).Error; err != nil {
		return nil, translateError("list letter types", err)
	}
	types := make([]correspondence.LetterType, len(rows))
	for i := range rows {
		types[i] = rows[i].ToDomain()
	}
	return types, nil
}

// ListDivisions returns the divisions in catalog order
func (r *GormCatalogRepository) ListDivisions(ctx context.Context) ([]correspondence.Division, error) {
	var rows []models.DivisionModel
	if err := r.db.WithContext(ctx).Order("sort_order ASC, code ASC").Find(&rows).Error; err != nil {
		return nil, translateError("list divisions", err)
	}
	divisions := make([]correspondence.Division, len(rows))
	for i := range rows {
		divisions[i] = rows[i].ToDomain()
	}
	return divisions, nil
}

// FindLetterType finds a letter type by code
func (r *GormCatalogRepository) FindLetterType(ctx context.Context, code string) (*correspondence.LetterType, error) {
	var row models.LetterTypeModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).Take(&row).Error; err != nil {
		return nil, translateError("find letter type", err)
	}
	lt := row.ToDomain()
	return &lt, nil
}

// FindDivision finds a division by code
func (r *GormCatalogRepository) FindDivision(ctx context.Context, code string) (*correspondence.Division, error) {
	var row models.DivisionModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).Take(&row).Error; err != nil {
		return nil, translateError("find division", err)
	}
	d := row.ToDomain()
	return &d, nil
}

// SeedCatalogs inserts the built-in letter types and divisions, leaving
// existing rows untouched.
func SeedCatalogs(ctx context.Context, db *gorm.DB) error {
	defaultTypes := correspondence.DefaultLetterTypes()
	typeRows := make([]models.LetterTypeModel, len(defaultTypes))
	for i, lt := range defaultTypes {
		typeRows[i] = models.LetterTypeModel{Code: lt.Code, Name: lt.Name, SortOrder: i + 1}
	}

	defaultDivisions := correspondence.DefaultDivisions()
	divisionRows := make([]models.DivisionModel, len(defaultDivisions))
	for i, d := range defaultDivisions {
		divisionRows[i] = models.DivisionModel{Code: d.Code, Name: d.Name, SortOrder: i + 1}
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&typeRows).Error; err != nil {
			return translateError("seed letter types", err)
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&divisionRows).Error; err != nil {
			return translateError("seed divisions", err)
		}
		return nil
	})
}

var _ correspondence.CatalogRepository = (*GormCatalogRepository)(nil)
