package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLetterRepository implements correspondence.LetterRepository using GORM
type GormLetterRepository struct {
	db *gorm.DB
}

// NewGormLetterRepository creates a new GormLetterRepository
func NewGormLetterRepository(db *gorm.DB) *GormLetterRepository {
	return &GormLetterRepository{db: db}
}

// Upsert inserts a letter or replaces the stored letter with the same ID.
// A replaced letter keeps its archive position and creation time.
func (r *GormLetterRepository) Upsert(ctx context.Context, letter *correspondence.Letter) error {
	if strings.TrimSpace(letter.Number) == "" {
		return shared.NewDomainError("INVALID_INPUT", "letter has no number")
	}
	db := r.db.WithContext(ctx)
	model := models.LetterModelFromDomain(letter)

	if err := r.checkNumberOwner(db, model); err != nil {
		return err
	}

	var existing models.LetterModel
	result := db.Select("id", "archive_seq", "created_at").Where("id = ?", model.ID).Limit(1).Find(&existing)
	if result.Error != nil {
		return translateError("find letter", result.Error)
	}

	if result.RowsAffected > 0 {
		model.ArchiveSeq = existing.ArchiveSeq
		model.CreatedAt = existing.CreatedAt
		if err := db.Save(model).Error; err != nil {
			return r.writeError(db, model, err)
		}
		return nil
	}

	var lastSeq int64
	if err := db.Model(&models.LetterModel{}).
		Select("COALESCE(MAX(archive_seq), 0)").
		Scan(&lastSeq).Error; err != nil {
		return translateError("read archive sequence", err)
	}
	model.ArchiveSeq = lastSeq + 1
	if err := db.Create(model).Error; err != nil {
		return r.writeError(db, model, err)
	}
	return nil
}

func (r *GormLetterRepository) checkNumberOwner(db *gorm.DB, model *models.LetterModel) error {
	var owner models.LetterModel
	result := db.Select("id").Where("number_normalized = ?", model.NumberNormalized).Limit(1).Find(&owner)
	if result.Error != nil {
		return translateError("check number owner", result.Error)
	}
	if result.RowsAffected > 0 && owner.ID != model.ID {
		return shared.ErrNumberConflict
	}
	return nil
}

// writeError reports a unique violation on the number as NUMBER_CONFLICT.
// Any other failure, including a lost race on archive_seq, is StorageUnavailable.
func (r *GormLetterRepository) writeError(db *gorm.DB, model *models.LetterModel, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if ownerErr := r.checkNumberOwner(db, model); ownerErr != nil {
			return ownerErr
		}
	}
	return translateError("save letter", err)
}

// List returns every letter in insertion order
func (r *GormLetterRepository) List(ctx context.Context) ([]correspondence.Letter, error) {
	var rows []models.LetterModel
	if err := r.db.WithContext(ctx).Order("archive_seq ASC").Find(&rows).Error; err != nil {
		return nil, translateError("list letters", err)
	}
	return toDomainLetters(rows), nil
}

// FindByID finds a letter by ID
func (r *GormLetterRepository) FindByID(ctx context.Context, id uuid.UUID) (*correspondence.Letter, error) {
	var model models.LetterModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateError("find letter", err)
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a letter by its normalized number
func (r *GormLetterRepository) FindByNumber(ctx context.Context, number string) (*correspondence.Letter, error) {
	key := correspondence.NormalizeNumber(number)
	if key == "" {
		return nil, shared.ErrNotFound
	}
	var model models.LetterModel
	if err := r.db.WithContext(ctx).Where("number_normalized = ?", key).Take(&model).Error; err != nil {
		return nil, translateError("find letter by number", err)
	}
	return model.ToDomain(), nil
}

// Search returns one page of letters, newest archive entries first
func (r *GormLetterRepository) Search(ctx context.Context, filter correspondence.LetterFilter) ([]correspondence.Letter, int64, error) {
	filter.Filter = filter.Normalize()
	db := r.db.WithContext(ctx)

	var total int64
	if err := r.applyFilter(db.Model(&models.LetterModel{}), filter).Count(&total).Error; err != nil {
		return nil, 0, translateError("count letters", err)
	}

	var rows []models.LetterModel
	if err := r.applyFilter(db.Model(&models.LetterModel{}), filter).
		Order(letterOrderClause(filter)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, translateError("search letters", err)
	}
	return toDomainLetters(rows), total, nil
}

func letterOrderClause(filter correspondence.LetterFilter) string {
	field, dir := LetterOrder(filter.OrderBy, filter.OrderDir)
	if field == DefaultLetterSortField {
		return field + " " + dir
	}
	return field + " " + dir + ", " + DefaultLetterSortField + " " + dir
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s literally anywhere in a column compared with
// LIKE ... ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *GormLetterRepository) applyFilter(query *gorm.DB, filter correspondence.LetterFilter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := containsPattern(strings.ToLower(search))
		numberLike := containsPattern(correspondence.NormalizeNumber(search))
		query = query.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR number_normalized LIKE ? ESCAPE '\' OR LOWER(recipient) LIKE ? ESCAPE '\')`,
			like, numberLike, like)
	}
	if filter.TypeCode != "" {
		query = query.Where("type_code = ?", filter.TypeCode)
	}
	if filter.DivisionCode != "" {
		query = query.Where("division_code = ?", strings.ToUpper(filter.DivisionCode))
	}
	if filter.NumberOnly != nil {
		query = query.Where("is_number_only = ?", *filter.NumberOnly)
	}
	return query
}

type typeCountRow struct {
	TypeCode string
	Count    int64
}

// Stats counts the archive for the dashboard
func (r *GormLetterRepository) Stats(ctx context.Context, monthPrefix string) (*correspondence.LetterStats, error) {
	db := r.db.WithContext(ctx)
	stats := &correspondence.LetterStats{ByType: make(map[string]int64)}

	if err := db.Model(&models.LetterModel{}).Count(&stats.Total).Error; err != nil {
		return nil, translateError("count letters", err)
	}
	if err := db.Model(&models.LetterModel{}).
		Where("is_number_only = ?", false).
		Count(&stats.Issued).Error; err != nil {
		return nil, translateError("count issued letters", err)
	}
	if err := db.Model(&models.LetterModel{}).
		Where("issue_date LIKE ?", monthPrefix+"%").
		Count(&stats.ThisMonth).Error; err != nil {
		return nil, translateError("count letters this month", err)
	}

	var rows []typeCountRow
	if err := db.Model(&models.LetterModel{}).
		Select("type_code, COUNT(*) AS count").
		Group("type_code").
		Scan(&rows).Error; err != nil {
		return nil, translateError("count letters by type", err)
	}
	for _, row := range rows {
		stats.ByType[row.TypeCode] = row.Count
	}
	return stats, nil
}

func toDomainLetters(rows []models.LetterModel) []correspondence.Letter {
	letters := make([]correspondence.Letter, len(rows))
	for i := range rows {
		letters[i] = *rows[i].ToDomain()
	}
	return letters
}

var _ correspondence.LetterRepository = (*GormLetterRepository)(nil)
