package persistence

import (
	"context"
	"time"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCounterRepository implements correspondence.CounterRepository using GORM
type GormCounterRepository struct {
	db *gorm.DB
}

// NewGormCounterRepository creates a new GormCounterRepository
func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// AllocateNext seeds missing counter rows, locks the global row and bumps
// both counters. Callers run it inside a transaction so the lock is held
// until the letter carrying the serial is archived.
func (r *GormCounterRepository) AllocateNext(ctx context.Context, typeCode string) (int64, error) {
	db := r.db.WithContext(ctx)
	now := time.Now().UTC()
	keys := []string{correspondence.GlobalSequenceKey, typeCode}

	seed := []models.LetterCounterModel{
		{Key: correspondence.GlobalSequenceKey, UpdatedAt: now},
		{Key: typeCode, UpdatedAt: now},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, translateError("seed counters", err)
	}

	var global models.LetterCounterModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("counter_key = ?", correspondence.GlobalSequenceKey).
		Take(&global).Error; err != nil {
		return 0, translateError("lock global sequence", err)
	}

	if err := db.Model(&models.LetterCounterModel{}).
		Where("counter_key IN ?", keys).
		Updates(map[string]any{
			"counter_value": gorm.Expr("counter_value + ?", 1),
			"updated_at":    now,
		}).Error; err != nil {
		return 0, translateError("increment counters", err)
	}

	return global.Value + 1, nil
}

// ReadAll returns every stored counter
func (r *GormCounterRepository) ReadAll(ctx context.Context) (map[string]int64, error) {
	var rows []models.LetterCounterModel
	if err := r.db.WithContext(ctx).Order("counter_key ASC").Find(&rows).Error; err != nil {
		return nil, translateError("read counters", err)
	}
	counters := make(map[string]int64, len(rows))
	for _, row := range rows {
		counters[row.Key] = row.Value
	}
	return counters, nil
}

// Get returns the value of one counter, zero when the key was never written
func (r *GormCounterRepository) Get(ctx context.Context, key string) (int64, error) {
	var row models.LetterCounterModel
	result := r.db.WithContext(ctx).Where("counter_key = ?", key).Limit(1).Find(&row)
	if result.Error != nil {
		return 0, translateError("get counter", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, nil
	}
	return row.Value, nil
}

// GetForUpdate seeds key when missing and reads it under a row lock, so a
// concurrent AllocateNext on another connection waits for the override.
func (r *GormCounterRepository) GetForUpdate(ctx context.Context, key string) (int64, error) {
	db := r.db.WithContext(ctx)

	seed := models.LetterCounterModel{Key: key, UpdatedAt: time.Now().UTC()}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, translateError("seed counter", err)
	}

	var row models.LetterCounterModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("counter_key = ?", key).
		Take(&row).Error; err != nil {
		return 0, translateError("lock counter", err)
	}
	return row.Value, nil
}

// Override sets the value of one counter, creating it when missing
func (r *GormCounterRepository) Override(ctx context.Context, key string, value int64) error {
	row := models.LetterCounterModel{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "counter_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"counter_value", "updated_at"}),
	}).Create(&row).Error
	return translateError("override counter", err)
}

var _ correspondence.CounterRepository = (*GormCounterRepository)(nil)
