package persistence

import (
	"context"

	appcorr "github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/application/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Counter allocation and archiving share one transaction, so a failed
// archive write rolls the counters back.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// Begin and commit failures surface as StorageUnavailable.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appcorr.TransactionalRepositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	if err != nil && shared.CodeOf(err) == "" {
		return shared.NewStorageError("transaction", err)
	}
	return err
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// CounterRepo returns the counter repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CounterRepo() correspondence.CounterRepository {
	return NewGormCounterRepository(r.tx)
}

// LetterRepo returns the letter repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LetterRepo() correspondence.LetterRepository {
	return NewGormLetterRepository(r.tx)
}

var _ appcorr.TransactionScope = (*GormTransactionScope)(nil)
var _ appcorr.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
