package correspondence

import (
	"context"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
)

// TransactionScope provides transactional access to the counter and archive stores.
// Allocating a serial and archiving the letter that carries it happen inside one
// Execute call, so either both are persisted or neither is.
type TransactionScope interface {
	// Execute runs fn within a transaction. A returned error rolls everything back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories bound to the current transaction.
type TransactionalRepositories interface {
	CounterRepo() correspondence.CounterRepository
	LetterRepo() correspondence.LetterRepository
}

// NoOpTransactionScope runs the function directly against the given repositories.
// Used by tests.
type NoOpTransactionScope struct {
	counterRepo correspondence.CounterRepository
	letterRepo  correspondence.LetterRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	counterRepo correspondence.CounterRepository,
	letterRepo correspondence.LetterRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		counterRepo: counterRepo,
		letterRepo:  letterRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CounterRepo returns the counter repository.
func (s *NoOpTransactionScope) CounterRepo() correspondence.CounterRepository {
	return s.counterRepo
}

// LetterRepo returns the letter repository.
func (s *NoOpTransactionScope) LetterRepo() correspondence.LetterRepository {
	return s.letterRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
