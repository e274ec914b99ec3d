// Package memory provides non-durable counter, archive and catalog stores
// kept in process memory. It backs the "memory" storage driver and tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	appcorr "github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/application/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
)

// Store holds every in-memory table behind one RWMutex.
type Store struct {
	mu       sync.RWMutex
	counters map[string]int64
	letters  []correspondence.Letter
	byID     map[uuid.UUID]int
	byNumber map[string]int

	letterTypes []correspondence.LetterType
	divisions   []correspondence.Division
}

// NewStore creates an empty store seeded with the built-in catalogs.
func NewStore() *Store {
	return &Store{
		counters:    make(map[string]int64),
		byID:        make(map[uuid.UUID]int),
		byNumber:    make(map[string]int),
		letterTypes: correspondence.DefaultLetterTypes(),
		divisions:   correspondence.DefaultDivisions(),
	}
}

// CounterRepo returns a counter repository over the store.
func (s *Store) CounterRepo() *CounterRepository {
	return &CounterRepository{store: s}
}

// LetterRepo returns a letter repository over the store.
func (s *Store) LetterRepo() *LetterRepository {
	return &LetterRepository{store: s}
}

// CatalogRepo returns a catalog repository over the store.
func (s *Store) CatalogRepo() *CatalogRepository {
	return &CatalogRepository{store: s}
}

// TransactionScope returns a scope whose Execute holds the store's write
// lock and restores a snapshot when the function fails.
func (s *Store) TransactionScope() *TransactionScope {
	return &TransactionScope{store: s}
}

func (s *Store) read(held bool, fn func()) {
	if !held {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(held bool, fn func()) {
	if !held {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}

type snapshot struct {
	counters map[string]int64
	letters  []correspondence.Letter
	byID     map[uuid.UUID]int
	byNumber map[string]int
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		counters: make(map[string]int64, len(s.counters)),
		letters:  make([]correspondence.Letter, len(s.letters)),
		byID:     make(map[uuid.UUID]int, len(s.byID)),
		byNumber: make(map[string]int, len(s.byNumber)),
	}
	for k, v := range s.counters {
		snap.counters[k] = v
	}
	copy(snap.letters, s.letters)
	for k, v := range s.byID {
		snap.byID[k] = v
	}
	for k, v := range s.byNumber {
		snap.byNumber[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.counters = snap.counters
	s.letters = snap.letters
	s.byID = snap.byID
	s.byNumber = snap.byNumber
}

// TransactionScope implements the application TransactionScope for the store.
type TransactionScope struct {
	store *Store
}

// Execute runs fn under the store's write lock. A returned error restores
// the state captured before fn ran.
func (t *TransactionScope) Execute(_ context.Context, fn func(repos appcorr.TransactionalRepositories) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snap := t.store.snapshot()
	if err := fn(txRepositories{store: t.store}); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type txRepositories struct {
	store *Store
}

func (r txRepositories) CounterRepo() correspondence.CounterRepository {
	return &CounterRepository{store: r.store, held: true}
}

func (r txRepositories) LetterRepo() correspondence.LetterRepository {
	return &LetterRepository{store: r.store, held: true}
}

var _ appcorr.TransactionScope = (*TransactionScope)(nil)
var _ appcorr.TransactionalRepositories = txRepositories{}
