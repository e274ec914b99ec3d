package memory

import (
	"context"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
)

// CounterRepository is the in-memory Counter Store.
type CounterRepository struct {
	store *Store
	held  bool
}

// AllocateNext increments the global and per-type counters.
func (r *CounterRepository) AllocateNext(_ context.Context, typeCode string) (int64, error) {
	var next int64
	r.store.write(r.held, func() {
		r.store.counters[correspondence.GlobalSequenceKey]++
		r.store.counters[typeCode]++
		next = r.store.counters[correspondence.GlobalSequenceKey]
	})
	return next, nil
}

// ReadAll returns a copy of every counter.
func (r *CounterRepository) ReadAll(_ context.Context) (map[string]int64, error) {
	counters := make(map[string]int64)
	r.store.read(r.held, func() {
		for k, v := range r.store.counters {
			counters[k] = v
		}
	})
	return counters, nil
}

// Get returns one counter; missing keys read as zero.
func (r *CounterRepository) Get(_ context.Context, key string) (int64, error) {
	var value int64
	r.store.read(r.held, func() {
		value = r.store.counters[key]
	})
	return value, nil
}

// GetForUpdate is Get; TransactionScope.Execute already holds the write lock.
func (r *CounterRepository) GetForUpdate(ctx context.Context, key string) (int64, error) {
	return r.Get(ctx, key)
}

// Override sets one counter.
func (r *CounterRepository) Override(_ context.Context, key string, value int64) error {
	r.store.write(r.held, func() {
		r.store.counters[key] = value
	})
	return nil
}

var _ correspondence.CounterRepository = (*CounterRepository)(nil)
