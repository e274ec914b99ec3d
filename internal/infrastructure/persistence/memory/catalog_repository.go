package memory

import (
	"context"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
)

// CatalogRepository serves the built-in catalogs held by the store.
type CatalogRepository struct {
	store *Store
}

func (r *CatalogRepository) ListLetterTypes(_ context.Context) ([]correspondence.LetterType, error) {
	types := make([]correspondence.LetterType, len(r.store.letterTypes))
	copy(types, r.store.letterTypes)
	return types, nil
}

func (r *CatalogRepository) ListDivisions(_ context.Context) ([]correspondence.Division, error) {
	divisions := make([]correspondence.Division, len(r.store.divisions))
	copy(divisions, r.store.divisions)
	return divisions, nil
}

func (r *CatalogRepository) FindLetterType(_ context.Context, code string) (*correspondence.LetterType, error) {
	for _, lt := range r.store.letterTypes {
		if lt.Code == code {
			found := lt
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *CatalogRepository) FindDivision(_ context.Context, code string) (*correspondence.Division, error) {
	for _, d := range r.store.divisions {
		if d.Code == code {
			found := d
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

var _ correspondence.CatalogRepository = (*CatalogRepository)(nil)
