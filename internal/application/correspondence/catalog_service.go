package correspondence

import (
	"context"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
)

// CatalogService exposes the reference catalogs
type CatalogService struct {
	catalogRepo correspondence.CatalogRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(catalogRepo correspondence.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// LetterTypes lists the letter-type catalog ordered by code
func (s *CatalogService) LetterTypes(ctx context.Context) ([]LetterTypeResponse, error) {
	types, err := s.catalogRepo.ListLetterTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LetterTypeResponse, len(types))
	for i, t := range types {
		out[i] = LetterTypeResponse{Code: t.Code, Name: t.Name}
	}
	return out, nil
}

// Divisions lists the division catalog
func (s *CatalogService) Divisions(ctx context.Context) ([]DivisionResponse, error) {
	divisions, err := s.catalogRepo.ListDivisions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DivisionResponse, len(divisions))
	for i, d := range divisions {
		out[i] = DivisionResponse{Code: d.Code, Name: d.Name}
	}
	return out, nil
}
