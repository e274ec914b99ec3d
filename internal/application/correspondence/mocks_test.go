package correspondence_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type MockCounterRepository struct {
	mock.Mock
}

func (m *MockCounterRepository) AllocateNext(ctx context.Context, typeCode string) (int64, error) {
	args := m.Called(ctx, typeCode)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCounterRepository) ReadAll(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockCounterRepository) Get(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCounterRepository) GetForUpdate(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCounterRepository) Override(ctx context.Context, key string, value int64) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type MockLetterRepository struct {
	mock.Mock
}

func (m *MockLetterRepository) Upsert(ctx context.Context, letter *correspondence.Letter) error {
	args := m.Called(ctx, letter)
	return args.Error(0)
}

func (m *MockLetterRepository) List(ctx context.Context) ([]correspondence.Letter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]correspondence.Letter), args.Error(1)
}

func (m *MockLetterRepository) FindByID(ctx context.Context, id uuid.UUID) (*correspondence.Letter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*correspondence.Letter), args.Error(1)
}

func (m *MockLetterRepository) FindByNumber(ctx context.Context, number string) (*correspondence.Letter, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*correspondence.Letter), args.Error(1)
}

func (m *MockLetterRepository) Search(ctx context.Context, filter correspondence.LetterFilter) ([]correspondence.Letter, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]correspondence.Letter), args.Get(1).(int64), args.Error(2)
}

func (m *MockLetterRepository) Stats(ctx context.Context, monthPrefix string) (*correspondence.LetterStats, error) {
	args := m.Called(ctx, monthPrefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*correspondence.LetterStats), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListLetterTypes(ctx context.Context) ([]correspondence.LetterType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]correspondence.LetterType), args.Error(1)
}

func (m *MockCatalogRepository) ListDivisions(ctx context.Context) ([]correspondence.Division, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]correspondence.Division), args.Error(1)
}

func (m *MockCatalogRepository) FindLetterType(ctx context.Context, code string) (*correspondence.LetterType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*correspondence.LetterType), args.Error(1)
}

func (m *MockCatalogRepository) FindDivision(ctx context.Context, code string) (*correspondence.Division, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*correspondence.Division), args.Error(1)
}

type MockVerificationCache struct {
	mock.Mock
}

func (m *MockVerificationCache) Get(ctx context.Context, key string) (*correspondence.VerificationResult, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*correspondence.VerificationResult), args.Bool(1), args.Error(2)
}

func (m *MockVerificationCache) Set(ctx context.Context, key string, result correspondence.VerificationResult) error {
	args := m.Called(ctx, key, result)
	return args.Error(0)
}

func (m *MockVerificationCache) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordNumberIssued(ctx context.Context, typeCode, divisionCode string, numberOnly bool) {
	m.Called(ctx, typeCode, divisionCode, numberOnly)
}

func (m *MockMetrics) RecordCounterOverride(ctx context.Context, key string) {
	m.Called(ctx, key)
}

func (m *MockMetrics) RecordVerification(ctx context.Context, found bool) {
	m.Called(ctx, found)
}

// catalogWithDefaults answers catalog lookups from the seeded catalogs.
func catalogWithDefaults() *MockCatalogRepository {
	repo := new(MockCatalogRepository)
	for _, t := range correspondence.DefaultLetterTypes() {
		lt := t
		repo.On("FindLetterType", mock.Anything, lt.Code).Return(&lt, nil).Maybe()
	}
	for _, d := range correspondence.DefaultDivisions() {
		div := d
		repo.On("FindDivision", mock.Anything, div.Code).Return(&div, nil).Maybe()
	}
	repo.On("ListLetterTypes", mock.Anything).Return(correspondence.DefaultLetterTypes(), nil).Maybe()
	repo.On("ListDivisions", mock.Anything).Return(correspondence.DefaultDivisions(), nil).Maybe()
	return repo
}
