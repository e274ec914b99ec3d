package correspondence_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/application/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestVerificationService_Verify(t *testing.T) {
	ctx := context.Background()
	letter := archivedLetter(t, "02.001/DIV-LIH/III/2026", false)

	t.Run("found and cached", func(t *testing.T) {
		letterRepo := new(MockLetterRepository)
		cache := new(MockVerificationCache)
		metrics := new(MockMetrics)
		key := "02.001/div-lih/iii/2026"

		cache.On("Get", ctx, key).Return(nil, false, nil).Once()
		letterRepo.On("FindByNumber", ctx, " 02.001/div-lih/iii/2026 ").Return(letter, nil).Once()
		cache.On("Set", ctx, key, mock.MatchedBy(func(r correspondence.VerificationResult) bool {
			return r.Found && r.Title == letter.Title
		})).Return(nil).Once()
		metrics.On("RecordVerification", ctx, true).Once()

		svc := app.NewVerificationService(letterRepo, catalogWithDefaults(), cache, metrics, zap.NewNop())

		resp := svc.Verify(ctx, " 02.001/div-lih/iii/2026 ")
		assert.True(t, resp.Found)
		assert.Equal(t, letter.Title, resp.Title)
		assert.Equal(t, "Surat Undangan", resp.TypeName)
		assert.Equal(t, letter.Fingerprint(), resp.Fingerprint)
		assert.NotNil(t, resp.CreatedAt)
		letterRepo.AssertExpectations(t)
		cache.AssertExpectations(t)
		metrics.AssertExpectations(t)
	})

	t.Run("cache hit skips the archive", func(t *testing.T) {
		letterRepo := new(MockLetterRepository)
		cache := new(MockVerificationCache)
		cached := correspondence.NewVerificationResult(letter)
		cache.On("Get", ctx, "02.001/div-lih/iii/2026").Return(&cached, true, nil)

		svc := app.NewVerificationService(letterRepo, catalogWithDefaults(), cache, nil, zap.NewNop())

		resp := svc.Verify(ctx, "02.001/DIV-LIH/III/2026")
		assert.True(t, resp.Found)
		letterRepo.AssertNotCalled(t, "FindByNumber", mock.Anything, mock.Anything)
	})

	t.Run("url encoded input", func(t *testing.T) {
		letterRepo := new(MockLetterRepository)
		letterRepo.On("FindByNumber", ctx, "02.001/DIV-LIH/III/2026").Return(letter, nil)

		svc := app.NewVerificationService(letterRepo, catalogWithDefaults(), nil, nil, zap.NewNop())

		resp := svc.Verify(ctx, "02.001%2FDIV-LIH%2FIII%2F2026")
		assert.True(t, resp.Found)
	})

	t.Run("miss", func(t *testing.T) {
		letterRepo := new(MockLetterRepository)
		letterRepo.On("FindByNumber", ctx, "NOT-A-REAL-NUMBER").Return(nil, shared.ErrNotFound)

		svc := app.NewVerificationService(letterRepo, catalogWithDefaults(), nil, nil, zap.NewNop())

		resp := svc.Verify(ctx, "NOT-A-REAL-NUMBER")
		assert.False(t, resp.Found)
		assert.Empty(t, resp.Title)
		assert.Nil(t, resp.CreatedAt)
	})

	t.Run("storage failure is reported as not found", func(t *testing.T) {
		letterRepo := new(MockLetterRepository)
		letterRepo.On("FindByNumber", ctx, "02.001/DIV-LIH/III/2026").
			Return(nil, shared.NewStorageError("find letter", errors.New("connection reset")))
		cache := new(MockVerificationCache)
		cache.On("Get", ctx, mock.Anything).Return(nil, false, errors.New("redis down"))

		svc := app.NewVerificationService(letterRepo, catalogWithDefaults(), cache, nil, zap.NewNop())

		resp := svc.Verify(ctx, "02.001/DIV-LIH/III/2026")
		assert.False(t, resp.Found)
		assert.Equal(t, app.VerificationResponse{Found: false}, resp)
	})

	t.Run("blank input", func(t *testing.T) {
		letterRepo := new(MockLetterRepository)
		svc := app.NewVerificationService(letterRepo, catalogWithDefaults(), nil, nil, zap.NewNop())

		resp := svc.Verify(ctx, "   ")
		assert.False(t, resp.Found)
		letterRepo.AssertNotCalled(t, "FindByNumber", mock.Anything, mock.Anything)
	})
}

func TestCatalogService(t *testing.T) {
	ctx := context.Background()
	svc := app.NewCatalogService(catalogWithDefaults())

	types, err := svc.LetterTypes(ctx)
	assert.NoError(t, err)
	assert.Len(t, types, 17)
	assert.Equal(t, app.LetterTypeResponse{Code: "12", Name: "Surat Perintah Perjalanan Dinas"}, types[11])

	divisions, err := svc.Divisions(ctx)
	assert.NoError(t, err)
	assert.Len(t, divisions, 9)
	assert.Equal(t, "SDK", divisions[5].Code)
}
