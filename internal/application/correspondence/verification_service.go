package correspondence

import (
	"context"
	"errors"
	"net/url"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
	"go.uber.org/zap"
)

// VerificationService answers public, unauthenticated lookups by document number.
// Every outcome other than a found letter is reported as not found.
type VerificationService struct {
	letterRepo  correspondence.LetterRepository
	catalogRepo correspondence.CatalogRepository
	cache       correspondence.VerificationCache
	metrics     Metrics
	logger      *zap.Logger
}

// NewVerificationService creates a new VerificationService. cache and metrics may be nil.
func NewVerificationService(
	letterRepo correspondence.LetterRepository,
	catalogRepo correspondence.CatalogRepository,
	cache correspondence.VerificationCache,
	metrics Metrics,
	logger *zap.Logger,
) *VerificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &VerificationService{
		letterRepo:  letterRepo,
		catalogRepo: catalogRepo,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
	}
}

// Verify looks up a URL-encoded or plain document number.
func (s *VerificationService) Verify(ctx context.Context, rawNumber string) VerificationResponse {
	number := rawNumber
	if decoded, err := url.PathUnescape(rawNumber); err == nil {
		number = decoded
	}
	key := correspondence.NormalizeNumber(number)
	if key == "" {
		s.metrics.RecordVerification(ctx, false)
		return toVerificationResponse(correspondence.NotFoundResult(), "")
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("verification cache read failed", zap.Error(err))
		} else if ok && cached.Found {
			s.metrics.RecordVerification(ctx, true)
			return toVerificationResponse(*cached, s.typeName(ctx, cached.TypeCode))
		}
	}

	letter, err := s.letterRepo.FindByNumber(ctx, number)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("verification lookup failed", zap.Error(err))
		}
		s.metrics.RecordVerification(ctx, false)
		return toVerificationResponse(correspondence.NotFoundResult(), "")
	}

	result := correspondence.NewVerificationResult(letter)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result); err != nil {
			s.logger.Warn("verification cache write failed", zap.Error(err))
		}
	}

	s.metrics.RecordVerification(ctx, true)
	return toVerificationResponse(result, s.typeName(ctx, result.TypeCode))
}

func (s *VerificationService) typeName(ctx context.Context, code string) string {
	t, err := s.catalogRepo.FindLetterType(ctx, code)
	if err != nil {
		return ""
	}
	return t.Name
}
