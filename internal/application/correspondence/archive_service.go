package correspondence

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
	"go.uber.org/zap"
)

// ArchiveService handles reads and in-place edits of archived letters
type ArchiveService struct {
	txScope     TransactionScope
	letterRepo  correspondence.LetterRepository
	catalogRepo correspondence.CatalogRepository
	cache       correspondence.VerificationCache
	location    *time.Location
	now         func() time.Time
	logger      *zap.Logger
}

// NewArchiveService creates a new ArchiveService. cache may be nil.
func NewArchiveService(
	txScope TransactionScope,
	letterRepo correspondence.LetterRepository,
	catalogRepo correspondence.CatalogRepository,
	cache correspondence.VerificationCache,
	location *time.Location,
	logger *zap.Logger,
) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &ArchiveService{
		txScope:     txScope,
		letterRepo:  letterRepo,
		catalogRepo: catalogRepo,
		cache:       cache,
		location:    location,
		now:         time.Now,
		logger:      logger,
	}
}

// SetClock replaces the wall clock used for dashboard statistics.
func (s *ArchiveService) SetClock(now func() time.Time) {
	s.now = now
}

// List searches the archive, most recent first unless a sort is requested.
func (s *ArchiveService) List(ctx context.Context, req ListLettersRequest) ([]LetterResponse, int64, error) {
	filter := correspondence.LetterFilter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			OrderBy:  req.SortBy,
			OrderDir: req.SortOrder,
			Search:   req.Search,
		}.Normalize(),
		TypeCode:     req.TypeCode,
		DivisionCode: req.DivisionCode,
		NumberOnly:   req.NumberOnly,
	}
	letters, total, err := s.letterRepo.Search(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return toLetterResponses(letters), total, nil
}

// Export returns the whole archive in insertion order.
func (s *ArchiveService) Export(ctx context.Context) ([]LetterResponse, error) {
	letters, err := s.letterRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toLetterResponses(letters), nil
}

// GetByID retrieves a letter by ID
func (s *ArchiveService) GetByID(ctx context.Context, id uuid.UUID) (*LetterResponse, error) {
	letter, err := s.letterRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Letter not found")
		}
		return nil, err
	}
	resp := toLetterResponse(letter)
	return &resp, nil
}

// GetByNumber retrieves a letter by its document number
func (s *ArchiveService) GetByNumber(ctx context.Context, number string) (*LetterResponse, error) {
	letter, err := s.letterRepo.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "No letter carries this number")
		}
		return nil, err
	}
	resp := toLetterResponse(letter)
	return &resp, nil
}

// Update edits an archived letter in place. The number never changes.
func (s *ArchiveService) Update(ctx context.Context, id uuid.UUID, req UpdateLetterRequest) (*LetterResponse, error) {
	var updated *correspondence.Letter
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		letter, err := repos.LetterRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Letter not found")
			}
			return err
		}
		revision := correspondence.LetterRevision{
			Title:           req.Title,
			Date:            req.Date,
			Sender:          req.Sender,
			Recipient:       req.Recipient,
			Content:         req.Content,
			AttachmentCount: req.AttachmentCount,
			SignedBy:        req.SignedBy,
			SignedRole:      req.SignedRole,
			QRCodeURL:       req.QRCodeURL,
		}
		if err := letter.Revise(revision, s.now()); err != nil {
			return err
		}
		if err := repos.LetterRepo().Upsert(ctx, letter); err != nil {
			return err
		}
		updated = letter
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, updated.NormalizedNumber()); err != nil {
			s.logger.Warn("failed to invalidate verification cache",
				zap.String("number", updated.Number),
				zap.Error(err))
		}
	}

	s.logger.Info("letter updated",
		zap.String("id", updated.ID.String()),
		zap.String("number", updated.Number))

	resp := toLetterResponse(updated)
	return &resp, nil
}

// Stats summarizes the archive for the dashboard.
func (s *ArchiveService) Stats(ctx context.Context) (*DashboardStatsResponse, error) {
	monthPrefix := s.now().In(s.location).Format("2006-01")
	stats, err := s.letterRepo.Stats(ctx, monthPrefix)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	if types, err := s.catalogRepo.ListLetterTypes(ctx); err == nil {
		for _, t := range types {
			names[t.Code] = t.Name
		}
	} else {
		s.logger.Warn("failed to load letter types for stats", zap.Error(err))
	}

	byType := make([]TypeCountResponse, 0, len(stats.ByType))
	for code, total := range stats.ByType {
		if total == 0 {
			continue
		}
		byType = append(byType, TypeCountResponse{TypeCode: code, TypeName: names[code], Total: total})
	}
	sort.Slice(byType, func(i, j int) bool {
		return byType[i].TypeCode < byType[j].TypeCode
	})

	return &DashboardStatsResponse{
		Total:     stats.Total,
		Issued:    stats.Issued,
		ThisMonth: stats.ThisMonth,
		ByType:    byType,
	}, nil
}
