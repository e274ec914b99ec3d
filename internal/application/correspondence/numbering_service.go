package correspondence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// NumberingConfig holds organization defaults and the counter override policy.
type NumberingConfig struct {
	// AllowLowering permits an override to set the global sequence below its current value.
	AllowLowering bool
	Sender        string
	Signer        string
	SignerRole    string
	// Location decides the calendar month and year printed in numbers.
	Location *time.Location
}

// DefaultTimeZone is where the organization dates its letters.
const DefaultTimeZone = "Asia/Jakarta"

// DefaultLocation loads DefaultTimeZone. Hosts without a tz database get a
// fixed UTC+7 zone, which is the same since Indonesia has no daylight saving.
func DefaultLocation() *time.Location {
	if loc, err := time.LoadLocation(DefaultTimeZone); err == nil {
		return loc
	}
	return time.FixedZone("WIB", 7*60*60)
}

// DefaultNumberingConfig returns the organization defaults.
func DefaultNumberingConfig() NumberingConfig {
	return NumberingConfig{
		Sender:     correspondence.DefaultSender,
		Signer:     correspondence.DefaultSigner,
		SignerRole: correspondence.DefaultSignerRole,
		Location:   DefaultLocation(),
	}
}

// NumberingOption configures a NumberingService.
type NumberingOption func(*NumberingService)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) NumberingOption {
	return func(s *NumberingService) {
		s.now = now
	}
}

// WithMetrics sets the business metrics recorder.
func WithMetrics(m Metrics) NumberingOption {
	return func(s *NumberingService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NumberingService issues document numbers. Every allocation and override is
// serialized by mu and runs inside one transaction together with the archive write.
type NumberingService struct {
	mu          sync.Mutex
	txScope     TransactionScope
	counterRepo correspondence.CounterRepository
	catalogRepo correspondence.CatalogRepository
	config      NumberingConfig
	metrics     Metrics
	now         func() time.Time
	logger      *zap.Logger
}

// NewNumberingService creates a new NumberingService
func NewNumberingService(
	txScope TransactionScope,
	counterRepo correspondence.CounterRepository,
	catalogRepo correspondence.CatalogRepository,
	config NumberingConfig,
	logger *zap.Logger,
	opts ...NumberingOption,
) *NumberingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Location == nil {
		config.Location = DefaultLocation()
	}
	s := &NumberingService{
		txScope:     txScope,
		counterRepo: counterRepo,
		catalogRepo: catalogRepo,
		config:      config,
		metrics:     noopMetrics{},
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueNumber allocates the next serial, formats the number and archives the
// letter as one unit.
func (s *NumberingService) IssueNumber(ctx context.Context, req IssueLetterRequest) (*LetterResponse, error) {
	if err := s.validateCodes(ctx, req.TypeCode, req.DivisionCode); err != nil {
		return nil, err
	}

	now := s.now()
	draft := correspondence.LetterDraft{
		TypeCode:        req.TypeCode,
		DivisionCode:    req.DivisionCode,
		Title:           req.Title,
		Date:            s.dateOrToday(req.Date, now),
		Sender:          firstNonBlank(req.Sender, s.config.Sender),
		Recipient:       req.Recipient,
		Content:         req.Content,
		AttachmentCount: req.AttachmentCount,
		SignedBy:        firstNonBlank(req.SignedBy, s.config.Signer),
		SignedRole:      firstNonBlank(req.SignedRole, s.config.SignerRole),
		QRCodeURL:       req.QRCodeURL,
	}
	return s.issue(ctx, draft, now)
}

// ReserveNumber claims a number before the letter's content is final.
// The record is number-only when no content is supplied.
func (s *NumberingService) ReserveNumber(ctx context.Context, req ReserveNumberRequest) (*LetterResponse, error) {
	if err := s.validateCodes(ctx, req.TypeCode, req.DivisionCode); err != nil {
		return nil, err
	}

	typeCode := strings.TrimSpace(req.TypeCode)
	now := s.now()
	numberOnly := strings.TrimSpace(req.Content) == ""
	draft := correspondence.LetterDraft{
		TypeCode:     typeCode,
		DivisionCode: strings.TrimSpace(req.DivisionCode),
		Title:        firstNonBlank(req.Title, correspondence.ReservationTitle(typeCode)),
		Date:         s.dateOrToday("", now),
		Sender:       s.config.Sender,
		Recipient:    firstNonBlank(req.Recipient, correspondence.ReservationRecipient),
		Content:      firstNonBlank(req.Content, correspondence.ReservationContent),
		SignedBy:     s.config.Signer,
		SignedRole:   s.config.SignerRole,
		IsNumberOnly: numberOnly,
	}
	return s.issue(ctx, draft, now)
}

func (s *NumberingService) issue(ctx context.Context, draft correspondence.LetterDraft, now time.Time) (*LetterResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "numbering", "issue",
		telemetry.WithAttribute(telemetry.SpanAttrTypeCode, draft.TypeCode),
		telemetry.WithAttribute(telemetry.SpanAttrDivision, draft.DivisionCode),
	)
	defer span.End()

	letter, err := correspondence.NewLetter(draft, now)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		serial, err := repos.CounterRepo().AllocateNext(ctx, letter.TypeCode)
		if err != nil {
			return err
		}
		telemetry.SetAttribute(span, telemetry.SpanAttrSequence, serial)
		number := correspondence.FormatNumber(letter.TypeCode, serial, letter.DivisionCode, now.In(s.config.Location))
		if err := letter.AssignNumber(number); err != nil {
			return err
		}
		return repos.LetterRepo().Upsert(ctx, letter)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("failed to issue document number",
			zap.String("type_code", letter.TypeCode),
			zap.String("division_code", letter.DivisionCode),
			zap.Error(err))
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrNumber, letter.Number)
	telemetry.SetOK(span)
	s.metrics.RecordNumberIssued(ctx, letter.TypeCode, letter.DivisionCode, letter.IsNumberOnly)
	s.logger.Info("document number issued",
		zap.String("id", letter.ID.String()),
		zap.String("number", letter.Number),
		zap.Bool("number_only", letter.IsNumberOnly))

	resp := toLetterResponse(letter)
	return &resp, nil
}

// CounterSnapshot returns every counter. The global sequence is always present.
func (s *NumberingService) CounterSnapshot(ctx context.Context) (*CounterSnapshotResponse, error) {
	counters, err := s.counterRepo.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if counters == nil {
		counters = make(map[string]int64)
	}
	global := counters[correspondence.GlobalSequenceKey]
	counters[correspondence.GlobalSequenceKey] = global

	return &CounterSnapshotResponse{
		GlobalSequence: global,
		NextSerial:     global + 1,
		Counters:       counters,
	}, nil
}

// OverrideCounter sets a counter to value. Lowering the global sequence is
// rejected unless the policy allows it, since already issued serials would repeat.
func (s *NumberingService) OverrideCounter(ctx context.Context, key string, value int64) (*CounterOverrideResponse, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "counter key is required")
	}
	if value < 0 {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "counter value cannot be negative")
	}
	isGlobal := key == correspondence.GlobalSequenceKey
	if !isGlobal {
		if _, err := s.catalogRepo.FindLetterType(ctx, key); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, fmt.Sprintf("unknown counter key %q", key))
			}
			return nil, err
		}
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "numbering", "override_counter",
		telemetry.WithAttribute(telemetry.SpanAttrCounterKey, key))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	var previous int64
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		current, err := repos.CounterRepo().GetForUpdate(ctx, key)
		if err != nil {
			return err
		}
		previous = current
		if isGlobal && value < current && !s.config.AllowLowering {
			return shared.NewDomainError(shared.ErrCounterRegression.Code,
				fmt.Sprintf("global sequence is %d; lowering it to %d would reissue existing numbers", current, value))
		}
		return repos.CounterRepo().Override(ctx, key, value)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.RecordCounterOverride(ctx, key)
	s.logger.Warn("counter overridden",
		zap.String("key", key),
		zap.Int64("previous", previous),
		zap.Int64("value", value))

	resp := &CounterOverrideResponse{Key: key, Previous: previous, Value: value}
	if isGlobal {
		resp.NextSerial = value + 1
	}
	return resp, nil
}

func (s *NumberingService) validateCodes(ctx context.Context, typeCode, divisionCode string) error {
	if _, err := s.catalogRepo.FindLetterType(ctx, strings.TrimSpace(typeCode)); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError(shared.ErrInvalidInput.Code, fmt.Sprintf("unknown letter type %q", typeCode))
		}
		return err
	}
	if _, err := s.catalogRepo.FindDivision(ctx, strings.ToUpper(strings.TrimSpace(divisionCode))); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError(shared.ErrInvalidInput.Code, fmt.Sprintf("unknown division %q", divisionCode))
		}
		return err
	}
	return nil
}

func (s *NumberingService) dateOrToday(date string, now time.Time) string {
	if strings.TrimSpace(date) != "" {
		return date
	}
	return now.In(s.config.Location).Format(correspondence.DateLayout)
}

func firstNonBlank(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
