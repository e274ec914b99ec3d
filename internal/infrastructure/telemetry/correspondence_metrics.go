package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of the numbering metrics
const MeterName = "ays-persuratan/correspondence"

// ErrMeterNil is returned when no meter is supplied.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// CorrespondenceMetrics counts numbers issued, counter overrides and public
// verification outcomes.
type CorrespondenceMetrics struct {
	numbersIssued    *Counter
	counterOverrides *Counter
	verifications    *Counter
}

// NewCorrespondenceMetrics registers the instruments on meter.
func NewCorrespondenceMetrics(meter metric.Meter) (*CorrespondenceMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	issued, err := NewCounter(meter, "ays.letters.issued", "Document numbers issued, reservations included", "{number}")
	if err != nil {
		return nil, err
	}
	overrides, err := NewCounter(meter, "ays.counters.overrides", "Manual counter overrides", "{override}")
	if err != nil {
		return nil, err
	}
	verifications, err := NewCounter(meter, "ays.verifications", "Public verification lookups", "{lookup}")
	if err != nil {
		return nil, err
	}

	return &CorrespondenceMetrics{
		numbersIssued:    issued,
		counterOverrides: overrides,
		verifications:    verifications,
	}, nil
}

// RecordNumberIssued counts one issued or reserved number.
func (m *CorrespondenceMetrics) RecordNumberIssued(ctx context.Context, typeCode, divisionCode string, numberOnly bool) {
	m.numbersIssued.Inc(ctx,
		AttrLetterType.String(typeCode),
		AttrDivision.String(divisionCode),
		AttrNumberOnly.Bool(numberOnly),
	)
}

// RecordCounterOverride counts one manual override of key.
func (m *CorrespondenceMetrics) RecordCounterOverride(ctx context.Context, key string) {
	m.counterOverrides.Inc(ctx, AttrCounterKey.String(key))
}

// RecordVerification counts one public lookup by outcome.
func (m *CorrespondenceMetrics) RecordVerification(ctx context.Context, found bool) {
	result := "not_found"
	if found {
		result = "found"
	}
	m.verifications.Inc(ctx, AttrVerifyResult.String(result))
}
