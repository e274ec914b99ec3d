package correspondence

import "context"

// Metrics receives business events from the correspondence services.
type Metrics interface {
	RecordNumberIssued(ctx context.Context, typeCode, divisionCode string, numberOnly bool)
	RecordCounterOverride(ctx context.Context, key string)
	RecordVerification(ctx context.Context, found bool)
}

type noopMetrics struct{}

func (noopMetrics) RecordNumberIssued(context.Context, string, string, bool) {}
func (noopMetrics) RecordCounterOverride(context.Context, string)            {}
func (noopMetrics) RecordVerification(context.Context, bool)                 {}
