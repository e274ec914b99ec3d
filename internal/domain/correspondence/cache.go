package correspondence

import "context"

// VerificationCache stores positive verification results keyed by normalized number.
type VerificationCache interface {
	// Get returns the cached result and whether it was present.
	Get(ctx context.Context, normalizedNumber string) (*VerificationResult, bool, error)

	// Set caches a result.
	Set(ctx context.Context, normalizedNumber string, result VerificationResult) error

	// Invalidate removes a cached result.
	Invalidate(ctx context.Context, normalizedNumber string) error
}
