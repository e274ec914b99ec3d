package correspondence

import (
	"context"

	"github.com/google/uuid"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
)

// CounterRepository is the durable Counter Store. It holds the global
// sequence under GlobalSequenceKey and one statistical counter per type code.
// Keys that were never written read as zero.
type CounterRepository interface {
	// AllocateNext increments the global sequence and the type's counter by one
	// and returns the new global sequence value.
	AllocateNext(ctx context.Context, typeCode string) (int64, error)

	// ReadAll returns a snapshot of every counter.
	ReadAll(ctx context.Context) (map[string]int64, error)

	// Get returns the value stored for key.
	Get(ctx context.Context, key string) (int64, error)

	// GetForUpdate returns the value stored for key and holds a lock on it
	// until the surrounding transaction ends. Used by overrides so the value
	// checked is the value replaced.
	GetForUpdate(ctx context.Context, key string) (int64, error)

	// Override sets the value stored for key.
	Override(ctx context.Context, key string, value int64) error
}

// LetterFilter narrows an archive search.
type LetterFilter struct {
	shared.Filter
	TypeCode     string
	DivisionCode string
	NumberOnly   *bool
}

// LetterStats summarizes the archive for the dashboard.
type LetterStats struct {
	Total     int64
	Issued    int64
	ThisMonth int64
	ByType    map[string]int64
}

// LetterRepository is the durable Archive Store.
type LetterRepository interface {
	// Upsert inserts the letter or replaces the one with the same ID.
	// It fails with ErrNumberConflict when the number belongs to another ID.
	Upsert(ctx context.Context, letter *Letter) error

	// List returns every letter in insertion order.
	List(ctx context.Context) ([]Letter, error)

	// FindByID returns shared.ErrNotFound when no letter has the ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Letter, error)

	// FindByNumber matches the trimmed, case-folded number exactly.
	// It returns shared.ErrNotFound when nothing matches.
	FindByNumber(ctx context.Context, number string) (*Letter, error)

	// Search returns one page of letters, most recent first, and the total match count.
	Search(ctx context.Context, filter LetterFilter) ([]Letter, int64, error)

	// Stats counts letters; monthPrefix is the "YYYY-MM" of the current month.
	Stats(ctx context.Context, monthPrefix string) (*LetterStats, error)
}

// CatalogRepository is the read contract over the reference catalogs.
type CatalogRepository interface {
	ListLetterTypes(ctx context.Context) ([]LetterType, error)
	ListDivisions(ctx context.Context) ([]Division, error)

	// FindLetterType returns shared.ErrNotFound for an unknown code.
	FindLetterType(ctx context.Context, code string) (*LetterType, error)

	// FindDivision returns shared.ErrNotFound for an unknown code.
	FindDivision(ctx context.Context, code string) (*Division, error)
}
