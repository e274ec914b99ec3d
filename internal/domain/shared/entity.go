package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity is the identity and the audit timestamps of a persisted record.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a random v4 ID and stamps both timestamps with now.
func NewBaseEntity(now time.Time) BaseEntity {
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
