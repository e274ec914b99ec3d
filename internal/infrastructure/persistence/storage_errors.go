package persistence

import (
	"errors"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps a gorm failure to a domain error. Record-not-found
// becomes shared.ErrNotFound and everything else is StorageUnavailable.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return shared.NewStorageError(op, err)
}
