package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrUnknownVariant is returned when a variant name has no registered store.
	ErrUnknownVariant = errors.New("unknown product variant")
	// ErrVariantMismatch is returned when a product is handed to the store of
	// a different variant.
	ErrVariantMismatch = errors.New("product does not belong to variant")
)

// IsDuplicateKey reports whether err is a unique constraint violation. Drivers
// that predate error translation are matched on their message text.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry")
}

// IsNotFound reports whether err is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
