// Package apperrors holds the error classes shared by the fetchers, stores and services.
// Callers classify with errors.Is, the marks survive any amount of wrapping.
package apperrors

import (
	"github.com/cockroachdb/errors"
)

var (
	// A call to the Riot API failed, timed out or returned an unusable payload.
	ErrExternalSourceUnavailable = errors.New("external source unavailable")

	// A unique constraint rejected a create.
	ErrDuplicateWrite = errors.New("duplicate write")

	// A map or queue code has no entry on the lookup tables.
	ErrUnknownLookupCode = errors.New("unknown lookup code")

	// The database couldn't serve the operation.
	ErrStoreUnavailable = errors.New("store unavailable")
	// The match the operation targets is no longer stored.
	ErrMatchNotFound = errors.New("match not found")
)

// External marks err as a external source failure.
func External(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrExternalSourceUnavailable)
}

// Store marks err as a store failure.
func Store(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrStoreUnavailable)
}

// Duplicate marks err as a rejected duplicate write.
func Duplicate(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrDuplicateWrite)
}

// NotFound marks err as a missing match.
func NotFound(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrMatchNotFound)
}

func IsExternal(err error) bool {
	return errors.Is(err, ErrExternalSourceUnavailable)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateWrite)
}

func IsStore(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrMatchNotFound)
}
