package store

import (
	"fmt"

	"github.com/pkg/errors"
)

// StorageFailure is an underlying read, write or decode failure.
type StorageFailure struct {
	Op   string // load | save | decode | encode
	Kind Kind
	Err  error
}

func (e *StorageFailure) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageFailure) Unwrap() error { return e.Err }

// Cause lets errors.Cause walk through the failure.
func (e *StorageFailure) Cause() error { return e.Err }

func fail(op string, kind Kind, err error, msg string) error {
	return &StorageFailure{Op: op, Kind: kind, Err: errors.Wrap(err, msg)}
}

// IsStorageFailure reports whether err wraps a *StorageFailure.
func IsStorageFailure(err error) bool {
	var sf *StorageFailure
	return errors.As(err, &sf)
}
