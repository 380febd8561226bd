package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the document does not exist or is inactive.
	ErrNotFound = errors.New("document not found")

	// ErrStorage matches every *StorageError via errors.Is.
	ErrStorage = errors.New("document storage failure")
)

// StorageError reports a store operation that could not complete.
// Nothing from the failed operation was committed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStorage) match any StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
