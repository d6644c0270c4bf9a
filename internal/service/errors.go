package service

import (
	"errors"
	"fmt"

	"github.com/glycofit/backend/internal/nutrition"
)

var (
	// ErrInvalidInput is reported before any mutation.
	ErrInvalidInput = nutrition.ErrInvalidInput

	ErrUserNotFound   = errors.New("user not found")
	ErrFoodNotFound   = errors.New("food not found")
	ErrThreadNotFound = errors.New("thread not found")
	ErrItemNotFound   = errors.New("forum item not found")

	ErrStoreFailure = errors.New("store failure")
	ErrPartialWrite = errors.New("partial write")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// StoreError wraps a failure reported by the persistence layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreFailure }

// PartialWriteError reports a multi-document update that failed after Writes
// documents were already changed on a store without transactions.
type PartialWriteError struct {
	Writes int
	Err    error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partially applied after %d write(s): %v", e.Writes, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

func (e *PartialWriteError) Is(target error) bool { return target == ErrPartialWrite }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func invalid(field, format string, args ...interface{}) error {
	return &nutrition.InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}
