package types

import (
	"errors"
	"fmt"
)

// Error classifications for data-access failures.
var (
	// ErrStorageUnavailable means the store could not be opened or
	// initialized. It is fatal to the current operation.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrQueryFailure means a read, write, or delete statement failed.
	ErrQueryFailure = errors.New("query failure")

	// ErrReferentialGap means a join found an operation whose store or
	// uniform no longer exists.
	ErrReferentialGap = errors.New("referential gap")
)

// Lifecycle errors.
var (
	ErrDetached        = errors.New("inventory is detached")
	ErrAlreadyAttached = errors.New("inventory is already attached")
)

// Input errors raised at the presentation boundary.
var (
	ErrInvalidOperationType = errors.New("invalid operation type")
	ErrNoStoreSelected      = errors.New("no store selected")
)

// StorageError carries the classification of a storage failure along with
// the entity and operation that produced it. errors.Is matches both Kind and
// the wrapped driver error.
type StorageError struct {
	Kind   error
	Entity string
	Op     string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Op, e.Entity, e.Err)
}

// Unwrap exposes both the classification and the cause.
func (e *StorageError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// NewQueryError classifies err as a query failure on entity during op.
func NewQueryError(entity, op string, err error) *StorageError {
	return &StorageError{Kind: ErrQueryFailure, Entity: entity, Op: op, Err: err}
}

// NewUnavailableError classifies err as a storage initialization failure.
func NewUnavailableError(op string, err error) *StorageError {
	return &StorageError{Kind: ErrStorageUnavailable, Entity: "database", Op: op, Err: err}
}
