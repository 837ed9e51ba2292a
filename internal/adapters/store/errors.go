package store

import (
	"errors"
	"fmt"
	"regexp"
)

// Common store error types
var (
	ErrInvalidCollection = errors.New("invalid collection name")
	ErrUnavailable       = errors.New("store unavailable")
)

var collectionPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,255}$`)

// StoreError represents a store operation error with additional context
type StoreError struct {
	Op         string // Operation that failed (e.g., "Scan", "Put")
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("store %s on '%s' failed: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError
func NewStoreError(op, collection string, err error) *StoreError {
	return &StoreError{
		Op:         op,
		Collection: collection,
		Err:        err,
	}
}

// ValidateCollection checks a collection name against the characters both
// DynamoDB table names and quoted SQLite identifiers accept.
func ValidateCollection(name string) error {
	if !collectionPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, name)
	}
	return nil
}
