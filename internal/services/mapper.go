package services

import (
	"errors"
	"fmt"
	"strconv"

	"causes-api/internal/adapters/store"
	"causes-api/internal/models"
)

// Mapping errors
var (
	ErrMissingField = errors.New("missing required field")
	ErrWrongType    = errors.New("unexpected attribute type")
)

// MappingError reports the field that stopped a record from mapping
type MappingError struct {
	Field string
	Err   error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// MapRecord converts one raw record into a Cause. The three string fields
// must be present as strings; follower_count follows ParseFollowerCount.
func MapRecord(rec store.Record) (models.Cause, error) {
	causeID, err := requiredString(rec, "cause_id")
	if err != nil {
		return models.Cause{}, err
	}
	category, err := requiredString(rec, "category")
	if err != nil {
		return models.Cause{}, err
	}
	causeDesc, err := requiredString(rec, "cause_desc")
	if err != nil {
		return models.Cause{}, err
	}

	followers, ok := rec["follower_count"]

	return models.Cause{
		CauseID:       causeID,
		Category:      category,
		CauseDesc:     causeDesc,
		FollowerCount: ParseFollowerCount(followers, ok),
	}, nil
}

// ParseFollowerCount reads a follower count, returning 0 when the value is
// absent, not a base-10 integer, or negative.
func ParseFollowerCount(v store.Value, present bool) int64 {
	if !present {
		return 0
	}
	n, err := strconv.ParseInt(v.Text, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func requiredString(rec store.Record, field string) (string, error) {
	v, ok := rec[field]
	if !ok {
		return "", &MappingError{Field: field, Err: ErrMissingField}
	}
	if v.Kind != store.KindString {
		return "", &MappingError{Field: field, Err: fmt.Errorf("%w: want S, got %s", ErrWrongType, v.Kind)}
	}
	return v.Text, nil
}
