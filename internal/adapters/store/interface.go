package store

import (
	"context"
	"strconv"

	"causes-api/internal/models"
)

// Kind tags the type carried by a Value
type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "S"
	case KindNumber:
		return "N"
	default:
		return "unknown"
	}
}

// Value is a tagged field value as the store returns it. Numbers are kept in
// their decimal text form, the way DynamoDB transports them.
type Value struct {
	Kind Kind
	Text string
}

// String builds a string value
func String(s string) Value {
	return Value{Kind: KindString, Text: s}
}

// Number builds a number value from its decimal text
func Number(n string) Value {
	return Value{Kind: KindNumber, Text: n}
}

// Int builds a number value from an integer
func Int(n int64) Value {
	return Number(strconv.FormatInt(n, 10))
}

// Record is one raw stored item keyed by field name
type Record map[string]Value

// Scanner reads a whole collection in one unfiltered pass. Records come back
// in whatever order the backend yields them.
type Scanner interface {
	ScanAll(ctx context.Context, collection string) ([]Record, error)
}

// Writer loads causes into a collection. Only tooling writes; the request
// path is read-only.
type Writer interface {
	PutCauses(ctx context.Context, collection string, causes []models.Cause) error
}

// Store is a backend that can be both scanned and seeded
type Store interface {
	Scanner
	Writer
	Close() error
}

// RecordFromCause is the inverse of the record mapping, used by stores that
// do not marshal causes natively.
func RecordFromCause(c models.Cause) Record {
	return Record{
		"cause_id":       String(c.CauseID),
		"category":       String(c.Category),
		"cause_desc":     String(c.CauseDesc),
		"follower_count": Int(c.FollowerCount),
	}
}
