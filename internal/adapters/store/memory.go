package store

import (
	"context"
	"sync"

	"causes-api/internal/models"
)

// MemoryStore is an in-memory Store for demos and tests
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Record
}

// NewMemoryStore creates a MemoryStore holding the given collections
func NewMemoryStore(collections map[string][]Record) *MemoryStore {
	m := &MemoryStore{collections: make(map[string][]Record)}
	for name, records := range collections {
		m.collections[name] = copyRecords(records)
	}
	return m
}

// DemoRecords returns a small fixed set of causes
func DemoRecords() []Record {
	return []Record{
		{
			"cause_id":       String("uuid-1"),
			"category":       String("environment"),
			"cause_desc":     String("environment"),
			"follower_count": Number("171"),
		},
		{
			"cause_id":       String("uuid-2"),
			"category":       String("labor practices"),
			"cause_desc":     String("union suppression"),
			"follower_count": Number("234"),
		},
	}
}

// ScanAll implements Scanner. An unknown collection scans as empty.
func (m *MemoryStore) ScanAll(ctx context.Context, collection string) ([]Record, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, NewStoreError("Scan", collection, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewStoreError("Scan", collection, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return copyRecords(m.collections[collection]), nil
}

// PutCauses implements Writer. Causes with an existing id replace the stored record.
func (m *MemoryStore) PutCauses(ctx context.Context, collection string, causes []models.Cause) error {
	if err := ValidateCollection(collection); err != nil {
		return NewStoreError("Put", collection, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	records := m.collections[collection]
	for _, c := range causes {
		rec := RecordFromCause(c)
		replaced := false
		for i, existing := range records {
			if existing["cause_id"].Text == c.CauseID {
				records[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			records = append(records, rec)
		}
	}
	m.collections[collection] = records

	return nil
}

// Close implements Store
func (m *MemoryStore) Close() error {
	return nil
}

func copyRecords(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		cp := make(Record, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out
}
