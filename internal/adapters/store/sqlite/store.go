package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"causes-api/internal/adapters/store"
	"causes-api/internal/models"
)

// Store reads causes from a local SQLite table
type Store struct {
	db     *sql.DB
	logger *logrus.Logger
}

// New creates a new SQLite causes store
func New(db *sql.DB, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		db:     db,
		logger: logger,
	}
}

// ScanAll reads every row of the collection's table in insertion order. NULL
// columns are left out of the record. SQLite does not enforce column types, so
// follower_count is read as text and passed on as a number for the mapper to
// parse.
func (s *Store) ScanAll(ctx context.Context, collection string) ([]store.Record, error) {
	if err := store.ValidateCollection(collection); err != nil {
		return nil, store.NewStoreError("Scan", collection, err)
	}

	query := fmt.Sprintf(`SELECT cause_id, category, cause_desc, follower_count FROM %q ORDER BY rowid`, collection)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, store.NewStoreError("Scan", collection, err)
	}
	defer rows.Close()

	records := make([]store.Record, 0)
	for rows.Next() {
		var (
			causeID, category, causeDesc, followerCount sql.NullString
		)
		if err := rows.Scan(&causeID, &category, &causeDesc, &followerCount); err != nil {
			return nil, store.NewStoreError("Scan", collection, err)
		}

		rec := make(store.Record, 4)
		putString(rec, "cause_id", causeID)
		putString(rec, "category", category)
		putString(rec, "cause_desc", causeDesc)
		if followerCount.Valid {
			rec["follower_count"] = store.Number(followerCount.String)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("Scan", collection, err)
	}

	s.logger.WithFields(logrus.Fields{
		"table": collection,
		"rows":  len(records),
	}).Debug("Scanned causes table")

	return records, nil
}

// PutCauses upserts causes inside one transaction
func (s *Store) PutCauses(ctx context.Context, collection string, causes []models.Cause) error {
	if err := store.ValidateCollection(collection); err != nil {
		return store.NewStoreError("Put", collection, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.NewStoreError("Put", collection, err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO %q (cause_id, category, cause_desc, follower_count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cause_id) DO UPDATE SET
			category = excluded.category,
			cause_desc = excluded.cause_desc,
			follower_count = excluded.follower_count`, collection)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return store.NewStoreError("Put", collection, err)
	}
	defer stmt.Close()

	for _, c := range causes {
		if _, err := stmt.ExecContext(ctx, c.CauseID, c.Category, c.CauseDesc, c.FollowerCount); err != nil {
			return store.NewStoreError("Put", collection, fmt.Errorf("cause %s: %w", c.CauseID, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return store.NewStoreError("Put", collection, err)
	}

	return nil
}

// Close is a no-op; the connection belongs to the database.ConnectionManager
func (s *Store) Close() error {
	return nil
}

func putString(rec store.Record, field string, v sql.NullString) {
	if v.Valid {
		rec[field] = store.String(v.String)
	}
}
