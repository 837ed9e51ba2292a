package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"causes-api/internal/adapters/store"
	"causes-api/internal/models"
)

// Entry is one cause as written in a seed file. The id may be left out, in
// which case a new one is generated.
type Entry struct {
	CauseID       string `json:"cause_id,omitempty"`
	Category      string `json:"category"`
	CauseDesc     string `json:"cause_desc"`
	FollowerCount int64  `json:"follower_count"`
}

// Result contains the results of a seed run
type Result struct {
	Read     int
	Written  int
	Skipped  int
	Warnings []string
}

// Seeder loads causes from a JSON file into a store
type Seeder struct {
	writer     store.Writer
	collection string
	logger     *logrus.Logger
	newID      func() string
}

// NewSeeder creates a new seeder writing into collection
func NewSeeder(writer store.Writer, collection string, logger *logrus.Logger) *Seeder {
	if logger == nil {
		logger = logrus.New()
	}
	return &Seeder{
		writer:     writer,
		collection: collection,
		logger:     logger,
		newID:      func() string { return uuid.New().String() },
	}
}

// LoadFile reads and decodes a seed file holding a JSON array of entries
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed file: %w", err)
	}
	return entries, nil
}

// Prepare turns entries into causes, filling in missing ids. Entries that
// fail validation or repeat an earlier cause_id are skipped and reported in
// the result; the first occurrence of an id wins.
func (s *Seeder) Prepare(entries []Entry) ([]models.Cause, *Result) {
	result := &Result{
		Read:     len(entries),
		Warnings: make([]string, 0),
	}

	causes := make([]models.Cause, 0, len(entries))
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		cause := models.Cause{
			CauseID:       e.CauseID,
			Category:      e.Category,
			CauseDesc:     e.CauseDesc,
			FollowerCount: e.FollowerCount,
		}
		if cause.CauseID == "" {
			cause.CauseID = s.newID()
		}

		if err := cause.Validate(); err != nil {
			s.logger.WithError(err).WithField("index", i).Warn("Invalid cause, skipping")
			result.Warnings = append(result.Warnings, fmt.Sprintf("entry %d: %v", i, err))
			result.Skipped++
			continue
		}

		if first, dup := seen[cause.CauseID]; dup {
			s.logger.WithFields(logrus.Fields{
				"index":    i,
				"cause_id": cause.CauseID,
				"first":    first,
			}).Warn("Duplicate cause id, skipping")
			result.Warnings = append(result.Warnings, fmt.Sprintf("entry %d: duplicate cause_id %q (first at entry %d)", i, cause.CauseID, first))
			result.Skipped++
			continue
		}
		seen[cause.CauseID] = i
		causes = append(causes, cause)
	}

	return causes, result
}

// Seed loads the file at path and writes its valid entries. With dryRun set
// nothing is written.
func (s *Seeder) Seed(ctx context.Context, path string, dryRun bool) (*Result, error) {
	entries, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	causes, result := s.Prepare(entries)

	logger := s.logger.WithFields(logrus.Fields{
		"file":       path,
		"collection": s.collection,
		"valid":      len(causes),
		"skipped":    result.Skipped,
	})

	if dryRun || len(causes) == 0 {
		logger.WithField("dry_run", dryRun).Info("Nothing written")
		return result, nil
	}

	if err := s.writer.PutCauses(ctx, s.collection, causes); err != nil {
		return result, fmt.Errorf("failed to write causes: %w", err)
	}
	result.Written = len(causes)

	logger.Info("Causes seeded successfully")
	return result, nil
}
