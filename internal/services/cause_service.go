package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"causes-api/internal/adapters/store"
	"causes-api/internal/models"
)

type causeService struct {
	scanner    store.Scanner
	collection string
	logger     *logrus.Logger
}

// NewCauseService creates a CauseService reading the given collection
func NewCauseService(scanner store.Scanner, collection string, logger *logrus.Logger) CauseService {
	if logger == nil {
		logger = logrus.New()
	}
	return &causeService{
		scanner:    scanner,
		collection: collection,
		logger:     logger,
	}
}

// ListCauses performs one full scan and maps every record. Any record that
// fails to map fails the whole call.
func (s *causeService) ListCauses(ctx context.Context) ([]models.Cause, error) {
	records, err := s.scanner.ScanAll(ctx, s.collection)
	if err != nil {
		return nil, err
	}

	causes := make([]models.Cause, 0, len(records))
	for i, rec := range records {
		cause, err := MapRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to map record %d of %s: %w", i, s.collection, err)
		}
		causes = append(causes, cause)
	}

	s.logger.WithFields(logrus.Fields{
		"collection": s.collection,
		"count":      len(causes),
	}).Debug("Listed causes")

	return causes, nil
}
