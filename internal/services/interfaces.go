package services

import (
	"context"

	"causes-api/internal/models"
)

// CauseService defines the read operations on causes
type CauseService interface {
	// ListCauses returns every stored cause in store order. It never
	// returns a nil slice on success.
	ListCauses(ctx context.Context) ([]models.Cause, error)
}
