package repositories

import (
	"context"

	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
)

// AssessmentRepository stores standalone assessment records (append only)
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *models.Assessment) error
	GetByID(ctx context.Context, id string) (*models.Assessment, error)

	// List returns matching assessments, newest first
	List(ctx context.Context, filter models.AssessmentFilter) ([]*models.Assessment, error)

	// Latest returns the newest matching assessment or ErrNotFound
	Latest(ctx context.Context, filter models.AssessmentFilter) (*models.Assessment, error)
}
