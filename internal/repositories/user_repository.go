package repositories

import (
	"context"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
)

// UserRepository persists students together with their embedded exam list
type UserRepository interface {
	// Create stores a new user. Returns ErrDuplicateEmail when the
	// lower-cased email is already taken.
	Create(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns users in creation order
	List(ctx context.Context) ([]*models.User, error)

	// ReplaceExams swaps the whole exam list of a user in one step and
	// returns the updated user.
	ReplaceExams(ctx context.Context, userID string, exams []models.Exam, updatedAt time.Time) (*models.User, error)
}
