package repositories

import (
	"context"
	"errors"
	"sort"

	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository groups the repositories of one storage backend
type Repository interface {
	User() UserRepository
	Assessment() AssessmentRepository

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicateEmail)
}

// SortAssessmentsNewestFirst orders by CreatedAt descending, ties broken by id
func SortAssessmentsNewestFirst(items []*models.Assessment) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
