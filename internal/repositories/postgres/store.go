package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
	"gorm.io/gorm"
)

// Store is the gorm-backed repository set
type Store struct {
	db          *gorm.DB
	users       *UserPostgreSQL
	assessments *AssessmentPostgreSQL
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		users:       NewUserPostgreSQL(db),
		assessments: NewAssessmentPostgreSQL(db),
	}
}

// AutoMigrate creates or updates the tables used by the store
func (s *Store) AutoMigrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Exam{}, &assessmentRecord{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (s *Store) User() repositories.UserRepository {
	return s.users
}

func (s *Store) Assessment() repositories.AssessmentRepository {
	return s.assessments
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translateError maps gorm sentinel errors onto repository errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicateEmail
	default:
		return err
	}
}
