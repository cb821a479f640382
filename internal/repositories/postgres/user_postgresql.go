package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
	"gorm.io/gorm"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) *UserPostgreSQL {
	return &UserPostgreSQL{db: db}
}

func (u *UserPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return u.db
}

func preloadExams(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts a user; the unique index on email backs the duplicate check
func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.Email = models.NormalizeEmail(user.Email)

		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if count > 0 {
			return repositories.ErrDuplicateEmail
		}

		if err := tx.Omit("Exams").Create(user).Error; err != nil {
			return translateError(err)
		}
		if user.Exams == nil {
			user.Exams = []models.Exam{}
		}
		return nil
	})
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return u.getByID(ctx, nil, userID)
}

func (u *UserPostgreSQL) getByID(ctx context.Context, tx *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := u.getDB(tx).WithContext(ctx).
		Preload("Exams", preloadExams).
		Where("user_id = ?", userID).
		First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).
		Preload("Exams", preloadExams).
		Where("email = ?", models.NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := u.db.WithContext(ctx).
		Preload("Exams", preloadExams).
		Order("created_at ASC").
		Order("user_id ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ReplaceExams deletes and re-inserts the exam rows in one transaction.
// The leading UPDATE takes the row lock on the user so concurrent
// submissions for the same user are serialised.
func (u *UserPostgreSQL) ReplaceExams(ctx context.Context, userID string, exams []models.Exam, updatedAt time.Time) (*models.User, error) {
	var updated *models.User

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("user_id = ?", userID).Update("updated_at", updatedAt)
		if res.Error != nil {
			return fmt.Errorf("failed to lock user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return repositories.ErrNotFound
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Exam{}).Error; err != nil {
			return fmt.Errorf("failed to delete exams: %w", err)
		}

		if len(exams) > 0 {
			rows := make([]models.Exam, len(exams))
			for i, e := range exams {
				e.UserID = userID
				e.Position = i
				rows[i] = e
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to insert exams: %w", err)
			}
		}

		user, err := u.getByID(ctx, tx, userID)
		if err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
