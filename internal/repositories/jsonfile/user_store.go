package jsonfile

import (
	"context"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
)

type userStore struct {
	store *Store
}

func (u *userStore) load() ([]*models.User, error) {
	var users []*models.User
	if err := u.store.readDocument(usersFile, &users); err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.Exams == nil {
			user.Exams = []models.Exam{}
		}
	}
	return users, nil
}

func (u *userStore) Create(ctx context.Context, user *models.User) error {
	u.store.usersMu.Lock()
	defer u.store.usersMu.Unlock()

	users, err := u.load()
	if err != nil {
		return err
	}

	email := models.NormalizeEmail(user.Email)
	for _, existing := range users {
		if models.NormalizeEmail(existing.Email) == email {
			return repositories.ErrDuplicateEmail
		}
	}

	stored := *user
	stored.Email = email
	if stored.Exams == nil {
		stored.Exams = []models.Exam{}
	}
	users = append(users, &stored)

	return u.store.writeDocument(usersFile, users)
}

func (u *userStore) GetByID(ctx context.Context, userID string) (*models.User, error) {
	u.store.usersMu.Lock()
	defer u.store.usersMu.Unlock()

	users, err := u.load()
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.UserID == userID {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (u *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u.store.usersMu.Lock()
	defer u.store.usersMu.Unlock()

	users, err := u.load()
	if err != nil {
		return nil, err
	}

	email = models.NormalizeEmail(email)
	for _, user := range users {
		if models.NormalizeEmail(user.Email) == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (u *userStore) List(ctx context.Context) ([]*models.User, error) {
	u.store.usersMu.Lock()
	defer u.store.usersMu.Unlock()

	users, err := u.load()
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

func (u *userStore) ReplaceExams(ctx context.Context, userID string, exams []models.Exam, updatedAt time.Time) (*models.User, error) {
	u.store.usersMu.Lock()
	defer u.store.usersMu.Unlock()

	users, err := u.load()
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		if user.UserID != userID {
			continue
		}

		replaced := make([]models.Exam, len(exams))
		copy(replaced, exams)
		user.Exams = replaced
		user.UpdatedAt = updatedAt

		if err := u.store.writeDocument(usersFile, users); err != nil {
			return nil, err
		}
		return user, nil
	}

	return nil, repositories.ErrNotFound
}
