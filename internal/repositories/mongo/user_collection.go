package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userCollection struct {
	coll *mongo.Collection
}

func (u *userCollection) Create(ctx context.Context, user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)
	if user.Exams == nil {
		user.Exams = []models.Exam{}
	}

	if _, err := u.coll.InsertOne(ctx, user); err != nil {
		return translateError(err)
	}
	return nil
}

func (u *userCollection) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := u.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translateError(err)
	}
	if user.Exams == nil {
		user.Exams = []models.Exam{}
	}
	return &user, nil
}

func (u *userCollection) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return u.findOne(ctx, bson.M{"_id": userID})
}

func (u *userCollection) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return u.findOne(ctx, bson.M{"email": models.NormalizeEmail(email)})
}

func (u *userCollection) List(ctx context.Context) ([]*models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := u.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []*models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	for _, user := range users {
		if user.Exams == nil {
			user.Exams = []models.Exam{}
		}
	}
	return users, nil
}

// ReplaceExams swaps the embedded exam array with a single document update
func (u *userCollection) ReplaceExams(ctx context.Context, userID string, exams []models.Exam, updatedAt time.Time) (*models.User, error) {
	if exams == nil {
		exams = []models.Exam{}
	}

	update := bson.M{"$set": bson.M{"exams": exams, "updatedAt": updatedAt}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	if err := u.coll.FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, opts).Decode(&user); err != nil {
		return nil, translateError(err)
	}
	if user.Exams == nil {
		user.Exams = []models.Exam{}
	}
	return &user, nil
}

var _ repositories.UserRepository = (*userCollection)(nil)
