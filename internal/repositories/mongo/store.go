package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection       = "users"
	assessmentsCollection = "assessments"
)

// Store keeps users with their exams embedded, one document per user
type Store struct {
	client      *mongo.Client
	db          *mongo.Database
	users       *userCollection
	assessments *assessmentCollection
}

func NewStore(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:      client,
		db:          db,
		users:       &userCollection{coll: db.Collection(usersCollection)},
		assessments: &assessmentCollection{coll: db.Collection(assessmentsCollection)},
	}
}

// EnsureIndexes creates the unique email index and the listing indexes
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = s.assessments.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "examType", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create assessment indexes: %w", err)
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
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repositories.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repositories.ErrDuplicateEmail
	default:
		return err
	}
}
