package mongo

import (
	"context"
	"fmt"

	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type assessmentCollection struct {
	coll *mongo.Collection
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func filterDoc(filter models.AssessmentFilter) bson.M {
	doc := bson.M{}
	if filter.ExamType != "" {
		doc["examType"] = filter.ExamType
	}
	return doc
}

func (a *assessmentCollection) Create(ctx context.Context, assessment *models.Assessment) error {
	if _, err := a.coll.InsertOne(ctx, assessment); err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

func (a *assessmentCollection) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	var out models.Assessment
	if err := a.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return nil, translateError(err)
	}
	return &out, nil
}

func (a *assessmentCollection) List(ctx context.Context, filter models.AssessmentFilter) ([]*models.Assessment, error) {
	cursor, err := a.coll.Find(ctx, filterDoc(filter), options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer cursor.Close(ctx)

	out := []*models.Assessment{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode assessments: %w", err)
	}
	return out, nil
}

func (a *assessmentCollection) Latest(ctx context.Context, filter models.AssessmentFilter) (*models.Assessment, error) {
	var out models.Assessment
	err := a.coll.FindOne(ctx, filterDoc(filter), options.FindOne().SetSort(newestFirst)).Decode(&out)
	if err != nil {
		return nil, translateError(err)
	}
	return &out, nil
}

var _ repositories.AssessmentRepository = (*assessmentCollection)(nil)
