package jsonfile

import (
	"context"

	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
)

type assessmentStore struct {
	store *Store
}

func (a *assessmentStore) load() ([]*models.Assessment, error) {
	var items []*models.Assessment
	if err := a.store.readDocument(assessmentsFile, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (a *assessmentStore) Create(ctx context.Context, assessment *models.Assessment) error {
	a.store.assessmentsMu.Lock()
	defer a.store.assessmentsMu.Unlock()

	items, err := a.load()
	if err != nil {
		return err
	}

	stored := *assessment
	items = append(items, &stored)
	return a.store.writeDocument(assessmentsFile, items)
}

func (a *assessmentStore) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	a.store.assessmentsMu.Lock()
	defer a.store.assessmentsMu.Unlock()

	items, err := a.load()
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (a *assessmentStore) List(ctx context.Context, filter models.AssessmentFilter) ([]*models.Assessment, error) {
	a.store.assessmentsMu.Lock()
	defer a.store.assessmentsMu.Unlock()

	items, err := a.load()
	if err != nil {
		return nil, err
	}

	out := make([]*models.Assessment, 0, len(items))
	for _, item := range items {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	repositories.SortAssessmentsNewestFirst(out)
	return out, nil
}

func (a *assessmentStore) Latest(ctx context.Context, filter models.AssessmentFilter) (*models.Assessment, error) {
	items, err := a.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, repositories.ErrNotFound
	}
	return items[0], nil
}
