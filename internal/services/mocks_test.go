package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/cache"
	"github.com/Anilrajput6441/Gema-Assignment/internal/events"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories/jsonfile"
	"github.com/Anilrajput6441/Gema-Assignment/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCache is a testify mock of cache.CacheService
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

// failingPublisher rejects every event
type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, *events.ReportEvent) error {
	return errors.New("broker unavailable")
}
func (failingPublisher) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func f64(v float64) *float64 {
	return &v
}

func skillsInput(p, f, v, g float64) *SkillScoresInput {
	return &SkillScoresInput{Pronunciation: f64(p), Fluency: f64(f), Vocabulary: f64(v), Grammar: f64(g)}
}

type testEnv struct {
	repo      repositories.Repository
	publisher *events.MockEventPublisher
	users     *userService
	manager   ServiceManager
}

func newTestEnv(t *testing.T, opts Options, cacheService cache.CacheService) *testEnv {
	t.Helper()

	store, err := jsonfile.New(t.TempDir(), discardLogger())
	require.NoError(t, err)

	publisher := events.NewMockEventPublisher(discardLogger())
	v := validator.New()
	scoringSvc := NewScoringService(opts)

	return &testEnv{
		repo:      store,
		publisher: publisher,
		users:     NewUserService(store, publisher, cacheService, v, scoringSvc, discardLogger(), opts).(*userService),
		manager:   NewServiceManager(store, publisher, cacheService, v, discardLogger(), opts),
	}
}
