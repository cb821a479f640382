package services

import (
	"log/slog"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/cache"
	"github.com/Anilrajput6441/Gema-Assignment/internal/events"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
	"github.com/Anilrajput6441/Gema-Assignment/internal/validator"
)

// Options carries the behaviour switches read from configuration
type Options struct {
	StrictScoreRange bool
	LegacyFeedback   bool
	CacheTTL         time.Duration
}

func (o Options) feedbackFunc() scoring.FeedbackFunc {
	if o.LegacyFeedback {
		return scoring.FeedbackForLegacy
	}
	return scoring.FeedbackFor
}

type serviceManager struct {
	user       UserService
	assessment AssessmentService
	export     ExportService
	scoring    ScoringService
}

func NewServiceManager(
	repo repositories.Repository,
	publisher events.EventPublisher,
	cacheService cache.CacheService,
	validator *validator.Validator,
	logger *slog.Logger,
	opts Options,
) ServiceManager {
	if cacheService == nil {
		cacheService = cache.NewNoopCache()
	}

	scoringSvc := NewScoringService(opts)
	userSvc := NewUserService(repo, publisher, cacheService, validator, scoringSvc, logger, opts)

	return &serviceManager{
		user:       userSvc,
		assessment: NewAssessmentService(repo, publisher, validator, scoringSvc, logger, opts),
		export:     NewExportService(userSvc, scoringSvc, logger),
		scoring:    scoringSvc,
	}
}

func (m *serviceManager) User() UserService             { return m.user }
func (m *serviceManager) Assessment() AssessmentService { return m.assessment }
func (m *serviceManager) Export() ExportService         { return m.export }
func (m *serviceManager) Scoring() ScoringService       { return m.scoring }
