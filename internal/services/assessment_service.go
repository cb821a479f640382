package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/events"
	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
	"github.com/Anilrajput6441/Gema-Assignment/internal/validator"
	"github.com/google/uuid"
)

type assessmentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	validator *validator.Validator
	scoring   ScoringService
	logger    *ServiceLogger
	opts      Options
	now       func() time.Time
}

func NewAssessmentService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	validator *validator.Validator,
	scoringService ScoringService,
	logger *slog.Logger,
	opts Options,
) AssessmentService {
	return &assessmentService{
		repo:      repo,
		publisher: publisher,
		validator: validator,
		scoring:   scoringService,
		logger:    NewServiceLogger(logger, LogConfig{Service: "speaking-report", Component: "assessment"}),
		opts:      opts,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new assessment. Feedback is generated from the scores
// unless the caller sent one.
func (s *assessmentService) Create(ctx context.Context, req *CreateAssessmentRequest) (result *models.Assessment, err error) {
	start := time.Now()
	defer func() {
		id := ""
		if result != nil {
			id = result.ID
		}
		s.logger.LogOperation(ctx, "create_assessment", id, "assessment", time.Since(start), err)
	}()

	req.StudentName = strings.TrimSpace(req.StudentName)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Skills == nil {
		return nil, ValidationErrors{*NewValidationError("skills", "is required", nil)}
	}
	if verrs := checkSkillInput("skills", req.Skills); len(verrs) > 0 {
		return nil, verrs
	}
	if req.OverallScore == nil {
		return nil, ValidationErrors{*NewValidationError("overallScore", "is required", nil)}
	}

	examType, err := scoring.ParseExamType(req.ExamType)
	if err != nil {
		return nil, err
	}
	skills := req.Skills.toScores()

	if s.opts.StrictScoreRange {
		field := func(name string) string { return name }
		if verrs := s.validator.ValidateScoreRange(examType, field, *req.OverallScore, skills); len(verrs) > 0 {
			return nil, verrs
		}
	}

	now := s.now()
	assessment := &models.Assessment{
		ID:           uuid.NewString(),
		StudentName:  req.StudentName,
		ExamType:     examType,
		TestDate:     req.TestDate.orNow(now),
		OverallScore: *req.OverallScore,
		Skills:       skills,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if req.Feedback != nil && !req.Feedback.IsZero() {
		assessment.Feedback = *req.Feedback
	} else {
		assessment.Feedback = scoring.FeedbackForAllWith(s.scoring.FeedbackFunc(), scoring.OverallScores{
			Overall:       assessment.OverallScore,
			Pronunciation: skills.Pronunciation,
			Fluency:       skills.Fluency,
			Vocabulary:    skills.Vocabulary,
			Grammar:       skills.Grammar,
		}, scoring.MustConfig(examType).MaxScore)
	}

	if err := s.repo.Assessment().Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewReportEvent(events.EventAssessmentCreated, events.AssessmentCreatedEvent{
		AssessmentID: assessment.ID,
		StudentName:  assessment.StudentName,
		ExamType:     string(assessment.ExamType),
		OverallScore: assessment.OverallScore,
	}))

	return assessment, nil
}

func (s *assessmentService) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return assessment, nil
}

func (s *assessmentService) filter(examType string) (models.AssessmentFilter, error) {
	if strings.TrimSpace(examType) == "" {
		return models.AssessmentFilter{}, nil
	}
	t, err := scoring.ParseExamType(examType)
	if err != nil {
		return models.AssessmentFilter{}, err
	}
	return models.AssessmentFilter{ExamType: t}, nil
}

func (s *assessmentService) List(ctx context.Context, examType string) ([]*models.Assessment, error) {
	filter, err := s.filter(examType)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Assessment().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	if items == nil {
		items = []*models.Assessment{}
	}
	return items, nil
}

func (s *assessmentService) Latest(ctx context.Context, examType string) (*models.Assessment, error) {
	filter, err := s.filter(examType)
	if err != nil {
		return nil, err
	}

	assessment, err := s.repo.Assessment().Latest(ctx, filter)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get latest assessment: %w", err)
	}
	return assessment, nil
}
