package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/cache"
	"github.com/Anilrajput6441/Gema-Assignment/internal/events"
	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
	"github.com/Anilrajput6441/Gema-Assignment/internal/validator"
	"github.com/google/uuid"
)

const (
	cacheKeyUsers      = "users:all"
	cacheKeyUserPrefix = "user:"
	cacheKeyReportAll  = "all"

	newUserHint = "Copy this userId to submit exam data"
)

type userService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	cache     cache.CacheService
	validator *validator.Validator
	scoring   ScoringService
	logger    *ServiceLogger
	opts      Options
	now       func() time.Time
}

func NewUserService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	cacheService cache.CacheService,
	validator *validator.Validator,
	scoringService ScoringService,
	logger *slog.Logger,
	opts Options,
) UserService {
	if cacheService == nil {
		cacheService = cache.NewNoopCache()
	}
	return &userService{
		repo:      repo,
		publisher: publisher,
		cache:     cacheService,
		validator: validator,
		scoring:   scoringService,
		logger:    NewServiceLogger(logger, LogConfig{Service: "speaking-report", Component: "user"}),
		opts:      opts,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ===== CREATE =====

func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (result *CreateUserResult, created bool, err error) {
	start := time.Now()
	defer func() {
		id := ""
		if result != nil {
			id = result.UserID
		}
		s.logger.LogOperation(ctx, "create_user", id, "user", time.Since(start), err)
	}()

	req.StudentName = strings.TrimSpace(req.StudentName)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.User().GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return summaryOf(existing), false, nil
	case !repositories.IsNotFoundError(err):
		return nil, false, fmt.Errorf("failed to look up user by email: %w", err)
	}

	now := s.now()
	user := &models.User{
		UserID:       "user_" + uuid.NewString(),
		StudentName:  req.StudentName,
		Email:        models.NormalizeEmail(req.Email),
		Mobile:       req.Mobile,
		ProfilePhoto: req.ProfilePhoto,
		Exams:        []models.Exam{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if !repositories.IsDuplicateError(err) {
			return nil, false, fmt.Errorf("failed to create user: %w", err)
		}
		// lost a race with a concurrent create for the same email
		existing, getErr := s.repo.User().GetByEmail(ctx, req.Email)
		if getErr != nil {
			return nil, false, fmt.Errorf("failed to load existing user: %w", getErr)
		}
		return summaryOf(existing), false, nil
	}

	s.invalidate(ctx, "")
	s.publish(ctx, events.NewReportEvent(events.EventUserCreated, events.UserCreatedEvent{
		UserID:      user.UserID,
		StudentName: user.StudentName,
		Email:       user.Email,
	}))

	result = summaryOf(user)
	result.Message = newUserHint
	return result, true, nil
}

// ===== SUBMIT =====

func (s *userService) SubmitExams(ctx context.Context, userID string, req *SubmitExamsRequest) (result *SubmitExamsResult, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "submit_exams", userID, "user", time.Since(start), err)
	}()

	if strings.TrimSpace(userID) == "" {
		return nil, ValidationErrors{*NewValidationError("userId", "is required", userID)}
	}
	if req == nil || req.Exams == nil {
		return nil, ValidationErrors{*NewValidationError("exams", "is required", nil)}
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	exams, verrs := s.buildExams(req.Exams, now)
	if len(verrs) > 0 {
		s.logger.LogValidationError(ctx, "submit_exams", verrs)
		return nil, verrs
	}

	user, err := s.repo.User().ReplaceExams(ctx, userID, exams, now)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to replace exams: %w", err)
	}

	s.invalidate(ctx, userID)

	examTypes := make([]string, 0, len(user.Exams))
	for _, e := range user.Exams {
		examTypes = append(examTypes, string(e.ExamType))
	}
	s.publish(ctx, events.NewReportEvent(events.EventExamsSubmitted, events.ExamsSubmittedEvent{
		UserID:     user.UserID,
		TotalExams: len(user.Exams),
		ExamTypes:  examTypes,
	}))

	return &SubmitExamsResult{
		UserID:      user.UserID,
		StudentName: user.StudentName,
		TotalExams:  len(user.Exams),
	}, nil
}

// buildExams validates the whole batch before anything is written
func (s *userService) buildExams(inputs []ExamInput, now time.Time) ([]models.Exam, ValidationErrors) {
	var verrs ValidationErrors
	exams := make([]models.Exam, 0, len(inputs))
	seen := make(map[string]int, len(inputs))

	for i := range inputs {
		in := &inputs[i]
		field := func(name string) string { return fmt.Sprintf("exams[%d].%s", i, name) }

		examType, err := scoring.ParseExamType(in.ExamType)
		if err != nil {
			verrs = verrs.Add(field("examType"), "must be a valid exam type", in.ExamType)
			continue
		}

		if in.OverallScore == nil {
			verrs = verrs.Add(field("overallScore"), "is required", nil)
			continue
		}
		if missing := checkSkillInput(field("skills"), in.Skills); len(missing) > 0 {
			verrs = append(verrs, missing...)
			continue
		}
		skills, ok := in.skillScores()
		if !ok {
			verrs = verrs.Add(field("skills"), "skills or scores is required", nil)
			continue
		}

		if s.opts.StrictScoreRange {
			verrs = append(verrs, s.validator.ValidateScoreRange(examType, field, *in.OverallScore, skills)...)
		}

		id := in.examID()
		if id == "" {
			id = "exam_" + uuid.NewString()
		} else if prev, dup := seen[id]; dup {
			verrs = verrs.Add(field("id"), fmt.Sprintf("duplicates exams[%d].id", prev), id)
			continue
		}
		seen[id] = i

		exams = append(exams, models.Exam{
			ID:           id,
			ExamType:     examType,
			TestDate:     in.TestDate.orNow(now),
			OverallScore: *in.OverallScore,
			Skills:       skills,
			CreatedAt:    in.CreatedAt.orNow(now),
			UpdatedAt:    now,
		})
	}

	return exams, verrs
}

func missingSkills(in *SkillScoresInput) []string {
	var missing []string
	for i, v := range []*float64{in.Pronunciation, in.Fluency, in.Vocabulary, in.Grammar} {
		if v == nil {
			missing = append(missing, scoring.SkillNames[i])
		}
	}
	return missing
}

func checkSkillInput(prefix string, in *SkillScoresInput) ValidationErrors {
	if in == nil {
		return nil
	}
	var verrs ValidationErrors
	for _, name := range missingSkills(in) {
		verrs = verrs.Add(prefix+"."+name, "is required", nil)
	}
	return verrs
}

// ===== READ =====

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var cached models.User
	if err := s.cache.Get(ctx, cacheKeyUserPrefix+userID, &cached); err == nil {
		return &cached, nil
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	_ = s.cache.Set(ctx, cacheKeyUserPrefix+userID, user, s.opts.CacheTTL)
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	var cached []*models.User
	if err := s.cache.Get(ctx, cacheKeyUsers, &cached); err == nil {
		return cached, nil
	}

	users, err := s.repo.User().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []*models.User{}
	}

	_ = s.cache.Set(ctx, cacheKeyUsers, users, s.opts.CacheTTL)
	return users, nil
}

func (s *userService) GetUserExamsByType(ctx context.Context, userID, examType string) (*models.User, error) {
	t, err := scoring.ParseExamType(examType)
	if err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := user.ExamsOfType(t)
	return &filtered, nil
}

// GetUserReport builds one report per stored exam, optionally for one exam type
func (s *userService) GetUserReport(ctx context.Context, userID, examType string) (*UserReport, error) {
	var filter scoring.ExamType
	if strings.TrimSpace(examType) != "" {
		t, err := scoring.ParseExamType(examType)
		if err != nil {
			return nil, err
		}
		filter = t
	}

	key := reportCacheKey(userID, filter)
	var cached UserReport
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &UserReport{
		UserID:      user.UserID,
		StudentName: user.StudentName,
		Email:       user.Email,
		Reports:     []ExamReportEntry{},
	}

	for _, exam := range user.Exams {
		if filter != "" && exam.ExamType != filter {
			continue
		}
		r, err := s.scoring.Report(exam.ExamType, exam.OverallScore, exam.Skills)
		if err != nil {
			// stored data predating validation may carry unknown tags
			if errors.Is(err, scoring.ErrUnknownExamType) {
				s.logger.Logger().WarnContext(ctx, "Skipping exam with unknown type",
					"user_id", user.UserID, "exam_id", exam.ID, "exam_type", exam.ExamType)
				continue
			}
			return nil, err
		}
		report.Reports = append(report.Reports, ExamReportEntry{
			ExamID:     exam.ID,
			TestDate:   exam.TestDate,
			ExamReport: r,
		})
	}
	report.Count = len(report.Reports)

	_ = s.cache.Set(ctx, key, report, s.opts.CacheTTL)
	return report, nil
}

// ===== HELPERS =====

// reportCacheKey nests report entries under the user key so one pattern clears them
func reportCacheKey(userID string, filter scoring.ExamType) string {
	suffix := cacheKeyReportAll
	if filter != "" {
		suffix = string(filter)
	}
	return cacheKeyUserPrefix + userID + ":report:" + suffix
}

func (s *userService) invalidate(ctx context.Context, userID string) {
	if userID != "" {
		if err := s.cache.Delete(ctx, cacheKeyUserPrefix+userID); err != nil {
			s.logger.Logger().WarnContext(ctx, "Failed to invalidate user cache", "user_id", userID, "error", err)
		}
		if err := s.cache.DeletePattern(ctx, cacheKeyUserPrefix+userID+":*"); err != nil {
			s.logger.Logger().WarnContext(ctx, "Failed to invalidate report cache", "user_id", userID, "error", err)
		}
	}
	if err := s.cache.Delete(ctx, cacheKeyUsers); err != nil {
		s.logger.Logger().WarnContext(ctx, "Failed to invalidate users cache", "error", err)
	}
}

func (s *userService) publish(ctx context.Context, event *events.ReportEvent) {
	publishEvent(ctx, s.publisher, s.logger, event)
}

// publishEvent never fails the caller; errors are only logged
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *ServiceLogger, event *events.ReportEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Logger().ErrorContext(ctx, "Failed to publish event",
			"event_type", event.Type, "event_id", event.ID, "error", err)
	}
}
