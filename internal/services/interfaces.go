package services

import (
	"context"

	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
)

type UserService interface {
	// CreateUser is idempotent on the case-insensitive email. The bool
	// reports whether a new user was stored.
	CreateUser(ctx context.Context, req *CreateUserRequest) (*CreateUserResult, bool, error)
	// SubmitExams replaces the user's whole exam list
	SubmitExams(ctx context.Context, userID string, req *SubmitExamsRequest) (*SubmitExamsResult, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUserExamsByType(ctx context.Context, userID, examType string) (*models.User, error)
	GetUserReport(ctx context.Context, userID, examType string) (*UserReport, error)
}

type AssessmentService interface {
	Create(ctx context.Context, req *CreateAssessmentRequest) (*models.Assessment, error)
	GetByID(ctx context.Context, id string) (*models.Assessment, error)
	List(ctx context.Context, examType string) ([]*models.Assessment, error)
	Latest(ctx context.Context, examType string) (*models.Assessment, error)
}

type ExportService interface {
	ExportUsers(ctx context.Context) ([]byte, error)
	ExportUser(ctx context.Context, userID string) ([]byte, error)
}

type ScoringService interface {
	ExamTypes() []scoring.ExamConfig
	Convert(req *ConvertScoreRequest) (*ConvertScoreResult, error)
	Feedback(req *FeedbackRequest) (*FeedbackResult, error)
	Report(examType scoring.ExamType, overall float64, skills scoring.SkillScores) (*scoring.ExamReport, error)
	FeedbackFunc() scoring.FeedbackFunc
}

type ServiceManager interface {
	User() UserService
	Assessment() AssessmentService
	Export() ExportService
	Scoring() ScoringService
}
