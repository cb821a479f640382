package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
)

// ===== REQUEST TYPES =====

type CreateUserRequest struct {
	StudentName  string `json:"studentName" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,max=255"`
	Mobile       string `json:"mobile" validate:"max=32"`
	ProfilePhoto string `json:"profilePhoto"`
}

// SkillScoresInput uses pointers so a missing score is told apart from 0
type SkillScoresInput struct {
	Pronunciation *float64 `json:"pronunciation" validate:"required,gte=0"`
	Fluency       *float64 `json:"fluency" validate:"required,gte=0"`
	Vocabulary    *float64 `json:"vocabulary" validate:"required,gte=0"`
	Grammar       *float64 `json:"grammar" validate:"required,gte=0"`
}

func (s *SkillScoresInput) toScores() scoring.SkillScores {
	return scoring.SkillScores{
		Pronunciation: *s.Pronunciation,
		Fluency:       *s.Fluency,
		Vocabulary:    *s.Vocabulary,
		Grammar:       *s.Grammar,
	}
}

// ExamInput is one exam of a submission. Skills may be sent either as an
// object or as the legacy [pronunciation, fluency, vocabulary, grammar] array.
type ExamInput struct {
	ID           string            `json:"id" validate:"max=64"`
	LegacyID     string            `json:"_id" validate:"max=64"`
	ExamType     string            `json:"examType" validate:"required,exam_type"`
	TestDate     *Date             `json:"testDate"`
	OverallScore *float64          `json:"overallScore" validate:"required,gte=0"`
	Skills       *SkillScoresInput `json:"skills" validate:"omitempty"`
	Scores       []float64         `json:"scores" validate:"omitempty,len=4,dive,gte=0"`
	CreatedAt    *Date             `json:"createdAt"`
}

func (e *ExamInput) examID() string {
	if e.ID != "" {
		return e.ID
	}
	return e.LegacyID
}

func (e *ExamInput) skillScores() (scoring.SkillScores, bool) {
	switch {
	case e.Skills != nil:
		return e.Skills.toScores(), true
	case len(e.Scores) == 4:
		return scoring.SkillScores{
			Pronunciation: e.Scores[0],
			Fluency:       e.Scores[1],
			Vocabulary:    e.Scores[2],
			Grammar:       e.Scores[3],
		}, true
	default:
		return scoring.SkillScores{}, false
	}
}

type SubmitExamsRequest struct {
	Exams []ExamInput `json:"exams" validate:"required,dive"`
}

type CreateAssessmentRequest struct {
	StudentName  string               `json:"studentName" validate:"required,max=200"`
	ExamType     string               `json:"examType" validate:"required,exam_type"`
	TestDate     *Date                `json:"testDate"`
	OverallScore *float64             `json:"overallScore" validate:"required,gte=0"`
	Skills       *SkillScoresInput    `json:"skills" validate:"required"`
	Feedback     *scoring.FeedbackSet `json:"feedback"`
}

type ConvertScoreRequest struct {
	Score *float64 `json:"score" validate:"required"`
	From  string   `json:"from" validate:"required"`
	To    string   `json:"to" validate:"required"`
}

// FeedbackRequest takes either an exam type or an explicit max score
type FeedbackRequest struct {
	ExamType string                `json:"examType"`
	MaxScore *float64              `json:"maxScore"`
	Scores   scoring.OverallScores `json:"scores"`
}

// ===== RESPONSE TYPES =====

type CreateUserResult struct {
	UserID      string `json:"userId"`
	StudentName string `json:"studentName"`
	Email       string `json:"email"`
	Message     string `json:"message,omitempty"`
}

type SubmitExamsResult struct {
	UserID      string `json:"userId"`
	StudentName string `json:"studentName"`
	TotalExams  int    `json:"totalExams"`
}

type ConvertScoreResult struct {
	Score  float64          `json:"score"`
	From   scoring.ExamType `json:"from"`
	To     scoring.ExamType `json:"to"`
	Result float64          `json:"result"`
}

type FeedbackResult struct {
	ExamType scoring.ExamType    `json:"examType,omitempty"`
	MaxScore float64             `json:"maxScore"`
	Feedback scoring.FeedbackSet `json:"feedback"`
}

// ExamReportEntry pairs a stored exam with its computed report
type ExamReportEntry struct {
	ExamID   string    `json:"examId"`
	TestDate time.Time `json:"testDate"`
	*scoring.ExamReport
}

type UserReport struct {
	UserID      string            `json:"userId"`
	StudentName string            `json:"studentName"`
	Email       string            `json:"email"`
	Count       int               `json:"count"`
	Reports     []ExamReportEntry `json:"reports"`
}

func summaryOf(u *models.User) *CreateUserResult {
	return &CreateUserResult{
		UserID:      u.UserID,
		StudentName: u.StudentName,
		Email:       u.Email,
	}
}

// ===== DATES =====

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date accepts RFC 3339 timestamps as well as plain calendar dates
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// orNow returns the date or now when the date is absent
func (d *Date) orNow(now time.Time) time.Time {
	if d == nil || d.IsZero() {
		return now
	}
	return d.Time
}
