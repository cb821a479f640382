package models

import (
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
)

// Assessment is a standalone, append-only exam result that is not tied to a user record
type Assessment struct {
	ID           string              `json:"id" bson:"_id"`
	StudentName  string              `json:"studentName" bson:"studentName"`
	ExamType     scoring.ExamType    `json:"examType" bson:"examType"`
	TestDate     time.Time           `json:"testDate" bson:"testDate"`
	OverallScore float64             `json:"overallScore" bson:"overallScore"`
	Skills       scoring.SkillScores `json:"skills" bson:"skills"`
	Feedback     scoring.FeedbackSet `json:"feedback" bson:"feedback"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// AssessmentFilter narrows assessment listings
type AssessmentFilter struct {
	ExamType scoring.ExamType
}

// Matches reports whether a passes the filter.
func (f AssessmentFilter) Matches(a *Assessment) bool {
	return f.ExamType == "" || a.ExamType == f.ExamType
}
