package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// assessmentRecord is the table row; feedback lives in a JSON column
type assessmentRecord struct {
	ID           string                                  `gorm:"primaryKey;size:64"`
	StudentName  string                                  `gorm:"not null;size:200"`
	ExamType     string                                  `gorm:"not null;size:20;index"`
	TestDate     time.Time                               `gorm:"not null"`
	OverallScore float64                                 `gorm:"not null"`
	Skills       scoring.SkillScores                     `gorm:"embedded;embeddedPrefix:skill_"`
	Feedback     datatypes.JSONType[scoring.FeedbackSet] `gorm:"not null"`
	CreatedAt    time.Time                               `gorm:"index"`
	UpdatedAt    time.Time
}

func (assessmentRecord) TableName() string {
	return "assessments"
}

func toRecord(a *models.Assessment) *assessmentRecord {
	return &assessmentRecord{
		ID:           a.ID,
		StudentName:  a.StudentName,
		ExamType:     string(a.ExamType),
		TestDate:     a.TestDate,
		OverallScore: a.OverallScore,
		Skills:       a.Skills,
		Feedback:     datatypes.NewJSONType(a.Feedback),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (r *assessmentRecord) toModel() *models.Assessment {
	return &models.Assessment{
		ID:           r.ID,
		StudentName:  r.StudentName,
		ExamType:     scoring.ExamType(r.ExamType),
		TestDate:     r.TestDate,
		OverallScore: r.OverallScore,
		Skills:       r.Skills,
		Feedback:     r.Feedback.Data(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type AssessmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssessmentPostgreSQL(db *gorm.DB) *AssessmentPostgreSQL {
	return &AssessmentPostgreSQL{db: db}
}

func (a *AssessmentPostgreSQL) Create(ctx context.Context, assessment *models.Assessment) error {
	record := toRecord(assessment)
	if err := a.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	assessment.CreatedAt = record.CreatedAt
	assessment.UpdatedAt = record.UpdatedAt
	return nil
}

func (a *AssessmentPostgreSQL) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	var record assessmentRecord
	if err := a.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toModel(), nil
}

func (a *AssessmentPostgreSQL) query(ctx context.Context, filter models.AssessmentFilter) *gorm.DB {
	q := a.db.WithContext(ctx).Model(&assessmentRecord{})
	if filter.ExamType != "" {
		q = q.Where("exam_type = ?", string(filter.ExamType))
	}
	return q.Order("created_at DESC").Order("id DESC")
}

func (a *AssessmentPostgreSQL) List(ctx context.Context, filter models.AssessmentFilter) ([]*models.Assessment, error) {
	var records []assessmentRecord
	if err := a.query(ctx, filter).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	out := make([]*models.Assessment, 0, len(records))
	for i := range records {
		out = append(out, records[i].toModel())
	}
	return out, nil
}

func (a *AssessmentPostgreSQL) Latest(ctx context.Context, filter models.AssessmentFilter) (*models.Assessment, error) {
	var record assessmentRecord
	if err := a.query(ctx, filter).First(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toModel(), nil
}

var _ repositories.AssessmentRepository = (*AssessmentPostgreSQL)(nil)
var _ repositories.UserRepository = (*UserPostgreSQL)(nil)
