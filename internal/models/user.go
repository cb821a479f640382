package models

import (
	"strings"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
)

type User struct {
	UserID       string `json:"userId" bson:"_id" gorm:"primaryKey;column:user_id;size:64"`
	StudentName  string `json:"studentName" bson:"studentName" gorm:"not null;size:200"`
	Email        string `json:"email" bson:"email" gorm:"uniqueIndex;not null;size:255"`
	Mobile       string `json:"mobile" bson:"mobile" gorm:"size:32"`
	ProfilePhoto string `json:"profilePhoto" bson:"profilePhoto" gorm:"type:text"`

	Exams []Exam `json:"exams" bson:"exams" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// ExamsOfType returns a copy of the user holding only exams of the given type
func (u User) ExamsOfType(t scoring.ExamType) User {
	filtered := make([]Exam, 0, len(u.Exams))
	for _, e := range u.Exams {
		if e.ExamType == t {
			filtered = append(filtered, e)
		}
	}
	u.Exams = filtered
	return u
}

type Exam struct {
	ID           string              `json:"id" bson:"id" gorm:"primaryKey;size:64"`
	UserID       string              `json:"-" bson:"-" gorm:"primaryKey;size:64"`
	Position     int                 `json:"-" bson:"-" gorm:"not null;default:0"`
	ExamType     scoring.ExamType    `json:"examType" bson:"examType" gorm:"not null;size:20;index"`
	TestDate     time.Time           `json:"testDate" bson:"testDate"`
	OverallScore float64             `json:"overallScore" bson:"overallScore"`
	Skills       scoring.SkillScores `json:"skills" bson:"skills" gorm:"embedded;embeddedPrefix:skill_"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (Exam) TableName() string {
	return "exams"
}

// NormalizeEmail is the dedup key used for users
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
