package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of report events
type EventType string

const (
	EventUserCreated       EventType = "user.created"
	EventExamsSubmitted    EventType = "exams.submitted"
	EventAssessmentCreated EventType = "assessment.created"
)

const (
	eventSource  = "speaking-report"
	eventVersion = "1.0"
)

// ReportEvent is the envelope published for every event type
type ReportEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type UserCreatedEvent struct {
	UserID      string `json:"user_id"`
	StudentName string `json:"student_name"`
	Email       string `json:"email"`
}

type ExamsSubmittedEvent struct {
	UserID     string   `json:"user_id"`
	TotalExams int      `json:"total_exams"`
	ExamTypes  []string `json:"exam_types"`
}

type AssessmentCreatedEvent struct {
	AssessmentID string  `json:"assessment_id"`
	StudentName  string  `json:"student_name"`
	ExamType     string  `json:"exam_type"`
	OverallScore float64 `json:"overall_score"`
}

// NewReportEvent wraps data in an envelope with a fresh id
func NewReportEvent(eventType EventType, data interface{}) *ReportEvent {
	return &ReportEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}
