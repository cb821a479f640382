package services

import (
	"strings"

	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
)

type scoringService struct {
	feedback scoring.FeedbackFunc
}

func NewScoringService(opts Options) ScoringService {
	return &scoringService{feedback: opts.feedbackFunc()}
}

func (s *scoringService) FeedbackFunc() scoring.FeedbackFunc {
	return s.feedback
}

func (s *scoringService) ExamTypes() []scoring.ExamConfig {
	return scoring.AllExamConfigs()
}

func (s *scoringService) Convert(req *ConvertScoreRequest) (*ConvertScoreResult, error) {
	if req.Score == nil {
		return nil, ValidationErrors{*NewValidationError("score", "is required", nil)}
	}

	from, err := scoring.ParseExamType(req.From)
	if err != nil {
		return nil, err
	}
	to, err := scoring.ParseExamType(req.To)
	if err != nil {
		return nil, err
	}

	result, err := scoring.Convert(*req.Score, from, to)
	if err != nil {
		return nil, err
	}

	return &ConvertScoreResult{
		Score:  *req.Score,
		From:   from,
		To:     to,
		Result: result,
	}, nil
}

func (s *scoringService) Feedback(req *FeedbackRequest) (*FeedbackResult, error) {
	out := &FeedbackResult{}

	switch {
	case strings.TrimSpace(req.ExamType) != "":
		t, err := scoring.ParseExamType(req.ExamType)
		if err != nil {
			return nil, err
		}
		out.ExamType = t
		out.MaxScore = scoring.MustConfig(t).MaxScore
	case req.MaxScore != nil:
		out.MaxScore = *req.MaxScore
	default:
		return nil, ValidationErrors{*NewValidationError("examType", "examType or maxScore is required", nil)}
	}

	out.Feedback = scoring.FeedbackForAllWith(s.feedback, req.Scores, out.MaxScore)
	return out, nil
}

func (s *scoringService) Report(examType scoring.ExamType, overall float64, skills scoring.SkillScores) (*scoring.ExamReport, error) {
	return scoring.BuildExamReport(examType, overall, skills, scoring.ReportOptions{
		Feedback:    s.feedback,
		Conversions: true,
	})
}
