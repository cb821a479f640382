package validator

import (
	"fmt"

	"github.com/Anilrajput6441/Gema-Assignment/internal/errors"
	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
)

// ValidateScoreRange reports every score outside the exam's [min, max].
// field maps a score name such as "overallScore" or "skills.fluency" to
// the path reported back to the client.
func (v *Validator) ValidateScoreRange(examType scoring.ExamType, field func(string) string, overall float64, skills scoring.SkillScores) ValidationErrors {
	cfg, err := scoring.Lookup(examType)
	if err != nil {
		return ValidationErrors{*errors.NewValidationErrorWithRule(field("examType"), "must be a valid exam type", "exam_type", string(examType))}
	}
	msg := fmt.Sprintf("must be between %g and %g", cfg.MinScore, cfg.MaxScore)

	var verrs ValidationErrors
	if !cfg.Contains(overall) {
		verrs = verrs.Add(field("overallScore"), msg, overall)
	}
	for i, s := range skills.Values() {
		if !cfg.Contains(s) {
			verrs = verrs.Add(field("skills."+scoring.SkillNames[i]), msg, s)
		}
	}
	return verrs
}
