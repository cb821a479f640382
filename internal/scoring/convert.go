package scoring

import (
	"fmt"
	"math"
)

// DegenerateRangeError is returned when a source range has zero width
type DegenerateRangeError struct {
	Exam  ExamType
	Score float64
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("cannot convert score %v: exam %q has an empty score range", e.Score, string(e.Exam))
}

// Convert maps a score from one exam's range onto another's
func Convert(score float64, from, to ExamType) (float64, error) {
	fromCfg, err := Lookup(from)
	if err != nil {
		return 0, err
	}
	toCfg, err := Lookup(to)
	if err != nil {
		return 0, err
	}
	return ConvertBetween(score, fromCfg, toCfg)
}

// ConvertBetween performs the linear normalisation on explicit configs.
// The result is rounded half up to a whole score.
func ConvertBetween(score float64, from, to ExamConfig) (float64, error) {
	if from.Span() == 0 {
		return 0, &DegenerateRangeError{Exam: from.Type, Score: score}
	}

	normalized := (score - from.MinScore) / from.Span()
	return roundHalfUp(normalized*to.Span() + to.MinScore), nil
}

// ConvertToAll converts score into every other exam scale
func ConvertToAll(score float64, from ExamType) (map[ExamType]float64, error) {
	fromCfg, err := Lookup(from)
	if err != nil {
		return nil, err
	}

	out := make(map[ExamType]float64, len(examOrder)-1)
	for _, t := range examOrder {
		if t == from {
			continue
		}
		v, err := ConvertBetween(score, fromCfg, examConfigs[t])
		if err != nil {
			return nil, err
		}
		out[t] = v
	}
	return out, nil
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
