package scoring

import (
	"errors"
	"fmt"
	"strings"
)

type ExamType string

const (
	ExamSpeechace ExamType = "speechace"
	ExamCEFR      ExamType = "cefr"
	ExamIELTS     ExamType = "ielts"
	ExamPTE       ExamType = "pte"
	ExamTOEFL     ExamType = "toefl"
	ExamTOEIC     ExamType = "toeic"
)

// ErrUnknownExamType is returned for tags outside the supported exam scales
var ErrUnknownExamType = errors.New("unknown exam type")

// ExamConfig describes the score range of a single exam scale
type ExamConfig struct {
	Type       ExamType `json:"examType"`
	Name       string   `json:"name"`
	MinScore   float64  `json:"minScore"`
	MaxScore   float64  `json:"maxScore"`
	ScoreLabel string   `json:"scoreLabel"`
	Color      string   `json:"color"`
}

// Span is the width of the score range.
func (c ExamConfig) Span() float64 {
	return c.MaxScore - c.MinScore
}

// Contains reports whether score lies within [MinScore, MaxScore].
func (c ExamConfig) Contains(score float64) bool {
	return score >= c.MinScore && score <= c.MaxScore
}

var examOrder = []ExamType{
	ExamSpeechace,
	ExamCEFR,
	ExamIELTS,
	ExamPTE,
	ExamTOEFL,
	ExamTOEIC,
}

var examConfigs = map[ExamType]ExamConfig{
	ExamSpeechace: {Type: ExamSpeechace, Name: "Speechace", MinScore: 0, MaxScore: 9, ScoreLabel: "/9", Color: "blue"},
	// CEFR levels A1..C2 mapped onto 1..6
	ExamCEFR:  {Type: ExamCEFR, Name: "CEFR", MinScore: 1, MaxScore: 6, ScoreLabel: "", Color: "purple"},
	ExamIELTS: {Type: ExamIELTS, Name: "IELTS", MinScore: 0, MaxScore: 9, ScoreLabel: "/9", Color: "red"},
	ExamPTE:   {Type: ExamPTE, Name: "PTE", MinScore: 0, MaxScore: 90, ScoreLabel: "/90", Color: "green"},
	ExamTOEFL: {Type: ExamTOEFL, Name: "TOEFL", MinScore: 0, MaxScore: 120, ScoreLabel: "/120", Color: "orange"},
	ExamTOEIC: {Type: ExamTOEIC, Name: "TOEIC", MinScore: 0, MaxScore: 200, ScoreLabel: "/200", Color: "indigo"},
}

// Lookup returns the configuration for an exam type
func Lookup(t ExamType) (ExamConfig, error) {
	cfg, ok := examConfigs[t]
	if !ok {
		return ExamConfig{}, fmt.Errorf("%w: %q", ErrUnknownExamType, string(t))
	}
	return cfg, nil
}

// MustConfig is Lookup for callers holding one of the declared constants.
func MustConfig(t ExamType) ExamConfig {
	cfg, err := Lookup(t)
	if err != nil {
		panic(err)
	}
	return cfg
}

// AllExamTypes returns the supported exam types in declaration order
func AllExamTypes() []ExamType {
	out := make([]ExamType, len(examOrder))
	copy(out, examOrder)
	return out
}

// AllExamConfigs returns the configs in the same order as AllExamTypes
func AllExamConfigs() []ExamConfig {
	out := make([]ExamConfig, 0, len(examOrder))
	for _, t := range examOrder {
		out = append(out, examConfigs[t])
	}
	return out
}

// ParseExamType parses a tag case-insensitively
func ParseExamType(s string) (ExamType, error) {
	t := ExamType(strings.ToLower(strings.TrimSpace(s)))
	if _, err := Lookup(t); err != nil {
		return "", err
	}
	return t, nil
}

func (t ExamType) IsValid() bool {
	_, ok := examConfigs[t]
	return ok
}

func (t ExamType) String() string {
	return string(t)
}
