package services

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestScoringService_Convert(t *testing.T) {
	svc := NewScoringService(Options{})

	res, err := svc.Convert(&ConvertScoreRequest{Score: f64(7), From: "IELTS", To: "pte"})
	require.NoError(t, err)
	assert.Equal(t, 70.0, res.Result)
	assert.Equal(t, scoring.ExamIELTS, res.From)

	_, err = svc.Convert(&ConvertScoreRequest{Score: f64(7), From: "gre", To: "pte"})
	assert.ErrorIs(t, err, scoring.ErrUnknownExamType)

	_, err = svc.Convert(&ConvertScoreRequest{From: "ielts", To: "pte"})
	assert.True(t, IsValidation(err))
}

func TestScoringService_Feedback(t *testing.T) {
	svc := NewScoringService(Options{})
	scores := scoring.OverallScores{Overall: 8, Pronunciation: 6, Fluency: 3}

	res, err := svc.Feedback(&FeedbackRequest{ExamType: "ielts", Scores: scores})
	require.NoError(t, err)
	assert.Equal(t, 9.0, res.MaxScore)
	assert.Equal(t, scoring.TierExcellent.Message(), res.Feedback.Overall)
	assert.Equal(t, scoring.TierGood.Message(), res.Feedback.Pronunciation)
	assert.Equal(t, scoring.TierNeedsImprovement.Message(), res.Feedback.Fluency)

	res, err = svc.Feedback(&FeedbackRequest{MaxScore: f64(90), Scores: scoring.OverallScores{Overall: 8}})
	require.NoError(t, err)
	assert.Equal(t, scoring.TierNeedsImprovement.Message(), res.Feedback.Overall)

	_, err = svc.Feedback(&FeedbackRequest{Scores: scores})
	assert.True(t, IsValidation(err))
}

func TestScoringService_LegacyFeedback(t *testing.T) {
	svc := NewScoringService(Options{LegacyFeedback: true})

	res, err := svc.Feedback(&FeedbackRequest{MaxScore: f64(90), Scores: scoring.OverallScores{Overall: 8}})
	require.NoError(t, err)
	assert.Equal(t, scoring.TierExcellent.Message(), res.Feedback.Overall)
}

func TestScoringService_ExamTypes(t *testing.T) {
	configs := NewScoringService(Options{}).ExamTypes()
	require.Len(t, configs, 6)
	assert.Equal(t, scoring.ExamSpeechace, configs[0].Type)
	assert.Equal(t, scoring.ExamTOEIC, configs[5].Type)
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var in struct {
		A *Date `json:"a"`
		B *Date `json:"b"`
		C *Date `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2025-03-04","b":"2025-03-04T10:11:12Z","c":null}`), &in))
	assert.Equal(t, 4, in.A.Day())
	assert.Equal(t, 10, in.B.Hour())
	assert.Nil(t, in.C)

	var bad struct {
		A Date `json:"a"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"a":"yesterday"}`), &bad))
}

func TestExportService(t *testing.T) {
	env := newTestEnv(t, Options{}, nil)
	ctx := context.Background()

	ana := createUser(t, env.users, "Ana", "ana@example.com")
	createUser(t, env.users, "Bo", "bo@example.com")
	_, err := env.users.SubmitExams(ctx, ana.UserID, &SubmitExamsRequest{Exams: []ExamInput{
		{ExamType: "ielts", OverallScore: f64(8), Skills: skillsInput(8, 7, 6, 5)},
		{ExamType: "pte", OverallScore: f64(45), Skills: skillsInput(45, 45, 45, 45)},
	}})
	require.NoError(t, err)

	data, err := env.manager.Export().ExportUsers(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "Ana", rows[1][1])
	assert.Equal(t, "ielts", rows[1][5])
	assert.Equal(t, "88.9%", rows[1][9])
	assert.Equal(t, scoring.TierExcellent.Message(), rows[1][14])
	assert.Equal(t, "pte", rows[2][5])
	assert.Equal(t, "Bo", rows[3][1])

	data, err = env.manager.Export().ExportUser(ctx, ana.UserID)
	require.NoError(t, err)
	f2, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f2.Close()
	rows, err = f2.GetRows(exportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = env.manager.Export().ExportUser(ctx, "user_missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
