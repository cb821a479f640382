package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AllConfigsHavePositiveRange(t *testing.T) {
	for _, et := range AllExamTypes() {
		cfg, err := Lookup(et)
		require.NoError(t, err)
		assert.Greater(t, cfg.MaxScore, cfg.MinScore, "exam %s", et)
		assert.Equal(t, et, cfg.Type)
	}
}

func TestRegistry_DeclarationOrder(t *testing.T) {
	assert.Equal(t, []ExamType{ExamSpeechace, ExamCEFR, ExamIELTS, ExamPTE, ExamTOEFL, ExamTOEIC}, AllExamTypes())

	configs := AllExamConfigs()
	require.Len(t, configs, 6)
	assert.Equal(t, "Speechace", configs[0].Name)
	assert.Equal(t, "TOEIC", configs[5].Name)

	// callers cannot mutate the registry order
	types := AllExamTypes()
	types[0] = ExamTOEIC
	assert.Equal(t, ExamSpeechace, AllExamTypes()[0])
}

func TestRegistry_UnknownExamType(t *testing.T) {
	_, err := Lookup("duolingo")
	assert.True(t, errors.Is(err, ErrUnknownExamType))

	assert.Panics(t, func() { MustConfig("duolingo") })
	assert.False(t, ExamType("").IsValid())
}

func TestParseExamType(t *testing.T) {
	et, err := ParseExamType("  IELTS ")
	require.NoError(t, err)
	assert.Equal(t, ExamIELTS, et)

	_, err = ParseExamType("gre")
	assert.ErrorIs(t, err, ErrUnknownExamType)
}

func TestRegistry_Ranges(t *testing.T) {
	cefr := MustConfig(ExamCEFR)
	assert.Equal(t, 1.0, cefr.MinScore)
	assert.Equal(t, 6.0, cefr.MaxScore)
	assert.Equal(t, 200.0, MustConfig(ExamTOEIC).MaxScore)
	assert.True(t, MustConfig(ExamPTE).Contains(90))
	assert.False(t, MustConfig(ExamPTE).Contains(91))
}

func TestFeedbackFor_Scenarios(t *testing.T) {
	assert.Equal(t, "Excellent performance with strong control.", FeedbackFor(8, 9).Message())
	assert.Equal(t, "Good performance with minor inaccuracies.", FeedbackFor(6, 9).Message())
	assert.Equal(t, "Needs improvement.", FeedbackFor(3, 9).Message())
}

func TestFeedbackFor_Boundaries(t *testing.T) {
	for _, cfg := range AllExamConfigs() {
		max := cfg.MaxScore
		assert.Equal(t, TierExcellent, FeedbackFor(0.88*max, max), "88%% of %v", max)
		assert.NotEqual(t, TierExcellent, FeedbackFor(0.879999*max, max), "87.9999%% of %v", max)
		assert.Equal(t, TierGood, FeedbackFor(0.66*max, max), "66%% of %v", max)
		assert.Equal(t, TierNeedsImprovement, FeedbackFor(0.659999*max, max), "65.9999%% of %v", max)
	}
}

func TestFeedbackFor_Monotonic(t *testing.T) {
	max := 120.0
	prev := FeedbackFor(0, max).Rank()
	for s := 0.0; s <= max; s += 0.5 {
		rank := FeedbackFor(s, max).Rank()
		assert.GreaterOrEqual(t, rank, prev, "score %v", s)
		prev = rank
	}
}

func TestFeedbackFor_NonPositiveMax(t *testing.T) {
	assert.Equal(t, TierNeedsImprovement, FeedbackFor(5, 0))
	assert.Equal(t, TierNeedsImprovement, FeedbackFor(5, -1))
}

func TestFeedbackForLegacy(t *testing.T) {
	// on a 0-9 scale both policies agree
	for s := 0.0; s <= 9; s++ {
		assert.Equal(t, FeedbackFor(s, 9), FeedbackForLegacy(s, 9), "score %v", s)
	}

	// the raw-score quirk shows on wider scales
	assert.Equal(t, TierNeedsImprovement, FeedbackFor(8, 200))
	assert.Equal(t, TierExcellent, FeedbackForLegacy(8, 200))
	assert.Equal(t, TierGood, FeedbackForLegacy(7, 200))

	// narrow scales still reach Excellent through the percentage
	assert.Equal(t, TierExcellent, FeedbackForLegacy(6, 6))
	assert.Equal(t, TierExcellent, FeedbackForLegacy(6.5, 7))
	assert.Equal(t, TierGood, FeedbackForLegacy(4, 6))
	assert.Equal(t, TierNeedsImprovement, FeedbackForLegacy(3, 6))
	assert.Equal(t, TierNeedsImprovement, FeedbackForLegacy(5, 0))
}

func TestFeedbackForAll(t *testing.T) {
	set := FeedbackForAll(OverallScores{Overall: 8, Pronunciation: 6, Fluency: 3, Vocabulary: 9, Grammar: 7}, 9)

	assert.Equal(t, TierExcellent.Message(), set.Overall)
	assert.Equal(t, TierGood.Message(), set.Pronunciation)
	assert.Equal(t, TierNeedsImprovement.Message(), set.Fluency)
	assert.Equal(t, TierExcellent.Message(), set.Vocabulary)
	assert.Equal(t, TierGood.Message(), set.Grammar)
	assert.False(t, set.IsZero())
}

func TestConvert_Identity(t *testing.T) {
	for _, cfg := range AllExamConfigs() {
		for s := cfg.MinScore; s <= cfg.MaxScore; s++ {
			got, err := Convert(s, cfg.Type, cfg.Type)
			require.NoError(t, err)
			assert.Equal(t, s, got, "exam %s score %v", cfg.Type, s)
		}
	}
}

func TestConvert_BoundaryPreservation(t *testing.T) {
	for _, from := range AllExamConfigs() {
		for _, to := range AllExamConfigs() {
			lo, err := Convert(from.MinScore, from.Type, to.Type)
			require.NoError(t, err)
			hi, err := Convert(from.MaxScore, from.Type, to.Type)
			require.NoError(t, err)

			assert.Equal(t, to.MinScore, lo, "%s -> %s min", from.Type, to.Type)
			assert.Equal(t, to.MaxScore, hi, "%s -> %s max", from.Type, to.Type)
		}
	}
}

func TestConvert_Values(t *testing.T) {
	got, err := Convert(7, ExamIELTS, ExamPTE)
	require.NoError(t, err)
	assert.Equal(t, 70.0, got)

	// 4.5/9 of 200 = 100
	got, err = Convert(4.5, ExamIELTS, ExamTOEIC)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)

	// (3.5-1)/5 * 9 = 4.5 rounds half up
	got, err = Convert(3.5, ExamCEFR, ExamIELTS)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
}

func TestConvert_Errors(t *testing.T) {
	_, err := Convert(5, "gre", ExamIELTS)
	assert.ErrorIs(t, err, ErrUnknownExamType)

	_, err = Convert(5, ExamIELTS, "gre")
	assert.ErrorIs(t, err, ErrUnknownExamType)

	flat := ExamConfig{Type: "flat", MinScore: 5, MaxScore: 5}
	_, err = ConvertBetween(5, flat, MustConfig(ExamIELTS))
	var degenerate *DegenerateRangeError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, ExamType("flat"), degenerate.Exam)
}

func TestConvertToAll(t *testing.T) {
	out, err := ConvertToAll(9, ExamIELTS)
	require.NoError(t, err)
	assert.Len(t, out, 5)
	assert.NotContains(t, out, ExamIELTS)
	assert.Equal(t, 120.0, out[ExamTOEFL])
	assert.Equal(t, 6.0, out[ExamCEFR])
}

func TestBuildExamReport(t *testing.T) {
	report, err := BuildExamReport(ExamIELTS, 7.5, SkillScores{Pronunciation: 8, Fluency: 6, Vocabulary: 7, Grammar: 3}, ReportOptions{Conversions: true})
	require.NoError(t, err)

	assert.Equal(t, "IELTS", report.Exam.Name)
	assert.InDelta(t, 83.33, report.OverallPercentage, 0.01)
	assert.Equal(t, TierGood, report.OverallTier)
	assert.Equal(t, CardExcellent, report.ScoreCard)

	require.Len(t, report.Skills, 4)
	assert.Equal(t, "pronunciation", report.Skills[0].Skill)
	assert.Equal(t, BandGreen, report.Skills[0].Band)
	assert.Equal(t, BandYellow, report.Skills[1].Band)
	assert.Equal(t, BandRed, report.Skills[3].Band)
	assert.Equal(t, TierNeedsImprovement.Message(), report.Feedback.Grammar)

	assert.Equal(t, 75.0, report.Conversions[ExamPTE])
}

func TestBuildExamReport_UnknownType(t *testing.T) {
	_, err := BuildExamReport("gre", 1, SkillScores{}, ReportOptions{})
	assert.ErrorIs(t, err, ErrUnknownExamType)
}

func TestScoreCardBand(t *testing.T) {
	assert.Equal(t, CardExcellent, ScoreCardBand(83))
	assert.Equal(t, CardGreat, ScoreCardBand(78))
	assert.Equal(t, CardKeepPracticing, ScoreCardBand(77.9))
}
