package cmd

import (
	"bytes"
	"testing"

	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExamTypesCommand(t *testing.T) {
	out, err := run(t, "exam-types")
	require.NoError(t, err)
	for _, c := range scoring.AllExamConfigs() {
		assert.Contains(t, out, c.Name)
	}
}

func TestConvertCommand(t *testing.T) {
	out, err := run(t, "convert", "7", "--from", "ielts", "--to", "pte")
	require.NoError(t, err)
	assert.Equal(t, "7 ielts = 70 pte\n", out)

	out, err = run(t, "convert", "45", "--from", "PTE", "--to", "")
	require.NoError(t, err)
	assert.Contains(t, out, "toefl")
	assert.NotContains(t, out, "pte ")

	_, err = run(t, "convert", "7", "--from", "gre", "--to", "pte")
	assert.ErrorIs(t, err, scoring.ErrUnknownExamType)

	_, err = run(t, "convert", "seven", "--from", "ielts", "--to", "pte")
	assert.Error(t, err)
}

func TestFeedbackCommand(t *testing.T) {
	out, err := run(t, "feedback", "--exam", "ielts", "8", "6", "3", "7", "5")
	require.NoError(t, err)
	assert.Contains(t, out, scoring.TierExcellent.Message())
	assert.Contains(t, out, scoring.TierGood.Message())
	assert.Contains(t, out, scoring.TierNeedsImprovement.Message())

	out, err = run(t, "feedback", "--exam", "", "--max", "90", "80")
	require.NoError(t, err)
	assert.Contains(t, out, scoring.TierExcellent.Message())
	assert.NotContains(t, out, "pronunciation")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "reportd")
}
