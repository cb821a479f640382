package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
	"github.com/Anilrajput6441/Gema-Assignment/internal/services"
	"github.com/spf13/cobra"
)

var examTypesCmd = &cobra.Command{
	Use:   "exam-types",
	Short: "List the supported exam scales",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-10s  %-10s  %6s  %6s  %s\n", "Type", "Name", "Min", "Max", "Label")
		fmt.Fprintln(out, strings.Repeat("─", 44))
		for _, c := range scoring.AllExamConfigs() {
			fmt.Fprintf(out, "%-10s  %-10s  %6g  %6g  %s\n", c.Type, c.Name, c.MinScore, c.MaxScore, c.ScoreLabel)
		}
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <score>",
	Short: "Convert a score between exam scales",
	Long:  "Convert a score from one exam scale to another. Without --to the score is converted to every scale.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid score %q: %w", args[0], err)
		}
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		out := cmd.OutOrStdout()

		if to != "" {
			res, err := services.NewScoringService(services.Options{}).Convert(&services.ConvertScoreRequest{
				Score: &score, From: from, To: to,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%g %s = %g %s\n", res.Score, res.From, res.Result, res.To)
			return nil
		}

		fromType, err := scoring.ParseExamType(from)
		if err != nil {
			return err
		}
		all, err := scoring.ConvertToAll(score, fromType)
		if err != nil {
			return err
		}
		for _, t := range scoring.AllExamTypes() {
			if v, ok := all[t]; ok {
				fmt.Fprintf(out, "%-10s  %g\n", t, v)
			}
		}
		return nil
	},
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback <overall> [pronunciation fluency vocabulary grammar]",
	Short: "Print the feedback messages for a set of scores",
	Args:  cobra.RangeArgs(1, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		values := make([]float64, 5)
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("invalid score %q: %w", a, err)
			}
			values[i] = v
		}

		req := &services.FeedbackRequest{
			Scores: scoring.OverallScores{
				Overall:       values[0],
				Pronunciation: values[1],
				Fluency:       values[2],
				Vocabulary:    values[3],
				Grammar:       values[4],
			},
		}
		req.ExamType, _ = cmd.Flags().GetString("exam")
		if cmd.Flags().Changed("max") {
			maxScore, _ := cmd.Flags().GetFloat64("max")
			req.MaxScore = &maxScore
		}
		legacy, _ := cmd.Flags().GetBool("legacy")

		res, err := services.NewScoringService(services.Options{LegacyFeedback: legacy}).Feedback(req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-14s  %s\n", "overall", res.Feedback.Overall)
		if len(args) > 1 {
			fmt.Fprintf(out, "%-14s  %s\n", "pronunciation", res.Feedback.Pronunciation)
			fmt.Fprintf(out, "%-14s  %s\n", "fluency", res.Feedback.Fluency)
			fmt.Fprintf(out, "%-14s  %s\n", "vocabulary", res.Feedback.Vocabulary)
			fmt.Fprintf(out, "%-14s  %s\n", "grammar", res.Feedback.Grammar)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().String("from", "", "Source exam type")
	convertCmd.Flags().String("to", "", "Target exam type")
	_ = convertCmd.MarkFlagRequired("from")

	feedbackCmd.Flags().String("exam", "", "Exam type whose max score is used")
	feedbackCmd.Flags().Float64("max", 0, "Explicit max score")
	feedbackCmd.Flags().Bool("legacy", false, "Also apply the raw 0-9 score conditions")
}
