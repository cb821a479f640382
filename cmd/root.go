package cmd

import (
	"github.com/Anilrajput6441/Gema-Assignment/internal/config"
	"github.com/Anilrajput6441/Gema-Assignment/internal/services"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "reportd",
	Short:         "Speaking assessment report service",
	Long:          "reportd stores speaking exam results, scores them against each exam's range and serves the reports over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (defaults to ./.env when present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(examTypesCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the --env-file flag, then the environment
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if p, _ := cmd.Flags().GetString("env-file"); p != "" {
		return config.LoadConfig(p)
	}
	return config.LoadConfig()
}

func serviceOptions(cfg *config.Config) services.Options {
	return services.Options{
		StrictScoreRange: cfg.StrictScoreRange,
		LegacyFeedback:   cfg.FeedbackLegacyThresholds,
		CacheTTL:         cfg.CacheTTL,
	}
}
