package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/course-conflict-checker/pkg/config"
	"github.com/noah-isme/course-conflict-checker/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "conflictctl",
	Short: "Course schedule conflict checker tooling",
	Long: `conflictctl applies the schedule schema, checks stored terms or JSON
schedule snapshots for conflicts, and mints development access tokens.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

// loadRuntime reads configuration and builds the logger shared by commands.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logr, nil
}
