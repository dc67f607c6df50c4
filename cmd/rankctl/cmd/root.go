// Package cmd provides the CLI commands for rankctl.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/rankcore/internal/config"
	"github.com/Aman-CERP/rankcore/internal/logging"
	"github.com/Aman-CERP/rankcore/pkg/version"
)

var (
	debugMode  bool
	configDir  string
	logCleanup func()
	rootConfig *config.Config
)

// NewRootCmd creates the root command for the rankctl CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rankctl",
		Short:   "Exercise the ranking core's bang redirector and signal computer",
		Long:    `rankctl is a manual-exercise CLI for the ranking core: bang lookups against a table file and signal-score breakdowns against a toy in-memory segment, without a real index.`,
		Version: version.Version,
	}

	cmd.SetVersionTemplate("rankctl version {{.Version}}\n")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging to ~/.rankcore/logs/")
	cmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory to look for a .rankcore.yaml/.yml project config in")
	cmd.PersistentPreRunE = setupRoot
	cmd.PersistentPostRunE = func(*cobra.Command, []string) error {
		if logCleanup != nil {
			logCleanup()
		}
		return nil
	}

	cmd.AddCommand(newBangsCmd())
	cmd.AddCommand(newScoreCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newLogsCmd())

	return cmd
}

func setupRoot(cmd *cobra.Command, args []string) error {
	if err := setupLogging(cmd, args); err != nil {
		return err
	}
	return setupConfig(cmd, args)
}

func setupConfig(*cobra.Command, []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	rootConfig = cfg
	return nil
}

func setupLogging(*cobra.Command, []string) error {
	cfg := logging.DefaultConfig()
	cfg.FilePath = ""
	if debugMode {
		cfg = logging.DebugConfig()
	}
	logger, cleanup, err := logging.Setup(cfg)
	if err != nil {
		return err
	}
	logCleanup = cleanup
	slog.SetDefault(logger)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
