package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kwyse/specified-default-derive/pkg/logger"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "specified-default-derive",
		Short: "Synthesize default constructors for annotated Go types",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd)
		},
	}

	// Logging configuration flags
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error, disabled)")
	root.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	root.PersistentFlags().Bool("log-source", false, "Include source file and line in logs")
	root.PersistentFlags().Bool("debug", false, "Enable debug mode (sets log level to debug)")

	root.AddCommand(
		GenerateCmd(),
		VersionCmd(),
	)

	return root
}

// setupLogging builds the logger from the persistent flags and attaches it to
// the command context for every subcommand to pick up.
func setupLogging(cmd *cobra.Command) error {
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("failed to get debug flag: %w", err)
	}
	if debug {
		if err := cmd.Flags().Set("log-level", "debug"); err != nil {
			return fmt.Errorf("failed to override log-level flag: %w", err)
		}
	}

	logLevel, logJSON, logSource, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.SetupLogger(logLevel, logJSON, logSource)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.ContextWithLogger(ctx, log))
	return nil
}
