package cmd

import (
	"fmt"

	"github.com/driftwm/drift/internal/config"
	"github.com/driftwm/drift/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Version is set during build
	Version = "0.1.0-dev"

	configPath string

	rootCmd = &cobra.Command{
		Use:   "drift",
		Short: "Drift - Wayland compositor",
		Long: `Drift is a Wayland compositor. This binary hosts the compositor
itself plus supporting commands for inspecting its configuration.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				config.SetConfigPath(configPath)
			}
			if err := config.Init(); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			applyLogging(config.Get().Logging)
			return nil
		},
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	rootCmd.AddCommand(configCmd)
}

// applyLogging pushes the [logging] config section into the logger.
// The config level overrides the LOG_LEVEL env var when set.
func applyLogging(cfg config.LoggingConfig) {
	logger.SetLevel(cfg.LogLevel)

	if cfg.FileLogging {
		f, err := logger.OpenLogFile()
		if err != nil {
			logger.Warnf("file logging requested but unavailable: %v", err)
			return
		}
		logger.SetOutput(f)
	}
}
