package cmd

import (
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/config"
	"github.com/misterclayt0n/tribase/internal/logging"
)

var (
	configPath string
	logLevel   string
	storeFlag  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "tribase",
	Short:        "Triathlon training log and coaching analytics",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		if storeFlag != "" {
			loaded.Store.Backend = storeFlag
			if err := loaded.Validate(); err != nil {
				return err
			}
		}
		cfg = loaded

		logging.Setup(logging.LoggerSetupParams{
			LogFileName:   cfg.Log.File,
			LogToStderr:   cfg.Log.Stderr,
			LogLevel:      cfg.Log.Level,
			LogFormatJSON: cfg.Log.JSON,
		})
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default ~/.config/tribase/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Override the store backend (sqlite, libsql, sheets, memory)")
}
