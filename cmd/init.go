package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/config"
	"github.com/misterclayt0n/tribase/internal/storage"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the session database for the configured SQL store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Store.Backend != config.BackendSQLite && cfg.Store.Backend != config.BackendLibSQL {
			return fmt.Errorf("init only applies to the sqlite and libsql stores, not %q", cfg.Store.Backend)
		}

		st, err := storage.OpenSQLWithin(cmd.Context(), cfg.Store.ConnectionString, cfg.Store.Timeout)
		if err != nil {
			return fmt.Errorf("Failed to initialize database: %w", err)
		}
		defer st.Close()

		fmt.Printf("✅ Database initialized successfully (%s)\n", storage.DriverFor(cfg.Store.ConnectionString))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}
