package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export every stored session to a TOML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := storage.GetDBExportPath()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			outputFile = args[0]
		}

		store, err := storage.Open(cmd.Context(), cfg.Store)
		if err != nil {
			return fmt.Errorf("Failed to open %s store: %w", cfg.Store.Backend, err)
		}
		defer store.Close()

		n, err := storage.ExportTOML(cmd.Context(), store, outputFile)
		if err != nil {
			return fmt.Errorf("error exporting sessions: %w", err)
		}

		fmt.Printf("✅ Exported %d session(s) to %s\n", n, outputFile)
		return nil
	},
}

var buildDBCmd = &cobra.Command{
	Use:   "build-db [dump-file]",
	Short: "Append every session of a TOML dump file to the configured store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(cmd.Context(), cfg.Store)
		if err != nil {
			return fmt.Errorf("Failed to open %s store: %w", cfg.Store.Backend, err)
		}
		defer store.Close()

		sum, err := storage.ImportTOML(cmd.Context(), store, args[0])
		if err != nil {
			return fmt.Errorf("Failed to build database after %d session(s): %w", sum.Imported, err)
		}
		fmt.Printf("✅ Imported %d session(s) from TOML dump", sum.Imported)
		if sum.Rejected > 0 {
			fmt.Printf(", %d rejected", sum.Rejected)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(buildDBCmd)
}
