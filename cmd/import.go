package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/ingest"
)

var (
	importDryRun    bool
	importDateCol   string
	importSportCol  string
	importDurCol    string
	importDistCol   string
	importDurUnit   string
	importDistUnit  string
	importIntensity int
)

var importCmd = &cobra.Command{
	Use:   "import [csv-or-fit-file]",
	Short: "Import sessions from another tracker's CSV export or a device FIT file",
	Long: `Import sessions from a CSV export (Strava, Garmin and similar).
Columns are guessed from the header unless given explicitly. Rows without a
usable date or a recognised activity type are skipped.

A .fit activity file becomes one session. Heart rate, output and decoupling
are computed from the recorded stream.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("Failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		if strings.EqualFold(filepath.Ext(args[0]), ".fit") {
			return importFIT(cmd, f)
		}

		res, err := ingest.ImportCSV(f, ingest.ImportOptions{
			DateColumn:     importDateCol,
			SportColumn:    importSportCol,
			DurationColumn: importDurCol,
			DistanceColumn: importDistCol,
			DurationUnit:   ingest.DurationUnit(importDurUnit),
			DistanceUnit:   ingest.DistanceUnit(importDistUnit),
			Intensity:      importIntensity,
		})
		if err != nil {
			return fmt.Errorf("Failed to parse %s: %w", args[0], err)
		}

		yellow := color.New(color.FgYellow).SprintFunc()
		o := res.Options
		fmt.Printf("%s date=%q sport=%q duration=%q (%s) distance=%q (%s)\n",
			yellow("Columns:"), o.DateColumn, o.SportColumn, o.DurationColumn, o.DurationUnit, o.DistanceColumn, o.DistanceUnit)
		fmt.Printf("%s %d session(s) parsed, %d row(s) skipped\n", yellow("Rows:"), len(res.Sessions), res.Skipped)

		if importDryRun {
			th := cfg.Coach.Thresholds
			for i, s := range res.Sessions {
				if i == 10 {
					fmt.Printf("  ... and %d more\n", len(res.Sessions)-i)
					break
				}
				fmt.Printf("  %s %s\n", s.DateString(), sessionLine(s, th))
			}
			fmt.Println("Dry run, nothing was written.")
			return nil
		}
		if len(res.Sessions) == 0 {
			return nil
		}

		svc, store, err := openCoach(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		batch, err := svc.AppendAll(cmd.Context(), res.Sessions)
		if err != nil {
			return fmt.Errorf("Import stopped after %d session(s): %w", batch.Appended, err)
		}
		fmt.Printf("✅ Imported %d session(s)", batch.Appended)
		if batch.Rejected > 0 {
			fmt.Printf(", %d rejected", batch.Rejected)
		}
		fmt.Println()
		return nil
	},
}

func importFIT(cmd *cobra.Command, f *os.File) error {
	intensity := importIntensity
	if intensity == 0 {
		intensity = 5
	}
	session, err := ingest.ImportFIT(f, intensity)
	if err != nil {
		return fmt.Errorf("Failed to parse %s: %w", f.Name(), err)
	}

	th := cfg.Coach.Thresholds
	fmt.Printf("%s %s\n", color.New(color.FgYellow).Sprint("Activity:"), session.DateString())
	fmt.Printf("  %s\n", sessionLine(session, th))
	if importDryRun {
		fmt.Println("Dry run, nothing was written.")
		return nil
	}

	svc, store, err := openCoach(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	logged, err := svc.Log(cmd.Context(), session)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Imported %s session on %s (load %.0f)\n", logged.Discipline, logged.DateString(), logged.Load())
	return nil
}

func init() {
	importCmd.Flags().BoolVarP(&importDryRun, "dry-run", "n", false, "Preview the parsed sessions without writing them")
	importCmd.Flags().StringVar(&importDateCol, "date-col", "", "Date column name")
	importCmd.Flags().StringVar(&importSportCol, "sport-col", "", "Activity type column name")
	importCmd.Flags().StringVar(&importDurCol, "duration-col", "", "Duration column name")
	importCmd.Flags().StringVar(&importDistCol, "distance-col", "", "Distance column name")
	importCmd.Flags().StringVar(&importDurUnit, "duration-unit", "", "Duration unit: seconds or minutes")
	importCmd.Flags().StringVar(&importDistUnit, "distance-unit", "", "Distance unit: meters, kilometers, miles or yards")
	importCmd.Flags().IntVarP(&importIntensity, "intensity", "i", 0, "Intensity assigned to imported sessions (default 5)")
	rootCmd.AddCommand(importCmd)
}
