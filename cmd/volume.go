package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/analytics"
	"github.com/misterclayt0n/tribase/internal/models"
)

var volumeWeeks int

var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Show weekly hours per discipline with a 4-week rolling average",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		if snap.Unavailable() {
			return storeFailure(snap.Err)
		}

		weeks := analytics.ComputeWeeklyVolume(snap.Sessions)
		if len(weeks) == 0 {
			printNoData()
			return nil
		}
		if volumeWeeks > 0 && len(weeks) > volumeWeeks {
			weeks = weeks[len(weeks)-volumeWeeks:]
		}

		spike := 1 + svc.Thresholds().SpikePct/100
		printBoxedHeader("WEEKLY VOLUME (HOURS)")
		headers := []string{fmt.Sprintf("%-10s", "Week of")}
		for _, d := range models.Disciplines {
			headers = append(headers, fmt.Sprintf("%8s", d))
		}
		headers = append(headers, fmt.Sprintf("%7s", "Total"), fmt.Sprintf("%7s", "4wk avg"))
		color.New(color.Bold).Println("  " + strings.Join(headers, " "))

		for _, w := range weeks {
			cells := []string{w.WeekStart.Format(models.DateLayout)}
			for _, d := range models.Disciplines {
				cell := fmt.Sprintf("%8.1f", w.Hours[d])
				if w.Hours[d] > 0 {
					cell = disciplineColor(d)(cell)
				}
				cells = append(cells, cell)
			}
			avg := fmt.Sprintf("%7.1f", w.RollingAvg)
			// Flag weeks well above the trailing average.
			if w.Total > w.RollingAvg*spike {
				avg = color.New(color.FgRed).Sprint(avg)
			}
			cells = append(cells, fmt.Sprintf("%7.1f", w.Total), avg)
			fmt.Println("  " + strings.Join(cells, " "))
		}
		return nil
	},
}

func init() {
	volumeCmd.Flags().IntVarP(&volumeWeeks, "weeks", "w", 12, "Number of recent weeks to show (0 for all)")
	rootCmd.AddCommand(volumeCmd)
}
