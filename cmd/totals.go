package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/analytics"
	"github.com/misterclayt0n/tribase/internal/models"
	"github.com/misterclayt0n/tribase/internal/utils"
)

var (
	totalsFrame string
	totalsYear  int
)

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Show season and lifetime totals with the discipline breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		if snap.Unavailable() {
			return storeFailure(snap.Err)
		}
		if len(snap.Sessions) == 0 {
			printNoData()
			return nil
		}

		frame, err := analytics.ParseTimeFrame(totalsFrame)
		if err != nil {
			return err
		}

		year := totalsYear
		if year == 0 {
			year = svc.Now().Year()
		}
		season := analytics.ComputeSeasonTotals(snap.Sessions, year)
		printBoxedHeader(fmt.Sprintf("%d SEASON", year))
		printDistances(season)
		fmt.Println()

		lifetime := analytics.ComputeTotals(snap.Sessions)
		printBoxedHeader("LIFETIME")
		if !lifetime.Since.IsZero() {
			fmt.Printf("  Since %s\n", utils.FormatLong(lifetime.Since))
		}
		printMetric("Total hours", fmt.Sprintf("%.1f", lifetime.Hours))
		printMetric("Sessions", lifetime.Sessions)
		printDistances(lifetime)
		fmt.Println()

		breakdown := analytics.ComputeDisciplineBreakdown(analytics.FilterTimeFrame(snap.Sessions, frame, svc.Now()))
		header := color.New(color.FgGreen, color.Bold).Sprintf("Discipline breakdown (%s):", frame)
		fmt.Println(header)
		if len(breakdown) == 0 {
			fmt.Println("  No sessions in this time frame.")
			return nil
		}
		for _, share := range breakdown {
			bar := strings.Repeat("█", int(share.Percent/5))
			fmt.Printf("  %-9s %6.1f h %5.1f%% %s\n",
				share.Discipline, share.Minutes/60, share.Percent, disciplineColor(share.Discipline)(bar))
		}
		return nil
	},
}

func printDistances(t analytics.Totals) {
	printMetric("Swim", fmt.Sprintf("%.0f yds", t.Distance[models.Swim]))
	printMetric("Bike", fmt.Sprintf("%.1f mi", t.Distance[models.Bike]))
	printMetric("Run", fmt.Sprintf("%.1f mi", t.Distance[models.Run]))
}

func init() {
	totalsCmd.Flags().StringVarP(&totalsFrame, "frame", "f", "all", "Time frame for the breakdown: all, ytd, 90d or 30d")
	totalsCmd.Flags().IntVarP(&totalsYear, "year", "y", 0, "Season year (default current year)")
	rootCmd.AddCommand(totalsCmd)
}
