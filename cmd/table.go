package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/analytics"
	"github.com/misterclayt0n/tribase/internal/models"
)

var tableLimit int

// tableCmd lists recent sessions that carry a decoupling value with their
// adaptation status. The table uses its own, narrower Caution bound.
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Show recent adaptation sessions with EF, decoupling and status",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		if snap.Unavailable() {
			return storeFailure(snap.Err)
		}

		var rows []models.WorkoutSession
		for _, s := range snap.Sessions {
			if s.HasDate() && s.DecouplingPct != nil {
				rows = append(rows, s)
			}
		}
		if len(rows) == 0 {
			fmt.Println("No sessions logged yet.")
			return nil
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
		if tableLimit > 0 && len(rows) > tableLimit {
			rows = rows[:tableLimit]
		}

		th := svc.Thresholds().ForTable()
		color.New(color.Bold).Printf("%-12s %-9s %-30s %8s %11s  %s\n",
			"Date", "Sport", "Type", "EF", "Decoupling", "Status")
		fmt.Println(strings.Repeat("─", 96))
		for _, s := range rows {
			ef := "n/a"
			if v, ok := analytics.EfficiencyOf(s); ok {
				ef = fmt.Sprintf("%.4f", v)
			}
			status := analytics.ClassifyDecoupling(*s.DecouplingPct, th)
			fmt.Printf("%-12s %-9s %-30s %8s %10.1f%%  %s\n",
				s.Date.Format("Jan 2, 2006"), s.Discipline, truncate(s.Type, 30), ef, *s.DecouplingPct,
				decouplingColor(status)(tableLabel(status)))
		}
		return nil
	},
}

func tableLabel(status analytics.DecouplingStatus) string {
	switch status {
	case analytics.Stable:
		return "Aerobically Stable"
	case analytics.Caution:
		return "Developing"
	default:
		return "High Fatigue"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	tableCmd.Flags().IntVarP(&tableLimit, "limit", "n", 20, "Number of rows to show (0 for all)")
	rootCmd.AddCommand(tableCmd)
}
