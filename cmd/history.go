package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/analytics"
	"github.com/misterclayt0n/tribase/internal/coach"
	"github.com/misterclayt0n/tribase/internal/ingest"
	"github.com/misterclayt0n/tribase/internal/models"
)

var (
	filterDiscipline string
	filterType       string
	filterDay        string
	filterFrame      string
)

// historyCmd shows the activity log grouped by week and day, newest first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display the activity log, optionally filtered by discipline, type, day or time frame",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		if snap.Unavailable() {
			return storeFailure(snap.Err)
		}

		frame, err := analytics.ParseTimeFrame(filterFrame)
		if err != nil {
			return err
		}
		sessions := analytics.FilterTimeFrame(snap.Sessions, frame, svc.Now())

		// Case insensitive filtering by discipline.
		if filterDiscipline != "" {
			d, err := ingest.ParseDiscipline(filterDiscipline)
			if err != nil {
				return fmt.Errorf("Invalid discipline %q", filterDiscipline)
			}
			var filtered []models.WorkoutSession
			for _, s := range sessions {
				if s.Discipline == d {
					filtered = append(filtered, s)
				}
			}
			sessions = filtered
		}

		if filterType != "" {
			var filtered []models.WorkoutSession
			for _, s := range sessions {
				if s.HasType(filterType) {
					filtered = append(filtered, s)
				}
			}
			sessions = filtered
		}

		if filterDay != "" {
			day, err := ingest.ParseDate(filterDay)
			if err != nil {
				return fmt.Errorf("Failed to parse day: %w", err)
			}
			sessions = coach.SessionsOn(sessions, day)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions match.")
			return nil
		}

		// Group sessions by week and then by day.
		grouped := make(map[string]map[string][]models.WorkoutSession)
		for _, s := range sessions {
			week := analytics.WeekStart(s.Date).Format(models.DateLayout)
			if _, ok := grouped[week]; !ok {
				grouped[week] = make(map[string][]models.WorkoutSession)
			}
			grouped[week][s.DateString()] = append(grouped[week][s.DateString()], s)
		}

		var weeks []string
		for w := range grouped {
			weeks = append(weeks, w)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(weeks)))

		th := svc.Thresholds()
		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		for _, week := range weeks {
			fmt.Println(cyan("Week of " + week))
			var days []string
			for d := range grouped[week] {
				days = append(days, d)
			}
			sort.Sort(sort.Reverse(sort.StringSlice(days)))
			for _, d := range days {
				fmt.Printf("  %s\n", d)
				for _, s := range grouped[week][d] {
					fmt.Println("    " + sessionLine(s, th))
				}
			}
			fmt.Println()
		}
		fmt.Printf("%d session(s), %s\n", len(sessions), frame)
		return nil
	},
}

// sessionLine renders one session on a single line with its derived metrics.
func sessionLine(s models.WorkoutSession, th analytics.Thresholds) string {
	parts := []string{
		disciplineColor(s.Discipline)(fmt.Sprintf("%-8s", s.Discipline)),
		fmt.Sprintf("%5.0f min", s.DurationMinutes),
	}
	if s.Distance != nil {
		parts = append(parts, fmt.Sprintf("%.2f %s", *s.Distance, distanceUnit(s.Discipline)))
	}
	if s.Intensity > 0 {
		parts = append(parts, fmt.Sprintf("RPE %d", s.Intensity), fmt.Sprintf("load %.0f", s.Load()))
	}
	if ef, ok := analytics.EfficiencyOf(s); ok {
		parts = append(parts, fmt.Sprintf("EF %.2f", ef))
	}
	if s.DecouplingPct != nil {
		status := analytics.ClassifyDecoupling(*s.DecouplingPct, th)
		parts = append(parts, decouplingColor(status)(fmt.Sprintf("%.1f%% drift", *s.DecouplingPct)))
	}
	if s.Type != "" {
		parts = append(parts, color.New(color.Faint).Sprint(s.Type))
	}
	return strings.Join(parts, " | ")
}

func distanceUnit(d models.Discipline) string {
	if d == models.Swim {
		return "yd"
	}
	return "mi"
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&filterDiscipline, "discipline", "s", "", "Filter by discipline (case insensitive)")
	historyCmd.Flags().StringVarP(&filterType, "type", "t", "", "Filter by workout category (case insensitive)")
	historyCmd.Flags().StringVarP(&filterDay, "day", "d", "", "Filter by day (e.g. 2025-02-07 or 2/7/2025)")
	historyCmd.Flags().StringVarP(&filterFrame, "frame", "f", "all", "Time frame: all, ytd, 90d or 30d")
}
