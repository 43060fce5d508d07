package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/analytics"
	"github.com/misterclayt0n/tribase/internal/coach"
	"github.com/misterclayt0n/tribase/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the coach's status: latest decoupling, recovery drift and the rolling report",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}

		printBoxedHeader("COACH STATUS")
		if snap.Unavailable() {
			return storeFailure(snap.Err)
		}
		if len(snap.Sessions) == 0 {
			printNoData()
			return nil
		}

		report := svc.Report(snap)

		printLatest(report.Latest)
		fmt.Println()
		printRecovery(report.Recovery, cfg.Coach.RecoveryType)
		fmt.Println()
		printWindow(report.Window, cfg.Coach.WindowDays)
		fmt.Println()

		printMetric("Training verdict", verdictColor(report.Trend.Verdict)(report.Trend.Verdict.String()))
		printMetric("Week streak", fmt.Sprintf("%d weeks", computeWeekStreak(snap.Sessions, svc.Now())))
		return nil
	},
}

func printLatest(latest *coach.Latest) {
	header := color.New(color.FgGreen, color.Bold).Sprintf("Coach's recommendation:")
	fmt.Println(header)
	if latest == nil {
		fmt.Println("  No session with a decoupling value yet.")
		return
	}

	status := latest.Decoupling
	paint := decouplingColor(status)
	fmt.Printf("  %s %s  (%s %s, %.1f%% decoupling)\n",
		paint("●"), paint(strings.ToUpper(status.String())),
		latest.Session.DateString(), latest.Session.Discipline, *latest.Session.DecouplingPct)
	if latest.EF != nil {
		fmt.Printf("  Efficiency factor: %.4f\n", *latest.EF)
	}
	fmt.Printf("  Action: %s\n", status.Advice())
}

// recoveryHint asks for a session of the configured recovery category.
func recoveryHint(recoveryType string) string {
	if strings.TrimSpace(recoveryType) == "" {
		recoveryType = models.RecoveryType
	}
	return fmt.Sprintf("Log a %q session to track recovery.", recoveryType)
}

func printRecovery(d analytics.RecoveryDrift, recoveryType string) {
	header := color.New(color.FgGreen, color.Bold).Sprintf("Recovery & freshness:")
	fmt.Println(header)
	switch d.Status {
	case analytics.RecoveryUnavailable:
		fmt.Printf("  %s\n", recoveryHint(recoveryType))
		return
	case analytics.RecoveryFatigued:
		color.New(color.FgRed, color.Bold).Println("  🚨 System Fatigued: Efficiency is significantly down. Prioritize sleep.")
	default:
		color.New(color.FgGreen).Println("  ✅ System Ready: Recovery metrics are stable.")
	}
	fmt.Printf("  Recovery EF %.2f (%+.1f%% vs baseline %.2f over %d sessions)\n",
		d.Latest, d.DropRatio*100, d.Baseline, d.Sessions)
}

func printWindow(w analytics.WindowSummary, days int) {
	header := color.New(color.FgGreen, color.Bold).Sprintf("Last %d days (since %s):", days, w.From.Format(models.DateLayout))
	fmt.Println(header)
	if w.SessionCount == 0 {
		fmt.Println("  No sessions in this window.")
		return
	}
	printMetric("Sessions", w.SessionCount)
	printMetric("Aerobically stable", w.StableSessionCount)
	if w.MeanEF != nil {
		printMetric("Mean EF", fmt.Sprintf("%.4f", *w.MeanEF))
	} else {
		printMetric("Mean EF", "n/a")
	}
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + centerText2(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

func centerText2(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value interface{}) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

// computeWeekStreak counts consecutive ISO weeks, ending with the week of
// now, that have at least one session.
func computeWeekStreak(sessions []models.WorkoutSession, now time.Time) int {
	weekSet := make(map[string]bool)
	for _, s := range sessions {
		if !s.HasDate() {
			continue
		}
		year, week := s.Date.ISOWeek()
		weekSet[fmt.Sprintf("%d-%02d", year, week)] = true
	}

	streak := 0
	year, week := now.ISOWeek()
	for weekSet[fmt.Sprintf("%d-%02d", year, week)] {
		streak++
		now = now.AddDate(0, 0, -7)
		year, week = now.ISOWeek()
	}
	return streak
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
