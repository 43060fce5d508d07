package cmd

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/analytics"
)

var trendWeeks int

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show weekly training load and the week-over-week verdict",
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

		trend := analytics.ComputeWeeklyTrend(snap.Sessions, svc.Thresholds())

		printBoxedHeader("WEEKLY LOAD")
		buckets := trend.Buckets
		if trendWeeks > 0 && len(buckets) > trendWeeks {
			buckets = buckets[len(buckets)-trendWeeks:]
		}
		printBuckets(buckets)
		fmt.Println()

		if note, ok := midWeekNote(trend, svc.Now()); ok {
			color.New(color.FgCyan).Println(note)
			fmt.Println()
		}

		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint("Verdict:"), verdictColor(trend.Verdict)(trend.Verdict.String()))
		fmt.Println("  " + verdictAdvice(trend))
		return nil
	},
}

func printBuckets(buckets []analytics.WeeklyBucket) {
	color.New(color.Bold).Printf("  %-10s  %8s  %8s  %8s\n", "Week of", "Sessions", "Hours", "Load")
	fmt.Println("  " + strings.Repeat("─", 40))

	var peak float64
	for _, b := range buckets {
		peak = math.Max(peak, b.TotalLoad)
	}
	for _, b := range buckets {
		fmt.Printf("  %s  %8d  %8.1f  %8.0f  %s\n",
			b.WeekStart.Format("2006-01-02"), b.Sessions, b.TotalDuration/60, b.TotalLoad, loadBar(b.TotalLoad, peak))
	}
}

// loadBar draws a bar scaled to the heaviest week shown.
func loadBar(load, peak float64) string {
	const width = 20
	if peak <= 0 {
		return ""
	}
	n := int(math.Round(load / peak * width))
	return color.New(color.FgBlue).Sprint(strings.Repeat("█", n))
}

// midWeekNote reports the load built so far when the latest week is the
// current one and it is still early in the week.
func midWeekNote(trend analytics.Trend, now time.Time) (string, bool) {
	if len(trend.Buckets) == 0 {
		return "", false
	}
	current := trend.Buckets[len(trend.Buckets)-1]
	if !current.WeekStart.Equal(analytics.WeekStart(now)) {
		return "", false
	}
	if dayOfWeek := (int(now.Weekday()) + 6) % 7; dayOfWeek >= 4 {
		return "", false
	}
	return fmt.Sprintf("Mid-week status: %.0f load points built. Check back Friday for your weekly grade.", current.TotalLoad), true
}

func verdictAdvice(t analytics.Trend) string {
	switch t.Verdict {
	case analytics.VerdictMandatoryDeload:
		return fmt.Sprintf("DELOAD: Week %d of the block. Cut volume by about %.0f%% to absorb the work.", t.BucketCount, -t.VolumeChangePct)
	case analytics.VerdictDangerSpike:
		return fmt.Sprintf("DANGER: Load jumped %.0f%%. Risk of injury is high. Cut volume by about %.0f%%.", t.DeltaPct, -t.VolumeChangePct)
	case analytics.VerdictPushingHard:
		return fmt.Sprintf("PUSHING: Load up %.0f%%. Hold steady next week.", t.DeltaPct)
	case analytics.VerdictRecoveryPhase:
		return "RECOVERY: Body is absorbing the work."
	case analytics.VerdictSteadyProgression:
		return fmt.Sprintf("SWEET SPOT: Steady %.0f%% progression.", t.DeltaPct)
	default:
		return "Log at least two weeks of training to get a verdict."
	}
}

func verdictColor(v analytics.Verdict) func(a ...interface{}) string {
	switch v {
	case analytics.VerdictDangerSpike:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case analytics.VerdictPushingHard, analytics.VerdictMandatoryDeload:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case analytics.VerdictInsufficient:
		return color.New(color.FgWhite).SprintFunc()
	default:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	}
}

func init() {
	trendCmd.Flags().IntVarP(&trendWeeks, "weeks", "w", 8, "Number of recent weeks to show (0 for all)")
	rootCmd.AddCommand(trendCmd)
}
