package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/analytics"
	"github.com/misterclayt0n/tribase/internal/coach"
	"github.com/misterclayt0n/tribase/internal/ingest"
	"github.com/misterclayt0n/tribase/internal/models"
	"github.com/misterclayt0n/tribase/internal/utils"
)

var showCmd = &cobra.Command{
	Use:   "show [date | session-id]",
	Short: "Display the sessions logged on a date (default today), or one session by ID prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		if snap.Unavailable() {
			return storeFailure(snap.Err)
		}

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()

		var (
			sessions []models.WorkoutSession
			title    string
		)
		day := utils.Today()
		if len(args) == 1 {
			if parsed, err := ingest.ParseDate(args[0]); err == nil {
				day = parsed
			} else {
				for _, s := range snap.Sessions {
					if s.ID != "" && strings.HasPrefix(s.ID, args[0]) {
						sessions = append(sessions, s)
					}
				}
				if len(sessions) == 0 {
					return fmt.Errorf("No session found with ID %q", args[0])
				}
				title = "Session:"
			}
		}
		if title == "" {
			sessions = coach.SessionsOn(snap.Sessions, day)
			if len(sessions) == 0 {
				fmt.Println(magenta("No sessions found on " + day.Format(models.DateLayout) + "."))
				return nil
			}
			title = "Training sessions on " + utils.FormatLong(day) + ":"
		}

		fmt.Println(boldGreen(title))
		fmt.Println(strings.Repeat("=", 50))
		th := svc.Thresholds()
		for i, s := range sessions {
			if i > 0 {
				fmt.Println(strings.Repeat("-", 50))
			}
			printSessionDetails(s, th, yellow)
		}
		return nil
	},
}

func printSessionDetails(s models.WorkoutSession, th analytics.Thresholds, label func(a ...interface{}) string) {
	fmt.Printf("%s %s\n", label("ID:"), s.ID)
	fmt.Printf("%s %s\n", label("Date:"), s.DateString())
	fmt.Printf("%s %s\n", label("Discipline:"), disciplineColor(s.Discipline)(string(s.Discipline)))
	if s.Type != "" {
		fmt.Printf("%s %s\n", label("Type:"), s.Type)
	}
	fmt.Printf("%s %.0f min\n", label("Duration:"), s.DurationMinutes)
	if s.Distance != nil {
		fmt.Printf("%s %.2f %s\n", label("Distance:"), *s.Distance, distanceUnit(s.Discipline))
	}
	if s.Intensity > 0 {
		fmt.Printf("%s %d/10\n", label("Intensity:"), s.Intensity)
		fmt.Printf("%s %.0f\n", label("Load:"), s.Load())
	}
	if s.AvgHeartRate != nil {
		fmt.Printf("%s %.0f bpm\n", label("Avg HR:"), *s.AvgHeartRate)
	}
	if s.AvgOutput != nil {
		fmt.Printf("%s %.1f\n", label("Avg output:"), *s.AvgOutput)
	}
	if ef, ok := analytics.EfficiencyOf(s); ok {
		fmt.Printf("%s %.4f\n", label("EF:"), ef)
	}
	if s.DecouplingPct != nil {
		status := analytics.ClassifyDecoupling(*s.DecouplingPct, th)
		fmt.Printf("%s %.1f%% %s\n", label("Decoupling:"), *s.DecouplingPct, decouplingColor(status)("("+status.String()+")"))
		fmt.Printf("%s %s\n", label("Action:"), status.Advice())
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
