package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/analytics"
	"github.com/misterclayt0n/tribase/internal/coach"
	"github.com/misterclayt0n/tribase/internal/config"
	"github.com/misterclayt0n/tribase/internal/ingest"
	"github.com/misterclayt0n/tribase/internal/models"
	"github.com/misterclayt0n/tribase/internal/storage"
)

var planWeek string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage training plans and check them against logged sessions",
}

var planLoadCmd = &cobra.Command{
	Use:   "load [file]",
	Short: "Create a plan from a TOML file, or replace the plan with the same name",
	Long: `Create a plan from a TOML file. Loading a plan whose name already exists
replaces its workouts. Example file:

  name = "Olympic build"
  description = "Base block before the May race"

  [[week]]
  start = "2024-03-04"

    [[week.workout]]
    day = "tue"
    discipline = "Run"
    title = "Threshold Intervals"
    easy_minutes = 30
    hard_minutes = 20

    [[week.workout]]
    date = "2024-03-09"
    discipline = "Bike"
    title = "Steady State (Post-Intervals)"
    easy_minutes = 90`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		plan, err := ingest.ParsePlan(file)
		if err != nil {
			return err
		}

		st, err := openPlanStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		created, err := st.SavePlan(cmd.Context(), plan)
		if err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}
		verb := "updated"
		if created {
			verb = "created"
		}
		fmt.Printf("✅ Plan '%s' %s with %d workout(s)\n", plan.Name, verb, len(plan.Workouts))
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openPlanStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		plans, err := st.ListPlans(cmd.Context())
		if err != nil {
			return err
		}
		if len(plans) == 0 {
			fmt.Println("No plans yet. Use 'tribase plan load <file>' to add one.")
			return nil
		}
		for _, p := range plans {
			fmt.Printf("%s - %s\n", color.New(color.Bold).Sprint(p.Name), p.Description)
		}
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Display a plan with each workout marked completed, missed or upcoming",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openPlanStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		plan, err := st.GetPlanByName(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		svc := coach.NewService(storage.WithTimeout(st, cfg.Store.Timeout), cfg.Coach)
		snap := svc.Snapshot(cmd.Context())
		if snap.Unavailable() {
			return storeFailure(snap.Err)
		}
		compliance := analytics.ComputePlanCompliance(plan.Workouts, snap.Sessions, svc.Now())

		var weekFilter time.Time
		if planWeek != "" {
			d, err := ingest.ParseDate(planWeek)
			if err != nil {
				return fmt.Errorf("Invalid week %q: %w", planWeek, err)
			}
			weekFilter = analytics.WeekStart(d)
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("\n%s\n", green(strings.ToUpper(plan.Name)))
		if plan.Description != "" {
			fmt.Printf("%s: %s\n", cyan("Description"), plan.Description)
		}
		fmt.Printf("%s: %s\n", cyan("Created At"), plan.CreatedAt.Local().Format(time.RFC1123))
		fmt.Println(strings.Repeat("=", 60))

		for _, week := range compliance.Weeks {
			if !weekFilter.IsZero() && !week.WeekStart.Equal(weekFilter) {
				continue
			}
			fmt.Printf("\n%s %s  (planned %.0f min, done %.0f min)\n",
				yellow("Week of"), week.WeekStart.Format(models.DateLayout), week.PlannedMinutes, week.ActualMinutes)
			fmt.Println(strings.Repeat("-", 60))
			for _, item := range week.Items {
				w := item.Workout
				fmt.Printf("  %s %s %-9s %-32s %3.0f+%-3.0f min  %s\n",
					plannedMark(item.Status), w.Date.Format("Mon 02"), disciplineColor(w.Discipline)(string(w.Discipline)),
					truncate(w.Title, 32), w.EasyMinutes, w.HardMinutes, plannedColor(item.Status)(item.Status.String()))
				if w.Notes != "" {
					fmt.Printf("      %s\n", color.New(color.Faint).Sprint(w.Notes))
				}
			}
		}

		fmt.Println()
		printMetric("Completed", fmt.Sprintf("%d of %d", compliance.Completed, compliance.Planned))
		printMetric("Missed", compliance.Missed)
		if compliance.Rate != nil {
			printMetric("Compliance", fmt.Sprintf("%.0f%%", *compliance.Rate*100))
		}
		return nil
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a plan and its workouts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openPlanStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeletePlanByName(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("✅ Plan '%s' deleted\n", args[0])
		return nil
	},
}

// openPlanStore opens the SQL store directly; plans live next to the
// sessions table and have no spreadsheet form.
func openPlanStore(ctx context.Context) (*storage.SQLStore, error) {
	if cfg.Store.Backend != config.BackendSQLite && cfg.Store.Backend != config.BackendLibSQL {
		return nil, fmt.Errorf("plans need the sqlite or libsql store, not %q", cfg.Store.Backend)
	}
	st, err := storage.OpenSQLWithin(ctx, cfg.Store.ConnectionString, cfg.Store.Timeout)
	if err != nil {
		return nil, fmt.Errorf("Failed to open %s store: %w", cfg.Store.Backend, err)
	}
	return st, nil
}

func plannedMark(s analytics.PlannedStatus) string {
	switch s {
	case analytics.PlannedCompleted:
		return color.New(color.FgGreen).Sprint("✔")
	case analytics.PlannedMissed:
		return color.New(color.FgRed).Sprint("✖")
	default:
		return "·"
	}
}

func plannedColor(s analytics.PlannedStatus) func(a ...interface{}) string {
	switch s {
	case analytics.PlannedCompleted:
		return color.New(color.FgGreen).SprintFunc()
	case analytics.PlannedMissed:
		return color.New(color.FgRed).SprintFunc()
	default:
		return color.New(color.FgWhite).SprintFunc()
	}
}

func init() {
	planShowCmd.Flags().StringVarP(&planWeek, "week", "w", "", "Only show the week containing this date")
	planCmd.AddCommand(planLoadCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planDeleteCmd)
	rootCmd.AddCommand(planCmd)
}
