package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/ingest"
	"github.com/misterclayt0n/tribase/internal/models"
	"github.com/misterclayt0n/tribase/internal/utils"
)

var raceCmd = &cobra.Command{
	Use:   "race",
	Short: "Show the countdown to your next race",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := utils.LoadProfile()
		if err != nil {
			return fmt.Errorf("Failed to load profile: %w", err)
		}
		if !profile.HasRace() {
			fmt.Println("No race set. Use 'tribase race set <name> <date>' to add one.")
			return nil
		}
		printCountdown(profile, time.Now())
		return nil
	},
}

var raceSetCmd = &cobra.Command{
	Use:   "set [name] [date]",
	Short: "Set the next race, date as YYYY-MM-DD",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("Race name must not be empty")
		}
		date, err := ingest.ParseDate(args[1])
		if err != nil {
			return fmt.Errorf("Invalid race date %q: %w", args[1], err)
		}

		profile := &models.Profile{RaceName: name, RaceDate: date}
		if err := utils.SaveProfile(profile); err != nil {
			return fmt.Errorf("Failed to save profile: %w", err)
		}
		fmt.Printf("✅ Next race set: %s on %s\n", name, utils.FormatLong(date))
		printCountdown(profile, time.Now())
		return nil
	},
}

var raceClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the next race",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := utils.ClearProfile(); err != nil {
			return fmt.Errorf("Failed to clear profile: %w", err)
		}
		fmt.Println("✅ Race cleared")
		return nil
	},
}

func printCountdown(profile *models.Profile, now time.Time) {
	days := utils.DaysUntil(profile.RaceDate, now)
	bold := color.New(color.Bold).SprintFunc()
	if days < 0 {
		color.New(color.FgGreen).Printf("%s is complete! How did it go?\n", bold(profile.RaceName))
		return
	}
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	color.New(color.FgCyan).Printf("%s until %s (%s)\n",
		bold(fmt.Sprintf("%d %s", days, unit)), bold(profile.RaceName), utils.FormatLong(profile.RaceDate))
}

func init() {
	raceCmd.AddCommand(raceSetCmd)
	raceCmd.AddCommand(raceClearCmd)
	rootCmd.AddCommand(raceCmd)
}
