package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/models"
)

// details is a flag to enable verbose session details.
var details bool

// calendarCmd prints the month grid. Training days are colored by the
// discipline of their first session, with a legend below the grid.
var calendarCmd = &cobra.Command{
	Use:   "calendar [month] [year]",
	Short: "Display a calendar of training days colored by discipline",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Determine month and year (default to current month/year).
		now := time.Now()
		month := now.Month()
		year := now.Year()
		if len(args) >= 1 {
			m, err := strconv.Atoi(args[0])
			if err != nil || m < 1 || m > 12 {
				return fmt.Errorf("invalid month: %s", args[0])
			}
			month = time.Month(m)
		}
		if len(args) == 2 {
			y, err := strconv.Atoi(args[1])
			if err != nil || y < 1 {
				return fmt.Errorf("invalid year: %s", args[1])
			}
			year = y
		}

		svc, snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		if snap.Unavailable() {
			return storeFailure(snap.Err)
		}

		firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

		// Group the month's sessions by day.
		sessionsByDay := make(map[int][]models.WorkoutSession)
		for _, s := range snap.Sessions {
			if !s.HasDate() || s.Date.Before(firstOfMonth) || s.Date.After(lastOfMonth) {
				continue
			}
			sessionsByDay[s.Date.Day()] = append(sessionsByDay[s.Date.Day()], s)
		}

		header := fmt.Sprintf("%s %d", month.String(), year)
		fmt.Println(centerText(header, 20))
		fmt.Println("Mo Tu We Th Fr Sa Su")

		// Monday first, matching the ISO weeks used everywhere else.
		weekday := (int(firstOfMonth.Weekday()) + 6) % 7
		for i := 0; i < weekday; i++ {
			fmt.Print("   ")
		}

		today := svc.Now()
		for day := 1; day <= lastOfMonth.Day(); day++ {
			dayStr := fmt.Sprintf("%2d", day)
			if sessList, ok := sessionsByDay[day]; ok {
				dayStr = disciplineColor(sessList[0].Discipline)(dayStr)
			} else if year == today.Year() && month == today.Month() && day == today.Day() {
				dayStr = color.New(color.Underline).Sprint(dayStr)
			}
			fmt.Printf("%s ", dayStr)
			weekday++
			if weekday%7 == 0 {
				fmt.Println()
			}
		}
		fmt.Print("\n\n")

		fmt.Println("Legend:")
		for _, d := range models.Disciplines {
			fmt.Printf("  %s: %s\n", disciplineColor(d)("██"), d)
		}

		if details {
			fmt.Println("\nSession Details:")
			var days []int
			for d := range sessionsByDay {
				days = append(days, d)
			}
			sort.Ints(days)
			th := svc.Thresholds()
			for _, day := range days {
				dayDate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
				fmt.Printf("\n%s:\n", dayDate.Format("Mon, 02 Jan 2006"))
				for _, sess := range sessionsByDay[day] {
					fmt.Println("  " + sessionLine(sess, th))
				}
			}
		}

		return nil
	},
}

var disciplinePalette = map[models.Discipline]color.Attribute{
	models.Swim:     color.FgCyan,
	models.Bike:     color.FgYellow,
	models.Run:      color.FgGreen,
	models.Strength: color.FgMagenta,
}

func disciplineColor(d models.Discipline) func(a ...interface{}) string {
	if attr, ok := disciplinePalette[d]; ok {
		return color.New(attr, color.Bold).SprintFunc()
	}
	return color.New(color.FgWhite).SprintFunc()
}

// centerText centers the given string in a field of the specified width.
func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().BoolVarP(&details, "details", "d", false, "Print additional session details")
}
