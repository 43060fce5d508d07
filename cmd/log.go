package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/tribase/internal/analytics"
	"github.com/misterclayt0n/tribase/internal/ingest"
	"github.com/misterclayt0n/tribase/internal/models"
	"github.com/misterclayt0n/tribase/internal/utils"
)

var (
	logDate       string
	logDiscipline string
	logType       string
	logDuration   float64
	logDistance   float64
	logIntensity  int
	logHR         float64
	logPower      float64
	logPace       string
	logSpeed      float64
	logDecoupling float64
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a workout session",
	Example: `  tribase log -s bike -m 90 -i 6 --power 185 --hr 138 --decoupling 4.2
  tribase log -s run -m 45 -i 5 --pace 8:30 --hr 145 --date 2024-03-02`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := buildSession()
		if err != nil {
			return err
		}

		if session.Type != "" && !knownType(session) {
			color.New(color.Faint).Printf("Note: %q is not one of the usual %s categories\n", session.Type, session.Discipline)
		}

		svc, store, err := openCoach(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		logged, err := svc.Log(cmd.Context(), session)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Logged %s session on %s (load %.0f)\n",
			logged.Discipline, logged.DateString(), logged.Load())
		if ef, ok := analytics.EfficiencyOf(logged); ok {
			fmt.Printf("   Efficiency factor: %.4f\n", ef)
		}
		if logged.DecouplingPct != nil {
			status := analytics.ClassifyDecoupling(*logged.DecouplingPct, svc.Thresholds())
			fmt.Printf("   Decoupling %.1f%%: %s\n", *logged.DecouplingPct, decouplingColor(status)(status.String()))
		}
		return nil
	},
}

func buildSession() (models.WorkoutSession, error) {
	discipline, err := ingest.ParseDiscipline(logDiscipline)
	if err != nil {
		return models.WorkoutSession{}, fmt.Errorf("Invalid discipline %q. Must be one of Swim, Bike, Run, Strength", logDiscipline)
	}

	date := utils.Today()
	if logDate != "" {
		date, err = ingest.ParseDate(logDate)
		if err != nil {
			return models.WorkoutSession{}, fmt.Errorf("Invalid date %q: %w", logDate, err)
		}
	}

	output, err := sessionOutput()
	if err != nil {
		return models.WorkoutSession{}, err
	}

	return models.WorkoutSession{
		Date:            date,
		Discipline:      discipline,
		Type:            strings.TrimSpace(logType),
		DurationMinutes: logDuration,
		Distance:        utils.FloatPtr(logDistance),
		Intensity:       logIntensity,
		AvgHeartRate:    utils.FloatPtr(logHR),
		AvgOutput:       output,
		DecouplingPct:   utils.FloatPtr(logDecoupling),
	}, nil
}

func knownType(s models.WorkoutSession) bool {
	types, ok := models.WorkoutTypes[s.Discipline]
	if !ok {
		return true
	}
	for _, t := range types {
		if s.HasType(t) {
			return true
		}
	}
	return false
}

// sessionOutput picks the one output flag that was given. Pace is turned
// into the speed figure used for run efficiency.
func sessionOutput() (*float64, error) {
	var given []string
	if logPower >= 0 {
		given = append(given, "--power")
	}
	if logPace != "" {
		given = append(given, "--pace")
	}
	if logSpeed >= 0 {
		given = append(given, "--speed")
	}
	if len(given) > 1 {
		return nil, fmt.Errorf("Only one of --power, --pace and --speed may be set, got %s", strings.Join(given, ", "))
	}

	switch {
	case logPower >= 0:
		return utils.FloatPtr(logPower), nil
	case logSpeed >= 0:
		return utils.FloatPtr(logSpeed), nil
	case logPace != "":
		minutes, seconds, err := parsePace(logPace)
		if err != nil {
			return nil, err
		}
		out := utils.Round(utils.RunPaceToOutput(minutes, seconds), 2)
		if out == 0 {
			return nil, nil
		}
		return &out, nil
	}
	return nil, nil
}

// parsePace reads "M:SS" or a bare number of minutes.
func parsePace(value string) (int, int, error) {
	minPart, secPart, hasSec := strings.Cut(strings.TrimSpace(value), ":")
	minutes, err := strconv.Atoi(minPart)
	if err != nil || minutes < 0 {
		return 0, 0, fmt.Errorf("Invalid pace %q. Use M:SS", value)
	}
	if !hasSec {
		return minutes, 0, nil
	}
	seconds, err := strconv.Atoi(secPart)
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, 0, fmt.Errorf("Invalid pace %q. Use M:SS", value)
	}
	return minutes, seconds, nil
}

func decouplingColor(status analytics.DecouplingStatus) func(a ...interface{}) string {
	switch status {
	case analytics.Stable:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	case analytics.Caution:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func init() {
	logCmd.Flags().StringVarP(&logDate, "date", "d", "", "Session date, YYYY-MM-DD (default today)")
	logCmd.Flags().StringVarP(&logDiscipline, "discipline", "s", "", "Swim, Bike, Run or Strength")
	logCmd.Flags().StringVarP(&logType, "type", "t", "", "Workout category, e.g. \"Pure Aerobic (Recovery)\"")
	logCmd.Flags().Float64VarP(&logDuration, "duration", "m", 0, "Duration in minutes")
	logCmd.Flags().Float64Var(&logDistance, "distance", -1, "Distance (yards for swim, miles otherwise)")
	logCmd.Flags().IntVarP(&logIntensity, "intensity", "i", 0, "Perceived intensity, 1-10")
	logCmd.Flags().Float64Var(&logHR, "hr", -1, "Average heart rate")
	logCmd.Flags().Float64Var(&logPower, "power", -1, "Average power in watts")
	logCmd.Flags().StringVar(&logPace, "pace", "", "Average pace per mile, M:SS")
	logCmd.Flags().Float64Var(&logSpeed, "speed", -1, "Average speed, used as output")
	logCmd.Flags().Float64Var(&logDecoupling, "decoupling", -1, "Aerobic decoupling in percent")
	logCmd.MarkFlagRequired("discipline")
	logCmd.MarkFlagRequired("duration")
	rootCmd.AddCommand(logCmd)
}
