package ingest

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/misterclayt0n/tribase/internal/models"
)

var ErrInvalidPlan = errors.New("invalid plan")

var weekdayOffsets = map[string]int{
	"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4, "sat": 5, "sun": 6,
}

// ParsePlan decodes a plan file and resolves every workout to a date.
// All problems in the file are reported together.
func ParsePlan(data []byte) (models.Plan, error) {
	var raw models.PlanTOML
	if err := toml.Unmarshal(data, &raw); err != nil {
		return models.Plan{}, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}

	plan := models.Plan{
		Name:        strings.TrimSpace(raw.Name),
		Description: strings.TrimSpace(raw.Description),
	}

	var errs error
	if plan.Name == "" {
		errs = multierr.Append(errs, errors.New("name is required"))
	}

	for wi, week := range raw.Weeks {
		var start time.Time
		if week.Start != "" {
			s, err := ParseDate(week.Start)
			switch {
			case err != nil:
				errs = multierr.Append(errs, fmt.Errorf("week %d: %w", wi+1, err))
			case s.Weekday() != time.Monday:
				errs = multierr.Append(errs, fmt.Errorf("week %d: start %s is not a Monday", wi+1, week.Start))
			default:
				start = s
			}
		}

		for i, w := range week.Workouts {
			pw, err := resolveWorkout(start, w)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("week %d workout %d: %w", wi+1, i+1, err))
				continue
			}
			plan.Workouts = append(plan.Workouts, pw)
		}
	}

	if errs == nil && len(plan.Workouts) == 0 {
		errs = errors.New("plan has no workouts")
	}
	if errs != nil {
		return models.Plan{}, fmt.Errorf("%w: %w", ErrInvalidPlan, errs)
	}

	sort.SliceStable(plan.Workouts, func(i, j int) bool {
		return plan.Workouts[i].Date.Before(plan.Workouts[j].Date)
	})
	return plan, nil
}

func resolveWorkout(weekStart time.Time, w models.PlannedWorkoutTOML) (models.PlannedWorkout, error) {
	var errs error

	var date time.Time
	switch {
	case w.Date != "":
		d, err := ParseDate(w.Date)
		errs = multierr.Append(errs, err)
		date = d
	case w.Day != "":
		key := strings.ToLower(strings.TrimSpace(w.Day))
		if len(key) > 3 {
			key = key[:3]
		}
		offset, ok := weekdayOffsets[key]
		switch {
		case !ok:
			errs = multierr.Append(errs, fmt.Errorf("unknown day %q", w.Day))
		case weekStart.IsZero():
			errs = multierr.Append(errs, fmt.Errorf("day %q needs a week start", w.Day))
		default:
			date = weekStart.AddDate(0, 0, offset)
		}
	default:
		errs = multierr.Append(errs, errors.New("day or date is required"))
	}

	discipline, err := ParseDiscipline(w.Discipline)
	errs = multierr.Append(errs, err)

	if w.EasyMinutes < 0 || w.HardMinutes < 0 {
		errs = multierr.Append(errs, errors.New("minutes must not be negative"))
	}

	if errs != nil {
		return models.PlannedWorkout{}, errs
	}
	return models.PlannedWorkout{
		Date:        date,
		Discipline:  discipline,
		Title:       strings.TrimSpace(w.Title),
		Notes:       strings.TrimSpace(w.Notes),
		EasyMinutes: w.EasyMinutes,
		HardMinutes: w.HardMinutes,
	}, nil
}
