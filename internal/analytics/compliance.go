package analytics

import (
	"sort"
	"time"

	"github.com/misterclayt0n/tribase/internal/models"
)

type PlannedStatus int

const (
	PlannedUpcoming PlannedStatus = iota
	PlannedCompleted
	PlannedMissed
)

func (s PlannedStatus) String() string {
	switch s {
	case PlannedCompleted:
		return "Completed"
	case PlannedMissed:
		return "Missed"
	default:
		return "Upcoming"
	}
}

type PlanItem struct {
	Workout models.PlannedWorkout
	Status  PlannedStatus
	// Session is the logged session that completed the workout, if any.
	Session *models.WorkoutSession
}

type PlanWeek struct {
	WeekStart      time.Time
	Items          []PlanItem
	PlannedMinutes float64
	// ActualMinutes sums the sessions matched to this week's workouts.
	ActualMinutes float64
}

type Compliance struct {
	Weeks     []PlanWeek
	Planned   int
	Completed int
	Missed    int
	// Rate is Completed over the workouts already due; nil when none are due.
	Rate *float64
}

// ComputePlanCompliance matches each planned workout with a logged session
// on the same date and discipline. A session completes at most one workout.
// Unmatched workouts dated before today are missed; today's and later ones
// are upcoming.
func ComputePlanCompliance(planned []models.PlannedWorkout, sessions []models.WorkoutSession, now time.Time) Compliance {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	workouts := make([]models.PlannedWorkout, len(planned))
	copy(workouts, planned)
	sort.SliceStable(workouts, func(i, j int) bool { return workouts[i].Date.Before(workouts[j].Date) })

	type key struct {
		date       string
		discipline models.Discipline
	}
	pool := make(map[key][]int)
	for i, s := range sessions {
		if !s.HasDate() {
			continue
		}
		k := key{s.DateString(), s.Discipline}
		pool[k] = append(pool[k], i)
	}

	var c Compliance
	for _, w := range workouts {
		item := PlanItem{Workout: w}
		k := key{w.DateString(), w.Discipline}
		if idx := pool[k]; len(idx) > 0 {
			s := sessions[idx[0]]
			pool[k] = idx[1:]
			item.Session = &s
			item.Status = PlannedCompleted
		} else if w.Date.Before(today) {
			item.Status = PlannedMissed
		}

		ws := WeekStart(w.Date)
		if n := len(c.Weeks); n == 0 || !c.Weeks[n-1].WeekStart.Equal(ws) {
			c.Weeks = append(c.Weeks, PlanWeek{WeekStart: ws})
		}
		week := &c.Weeks[len(c.Weeks)-1]
		week.Items = append(week.Items, item)
		week.PlannedMinutes += w.Minutes()
		if item.Session != nil {
			week.ActualMinutes += item.Session.DurationMinutes
		}

		c.Planned++
		switch item.Status {
		case PlannedCompleted:
			c.Completed++
		case PlannedMissed:
			c.Missed++
		}
	}

	if due := c.Completed + c.Missed; due > 0 {
		rate := float64(c.Completed) / float64(due)
		c.Rate = &rate
	}
	return c
}
