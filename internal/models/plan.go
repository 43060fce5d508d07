package models

import "time"

// Plan is a named set of planned workouts, usually one training block.
type Plan struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	Workouts    []PlannedWorkout
}

type PlannedWorkout struct {
	ID          string
	Date        time.Time
	Discipline  Discipline
	Title       string
	Notes       string
	EasyMinutes float64
	HardMinutes float64
}

func (w PlannedWorkout) Minutes() float64 {
	return w.EasyMinutes + w.HardMinutes
}

func (w PlannedWorkout) DateString() string {
	return w.Date.Format(DateLayout)
}

//
// For TOML parsing only
//

type PlanTOML struct {
	Name        string         `toml:"name"`
	Description string         `toml:"description"`
	Weeks       []PlanWeekTOML `toml:"week"`
}

// PlanWeekTOML groups workouts under the Monday that starts their week.
type PlanWeekTOML struct {
	Start    string               `toml:"start"`
	Workouts []PlannedWorkoutTOML `toml:"workout"`
}

// PlannedWorkoutTOML is placed either by Day ("mon".."sun") within its week
// or by an explicit Date.
type PlannedWorkoutTOML struct {
	Day         string  `toml:"day,omitempty"`
	Date        string  `toml:"date,omitempty"`
	Discipline  string  `toml:"discipline"`
	Title       string  `toml:"title"`
	Notes       string  `toml:"notes,omitempty"`
	EasyMinutes float64 `toml:"easy_minutes"`
	HardMinutes float64 `toml:"hard_minutes"`
}
