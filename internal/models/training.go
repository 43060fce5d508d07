package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

type Discipline string

const (
	Swim     Discipline = "Swim"
	Bike     Discipline = "Bike"
	Run      Discipline = "Run"
	Strength Discipline = "Strength"
)

// Disciplines lists every accepted discipline in display order.
var Disciplines = []Discipline{Swim, Bike, Run, Strength}

// RecoveryType is the workout category used as the recovery drift baseline.
const RecoveryType = "Pure Aerobic (Recovery)"

// DateLayout is the on-disk and on-screen representation of a session date.
const DateLayout = "2006-01-02"

var ErrInvalidSession = errors.New("invalid session")

func (d Discipline) Valid() bool {
	for _, known := range Disciplines {
		if d == known {
			return true
		}
	}
	return false
}

// WorkoutSession is one logged activity. A zero Date means the date was
// missing or unparseable. Intensity 0 means it was not recorded.
type WorkoutSession struct {
	ID              string     `json:"id"`
	Date            time.Time  `json:"date"`
	Discipline      Discipline `json:"discipline"`
	Type            string     `json:"type,omitempty"`
	DurationMinutes float64    `json:"duration_minutes"`
	Distance        *float64   `json:"distance,omitempty"`
	Intensity       int        `json:"intensity"`
	AvgHeartRate    *float64   `json:"avg_heart_rate,omitempty"`
	AvgOutput       *float64   `json:"avg_output,omitempty"`
	DecouplingPct   *float64   `json:"decoupling_pct,omitempty"`
	RecordedEF      *float64   `json:"ef,omitempty"`
}

// Load is duration times intensity. It is always derived, never stored.
func (s WorkoutSession) Load() float64 {
	return s.DurationMinutes * float64(s.Intensity)
}

func (s WorkoutSession) HasDate() bool {
	return !s.Date.IsZero()
}

func (s WorkoutSession) DateString() string {
	if s.Date.IsZero() {
		return ""
	}
	return s.Date.Format(DateLayout)
}

// HasType matches the workout category, ignoring case and surrounding space.
func (s WorkoutSession) HasType(category string) bool {
	return strings.EqualFold(strings.TrimSpace(s.Type), strings.TrimSpace(category))
}

// Validate checks a session against the entry rules before it is written.
func (s WorkoutSession) Validate() error {
	if err := s.validateFields(); err != nil {
		return err
	}
	if s.DecouplingPct != nil && (*s.DecouplingPct < 0 || *s.DecouplingPct > 100) {
		return fmt.Errorf("%w: decoupling must be between 0 and 100", ErrInvalidSession)
	}
	return nil
}

// ValidateStored checks a session that was already accepted by a store,
// such as one restored from a dump. Decoupling may be any finite value,
// matching what reads accept.
func (s WorkoutSession) ValidateStored() error {
	if err := s.validateFields(); err != nil {
		return err
	}
	if s.DecouplingPct != nil && (math.IsNaN(*s.DecouplingPct) || math.IsInf(*s.DecouplingPct, 0)) {
		return fmt.Errorf("%w: decoupling must be a finite number", ErrInvalidSession)
	}
	return nil
}

func (s WorkoutSession) validateFields() error {
	if s.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidSession)
	}
	if !s.Discipline.Valid() {
		return fmt.Errorf("%w: unknown discipline %q", ErrInvalidSession, s.Discipline)
	}
	if s.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must be non-negative", ErrInvalidSession)
	}
	if s.Intensity != 0 && (s.Intensity < 1 || s.Intensity > 10) {
		return fmt.Errorf("%w: intensity must be between 1 and 10", ErrInvalidSession)
	}
	if s.Distance != nil && *s.Distance < 0 {
		return fmt.Errorf("%w: distance must be non-negative", ErrInvalidSession)
	}
	if s.AvgHeartRate != nil && *s.AvgHeartRate < 0 {
		return fmt.Errorf("%w: heart rate must be non-negative", ErrInvalidSession)
	}
	if s.AvgOutput != nil && *s.AvgOutput < 0 {
		return fmt.Errorf("%w: output must be non-negative", ErrInvalidSession)
	}
	return nil
}

// Profile is persisted between runs in the local state file.
type Profile struct {
	RaceName string    `toml:"race_name"`
	RaceDate time.Time `toml:"race_date"`
}

func (p *Profile) HasRace() bool {
	return p != nil && p.RaceName != "" && !p.RaceDate.IsZero()
}

// WorkoutTypes lists the suggested categories per endurance discipline.
var WorkoutTypes = map[Discipline][]string{
	Run:  {"Aerobic Base Build", "Threshold Intervals", "Hill Repeats", "Easy Recovery Run", "Other"},
	Bike: {"Steady State (Post-Intervals)", "Progressive Build (Ride 6)", RecoveryType, "Other"},
	Swim: {"Endurance Sets", "Technique/Drills", "Sprints", "Other"},
}
