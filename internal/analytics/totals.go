package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/misterclayt0n/tribase/internal/models"
)

type TimeFrame string

const (
	AllTime    TimeFrame = "all"
	YearToDate TimeFrame = "ytd"
	Last90Days TimeFrame = "90d"
	Last30Days TimeFrame = "30d"
)

func (f TimeFrame) String() string {
	switch f {
	case YearToDate:
		return "Year to Date"
	case Last90Days:
		return "Last 90 Days"
	case Last30Days:
		return "Last 30 Days"
	default:
		return "All Time"
	}
}

func ParseTimeFrame(s string) (TimeFrame, error) {
	switch f := TimeFrame(strings.ToLower(strings.TrimSpace(s))); f {
	case "", AllTime:
		return AllTime, nil
	case YearToDate, Last90Days, Last30Days:
		return f, nil
	}
	return "", fmt.Errorf("unknown time frame %q (want all, ytd, 90d or 30d)", s)
}

// FilterTimeFrame keeps dated sessions that fall inside frame relative to now.
func FilterTimeFrame(sessions []models.WorkoutSession, frame TimeFrame, now time.Time) []models.WorkoutSession {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var from time.Time
	switch frame {
	case YearToDate:
		from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case Last90Days:
		from = today.AddDate(0, 0, -90)
	case Last30Days:
		from = today.AddDate(0, 0, -30)
	}

	var out []models.WorkoutSession
	for _, s := range sessions {
		if !s.HasDate() || s.Date.Before(from) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Totals sums distance per discipline. Swim distance is in yards, Bike and
// Run in miles.
type Totals struct {
	Hours     float64
	Sessions  int
	Distance  map[models.Discipline]float64
	Since     time.Time
	TotalLoad float64
}

func ComputeTotals(sessions []models.WorkoutSession) Totals {
	t := Totals{Distance: make(map[models.Discipline]float64)}
	var minutes float64
	for _, s := range sessions {
		if !s.HasDate() {
			continue
		}
		t.Sessions++
		minutes += s.DurationMinutes
		t.TotalLoad += s.Load()
		if s.Distance != nil {
			t.Distance[s.Discipline] += *s.Distance
		}
		if t.Since.IsZero() || s.Date.Before(t.Since) {
			t.Since = s.Date
		}
	}
	t.Hours = minutes / 60
	return t
}

// ComputeSeasonTotals restricts ComputeTotals to one calendar year.
func ComputeSeasonTotals(sessions []models.WorkoutSession, year int) Totals {
	var season []models.WorkoutSession
	for _, s := range sessions {
		if s.HasDate() && s.Date.Year() == year {
			season = append(season, s)
		}
	}
	return ComputeTotals(season)
}

type DisciplineShare struct {
	Discipline models.Discipline
	Minutes    float64
	Percent    float64
}

// ComputeDisciplineBreakdown returns one entry per discipline with any
// minutes logged, in models.Disciplines order.
func ComputeDisciplineBreakdown(sessions []models.WorkoutSession) []DisciplineShare {
	minutes := make(map[models.Discipline]float64)
	var total float64
	for _, s := range sessions {
		if !s.HasDate() {
			continue
		}
		minutes[s.Discipline] += s.DurationMinutes
		total += s.DurationMinutes
	}

	var out []DisciplineShare
	for _, d := range models.Disciplines {
		m, ok := minutes[d]
		if !ok {
			continue
		}
		share := DisciplineShare{Discipline: d, Minutes: m}
		if total > 0 {
			share.Percent = m / total * 100
		}
		out = append(out, share)
	}
	return out
}

type WeekVolume struct {
	WeekStart time.Time
	Hours     map[models.Discipline]float64
	Total     float64
	// RollingAvg is the mean Total of this week and up to three before it.
	RollingAvg float64
}

const rollingWeeks = 4

// ComputeWeeklyVolume returns hours per discipline per ISO week, oldest
// first, with a trailing four-week average of the weekly total.
func ComputeWeeklyVolume(sessions []models.WorkoutSession) []WeekVolume {
	var weeks []WeekVolume
	for _, s := range datedSessions(sessions) {
		ws := WeekStart(s.Date)
		if n := len(weeks); n == 0 || !weeks[n-1].WeekStart.Equal(ws) {
			weeks = append(weeks, WeekVolume{WeekStart: ws, Hours: make(map[models.Discipline]float64)})
		}
		w := &weeks[len(weeks)-1]
		w.Hours[s.Discipline] += s.DurationMinutes / 60
		w.Total += s.DurationMinutes / 60
	}

	for i := range weeks {
		start := max(0, i-rollingWeeks+1)
		var sum float64
		for _, w := range weeks[start : i+1] {
			sum += w.Total
		}
		weeks[i].RollingAvg = sum / float64(i+1-start)
	}
	return weeks
}
