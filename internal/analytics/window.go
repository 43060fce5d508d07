package analytics

import (
	"time"

	"github.com/misterclayt0n/tribase/internal/models"
)

type WindowSummary struct {
	From               time.Time
	SessionCount       int
	StableSessionCount int
	// MeanEF is nil when no session in the window carries an EF.
	MeanEF *float64
}

func (w WindowSummary) Err() error {
	if w.SessionCount == 0 {
		return ErrInsufficientData
	}
	return nil
}

// ComputeRollingWindowSummary covers sessions dated on or after the civil
// date windowDays before now.
func ComputeRollingWindowSummary(sessions []models.WorkoutSession, now time.Time, windowDays int, th Thresholds) WindowSummary {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -windowDays)
	w := WindowSummary{From: from}

	var (
		efSum   float64
		efCount int
	)
	for _, s := range sessions {
		if !s.HasDate() || s.Date.Before(from) {
			continue
		}
		w.SessionCount++
		if s.DecouplingPct != nil && *s.DecouplingPct <= th.StableDecoupling {
			w.StableSessionCount++
		}
		if ef, ok := EfficiencyOf(s); ok {
			efSum += ef
			efCount++
		}
	}
	if efCount > 0 {
		mean := efSum / float64(efCount)
		w.MeanEF = &mean
	}
	return w
}
