package analytics

import (
	"github.com/misterclayt0n/tribase/internal/models"
)

type RecoveryStatus int

const (
	RecoveryUnavailable RecoveryStatus = iota
	RecoveryReady
	RecoveryFatigued
)

func (s RecoveryStatus) String() string {
	switch s {
	case RecoveryReady:
		return "Ready"
	case RecoveryFatigued:
		return "Fatigued"
	default:
		return "Unavailable"
	}
}

type RecoveryDrift struct {
	Status    RecoveryStatus
	Baseline  float64
	Latest    float64
	DropRatio float64
	Sessions  int
}

func (d RecoveryDrift) Err() error {
	if d.Status == RecoveryUnavailable {
		return ErrInsufficientData
	}
	return nil
}

// RecoverySessions selects sessions of the given category, oldest first.
func RecoverySessions(sessions []models.WorkoutSession, recoveryType string) []models.WorkoutSession {
	var out []models.WorkoutSession
	for _, s := range datedSessions(sessions) {
		if s.HasType(recoveryType) {
			out = append(out, s)
		}
	}
	return out
}

// ComputeRecoveryDrift compares the latest recovery EF against the mean of
// all of them. recovery must be ordered by date; sessions without an EF
// are ignored.
func ComputeRecoveryDrift(recovery []models.WorkoutSession, th Thresholds) RecoveryDrift {
	var efs []float64
	for _, s := range recovery {
		if ef, ok := EfficiencyOf(s); ok {
			efs = append(efs, ef)
		}
	}
	d := RecoveryDrift{Sessions: len(efs)}
	if len(efs) == 0 {
		return d
	}

	var sum float64
	for _, ef := range efs {
		sum += ef
	}
	d.Baseline = sum / float64(len(efs))
	d.Latest = efs[len(efs)-1]
	if d.Baseline > 0 {
		d.DropRatio = d.Latest/d.Baseline - 1
	}

	if d.DropRatio < th.FatigueDrop {
		d.Status = RecoveryFatigued
	} else {
		d.Status = RecoveryReady
	}
	return d
}
