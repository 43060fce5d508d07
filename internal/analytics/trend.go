package analytics

import (
	"sort"
	"time"

	"github.com/misterclayt0n/tribase/internal/models"
)

type Verdict int

const (
	VerdictInsufficient Verdict = iota
	VerdictMandatoryDeload
	VerdictDangerSpike
	VerdictPushingHard
	VerdictRecoveryPhase
	VerdictSteadyProgression
)

func (v Verdict) String() string {
	switch v {
	case VerdictMandatoryDeload:
		return "Mandatory Deload"
	case VerdictDangerSpike:
		return "Danger Spike"
	case VerdictPushingHard:
		return "Pushing Hard"
	case VerdictRecoveryPhase:
		return "Recovery Phase"
	case VerdictSteadyProgression:
		return "Steady Progression"
	default:
		return "Insufficient Data"
	}
}

type WeeklyBucket struct {
	WeekStart     time.Time
	TotalDuration float64
	TotalLoad     float64
	Sessions      int
}

type Trend struct {
	Verdict      Verdict
	DeltaPct     float64
	CurrentLoad  float64
	PreviousLoad float64
	BucketCount  int
	Buckets      []WeeklyBucket
	// VolumeChangePct is the suggested change to next week's volume.
	VolumeChangePct float64
}

func (t Trend) Err() error {
	if t.Verdict == VerdictInsufficient {
		return ErrInsufficientData
	}
	return nil
}

// WeekStart returns the Monday that begins the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// datedSessions drops undated sessions and returns the rest sorted by date.
// The input slice is not modified.
func datedSessions(sessions []models.WorkoutSession) []models.WorkoutSession {
	out := make([]models.WorkoutSession, 0, len(sessions))
	for _, s := range sessions {
		if s.HasDate() {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// WeeklyBuckets groups dated sessions by ISO week, oldest first. Weeks
// without sessions produce no bucket.
func WeeklyBuckets(sessions []models.WorkoutSession) []WeeklyBucket {
	var buckets []WeeklyBucket
	for _, s := range datedSessions(sessions) {
		ws := WeekStart(s.Date)
		if n := len(buckets); n == 0 || !buckets[n-1].WeekStart.Equal(ws) {
			buckets = append(buckets, WeeklyBucket{WeekStart: ws})
		}
		b := &buckets[len(buckets)-1]
		b.TotalDuration += s.DurationMinutes
		b.TotalLoad += s.Load()
		b.Sessions++
	}
	return buckets
}

// ComputeWeeklyTrend compares the last two weekly buckets. Rules are
// evaluated in a fixed order and the first match wins: periodic deload,
// spike, pushing hard, recovery phase, steady.
func ComputeWeeklyTrend(sessions []models.WorkoutSession, th Thresholds) Trend {
	buckets := WeeklyBuckets(sessions)
	t := Trend{Buckets: buckets, BucketCount: len(buckets)}
	if len(buckets) < 2 {
		t.Verdict = VerdictInsufficient
		return t
	}

	t.CurrentLoad = buckets[len(buckets)-1].TotalLoad
	t.PreviousLoad = buckets[len(buckets)-2].TotalLoad
	if t.PreviousLoad > 0 {
		t.DeltaPct = (t.CurrentLoad - t.PreviousLoad) / t.PreviousLoad * 100
	}

	switch {
	case th.DeloadEvery > 0 && t.BucketCount%th.DeloadEvery == 0:
		t.Verdict = VerdictMandatoryDeload
		t.VolumeChangePct = DeloadVolumeChange
	case t.DeltaPct > th.SpikePct:
		t.Verdict = VerdictDangerSpike
		t.VolumeChangePct = SpikeVolumeChange
	case t.DeltaPct > th.PushingPct:
		t.Verdict = VerdictPushingHard
	case t.DeltaPct < th.RecoveryPct:
		t.Verdict = VerdictRecoveryPhase
	default:
		t.Verdict = VerdictSteadyProgression
	}
	return t
}
