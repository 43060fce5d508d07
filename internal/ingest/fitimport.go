package ingest

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/tormoder/fit"

	"github.com/misterclayt0n/tribase/internal/models"
	"github.com/misterclayt0n/tribase/internal/utils"
)

var ErrInvalidActivity = errors.New("invalid activity file")

// MinStreamSamples is the shortest stream decoupling is computed from.
const MinStreamSamples = 120

// Sample is one point of an activity stream. Zero or negative values are
// missing readings.
type Sample struct {
	Elapsed   time.Duration
	HeartRate float64
	Output    float64
}

// StreamDecoupling splits the stream at its midpoint and compares the
// efficiency of each half: (first / second - 1) * 100. Positive means the
// second half cost more heart rate for the same output.
func StreamDecoupling(samples []Sample) (float64, bool) {
	if len(samples) < MinStreamSamples {
		return 0, false
	}
	mid := len(samples) / 2
	first, ok := halfEfficiency(samples[:mid])
	if !ok {
		return 0, false
	}
	second, ok := halfEfficiency(samples[mid:])
	if !ok {
		return 0, false
	}
	return round2((first/second - 1) * 100), true
}

func halfEfficiency(samples []Sample) (float64, bool) {
	var output, hr float64
	var n int
	for _, s := range samples {
		if s.HeartRate <= 0 || s.Output <= 0 {
			continue
		}
		output += s.Output
		hr += s.HeartRate
		n++
	}
	if n == 0 || hr == 0 {
		return 0, false
	}
	return output / hr, true
}

// streamAverages returns the mean heart rate and output over the samples
// that carry each reading.
func streamAverages(samples []Sample) (hr, output *float64) {
	var hrSum, outSum float64
	var hrN, outN int
	for _, s := range samples {
		if s.HeartRate > 0 {
			hrSum += s.HeartRate
			hrN++
		}
		if s.Output > 0 {
			outSum += s.Output
			outN++
		}
	}
	if hrN > 0 {
		hr = utils.FloatPtr(round2(hrSum / float64(hrN)))
	}
	if outN > 0 {
		output = utils.FloatPtr(round2(outSum / float64(outN)))
	}
	return hr, output
}

// SessionFromStream fills heart rate, output and decoupling from a stream.
// Values already on the session are kept when the stream lacks them. A
// negative drift is stored as 0, matching the entry range.
func SessionFromStream(s models.WorkoutSession, samples []Sample) models.WorkoutSession {
	hr, output := streamAverages(samples)
	if hr != nil {
		s.AvgHeartRate = hr
	}
	if output != nil {
		s.AvgOutput = output
	}
	if d, ok := StreamDecoupling(samples); ok && d <= 100 {
		s.DecouplingPct = utils.FloatPtr(math.Max(d, 0))
	}
	return s
}

// runOutput converts a speed in m/s to the run output figure, 1000 over the
// pace in minutes per mile.
func runOutput(speed float64) float64 {
	if speed <= 0 {
		return 0
	}
	pace := metersPerMile / (speed * 60)
	return 1000 / pace
}

func fitDiscipline(sport fit.Sport) (models.Discipline, error) {
	switch sport {
	case fit.SportRunning:
		return models.Run, nil
	case fit.SportCycling:
		return models.Bike, nil
	case fit.SportSwimming:
		return models.Swim, nil
	case fit.SportTraining:
		return models.Strength, nil
	}
	return "", fmt.Errorf("%w: unsupported sport %v", ErrInvalidDiscipline, sport)
}

// scaled drops the NaN the decoder uses for invalid fields.
func scaled(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func recordSamples(records []*fit.RecordMsg, discipline models.Discipline) []Sample {
	var (
		out   []Sample
		start time.Time
	)
	for _, rec := range records {
		if rec == nil || rec.Timestamp.IsZero() {
			continue
		}
		if start.IsZero() {
			start = rec.Timestamp
		}
		s := Sample{Elapsed: rec.Timestamp.Sub(start)}
		if rec.HeartRate != 0xFF {
			s.HeartRate = float64(rec.HeartRate)
		}
		switch discipline {
		case models.Bike:
			if rec.Power != 0xFFFF {
				s.Output = float64(rec.Power)
			}
		case models.Run:
			speed := scaled(rec.GetEnhancedSpeedScaled())
			if speed == 0 {
				speed = scaled(rec.GetSpeedScaled())
			}
			s.Output = runOutput(speed)
		}
		out = append(out, s)
	}
	return out
}

// ImportFIT reads a device activity file into one session. Intensity is not
// recorded by devices and is taken from the caller.
func ImportFIT(r io.Reader, intensity int) (models.WorkoutSession, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return models.WorkoutSession{}, fmt.Errorf("%w: %w", ErrInvalidActivity, err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return models.WorkoutSession{}, fmt.Errorf("%w: %w", ErrInvalidActivity, err)
	}
	if len(activity.Sessions) == 0 || activity.Sessions[0] == nil {
		return models.WorkoutSession{}, fmt.Errorf("%w: no session summary", ErrInvalidActivity)
	}

	summary := activity.Sessions[0]
	discipline, err := fitDiscipline(summary.Sport)
	if err != nil {
		return models.WorkoutSession{}, err
	}

	session := models.WorkoutSession{
		Date:            utils.CivilDate(summary.StartTime.Local()),
		Discipline:      discipline,
		DurationMinutes: round2(scaled(summary.GetTotalTimerTimeScaled()) / 60),
		Intensity:       intensity,
	}
	if meters := scaled(summary.GetTotalDistanceScaled()); meters > 0 {
		session.Distance = utils.FloatPtr(round2(ConvertDistance(meters, Meters, discipline)))
	}
	if summary.AvgHeartRate != 0xFF && summary.AvgHeartRate > 0 {
		session.AvgHeartRate = utils.FloatPtr(float64(summary.AvgHeartRate))
	}
	if discipline == models.Bike && summary.AvgPower != 0xFFFF && summary.AvgPower > 0 {
		session.AvgOutput = utils.FloatPtr(float64(summary.AvgPower))
	}

	return SessionFromStream(session, recordSamples(activity.Records, discipline)), nil
}
