package models_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/misterclayt0n/tribase/internal/models"
)

func validSession() models.WorkoutSession {
	return models.WorkoutSession{
		Date:            time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		Discipline:      models.Run,
		DurationMinutes: 50,
		Intensity:       6,
	}
}

func TestWorkoutSession_Load(t *testing.T) {
	s := validSession()
	assert.Equal(t, 300.0, s.Load())

	s.Intensity = 0
	assert.Zero(t, s.Load())
}

func TestWorkoutSession_Validate(t *testing.T) {
	neg := -1.0
	over := 100.5

	tests := []struct {
		name   string
		mutate func(*models.WorkoutSession)
		ok     bool
	}{
		{"Success: complete session", func(*models.WorkoutSession) {}, true},
		{"Success: intensity absent", func(s *models.WorkoutSession) { s.Intensity = 0 }, true},
		{"Success: zero duration", func(s *models.WorkoutSession) { s.DurationMinutes = 0 }, true},
		{"Failure: missing date", func(s *models.WorkoutSession) { s.Date = time.Time{} }, false},
		{"Failure: unknown discipline", func(s *models.WorkoutSession) { s.Discipline = "Row" }, false},
		{"Failure: negative duration", func(s *models.WorkoutSession) { s.DurationMinutes = -5 }, false},
		{"Failure: intensity above 10", func(s *models.WorkoutSession) { s.Intensity = 11 }, false},
		{"Failure: negative distance", func(s *models.WorkoutSession) { s.Distance = &neg }, false},
		{"Failure: negative heart rate", func(s *models.WorkoutSession) { s.AvgHeartRate = &neg }, false},
		{"Failure: negative output", func(s *models.WorkoutSession) { s.AvgOutput = &neg }, false},
		{"Failure: decoupling above 100", func(s *models.WorkoutSession) { s.DecouplingPct = &over }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSession()
			tt.mutate(&s)
			err := s.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, models.ErrInvalidSession)
			}
		})
	}
}

func TestWorkoutSession_ValidateStored(t *testing.T) {
	s := validSession()
	drift := -1.5
	s.DecouplingPct = &drift

	assert.ErrorIs(t, s.Validate(), models.ErrInvalidSession)
	assert.NoError(t, s.ValidateStored())

	nan := math.NaN()
	s.DecouplingPct = &nan
	assert.ErrorIs(t, s.ValidateStored(), models.ErrInvalidSession)

	s = validSession()
	s.Intensity = 11
	assert.ErrorIs(t, s.ValidateStored(), models.ErrInvalidSession)
}

func TestWorkoutSession_HasType(t *testing.T) {
	s := validSession()
	s.Type = " pure aerobic (recovery) "
	assert.True(t, s.HasType(models.RecoveryType))

	s.Type = "Tempo"
	assert.False(t, s.HasType(models.RecoveryType))
}

func TestRecord(t *testing.T) {
	hr := 132.0
	s := validSession()
	s.ID = "x"
	s.AvgHeartRate = &hr

	r := s.Record()
	assert.Equal(t, "2024-04-02", r.Date)
	assert.Equal(t, "Run", r.Discipline)
	assert.Equal(t, &hr, r.AvgHeartRate)
	assert.Equal(t, "", models.WorkoutSession{}.DateString())
}
