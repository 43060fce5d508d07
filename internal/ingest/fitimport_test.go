package ingest_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/tribase/internal/ingest"
	"github.com/misterclayt0n/tribase/internal/models"
)

func steadyStream(n int, firstHR, secondHR, output float64) []ingest.Sample {
	samples := make([]ingest.Sample, n)
	for i := range samples {
		hr := firstHR
		if i >= n/2 {
			hr = secondHR
		}
		samples[i] = ingest.Sample{Elapsed: time.Duration(i) * time.Second, HeartRate: hr, Output: output}
	}
	return samples
}

func TestStreamDecoupling(t *testing.T) {
	t.Run("Success: heart rate drift in the second half", func(t *testing.T) {
		d, ok := ingest.StreamDecoupling(steadyStream(200, 140, 150, 200))
		require.True(t, ok)
		assert.InDelta(t, 7.14, d, 0.001)
	})

	t.Run("Success: even effort has no decoupling", func(t *testing.T) {
		d, ok := ingest.StreamDecoupling(steadyStream(200, 145, 145, 180))
		require.True(t, ok)
		assert.Zero(t, d)
	})

	t.Run("Edge Case: stream too short", func(t *testing.T) {
		_, ok := ingest.StreamDecoupling(steadyStream(ingest.MinStreamSamples-1, 140, 150, 200))
		assert.False(t, ok)
	})

	t.Run("Edge Case: no output readings", func(t *testing.T) {
		_, ok := ingest.StreamDecoupling(steadyStream(200, 140, 150, 0))
		assert.False(t, ok)
	})
}

func TestSessionFromStream(t *testing.T) {
	base := models.WorkoutSession{Discipline: models.Bike, DurationMinutes: 60, Intensity: 5}

	t.Run("Success: averages and decoupling from the stream", func(t *testing.T) {
		s := ingest.SessionFromStream(base, steadyStream(200, 140, 150, 200))
		require.NotNil(t, s.AvgHeartRate)
		require.NotNil(t, s.AvgOutput)
		require.NotNil(t, s.DecouplingPct)
		assert.Equal(t, 145.0, *s.AvgHeartRate)
		assert.Equal(t, 200.0, *s.AvgOutput)
		assert.InDelta(t, 7.14, *s.DecouplingPct, 0.001)
	})

	t.Run("Edge Case: summary values survive an empty stream", func(t *testing.T) {
		hr := 131.0
		withHR := base
		withHR.AvgHeartRate = &hr

		s := ingest.SessionFromStream(withHR, nil)
		assert.Equal(t, &hr, s.AvgHeartRate)
		assert.Nil(t, s.AvgOutput)
		assert.Nil(t, s.DecouplingPct)
	})
}

func TestImportFIT(t *testing.T) {
	_, err := ingest.ImportFIT(bytes.NewReader([]byte("not a fit file")), 5)
	assert.ErrorIs(t, err, ingest.ErrInvalidActivity)
}
