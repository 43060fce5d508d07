package ingest_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/misterclayt0n/tribase/internal/ingest"
	"github.com/misterclayt0n/tribase/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"2024-03-04",
		" 2024-03-04 ",
		"2024-03-04T18:30:00Z",
		"2024-03-04T18:30:00-03:00",
		"2024-03-04 06:15:00",
		"3/4/2024",
	} {
		t.Run("Success: "+in, func(t *testing.T) {
			got, err := ingest.ParseDate(in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}

	for _, in := range []string{"", "yesterday", "2024-13-01", "04.03.2024"} {
		t.Run("Failure: "+in, func(t *testing.T) {
			_, err := ingest.ParseDate(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ingest.ErrInvalidDate)

			var fe *ingest.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "date", fe.Field)
		})
	}
}

func TestParseNumeric(t *testing.T) {
	t.Run("Success: empty is absent", func(t *testing.T) {
		v, err := ingest.ParseNumeric("   ")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("Success: NaN is absent", func(t *testing.T) {
		v, err := ingest.ParseNumeric("NaN")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("Success: percent and thousands separators", func(t *testing.T) {
		v, err := ingest.ParseNumeric("4.5%")
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, 4.5, *v)

		v, err = ingest.ParseNumeric("1,650")
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, 1650.0, *v)
	})

	t.Run("Success: zero is present", func(t *testing.T) {
		v, err := ingest.ParseNumeric("0")
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Zero(t, *v)
	})

	t.Run("Failure: garbage", func(t *testing.T) {
		for _, in := range []string{"abc", "12km", "Inf"} {
			_, err := ingest.ParseNumeric(in)
			assert.ErrorIs(t, err, ingest.ErrInvalidNumeric, in)
		}
	})
}

func TestParseIntensity(t *testing.T) {
	got, err := ingest.ParseIntensity("7")
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	got, err = ingest.ParseIntensity("7.0")
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	got, err = ingest.ParseIntensity("")
	require.NoError(t, err)
	assert.Zero(t, got)

	for _, in := range []string{"0", "11", "6.5", "hard"} {
		_, err := ingest.ParseIntensity(in)
		assert.ErrorIs(t, err, ingest.ErrInvalidNumeric, in)
	}
}

func TestParseDiscipline(t *testing.T) {
	d, err := ingest.ParseDiscipline(" bike ")
	require.NoError(t, err)
	assert.Equal(t, models.Bike, d)

	_, err = ingest.ParseDiscipline("Rowing")
	assert.ErrorIs(t, err, ingest.ErrInvalidDiscipline)
}

func TestFromRecord(t *testing.T) {
	hr := 140.0
	s, err := ingest.FromRecord(models.SessionRecord{
		ID:              "abc",
		Date:            "2024-05-06",
		Discipline:      "Run",
		DurationMinutes: 45,
		Intensity:       6,
		AvgHeartRate:    &hr,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", s.DateString())
	assert.Equal(t, models.Run, s.Discipline)
	assert.Equal(t, 270.0, s.Load())

	_, err = ingest.FromRecord(models.SessionRecord{Date: "nope", Discipline: "Run"})
	assert.ErrorIs(t, err, ingest.ErrInvalidDate)
}
