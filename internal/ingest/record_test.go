package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/misterclayt0n/tribase/internal/ingest"
	"github.com/misterclayt0n/tribase/internal/models"
)

func TestNormalizeColumn(t *testing.T) {
	assert.Equal(t, "duration", ingest.NormalizeColumn(" Duration (min) "))
	assert.Equal(t, "avg heart rate", ingest.NormalizeColumn("avg_heart_rate"))
	assert.Equal(t, "decoupling", ingest.NormalizeColumn("Decoupling (%)"))
	assert.Equal(t, ingest.ColDiscipline, ingest.LookupColumn("Sport"))
	assert.Equal(t, ingest.ColUnknown, ingest.LookupColumn("Notes"))
}

func TestParseRecord(t *testing.T) {
	t.Run("Success: older schema", func(t *testing.T) {
		h := ingest.NewHeader([]string{"Date", "Sport", "Duration", "Intensity", "Load"})
		s, err := ingest.ParseRecord(h, []string{"2024-01-08", "Run", "60", "5", "999"})
		require.NoError(t, err)

		assert.Equal(t, models.Run, s.Discipline)
		assert.Equal(t, 60.0, s.DurationMinutes)
		assert.Equal(t, 5, s.Intensity)
		assert.Equal(t, 300.0, s.Load(), "load is derived, the stored column is ignored")
		assert.Nil(t, s.AvgHeartRate)
		assert.Nil(t, s.Distance)
	})

	t.Run("Success: newer schema in a different order", func(t *testing.T) {
		h := ingest.NewHeader([]string{"Decoupling", "EF", "Type", "Discipline", "Date"})
		s, err := ingest.ParseRecord(h, []string{"3.2", "1.45", models.RecoveryType, "Bike", "2024-01-09"})
		require.NoError(t, err)

		assert.Equal(t, models.Bike, s.Discipline)
		assert.Equal(t, models.RecoveryType, s.Type)
		require.NotNil(t, s.DecouplingPct)
		assert.Equal(t, 3.2, *s.DecouplingPct)
		require.NotNil(t, s.RecordedEF)
		assert.Equal(t, 1.45, *s.RecordedEF)
		assert.Zero(t, s.Intensity)
		assert.Zero(t, s.Load())
	})

	t.Run("Success: short row leaves trailing columns absent", func(t *testing.T) {
		h := ingest.NewHeader([]string{"Date", "Discipline", "Duration", "Avg HR"})
		s, err := ingest.ParseRecord(h, []string{"2024-01-09", "Swim", "30"})
		require.NoError(t, err)
		assert.Nil(t, s.AvgHeartRate)
	})

	t.Run("Failure: every bad field is reported", func(t *testing.T) {
		h := ingest.NewHeader([]string{"Date", "Discipline", "Duration", "Intensity"})
		_, err := ingest.ParseRecord(h, []string{"someday", "Kayak", "-5", "12"})
		require.Error(t, err)

		assert.ErrorIs(t, err, ingest.ErrInvalidDate)
		assert.ErrorIs(t, err, ingest.ErrInvalidDiscipline)
		assert.ErrorIs(t, err, ingest.ErrInvalidNumeric)
		assert.Len(t, multierr.Errors(err), 4)
	})
}

func TestFormatRecord(t *testing.T) {
	h := ingest.NewHeader(ingest.DefaultColumns)
	hr := 150.0
	s := models.WorkoutSession{
		ID:              "id-1",
		Discipline:      models.Bike,
		DurationMinutes: 90,
		Intensity:       4,
		AvgHeartRate:    &hr,
	}
	s.Date, _ = ingest.ParseDate("2024-02-01")

	row := ingest.FormatRecord(h, s)
	require.Len(t, row, len(ingest.DefaultColumns))
	assert.Equal(t, []string{"id-1", "2024-02-01", "Bike", "", "90", "", "4", "150", "", "", "", "360"}, row)

	back, err := ingest.ParseRecord(h, row)
	require.NoError(t, err)
	assert.Equal(t, s.Load(), back.Load())
	assert.Equal(t, s, back)
}

func TestHeader_MissingFor(t *testing.T) {
	hr := 140.0
	s := models.WorkoutSession{ID: "id-1", Discipline: models.Run, DurationMinutes: 40, Intensity: 5, AvgHeartRate: &hr}
	s.Date, _ = ingest.ParseDate("2024-02-01")

	h := ingest.NewHeader([]string{"Date", "Sport", "Type", "EF", "Drift"})
	missing := h.MissingFor(s)
	assert.Equal(t, []string{"ID", "Duration", "Intensity", "Avg HR"}, missing)

	extended := h.Extend(missing...)
	assert.Empty(t, extended.MissingFor(s))
	assert.Len(t, h.Names, 5, "Extend leaves the original untouched")

	back, err := ingest.ParseRecord(extended, ingest.FormatRecord(extended, s))
	require.NoError(t, err)
	assert.Equal(t, s, back)

	assert.Empty(t, ingest.NewHeader(ingest.DefaultColumns).MissingFor(s))
	assert.Equal(t, "Avg Output", ingest.ColumnName(ingest.ColOutput))
	assert.Equal(t, "", ingest.ColumnName(ingest.ColUnknown))
}
