package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/tribase/internal/models"
	"github.com/misterclayt0n/tribase/internal/utils"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 1, utils.DaysUntil(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, utils.DaysUntil(time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC), now))
	assert.Equal(t, -29, utils.DaysUntil(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 365, utils.DaysUntil(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), now))
}

func TestRunPaceToOutput(t *testing.T) {
	assert.InDelta(t, 105.2632, utils.RunPaceToOutput(9, 30), 1e-4)
	assert.InDelta(t, 125.0, utils.RunPaceToOutput(8, 0), 1e-9)
	assert.Zero(t, utils.RunPaceToOutput(0, 0))
}

func TestFloatPtrAndRound(t *testing.T) {
	assert.Nil(t, utils.FloatPtr(-1))
	require.NotNil(t, utils.FloatPtr(0))
	assert.Equal(t, 0.0, *utils.FloatPtr(0))
	assert.Equal(t, 1.43, utils.Round(1.4286, 2))
}

func TestProfile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := utils.LoadProfile()
	require.NoError(t, err)
	assert.False(t, p.HasRace())

	race := &models.Profile{RaceName: "Ironman 70.3", RaceDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, utils.SaveProfile(race))
	assert.True(t, utils.ProfileExists())

	loaded, err := utils.LoadProfile()
	require.NoError(t, err)
	assert.Equal(t, race.RaceName, loaded.RaceName)
	assert.True(t, race.RaceDate.Equal(loaded.RaceDate))
	assert.True(t, loaded.HasRace())

	require.NoError(t, utils.ClearProfile())
	require.NoError(t, utils.ClearProfile())
	assert.False(t, utils.ProfileExists())
}
