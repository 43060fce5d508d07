package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/tribase/internal/analytics"
	"github.com/misterclayt0n/tribase/internal/models"
)

func planned(date string, d models.Discipline, minutes float64) models.PlannedWorkout {
	return models.PlannedWorkout{Date: day(date), Discipline: d, EasyMinutes: minutes}
}

func TestComputePlanCompliance(t *testing.T) {
	now := time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)

	plan := []models.PlannedWorkout{
		planned("2024-03-12", models.Run, 40),
		planned("2024-03-05", models.Run, 50),
		planned("2024-03-05", models.Run, 30),
		planned("2024-03-07", models.Swim, 45),
		planned("2024-03-13", models.Bike, 90),
		planned("2024-03-16", models.Bike, 120),
	}
	sessions := []models.WorkoutSession{
		{Date: day("2024-03-05"), Discipline: models.Run, DurationMinutes: 55},
		{Date: day("2024-03-12"), Discipline: models.Run, DurationMinutes: 38},
		{Date: day("2024-03-07"), Discipline: models.Bike, DurationMinutes: 60},
		{Discipline: models.Swim, DurationMinutes: 45},
	}

	c := analytics.ComputePlanCompliance(plan, sessions, now)

	assert.Equal(t, 6, c.Planned)
	assert.Equal(t, 2, c.Completed)
	assert.Equal(t, 2, c.Missed, "second run on the 5th and the swim")
	require.NotNil(t, c.Rate)
	assert.InDelta(t, 0.5, *c.Rate, 1e-9)

	require.Len(t, c.Weeks, 2)
	first := c.Weeks[0]
	assert.Equal(t, day("2024-03-04"), first.WeekStart)
	require.Len(t, first.Items, 3)
	assert.Equal(t, analytics.PlannedCompleted, first.Items[0].Status)
	require.NotNil(t, first.Items[0].Session)
	assert.Equal(t, analytics.PlannedMissed, first.Items[1].Status, "a session completes one workout")
	assert.Equal(t, 125.0, first.PlannedMinutes)
	assert.Equal(t, 55.0, first.ActualMinutes)

	second := c.Weeks[1]
	assert.Equal(t, analytics.PlannedCompleted, second.Items[0].Status)
	assert.Equal(t, analytics.PlannedUpcoming, second.Items[1].Status, "today is not missed yet")
	assert.Equal(t, analytics.PlannedUpcoming, second.Items[2].Status)
	assert.Equal(t, 38.0, second.ActualMinutes)
}

func TestComputePlanCompliance_NothingDue(t *testing.T) {
	c := analytics.ComputePlanCompliance([]models.PlannedWorkout{planned("2030-01-01", models.Run, 30)}, nil, time.Now())
	assert.Nil(t, c.Rate)
	assert.Equal(t, "Upcoming", c.Weeks[0].Items[0].Status.String())
}
