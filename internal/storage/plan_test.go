package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/tribase/internal/models"
	"github.com/misterclayt0n/tribase/internal/storage"
)

func plannedWorkout(date string, d models.Discipline, title string) models.PlannedWorkout {
	t, _ := time.Parse(models.DateLayout, date)
	return models.PlannedWorkout{Date: t, Discipline: d, Title: title, EasyMinutes: 40, HardMinutes: 10}
}

func TestSQLStore_Plans(t *testing.T) {
	ctx := context.Background()
	st := openTestDB(t)

	plan := models.Plan{
		Name:        "Olympic build",
		Description: "Base block",
		Workouts: []models.PlannedWorkout{
			plannedWorkout("2024-03-05", models.Run, "Threshold Intervals"),
			plannedWorkout("2024-03-09", models.Bike, "Long ride"),
		},
	}

	t.Run("Success: create and read back", func(t *testing.T) {
		created, err := st.SavePlan(ctx, plan)
		require.NoError(t, err)
		assert.True(t, created)

		got, err := st.GetPlanByName(ctx, "Olympic build")
		require.NoError(t, err)
		assert.Equal(t, "Base block", got.Description)
		require.Len(t, got.Workouts, 2)
		assert.Equal(t, "2024-03-05", got.Workouts[0].DateString())
		assert.Equal(t, models.Run, got.Workouts[0].Discipline)
		assert.Equal(t, 50.0, got.Workouts[0].Minutes())
		assert.NotEmpty(t, got.Workouts[0].ID)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("Success: saving again replaces the workouts", func(t *testing.T) {
		updated := plan
		updated.Description = "Base block v2"
		updated.Workouts = []models.PlannedWorkout{plannedWorkout("2024-03-06", models.Swim, "Endurance Sets")}

		created, err := st.SavePlan(ctx, updated)
		require.NoError(t, err)
		assert.False(t, created)

		got, err := st.GetPlanByName(ctx, "Olympic build")
		require.NoError(t, err)
		assert.Equal(t, "Base block v2", got.Description)
		require.Len(t, got.Workouts, 1)
		assert.Equal(t, models.Swim, got.Workouts[0].Discipline)

		plans, err := st.ListPlans(ctx)
		require.NoError(t, err)
		assert.Len(t, plans, 1)
	})

	t.Run("Success: delete", func(t *testing.T) {
		require.NoError(t, st.DeletePlanByName(ctx, "Olympic build"))

		_, err := st.GetPlanByName(ctx, "Olympic build")
		assert.ErrorIs(t, err, storage.ErrPlanNotFound)

		var left int
		require.NoError(t, st.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM planned_workouts`).Scan(&left))
		assert.Zero(t, left)
	})

	t.Run("Failure: unknown plan", func(t *testing.T) {
		assert.ErrorIs(t, st.DeletePlanByName(ctx, "nope"), storage.ErrPlanNotFound)
	})
}
