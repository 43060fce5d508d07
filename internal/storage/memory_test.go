package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/tribase/internal/config"
	"github.com/misterclayt0n/tribase/internal/models"
	"github.com/misterclayt0n/tribase/internal/storage"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()

	s := models.WorkoutSession{
		Date:            time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Discipline:      models.Run,
		DurationMinutes: 40,
		Intensity:       5,
	}
	require.NoError(t, st.Append(ctx, s))

	res, err := st.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, res.Sessions, 1)
	assert.NotEmpty(t, res.Sessions[0].ID)

	res.Sessions[0].DurationMinutes = 999
	again, err := st.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40.0, again.Sessions[0].DurationMinutes, "reads return copies")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = st.ReadAll(cancelled)
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}

// slowStore blocks until its context is done.
type slowStore struct{}

func (slowStore) Append(ctx context.Context, _ models.WorkoutSession) error {
	<-ctx.Done()
	return ctx.Err()
}

func (slowStore) Restore(ctx context.Context, _ models.WorkoutSession) error {
	<-ctx.Done()
	return ctx.Err()
}

func (slowStore) ReadAll(ctx context.Context) (storage.ReadResult, error) {
	<-ctx.Done()
	return storage.ReadResult{}, ctx.Err()
}

func (slowStore) Close() error { return nil }

func TestWithTimeout(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure: deadline is reported as unavailable", func(t *testing.T) {
		st := storage.WithTimeout(slowStore{}, 10*time.Millisecond)

		_, err := st.ReadAll(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, storage.ErrUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		err = st.Append(ctx, models.WorkoutSession{})
		assert.ErrorIs(t, err, storage.ErrUnavailable)
	})

	t.Run("Success: fast calls pass through", func(t *testing.T) {
		mem := storage.NewMemoryStore()
		st := storage.WithTimeout(mem, time.Second)

		require.NoError(t, st.Append(ctx, models.WorkoutSession{
			Date:       time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Discipline: models.Swim,
			Intensity:  2,
		}))
		res, err := st.ReadAll(ctx)
		require.NoError(t, err)
		assert.Len(t, res.Sessions, 1)
	})

	t.Run("Success: non-positive timeout is a no-op", func(t *testing.T) {
		mem := storage.NewMemoryStore()
		assert.Same(t, mem, storage.WithTimeout(mem, 0))
	})

	t.Run("Success: rejections keep their kind", func(t *testing.T) {
		st := storage.WithTimeout(storage.NewMemoryStore(), time.Second)
		err := st.Append(ctx, models.WorkoutSession{Discipline: models.Run})
		assert.ErrorIs(t, err, storage.ErrRejected)
		assert.NotErrorIs(t, err, storage.ErrUnavailable)
	})
}

func TestExportImportTOML(t *testing.T) {
	ctx := context.Background()
	hr := 148.0
	src := storage.NewMemoryStore(
		models.WorkoutSession{ID: "b", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Discipline: models.Bike, DurationMinutes: 90, Intensity: 6, AvgHeartRate: &hr},
		models.WorkoutSession{ID: "a", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Discipline: models.Run, DurationMinutes: 45, Intensity: 7},
	)

	path := filepath.Join(t.TempDir(), "dump.toml")
	n, err := storage.ExportTOML(ctx, src, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	dst := storage.NewMemoryStore()
	sum, err := storage.ImportTOML(ctx, dst, path)
	require.NoError(t, err)
	assert.Equal(t, storage.ImportSummary{Imported: 2}, sum)

	want, _ := src.ReadAll(ctx)
	got, _ := dst.ReadAll(ctx)
	assert.ElementsMatch(t, want.Sessions, got.Sessions)
	assert.Equal(t, "a", got.Sessions[0].ID, "dump is written oldest first")

	t.Run("Success: recorded negative decoupling survives a restore", func(t *testing.T) {
		drift := -1.5
		src := storage.NewMemoryStore(models.WorkoutSession{
			ID: "neg", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Discipline: models.Bike,
			DurationMinutes: 60, DecouplingPct: &drift,
		})
		path := filepath.Join(t.TempDir(), "neg.toml")
		_, err := storage.ExportTOML(ctx, src, path)
		require.NoError(t, err)

		dst := storage.NewMemoryStore()
		sum, err := storage.ImportTOML(ctx, dst, path)
		require.NoError(t, err)
		assert.Equal(t, storage.ImportSummary{Imported: 1}, sum)

		got, _ := dst.ReadAll(ctx)
		require.Len(t, got.Sessions, 1)
		require.NotNil(t, got.Sessions[0].DecouplingPct)
		assert.Equal(t, drift, *got.Sessions[0].DecouplingPct)

		err = dst.Append(ctx, got.Sessions[0])
		assert.ErrorIs(t, err, storage.ErrRejected, "new entries still use the entry range")
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: sqlite backend", func(t *testing.T) {
		st, err := storage.Open(ctx, config.StoreConfig{
			Backend:          config.BackendSQLite,
			ConnectionString: "file:" + filepath.Join(t.TempDir(), "open.db"),
			Timeout:          time.Second,
		})
		require.NoError(t, err)
		defer st.Close()

		res, err := st.ReadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, res.Sessions)
	})

	t.Run("Success: memory backend", func(t *testing.T) {
		st, err := storage.Open(ctx, config.StoreConfig{Backend: config.BackendMemory})
		require.NoError(t, err)
		assert.IsType(t, &storage.MemoryStore{}, st)
	})

	t.Run("Failure: unknown backend", func(t *testing.T) {
		_, err := storage.Open(ctx, config.StoreConfig{Backend: "floppy"})
		assert.Error(t, err)
	})
}
