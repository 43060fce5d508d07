package coach_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/tribase/internal/analytics"
	"github.com/misterclayt0n/tribase/internal/coach"
	"github.com/misterclayt0n/tribase/internal/config"
	"github.com/misterclayt0n/tribase/internal/models"
	"github.com/misterclayt0n/tribase/internal/storage"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Append(ctx context.Context, s models.WorkoutSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStore) ReadAll(ctx context.Context) (storage.ReadResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(storage.ReadResult), args.Error(1)
}

func ptr(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, _ := time.Parse(models.DateLayout, s)
	return t
}

var now = time.Date(2024, 1, 17, 20, 0, 0, 0, time.UTC)

func newService(store coach.Store) *coach.Service {
	cfg := config.CoachConfig{
		RecoveryType: models.RecoveryType,
		WindowDays:   7,
		Thresholds:   analytics.DefaultThresholds(),
	}
	return coach.NewService(store, cfg, coach.WithClock(func() time.Time { return now }))
}

func TestService_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: returns sessions and skipped count", func(t *testing.T) {
		store := new(MockStore)
		sessions := []models.WorkoutSession{{ID: "1", Date: day("2024-01-10"), Discipline: models.Run}}
		store.On("ReadAll", ctx).Return(storage.ReadResult{Sessions: sessions, Skipped: 2}, nil)

		snap := newService(store).Snapshot(ctx)

		assert.False(t, snap.Unavailable())
		assert.Equal(t, sessions, snap.Sessions)
		assert.Equal(t, 2, snap.Skipped)
		assert.Equal(t, now, snap.FetchedAt)
		store.AssertExpectations(t)
	})

	t.Run("Failure: store error is kept apart from no data", func(t *testing.T) {
		store := new(MockStore)
		storeErr := &storage.Error{Op: "read", Kind: storage.ErrUnavailable, Err: errors.New("dial tcp: timeout")}
		store.On("ReadAll", ctx).Return(storage.ReadResult{}, storeErr)

		svc := newService(store)
		snap := svc.Snapshot(ctx)

		assert.True(t, snap.Unavailable())
		assert.Empty(t, snap.Sessions)
		assert.ErrorIs(t, snap.Err, storage.ErrUnavailable)

		report := svc.Report(snap)
		assert.ErrorIs(t, report.Err, storage.ErrUnavailable)
		assert.Equal(t, analytics.VerdictInsufficient, report.Trend.Verdict)
		assert.Nil(t, report.Latest)
	})
}

func TestService_Report(t *testing.T) {
	store := new(MockStore)
	svc := newService(store)

	snap := coach.Snapshot{
		FetchedAt: now,
		Sessions: []models.WorkoutSession{
			{Date: day("2024-01-02"), Discipline: models.Run, DurationMinutes: 100, Intensity: 1},
			{Date: day("2024-01-09"), Discipline: models.Run, DurationMinutes: 100, Intensity: 1},
			{Date: day("2024-01-16"), Discipline: models.Bike, DurationMinutes: 140, Intensity: 1,
				AvgOutput: ptr(180), AvgHeartRate: ptr(120), DecouplingPct: ptr(6.5)},
			{Date: day("2024-01-03"), Discipline: models.Bike, Type: models.RecoveryType, RecordedEF: ptr(1.50), DecouplingPct: ptr(2)},
			{Date: day("2024-01-10"), Discipline: models.Bike, Type: models.RecoveryType, RecordedEF: ptr(1.52)},
			{Date: day("2024-01-15"), Discipline: models.Bike, Type: models.RecoveryType, RecordedEF: ptr(1.38)},
		},
	}

	r := svc.Report(snap)
	require.NoError(t, r.Err)

	assert.Equal(t, analytics.VerdictDangerSpike, r.Trend.Verdict)
	assert.Equal(t, 3, r.Trend.BucketCount)
	assert.InDelta(t, 40.0, r.Trend.DeltaPct, 1e-9)

	require.NotNil(t, r.Latest)
	assert.Equal(t, day("2024-01-16"), r.Latest.Session.Date)
	assert.Equal(t, analytics.Caution, r.Latest.Decoupling)
	require.NotNil(t, r.Latest.EF)
	assert.Equal(t, 1.5, *r.Latest.EF)

	assert.Equal(t, analytics.RecoveryFatigued, r.Recovery.Status)
	assert.Equal(t, 3, r.Recovery.Sessions)

	assert.Equal(t, 3, r.Window.SessionCount)
	assert.Zero(t, r.Window.StableSessionCount)
	require.NotNil(t, r.Window.MeanEF)
	assert.InDelta(t, (1.52+1.38+1.5)/3, *r.Window.MeanEF, 1e-9)
}

func TestService_Log(t *testing.T) {
	ctx := context.Background()
	session := models.WorkoutSession{Date: day("2024-01-10"), Discipline: models.Swim, DurationMinutes: 45, Intensity: 4}

	t.Run("Success: assigns an ID and appends", func(t *testing.T) {
		store := new(MockStore)
		store.On("Append", ctx, mock.MatchedBy(func(s models.WorkoutSession) bool {
			return s.ID != "" && s.Discipline == models.Swim
		})).Return(nil).Once()

		logged, err := newService(store).Log(ctx, session)
		require.NoError(t, err)
		assert.NotEmpty(t, logged.ID)
		store.AssertExpectations(t)
	})

	t.Run("Failure: invalid session never reaches the store", func(t *testing.T) {
		store := new(MockStore)
		bad := session
		bad.Intensity = 12

		_, err := newService(store).Log(ctx, bad)
		assert.ErrorIs(t, err, models.ErrInvalidSession)
		assert.ErrorIs(t, err, storage.ErrRejected)
		assert.NotErrorIs(t, err, storage.ErrUnavailable)
		store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Failure: store errors are returned verbatim and not retried", func(t *testing.T) {
		store := new(MockStore)
		storeErr := &storage.Error{Op: "append", Kind: storage.ErrUnavailable}
		store.On("Append", ctx, mock.Anything).Return(storeErr).Once()

		_, err := newService(store).Log(ctx, session)
		assert.ErrorIs(t, err, storage.ErrUnavailable)
		store.AssertNumberOfCalls(t, "Append", 1)
	})
}

func TestService_AppendAll(t *testing.T) {
	ctx := context.Background()
	good := models.WorkoutSession{Date: day("2024-01-10"), Discipline: models.Run, DurationMinutes: 30, Intensity: 5}
	bad := models.WorkoutSession{Discipline: models.Run}

	t.Run("Success: rejected sessions are counted", func(t *testing.T) {
		store := new(MockStore)
		store.On("Append", ctx, mock.Anything).Return(nil)

		res, err := newService(store).AppendAll(ctx, []models.WorkoutSession{good, bad, good})
		require.NoError(t, err)
		assert.Equal(t, coach.BatchResult{Appended: 2, Rejected: 1}, res)
	})

	t.Run("Failure: unavailable store stops the batch", func(t *testing.T) {
		store := new(MockStore)
		store.On("Append", ctx, mock.Anything).Return(nil).Once()
		store.On("Append", ctx, mock.Anything).Return(&storage.Error{Op: "append", Kind: storage.ErrUnavailable}).Once()

		res, err := newService(store).AppendAll(ctx, []models.WorkoutSession{good, good, good})
		assert.ErrorIs(t, err, storage.ErrUnavailable)
		assert.Equal(t, 1, res.Appended)
		store.AssertNumberOfCalls(t, "Append", 2)
	})
}

func TestLatestWithDecoupling(t *testing.T) {
	_, ok := coach.LatestWithDecoupling(nil)
	assert.False(t, ok)

	latest, ok := coach.LatestWithDecoupling([]models.WorkoutSession{
		{ID: "a", Date: day("2024-01-05"), DecouplingPct: ptr(1)},
		{ID: "b", Date: day("2024-01-09")},
		{ID: "c", Date: day("2024-01-07"), DecouplingPct: ptr(2)},
		{ID: "d", DecouplingPct: ptr(3)},
	})
	require.True(t, ok)
	assert.Equal(t, "c", latest.ID)
}

func TestSessionsOn(t *testing.T) {
	got := coach.SessionsOn([]models.WorkoutSession{
		{ID: "a", Date: day("2024-01-05")},
		{ID: "b", Date: day("2024-01-06")},
		{ID: "c", Date: day("2024-01-05")},
	}, day("2024-01-05"))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}
