package coach

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/misterclayt0n/tribase/internal/analytics"
	"github.com/misterclayt0n/tribase/internal/config"
	"github.com/misterclayt0n/tribase/internal/models"
	"github.com/misterclayt0n/tribase/internal/storage"
)

// Store is the part of storage.SessionStore the coach needs.
type Store interface {
	Append(ctx context.Context, s models.WorkoutSession) error
	ReadAll(ctx context.Context) (storage.ReadResult, error)
}

type Service struct {
	store        Store
	thresholds   analytics.Thresholds
	recoveryType string
	windowDays   int
	now          func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, cfg config.CoachConfig, opts ...Option) *Service {
	s := &Service{
		store:        store,
		thresholds:   cfg.Thresholds,
		recoveryType: cfg.RecoveryType,
		windowDays:   cfg.WindowDays,
		now:          time.Now,
	}
	if s.recoveryType == "" {
		s.recoveryType = models.RecoveryType
	}
	if s.windowDays <= 0 {
		s.windowDays = 7
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Thresholds() analytics.Thresholds {
	return s.thresholds
}

func (s *Service) Now() time.Time {
	return s.now()
}

// Snapshot is one read of the store. When the read fails Sessions is empty
// and Err is set, so callers can tell a broken store from an empty one.
type Snapshot struct {
	Sessions  []models.WorkoutSession
	Skipped   int
	Err       error
	FetchedAt time.Time
}

func (s Snapshot) Unavailable() bool {
	return s.Err != nil
}

func (s *Service) Snapshot(ctx context.Context) Snapshot {
	snap := Snapshot{FetchedAt: s.now()}
	res, err := s.store.ReadAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to read sessions")
		snap.Err = err
		return snap
	}
	snap.Sessions = res.Sessions
	snap.Skipped = res.Skipped
	if res.Skipped > 0 {
		logrus.WithField("skipped", res.Skipped).Warn("some stored sessions could not be read")
	}
	return snap
}

// Latest is the most recent session that carries a decoupling value.
type Latest struct {
	Session    models.WorkoutSession
	EF         *float64
	Decoupling analytics.DecouplingStatus
}

type Report struct {
	Trend    analytics.Trend
	Latest   *Latest
	Recovery analytics.RecoveryDrift
	Window   analytics.WindowSummary
	Skipped  int
	// Err is the store failure behind an empty report, if any.
	Err error
}

func (s *Service) Report(snap Snapshot) Report {
	r := Report{
		Trend:    analytics.ComputeWeeklyTrend(snap.Sessions, s.thresholds),
		Recovery: analytics.ComputeRecoveryDrift(analytics.RecoverySessions(snap.Sessions, s.recoveryType), s.thresholds),
		Window:   analytics.ComputeRollingWindowSummary(snap.Sessions, snap.FetchedAt, s.windowDays, s.thresholds),
		Skipped:  snap.Skipped,
		Err:      snap.Err,
	}

	if latest, ok := LatestWithDecoupling(snap.Sessions); ok {
		l := &Latest{
			Session:    latest,
			Decoupling: analytics.ClassifyDecoupling(*latest.DecouplingPct, s.thresholds),
		}
		if ef, ok := analytics.EfficiencyOf(latest); ok {
			l.EF = &ef
		}
		r.Latest = l
	}
	return r
}

// LatestWithDecoupling picks the newest dated session with a decoupling
// value. Ties on date keep the later entry.
func LatestWithDecoupling(sessions []models.WorkoutSession) (models.WorkoutSession, bool) {
	var (
		latest models.WorkoutSession
		found  bool
	)
	for _, s := range sessions {
		if !s.HasDate() || s.DecouplingPct == nil {
			continue
		}
		if !found || !s.Date.Before(latest.Date) {
			latest = s
			found = true
		}
	}
	return latest, found
}

// Log validates and appends one session, assigning an ID if it has none.
// An invalid session is reported as storage.ErrRejected without reaching
// the store. Store errors are returned as they are; nothing is retried.
func (s *Service) Log(ctx context.Context, session models.WorkoutSession) (models.WorkoutSession, error) {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if err := session.Validate(); err != nil {
		return session, &storage.Error{Op: "append", Kind: storage.ErrRejected, Err: err}
	}
	if err := s.store.Append(ctx, session); err != nil {
		return session, fmt.Errorf("Failed to log session: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"id":         session.ID,
		"date":       session.DateString(),
		"discipline": session.Discipline,
	}).Info("session logged")
	return session, nil
}

type BatchResult struct {
	Appended int
	Rejected int
}

// AppendAll logs sessions in order. Rejected sessions are counted and
// skipped; the first unavailable error stops the batch.
func (s *Service) AppendAll(ctx context.Context, sessions []models.WorkoutSession) (BatchResult, error) {
	var res BatchResult
	for _, session := range sessions {
		_, err := s.Log(ctx, session)
		switch {
		case err == nil:
			res.Appended++
		case errors.Is(err, storage.ErrUnavailable):
			return res, err
		default:
			logrus.WithError(err).Warn("skipping session")
			res.Rejected++
		}
	}
	return res, nil
}

// SessionsOn returns the sessions dated on day, in stored order.
func SessionsOn(sessions []models.WorkoutSession, day time.Time) []models.WorkoutSession {
	key := day.Format(models.DateLayout)
	var out []models.WorkoutSession
	for _, s := range sessions {
		if s.DateString() == key {
			out = append(out, s)
		}
	}
	return out
}

// SortByDate orders sessions oldest first, in place.
func SortByDate(sessions []models.WorkoutSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})
}
