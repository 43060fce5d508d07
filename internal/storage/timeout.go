package storage

import (
	"context"
	"errors"
	"time"

	"github.com/misterclayt0n/tribase/internal/models"
)

type timeoutStore struct {
	next    SessionStore
	timeout time.Duration
}

// WithTimeout bounds every call to next by d. A call that runs out of time
// fails with ErrUnavailable. A non-positive d returns next unchanged.
func WithTimeout(next SessionStore, d time.Duration) SessionStore {
	if d <= 0 {
		return next
	}
	return &timeoutStore{next: next, timeout: d}
}

func (t *timeoutStore) Append(ctx context.Context, s models.WorkoutSession) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return deadline(ctx, "append", t.next.Append(ctx, s))
}

func (t *timeoutStore) Restore(ctx context.Context, s models.WorkoutSession) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return deadline(ctx, "restore", t.next.Restore(ctx, s))
}

func (t *timeoutStore) ReadAll(ctx context.Context) (ReadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	res, err := t.next.ReadAll(ctx)
	return res, deadline(ctx, "read", err)
}

func (t *timeoutStore) Close() error {
	return t.next.Close()
}

func deadline(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrUnavailable) {
		return &Error{Op: op, Kind: ErrUnavailable, Err: err}
	}
	return err
}
