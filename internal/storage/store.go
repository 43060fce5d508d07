package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/misterclayt0n/tribase/internal/models"
)

var (
	// ErrUnavailable covers transport failures and timeouts.
	ErrUnavailable = errors.New("store unavailable")
	// ErrRejected means the store refused the payload.
	ErrRejected = errors.New("store rejected record")
)

// SessionStore is an append-only collection of workout sessions.
type SessionStore interface {
	Append(ctx context.Context, s models.WorkoutSession) error
	// Restore writes a session that a store already accepted once, such as
	// one from a dump. It checks the read-side rules instead of the entry
	// rules, so values recorded elsewhere survive a backup.
	Restore(ctx context.Context, s models.WorkoutSession) error
	// ReadAll returns every readable session in unspecified order. Rows that
	// fail to parse are counted in Skipped instead of failing the read.
	ReadAll(ctx context.Context) (ReadResult, error)
	Close() error
}

type ReadResult struct {
	Sessions []models.WorkoutSession
	Skipped  int
}

// Error carries the operation and the ErrUnavailable or ErrRejected kind.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func unavailable(op string, err error) error {
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Kind: ErrUnavailable, Err: err}
}

func rejected(op string, err error) error {
	return &Error{Op: op, Kind: ErrRejected, Err: err}
}

// prepare validates a session before any I/O and assigns an ID if missing.
func prepare(op string, s models.WorkoutSession) (models.WorkoutSession, error) {
	if err := s.Validate(); err != nil {
		return s, rejected(op, err)
	}
	return withID(s), nil
}

func prepareStored(op string, s models.WorkoutSession) (models.WorkoutSession, error) {
	if err := s.ValidateStored(); err != nil {
		return s, rejected(op, err)
	}
	return withID(s), nil
}

func withID(s models.WorkoutSession) models.WorkoutSession {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return s
}
