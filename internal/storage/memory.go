package storage

import (
	"context"
	"sync"

	"github.com/misterclayt0n/tribase/internal/models"
)

// MemoryStore is a process-local SessionStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions []models.WorkoutSession
}

func NewMemoryStore(seed ...models.WorkoutSession) *MemoryStore {
	return &MemoryStore{sessions: append([]models.WorkoutSession(nil), seed...)}
}

func (m *MemoryStore) Append(ctx context.Context, s models.WorkoutSession) error {
	if err := ctx.Err(); err != nil {
		return unavailable("append", err)
	}
	s, err := prepare("append", s)
	if err != nil {
		return err
	}
	m.add(s)
	return nil
}

func (m *MemoryStore) Restore(ctx context.Context, s models.WorkoutSession) error {
	if err := ctx.Err(); err != nil {
		return unavailable("restore", err)
	}
	s, err := prepareStored("restore", s)
	if err != nil {
		return err
	}
	m.add(s)
	return nil
}

func (m *MemoryStore) add(s models.WorkoutSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, s)
}

func (m *MemoryStore) ReadAll(ctx context.Context) (ReadResult, error) {
	if err := ctx.Err(); err != nil {
		return ReadResult{}, unavailable("read", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.WorkoutSession, len(m.sessions))
	copy(out, m.sessions)
	return ReadResult{Sessions: out}, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
