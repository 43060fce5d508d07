package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/misterclayt0n/tribase/internal/coach"
	"github.com/misterclayt0n/tribase/internal/storage"
)

// openCoach opens the configured store. The caller closes the returned store.
func openCoach(ctx context.Context) (*coach.Service, storage.SessionStore, error) {
	store, err := storage.Open(ctx, cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to open %s store: %w", cfg.Store.Backend, err)
	}
	return coach.NewService(store, cfg.Coach), store, nil
}

// loadSnapshot opens the store and reads every session once.
func loadSnapshot(ctx context.Context) (*coach.Service, coach.Snapshot, error) {
	svc, store, err := openCoach(ctx)
	if err != nil {
		return nil, coach.Snapshot{}, err
	}
	defer store.Close()

	snap := svc.Snapshot(ctx)
	if snap.Skipped > 0 {
		color.New(color.FgYellow).Printf("⚠ %d stored session(s) could not be read and were skipped\n", snap.Skipped)
	}
	return svc, snap, nil
}

// storeFailure renders a failed read so it is never mistaken for an empty log.
func storeFailure(err error) error {
	if errors.Is(err, storage.ErrUnavailable) {
		color.New(color.FgRed, color.Bold).Println("✖ Store unavailable. Data could not be loaded.")
	}
	return fmt.Errorf("Failed to retrieve sessions: %w", err)
}

func printNoData() {
	fmt.Println("No sessions logged yet. Use 'tribase log' to add one.")
}
