package storage

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"

	"github.com/misterclayt0n/tribase/internal/config"
)

// Open builds the configured backend wrapped in the configured timeout.
func Open(ctx context.Context, cfg config.StoreConfig) (SessionStore, error) {
	var (
		store SessionStore
		err   error
	)

	switch cfg.Backend {
	case config.BackendSQLite, config.BackendLibSQL:
		store, err = OpenSQLWithin(ctx, cfg.ConnectionString, cfg.Timeout)
	case config.BackendSheets:
		var opts []option.ClientOption
		if cfg.CredentialsFile != "" {
			credentials, readErr := os.ReadFile(cfg.CredentialsFile)
			if readErr != nil {
				return nil, fmt.Errorf("Failed to read credentials %s: %w", cfg.CredentialsFile, readErr)
			}
			opts = append(opts, option.WithCredentialsJSON(credentials))
		}
		store, err = NewSheetsStore(ctx, cfg.SpreadsheetID, cfg.SheetName, opts...)
	case config.BackendMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	return WithTimeout(store, cfg.Timeout), nil
}
