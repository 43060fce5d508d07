package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/misterclayt0n/tribase/internal/ingest"
	"github.com/misterclayt0n/tribase/internal/models"
)

// ExportTOML writes every readable session in the store to outputPath,
// oldest first, and returns how many were written.
func ExportTOML(ctx context.Context, store SessionStore, outputPath string) (int, error) {
	res, err := store.ReadAll(ctx)
	if err != nil {
		return 0, err
	}

	sessions := res.Sessions
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})

	dump := models.SessionDump{Sessions: make([]models.SessionRecord, 0, len(sessions))}
	for _, s := range sessions {
		dump.Sessions = append(dump.Sessions, s.Record())
	}

	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(dump); err != nil {
		return 0, fmt.Errorf("encoding TOML: %w", err)
	}
	if res.Skipped > 0 {
		logrus.WithField("skipped", res.Skipped).Warn("unreadable sessions were left out of the export")
	}
	return len(dump.Sessions), nil
}

// GetDBExportPath returns ~/.config/tribase/db_dump.toml.
func GetDBExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "tribase")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "db_dump.toml"), nil
}

type ImportSummary struct {
	Imported int
	Rejected int
}

// ImportTOML restores every record of the dump at filePath. Records the
// store rejects are counted and skipped; an unavailable store aborts the
// import.
func ImportTOML(ctx context.Context, store SessionStore, filePath string) (ImportSummary, error) {
	var dump models.SessionDump
	if _, err := toml.DecodeFile(filePath, &dump); err != nil {
		return ImportSummary{}, fmt.Errorf("Decoding TOML %s: %w", filePath, err)
	}

	var sum ImportSummary
	for _, rec := range dump.Sessions {
		session, err := ingest.FromRecord(rec)
		if err == nil {
			err = store.Restore(ctx, session)
		}
		switch {
		case err == nil:
			sum.Imported++
		case errors.Is(err, ErrUnavailable):
			return sum, err
		default:
			logrus.WithError(err).WithField("id", rec.ID).Warn("skipping session from dump")
			sum.Rejected++
		}
	}
	return sum, nil
}
