package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"github.com/misterclayt0n/tribase/internal/ingest"
	"github.com/misterclayt0n/tribase/internal/models"
)

const (
	DriverLibSQL = "libsql"
	DriverSQLite = "sqlite"
)

// sessionColumns doubles as the ingest header for scanned rows.
var sessionColumns = []string{
	"id", "date", "discipline", "type", "duration_minutes", "distance",
	"intensity", "avg_heart_rate", "avg_output", "decoupling_pct", "ef",
}

// SQLStore keeps sessions in a single table of a libsql or SQLite database.
type SQLStore struct {
	DB *sql.DB
}

// DriverFor picks the libsql driver for remote URLs and the local SQLite
// driver for everything else.
func DriverFor(dsn string) string {
	for _, scheme := range []string{"libsql://", "http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(dsn, scheme) {
			return DriverLibSQL
		}
	}
	return DriverSQLite
}

// OpenSQLWithin is OpenSQL with the schema setup bounded by timeout, so an
// unreachable remote database fails as ErrUnavailable. A non-positive
// timeout leaves ctx as it is.
func OpenSQLWithin(ctx context.Context, dsn string, timeout time.Duration) (*SQLStore, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return OpenSQL(ctx, dsn)
}

func OpenSQL(ctx context.Context, dsn string) (*SQLStore, error) {
	driver := DriverFor(dsn)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("Failed to open %s database: %w", driver, err)
	}

	st := &SQLStore{DB: db}
	if err := InitializeDB(ctx, db); err != nil {
		db.Close()
		return nil, unavailable("initialize", err)
	}
	logrus.WithField("driver", driver).Debug("session database ready")
	return st, nil
}

func InitializeDB(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS sessions (
            id TEXT PRIMARY KEY,
            date TEXT NOT NULL,
            discipline TEXT NOT NULL,
            type TEXT,
            duration_minutes REAL NOT NULL DEFAULT 0,
            distance REAL,
            intensity INTEGER,
            avg_heart_rate REAL,
            avg_output REAL,
            decoupling_pct REAL,
            ef REAL,
            created_at TEXT NOT NULL
        );

        CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
    `)
	if err != nil {
		return err
	}
	return initializePlans(ctx, db)
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func (s *SQLStore) Append(ctx context.Context, session models.WorkoutSession) error {
	session, err := prepare("append", session)
	if err != nil {
		return err
	}
	return s.insert(ctx, "append", session)
}

func (s *SQLStore) Restore(ctx context.Context, session models.WorkoutSession) error {
	session, err := prepareStored("restore", session)
	if err != nil {
		return err
	}
	return s.insert(ctx, "restore", session)
}

func (s *SQLStore) insert(ctx context.Context, op string, session models.WorkoutSession) error {
	var intensity any
	if session.Intensity > 0 {
		intensity = session.Intensity
	}
	var typ any
	if session.Type != "" {
		typ = session.Type
	}

	_, err := s.DB.ExecContext(ctx, `
        INSERT INTO sessions (id, date, discipline, type, duration_minutes, distance,
            intensity, avg_heart_rate, avg_output, decoupling_pct, ef, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.DateString(),
		string(session.Discipline),
		typ,
		session.DurationMinutes,
		nullable(session.Distance),
		intensity,
		nullable(session.AvgHeartRate),
		nullable(session.AvgOutput),
		nullable(session.DecouplingPct),
		nullable(session.RecordedEF),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isConstraintErr(err) {
			return rejected(op, err)
		}
		return unavailable(op, err)
	}
	return nil
}

func isConstraintErr(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "constraint")
}

// ReadAll scans every column as text and runs it through the ingest parsers,
// so a row holding a bad value is skipped rather than failing the query.
func (s *SQLStore) ReadAll(ctx context.Context) (ReadResult, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT "+strings.Join(sessionColumns, ", ")+" FROM sessions ORDER BY date, created_at")
	if err != nil {
		return ReadResult{}, unavailable("read", err)
	}
	defer rows.Close()

	header := ingest.NewHeader(sessionColumns)
	var res ReadResult
	for rows.Next() {
		raw := make([]sql.NullString, len(sessionColumns))
		ptrs := make([]any, len(raw))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			logrus.WithError(err).Debug("skipping unscannable session row")
			res.Skipped++
			continue
		}

		cells := make([]string, len(raw))
		for i, v := range raw {
			cells[i] = v.String
		}
		session, err := ingest.ParseRecord(header, cells)
		if err != nil {
			logrus.WithError(err).WithField("id", cells[0]).Debug("skipping unreadable session row")
			res.Skipped++
			continue
		}
		res.Sessions = append(res.Sessions, session)
	}
	if err := rows.Err(); err != nil {
		return ReadResult{}, unavailable("read", err)
	}
	return res, nil
}

func (s *SQLStore) Close() error {
	return s.DB.Close()
}
