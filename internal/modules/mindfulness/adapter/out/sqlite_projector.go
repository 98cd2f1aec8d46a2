package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"healthquest/internal/modules/mindfulness/domain"
	mindfulnessout "healthquest/internal/modules/mindfulness/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteSessionProjector keeps a queryable row per finished session. Keyed by
// start time and challenge, so re-archiving the same sitting is idempotent.
type SQLiteSessionProjector struct {
	db *sql.DB
}

func NewSQLiteSessionProjector(dbPath string) (mindfulnessout.SessionArchive, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteSessionProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteSessionProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS mindfulness_sessions (
  started_at TEXT NOT NULL,
  challenge_id TEXT NOT NULL,
  title TEXT NOT NULL,
  type TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL,
  PRIMARY KEY (started_at, challenge_id)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) Archive(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO mindfulness_sessions (started_at, challenge_id, title, type, duration_seconds)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(started_at, challenge_id) DO UPDATE SET
  title=excluded.title,
  type=excluded.type,
  duration_seconds=excluded.duration_seconds;
`
	_, err := s.db.ExecContext(ctx, stmt,
		session.StartedAt.Format(time.RFC3339),
		session.ChallengeID,
		session.Title,
		string(session.Type),
		session.DurationSec,
	)
	if err != nil {
		return fmt.Errorf("upsert session row: %w", err)
	}
	return nil
}
