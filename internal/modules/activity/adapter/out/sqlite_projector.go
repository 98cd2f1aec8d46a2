package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"healthquest/internal/modules/activity/domain"
	activityout "healthquest/internal/modules/activity/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteHistoryProjector struct {
	db *sql.DB
}

func NewSQLiteHistoryProjector(dbPath string) (activityout.HistoryProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteHistoryProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteHistoryProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS activity_entries (
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  duration_minutes INTEGER NOT NULL,
  intensity TEXT NOT NULL,
  description TEXT,
  created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS mini_game_results (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  score INTEGER NOT NULL,
  duration_minutes INTEGER NOT NULL,
  completed_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create history tables: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM activity_entries`); err != nil {
		return fmt.Errorf("reset activity entries: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM mini_game_results`); err != nil {
		return fmt.Errorf("reset mini-game results: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) UpsertEntry(ctx context.Context, entry domain.LogEntry) error {
	const stmt = `
INSERT INTO activity_entries (id, type, duration_minutes, intensity, description, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  type=excluded.type,
  duration_minutes=excluded.duration_minutes,
  intensity=excluded.intensity,
  description=excluded.description,
  created_at=excluded.created_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		entry.ID,
		string(entry.Type),
		entry.DurationMin,
		string(entry.Intensity),
		entry.Description,
		entry.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert activity entry: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) UpsertMiniGame(ctx context.Context, result domain.MiniGameResult) error {
	const stmt = `
INSERT INTO mini_game_results (id, kind, score, duration_minutes, completed_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  kind=excluded.kind,
  score=excluded.score,
  duration_minutes=excluded.duration_minutes,
  completed_at=excluded.completed_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		result.ID,
		string(result.Kind),
		result.Score,
		result.DurationMin,
		result.CompletedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert mini-game result: %w", err)
	}
	return nil
}
