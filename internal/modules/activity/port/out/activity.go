package out

import (
	"context"

	"healthquest/internal/modules/activity/domain"
)

// LedgerStore persists the full activity aggregate as one snapshot. Load
// returns apperrors.ErrNotFound when no snapshot exists yet.
type LedgerStore interface {
	Load(ctx context.Context) (domain.Ledger, error)
	Save(ctx context.Context, ledger domain.Ledger) error
}

// HistoryProjector maintains a queryable copy of logged entries and finished
// mini-games. Projection failures must not block logging.
type HistoryProjector interface {
	UpsertEntry(ctx context.Context, entry domain.LogEntry) error
	UpsertMiniGame(ctx context.Context, result domain.MiniGameResult) error
	Reset(ctx context.Context) error
}
