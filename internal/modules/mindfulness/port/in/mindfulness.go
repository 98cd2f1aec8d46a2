package in

import (
	"context"

	"healthquest/internal/modules/mindfulness/dto"
)

// Usecase is the session machine's inbound surface. The machine itself
// treats impossible transitions as no-ops; this surface reports them so the
// CLI and TUI can tell the user what happened.
type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SnapshotOutput, error)
	Pause(ctx context.Context) (dto.SnapshotOutput, error)
	Resume(ctx context.Context) (dto.SnapshotOutput, error)
	End(ctx context.Context) error
	Snapshot(ctx context.Context) (dto.SnapshotOutput, error)
}
