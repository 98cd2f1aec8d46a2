package out

import (
	"context"

	"healthquest/internal/modules/progression/domain"
)

// ProfileStore persists the profile snapshot. Load returns
// apperrors.ErrNotFound when no snapshot exists yet.
type ProfileStore interface {
	Load(ctx context.Context) (domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
}
