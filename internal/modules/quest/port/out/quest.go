package out

import (
	"context"

	"healthquest/internal/modules/quest/domain"
)

// CatalogStore persists the level catalog as one snapshot. Load returns
// apperrors.ErrNotFound when no snapshot exists yet.
type CatalogStore interface {
	Load(ctx context.Context) (domain.Catalog, error)
	Save(ctx context.Context, catalog domain.Catalog) error
}
