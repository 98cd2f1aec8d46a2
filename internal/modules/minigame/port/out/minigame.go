package out

import (
	"context"

	"healthquest/internal/modules/minigame/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	ListGames(ctx context.Context, manifest domain.Manifest) ([]domain.GameDescriptor, error)
	Play(ctx context.Context, manifest domain.Manifest, input domain.PlayRequest) (domain.PlayResult, error)
	PrepareTTY(ctx context.Context, manifest domain.Manifest, input domain.PlayRequest) (domain.TTYPlan, error)
}
