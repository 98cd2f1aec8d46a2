package in

import (
	"context"

	"healthquest/internal/modules/quest/dto"
)

// Usecase is the quest module's inbound surface. Completion operations are
// idempotent; attempts that cannot apply report Completed=false instead of
// failing.
type Usecase interface {
	List(ctx context.Context) ([]dto.LevelOutput, error)
	Get(ctx context.Context, number int) (dto.LevelOutput, error)
	Current(ctx context.Context) (dto.LevelOutput, error)
	Available(ctx context.Context) ([]dto.LevelOutput, error)
	CompleteLevel(ctx context.Context, number int) (dto.CompleteLevelOutput, error)
	CompletePhysical(ctx context.Context, number int, challengeID string) (dto.CompleteChallengeOutput, error)
	CompleteMindfulness(ctx context.Context, number int, challengeID string) (dto.CompleteChallengeOutput, error)
	CompleteMindfulnessByKind(ctx context.Context, kind string) (dto.CompleteChallengeOutput, error)
	TotalProgress(ctx context.Context) (dto.ProgressOutput, error)
}
