package in

import (
	"context"

	"healthquest/internal/modules/progression/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.ProfileOutput, error)
	Setup(ctx context.Context, input dto.SetupInput) (dto.ProfileOutput, error)
	CompleteOnboarding(ctx context.Context) (dto.ProfileOutput, error)
	AddExperience(ctx context.Context, amount int) (dto.ProfileOutput, error)
	AddAchievement(ctx context.Context, id string) (dto.ProfileOutput, error)
}
