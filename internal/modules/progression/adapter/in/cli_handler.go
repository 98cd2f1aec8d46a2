package in

import (
	"context"

	"healthquest/internal/modules/progression/dto"
	progressionin "healthquest/internal/modules/progression/port/in"
)

type CLIHandler struct {
	usecase progressionin.Usecase
}

func NewCLIHandler(usecase progressionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context) (dto.ProfileOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Setup(ctx context.Context, name, fitnessLevel string, preferred []string) (dto.ProfileOutput, error) {
	return h.usecase.Setup(ctx, dto.SetupInput{Name: name, FitnessLevel: fitnessLevel, PreferredActivities: preferred})
}

func (h CLIHandler) CompleteOnboarding(ctx context.Context) (dto.ProfileOutput, error) {
	return h.usecase.CompleteOnboarding(ctx)
}
