package in

import (
	"context"

	"healthquest/internal/modules/quest/dto"
	questin "healthquest/internal/modules/quest/port/in"
)

type CLIHandler struct {
	usecase questin.Usecase
}

func NewCLIHandler(usecase questin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.LevelOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Show(ctx context.Context, number int) (dto.LevelOutput, error) {
	return h.usecase.Get(ctx, number)
}

func (h CLIHandler) Complete(ctx context.Context, number int) (dto.CompleteLevelOutput, error) {
	return h.usecase.CompleteLevel(ctx, number)
}

func (h CLIHandler) CompletePhysical(ctx context.Context, number int, challengeID string) (dto.CompleteChallengeOutput, error) {
	return h.usecase.CompletePhysical(ctx, number, challengeID)
}

func (h CLIHandler) CompleteMindfulness(ctx context.Context, number int, challengeID string) (dto.CompleteChallengeOutput, error) {
	return h.usecase.CompleteMindfulness(ctx, number, challengeID)
}

func (h CLIHandler) Progress(ctx context.Context) (dto.ProgressOutput, error) {
	return h.usecase.TotalProgress(ctx)
}
