package in

import (
	"context"

	"healthquest/internal/modules/minigame/dto"
	minigamein "healthquest/internal/modules/minigame/port/in"
)

type CLIHandler struct {
	usecase minigamein.Usecase
}

func NewCLIHandler(usecase minigamein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Games(ctx context.Context, pluginName string) ([]dto.GameInfo, error) {
	return h.usecase.ListGames(ctx, pluginName)
}

func (h CLIHandler) Play(ctx context.Context, input dto.PlayInput) (dto.PlayOutput, error) {
	return h.usecase.Play(ctx, input)
}

func (h CLIHandler) Report(ctx context.Context, kind string, score, minutes int) (dto.PlayOutput, error) {
	return h.usecase.Report(ctx, dto.ReportInput{Kind: kind, Score: score, Minutes: minutes})
}

func (h CLIHandler) PrepareTTY(ctx context.Context, input dto.TTYPrepareInput) (dto.TTYPrepareOutput, error) {
	return h.usecase.PrepareTTY(ctx, input)
}
