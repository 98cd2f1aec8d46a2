package in

import (
	"context"

	"healthquest/internal/modules/minigame/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	ListGames(ctx context.Context, pluginName string) ([]dto.GameInfo, error)
	Play(ctx context.Context, input dto.PlayInput) (dto.PlayOutput, error)
	Report(ctx context.Context, input dto.ReportInput) (dto.PlayOutput, error)
	PrepareTTY(ctx context.Context, input dto.TTYPrepareInput) (dto.TTYPrepareOutput, error)
}
