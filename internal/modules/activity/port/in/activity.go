package in

import (
	"context"

	"healthquest/internal/modules/activity/dto"
)

// Usecase is the activity module's inbound surface. Logging operations award
// experience as a side effect; read operations never mutate.
type Usecase interface {
	LogActivity(ctx context.Context, input dto.LogInput) (dto.LogOutput, error)
	LogSteps(ctx context.Context, steps int) (dto.LogOutput, error)
	QuickLog(ctx context.Context, activityType string, minutes int) (dto.LogOutput, error)
	UpdateMood(ctx context.Context, mood, note string) (dto.CheckInOutput, error)
	UpdateEnergy(ctx context.Context, energy string) (dto.CheckInOutput, error)
	CompleteMiniGame(ctx context.Context, input dto.MiniGameInput) (dto.MiniGameOutput, error)
	TodaysProgress(ctx context.Context, activityType string) (dto.ProgressOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	Reindex(ctx context.Context) error
}
