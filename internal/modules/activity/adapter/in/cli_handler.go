package in

import (
	"context"

	"healthquest/internal/modules/activity/dto"
	activityin "healthquest/internal/modules/activity/port/in"
)

type CLIHandler struct {
	usecase activityin.Usecase
}

func NewCLIHandler(usecase activityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Log(ctx context.Context, activityType string, minutes int, intensity, description string) (dto.LogOutput, error) {
	return h.usecase.LogActivity(ctx, dto.LogInput{
		Type:        activityType,
		Minutes:     minutes,
		Intensity:   intensity,
		Description: description,
	})
}

func (h CLIHandler) LogSteps(ctx context.Context, steps int) (dto.LogOutput, error) {
	return h.usecase.LogSteps(ctx, steps)
}

func (h CLIHandler) QuickLog(ctx context.Context, activityType string, minutes int) (dto.LogOutput, error) {
	return h.usecase.QuickLog(ctx, activityType, minutes)
}

func (h CLIHandler) Mood(ctx context.Context, mood, note string) (dto.CheckInOutput, error) {
	return h.usecase.UpdateMood(ctx, mood, note)
}

func (h CLIHandler) Energy(ctx context.Context, energy string) (dto.CheckInOutput, error) {
	return h.usecase.UpdateEnergy(ctx, energy)
}

func (h CLIHandler) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
