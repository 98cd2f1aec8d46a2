package in

import (
	"context"

	"healthquest/internal/modules/mindfulness/dto"
	mindfulnessin "healthquest/internal/modules/mindfulness/port/in"
)

type CLIHandler struct {
	usecase mindfulnessin.Usecase
}

func NewCLIHandler(usecase mindfulnessin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, challengeID, title, sessionType string, durationMin int) (dto.SnapshotOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{
		ChallengeID: challengeID,
		Title:       title,
		Type:        sessionType,
		DurationMin: durationMin,
	})
}

func (h CLIHandler) Pause(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) End(ctx context.Context) error {
	return h.usecase.End(ctx)
}

func (h CLIHandler) Snapshot(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Snapshot(ctx)
}
