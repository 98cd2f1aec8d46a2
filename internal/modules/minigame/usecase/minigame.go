package usecase

import (
	"context"
	"fmt"

	activitydto "healthquest/internal/modules/activity/dto"
	activityin "healthquest/internal/modules/activity/port/in"
	"healthquest/internal/modules/minigame/dto"
	minigamein "healthquest/internal/modules/minigame/port/in"
	"healthquest/internal/modules/minigame/service"
)

// Interactor brokers games through the plugin service and routes every
// finished round into the activity ledger, so a plugin round and a manual
// report land identically.
type Interactor struct {
	svc      *service.MiniGameService
	activity activityin.Usecase
}

func NewInteractor(svc *service.MiniGameService, activity activityin.Usecase) minigamein.Usecase {
	return &Interactor{svc: svc, activity: activity}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) ListGames(ctx context.Context, pluginName string) ([]dto.GameInfo, error) {
	return i.svc.ListGames(ctx, pluginName)
}

func (i *Interactor) Play(ctx context.Context, input dto.PlayInput) (dto.PlayOutput, error) {
	result, err := i.svc.Play(ctx, input)
	if err != nil {
		return dto.PlayOutput{}, err
	}
	logged, err := i.activity.CompleteMiniGame(ctx, activitydto.MiniGameInput{
		Kind:    result.Kind,
		Score:   result.Score,
		Minutes: result.Minutes,
	})
	if err != nil {
		return dto.PlayOutput{}, fmt.Errorf("record game result: %w", err)
	}
	return dto.PlayOutput{
		PluginName: input.PluginName,
		GameID:     input.GameID,
		Kind:       result.Kind,
		Score:      result.Score,
		Minutes:    result.Minutes,
		LoggedAs:   logged.LoggedAs,
		ResultID:   logged.ResultID,
		Stdout:     result.Stdout,
		OutputJSON: result.OutputJSON,
		ExitCode:   result.ExitCode,
	}, nil
}

// Report is the manual entry path: same ledger routing, no plugin involved.
func (i *Interactor) Report(ctx context.Context, input dto.ReportInput) (dto.PlayOutput, error) {
	logged, err := i.activity.CompleteMiniGame(ctx, activitydto.MiniGameInput{
		Kind:    input.Kind,
		Score:   input.Score,
		Minutes: input.Minutes,
	})
	if err != nil {
		return dto.PlayOutput{}, err
	}
	return dto.PlayOutput{
		Kind:     input.Kind,
		Score:    input.Score,
		Minutes:  input.Minutes,
		LoggedAs: logged.LoggedAs,
		ResultID: logged.ResultID,
	}, nil
}

func (i *Interactor) PrepareTTY(ctx context.Context, input dto.TTYPrepareInput) (dto.TTYPrepareOutput, error) {
	return i.svc.PrepareTTY(ctx, input)
}
