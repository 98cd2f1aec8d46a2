package usecase

import (
	"context"
	"fmt"

	progressiondto "healthquest/internal/modules/progression/dto"
	progressionin "healthquest/internal/modules/progression/port/in"
	"healthquest/internal/modules/quest/domain"
	"healthquest/internal/modules/quest/dto"
	questin "healthquest/internal/modules/quest/port/in"
	"healthquest/internal/modules/quest/service"
	apperrors "healthquest/internal/platform/errors"
)

// Interactor maps the quest service onto the inbound port. Completing a
// level pays number x 100 XP and records each reward as an achievement;
// confirming a physical challenge pays a flat 50 XP. Mindfulness ticks award
// nothing here, the session flow pays those.
type Interactor struct {
	svc         *service.QuestService
	progression progressionin.Usecase
}

func NewInteractor(svc *service.QuestService, progression progressionin.Usecase) questin.Usecase {
	return &Interactor{svc: svc, progression: progression}
}

func (i *Interactor) List(ctx context.Context) ([]dto.LevelOutput, error) {
	levels := i.svc.List(ctx)
	out := make([]dto.LevelOutput, 0, len(levels))
	for _, level := range levels {
		out = append(out, toLevelOutput(level))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, number int) (dto.LevelOutput, error) {
	level, err := i.svc.Get(ctx, number)
	if err != nil {
		return dto.LevelOutput{}, err
	}
	return toLevelOutput(level), nil
}

func (i *Interactor) Available(ctx context.Context) ([]dto.LevelOutput, error) {
	levels := i.svc.Available(ctx)
	out := make([]dto.LevelOutput, 0, len(levels))
	for _, level := range levels {
		out = append(out, toLevelOutput(level))
	}
	return out, nil
}

func (i *Interactor) Current(ctx context.Context) (dto.LevelOutput, error) {
	level, err := i.svc.Current(ctx)
	if err != nil {
		return dto.LevelOutput{}, err
	}
	return toLevelOutput(level), nil
}

func (i *Interactor) CompleteLevel(ctx context.Context, number int) (dto.CompleteLevelOutput, error) {
	level, changed := i.svc.CompleteLevel(ctx, number)
	if !changed {
		return dto.CompleteLevelOutput{}, nil
	}
	xp := level.CompletionXP()
	if _, err := i.progression.AddExperience(ctx, xp); err != nil {
		return dto.CompleteLevelOutput{}, fmt.Errorf("award level xp: %w", err)
	}
	for _, reward := range level.Rewards {
		if _, err := i.progression.AddAchievement(ctx, reward); err != nil {
			return dto.CompleteLevelOutput{}, fmt.Errorf("record reward: %w", err)
		}
	}
	return dto.CompleteLevelOutput{
		Completed: true,
		Level:     toLevelOutput(level),
		XPAwarded: xp,
		Rewards:   level.Rewards,
	}, nil
}

func (i *Interactor) CompletePhysical(ctx context.Context, number int, challengeID string) (dto.CompleteChallengeOutput, error) {
	if !i.svc.CompletePhysical(ctx, number, challengeID) {
		return dto.CompleteChallengeOutput{LevelNumber: number, ChallengeID: challengeID}, nil
	}
	if _, err := i.progression.AddExperience(ctx, progressiondto.XPChallengeConfirmed); err != nil {
		return dto.CompleteChallengeOutput{}, fmt.Errorf("award challenge xp: %w", err)
	}
	return dto.CompleteChallengeOutput{
		Completed:   true,
		LevelNumber: number,
		ChallengeID: challengeID,
		XPAwarded:   progressiondto.XPChallengeConfirmed,
	}, nil
}

func (i *Interactor) CompleteMindfulness(ctx context.Context, number int, challengeID string) (dto.CompleteChallengeOutput, error) {
	return dto.CompleteChallengeOutput{
		Completed:   i.svc.CompleteMindfulness(ctx, number, challengeID),
		LevelNumber: number,
		ChallengeID: challengeID,
	}, nil
}

func (i *Interactor) CompleteMindfulnessByKind(ctx context.Context, kind string) (dto.CompleteChallengeOutput, error) {
	k := domain.MindfulnessKind(kind)
	if err := k.Validate(); err != nil {
		return dto.CompleteChallengeOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	level, challenge, changed := i.svc.CompleteMindfulnessByKind(ctx, k)
	if !changed {
		return dto.CompleteChallengeOutput{}, nil
	}
	return dto.CompleteChallengeOutput{
		Completed:   true,
		LevelNumber: level.Number,
		ChallengeID: challenge.ID,
	}, nil
}

func (i *Interactor) TotalProgress(ctx context.Context) (dto.ProgressOutput, error) {
	total, completed, fraction := i.svc.TotalProgress(ctx)
	return dto.ProgressOutput{TotalLevels: total, CompletedLevels: completed, Fraction: fraction}, nil
}

func toLevelOutput(l domain.Level) dto.LevelOutput {
	out := dto.LevelOutput{
		Number:      l.Number,
		Title:       l.Title,
		Description: l.Description,
		Theme:       string(l.Theme),
		World:       l.Theme.DisplayName(),
		RequiredXP:  l.RequiredXP,
		Rewards:     l.Rewards,
		Unlocked:    l.Unlocked,
		Completed:   l.Completed,
		Progress:    l.Progress(),
	}
	for _, c := range l.Physical {
		out.Physical = append(out.Physical, dto.PhysicalChallengeOutput{
			ID:           c.ID,
			Title:        c.Title,
			Description:  c.Description,
			ActivityType: c.ActivityType,
			Target:       c.Target,
			Unit:         c.Unit,
			Completed:    c.Completed,
		})
	}
	for _, c := range l.Mindfulness {
		out.Mindfulness = append(out.Mindfulness, dto.MindfulnessChallengeOutput{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			DurationMin: c.DurationMin,
			Kind:        string(c.Kind),
			Completed:   c.Completed,
		})
	}
	return out
}
