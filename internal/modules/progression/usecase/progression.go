package usecase

import (
	"context"

	"healthquest/internal/modules/progression/domain"
	"healthquest/internal/modules/progression/dto"
	progressionin "healthquest/internal/modules/progression/port/in"
	"healthquest/internal/modules/progression/service"
)

type Interactor struct {
	svc *service.ProfileService
}

func NewInteractor(svc *service.ProfileService) progressionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (dto.ProfileOutput, error) {
	return toOutput(i.svc.Get(ctx)), nil
}

func (i *Interactor) Setup(ctx context.Context, input dto.SetupInput) (dto.ProfileOutput, error) {
	profile, err := i.svc.Setup(ctx, input.Name, domain.FitnessLevel(input.FitnessLevel), input.PreferredActivities)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

func (i *Interactor) CompleteOnboarding(ctx context.Context) (dto.ProfileOutput, error) {
	return toOutput(i.svc.CompleteOnboarding(ctx)), nil
}

func (i *Interactor) AddExperience(ctx context.Context, amount int) (dto.ProfileOutput, error) {
	profile, err := i.svc.AddExperience(ctx, amount)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

func (i *Interactor) AddAchievement(ctx context.Context, id string) (dto.ProfileOutput, error) {
	return toOutput(i.svc.AddAchievement(ctx, id)), nil
}

func toOutput(p domain.Profile) dto.ProfileOutput {
	return dto.ProfileOutput{
		Name:                p.Name,
		FitnessLevel:        string(p.Fitness),
		PreferredActivities: p.PreferredActivities,
		CurrentLevel:        p.CurrentLevel,
		TotalXP:             p.TotalXP,
		Achievements:        p.Achievements,
		OnboardingDone:      p.OnboardingDone,
		ProgressToNext:      p.ProgressToNextLevel(),
	}
}
