package usecase_test

import (
	"context"
	"path/filepath"
	"testing"

	progressionout "healthquest/internal/modules/progression/adapter/out"
	"healthquest/internal/modules/progression/dto"
	progressionin "healthquest/internal/modules/progression/port/in"
	"healthquest/internal/modules/progression/service"
	"healthquest/internal/modules/progression/usecase"
	apperrors "healthquest/internal/platform/errors"
	"healthquest/internal/platform/observability"
)

func newInteractor(t *testing.T) (context.Context, string, progressionin.Usecase) {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profile.json")
	svc, err := service.NewProfileService(ctx, progressionout.NewFileProfileStore(path), observability.Discard())
	if err != nil {
		t.Fatalf("new profile service: %v", err)
	}
	return ctx, path, usecase.NewInteractor(svc)
}

func TestFirstLaunchProfileDefaults(t *testing.T) {
	t.Parallel()
	ctx, _, uc := newInteractor(t)
	out, err := uc.Get(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if out.CurrentLevel != 1 || out.TotalXP != 0 || out.OnboardingDone {
		t.Fatalf("unexpected first-launch profile: %+v", out)
	}
	if out.FitnessLevel != "beginner" {
		t.Fatalf("expected beginner fitness, got %s", out.FitnessLevel)
	}
}

func TestSetupAndOnboardingPersistAcrossRestart(t *testing.T) {
	t.Parallel()
	ctx, path, uc := newInteractor(t)
	if _, err := uc.Setup(ctx, dto.SetupInput{
		Name:                "Ada",
		FitnessLevel:        "intermediate",
		PreferredActivities: []string{"yoga", "cycling"},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := uc.CompleteOnboarding(ctx); err != nil {
		t.Fatalf("complete onboarding: %v", err)
	}
	if _, err := uc.AddExperience(ctx, 1200); err != nil {
		t.Fatalf("add experience: %v", err)
	}

	svc, err := service.NewProfileService(ctx, progressionout.NewFileProfileStore(path), observability.Discard())
	if err != nil {
		t.Fatalf("reload profile service: %v", err)
	}
	reloaded, err := usecase.NewInteractor(svc).Get(ctx)
	if err != nil {
		t.Fatalf("get reloaded profile: %v", err)
	}
	if reloaded.Name != "Ada" || reloaded.FitnessLevel != "intermediate" || !reloaded.OnboardingDone {
		t.Fatalf("profile did not survive restart: %+v", reloaded)
	}
	if reloaded.TotalXP != 1200 || reloaded.CurrentLevel != 2 {
		t.Fatalf("expected 1200 xp at level 2, got %d at %d", reloaded.TotalXP, reloaded.CurrentLevel)
	}
}

func TestSetupRejectsUnknownFitnessLevel(t *testing.T) {
	t.Parallel()
	ctx, _, uc := newInteractor(t)
	if _, err := uc.Setup(ctx, dto.SetupInput{Name: "Ada", FitnessLevel: "olympian"}); err == nil {
		t.Fatalf("unknown fitness level should fail")
	}
}

func TestAddExperienceRejectsNegativeAmount(t *testing.T) {
	t.Parallel()
	ctx, _, uc := newInteractor(t)
	if _, err := uc.AddExperience(ctx, -10); err != apperrors.ErrInvalidInput {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestAddAchievementIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx, _, uc := newInteractor(t)
	if _, err := uc.AddAchievement(ctx, "Mountain Badge"); err != nil {
		t.Fatalf("add achievement: %v", err)
	}
	out, err := uc.AddAchievement(ctx, "Mountain Badge")
	if err != nil {
		t.Fatalf("repeat achievement: %v", err)
	}
	if len(out.Achievements) != 1 {
		t.Fatalf("expected one achievement, got %v", out.Achievements)
	}
}
