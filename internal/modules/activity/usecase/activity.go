package usecase

import (
	"context"

	"healthquest/internal/modules/activity/domain"
	"healthquest/internal/modules/activity/dto"
	activityin "healthquest/internal/modules/activity/port/in"
	"healthquest/internal/modules/activity/service"
	progressiondto "healthquest/internal/modules/progression/dto"
	progressionin "healthquest/internal/modules/progression/port/in"
)

// Interactor maps the activity service onto the inbound port and applies the
// experience policy: 2 XP per logged minute, 1 XP per 10 imported steps and
// 10 XP per mood check-in. Mini-games and energy updates award nothing on
// their own.
type Interactor struct {
	svc         *service.ActivityService
	progression progressionin.Usecase
}

func NewInteractor(svc *service.ActivityService, progression progressionin.Usecase) activityin.Usecase {
	return &Interactor{svc: svc, progression: progression}
}

func (i *Interactor) LogActivity(ctx context.Context, input dto.LogInput) (dto.LogOutput, error) {
	intensity := domain.Intensity(input.Intensity)
	if input.Intensity == "" {
		intensity = domain.IntensityModerate
	}
	entry, totalToday, err := i.svc.Log(ctx, domain.ActivityType(input.Type), input.Minutes, intensity, input.Description)
	if err != nil {
		return dto.LogOutput{}, err
	}
	return i.award(ctx, entry, totalToday, entry.DurationMin*progressiondto.XPPerActivityMinute)
}

func (i *Interactor) LogSteps(ctx context.Context, steps int) (dto.LogOutput, error) {
	entry, totalToday, err := i.svc.LogSteps(ctx, steps)
	if err != nil {
		return dto.LogOutput{}, err
	}
	return i.award(ctx, entry, totalToday, steps/progressiondto.StepsPerXP)
}

func (i *Interactor) QuickLog(ctx context.Context, activityType string, minutes int) (dto.LogOutput, error) {
	return i.LogActivity(ctx, dto.LogInput{Type: activityType, Minutes: minutes})
}

func (i *Interactor) UpdateMood(ctx context.Context, mood, note string) (dto.CheckInOutput, error) {
	checkIn, err := i.svc.UpdateMood(ctx, domain.Mood(mood), note)
	if err != nil {
		return dto.CheckInOutput{}, err
	}
	if _, err := i.progression.AddExperience(ctx, progressiondto.XPMoodCheckIn); err != nil {
		return dto.CheckInOutput{}, err
	}
	out := toCheckInOutput(checkIn)
	out.XPAwarded = progressiondto.XPMoodCheckIn
	return out, nil
}

func (i *Interactor) UpdateEnergy(ctx context.Context, energy string) (dto.CheckInOutput, error) {
	checkIn, err := i.svc.UpdateEnergy(ctx, domain.Energy(energy))
	if err != nil {
		return dto.CheckInOutput{}, err
	}
	return toCheckInOutput(checkIn), nil
}

func (i *Interactor) CompleteMiniGame(ctx context.Context, input dto.MiniGameInput) (dto.MiniGameOutput, error) {
	result, entry, err := i.svc.CompleteMiniGame(ctx, domain.MiniGameKind(input.Kind), input.Score, input.Minutes)
	if err != nil {
		return dto.MiniGameOutput{}, err
	}
	return dto.MiniGameOutput{
		ResultID: result.ID,
		Kind:     string(result.Kind),
		LoggedAs: string(entry.Type),
		Minutes:  entry.DurationMin,
	}, nil
}

func (i *Interactor) TodaysProgress(ctx context.Context, activityType string) (dto.ProgressOutput, error) {
	ratio, minutes, err := i.svc.TodaysProgress(ctx, domain.ActivityType(activityType))
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	return dto.ProgressOutput{
		Type:          activityType,
		MinutesToday:  minutes,
		TargetMinutes: domain.ActivityType(activityType).TargetMinutes(),
		Ratio:         ratio,
	}, nil
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	ledger, now := i.svc.Snapshot(ctx)
	minutes, steps := ledger.TodayTotals(now)
	out := dto.SummaryOutput{
		Date:         now,
		TotalMinutes: minutes,
		Steps:        steps,
		WeeklyStreak: ledger.WeeklyStreak(now),
	}
	if ledger.CheckIn != nil {
		checkIn := toCheckInOutput(*ledger.CheckIn)
		out.CheckIn = &checkIn
	}
	for _, t := range domain.ActivityTypes() {
		out.Progress = append(out.Progress, dto.ProgressOutput{
			Type:          string(t),
			MinutesToday:  ledger.MinutesForToday(now, t),
			TargetMinutes: t.TargetMinutes(),
			Ratio:         ledger.TodaysProgress(now, t),
		})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func (i *Interactor) award(ctx context.Context, entry domain.LogEntry, totalToday, xp int) (dto.LogOutput, error) {
	if xp > 0 {
		if _, err := i.progression.AddExperience(ctx, xp); err != nil {
			return dto.LogOutput{}, err
		}
	}
	return dto.LogOutput{
		EntryID:           entry.ID,
		Type:              string(entry.Type),
		Minutes:           entry.DurationMin,
		TotalMinutesToday: totalToday,
		XPAwarded:         xp,
	}, nil
}

func toCheckInOutput(c domain.CheckIn) dto.CheckInOutput {
	return dto.CheckInOutput{Date: c.Date, Mood: string(c.Mood), Energy: string(c.Energy), Note: c.Note}
}
