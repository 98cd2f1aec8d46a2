package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"healthquest/internal/modules/mindfulness/domain"
	"healthquest/internal/modules/mindfulness/dto"
	mindfulnessin "healthquest/internal/modules/mindfulness/port/in"
	mindfulnessout "healthquest/internal/modules/mindfulness/port/out"
	"healthquest/internal/modules/mindfulness/service"
	progressionin "healthquest/internal/modules/progression/port/in"
	questin "healthquest/internal/modules/quest/port/in"
	apperrors "healthquest/internal/platform/errors"
)

// Interactor maps the session machine onto the inbound port and owns the
// completion flow: tick the matching mindfulness challenge in the current
// level, award the flat session XP, and archive the sitting. The hook runs on
// the timer goroutine, so failures are logged, never surfaced.
type Interactor struct {
	machine     *service.SessionMachine
	quest       questin.Usecase
	progression progressionin.Usecase
	archives    []mindfulnessout.SessionArchive
	log         *slog.Logger
}

func NewInteractor(
	machine *service.SessionMachine,
	quest questin.Usecase,
	progression progressionin.Usecase,
	log *slog.Logger,
	archives ...mindfulnessout.SessionArchive,
) mindfulnessin.Usecase {
	i := &Interactor{machine: machine, quest: quest, progression: progression, archives: archives, log: log}
	machine.SetOnComplete(i.sessionCompleted)
	return i
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.SnapshotOutput, error) {
	sessionType := domain.SessionType(input.Type)
	if err := sessionType.Validate(); err != nil {
		return dto.SnapshotOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if input.DurationMin <= 0 {
		return dto.SnapshotOutput{}, fmt.Errorf("%w: duration must be positive", apperrors.ErrInvalidInput)
	}
	if _, started := i.machine.Start(input.ChallengeID, input.Title, sessionType, input.DurationMin); !started {
		return dto.SnapshotOutput{}, apperrors.ErrActiveSessionExists
	}
	return i.Snapshot(ctx)
}

func (i *Interactor) Pause(ctx context.Context) (dto.SnapshotOutput, error) {
	if _, ok := i.machine.Pause(); !ok {
		return dto.SnapshotOutput{}, apperrors.ErrNoActiveSession
	}
	return i.Snapshot(ctx)
}

func (i *Interactor) Resume(ctx context.Context) (dto.SnapshotOutput, error) {
	if _, ok := i.machine.Resume(); !ok {
		return dto.SnapshotOutput{}, apperrors.ErrNoActiveSession
	}
	return i.Snapshot(ctx)
}

func (i *Interactor) End(_ context.Context) error {
	if !i.machine.End() {
		return apperrors.ErrNoActiveSession
	}
	return nil
}

func (i *Interactor) Snapshot(_ context.Context) (dto.SnapshotOutput, error) {
	state, session := i.machine.Snapshot()
	out := dto.SnapshotOutput{
		State:        string(state),
		ChallengeID:  session.ChallengeID,
		Title:        session.Title,
		Type:         string(session.Type),
		StartedAt:    session.StartedAt,
		DurationSec:  session.DurationSec,
		RemainingSec: session.Remaining,
		ElapsedSec:   session.Elapsed(),
	}
	if state != domain.StateIdle {
		phase := session.Phase()
		out.Phase = string(phase)
		out.Guidance = domain.Guidance(session.Type, phase)
		if session.Type == domain.TypeBreathing {
			out.BreathingCue = string(domain.BreathingCue(session.Remaining))
		}
	}
	return out, nil
}

func (i *Interactor) sessionCompleted(session domain.Session) {
	ctx := context.Background()
	if _, err := i.quest.CompleteMindfulnessByKind(ctx, string(session.Type)); err != nil {
		i.log.Warn("challenge tick after session failed", "type", string(session.Type), "err", err)
	}
	if _, err := i.progression.AddExperience(ctx, domain.XPSessionCompleted); err != nil {
		i.log.Warn("session xp award failed", "err", err)
	}
	for _, archive := range i.archives {
		if err := archive.Archive(ctx, session); err != nil {
			i.log.Warn("session archive failed", "err", err)
		}
	}
}
