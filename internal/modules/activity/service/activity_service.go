package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"healthquest/internal/modules/activity/domain"
	activityout "healthquest/internal/modules/activity/port/out"
	"healthquest/internal/platform/clock"
	apperrors "healthquest/internal/platform/errors"
	"healthquest/internal/platform/id"
)

// ActivityService owns the in-memory ledger. Memory is authoritative; the
// snapshot store and the history projector are both write-behind, and a
// failed write is logged and swallowed.
type ActivityService struct {
	mu        sync.Mutex
	ledger    domain.Ledger
	store     activityout.LedgerStore
	projector activityout.HistoryProjector
	clock     clock.Clock
	ids       id.Generator
	log       *slog.Logger
}

func NewActivityService(
	ctx context.Context,
	store activityout.LedgerStore,
	projector activityout.HistoryProjector,
	clk clock.Clock,
	ids id.Generator,
	log *slog.Logger,
) (*ActivityService, error) {
	ledger, err := store.Load(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		ledger = domain.Ledger{}
	} else if err != nil {
		return nil, err
	}
	return &ActivityService{
		ledger:    ledger,
		store:     store,
		projector: projector,
		clock:     clk,
		ids:       ids,
		log:       log,
	}, nil
}

// Log appends one activity block under today and reports the day's new total.
func (s *ActivityService) Log(ctx context.Context, activityType domain.ActivityType, minutes int, intensity domain.Intensity, description string) (domain.LogEntry, int, error) {
	if err := activityType.Validate(); err != nil {
		return domain.LogEntry{}, 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := intensity.Validate(); err != nil {
		return domain.LogEntry{}, 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if minutes < 0 {
		return domain.LogEntry{}, 0, fmt.Errorf("%w: negative duration", apperrors.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	entry := domain.LogEntry{
		ID:          s.ids.New(),
		Type:        activityType,
		DurationMin: minutes,
		Intensity:   intensity,
		Description: description,
		CreatedAt:   now,
	}
	s.ledger.Append(now, entry)
	s.persist(ctx)
	if err := s.projector.UpsertEntry(ctx, entry); err != nil {
		s.log.Warn("history projection failed", "entry", entry.ID, "err", err)
	}
	minutesToday, _ := s.ledger.TodayTotals(now)
	return entry, minutesToday, nil
}

// LogSteps converts a raw step count into a walking block.
func (s *ActivityService) LogSteps(ctx context.Context, steps int) (domain.LogEntry, int, error) {
	if steps < 0 {
		return domain.LogEntry{}, 0, fmt.Errorf("%w: negative step count", apperrors.ErrInvalidInput)
	}
	minutes := steps / domain.StepsPerMinute
	description := fmt.Sprintf("Imported %d steps", steps)
	return s.Log(ctx, domain.ActivityWalking, minutes, domain.IntensityLight, description)
}

func (s *ActivityService) UpdateMood(ctx context.Context, mood domain.Mood, note string) (domain.CheckIn, error) {
	if err := mood.Validate(); err != nil {
		return domain.CheckIn{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	checkIn := s.ledger.UpsertMood(s.clock.Now(), mood, note)
	s.persist(ctx)
	return checkIn, nil
}

func (s *ActivityService) UpdateEnergy(ctx context.Context, energy domain.Energy) (domain.CheckIn, error) {
	if err := energy.Validate(); err != nil {
		return domain.CheckIn{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	checkIn := s.ledger.UpsertEnergy(s.clock.Now(), energy)
	s.persist(ctx)
	return checkIn, nil
}

// CompleteMiniGame records the result and logs the derived activity block
// under the game's mapped type.
func (s *ActivityService) CompleteMiniGame(ctx context.Context, kind domain.MiniGameKind, score, minutes int) (domain.MiniGameResult, domain.LogEntry, error) {
	if err := kind.Validate(); err != nil {
		return domain.MiniGameResult{}, domain.LogEntry{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if score < 0 || minutes < 0 {
		return domain.MiniGameResult{}, domain.LogEntry{}, fmt.Errorf("%w: negative mini-game result", apperrors.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	result := domain.MiniGameResult{
		ID:          s.ids.New(),
		Kind:        kind,
		Score:       score,
		DurationMin: minutes,
		CompletedAt: now,
	}
	entry := domain.LogEntry{
		ID:          s.ids.New(),
		Type:        kind.ActivityType(),
		DurationMin: minutes,
		Intensity:   domain.IntensityModerate,
		Description: fmt.Sprintf("Mini-game: %s (score %d)", kind, score),
		CreatedAt:   now,
	}
	s.ledger.MiniGames = append(s.ledger.MiniGames, result)
	s.ledger.Append(now, entry)
	s.persist(ctx)
	if err := s.projector.UpsertMiniGame(ctx, result); err != nil {
		s.log.Warn("history projection failed", "result", result.ID, "err", err)
	}
	if err := s.projector.UpsertEntry(ctx, entry); err != nil {
		s.log.Warn("history projection failed", "entry", entry.ID, "err", err)
	}
	return result, entry, nil
}

func (s *ActivityService) TodaysProgress(_ context.Context, activityType domain.ActivityType) (float64, int, error) {
	if err := activityType.Validate(); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	return s.ledger.TodaysProgress(now, activityType), s.ledger.MinutesForToday(now, activityType), nil
}

// Snapshot returns the ledger and the current time for read-side mapping.
func (s *ActivityService) Snapshot(_ context.Context) (domain.Ledger, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger, s.clock.Now()
}

// Reindex drops and rebuilds the history projection from the ledger.
func (s *ActivityService) Reindex(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.projector.Reset(ctx); err != nil {
		return fmt.Errorf("reset history projection: %w", err)
	}
	for _, day := range s.ledger.Days {
		for _, entry := range day.Entries {
			if err := s.projector.UpsertEntry(ctx, entry); err != nil {
				return fmt.Errorf("project entry %s: %w", entry.ID, err)
			}
		}
	}
	for _, result := range s.ledger.MiniGames {
		if err := s.projector.UpsertMiniGame(ctx, result); err != nil {
			return fmt.Errorf("project mini-game %s: %w", result.ID, err)
		}
	}
	return nil
}

func (s *ActivityService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.ledger); err != nil {
		s.log.Warn("activity snapshot write failed", "err", err)
	}
}
