package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"healthquest/internal/modules/quest/domain"
	questout "healthquest/internal/modules/quest/port/out"
	apperrors "healthquest/internal/platform/errors"
)

// QuestService owns the in-memory level catalog. A fresh data dir starts
// from the seed catalog; snapshot write failures are logged and swallowed.
type QuestService struct {
	mu      sync.Mutex
	catalog domain.Catalog
	store   questout.CatalogStore
	log     *slog.Logger
}

func NewQuestService(ctx context.Context, store questout.CatalogStore, seed domain.Catalog, log *slog.Logger) (*QuestService, error) {
	catalog, err := store.Load(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		catalog = seed
	} else if err != nil {
		return nil, err
	}
	return &QuestService{catalog: catalog, store: store, log: log}, nil
}

func (s *QuestService) List(_ context.Context) []domain.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	levels := make([]domain.Level, len(s.catalog.Levels))
	copy(levels, s.catalog.Levels)
	return levels
}

func (s *QuestService) Get(_ context.Context, number int) (domain.Level, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	level, ok := s.catalog.Level(number)
	if !ok {
		return domain.Level{}, apperrors.ErrNotFound
	}
	return level, nil
}

func (s *QuestService) Available(_ context.Context) []domain.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Available()
}

func (s *QuestService) Current(_ context.Context) (domain.Level, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	level, ok := s.catalog.Current()
	if !ok {
		return domain.Level{}, apperrors.ErrNotFound
	}
	return level, nil
}

// CompleteLevel closes out a level. The bool is false when nothing changed.
func (s *QuestService) CompleteLevel(ctx context.Context, number int) (domain.Level, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	level, changed := s.catalog.CompleteLevel(number)
	if changed {
		s.persist(ctx)
	}
	return level, changed
}

func (s *QuestService) CompletePhysical(ctx context.Context, number int, challengeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.catalog.CompletePhysical(number, challengeID)
	if changed {
		s.persist(ctx)
	}
	return changed
}

func (s *QuestService) CompleteMindfulness(ctx context.Context, number int, challengeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.catalog.CompleteMindfulness(number, challengeID)
	if changed {
		s.persist(ctx)
	}
	return changed
}

func (s *QuestService) CompleteMindfulnessByKind(ctx context.Context, kind domain.MindfulnessKind) (domain.Level, domain.MindfulnessChallenge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	level, challenge, changed := s.catalog.CompleteMindfulnessByKind(kind)
	if changed {
		s.persist(ctx)
	}
	return level, challenge, changed
}

func (s *QuestService) TotalProgress(_ context.Context) (total, completed int, fraction float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, level := range s.catalog.Levels {
		if level.Completed {
			completed++
		}
	}
	return len(s.catalog.Levels), completed, s.catalog.TotalProgress()
}

func (s *QuestService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.catalog); err != nil {
		s.log.Warn("levels snapshot write failed", "err", err)
	}
}
