package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"healthquest/internal/modules/progression/domain"
	progressionout "healthquest/internal/modules/progression/port/out"
	apperrors "healthquest/internal/platform/errors"
)

// ProfileService owns the in-memory profile. Memory is authoritative for the
// process lifetime; every mutation writes the snapshot through the store and
// a failed write is logged and swallowed.
type ProfileService struct {
	mu      sync.Mutex
	profile domain.Profile
	store   progressionout.ProfileStore
	log     *slog.Logger
}

func NewProfileService(ctx context.Context, store progressionout.ProfileStore, log *slog.Logger) (*ProfileService, error) {
	profile, err := store.Load(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		profile = domain.NewProfile()
	} else if err != nil {
		return nil, err
	}
	return &ProfileService{profile: profile, store: store, log: log}, nil
}

func (s *ProfileService) Get(_ context.Context) domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *ProfileService) Setup(ctx context.Context, name string, fitness domain.FitnessLevel, preferred []string) (domain.Profile, error) {
	if err := fitness.Validate(); err != nil {
		return domain.Profile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Name = name
	s.profile.Fitness = fitness
	s.profile.PreferredActivities = preferred
	s.persist(ctx)
	return s.profile, nil
}

func (s *ProfileService) CompleteOnboarding(ctx context.Context) domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.OnboardingDone = true
	s.persist(ctx)
	return s.profile
}

func (s *ProfileService) AddExperience(ctx context.Context, amount int) (domain.Profile, error) {
	if amount < 0 {
		return domain.Profile{}, apperrors.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.AddExperience(amount)
	s.persist(ctx)
	return s.profile, nil
}

func (s *ProfileService) AddAchievement(ctx context.Context, id string) domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile.AddAchievement(id) {
		s.persist(ctx)
	}
	return s.profile
}

func (s *ProfileService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.profile); err != nil {
		s.log.Warn("profile snapshot write failed", "err", err)
	}
}
