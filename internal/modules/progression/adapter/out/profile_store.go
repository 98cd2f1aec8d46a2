package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"healthquest/internal/modules/progression/domain"
	progressionout "healthquest/internal/modules/progression/port/out"
	apperrors "healthquest/internal/platform/errors"
)

type FileProfileStore struct {
	path string
}

func NewFileProfileStore(path string) progressionout.ProfileStore {
	return &FileProfileStore{path: path}
}

func (s *FileProfileStore) Load(_ context.Context) (domain.Profile, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Profile{}, apperrors.ErrNotFound
		}
		return domain.Profile{}, fmt.Errorf("read profile snapshot: %w", err)
	}
	profile := domain.Profile{}
	if err := json.Unmarshal(payload, &profile); err != nil {
		return domain.Profile{}, fmt.Errorf("decode profile snapshot: %w", err)
	}
	return profile, nil
}

func (s *FileProfileStore) Save(_ context.Context, profile domain.Profile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	payload, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write profile snapshot: %w", err)
	}
	return nil
}
