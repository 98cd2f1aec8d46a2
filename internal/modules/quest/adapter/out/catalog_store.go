package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"healthquest/internal/modules/quest/domain"
	questout "healthquest/internal/modules/quest/port/out"
	apperrors "healthquest/internal/platform/errors"
)

type FileCatalogStore struct {
	path string
}

func NewFileCatalogStore(path string) questout.CatalogStore {
	return &FileCatalogStore{path: path}
}

func (s *FileCatalogStore) Load(_ context.Context) (domain.Catalog, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Catalog{}, apperrors.ErrNotFound
		}
		return domain.Catalog{}, fmt.Errorf("read levels snapshot: %w", err)
	}
	catalog := domain.Catalog{}
	if err := json.Unmarshal(payload, &catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode levels snapshot: %w", err)
	}
	return catalog, nil
}

func (s *FileCatalogStore) Save(_ context.Context, catalog domain.Catalog) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	payload, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal levels snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write levels snapshot: %w", err)
	}
	return nil
}
