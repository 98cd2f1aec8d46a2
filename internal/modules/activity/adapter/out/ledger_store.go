package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"healthquest/internal/modules/activity/domain"
	activityout "healthquest/internal/modules/activity/port/out"
	apperrors "healthquest/internal/platform/errors"
)

type FileLedgerStore struct {
	path string
}

func NewFileLedgerStore(path string) activityout.LedgerStore {
	return &FileLedgerStore{path: path}
}

func (s *FileLedgerStore) Load(_ context.Context) (domain.Ledger, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Ledger{}, apperrors.ErrNotFound
		}
		return domain.Ledger{}, fmt.Errorf("read activity snapshot: %w", err)
	}
	ledger := domain.Ledger{}
	if err := json.Unmarshal(payload, &ledger); err != nil {
		return domain.Ledger{}, fmt.Errorf("decode activity snapshot: %w", err)
	}
	return ledger, nil
}

func (s *FileLedgerStore) Save(_ context.Context, ledger domain.Ledger) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	payload, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal activity snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write activity snapshot: %w", err)
	}
	return nil
}
