package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"healthquest/internal/modules/minigame/domain"
	"healthquest/internal/modules/minigame/dto"
	minigameout "healthquest/internal/modules/minigame/port/out"
)

// MiniGameService verifies plugin manifests and brokers game rounds through
// the host. A plugin binary must exist, match its checksum, and survive a
// lifecycle probe before any game is played.
type MiniGameService struct {
	store minigameout.ManifestStore
	host  minigameout.Host
}

func NewMiniGameService(store minigameout.ManifestStore, host minigameout.Host) *MiniGameService {
	return &MiniGameService{store: store, host: host}
}

func (s *MiniGameService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *MiniGameService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *MiniGameService) ListGames(ctx context.Context, pluginName string) ([]dto.GameInfo, error) {
	manifest, err := s.getRunnableManifest(ctx, pluginName, domain.CapabilityMiniGame)
	if err != nil {
		return nil, err
	}
	games, err := s.host.ListGames(ctx, manifest)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GameInfo, 0, len(games))
	for _, game := range games {
		out = append(out, dto.GameInfo{
			ID:             game.ID,
			Title:          game.Title,
			Description:    game.Description,
			Kind:           game.Kind,
			DefaultMinutes: game.DefaultMinutes,
			TimeoutMS:      game.TimeoutMS,
		})
	}
	return out, nil
}

// Play runs one round and returns the plugin's result. Routing the result
// into the activity ledger is the caller's job.
func (s *MiniGameService) Play(ctx context.Context, input dto.PlayInput) (domain.PlayResult, error) {
	manifest, err := s.getRunnableManifest(ctx, input.PluginName, domain.CapabilityMiniGame)
	if err != nil {
		return domain.PlayResult{}, err
	}
	if input.InputJSON != "" && !json.Valid([]byte(input.InputJSON)) {
		return domain.PlayResult{}, fmt.Errorf("input-json must be valid JSON")
	}
	req := domain.PlayRequest{
		GameID:    input.GameID,
		InputJSON: input.InputJSON,
		Context: domain.PlayContext{
			DataDir:   input.DataDir,
			Player:    input.Player,
			SessionID: input.SessionID,
			Cwd:       input.Cwd,
			Env:       input.Env,
		},
	}
	if err := req.Validate(); err != nil {
		return domain.PlayResult{}, err
	}
	games, err := s.host.ListGames(ctx, manifest)
	if err != nil {
		return domain.PlayResult{}, err
	}
	if _, err := requireGame(games, input.GameID); err != nil {
		return domain.PlayResult{}, err
	}
	return s.host.Play(ctx, manifest, req)
}

func (s *MiniGameService) PrepareTTY(ctx context.Context, input dto.TTYPrepareInput) (dto.TTYPrepareOutput, error) {
	manifest, err := s.getRunnableManifest(ctx, input.PluginName, domain.CapabilityFullscreenTTY)
	if err != nil {
		return dto.TTYPrepareOutput{}, err
	}
	if input.InputJSON != "" && !json.Valid([]byte(input.InputJSON)) {
		return dto.TTYPrepareOutput{}, fmt.Errorf("input-json must be valid JSON")
	}
	req := domain.PlayRequest{
		GameID:    input.GameID,
		InputJSON: input.InputJSON,
		Context: domain.PlayContext{
			DataDir:   input.DataDir,
			Player:    input.Player,
			SessionID: input.SessionID,
			Cwd:       input.Cwd,
			Env:       input.Env,
		},
	}
	if err := req.Validate(); err != nil {
		return dto.TTYPrepareOutput{}, err
	}
	games, err := s.host.ListGames(ctx, manifest)
	if err != nil {
		return dto.TTYPrepareOutput{}, err
	}
	if _, err := requireGame(games, input.GameID); err != nil {
		return dto.TTYPrepareOutput{}, err
	}

	plan, err := s.host.PrepareTTY(ctx, manifest, req)
	if err != nil {
		return dto.TTYPrepareOutput{}, err
	}
	if err := plan.Validate(); err != nil {
		return dto.TTYPrepareOutput{}, err
	}
	return dto.TTYPrepareOutput{
		PluginName: input.PluginName,
		GameID:     input.GameID,
		Argv:       plan.Argv,
		Cwd:        plan.Cwd,
		Env:        plan.Env,
	}, nil
}

func (s *MiniGameService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *MiniGameService) getRunnableManifest(ctx context.Context, pluginName string, requiredCapability domain.Capability) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if item.Name == pluginName {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("plugin %q not found", pluginName)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginDisabled, pluginName)
	}
	if requiredCapability != "" && !manifest.HasCapability(requiredCapability) {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, requiredCapability)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, pluginName)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func requireGame(games []domain.GameDescriptor, gameID string) (domain.GameDescriptor, error) {
	for _, game := range games {
		if err := game.Validate(); err != nil {
			return domain.GameDescriptor{}, err
		}
		if game.ID == gameID {
			return game, nil
		}
	}
	return domain.GameDescriptor{}, fmt.Errorf("%w: %s", domain.ErrGameNotFound, gameID)
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
