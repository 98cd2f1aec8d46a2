package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"healthquest/internal/modules/minigame/domain"
	"healthquest/internal/modules/minigame/dto"
	"healthquest/internal/modules/minigame/service"
)

type fakeStore struct {
	manifests []domain.Manifest
	err       error
}

func (f *fakeStore) Load(context.Context) ([]domain.Manifest, error) {
	return f.manifests, f.err
}

type fakeHost struct {
	lifecycleErr error
	games        []domain.GameDescriptor
	result       domain.PlayResult
	plan         domain.TTYPlan
	played       []domain.PlayRequest
}

func (f *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return f.lifecycleErr }
func (f *fakeHost) GetMetadata(_ context.Context, m domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: m.Name, Version: m.Version, Capabilities: m.Capabilities}, nil
}
func (f *fakeHost) ListGames(context.Context, domain.Manifest) ([]domain.GameDescriptor, error) {
	return f.games, nil
}
func (f *fakeHost) Play(_ context.Context, _ domain.Manifest, req domain.PlayRequest) (domain.PlayResult, error) {
	f.played = append(f.played, req)
	return f.result, nil
}
func (f *fakeHost) PrepareTTY(context.Context, domain.Manifest, domain.PlayRequest) (domain.TTYPlan, error) {
	return f.plan, nil
}

// writeBinary drops a fake plugin binary on disk and returns its path and
// checksum, so manifests in tests verify against real bytes.
func writeBinary(t *testing.T, dir, name string) (string, string) {
	t.Helper()
	path := filepath.Join(dir, name)
	payload := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(path, payload, 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256(payload)
	return path, hex.EncodeToString(hash[:])
}

func manifestFor(binary, sum string) domain.Manifest {
	return domain.Manifest{
		Name:         "reference",
		Version:      "1.0.0",
		Binary:       binary,
		SHA256:       sum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityMiniGame, domain.CapabilityFullscreenTTY},
	}
}

func plankGame() domain.GameDescriptor {
	return domain.GameDescriptor{ID: "plank-hold", Title: "Plank Hold", Kind: "plank", DefaultMinutes: 2}
}

func playInput(dataDir string) dto.PlayInput {
	return dto.PlayInput{
		PluginName: "reference",
		GameID:     "plank-hold",
		DataDir:    dataDir,
		Cwd:        dataDir,
	}
}

func TestListValidatesAndRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	binary, sum := writeBinary(t, t.TempDir(), "reference")
	store := &fakeStore{manifests: []domain.Manifest{manifestFor(binary, sum)}}
	svc := service.NewMiniGameService(store, &fakeHost{})

	plugins, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(plugins) != 1 || plugins[0].Name != "reference" || len(plugins[0].Capabilities) != 2 {
		t.Fatalf("unexpected plugin info: %+v", plugins)
	}

	store.manifests = append(store.manifests, manifestFor(binary, sum))
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("duplicate plugin names must fail")
	}
}

func TestDoctorReportsBinaryAndChecksumHealth(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	binary, sum := writeBinary(t, dir, "reference")
	healthy := manifestFor(binary, sum)

	missing := manifestFor(filepath.Join(dir, "gone"), sum)
	missing.Name = "missing"

	tampered := manifestFor(binary, strings.Repeat("00", 32))
	tampered.Name = "tampered"

	svc := service.NewMiniGameService(&fakeStore{manifests: []domain.Manifest{healthy, missing, tampered}}, &fakeHost{})
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	byName := map[string]dto.DoctorResult{}
	for _, r := range results {
		byName[r.Name] = r
	}
	if r := byName["reference"]; !r.BinaryReachable || !r.ChecksumValid || !r.LifecycleOK || r.Error != "" {
		t.Fatalf("healthy plugin should pass all probes, got %+v", r)
	}
	if r := byName["missing"]; r.BinaryReachable || r.Error == "" {
		t.Fatalf("missing binary must be reported, got %+v", r)
	}
	if r := byName["tampered"]; !r.BinaryReachable || r.ChecksumValid || r.Error != "checksum mismatch" {
		t.Fatalf("tampered binary must be reported, got %+v", r)
	}
}

func TestPlayPreconditions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	binary, sum := writeBinary(t, dir, "reference")
	host := &fakeHost{games: []domain.GameDescriptor{plankGame()}}

	t.Run("unknown plugin", func(t *testing.T) {
		t.Parallel()
		svc := service.NewMiniGameService(&fakeStore{}, host)
		if _, err := svc.Play(context.Background(), playInput(dir)); err == nil {
			t.Fatalf("unknown plugin must fail")
		}
	})

	t.Run("disabled plugin", func(t *testing.T) {
		t.Parallel()
		m := manifestFor(binary, sum)
		m.Enabled = false
		svc := service.NewMiniGameService(&fakeStore{manifests: []domain.Manifest{m}}, host)
		if _, err := svc.Play(context.Background(), playInput(dir)); !errors.Is(err, domain.ErrPluginDisabled) {
			t.Fatalf("expected disabled error, got %v", err)
		}
	})

	t.Run("capability missing", func(t *testing.T) {
		t.Parallel()
		m := manifestFor(binary, sum)
		m.Capabilities = []domain.Capability{domain.CapabilityFullscreenTTY}
		svc := service.NewMiniGameService(&fakeStore{manifests: []domain.Manifest{m}}, host)
		if _, err := svc.Play(context.Background(), playInput(dir)); !errors.Is(err, domain.ErrCapabilityMissing) {
			t.Fatalf("expected capability error, got %v", err)
		}
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		t.Parallel()
		m := manifestFor(binary, strings.Repeat("00", 32))
		svc := service.NewMiniGameService(&fakeStore{manifests: []domain.Manifest{m}}, host)
		if _, err := svc.Play(context.Background(), playInput(dir)); !errors.Is(err, domain.ErrChecksumMismatch) {
			t.Fatalf("expected checksum error, got %v", err)
		}
	})

	t.Run("unknown game", func(t *testing.T) {
		t.Parallel()
		svc := service.NewMiniGameService(&fakeStore{manifests: []domain.Manifest{manifestFor(binary, sum)}}, host)
		input := playInput(dir)
		input.GameID = "unknown-game"
		if _, err := svc.Play(context.Background(), input); !errors.Is(err, domain.ErrGameNotFound) {
			t.Fatalf("expected game not found, got %v", err)
		}
	})

	t.Run("malformed input json", func(t *testing.T) {
		t.Parallel()
		svc := service.NewMiniGameService(&fakeStore{manifests: []domain.Manifest{manifestFor(binary, sum)}}, host)
		input := playInput(dir)
		input.InputJSON = "{not json"
		if _, err := svc.Play(context.Background(), input); err == nil {
			t.Fatalf("malformed input json must fail")
		}
	})
}

func TestPlayRunsTheRound(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	binary, sum := writeBinary(t, dir, "reference")
	host := &fakeHost{
		games:  []domain.GameDescriptor{plankGame()},
		result: domain.PlayResult{Kind: "plank", Score: 120, Minutes: 2, ExitCode: 0},
	}
	svc := service.NewMiniGameService(&fakeStore{manifests: []domain.Manifest{manifestFor(binary, sum)}}, host)

	result, err := svc.Play(context.Background(), playInput(dir))
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if result.Kind != "plank" || result.Score != 120 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(host.played) != 1 || host.played[0].GameID != "plank-hold" {
		t.Fatalf("expected one round against plank-hold, got %+v", host.played)
	}
}

func TestLifecycleTimeoutMapsToPluginTimeout(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	binary, sum := writeBinary(t, dir, "reference")
	host := &fakeHost{lifecycleErr: context.DeadlineExceeded}
	svc := service.NewMiniGameService(&fakeStore{manifests: []domain.Manifest{manifestFor(binary, sum)}}, host)

	if _, err := svc.Play(context.Background(), playInput(dir)); !errors.Is(err, domain.ErrPluginTimeout) {
		t.Fatalf("expected plugin timeout, got %v", err)
	}
}

func TestPrepareTTYValidatesThePlan(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	binary, sum := writeBinary(t, dir, "reference")
	store := &fakeStore{manifests: []domain.Manifest{manifestFor(binary, sum)}}
	host := &fakeHost{
		games: []domain.GameDescriptor{plankGame()},
		plan:  domain.TTYPlan{Argv: []string{binary, "play", "plank-hold"}, Cwd: dir},
	}
	svc := service.NewMiniGameService(store, host)

	input := dto.TTYPrepareInput{PluginName: "reference", GameID: "plank-hold", DataDir: dir, Cwd: dir}
	plan, err := svc.PrepareTTY(context.Background(), input)
	if err != nil {
		t.Fatalf("prepare tty: %v", err)
	}
	if len(plan.Argv) != 3 || plan.Cwd != dir {
		t.Fatalf("unexpected plan: %+v", plan)
	}

	host.plan = domain.TTYPlan{Cwd: dir}
	if _, err := svc.PrepareTTY(context.Background(), input); err == nil {
		t.Fatalf("plan without argv must fail")
	}
}
