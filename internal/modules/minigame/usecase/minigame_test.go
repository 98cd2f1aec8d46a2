package usecase_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	activitydto "healthquest/internal/modules/activity/dto"
	"healthquest/internal/modules/minigame/domain"
	"healthquest/internal/modules/minigame/dto"
	minigamein "healthquest/internal/modules/minigame/port/in"
	"healthquest/internal/modules/minigame/service"
	"healthquest/internal/modules/minigame/usecase"
)

type fakeActivity struct {
	games []activitydto.MiniGameInput
}

func (f *fakeActivity) LogActivity(context.Context, activitydto.LogInput) (activitydto.LogOutput, error) {
	return activitydto.LogOutput{}, nil
}
func (f *fakeActivity) LogSteps(context.Context, int) (activitydto.LogOutput, error) {
	return activitydto.LogOutput{}, nil
}
func (f *fakeActivity) QuickLog(context.Context, string, int) (activitydto.LogOutput, error) {
	return activitydto.LogOutput{}, nil
}
func (f *fakeActivity) UpdateMood(context.Context, string, string) (activitydto.CheckInOutput, error) {
	return activitydto.CheckInOutput{}, nil
}
func (f *fakeActivity) UpdateEnergy(context.Context, string) (activitydto.CheckInOutput, error) {
	return activitydto.CheckInOutput{}, nil
}
func (f *fakeActivity) CompleteMiniGame(_ context.Context, input activitydto.MiniGameInput) (activitydto.MiniGameOutput, error) {
	f.games = append(f.games, input)
	return activitydto.MiniGameOutput{ResultID: "result-1", Kind: input.Kind, LoggedAs: "strength", Minutes: input.Minutes}, nil
}
func (f *fakeActivity) TodaysProgress(context.Context, string) (activitydto.ProgressOutput, error) {
	return activitydto.ProgressOutput{}, nil
}
func (f *fakeActivity) Summary(context.Context) (activitydto.SummaryOutput, error) {
	return activitydto.SummaryOutput{}, nil
}
func (f *fakeActivity) Reindex(context.Context) error { return nil }

type fakeStore struct{ manifests []domain.Manifest }

func (f *fakeStore) Load(context.Context) ([]domain.Manifest, error) { return f.manifests, nil }

type fakeHost struct {
	games  []domain.GameDescriptor
	result domain.PlayResult
}

func (f *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (f *fakeHost) GetMetadata(_ context.Context, m domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: m.Name}, nil
}
func (f *fakeHost) ListGames(context.Context, domain.Manifest) ([]domain.GameDescriptor, error) {
	return f.games, nil
}
func (f *fakeHost) Play(context.Context, domain.Manifest, domain.PlayRequest) (domain.PlayResult, error) {
	return f.result, nil
}
func (f *fakeHost) PrepareTTY(context.Context, domain.Manifest, domain.PlayRequest) (domain.TTYPlan, error) {
	return domain.TTYPlan{}, nil
}

func newInteractor(t *testing.T) (minigamein.Usecase, *fakeActivity, string) {
	t.Helper()
	dir := t.TempDir()
	binary := filepath.Join(dir, "reference")
	payload := []byte("plugin")
	if err := os.WriteFile(binary, payload, 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256(payload)
	store := &fakeStore{manifests: []domain.Manifest{{
		Name:         "reference",
		Version:      "1.0.0",
		Binary:       binary,
		SHA256:       hex.EncodeToString(hash[:]),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityMiniGame},
	}}}
	host := &fakeHost{
		games:  []domain.GameDescriptor{{ID: "plank-hold", Title: "Plank Hold", Kind: "plank", DefaultMinutes: 2}},
		result: domain.PlayResult{Kind: "plank", Score: 120, Minutes: 2},
	}
	activity := &fakeActivity{}
	return usecase.NewInteractor(service.NewMiniGameService(store, host), activity), activity, dir
}

func TestPlayRoutesTheResultIntoTheLedger(t *testing.T) {
	t.Parallel()
	uc, activity, dir := newInteractor(t)

	out, err := uc.Play(context.Background(), dto.PlayInput{
		PluginName: "reference",
		GameID:     "plank-hold",
		DataDir:    dir,
		Cwd:        dir,
	})
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if out.Kind != "plank" || out.Score != 120 || out.LoggedAs != "strength" || out.ResultID != "result-1" {
		t.Fatalf("unexpected play output: %+v", out)
	}
	if len(activity.games) != 1 || activity.games[0].Kind != "plank" || activity.games[0].Minutes != 2 {
		t.Fatalf("expected the round in the ledger, got %+v", activity.games)
	}
}

func TestPlayFailureSkipsTheLedger(t *testing.T) {
	t.Parallel()
	uc, activity, dir := newInteractor(t)

	_, err := uc.Play(context.Background(), dto.PlayInput{
		PluginName: "reference",
		GameID:     "unknown-game",
		DataDir:    dir,
		Cwd:        dir,
	})
	if err == nil {
		t.Fatalf("unknown game must fail")
	}
	if len(activity.games) != 0 {
		t.Fatalf("failed rounds must not reach the ledger, got %+v", activity.games)
	}
}

func TestReportIsTheManualEntryPath(t *testing.T) {
	t.Parallel()
	uc, activity, _ := newInteractor(t)

	out, err := uc.Report(context.Background(), dto.ReportInput{Kind: "plank", Score: 90, Minutes: 3})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if out.LoggedAs != "strength" || out.ResultID != "result-1" {
		t.Fatalf("unexpected report output: %+v", out)
	}
	if len(activity.games) != 1 || activity.games[0].Score != 90 {
		t.Fatalf("expected the manual round in the ledger, got %+v", activity.games)
	}
}
