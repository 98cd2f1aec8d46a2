package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	out "healthquest/internal/modules/minigame/adapter/out"
)

func writeManifests(t *testing.T, dir, payload string) {
	t.Helper()
	pluginsDir := filepath.Join(dir, "plugins")
	if err := os.MkdirAll(pluginsDir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginsDir, "plugins.json"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}
}

func TestLoadMissingFileMeansNoPlugins(t *testing.T) {
	t.Parallel()
	store := out.NewFileManifestStore(t.TempDir())
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected no plugins, got %d", len(manifests))
	}
}

func TestLoadResolvesRelativeBinaryAgainstDataDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeManifests(t, dir, `[
		{"name":"reference","version":"1.0.0","binary":"plugins/reference","sha256":"`+hex64()+`","enabled":true,"capabilities":["minigame"]},
		{"name":"absolute","version":"1.0.0","binary":"/opt/plugins/absolute","sha256":"`+hex64()+`","enabled":false,"capabilities":["minigame"]}
	]`)

	store := out.NewFileManifestStore(dir)
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 2 {
		t.Fatalf("expected 2 manifests, got %d", len(manifests))
	}
	if want := filepath.Join(dir, "plugins", "reference"); manifests[0].Binary != want {
		t.Fatalf("relative binary should resolve to %s, got %s", want, manifests[0].Binary)
	}
	if manifests[1].Binary != "/opt/plugins/absolute" {
		t.Fatalf("absolute binary must stay untouched, got %s", manifests[1].Binary)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeManifests(t, dir, `[{"name":"reference","surprise":true}]`)

	store := out.NewFileManifestStore(dir)
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("unknown manifest fields must fail")
	}
}

func hex64() string {
	return strings.Repeat("ab", 32)
}
