package out_test

import (
	"os"
	"path/filepath"
	"testing"

	out "healthquest/internal/modules/quest/adapter/out"
	"healthquest/internal/modules/quest/domain"
)

func TestDefaultCatalogParses(t *testing.T) {
	t.Parallel()
	catalog, err := out.DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if len(catalog.Levels) != 5 {
		t.Fatalf("expected five levels, got %d", len(catalog.Levels))
	}
	if !catalog.Levels[0].Unlocked {
		t.Fatalf("level 1 must ship unlocked")
	}
	for _, level := range catalog.Levels {
		if len(level.Physical) == 0 {
			t.Fatalf("level %d ships without physical challenges", level.Number)
		}
	}
}

func TestSeedCatalogPrefersOverride(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	override := `levels:
  - number: 1
    title: Backyard Trail
    theme: forest
    unlocked: true
    physical_challenges:
      - id: backyard-walk
        title: Backyard Walk
        activity_type: walking
        target: 15
        unit: minutes
`
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	catalog, err := out.SeedCatalog(path)
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	if len(catalog.Levels) != 1 || catalog.Levels[0].Title != "Backyard Trail" {
		t.Fatalf("expected the override catalog, got %+v", catalog.Levels)
	}
	if catalog.Levels[0].Theme != domain.ThemeForest {
		t.Fatalf("expected forest theme, got %s", catalog.Levels[0].Theme)
	}
}

func TestSeedCatalogFallsBackWhenOverrideIsMissing(t *testing.T) {
	t.Parallel()
	catalog, err := out.SeedCatalog(filepath.Join(t.TempDir(), "catalog.yaml"))
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	if len(catalog.Levels) != 5 {
		t.Fatalf("expected the built-in catalog, got %d levels", len(catalog.Levels))
	}
}

func TestSeedCatalogRejectsBadOverride(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	bad := `levels:
  - number: 1
    title: Swamp
    theme: swamp
`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	if _, err := out.SeedCatalog(path); err == nil {
		t.Fatalf("unknown theme in an override must fail")
	}
}
