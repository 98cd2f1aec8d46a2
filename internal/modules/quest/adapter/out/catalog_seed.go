package out

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"healthquest/internal/modules/quest/domain"
)

//go:embed catalog.yaml
var catalogSeed []byte

// DefaultCatalog parses the built-in five-level adventure. Used to seed a
// fresh data dir.
func DefaultCatalog() (domain.Catalog, error) {
	return parseCatalog(catalogSeed)
}

// SeedCatalog prefers a catalog.yaml in the data dir over the built-in one,
// so a custom adventure can be dropped in before first run.
func SeedCatalog(overridePath string) (domain.Catalog, error) {
	payload, err := os.ReadFile(overridePath)
	if os.IsNotExist(err) {
		return DefaultCatalog()
	}
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read catalog override: %w", err)
	}
	catalog, err := parseCatalog(payload)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("catalog override %s: %w", overridePath, err)
	}
	return catalog, nil
}

func parseCatalog(payload []byte) (domain.Catalog, error) {
	catalog := domain.Catalog{}
	if err := yaml.Unmarshal(payload, &catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	for _, level := range catalog.Levels {
		if err := level.Theme.Validate(); err != nil {
			return domain.Catalog{}, fmt.Errorf("catalog level %d: %w", level.Number, err)
		}
		for _, challenge := range level.Mindfulness {
			if err := challenge.Kind.Validate(); err != nil {
				return domain.Catalog{}, fmt.Errorf("catalog level %d: %w", level.Number, err)
			}
		}
	}
	return catalog, nil
}
