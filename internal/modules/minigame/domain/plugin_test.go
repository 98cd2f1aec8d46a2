package domain_test

import (
	"strings"
	"testing"

	"healthquest/internal/modules/minigame/domain"
)

func validManifest() domain.Manifest {
	return domain.Manifest{
		Name:         "reference",
		Version:      "1.0.0",
		Binary:       "/opt/plugins/reference",
		SHA256:       strings.Repeat("ab", 32),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityMiniGame},
	}
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	if err := validManifest().Validate(); err != nil {
		t.Fatalf("valid manifest should pass: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*domain.Manifest)
	}{
		{"missing name", func(m *domain.Manifest) { m.Name = "" }},
		{"missing version", func(m *domain.Manifest) { m.Version = "" }},
		{"missing binary", func(m *domain.Manifest) { m.Binary = "" }},
		{"short sha256", func(m *domain.Manifest) { m.SHA256 = "abc123" }},
		{"uppercase sha256", func(m *domain.Manifest) { m.SHA256 = strings.Repeat("AB", 32) }},
		{"no capabilities", func(m *domain.Manifest) { m.Capabilities = nil }},
		{"unknown capability", func(m *domain.Manifest) { m.Capabilities = []domain.Capability{"telepathy"} }},
		{"duplicate capability", func(m *domain.Manifest) {
			m.Capabilities = []domain.Capability{domain.CapabilityMiniGame, domain.CapabilityMiniGame}
		}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			m := validManifest()
			c.mutate(&m)
			if err := m.Validate(); err == nil {
				t.Fatalf("expected validation failure")
			}
		})
	}
}

func TestHasCapability(t *testing.T) {
	t.Parallel()
	m := validManifest()
	if !m.HasCapability(domain.CapabilityMiniGame) {
		t.Fatalf("manifest should report its own capability")
	}
	if m.HasCapability(domain.CapabilityFullscreenTTY) {
		t.Fatalf("manifest must not report a capability it lacks")
	}
}

func TestGameDescriptorValidate(t *testing.T) {
	t.Parallel()
	ok := domain.GameDescriptor{ID: "plank-hold", Kind: "plank"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid descriptor should pass: %v", err)
	}
	if err := (domain.GameDescriptor{Kind: "plank"}).Validate(); err == nil {
		t.Fatalf("descriptor without id should fail")
	}
	if err := (domain.GameDescriptor{ID: "plank-hold"}).Validate(); err == nil {
		t.Fatalf("descriptor without kind should fail")
	}
}

func TestPlayRequestValidate(t *testing.T) {
	t.Parallel()
	ctx := domain.PlayContext{DataDir: "/data", Cwd: "/home"}
	if err := (domain.PlayRequest{GameID: "plank-hold", Context: ctx}).Validate(); err != nil {
		t.Fatalf("valid request should pass: %v", err)
	}
	if err := (domain.PlayRequest{Context: ctx}).Validate(); err == nil {
		t.Fatalf("request without game id should fail")
	}
	if err := (domain.PlayRequest{GameID: "x", Context: domain.PlayContext{Cwd: "/home"}}).Validate(); err == nil {
		t.Fatalf("context without data dir should fail")
	}
	if err := (domain.PlayRequest{GameID: "x", Context: domain.PlayContext{DataDir: "/data"}}).Validate(); err == nil {
		t.Fatalf("context without cwd should fail")
	}
}

func TestTTYPlanValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.TTYPlan{Argv: []string{"/bin/game"}, Cwd: "/home"}).Validate(); err != nil {
		t.Fatalf("valid plan should pass: %v", err)
	}
	if err := (domain.TTYPlan{Cwd: "/home"}).Validate(); err == nil {
		t.Fatalf("plan without argv should fail")
	}
	if err := (domain.TTYPlan{Argv: []string{"/bin/game"}}).Validate(); err == nil {
		t.Fatalf("plan without cwd should fail")
	}
}
