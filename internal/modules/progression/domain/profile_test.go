package domain_test

import (
	"testing"

	"healthquest/internal/modules/progression/domain"
)

func TestLevelForExperience(t *testing.T) {
	t.Parallel()
	cases := []struct {
		xp    int
		level int
	}{
		{-5, 1},
		{0, 1},
		{999, 1},
		{1000, 2},
		{2500, 3},
	}
	for _, c := range cases {
		if got := domain.LevelForExperience(c.xp); got != c.level {
			t.Fatalf("LevelForExperience(%d) = %d, want %d", c.xp, got, c.level)
		}
	}
}

func TestAddExperienceKeepsLevelMonotonic(t *testing.T) {
	t.Parallel()
	p := domain.NewProfile()
	p.AddExperience(1500)
	if p.CurrentLevel != 2 {
		t.Fatalf("expected level 2 after 1500 xp, got %d", p.CurrentLevel)
	}
	// A level granted stays granted even if the derived value would be lower.
	p.CurrentLevel = 5
	p.AddExperience(100)
	if p.CurrentLevel != 5 {
		t.Fatalf("level must not decrease, got %d", p.CurrentLevel)
	}
	if p.TotalXP != 1600 {
		t.Fatalf("expected 1600 total xp, got %d", p.TotalXP)
	}
}

func TestAddAchievementDeduplicates(t *testing.T) {
	t.Parallel()
	p := domain.NewProfile()
	if !p.AddAchievement("Nature Lover Badge") {
		t.Fatalf("first achievement should be added")
	}
	if p.AddAchievement("Nature Lover Badge") {
		t.Fatalf("duplicate achievement should be rejected")
	}
	if p.AddAchievement("  ") {
		t.Fatalf("blank achievement should be rejected")
	}
	if len(p.Achievements) != 1 {
		t.Fatalf("expected exactly one achievement, got %d", len(p.Achievements))
	}
}

func TestProgressToNextLevel(t *testing.T) {
	t.Parallel()
	p := domain.NewProfile()
	p.AddExperience(250)
	if got := p.ProgressToNextLevel(); got != 0.25 {
		t.Fatalf("expected 0.25 progress, got %.2f", got)
	}
	p.AddExperience(750)
	if got := p.ProgressToNextLevel(); got != 0 {
		t.Fatalf("expected fresh band after level-up, got %.2f", got)
	}
}
