package domain

import (
	"fmt"
	"strings"
)

const SchemaVersion = 1

// XPPerLevel is the width of one experience band: every 1000 XP is one level.
const XPPerLevel = 1000

type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
)

func (f FitnessLevel) Validate() error {
	switch f {
	case FitnessBeginner, FitnessIntermediate, FitnessAdvanced:
		return nil
	default:
		return fmt.Errorf("unsupported fitness level %q", string(f))
	}
}

// Profile is the durable user aggregate. CurrentLevel is always derived from
// TotalXP via LevelForExperience and never decreases.
type Profile struct {
	Name                string       `json:"name"`
	Fitness             FitnessLevel `json:"fitness_level"`
	PreferredActivities []string     `json:"preferred_activities"`
	CurrentLevel        int          `json:"current_level"`
	TotalXP             int          `json:"total_experience"`
	Achievements        []string     `json:"achievements"`
	OnboardingDone      bool         `json:"onboarding_done"`
}

// NewProfile returns the first-launch profile: level 1, no experience, no
// achievements, onboarding pending.
func NewProfile() Profile {
	return Profile{
		Fitness:      FitnessBeginner,
		CurrentLevel: 1,
		Achievements: []string{},
	}
}

// LevelForExperience maps a non-negative experience total onto a level
// number: every full XPPerLevel band is one level, floor 1.
func LevelForExperience(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/XPPerLevel + 1
}

// AddExperience adds amount and recomputes the level. The level is monotonic:
// the recomputed value only replaces CurrentLevel when it is higher.
func (p *Profile) AddExperience(amount int) {
	p.TotalXP += amount
	if lvl := LevelForExperience(p.TotalXP); lvl > p.CurrentLevel {
		p.CurrentLevel = lvl
	}
}

// AddAchievement inserts id unless already present. Reports whether the set
// grew.
func (p *Profile) AddAchievement(id string) bool {
	if strings.TrimSpace(id) == "" {
		return false
	}
	for _, have := range p.Achievements {
		if have == id {
			return false
		}
	}
	p.Achievements = append(p.Achievements, id)
	return true
}

// ProgressToNextLevel is the fraction of the current XP band already earned,
// always in [0, 1).
func (p Profile) ProgressToNextLevel() float64 {
	base := (p.CurrentLevel - 1) * XPPerLevel
	return float64(p.TotalXP-base) / float64(XPPerLevel)
}
