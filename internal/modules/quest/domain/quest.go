package domain

import "fmt"

const SchemaVersion = 1

// XPPerLevelNumber scales the completion award: finishing level n pays
// n * 100 experience.
const XPPerLevelNumber = 100

type Theme string

const (
	ThemeForest   Theme = "forest"
	ThemeMountain Theme = "mountain"
	ThemeOcean    Theme = "ocean"
	ThemeDesert   Theme = "desert"
	ThemeCity     Theme = "city"
)

func (t Theme) Validate() error {
	switch t {
	case ThemeForest, ThemeMountain, ThemeOcean, ThemeDesert, ThemeCity:
		return nil
	default:
		return fmt.Errorf("unsupported theme %q", string(t))
	}
}

// DisplayName is the theme's world name as shown in level descriptions.
func (t Theme) DisplayName() string {
	switch t {
	case ThemeForest:
		return "Enchanted Forest"
	case ThemeMountain:
		return "Mystic Mountains"
	case ThemeOcean:
		return "Crystal Ocean"
	case ThemeDesert:
		return "Golden Desert"
	case ThemeCity:
		return "Future City"
	default:
		return string(t)
	}
}

type MindfulnessKind string

const (
	MindfulnessBreathing     MindfulnessKind = "breathing"
	MindfulnessMeditation    MindfulnessKind = "meditation"
	MindfulnessGratitude     MindfulnessKind = "gratitude"
	MindfulnessVisualization MindfulnessKind = "visualization"
)

func (k MindfulnessKind) Validate() error {
	switch k {
	case MindfulnessBreathing, MindfulnessMeditation, MindfulnessGratitude, MindfulnessVisualization:
		return nil
	default:
		return fmt.Errorf("unsupported mindfulness kind %q", string(k))
	}
}

type PhysicalChallenge struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	ActivityType string `json:"activity_type" yaml:"activity_type"`
	Target       int    `json:"target" yaml:"target"`
	Unit         string `json:"unit" yaml:"unit"`
	Completed    bool   `json:"completed" yaml:"completed"`
}

type MindfulnessChallenge struct {
	ID          string          `json:"id" yaml:"id"`
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description" yaml:"description"`
	DurationMin int             `json:"duration_minutes" yaml:"duration_minutes"`
	Kind        MindfulnessKind `json:"kind" yaml:"kind"`
	Completed   bool            `json:"completed" yaml:"completed"`
}

type Level struct {
	Number      int                    `json:"number" yaml:"number"`
	Title       string                 `json:"title" yaml:"title"`
	Description string                 `json:"description" yaml:"description"`
	Theme       Theme                  `json:"theme" yaml:"theme"`
	RequiredXP  int                    `json:"required_xp" yaml:"required_xp"`
	Physical    []PhysicalChallenge    `json:"physical_challenges" yaml:"physical_challenges"`
	Mindfulness []MindfulnessChallenge `json:"mindfulness_challenges" yaml:"mindfulness_challenges"`
	Rewards     []string               `json:"rewards" yaml:"rewards"`
	Unlocked    bool                   `json:"unlocked" yaml:"unlocked"`
	Completed   bool                   `json:"completed" yaml:"completed"`
}

// Progress is the fraction of the level's challenges ticked off, 0 for a
// level with no challenges.
func (l Level) Progress() float64 {
	total := len(l.Physical) + len(l.Mindfulness)
	if total == 0 {
		return 0
	}
	done := 0
	for _, c := range l.Physical {
		if c.Completed {
			done++
		}
	}
	for _, c := range l.Mindfulness {
		if c.Completed {
			done++
		}
	}
	return float64(done) / float64(total)
}

// Completable reports whether the level can be closed out: it needs at least
// one challenge overall and every challenge finished. A level with an empty
// mindfulness list is still completable once its physical challenges are
// done.
func (l Level) Completable() bool {
	if len(l.Physical)+len(l.Mindfulness) == 0 {
		return false
	}
	for _, c := range l.Physical {
		if !c.Completed {
			return false
		}
	}
	for _, c := range l.Mindfulness {
		if !c.Completed {
			return false
		}
	}
	return true
}

// CompletionXP is the award for finishing this level.
func (l Level) CompletionXP() int {
	return l.Number * XPPerLevelNumber
}

// Catalog is the ordered level list. Level numbers are 1-based and dense.
type Catalog struct {
	Levels []Level `json:"levels" yaml:"levels"`
}

func (c *Catalog) index(number int) int {
	for i := range c.Levels {
		if c.Levels[i].Number == number {
			return i
		}
	}
	return -1
}

func (c Catalog) Level(number int) (Level, bool) {
	if i := c.index(number); i >= 0 {
		return c.Levels[i], true
	}
	return Level{}, false
}

// Current is the first level not yet completed.
func (c Catalog) Current() (Level, bool) {
	for _, l := range c.Levels {
		if !l.Completed {
			return l, true
		}
	}
	return Level{}, false
}

func (c *Catalog) Unlock(number int) bool {
	if i := c.index(number); i >= 0 && !c.Levels[i].Unlocked {
		c.Levels[i].Unlocked = true
		return true
	}
	return false
}

// CompleteLevel marks the level done and unlocks its successor. It refuses
// silently when the level is unknown, locked, already completed, or not
// completable.
func (c *Catalog) CompleteLevel(number int) (Level, bool) {
	i := c.index(number)
	if i < 0 || !c.Levels[i].Unlocked || c.Levels[i].Completed || !c.Levels[i].Completable() {
		return Level{}, false
	}
	c.Levels[i].Completed = true
	c.Unlock(number + 1)
	return c.Levels[i], true
}

// CompletePhysical ticks one physical challenge. No-op when already done or
// unknown.
func (c *Catalog) CompletePhysical(number int, challengeID string) bool {
	i := c.index(number)
	if i < 0 {
		return false
	}
	for j := range c.Levels[i].Physical {
		if c.Levels[i].Physical[j].ID == challengeID && !c.Levels[i].Physical[j].Completed {
			c.Levels[i].Physical[j].Completed = true
			return true
		}
	}
	return false
}

func (c *Catalog) CompleteMindfulness(number int, challengeID string) bool {
	i := c.index(number)
	if i < 0 {
		return false
	}
	for j := range c.Levels[i].Mindfulness {
		if c.Levels[i].Mindfulness[j].ID == challengeID && !c.Levels[i].Mindfulness[j].Completed {
			c.Levels[i].Mindfulness[j].Completed = true
			return true
		}
	}
	return false
}

// CompleteMindfulnessByKind ticks the current level's first open mindfulness
// challenge of the given kind. Used when a guided session finishes.
func (c *Catalog) CompleteMindfulnessByKind(kind MindfulnessKind) (Level, MindfulnessChallenge, bool) {
	current, ok := c.Current()
	if !ok {
		return Level{}, MindfulnessChallenge{}, false
	}
	i := c.index(current.Number)
	for j := range c.Levels[i].Mindfulness {
		challenge := &c.Levels[i].Mindfulness[j]
		if challenge.Kind == kind && !challenge.Completed {
			challenge.Completed = true
			return c.Levels[i], *challenge, true
		}
	}
	return Level{}, MindfulnessChallenge{}, false
}

// Available lists the unlocked levels in order.
func (c Catalog) Available() []Level {
	available := []Level{}
	for _, l := range c.Levels {
		if l.Unlocked {
			available = append(available, l)
		}
	}
	return available
}

// TotalProgress is the fraction of levels completed.
func (c Catalog) TotalProgress() float64 {
	if len(c.Levels) == 0 {
		return 0
	}
	done := 0
	for _, l := range c.Levels {
		if l.Completed {
			done++
		}
	}
	return float64(done) / float64(len(c.Levels))
}
