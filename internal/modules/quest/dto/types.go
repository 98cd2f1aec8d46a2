package dto

type PhysicalChallengeOutput struct {
	ID           string
	Title        string
	Description  string
	ActivityType string
	Target       int
	Unit         string
	Completed    bool
}

type MindfulnessChallengeOutput struct {
	ID          string
	Title       string
	Description string
	DurationMin int
	Kind        string
	Completed   bool
}

type LevelOutput struct {
	Number      int
	Title       string
	Description string
	Theme       string
	World       string
	RequiredXP  int
	Physical    []PhysicalChallengeOutput
	Mindfulness []MindfulnessChallengeOutput
	Rewards     []string
	Unlocked    bool
	Completed   bool
	Progress    float64
}

// CompleteLevelOutput reports what a completion attempt did. Completed stays
// false when the level was not completable; nothing is awarded then.
type CompleteLevelOutput struct {
	Completed bool
	Level     LevelOutput
	XPAwarded int
	Rewards   []string
}

type CompleteChallengeOutput struct {
	Completed   bool
	LevelNumber int
	ChallengeID string
	XPAwarded   int
}

type ProgressOutput struct {
	TotalLevels     int
	CompletedLevels int
	Fraction        float64
}
