package dto

// Experience award policy. Every caller that grants XP goes through these
// constants so the amounts stay consistent across modules.
const (
	XPPerActivityMinute  = 2   // logged activity, per minute
	StepsPerXP           = 10  // one XP per ten steps
	XPMoodCheckIn        = 10  // flat, per mood check-in
	XPSessionCompleted   = 75  // flat, per finished mindfulness session
	XPChallengeConfirmed = 50  // flat, per confirmed physical challenge
	XPPerLevelNumber     = 100 // level completion: level number x 100
)

type SetupInput struct {
	Name                string
	FitnessLevel        string
	PreferredActivities []string
}

type ProfileOutput struct {
	Name                string
	FitnessLevel        string
	PreferredActivities []string
	CurrentLevel        int
	TotalXP             int
	Achievements        []string
	OnboardingDone      bool
	ProgressToNext      float64
}
