package dto

import "time"

type StartInput struct {
	ChallengeID string
	Title       string
	Type        string
	DurationMin int
}

// SnapshotOutput is what the rendering layer polls once per second.
type SnapshotOutput struct {
	State        string
	ChallengeID  string
	Title        string
	Type         string
	StartedAt    time.Time
	DurationSec  int
	RemainingSec int
	ElapsedSec   int
	Phase        string
	Guidance     string
	BreathingCue string
}
