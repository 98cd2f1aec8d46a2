package domain

import (
	"fmt"
	"time"
)

// GraceSeconds is how long a finished session stays visible before the
// machine clears back to idle.
const GraceSeconds = 2

// XPSessionCompleted is the flat award for finishing a guided session.
const XPSessionCompleted = 75

type SessionType string

const (
	TypeBreathing     SessionType = "breathing"
	TypeMeditation    SessionType = "meditation"
	TypeGratitude     SessionType = "gratitude"
	TypeVisualization SessionType = "visualization"
)

func (t SessionType) Validate() error {
	switch t {
	case TypeBreathing, TypeMeditation, TypeGratitude, TypeVisualization:
		return nil
	default:
		return fmt.Errorf("unsupported session type %q", string(t))
	}
}

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// Session is the transient record of one guided sitting. It lives only while
// the machine is non-idle and is archived, never persisted live.
type Session struct {
	ChallengeID string
	Title       string
	Type        SessionType
	StartedAt   time.Time
	DurationSec int
	Remaining   int
	Completed   bool
}

func (s Session) Elapsed() int {
	return s.DurationSec - s.Remaining
}

type Phase string

const (
	PhaseBeginning Phase = "beginning"
	PhaseMiddle    Phase = "middle"
	PhaseEnd       Phase = "end"
)

// PhaseFor buckets elapsed time into thirds of the total duration.
func PhaseFor(elapsedSec, totalSec int) Phase {
	if totalSec <= 0 {
		return PhaseBeginning
	}
	switch {
	case elapsedSec*3 < totalSec:
		return PhaseBeginning
	case elapsedSec*3 >= totalSec*2:
		return PhaseEnd
	default:
		return PhaseMiddle
	}
}

// Phase is the session's current guidance phase.
func (s Session) Phase() Phase {
	return PhaseFor(s.Elapsed(), s.DurationSec)
}

// Guidance returns the scripted text for a type and phase. Pure lookup, no
// side effects.
func Guidance(t SessionType, p Phase) string {
	switch t {
	case TypeBreathing:
		switch p {
		case PhaseBeginning:
			return "Find a comfortable position and close your eyes. We'll start with deep, calming breaths."
		case PhaseMiddle:
			return "Breathe in slowly for 4 counts... hold for 4... exhale for 6. Let your body relax with each breath."
		default:
			return "Take three final deep breaths. Notice how calm and centered you feel. Slowly open your eyes."
		}
	case TypeMeditation:
		switch p {
		case PhaseBeginning:
			return "Sit comfortably with your spine straight. Close your eyes and begin to notice your natural breath."
		case PhaseMiddle:
			return "If thoughts arise, acknowledge them gently and return your focus to your breath. There's no need to judge or change anything."
		default:
			return "Gradually bring your awareness back to your surroundings. Wiggle your fingers and toes before opening your eyes."
		}
	case TypeGratitude:
		switch p {
		case PhaseBeginning:
			return "Take a moment to settle in. Think of something you're grateful for today, no matter how small."
		case PhaseMiddle:
			return "Bring to mind three things you appreciate in your life. Feel the warmth and joy these thoughts bring."
		default:
			return "Hold onto these feelings of gratitude. Let them fill your heart as you return to your day."
		}
	case TypeVisualization:
		switch p {
		case PhaseBeginning:
			return "Close your eyes and imagine a peaceful place where you feel completely safe and relaxed."
		case PhaseMiddle:
			return "Explore this peaceful space with all your senses. What do you see, hear, feel, and smell? Make it as vivid as possible."
		default:
			return "Know that you can return to this peaceful place anytime you need it. Take a deep breath and slowly open your eyes."
		}
	default:
		return ""
	}
}

type BreathingPhase string

const (
	BreathingInhale BreathingPhase = "inhale"
	BreathingHold   BreathingPhase = "hold"
	BreathingExhale BreathingPhase = "exhale"
)

// BreathingCue buckets remaining seconds into the repeating 14-second
// breathing cycle: 4 in, 4 hold, 6 out.
func BreathingCue(remainingSec int) BreathingPhase {
	const cycleLength = 14
	pos := remainingSec % cycleLength
	if pos < 0 {
		pos += cycleLength
	}
	switch {
	case pos >= 10:
		return BreathingInhale
	case pos >= 6:
		return BreathingHold
	default:
		return BreathingExhale
	}
}
