package domain

import (
	"fmt"
	"time"

	"healthquest/internal/platform/clock"
)

const SchemaVersion = 1

// StepsPerMinute converts user-entered step counts to walking minutes and
// back: 100 steps is treated as one minute of walking.
const StepsPerMinute = 100

// Streak qualification: a day counts toward the streak with at least 30
// active minutes; the scan never looks further back than a week.
const (
	StreakThresholdMinutes = 30
	StreakWindowDays       = 7
)

type ActivityType string

const (
	ActivityCardio     ActivityType = "cardio"
	ActivityStrength   ActivityType = "strength"
	ActivityYoga       ActivityType = "yoga"
	ActivityMeditation ActivityType = "meditation"
	ActivityWalking    ActivityType = "walking"
	ActivityCycling    ActivityType = "cycling"
	ActivitySwimming   ActivityType = "swimming"
)

func ActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityCardio, ActivityStrength, ActivityYoga, ActivityMeditation,
		ActivityWalking, ActivityCycling, ActivitySwimming,
	}
}

func (t ActivityType) Validate() error {
	switch t {
	case ActivityCardio, ActivityStrength, ActivityYoga, ActivityMeditation,
		ActivityWalking, ActivityCycling, ActivitySwimming:
		return nil
	default:
		return fmt.Errorf("unsupported activity type %q", string(t))
	}
}

// TargetMinutes is the fixed daily goal per activity type.
func (t ActivityType) TargetMinutes() int {
	switch t {
	case ActivityCardio:
		return 30
	case ActivityStrength:
		return 20
	case ActivityYoga:
		return 25
	case ActivityWalking:
		return 60
	case ActivityCycling:
		return 45
	case ActivitySwimming:
		return 30
	case ActivityMeditation:
		return 15
	default:
		return 0
	}
}

type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityIntense  Intensity = "intense"
)

func (i Intensity) Validate() error {
	switch i {
	case IntensityLight, IntensityModerate, IntensityIntense:
		return nil
	default:
		return fmt.Errorf("unsupported intensity %q", string(i))
	}
}

type Mood string

const (
	MoodVeryHappy Mood = "very_happy"
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodStressed  Mood = "stressed"
)

func (m Mood) Validate() error {
	switch m {
	case MoodVeryHappy, MoodHappy, MoodNeutral, MoodSad, MoodStressed:
		return nil
	default:
		return fmt.Errorf("unsupported mood %q", string(m))
	}
}

type Energy string

const (
	EnergyHigh   Energy = "high"
	EnergyMedium Energy = "medium"
	EnergyLow    Energy = "low"
)

func (e Energy) Validate() error {
	switch e {
	case EnergyHigh, EnergyMedium, EnergyLow:
		return nil
	default:
		return fmt.Errorf("unsupported energy level %q", string(e))
	}
}

type MiniGameKind string

const (
	MiniGameJumpingJacks MiniGameKind = "jumping_jacks"
	MiniGameSquats       MiniGameKind = "squats"
	MiniGamePushUps      MiniGameKind = "push_ups"
	MiniGamePlank        MiniGameKind = "plank"
	MiniGameDancing      MiniGameKind = "dancing"
	MiniGameBreathing    MiniGameKind = "breathing"
)

func (k MiniGameKind) Validate() error {
	switch k {
	case MiniGameJumpingJacks, MiniGameSquats, MiniGamePushUps,
		MiniGamePlank, MiniGameDancing, MiniGameBreathing:
		return nil
	default:
		return fmt.Errorf("unsupported mini-game kind %q", string(k))
	}
}

// ActivityType maps a mini-game onto the activity type it is logged as.
func (k MiniGameKind) ActivityType() ActivityType {
	switch k {
	case MiniGameJumpingJacks, MiniGameDancing:
		return ActivityCardio
	case MiniGameSquats, MiniGamePushUps, MiniGamePlank:
		return ActivityStrength
	default:
		return ActivityMeditation
	}
}

// LogEntry is one logged block of activity. Immutable once appended.
type LogEntry struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	DurationMin int          `json:"duration_minutes"`
	Intensity   Intensity    `json:"intensity"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
}

// DailyRecord aggregates one calendar day of entries. Append-only.
type DailyRecord struct {
	Date         time.Time  `json:"date"`
	Entries      []LogEntry `json:"entries"`
	TotalMinutes int        `json:"total_minutes"`
}

func (r *DailyRecord) Append(entry LogEntry) {
	r.Entries = append(r.Entries, entry)
	r.TotalMinutes += entry.DurationMin
}

func (r DailyRecord) MinutesFor(t ActivityType) int {
	total := 0
	for _, entry := range r.Entries {
		if entry.Type == t {
			total += entry.DurationMin
		}
	}
	return total
}

// CheckIn holds the latest mood/energy reading. One per day; same-day updates
// overwrite, a new day replaces it.
type CheckIn struct {
	Date   time.Time `json:"date"`
	Mood   Mood      `json:"mood"`
	Energy Energy    `json:"energy"`
	Note   string    `json:"note"`
}

type MiniGameResult struct {
	ID          string       `json:"id"`
	Kind        MiniGameKind `json:"kind"`
	Score       int          `json:"score"`
	DurationMin int          `json:"duration_minutes"`
	CompletedAt time.Time    `json:"completed_at"`
}

// Ledger is the durable activity aggregate: full daily history, the latest
// check-in, and finished mini-games.
type Ledger struct {
	Days      []DailyRecord    `json:"days"`
	CheckIn   *CheckIn         `json:"check_in,omitempty"`
	MiniGames []MiniGameResult `json:"mini_games"`
}

func (l *Ledger) dayIndex(date time.Time) int {
	for i := range l.Days {
		if clock.SameDay(l.Days[i].Date, date) {
			return i
		}
	}
	return -1
}

// Append records entry under now's calendar day, creating the day on first
// log.
func (l *Ledger) Append(now time.Time, entry LogEntry) {
	if i := l.dayIndex(now); i >= 0 {
		l.Days[i].Append(entry)
		return
	}
	day := DailyRecord{Date: clock.StartOfDay(now)}
	day.Append(entry)
	l.Days = append(l.Days, day)
}

func (l Ledger) dayFor(now time.Time) (DailyRecord, bool) {
	if i := l.dayIndex(now); i >= 0 {
		return l.Days[i], true
	}
	return DailyRecord{}, false
}

// UpsertMood updates today's check-in or creates one with energy defaulting
// to medium.
func (l *Ledger) UpsertMood(now time.Time, mood Mood, note string) CheckIn {
	if l.CheckIn != nil && clock.SameDay(l.CheckIn.Date, now) {
		l.CheckIn.Mood = mood
		l.CheckIn.Note = note
		return *l.CheckIn
	}
	l.CheckIn = &CheckIn{Date: clock.StartOfDay(now), Mood: mood, Energy: EnergyMedium, Note: note}
	return *l.CheckIn
}

// UpsertEnergy updates today's check-in or creates one. A fresh check-in
// keeps the mood from today's earlier reading when there is one, otherwise
// neutral.
func (l *Ledger) UpsertEnergy(now time.Time, energy Energy) CheckIn {
	if l.CheckIn != nil && clock.SameDay(l.CheckIn.Date, now) {
		l.CheckIn.Energy = energy
		return *l.CheckIn
	}
	l.CheckIn = &CheckIn{Date: clock.StartOfDay(now), Mood: MoodNeutral, Energy: energy}
	return *l.CheckIn
}

// MinutesForToday is today's logged minutes for one activity type.
func (l Ledger) MinutesForToday(now time.Time, t ActivityType) int {
	day, ok := l.dayFor(now)
	if !ok {
		return 0
	}
	return day.MinutesFor(t)
}

// TodaysProgress is today's minutes for t over its daily target, clamped to
// [0, 1].
func (l Ledger) TodaysProgress(now time.Time, t ActivityType) float64 {
	day, ok := l.dayFor(now)
	if !ok {
		return 0
	}
	target := t.TargetMinutes()
	if target == 0 {
		return 0
	}
	ratio := float64(day.MinutesFor(t)) / float64(target)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// WeeklyStreak counts consecutive qualifying days ending today. The scan
// stops at the first day under the threshold and looks at most a week back.
func (l Ledger) WeeklyStreak(now time.Time) int {
	streak := 0
	date := now
	for i := 0; i < StreakWindowDays; i++ {
		day, ok := l.dayFor(date)
		if !ok || day.TotalMinutes < StreakThresholdMinutes {
			break
		}
		streak++
		date = date.AddDate(0, 0, -1)
	}
	return streak
}

// TodayTotals reports today's active minutes and the step estimate derived
// from walking minutes.
func (l Ledger) TodayTotals(now time.Time) (minutes, steps int) {
	day, ok := l.dayFor(now)
	if !ok {
		return 0, 0
	}
	return day.TotalMinutes, day.MinutesFor(ActivityWalking) * StepsPerMinute
}
