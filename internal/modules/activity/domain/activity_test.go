package domain_test

import (
	"testing"
	"time"

	"healthquest/internal/modules/activity/domain"
)

func day(d int, hour int) time.Time {
	return time.Date(2026, 8, d, hour, 0, 0, 0, time.UTC)
}

func entry(t domain.ActivityType, minutes int) domain.LogEntry {
	return domain.LogEntry{ID: "e", Type: t, DurationMin: minutes, Intensity: domain.IntensityModerate}
}

func TestActivityTypeValidateAndTargets(t *testing.T) {
	t.Parallel()
	if err := domain.ActivityType("cardio").Validate(); err != nil {
		t.Fatalf("cardio should be valid: %v", err)
	}
	if err := domain.ActivityType("parkour").Validate(); err == nil {
		t.Fatalf("unknown activity type should fail")
	}
	targets := map[domain.ActivityType]int{
		domain.ActivityCardio:     30,
		domain.ActivityStrength:   20,
		domain.ActivityYoga:       25,
		domain.ActivityWalking:    60,
		domain.ActivityCycling:    45,
		domain.ActivitySwimming:   30,
		domain.ActivityMeditation: 15,
	}
	for activityType, want := range targets {
		if got := activityType.TargetMinutes(); got != want {
			t.Fatalf("%s target = %d, want %d", activityType, got, want)
		}
	}
}

func TestMiniGameKindMapsToActivityType(t *testing.T) {
	t.Parallel()
	cases := map[domain.MiniGameKind]domain.ActivityType{
		domain.MiniGameJumpingJacks: domain.ActivityCardio,
		domain.MiniGameDancing:      domain.ActivityCardio,
		domain.MiniGameSquats:       domain.ActivityStrength,
		domain.MiniGamePushUps:      domain.ActivityStrength,
		domain.MiniGamePlank:        domain.ActivityStrength,
		domain.MiniGameBreathing:    domain.ActivityMeditation,
	}
	for kind, want := range cases {
		if got := kind.ActivityType(); got != want {
			t.Fatalf("%s maps to %s, want %s", kind, got, want)
		}
	}
}

func TestAppendGroupsEntriesByCalendarDay(t *testing.T) {
	t.Parallel()
	var ledger domain.Ledger
	ledger.Append(day(25, 9), entry(domain.ActivityCardio, 20))
	ledger.Append(day(25, 21), entry(domain.ActivityCardio, 15))
	ledger.Append(day(26, 8), entry(domain.ActivityYoga, 10))

	if len(ledger.Days) != 2 {
		t.Fatalf("expected 2 day records, got %d", len(ledger.Days))
	}
	if got := ledger.MinutesForToday(day(25, 23), domain.ActivityCardio); got != 35 {
		t.Fatalf("expected 35 cardio minutes on the 25th, got %d", got)
	}
	if got := ledger.MinutesForToday(day(26, 12), domain.ActivityCardio); got != 0 {
		t.Fatalf("cardio must not leak into the next day, got %d", got)
	}
}

func TestTodaysProgressClampsToOne(t *testing.T) {
	t.Parallel()
	var ledger domain.Ledger
	ledger.Append(day(25, 9), entry(domain.ActivityMeditation, 45))
	if got := ledger.TodaysProgress(day(25, 10), domain.ActivityMeditation); got != 1 {
		t.Fatalf("expected clamped progress 1, got %.2f", got)
	}
	if got := ledger.TodaysProgress(day(26, 10), domain.ActivityMeditation); got != 0 {
		t.Fatalf("expected no progress on an empty day, got %.2f", got)
	}
}

func TestWeeklyStreakStopsAtFirstMissedDay(t *testing.T) {
	t.Parallel()
	var ledger domain.Ledger
	// Three qualifying days ending today, then a 20-minute day that breaks
	// the run, then another qualifying day that must not count.
	for _, d := range []int{25, 24, 23} {
		ledger.Append(day(d, 9), entry(domain.ActivityCardio, 30))
	}
	ledger.Append(day(22, 9), entry(domain.ActivityCardio, 20))
	ledger.Append(day(21, 9), entry(domain.ActivityCardio, 40))

	if got := ledger.WeeklyStreak(day(25, 18)); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestWeeklyStreakCapsAtSevenDays(t *testing.T) {
	t.Parallel()
	var ledger domain.Ledger
	for d := 15; d <= 25; d++ {
		ledger.Append(day(d, 9), entry(domain.ActivityWalking, 60))
	}
	if got := ledger.WeeklyStreak(day(25, 18)); got != 7 {
		t.Fatalf("streak must cap at 7, got %d", got)
	}
}

func TestCheckInCoalescesWithinADay(t *testing.T) {
	t.Parallel()
	var ledger domain.Ledger

	first := ledger.UpsertMood(day(25, 9), domain.MoodHappy, "sunny")
	if first.Energy != domain.EnergyMedium {
		t.Fatalf("mood-first check-in defaults energy to medium, got %s", first.Energy)
	}

	second := ledger.UpsertEnergy(day(25, 14), domain.EnergyHigh)
	if second.Mood != domain.MoodHappy || second.Note != "sunny" {
		t.Fatalf("same-day energy update must keep the earlier mood, got %+v", second)
	}

	// A new day replaces the check-in entirely.
	next := ledger.UpsertEnergy(day(26, 8), domain.EnergyLow)
	if next.Mood != domain.MoodNeutral || next.Note != "" {
		t.Fatalf("energy-first check-in on a new day defaults mood to neutral, got %+v", next)
	}
}

func TestTodayTotalsDerivesStepsFromWalking(t *testing.T) {
	t.Parallel()
	var ledger domain.Ledger
	ledger.Append(day(25, 9), entry(domain.ActivityWalking, 50))
	ledger.Append(day(25, 10), entry(domain.ActivityCardio, 20))
	minutes, steps := ledger.TodayTotals(day(25, 12))
	if minutes != 70 {
		t.Fatalf("expected 70 total minutes, got %d", minutes)
	}
	if steps != 5000 {
		t.Fatalf("expected 5000 derived steps, got %d", steps)
	}
}
