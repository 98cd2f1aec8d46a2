package dto

import "time"

// LogInput describes one activity block to record. Intensity defaults to
// moderate when empty.
type LogInput struct {
	Type        string
	Minutes     int
	Intensity   string
	Description string
}

type LogOutput struct {
	EntryID           string
	Type              string
	Minutes           int
	TotalMinutesToday int
	XPAwarded         int
}

type CheckInOutput struct {
	Date      time.Time
	Mood      string
	Energy    string
	Note      string
	XPAwarded int
}

type MiniGameInput struct {
	Kind    string
	Score   int
	Minutes int
}

type MiniGameOutput struct {
	ResultID string
	Kind     string
	LoggedAs string
	Minutes  int
}

type ProgressOutput struct {
	Type          string
	MinutesToday  int
	TargetMinutes int
	Ratio         float64
}

// SummaryOutput is the "today" roll-up shown on the dashboard.
type SummaryOutput struct {
	Date         time.Time
	TotalMinutes int
	Steps        int
	WeeklyStreak int
	CheckIn      *CheckInOutput
	Progress     []ProgressOutput
}
