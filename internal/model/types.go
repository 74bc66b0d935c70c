// Package model defines shared data structures.
package model

import "time"

// Mode identifies the active practice variant.
type Mode int

// Practice variants, in tab order.
const (
	ModeTime Mode = iota
	ModeWords
	ModeZen
)

// String returns the mode name used in persistence and the UI.
func (m Mode) String() string {
	switch m {
	case ModeTime:
		return "time"
	case ModeWords:
		return "words"
	case ModeZen:
		return "zen"
	default:
		return "unknown"
	}
}

// Config defines practice settings.
type Config struct {
	Lang     string
	Words    int
	CapsPct  float64
	PunctPct float64
	PunctSet string

	Mode  Mode
	Value int

	Switch       string
	AudioEnabled bool
	Layout       string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Mode  string
	Since *time.Time
	Last  int
}

// Sample is a WPM snapshot taken during an active attempt.
type Sample struct {
	ElapsedS uint64
	WPM      float64
}

// AttemptResult captures a completed typing attempt for persistence.
type AttemptResult struct {
	StartedAt      time.Time
	EndedAt        time.Time
	Mode           Mode
	Target         string
	TargetValue    int
	CorrectChars   int
	IncorrectChars int
	WPM            float64
	Accuracy       float64
	DurationMs     int64
	Samples        []Sample
}

// AttemptAggregate summarizes a stored attempt for reporting.
type AttemptAggregate struct {
	AttemptID  int64
	EndedAt    time.Time
	Mode       string
	Correct    int
	Incorrect  int
	WPM        float64
	Accuracy   float64
	DurationMs int64
}
