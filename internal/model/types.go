// Package model defines shared data structures.
package model

import "time"

// Config defines hunt settings.
type Config struct {
	Length           int
	ExcludeAllDigits bool
	ExcludedDigits   string
	BaseURL          string
	Verbose          bool
}

// Outcome classifies the result of a single availability check.
type Outcome int

// Check outcomes.
const (
	OutcomeAvailable Outcome = iota
	OutcomeTaken
	OutcomeThrottled
	OutcomeTransient
	OutcomeAborted
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeAvailable:
		return "available"
	case OutcomeTaken:
		return "taken"
	case OutcomeThrottled:
		return "throttled"
	case OutcomeTransient:
		return "transient"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Level tags an event for the presentation layer.
type Level int

// Event levels.
const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
	LevelMuted
	LevelAccent
)

// Event is a single log entry emitted by the hunt loop.
type Event struct {
	Level Level
	Text  string
	At    time.Time
}

// EventSink receives hunt events in emission order.
type EventSink interface {
	Emit(e Event)
}

// Stats holds per-hunt counters. Counters only grow within a hunt.
type Stats struct {
	Attempts  int
	Available int
	Taken     int
}

// FoundUsername records an identifier that checked as available.
type FoundUsername struct {
	Name    string
	FoundAt time.Time
}

// HuntRecord summarizes a completed hunt for persistence and reporting.
type HuntRecord struct {
	ID        int64
	StartedAt time.Time
	EndedAt   time.Time
	URL       string
	Length    int
	Attempts  int
	Available int
	Taken     int
}
