package model

import "time"

// StateEntry is the persisted per-instrument record carried across scans.
type StateEntry struct {
	Zone      Zone      `json:"zone"`
	Low       float64   `json:"low"`
	High      float64   `json:"high"`
	StartTime time.Time `json:"start_time"`
	Warned    bool      `json:"warned"`
}

// TransitionType classifies how an instrument's scan result relates to its
// previously persisted state.
type TransitionType string

// Continuing instruments carry state forward without an alert, so no
// TransitionType exists for them.
const (
	TransitionNew     TransitionType = "NEW"
	TransitionFlipped TransitionType = "FLIPPED"
	// TransitionExitedRange means the price broke the stop band of the
	// previously recorded range.
	TransitionExitedRange TransitionType = "EXITED_RANGE"
	// TransitionExitedDropped means the instrument no longer produces a signal.
	TransitionExitedDropped TransitionType = "EXITED_DROPPED"
	TransitionCycleWarning  TransitionType = "CYCLE_WARNING"
)

// Alert is the semantic content of one operator notification. Formatting into
// message text happens in the notifier.
type Alert struct {
	Symbol     string
	Type       TransitionType
	Signal     *Signal // nil for dropped exits
	PrevZone   Zone    // set for flips
	ProxyPrice float64 // midpoint of the last known range, for dropped exits
	Reason     string
	At         time.Time
}
