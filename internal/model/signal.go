package model

import "time"

// Zone is the directional bias of a grid opportunity.
type Zone string

const (
	ZoneLong  Zone = "Long"
	ZoneShort Zone = "Short"
)

// VotingPolicy selects how indicator votes combine into a zone decision.
type VotingPolicy string

const (
	// VotingRelaxed accepts a direction with at least 2 of 3 indicator votes.
	VotingRelaxed VotingPolicy = "relaxed"
	// VotingStrict requires all three indicators to agree.
	VotingStrict VotingPolicy = "strict"
)

// GridPlan holds the derived grid-strategy parameters for one instrument.
type GridPlan struct {
	Low        float64
	High       float64
	SpacingPct float64
	GridCount  int
	CycleDays  float64
}

// Signal is one instrument's accepted grid opportunity for the current scan.
type Signal struct {
	Symbol     string
	Zone       Zone
	Plan       GridPlan
	Indicators IndicatorSet
	Interval   Interval
	Price      float64
	Score      float64
	Notional   float64
	At         time.Time
}
