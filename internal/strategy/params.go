package strategy

import "github.com/neodize/rsi-grid-alert-bot/internal/model"

// Params holds every tunable threshold of the analysis pipeline. Zero values
// are replaced by the defaults below, so a partially filled struct from config
// is safe to use.
type Params struct {
	// Zone classification
	MinSamples        int
	PositionThreshold float64
	RSIOversold       float64
	RSIOverbought     float64
	VotingPolicy      model.VotingPolicy

	// Grid plan derivation
	SpacingTarget float64
	SpacingMin    float64
	SpacingMax    float64
	CycleMax      float64
	StopBuffer    float64

	// Dual-resolution scan
	VolThreshold float64

	// Cooldown
	CooldownBaseSeconds float64

	// Indicator periods
	RSIPeriod       int
	BollingerPeriod int
	BollingerK      float64
	MACDFast        int
	MACDSlow        int
	MACDSignal      int
	StdDevPeriod    int
}

// DefaultParams returns the production thresholds.
func DefaultParams() Params {
	return Params{
		MinSamples:        60,
		PositionThreshold: 0.4,
		RSIOversold:       30,
		RSIOverbought:     70,
		VotingPolicy:      model.VotingRelaxed,

		SpacingTarget: 0.75,
		SpacingMin:    0.35,
		SpacingMax:    1.5,
		CycleMax:      2.0,
		StopBuffer:    0.01,

		VolThreshold: 3.0,

		CooldownBaseSeconds: 300,

		RSIPeriod:       14,
		BollingerPeriod: 20,
		BollingerK:      2,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		StdDevPeriod:    30,
	}
}

// withDefaults fills any zero field from DefaultParams.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.MinSamples == 0 {
		p.MinSamples = d.MinSamples
	}
	if p.PositionThreshold == 0 {
		p.PositionThreshold = d.PositionThreshold
	}
	if p.RSIOversold == 0 {
		p.RSIOversold = d.RSIOversold
	}
	if p.RSIOverbought == 0 {
		p.RSIOverbought = d.RSIOverbought
	}
	if p.VotingPolicy == "" {
		p.VotingPolicy = d.VotingPolicy
	}
	if p.SpacingTarget == 0 {
		p.SpacingTarget = d.SpacingTarget
	}
	if p.SpacingMin == 0 {
		p.SpacingMin = d.SpacingMin
	}
	if p.SpacingMax == 0 {
		p.SpacingMax = d.SpacingMax
	}
	if p.CycleMax == 0 {
		p.CycleMax = d.CycleMax
	}
	if p.StopBuffer == 0 {
		p.StopBuffer = d.StopBuffer
	}
	if p.VolThreshold == 0 {
		p.VolThreshold = d.VolThreshold
	}
	if p.CooldownBaseSeconds == 0 {
		p.CooldownBaseSeconds = d.CooldownBaseSeconds
	}
	if p.RSIPeriod == 0 {
		p.RSIPeriod = d.RSIPeriod
	}
	if p.BollingerPeriod == 0 {
		p.BollingerPeriod = d.BollingerPeriod
	}
	if p.BollingerK == 0 {
		p.BollingerK = d.BollingerK
	}
	if p.MACDFast == 0 {
		p.MACDFast = d.MACDFast
	}
	if p.MACDSlow == 0 {
		p.MACDSlow = d.MACDSlow
	}
	if p.MACDSignal == 0 {
		p.MACDSignal = d.MACDSignal
	}
	if p.StdDevPeriod == 0 {
		p.StdDevPeriod = d.StdDevPeriod
	}
	return p
}
