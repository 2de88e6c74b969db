package strategy

import (
	"sync"
	"time"
)

// CooldownTracker gates how often a given instrument may re-trigger a signal.
// The window is the base duration extended by excess volatility and price
// dispersion. Entries are overwritten on every admitted trigger and never
// pruned; lookups are by key so stale entries are harmless.
type CooldownTracker struct {
	mu   sync.Mutex
	last map[string]time.Time
	base float64 // seconds
	now  func() time.Time
}

// NewCooldownTracker creates a tracker with the given base window in seconds.
func NewCooldownTracker(baseSeconds float64) *CooldownTracker {
	if baseSeconds <= 0 {
		baseSeconds = DefaultParams().CooldownBaseSeconds
	}
	return &CooldownTracker{
		last: make(map[string]time.Time),
		base: baseSeconds,
		now:  time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (c *CooldownTracker) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Window returns the cooldown duration for the given market conditions.
func (c *CooldownTracker) Window(volatilityPct, stdDev float64) time.Duration {
	extra := (volatilityPct - 1) + (stdDev-0.01)*100
	if extra < 0 {
		extra = 0
	}
	seconds := c.base + extra*60
	return time.Duration(seconds * float64(time.Second))
}

// Allow reports whether the instrument may trigger now, and if so records the
// trigger immediately. A gap exactly equal to the window is admitted.
func (c *CooldownTracker) Allow(symbol string, volatilityPct, stdDev float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if last, seen := c.last[symbol]; seen {
		if now.Sub(last) < c.Window(volatilityPct, stdDev) {
			return false
		}
	}
	c.last[symbol] = now
	return true
}
