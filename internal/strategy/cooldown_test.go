package strategy

import (
	"testing"
	"time"
)

func TestCooldown_Window(t *testing.T) {
	c := NewCooldownTracker(300)
	cases := []struct {
		vol, std float64
		want     time.Duration
	}{
		{1.0, 0.01, 300 * time.Second},  // no excess
		{0.2, 0.001, 300 * time.Second}, // negative excess clamps to base
		{3.0, 0.02, 480 * time.Second},  // (2 + 1) extra minutes
		{6.0, 0.01, 600 * time.Second},  // volatility only
	}
	for _, tc := range cases {
		if got := c.Window(tc.vol, tc.std); got != tc.want {
			t.Errorf("Window(%.2f, %.3f) = %v, want %v", tc.vol, tc.std, got, tc.want)
		}
	}
}

func TestCooldown_SuppressesWithinWindow(t *testing.T) {
	c := NewCooldownTracker(300)
	now := time.Unix(1_700_000_000, 0)
	c.SetClock(func() time.Time { return now })

	if !c.Allow("BTC_USDT_PERP", 1.0, 0.01) {
		t.Fatal("first trigger must be admitted")
	}
	now = now.Add(299 * time.Second)
	if c.Allow("BTC_USDT_PERP", 1.0, 0.01) {
		t.Error("trigger inside the window must be suppressed")
	}
}

func TestCooldown_BoundaryIsInclusive(t *testing.T) {
	c := NewCooldownTracker(300)
	now := time.Unix(1_700_000_000, 0)
	c.SetClock(func() time.Time { return now })

	c.Allow("ETH_USDT_PERP", 1.0, 0.01)
	now = now.Add(300 * time.Second)
	if !c.Allow("ETH_USDT_PERP", 1.0, 0.01) {
		t.Error("a gap exactly equal to the window must be admitted")
	}
}

func TestCooldown_PerInstrument(t *testing.T) {
	c := NewCooldownTracker(300)
	now := time.Unix(1_700_000_000, 0)
	c.SetClock(func() time.Time { return now })

	c.Allow("AAA_USDT_PERP", 1.0, 0.01)
	if !c.Allow("BBB_USDT_PERP", 1.0, 0.01) {
		t.Error("cooldown must not leak across instruments")
	}
}
