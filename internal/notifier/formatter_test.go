package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/neodize/rsi-grid-alert-bot/internal/model"
)

func sampleSignal() *model.Signal {
	return &model.Signal{
		Symbol:     "DOGE_USDT_PERP",
		Zone:       model.ZoneLong,
		Price:      0.085,
		Plan:       model.GridPlan{Low: 0.08, High: 0.09, SpacingPct: 0.5, GridCount: 24, CycleDays: 0.8},
		Indicators: model.IndicatorSet{RSI: 28.4, VolatilityPct: 11.8},
		Score:      42.5,
	}
}

func TestFormatAlert_New(t *testing.T) {
	msg := FormatAlert(&model.Alert{
		Symbol: "DOGE_USDT_PERP",
		Type:   model.TransitionNew,
		Signal: sampleSignal(),
		At:     time.Now(),
	})
	for _, want := range []string{"DOGE_USDT_PERP", "Long", "Grids", "Spacing", "Cycle", "Score"} {
		if !strings.Contains(msg, want) {
			t.Errorf("new alert missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatAlert_Dropped(t *testing.T) {
	msg := FormatAlert(&model.Alert{
		Symbol:     "DOGE_USDT_PERP",
		Type:       model.TransitionExitedDropped,
		ProxyPrice: 0.085,
		At:         time.Now(),
	})
	if !strings.Contains(msg, "dropped") {
		t.Errorf("dropped alert should mention the drop:\n%s", msg)
	}
}

func TestFormatPrice_Magnitudes(t *testing.T) {
	cases := []struct {
		price float64
		want  string
	}{
		{0.00001234, "$0.00001234"},
		{0.5678, "$0.5678"},
		{1234.5, "$1,234.50"},
	}
	for _, tc := range cases {
		if got := formatPrice(tc.price); got != tc.want {
			t.Errorf("formatPrice(%v) = %q, want %q", tc.price, got, tc.want)
		}
	}
}

func TestChunkMessages(t *testing.T) {
	long := strings.Repeat("x", 2500)
	chunks := ChunkMessages([]string{long, long, long})
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > maxMessageLen {
			t.Errorf("chunk %d exceeds the limit: %d chars", i, len(c))
		}
	}
	joined := strings.Join(chunks, "\n\n")
	if strings.Count(joined, long) != 3 {
		t.Error("chunking must preserve every message")
	}
}

func TestChunkMessages_SplitsOversizeBlock(t *testing.T) {
	line := strings.Repeat("y", 120)
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = line
	}
	block := strings.Join(lines, "\n") // ~6k chars, one block

	chunks := ChunkMessages([]string{"header", block, "footer"})
	for i, c := range chunks {
		if len(c) > maxMessageLen {
			t.Errorf("chunk %d exceeds the limit: %d chars", i, len(c))
		}
		if c == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
	joined := strings.Join(chunks, "\n")
	if strings.Count(joined, line) != 50 {
		t.Errorf("splitting must preserve every line, found %d of 50", strings.Count(joined, line))
	}
	if !strings.Contains(joined, "header") || !strings.Contains(joined, "footer") {
		t.Error("blocks around the oversized one must survive")
	}
}

func TestChunkMessages_HardSplitsOversizeLine(t *testing.T) {
	chunks := ChunkMessages([]string{strings.Repeat("z", 9000)})
	total := 0
	for i, c := range chunks {
		if len(c) > maxMessageLen {
			t.Errorf("chunk %d exceeds the limit: %d chars", i, len(c))
		}
		total += len(c)
	}
	if total != 9000 {
		t.Errorf("hard split must preserve all content, got %d of 9000 chars", total)
	}
}
