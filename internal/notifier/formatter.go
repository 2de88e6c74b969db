package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/neodize/rsi-grid-alert-bot/internal/model"
)

// maxMessageLen keeps chunks under Telegram's 4096-character limit.
const maxMessageLen = 4000

var zoneLines = map[model.Zone]string{
	model.ZoneLong:  "📈 Entry Zone: 🟢 Long",
	model.ZoneShort: "📉 Entry Zone: 🔴 Short",
}

// FormatAlert renders one alert as a Markdown message block.
func FormatAlert(a *model.Alert) string {
	switch a.Type {
	case model.TransitionNew:
		return fmt.Sprintf("🆕 *%s* — new grid opportunity\n%s", a.Symbol, formatSignal(a.Signal))
	case model.TransitionFlipped:
		return fmt.Sprintf("🔁 *%s* — flipped %s → %s\n%s",
			a.Symbol, a.PrevZone, a.Signal.Zone, formatSignal(a.Signal))
	case model.TransitionExitedRange:
		return fmt.Sprintf("🛑 *%s* broke out of its grid range — consider closing its grid bot.\nReopened:\n%s",
			a.Symbol, formatSignal(a.Signal))
	case model.TransitionExitedDropped:
		return fmt.Sprintf("🛑 *%s* dropped (last mid ≈ %s) — consider closing its grid bot.",
			a.Symbol, formatPrice(a.ProxyPrice))
	case model.TransitionCycleWarning:
		return fmt.Sprintf("⏰ *%s* — grid cycle (%.1f days) is nearly complete, review the position.",
			a.Symbol, a.Signal.Plan.CycleDays)
	default:
		return fmt.Sprintf("*%s* — %s", a.Symbol, a.Reason)
	}
}

func formatSignal(s *model.Signal) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 Range: `%s – %s`\n", formatPrice(s.Plan.Low), formatPrice(s.Plan.High)))
	b.WriteString(zoneLines[s.Zone] + "\n")
	b.WriteString(fmt.Sprintf("💰 Grids: `%d`  |  📏 Spacing: `%.2f%%`\n", s.Plan.GridCount, s.Plan.SpacingPct))
	b.WriteString(fmt.Sprintf("🌪️ Volatility: `%.1f%%`  |  ⏱️ Cycle: `%.1f days`\n",
		s.Indicators.VolatilityPct, s.Plan.CycleDays))
	b.WriteString(fmt.Sprintf("🎯 Score: `%.1f`  |  RSI: `%.1f`", s.Score, s.Indicators.RSI))
	if s.Notional > 0 {
		b.WriteString(fmt.Sprintf("  |  Vol 24h: `$%s`", humanize.CommafWithDigits(s.Notional, 0)))
	}
	return b.String()
}

// formatPrice picks a precision that suits the price magnitude.
func formatPrice(p float64) string {
	switch {
	case p < 0.1:
		return fmt.Sprintf("$%.8f", p)
	case p < 1:
		return fmt.Sprintf("$%.4f", p)
	default:
		return fmt.Sprintf("$%s", humanize.FormatFloat("#,###.##", p))
	}
}

// FormatScanHeader renders the summary line sent before the alert blocks.
func FormatScanHeader(at time.Time, scanned, signals, alerts int) string {
	return fmt.Sprintf("📡 *Grid Scanner* — %s\nScanned %d, signals %d, alerts %d",
		at.UTC().Format("2006-01-02 15:04 UTC"), scanned, signals, alerts)
}

// FormatNoResults renders the message for a scan with nothing to report.
func FormatNoResults(at time.Time) string {
	return fmt.Sprintf("📉 *Grid Scanner* — %s\nNo instruments met the criteria.",
		at.UTC().Format("2006-01-02 15:04 UTC"))
}

// ChunkMessages joins message blocks into chunks that fit one Telegram
// message. A block that alone exceeds the limit is split at line boundaries
// so no chunk is ever oversized.
func ChunkMessages(msgs []string) []string {
	var chunks []string
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			chunks = append(chunks, strings.TrimRight(buf.String(), "\n"))
			buf.Reset()
		}
	}
	for _, m := range msgs {
		if len(m) > maxMessageLen {
			flush()
			chunks = append(chunks, splitOversize(m)...)
			continue
		}
		if buf.Len() > 0 && buf.Len()+len(m)+2 > maxMessageLen {
			flush()
		}
		buf.WriteString(m)
		buf.WriteString("\n\n")
	}
	flush()
	return chunks
}

// splitOversize breaks one oversized block at newlines, hard-splitting any
// single line longer than the limit.
func splitOversize(m string) []string {
	var chunks []string
	var buf strings.Builder
	for _, line := range strings.Split(m, "\n") {
		for len(line) > maxMessageLen {
			if buf.Len() > 0 {
				chunks = append(chunks, strings.TrimRight(buf.String(), "\n"))
				buf.Reset()
			}
			chunks = append(chunks, line[:maxMessageLen])
			line = line[maxMessageLen:]
		}
		if buf.Len() > 0 && buf.Len()+len(line)+1 > maxMessageLen {
			chunks = append(chunks, strings.TrimRight(buf.String(), "\n"))
			buf.Reset()
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	if buf.Len() > 0 {
		chunks = append(chunks, strings.TrimRight(buf.String(), "\n"))
	}
	return chunks
}
