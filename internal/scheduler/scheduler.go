package scheduler

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/neodize/rsi-grid-alert-bot/internal/collector"
	"github.com/neodize/rsi-grid-alert-bot/internal/model"
	"github.com/neodize/rsi-grid-alert-bot/internal/notifier"
	"github.com/neodize/rsi-grid-alert-bot/internal/recorder"
	"github.com/neodize/rsi-grid-alert-bot/internal/state"
	"github.com/neodize/rsi-grid-alert-bot/internal/strategy"
)

// Scheduler runs the periodic scan and handles Telegram commands.
type Scheduler struct {
	Cron     *cron.Cron
	Universe *collector.Universe
	Analyzer *strategy.Analyzer
	States   state.Store
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	Params   strategy.Params
	Ctx      context.Context

	mu sync.Mutex // one scan at a time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, uni *collector.Universe, an *strategy.Analyzer, st state.Store, tn *notifier.TelegramNotifier, rec recorder.Recorder, params strategy.Params) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Universe: uni,
		Analyzer: an,
		States:   st,
		Notifier: tn,
		Recorder: rec,
		Params:   params,
		Ctx:      ctx,
	}
}

// Register registers the scan task with the given cron expression.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the scan immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Println("[INFO] running scan")
	started := time.Now()

	tickers, err := s.Universe.Discover()
	if err != nil {
		log.Printf("[ERROR] discover universe: %v", err)
		s.trySend(fmt.Sprintf("❌ Grid Scanner: universe discovery failed: %v", err))
		return
	}

	prev, err := s.States.Load()
	if err != nil {
		log.Printf("[ERROR] load state: %v", err)
		return
	}

	signals := make(map[string]*model.Signal)
	for _, t := range tickers {
		sig := s.Analyzer.Analyze(t.Symbol)
		if sig == nil {
			continue
		}
		sig.Notional = t.Notional
		signals[t.Symbol] = sig
	}

	res := strategy.Transition(prev, signals, started, s.Params)

	if err := s.States.Save(res.State); err != nil {
		log.Printf("[ERROR] save state: %v", err)
	}

	for _, sig := range signals {
		if err := s.Recorder.RecordSignal(sig); err != nil {
			log.Printf("[ERROR] record signal %s: %v", sig.Symbol, err)
		}
	}
	for i := range res.Alerts {
		if err := s.Recorder.RecordAlert(&res.Alerts[i]); err != nil {
			log.Printf("[ERROR] record alert %s: %v", res.Alerts[i].Symbol, err)
		}
	}
	if err := s.Recorder.RecordScan(&recorder.ScanSnapshot{
		Scanned: len(tickers),
		Signals: len(signals),
		Alerts:  len(res.Alerts),
	}); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}

	s.deliver(started, len(tickers), len(signals), res.Alerts)
	log.Printf("[INFO] scan done in %v: scanned=%d signals=%d alerts=%d",
		time.Since(started).Round(time.Millisecond), len(tickers), len(signals), len(res.Alerts))
}

func (s *Scheduler) deliver(at time.Time, scanned, signals int, alerts []model.Alert) {
	if len(alerts) == 0 {
		s.trySend(notifier.FormatNoResults(at))
		return
	}

	msgs := []string{notifier.FormatScanHeader(at, scanned, signals, len(alerts))}
	for i := range alerts {
		msgs = append(msgs, notifier.FormatAlert(&alerts[i]))
	}
	for _, chunk := range notifier.ChunkMessages(msgs) {
		s.trySend(chunk)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/scan":
		go s.RunScanNow()
		return "🔍 Scan started."
	case "/status":
		return s.formatStatus()
	default:
		return "Commands:\n• /scan — run a scan now\n• /status — active grid opportunities"
	}
}

func (s *Scheduler) formatStatus() string {
	entries, err := s.States.Load()
	if err != nil {
		return fmt.Sprintf("❌ load state: %v", err)
	}
	if len(entries) == 0 {
		return "No active grid opportunities."
	}

	symbols := make([]string, 0, len(entries))
	for sym := range entries {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 Active grid opportunities (%d):\n", len(entries)))
	for _, sym := range symbols {
		e := entries[sym]
		b.WriteString(fmt.Sprintf("• %s %s  %.6g – %.6g  since %s\n",
			sym, e.Zone, e.Low, e.High, e.StartTime.UTC().Format("01-02 15:04")))
	}
	return b.String()
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
