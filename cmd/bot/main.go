package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/neodize/rsi-grid-alert-bot/internal/collector"
	"github.com/neodize/rsi-grid-alert-bot/internal/config"
	"github.com/neodize/rsi-grid-alert-bot/internal/notifier"
	"github.com/neodize/rsi-grid-alert-bot/internal/recorder"
	"github.com/neodize/rsi-grid-alert-bot/internal/scheduler"
	"github.com/neodize/rsi-grid-alert-bot/internal/state"
	"github.com/neodize/rsi-grid-alert-bot/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] grid scanner starting...")

	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	params := cfg.Params()

	fetcher := collector.NewPionexFetcher(cfg.Exchange.BaseURL, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	universe := collector.NewUniverse(fetcher)
	universe.MinPrice = cfg.Scanner.MinPrice
	universe.MinNotional = cfg.Scanner.MinNotional
	universe.TopN = cfg.Scanner.TopCandidates
	universe.QuickLimit = cfg.Scanner.QuickLimit

	cooldown := strategy.NewCooldownTracker(cfg.Scanner.CooldownBaseSeconds)
	analyzer := strategy.NewAnalyzer(fetcher, cooldown, params)
	analyzer.CoarseLimit = cfg.Scanner.CoarseLimit
	analyzer.FineLimit = cfg.Scanner.FineLimit

	states := state.NewFileStore(cfg.State.File)

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, universe, analyzer, states, tn, rec, params)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, scanning now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] grid scanner is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] grid scanner stopped")
}
