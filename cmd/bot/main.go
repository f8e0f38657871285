package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nba-edge-bot/internal/alerts"
	"nba-edge-bot/internal/api"
	"nba-edge-bot/internal/config"
	"nba-edge-bot/internal/dashboard"
	"nba-edge-bot/internal/engine"
	"nba-edge-bot/internal/healthcheck"
	"nba-edge-bot/internal/market"
	"nba-edge-bot/internal/news"
)

func main() {
	cfg := config.Load()

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Creating data dir %s: %v", cfg.DataDir, err)
	}

	// Shared HTTP transport with rate limiting and retries
	httpClient := api.NewClient(cfg.RequestsPerMin, cfg.HTTPTimeout, cfg.MaxRetries)

	newsClient := news.NewClient(httpClient, cfg.GeminiAPIKey, cfg.NewsModel)

	marketClient, err := market.NewClient(httpClient, cfg.GammaAPIKey, cfg.Simulate, nil)
	if err != nil {
		log.Fatalf("Market client: %v", err)
	}

	// Telegram is optional; the bot runs on log output alone without it
	var telegram *alerts.Telegram
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		telegram, err = alerts.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, 3, time.Second)
		if err != nil {
			log.Printf("Telegram disabled: %v", err)
		} else {
			log.Printf("Telegram alerts enabled")
		}
	}
	notifier := alerts.NewNotifier(5*time.Minute, telegram) // 5 min cooldown between same alerts

	mode := "SIMULATE"
	if !cfg.Simulate {
		mode = "LIVE"
	}
	notifier.LogStartup(fmt.Sprintf(" mode=%s capital=$%.2f stake=%.0f%% exposure=%.0f%% model=%s data=%s",
		mode, cfg.InitialCapital, cfg.MaxStakePct*100, cfg.MaxExposurePct*100, cfg.NewsModel, cfg.DataDir))

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	// Dashboard and metrics server
	go func() {
		srv := dashboard.NewServer(cfg.StateFile(), cfg.InitialCapital, cfg.Simulate, nil)
		addr := ":" + cfg.Port
		log.Printf("Dashboard listening on %s", addr)
		if err := http.ListenAndServe(addr, srv.Router()); err != nil {
			log.Printf("Dashboard error: %v", err)
		}
	}()

	bot := engine.New(newsClient, marketClient, notifier, cfg, nil)

	// FORCE_MODE runs one phase and exits, for cron-style deployments
	// and manual recovery
	if cfg.ForceMode != "" {
		if err := runForced(ctx, cfg, bot, newsClient); err != nil {
			log.Fatalf("Forced %s run: %v", cfg.ForceMode, err)
		}
		log.Printf("Forced %s run complete", cfg.ForceMode)
		return
	}

	// Startup self-test, once per data volume
	if _, err := os.Stat(cfg.HealthFlag()); os.IsNotExist(err) {
		log.Println("Running startup health check...")
		if err := healthcheck.New(pinger(cfg, newsClient)).Run(ctx); err != nil {
			log.Fatalf("Health check failed: %v", err)
		}
		if err := os.WriteFile(cfg.HealthFlag(), []byte(time.Now().Format(time.RFC3339)+"\n"), 0o644); err != nil {
			log.Fatalf("Writing health flag: %v", err)
		}
	}

	if err := bot.Run(ctx); err != nil {
		log.Fatalf("Scheduler: %v", err)
	}
	log.Println("Bot stopped gracefully")
}

func runForced(ctx context.Context, cfg config.Config, bot *engine.Engine, newsClient *news.Client) error {
	now := time.Now()
	switch cfg.ForceMode {
	case "morning":
		return bot.RunMorning(ctx, now)
	case "evening":
		return bot.RunEvening(ctx, now)
	case "healthcheck":
		return healthcheck.New(pinger(cfg, newsClient)).Run(ctx)
	default:
		return fmt.Errorf("unknown FORCE_MODE %q", cfg.ForceMode)
	}
}

// pinger returns the news service probe, or nil when no API key is
// configured so the health check runs its offline checks only.
func pinger(cfg config.Config, newsClient *news.Client) healthcheck.Pinger {
	if cfg.GeminiAPIKey == "" {
		return nil
	}
	return newsClient
}
