package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for configuration values.
const (
	DefaultInitialCapital  = 20.0
	DefaultMaxStakePct     = 0.15
	DefaultMaxExposurePct  = 0.50
	DefaultMinStakeDollars = 0.10
	DefaultDataDir         = "/data"
	DefaultPort            = "8080"
	DefaultNewsModel       = "gemini-2.5-pro"
	DefaultEveningRetries  = 6
	DefaultEveningRetryGap = 60 * time.Minute
	DefaultRequestsPerMin  = 30
	DefaultHTTPTimeout     = 120 * time.Second
	DefaultMaxRetries      = 3
)

// Config holds all application configuration.
type Config struct {
	GeminiAPIKey string
	GammaAPIKey  string
	Simulate     bool

	DataDir string
	Port    string

	InitialCapital  float64
	MaxStakePct     float64
	MaxExposurePct  float64
	MinStakeDollars float64

	// ForceMode skips the scheduler and runs one phase immediately:
	// "morning", "evening", or "healthcheck".
	ForceMode       string
	EveningRetries  int
	EveningRetryGap time.Duration

	NewsModel string

	// Telegram alerts are optional; empty values disable them.
	TelegramBotToken string
	TelegramChatID   int64

	RequestsPerMin int
	HTTPTimeout    time.Duration
	MaxRetries     int
}

// Load reads configuration from environment variables (and .env file if present).
func Load() Config {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg := Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GammaAPIKey:  os.Getenv("GAMMA_API_KEY"),
		Simulate:     true,

		DataDir: DefaultDataDir,
		Port:    DefaultPort,

		InitialCapital:  DefaultInitialCapital,
		MaxStakePct:     DefaultMaxStakePct,
		MaxExposurePct:  DefaultMaxExposurePct,
		MinStakeDollars: DefaultMinStakeDollars,

		ForceMode:       os.Getenv("FORCE_MODE"),
		EveningRetries:  DefaultEveningRetries,
		EveningRetryGap: DefaultEveningRetryGap,

		NewsModel: DefaultNewsModel,

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),

		RequestsPerMin: DefaultRequestsPerMin,
		HTTPTimeout:    DefaultHTTPTimeout,
		MaxRetries:     DefaultMaxRetries,
	}

	// Live trading is opt-in.
	if os.Getenv("SIMULATE") == "false" {
		cfg.Simulate = false
	}

	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	if v := os.Getenv("INITIAL_CAPITAL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.InitialCapital = f
		}
	}

	if v := os.Getenv("MAX_STAKE_PCT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MaxStakePct = f
		}
	}

	if v := os.Getenv("MAX_EXPOSURE_PCT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MaxExposurePct = f
		}
	}

	if v := os.Getenv("MIN_STAKE_DOLLARS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MinStakeDollars = f
		}
	}

	if v := os.Getenv("EVENING_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EveningRetries = n
		}
	}

	if v := os.Getenv("EVENING_RETRY_MINS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EveningRetryGap = time.Duration(n) * time.Minute
		}
	}

	if v := os.Getenv("NEWS_MODEL"); v != "" {
		cfg.NewsModel = v
	}

	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.TelegramChatID = id
		}
	}

	if v := os.Getenv("REQUESTS_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RequestsPerMin = n
		}
	}

	if v := os.Getenv("HTTP_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTPTimeout = time.Duration(n) * time.Second
		}
	}

	if v := os.Getenv("MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxRetries = n
		}
	}

	return cfg
}

// Validate checks that configuration values are within acceptable ranges.
func Validate(cfg Config) error {
	// The health check can run offline, so it is the one mode that works
	// without a news service key.
	if cfg.GeminiAPIKey == "" && cfg.ForceMode != "healthcheck" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if !cfg.Simulate && cfg.GammaAPIKey == "" {
		return fmt.Errorf("GAMMA_API_KEY is required when SIMULATE=false")
	}
	if cfg.InitialCapital <= 0 {
		return fmt.Errorf("INITIAL_CAPITAL must be positive, got %f", cfg.InitialCapital)
	}
	if cfg.MaxStakePct <= 0 || cfg.MaxStakePct > 1 {
		return fmt.Errorf("MAX_STAKE_PCT must be between 0 and 1, got %f", cfg.MaxStakePct)
	}
	if cfg.MaxExposurePct <= 0 || cfg.MaxExposurePct > 1 {
		return fmt.Errorf("MAX_EXPOSURE_PCT must be between 0 and 1, got %f", cfg.MaxExposurePct)
	}
	if cfg.MaxStakePct > cfg.MaxExposurePct {
		return fmt.Errorf("MAX_STAKE_PCT %f exceeds MAX_EXPOSURE_PCT %f", cfg.MaxStakePct, cfg.MaxExposurePct)
	}
	if cfg.MinStakeDollars < 0 {
		return fmt.Errorf("MIN_STAKE_DOLLARS must be non-negative, got %f", cfg.MinStakeDollars)
	}
	switch cfg.ForceMode {
	case "", "morning", "evening", "healthcheck":
	default:
		return fmt.Errorf("FORCE_MODE must be morning, evening, or healthcheck, got %q", cfg.ForceMode)
	}
	if cfg.EveningRetries < 0 {
		return fmt.Errorf("EVENING_RETRIES must be non-negative, got %d", cfg.EveningRetries)
	}
	if cfg.EveningRetryGap < time.Minute {
		return fmt.Errorf("EVENING_RETRY_MINS must be at least 1, got %v", cfg.EveningRetryGap)
	}
	if cfg.RequestsPerMin < 1 {
		return fmt.Errorf("REQUESTS_PER_MIN must be at least 1, got %d", cfg.RequestsPerMin)
	}
	return nil
}

// StateFile is the portfolio ledger path.
func (c Config) StateFile() string {
	return filepath.Join(c.DataDir, "portfolio.json")
}

// HealthFlag marks that the startup health check passed on this volume.
func (c Config) HealthFlag() string {
	return filepath.Join(c.DataDir, ".healthcheck_ok")
}

// FirstRunFlag marks that the first-boot session already ran.
func (c Config) FirstRunFlag() string {
	return filepath.Join(c.DataDir, ".first_run_done")
}
