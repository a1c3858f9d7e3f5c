package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BotConnection controls how the bot receives updates from Telegram.
type BotConnection struct {
	Mode           string // "polling" or "webhook"
	WebhookURL     string // public base URL, webhook mode only
	ListenAddr     string // local address the webhook server binds
	WorkerPoolSize int
}

// BotConfig holds the Telegram-facing settings.
type BotConfig struct {
	Token      string
	Connection BotConnection
}

// AuthConfig holds the settings for the external OTP auth provider.
type AuthConfig struct {
	BaseURL string
	AnonKey string
}

// ExtractionConfig holds the settings for the vision model endpoint.
type ExtractionConfig struct {
	BaseURL string
	Model   string
	APIKey  string
}

// TranslateConfig holds the settings for the translation endpoint.
type TranslateConfig struct {
	BaseURL string
	APIKey  string
}

// RegistryConfig holds the settings for the voter registry API.
type RegistryConfig struct {
	BaseURL      string
	AdminAddress string
}

// Config holds all configuration for the application.
type Config struct {
	AppEnv     string
	Bot        BotConfig
	Auth       AuthConfig
	Extraction ExtractionConfig
	Translate  TranslateConfig
	Registry   RegistryConfig
	AuditDir   string
	OpsAddr    string
}

// bindings maps viper keys to the environment variables that feed them.
var bindings = map[string]string{
	"app.env":             "APP_ENV",
	"bot.token":           "TELEGRAM_BOT_TOKEN",
	"bot.mode":            "BOT_MODE",
	"bot.webhook_url":     "BOT_WEBHOOK_URL",
	"bot.listen_addr":     "BOT_LISTEN_ADDR",
	"bot.workers":         "BOT_WORKER_POOL_SIZE",
	"auth.base_url":       "AUTH_BASE_URL",
	"auth.anon_key":       "AUTH_ANON_KEY",
	"extraction.base_url": "GEMINI_BASE_URL",
	"extraction.model":    "GEMINI_MODEL",
	"extraction.api_key":  "GEMINI_API_KEY",
	"translate.base_url":  "TRANSLATE_BASE_URL",
	"translate.api_key":   "TRANSLATE_API_KEY",
	"registry.base_url":   "REGISTRY_BASE_URL",
	"registry.admin_addr": "REGISTRY_ADMIN_ADDRESS",
	"audit.dir":           "AUDIT_DIR",
	"ops.addr":            "OPS_LISTEN_ADDR",
}

// Load loads configuration from the environment, with a .env file as an
// optional source. Service URLs default to the endpoints the original client
// shipped with; secrets must be provided.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine; the process environment is authoritative.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	viper.SetDefault("app.env", "dev")
	viper.SetDefault("bot.mode", "polling")
	viper.SetDefault("bot.workers", 4)
	viper.SetDefault("bot.listen_addr", "127.0.0.1:8443")
	viper.SetDefault("extraction.base_url", "https://generativelanguage.googleapis.com")
	viper.SetDefault("extraction.model", "gemini-2.5-pro-preview")
	viper.SetDefault("translate.base_url", "https://translation.googleapis.com")
	viper.SetDefault("audit.dir", "audit")
	viper.SetDefault("ops.addr", ":8090")

	cfg := Config{
		AppEnv: viper.GetString("app.env"),
		Bot: BotConfig{
			Token: viper.GetString("bot.token"),
			Connection: BotConnection{
				Mode:           viper.GetString("bot.mode"),
				WebhookURL:     viper.GetString("bot.webhook_url"),
				ListenAddr:     viper.GetString("bot.listen_addr"),
				WorkerPoolSize: viper.GetInt("bot.workers"),
			},
		},
		Auth: AuthConfig{
			BaseURL: viper.GetString("auth.base_url"),
			AnonKey: viper.GetString("auth.anon_key"),
		},
		Extraction: ExtractionConfig{
			BaseURL: viper.GetString("extraction.base_url"),
			Model:   viper.GetString("extraction.model"),
			APIKey:  viper.GetString("extraction.api_key"),
		},
		Translate: TranslateConfig{
			BaseURL: viper.GetString("translate.base_url"),
			APIKey:  viper.GetString("translate.api_key"),
		},
		Registry: RegistryConfig{
			BaseURL:      viper.GetString("registry.base_url"),
			AdminAddress: viper.GetString("registry.admin_addr"),
		},
		AuditDir: viper.GetString("audit.dir"),
		OpsAddr:  viper.GetString("ops.addr"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Bot.Token == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is not set in environment or .env file")
	}
	if c.Bot.Connection.Mode != "polling" && c.Bot.Connection.Mode != "webhook" {
		return fmt.Errorf("BOT_MODE must be 'polling' or 'webhook', got %q", c.Bot.Connection.Mode)
	}
	if c.Bot.Connection.Mode == "webhook" && c.Bot.Connection.WebhookURL == "" {
		return errors.New("BOT_WEBHOOK_URL is required in webhook mode")
	}
	if c.Bot.Connection.WorkerPoolSize < 1 {
		return fmt.Errorf("BOT_WORKER_POOL_SIZE must be at least 1, got %d", c.Bot.Connection.WorkerPoolSize)
	}
	if c.Auth.BaseURL == "" {
		return errors.New("AUTH_BASE_URL is not set")
	}
	if c.Auth.AnonKey == "" {
		return errors.New("AUTH_ANON_KEY is not set")
	}
	if c.Extraction.APIKey == "" {
		return errors.New("GEMINI_API_KEY is not set")
	}
	if c.Registry.BaseURL == "" {
		return errors.New("REGISTRY_BASE_URL is not set")
	}
	// No translate key means the bot serves English only.
	return nil
}
