package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv        string
	LogLevel      string
	EncryptionKey string
	Database      DatabaseConfig
	Bot           BotConfig
	Locale        LocaleConfig
	Plugins       PluginsConfig
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	URL      string
	MaxConns int32
}

// BotConfig holds the settings of the Telegram bot.
type BotConfig struct {
	Token    string
	Prefixes []string
	Mode     string // "polling" or "webhook"
	Polling  PollingConfig
	Webhook  WebhookConfig
}

// PollingConfig holds the long-polling settings.
type PollingConfig struct {
	Timeout int // Seconds
}

// WebhookConfig holds the webhook settings.
type WebhookConfig struct {
	URL        string
	ListenPort int
}

// LocaleConfig holds the localisation settings.
type LocaleConfig struct {
	Default string
}

// PluginsConfig lists plugins to skip at startup.
type PluginsConfig struct {
	Disabled []string
}

// IsDev reports whether the app runs in development mode.
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development"
}

// envBindings maps viper keys to environment variable names.
var envBindings = map[string]string{
	"app.env":             "APP_ENV",
	"log.level":           "LOG_LEVEL",
	"encryption.key":      "ENCRYPTION_KEY",
	"database.url":        "DATABASE_URL",
	"database.max_conns":  "DATABASE_MAX_CONNS",
	"bot.token":           "BOT_TOKEN",
	"bot.prefixes":        "BOT_PREFIXES",
	"bot.mode":            "BOT_MODE",
	"bot.polling.timeout": "BOT_POLLING_TIMEOUT",
	"bot.webhook.url":     "BOT_WEBHOOK_URL",
	"bot.webhook.port":    "BOT_WEBHOOK_PORT",
	"locale.default":      "LOCALE_DEFAULT",
	"plugins.disabled":    "PLUGINS_DISABLED",
}

// Load loads configuration from a .env file, an optional config.yaml and
// environment variables. Environment variables win.
func Load() (*Config, error) {
	// 1. Load .env file into the process environment
	if err := godotenv.Load(); err != nil {
		// A missing file is fine, OS-set env vars are used instead
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// 2. Optional config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 3. Explicitly bind viper keys to env var names
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	// 4. Set defaults
	v.SetDefault("app.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("bot.prefixes", "/,!")
	v.SetDefault("bot.mode", "polling")
	v.SetDefault("bot.polling.timeout", 60)
	v.SetDefault("bot.webhook.port", 8443)
	v.SetDefault("locale.default", "en-GB")

	// 5. Get values from viper
	cfg := Config{
		AppEnv:        v.GetString("app.env"),
		LogLevel:      v.GetString("log.level"),
		EncryptionKey: v.GetString("encryption.key"),
		Database: DatabaseConfig{
			URL:      v.GetString("database.url"),
			MaxConns: v.GetInt32("database.max_conns"),
		},
		Bot: BotConfig{
			Token:    v.GetString("bot.token"),
			Prefixes: stringList(v, "bot.prefixes"),
			Mode:     v.GetString("bot.mode"),
			Polling:  PollingConfig{Timeout: v.GetInt("bot.polling.timeout")},
			Webhook: WebhookConfig{
				URL:        v.GetString("bot.webhook.url"),
				ListenPort: v.GetInt("bot.webhook.port"),
			},
		},
		Locale:  LocaleConfig{Default: v.GetString("locale.default")},
		Plugins: PluginsConfig{Disabled: stringList(v, "plugins.disabled")},
	}

	// 6. Validation
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// stringList reads a comma-separated env value or a YAML list.
func stringList(v *viper.Viper, key string) []string {
	raw, ok := v.Get(key).(string)
	if !ok {
		return v.GetStringSlice(key)
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	if len(c.Bot.Prefixes) == 0 {
		return errors.New("BOT_PREFIXES must list at least one prefix")
	}
	for _, p := range c.Bot.Prefixes {
		if utf8.RuneCountInString(p) != 1 {
			return fmt.Errorf("BOT_PREFIXES entries must be single characters, got %q", p)
		}
	}

	switch c.Bot.Mode {
	case "polling":
	case "webhook":
		if c.Bot.Webhook.URL == "" {
			return errors.New("BOT_WEBHOOK_URL is required in webhook mode")
		}
	default:
		return fmt.Errorf("BOT_MODE must be \"polling\" or \"webhook\", got %q", c.Bot.Mode)
	}

	if n := len(c.Locale.Default); n < 2 || n > 6 {
		return fmt.Errorf("LOCALE_DEFAULT must be 2 to 6 characters, got %q", c.Locale.Default)
	}

	if c.EncryptionKey != "" && len(c.EncryptionKey) != 64 {
		return fmt.Errorf("ENCRYPTION_KEY must be a 64-character hex string (32 bytes), but got %d chars", len(c.EncryptionKey))
	}
	return nil
}

// ValidateForServe checks the settings needed to run the bot.
func (c *Config) ValidateForServe() error {
	if err := c.ValidateForStorage(); err != nil {
		return err
	}
	if c.Bot.Token == "" {
		return errors.New("BOT_TOKEN is not set in environment or .env file")
	}
	return nil
}

// ValidateForStorage checks the settings needed to open the chat store.
func (c *Config) ValidateForStorage() error {
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is not set in environment or .env file")
	}
	if c.EncryptionKey == "" {
		return errors.New("ENCRYPTION_KEY is not set in environment or .env file")
	}
	return nil
}
