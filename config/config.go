package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// Interview
	Wizard  WizardConfig
	Session SessionConfig

	// Integrations
	Telegram       TelegramConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	RequestsPerMin int
}

// WizardConfig tunes the interview flow. Timezone fixes what "today" means
// when deadlines are checked.
type WizardConfig struct {
	Timezone         string
	AutoAdvanceDelay time.Duration
	RevealDuration   time.Duration
	RevealInterval   time.Duration
}

type SessionConfig struct {
	MaxSessions int
	TTL         time.Duration
}

type TelegramConfig struct {
	BotToken   string
	WebhookURL string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
	LookaheadDays   int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")

	// Interview
	cfg.Wizard.Timezone = viper.GetString("wizard.timezone")
	cfg.Wizard.AutoAdvanceDelay = viper.GetDuration("wizard.auto_advance_delay")
	cfg.Wizard.RevealDuration = viper.GetDuration("wizard.reveal_duration")
	cfg.Wizard.RevealInterval = viper.GetDuration("wizard.reveal_interval")
	cfg.Session.MaxSessions = viper.GetInt("session.max_sessions")
	cfg.Session.TTL = viper.GetDuration("session.ttl")

	// Integrations
	cfg.Telegram.BotToken = expandEnvVar(viper.GetString("telegram.bot_token"))
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	cfg.GoogleCalendar.LookaheadDays = viper.GetInt("google_calendar.lookahead_days")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("rate_limit.requests_per_min", 120)

	viper.SetDefault("wizard.timezone", "UTC")
	viper.SetDefault("wizard.auto_advance_delay", "300ms")
	viper.SetDefault("wizard.reveal_duration", "2s")
	viper.SetDefault("wizard.reveal_interval", "50ms")
	viper.SetDefault("session.max_sessions", 1000)
	viper.SetDefault("session.ttl", "30m")

	viper.SetDefault("google_calendar.calendar_id", "primary")
	viper.SetDefault("google_calendar.lookahead_days", 14)
}

func validate(cfg *Config) error {
	if _, err := time.LoadLocation(cfg.Wizard.Timezone); err != nil {
		return fmt.Errorf("wizard.timezone %q: %w", cfg.Wizard.Timezone, err)
	}
	if cfg.Session.MaxSessions <= 0 {
		return fmt.Errorf("session.max_sessions must be positive, got %d", cfg.Session.MaxSessions)
	}
	if cfg.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", cfg.Session.TTL)
	}
	if cfg.Wizard.AutoAdvanceDelay < 0 {
		return fmt.Errorf("wizard.auto_advance_delay must not be negative, got %s", cfg.Wizard.AutoAdvanceDelay)
	}
	if cfg.GoogleCalendar.LookaheadDays <= 0 {
		return fmt.Errorf("google_calendar.lookahead_days must be positive, got %d", cfg.GoogleCalendar.LookaheadDays)
	}
	return nil
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}
