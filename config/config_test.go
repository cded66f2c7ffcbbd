package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTPServer.Port != 8080 {
		t.Errorf("HTTPServer.Port = %d, want 8080", cfg.HTTPServer.Port)
	}
	if cfg.Wizard.AutoAdvanceDelay != 300*time.Millisecond {
		t.Errorf("Wizard.AutoAdvanceDelay = %v, want 300ms", cfg.Wizard.AutoAdvanceDelay)
	}
	if cfg.Wizard.RevealDuration != 2*time.Second {
		t.Errorf("Wizard.RevealDuration = %v, want 2s", cfg.Wizard.RevealDuration)
	}
	if cfg.Session.TTL != 30*time.Minute || cfg.Session.MaxSessions != 1000 {
		t.Errorf("Session = %+v", cfg.Session)
	}
	if cfg.GoogleCalendar.CalendarID != "primary" {
		t.Errorf("GoogleCalendar.CalendarID = %q, want primary", cfg.GoogleCalendar.CalendarID)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("HTTP_SERVER_PORT", "9090")
	t.Setenv("WIZARD_TIMEZONE", "Local")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPServer.Port != 9090 {
		t.Errorf("HTTPServer.Port = %d, want 9090", cfg.HTTPServer.Port)
	}
	if cfg.Wizard.Timezone != "Local" {
		t.Errorf("Wizard.Timezone = %q", cfg.Wizard.Timezone)
	}
	if cfg.Telegram.BotToken != "123:abc" {
		t.Errorf("Telegram.BotToken = %q", cfg.Telegram.BotToken)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown timezone", "WIZARD_TIMEZONE", "Mars/Olympus"},
		{"no sessions", "SESSION_MAX_SESSIONS", "0"},
		{"negative delay", "WIZARD_AUTO_ADVANCE_DELAY", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s should fail", tt.key, tt.val)
			}
		})
	}
}

func TestExpandEnvVar(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("DOOM_TEST_TOKEN", "secret")

	if got := expandEnvVar("${DOOM_TEST_TOKEN}"); got != "secret" {
		t.Errorf("expandEnvVar() = %q, want secret", got)
	}
	if got := expandEnvVar("plain"); got != "plain" {
		t.Errorf("expandEnvVar() = %q, want plain", got)
	}
}
