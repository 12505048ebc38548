package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	// viper ignora env vacíos: deben ganar los defaults.
	t.Setenv("RANKING_RESET_SCHEDULE", "")
	t.Setenv("SETTINGS_SERVICE_URL", "")
	t.Setenv("AMQP_EXCHANGE", "")
	t.Setenv("PORT", ":9090")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.AMQPExchange != "adoption_events" {
		t.Fatalf("expected default exchange, got %q", cfg.AMQPExchange)
	}
	if !cfg.AutoMigrate {
		t.Fatalf("expected auto migrate by default")
	}
}

func TestLoadConfig_RemoteSettingsRequireAPIKey(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("PORT", "8080")
	t.Setenv("SETTINGS_SERVICE_URL", "http://settings.local")
	t.Setenv("SETTINGS_SERVICE_API_KEY", "")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("expected missing api key error")
	}
	if !strings.Contains(err.Error(), "SETTINGS_SERVICE_API_KEY") {
		t.Fatalf("expected error to mention api key, got %v", err)
	}
}

func TestConfig_AllowedOrigins(t *testing.T) {
	c := Config{CORSAllowedOrigins: " https://a.org, ,https://b.org "}
	got := c.AllowedOrigins()
	if len(got) != 2 || got[0] != "https://a.org" || got[1] != "https://b.org" {
		t.Fatalf("unexpected origins: %#v", got)
	}
}
