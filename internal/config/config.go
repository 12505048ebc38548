package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración del servicio. Todo viene de env (o .env en dev).
type Config struct {
	Port string `mapstructure:"PORT"`

	DatabaseURL string `mapstructure:"DB_DSN"`
	AutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`

	// Vacío => modo dev (header X-Debug-User-ID).
	JWTSecret string `mapstructure:"JWT_SECRET"`
	JWTIssuer string `mapstructure:"JWT_ISSUER"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	AMQPURL      string `mapstructure:"AMQP_URL"`
	AMQPExchange string `mapstructure:"AMQP_EXCHANGE"`

	RedisURL string `mapstructure:"REDIS_URL"`

	RankingResetEnabled  bool   `mapstructure:"RANKING_RESET_ENABLED"`
	RankingResetSchedule string `mapstructure:"RANKING_RESET_SCHEDULE"`

	// Fuente remota opcional para el toggle de gamificación.
	SettingsServiceURL    string `mapstructure:"SETTINGS_SERVICE_URL"`
	SettingsServiceAPIKey string `mapstructure:"SETTINGS_SERVICE_API_KEY"`
}

var keys = []string{
	"PORT",
	"DB_DSN",
	"DB_AUTO_MIGRATE",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"APP_NAME",
	"JWT_SECRET",
	"JWT_ISSUER",
	"CORS_ALLOWED_ORIGINS",
	"AMQP_URL",
	"AMQP_EXCHANGE",
	"REDIS_URL",
	"RANKING_RESET_ENABLED",
	"RANKING_RESET_SCHEDULE",
	"SETTINGS_SERVICE_URL",
	"SETTINGS_SERVICE_API_KEY",
}

// LoadConfig lee .env (si existe) y luego variables de entorno.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("APP_NAME", "pet-adoption-hub")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("AMQP_EXCHANGE", "adoption_events")
	viper.SetDefault("RANKING_RESET_ENABLED", true)
	viper.SetDefault("RANKING_RESET_SCHEDULE", "0 0 1 * *") // día 1 de cada mes, 00:00
	viper.AutomaticEnv()

	for _, k := range keys {
		_ = viper.BindEnv(k)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Port = strings.TrimPrefix(strings.TrimSpace(cfg.Port), ":")
	if cfg.Port == "" {
		return nil, errors.New("PORT must not be empty")
	}
	if cfg.RankingResetEnabled && strings.TrimSpace(cfg.RankingResetSchedule) == "" {
		return nil, errors.New("RANKING_RESET_SCHEDULE required when RANKING_RESET_ENABLED=true")
	}
	if cfg.SettingsServiceURL != "" && cfg.SettingsServiceAPIKey == "" {
		return nil, errors.New("SETTINGS_SERVICE_API_KEY required when SETTINGS_SERVICE_URL is set")
	}

	return &cfg, nil
}

// AllowedOrigins separa CORS_ALLOWED_ORIGINS (CSV).
func (c Config) AllowedOrigins() []string {
	out := make([]string, 0)
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
