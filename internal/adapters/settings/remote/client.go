package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption-hub/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("settings service not configured")
	ErrUnauthorized  = errors.New("settings service unauthorized")
	ErrUpstream      = errors.New("settings service upstream error")
)

const gamificationPath = "/v1/settings/gamification"

type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string
	Timeout      time.Duration
}

// Toggle lee y escribe el interruptor de gamificación en un servicio de
// configuración externo. Implementa settings.Toggle y settings.ToggleWriter.
type Toggle struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

type gamificationDTO struct {
	Enabled bool `json:"enabled"`
}

func NewToggle(cfg Config) (*Toggle, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	c, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	return &Toggle{http: c, apiKey: strings.TrimSpace(cfg.APIKey), apiKeyHeader: h}, nil
}

func (t *Toggle) GamificationEnabled(ctx context.Context) (bool, error) {
	var out gamificationDTO
	if err := t.http.DoJSON(ctx, http.MethodGet, gamificationPath, t.headers(), nil, &out); err != nil {
		return false, mapErr(err)
	}
	return out.Enabled, nil
}

func (t *Toggle) SetGamificationEnabled(ctx context.Context, enabled bool) error {
	if err := t.http.DoJSON(ctx, http.MethodPut, gamificationPath, t.headers(), gamificationDTO{Enabled: enabled}, nil); err != nil {
		return mapErr(err)
	}
	return nil
}

func (t *Toggle) headers() map[string]string {
	return map[string]string{t.apiKeyHeader: t.apiKey}
}

func mapErr(err error) error {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		switch he.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrUnauthorized
		default:
			return fmt.Errorf("%w: status=%d", ErrUpstream, he.StatusCode)
		}
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
