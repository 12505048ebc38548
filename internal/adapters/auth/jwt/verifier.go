package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-hub/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrMissingUserID = errors.New("token missing subject")
)

// Claims del token emitido por el IdP. "sub" es el id de usuario.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	gojwt.RegisteredClaims
}

type Config struct {
	Secret   string
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// Verifier implementa auth.AuthVerifier con HS256.
type Verifier struct {
	secret []byte
	parser *gojwt.Parser
}

func NewVerifier(cfg Config) *Verifier {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
	}
	if iss := strings.TrimSpace(cfg.Issuer); iss != "" {
		opts = append(opts, gojwt.WithIssuer(iss))
	}
	if aud := strings.TrimSpace(cfg.Audience); aud != "" {
		opts = append(opts, gojwt.WithAudience(aud))
	}
	if cfg.Leeway > 0 {
		opts = append(opts, gojwt.WithLeeway(cfg.Leeway))
	}

	return &Verifier{
		secret: []byte(strings.TrimSpace(cfg.Secret)),
		parser: gojwt.NewParser(opts...),
	}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var c Claims
	_, err := v.parser.ParseWithClaims(token, &c, func(*gojwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	uid := strings.TrimSpace(c.Subject)
	if uid == "" {
		return auth.Claims{}, ErrMissingUserID
	}

	return auth.Claims{
		UserID: uid,
		Email:  strings.TrimSpace(c.Email),
		Name:   strings.TrimSpace(c.Name),
		Role:   strings.TrimSpace(c.Role),
	}, nil
}
