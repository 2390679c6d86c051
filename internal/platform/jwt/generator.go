// Package jwtmw はAPIクライアント用のJWT発行と検証ミドルウェアを提供します。
package jwtmw

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret はJWTの署名鍵を設定する環境変数名です。未設定の場合、APIは認証なしで公開されます。
const EnvKeyJWTSecret = "JWT_SECRET"

// Issuer は発行するトークンの iss クレームです。
const Issuer = "disclosure_backend"

// ErrEmptySubject はsubjectが空の場合に返されます。
var ErrEmptySubject = errors.New("subject must not be empty")

// Generator defines the interface for API token generation.
type Generator interface {
	// GenerateToken creates a signed token for the given API client.
	GenerateToken(subject string) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) Generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates an HS256 token with sub, iss, iat and exp claims.
func (g *generator) GenerateToken(subject string) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", ErrEmptySubject
	}
	now := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
