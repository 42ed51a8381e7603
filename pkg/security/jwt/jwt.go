package jwt

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generator issues HS512-signed tokens whose subject is the user's email.
// Tokens are only ever issued here; nothing in this service verifies them
// afterwards.
type Generator struct {
	secret []byte
	ttl    time.Duration
}

func NewGenerator(secret string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), ttl: ttl}
}

func (g *Generator) Issue(ctx context.Context, subject string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(g.secret)
}
