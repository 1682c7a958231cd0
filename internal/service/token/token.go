// Package token issues and verifies the signed identity tokens that back all
// authenticated requests. Tokens are stateless: there is no revocation, so an
// issued token stays valid until its expiry regardless of password changes or
// logout.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"uk.co.dudmesh.waggle/internal/model"
)

type claims struct {
	jwt.StandardClaims
	UserID   string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Service struct {
	secret []byte
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is not configured")
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

func (s *Service) Issue(identity model.Identity) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
		UserID:   string(identity.ID),
		Username: identity.Username,
		Email:    identity.Email,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and returns the identity
// it encodes. Every failure mode, malformed, tampered or expired, collapses
// to ErrorInvalidToken so callers cannot leak the distinction.
func (s *Service) Verify(raw string) (model.Identity, error) {
	parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return model.Identity{}, model.ErrorInvalidToken
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || c.UserID == "" {
		return model.Identity{}, model.ErrorInvalidToken
	}

	return model.Identity{
		ID:       model.UserID(c.UserID),
		Username: c.Username,
		Email:    c.Email,
	}, nil
}
