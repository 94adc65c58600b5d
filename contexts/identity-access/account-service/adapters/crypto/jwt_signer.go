package cryptoadapter

import (
	"context"
	"strings"
	"time"

	"shipline/contexts/identity-access/account-service/domain/entities"
	domainerrors "shipline/contexts/identity-access/account-service/domain/errors"
	"shipline/contexts/identity-access/account-service/ports"

	"github.com/golang-jwt/jwt/v5"
)

// JWTSigner implements the TokenSigner port with HS256 tokens.
type JWTSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTSigner(secret string, ttl time.Duration) JWTSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return JWTSigner{secret: []byte(secret), ttl: ttl}
}

type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (s JWTSigner) Sign(_ context.Context, identity ports.Identity) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)
	claims := sessionClaims{
		Email: identity.Email,
		Role:  string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (s JWTSigner) Verify(_ context.Context, token string) (ports.Identity, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(
		strings.TrimSpace(token),
		&claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, domainerrors.ErrInvalidToken
			}
			return s.secret, nil
		},
	)
	if err != nil || !parsed.Valid {
		return ports.Identity{}, domainerrors.ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return ports.Identity{}, domainerrors.ErrInvalidToken
	}
	return ports.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   entities.Role(claims.Role),
	}, nil
}
