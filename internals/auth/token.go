package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenTTL bounds the lifetime of API access tokens handed out to
// authenticated admins for the REST endpoints.
const AccessTokenTTL = 30 * time.Minute

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenIssuer mints and verifies HS256 access tokens for the admin API.
type TokenIssuer struct {
	secret []byte
	now    Clock
}

func NewTokenIssuer(secret string, now Clock) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: now}
}

// Issue returns a signed token for subject, valid for AccessTokenTTL.
func (i *TokenIssuer) Issue(subject string) (string, error) {
	now := i.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"jti": uuid.New().String(),
		"iat": now.Unix(),
		"exp": now.Add(AccessTokenTTL).Unix(),
	})

	return token.SignedString(i.secret)
}

// Verify parses and validates a token and returns its subject.
func (i *TokenIssuer) Verify(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", ErrInvalidToken
	}

	return subject, nil
}
