// Package auth implements the credential primitives of the server:
// signed session tokens and one-way password hashing.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification errors. The HTTP layer maps all of them to a generic
// 401; the concrete value is only for logs and tests.
var (
	ErrMissingToken     = errors.New("missing token")
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
)

// Claims carries the account snapshot embedded in a session token.
// The snapshot is denormalized: the account record remains the source of
// truth and must be re-resolved by UserID on every use.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// TokenManager issues and verifies HS256-signed session tokens.
type TokenManager struct {
	secret   []byte
	validity time.Duration
}

func NewTokenManager(secret string, validity time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), validity: validity}
}

// Issue creates a signed token embedding the user snapshot with an
// absolute expiry of now plus the configured validity.
func (m *TokenManager) Issue(userID, email, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	})

	return token.SignedString(m.secret)
}

// Parse verifies raw and returns its claims. An optional "Bearer " prefix
// is stripped before decoding. Signature, expiry, and structural failures
// map to the sentinel errors above.
func (m *TokenManager) Parse(raw string) (*Claims, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if raw == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformedToken
		}
	}

	if !token.Valid {
		return nil, ErrMalformedToken
	}

	return claims, nil
}
