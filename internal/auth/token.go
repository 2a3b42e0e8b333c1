package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the signed token contents: registered claims plus the
// owning user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
}

// TokenManager issues and verifies HMAC-signed bearer tokens. Tokens are
// self-contained: no server-side session state backs them.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager with the given signing key and
// token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token embedding the user id, expiring after the
// configured lifetime.
func (m *TokenManager) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and expiry and returns the embedded
// user id. Malformed, expired, and badly signed tokens all come back as
// an error; callers treat any failure as "not authenticated".
func (m *TokenManager) Verify(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("auth: parse token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, fmt.Errorf("auth: token is invalid")
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("auth: token has no user id")
	}
	return claims.UserID, nil
}
