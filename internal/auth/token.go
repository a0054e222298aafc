package auth

import (
	"encoding/base64"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenKind discriminates access tokens from refresh tokens. A token of one
// kind is never accepted where the other is expected.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "ACCESS"
	TokenKindRefresh TokenKind = "REFRESH"
)

// Claims describes the JWT payload. Subject is the normalized email.
type Claims struct {
	Roles []string  `json:"roles,omitempty"`
	Kind  TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies session tokens with a single symmetric key.
// It is stateless apart from the key, which is derived once at construction.
type TokenCodec struct {
	key []byte
}

// NewTokenCodec derives the signing key from the configured secret: if the
// secret is valid Base64 its decoded bytes are used, otherwise the raw text
// bytes. Short keys are allowed but logged.
func NewTokenCodec(secret string, logger *zap.Logger) *TokenCodec {
	key := deriveKey(secret)
	if len(key) < 32 && logger != nil {
		logger.Warn("JWT signing key material is shorter than 32 bytes",
			zap.Int("key_bytes", len(key)))
	}
	return &TokenCodec{key: key}
}

// Encode builds and signs a token for the subject with issued-at now and
// expiry now+ttl.
func (c *TokenCodec) Encode(subject string, roles []string, kind TokenKind, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Roles: roles,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique ID so two tokens minted in the same second for the
			// same subject never collide as blacklist keys.
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Decode verifies and returns the claims. It fails with ErrTokenMalformed,
// ErrTokenSignatureInvalid or ErrTokenExpired. On ErrTokenExpired the claims
// are still returned alongside the error so callers that only need the
// token's own expiry (logout) can read it.
func (c *TokenCodec) Decode(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenSignatureInvalid
		}
		return c.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return claims, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		// Keyfunc rejections (unexpected signing algorithm) surface as
		// ErrTokenUnverifiable; that is a signature problem, not a parse one.
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IsExpired reports whether the token is past its expiry. Expiry is a
// boolean outcome here, not an error.
func (c *TokenCodec) IsExpired(tokenStr string) bool {
	claims, err := c.Decode(tokenStr)
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return time.Now().After(claims.ExpiresAt.Time)
}

func deriveKey(secret string) []byte {
	if decoded, err := base64.StdEncoding.DecodeString(secret); err == nil && len(decoded) > 0 {
		return decoded
	}
	return []byte(secret)
}
