package token

import (
	"errors"
	"time"

	"github.com/fullstack-app/apiserver/types"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the session token lifetime.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for tokens that fail verification for any
// reason other than expiry.
var ErrInvalidToken = errors.New("invalid token")

// ErrTokenExpired is returned for tokens whose expiry has elapsed.
var ErrTokenExpired = errors.New("token expired")

// ErrNoSecret is returned when issuing or verifying without a configured
// signing secret.
var ErrNoSecret = errors.New("token secret is undefined")

// Claims carries the public identity view inside a signed token.
type Claims struct {
	jwt.RegisteredClaims
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt,omitempty"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

// User reconstructs the public view carried by the claims.
func (c *Claims) User() types.PublicUser {
	return types.PublicUser{
		ID:        c.ID,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Issue signs a token over the public identity view with HS256, expiring
// ttl from now.
func Issue(user types.PublicUser, secret []byte, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrNoSecret
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify parses and validates a token string. It fails closed: a missing
// secret, wrong algorithm, bad signature, or malformed token all return
// ErrInvalidToken; an elapsed expiry returns ErrTokenExpired. Callers
// must treat both as unauthenticated.
func Verify(tokenString string, secret []byte) (*Claims, error) {
	if len(secret) == 0 {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
