// Package jwt verifies session credentials minted by the external
// identity provider. The provider signs HS256 tokens with a secret
// shared through configuration; this service never issues tokens.
package jwt

import (
	"fmt"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var secret []byte

// SetSecret configures the shared verification secret (call on startup).
func SetSecret(s string) {
	if s != "" {
		secret = []byte(s)
	}
}

// Claims is the identity-provider token payload. Subject is the
// external user id the profile table is keyed by.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwtlib.RegisteredClaims
}

// Parse validates a session token and returns its claims.
func Parse(tokenStr string) (*Claims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("identity provider secret not configured")
	}
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
