package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types. Access tokens authenticate API requests; refresh tokens are
// only exchangeable for new access tokens and can be revoked by jti.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims are the standard JWT claims plus the application's own fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access" | "refresh"
}

// GenerateAccess issues a signed HS256 access token for the user.
func GenerateAccess(secret, userID, issuer string, expMinutes int) (string, error) {
	tok, _, _, err := generate(secret, userID, issuer, TypeAccess, expMinutes)
	return tok, err
}

// GenerateRefresh issues a signed HS256 refresh token. The returned jti and
// expiry are what the blacklist stores on logout.
func GenerateRefresh(secret, userID, issuer string, expMinutes int) (token, jti string, expiresAt time.Time, err error) {
	return generate(secret, userID, issuer, TypeRefresh, expMinutes)
}

func generate(secret, userID, issuer, tokenType string, expMinutes int) (string, string, time.Time, error) {
	if secret == "" {
		return "", "", time.Time{}, fmt.Errorf("jwt: empty secret")
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expMinutes) * time.Minute)
	jti := uuid.New().String()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:    userID,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", "", time.Time{}, err
	}
	return signed, jti, expiresAt, nil
}

// Parse validates the token signature and expiry and returns its claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: empty secret")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

// ParseType validates the token and additionally requires the given type.
func ParseType(secret, tokenString, tokenType string) (*Claims, error) {
	claims, err := Parse(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("expected %s token, got %s", tokenType, claims.TokenType)
	}
	return claims, nil
}
