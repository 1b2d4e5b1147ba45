package repository

import "time"

// TokenRepository tracks revoked refresh tokens by their jti. Logout inserts,
// refresh checks. Rows past expires_at are dead weight only; nothing reads
// them back once the token itself has expired.
type TokenRepository interface {
	Revoke(jti string, expiresAt time.Time) error
	IsRevoked(jti string) (bool, error)
}
