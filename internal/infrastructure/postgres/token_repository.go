package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo implements the refresh-token blacklist.
type TokenRepo struct {
	q Querier
}

// NewTokenRepository builds the adapter. Pass a pool or a tx (Querier).
func NewTokenRepository(q Querier) *TokenRepo {
	return &TokenRepo{q: q}
}

// Revoke blacklists a refresh token by jti. Revoking twice is a no-op.
func (r *TokenRepo) Revoke(jti string, expiresAt time.Time) error {
	query := `
		INSERT INTO token_blacklist (jti, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (jti) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, jti, expiresAt)
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a jti has been blacklisted.
func (r *TokenRepo) IsRevoked(jti string) (bool, error) {
	var revoked bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM token_blacklist WHERE jti = $1)`, jti,
	).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("check token: %w", err)
	}
	return revoked, nil
}
