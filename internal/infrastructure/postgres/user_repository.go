package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invoiceflow/invoiceflow-api/internal/domain"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implements UserRepository (usable with pool or tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the adapter. Pass a pool or a tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, password_hash, first_name, last_name, business_name,
		business_address, phone, currency, tax_rate, created_at, updated_at`

// Create persists a new user.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.BusinessName, user.BusinessAddress, user.Phone, user.Currency,
		user.TaxRate, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches a user by id. Returns (nil, nil) when absent.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getBy(`id = $1`, id)
}

// GetByEmail fetches a user by email. Returns (nil, nil) when absent.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.getBy(`email = $1`, email)
}

func (r *UserRepo) getBy(where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.BusinessName, &u.BusinessAddress, &u.Phone, &u.Currency,
		&u.TaxRate, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Update persists profile and credential changes.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET password_hash = $2, first_name = $3, last_name = $4, business_name = $5,
		    business_address = $6, phone = $7, currency = $8, tax_rate = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.PasswordHash, user.FirstName, user.LastName, user.BusinessName,
		user.BusinessAddress, user.Phone, user.Currency, user.TaxRate, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
