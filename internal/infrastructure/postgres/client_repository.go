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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implements ClientRepository (usable with pool or tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository builds the adapter. Pass a pool or a tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, user_id, name, email, company_name, address, phone, notes, created_at, updated_at`

// Create persists a new client.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.UserID, client.Name, client.Email, client.CompanyName,
		client.Address, client.Phone, client.Notes, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByIDAndUser fetches a client scoped by owner. A foreign user's client
// comes back as (nil, nil), indistinguishable from nonexistent.
func (r *ClientRepo) GetByIDAndUser(id, userID string) (*entity.Client, error) {
	return r.getBy(`id = $1 AND user_id = $2`, id, userID)
}

// GetByUserAndEmail fetches by the (user, email) unique pair.
func (r *ClientRepo) GetByUserAndEmail(userID, email string) (*entity.Client, error) {
	return r.getBy(`user_id = $1 AND email = $2`, userID, email)
}

func (r *ClientRepo) getBy(where string, args ...any) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE ` + where
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.CompanyName,
		&c.Address, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// ListByUser lists the user's clients, newest first, paginated.
func (r *ClientRepo) ListByUser(userID string, limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + ` FROM clients
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Name, &c.Email, &c.CompanyName,
			&c.Address, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update persists client changes.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, email = $3, company_name = $4, address = $5, phone = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Email, client.CompanyName,
		client.Address, client.Phone, client.Notes, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete removes a client by id.
func (r *ClientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// Totals aggregates the client's invoices on demand.
func (r *ClientRepo) Totals(clientID string) (repository.ClientTotals, error) {
	query := `
		SELECT
		    COALESCE(SUM(total_amount), 0),
		    COALESCE(SUM(total_amount) FILTER (WHERE status = 'PAID'), 0),
		    COALESCE(SUM(total_amount) FILTER (WHERE status NOT IN ('PAID', 'CANCELLED')), 0)
		FROM invoices WHERE client_id = $1`
	var t repository.ClientTotals
	err := r.q.QueryRow(context.Background(), query, clientID).Scan(
		&t.TotalInvoiced, &t.TotalPaid, &t.TotalOutstanding,
	)
	if err != nil {
		return repository.ClientTotals{}, fmt.Errorf("client totals: %w", err)
	}
	return t, nil
}
