package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/invoiceflow/invoiceflow-api/internal/domain"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or a tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, user_id, client_id, invoice_number, issue_date, due_date, status,
		subtotal, tax_amount, total_amount, notes, terms, sent_at, paid_at, created_at, updated_at`

// Create persists the invoice header.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.UserID, invoice.ClientID, invoice.InvoiceNumber,
		invoice.IssueDate, invoice.DueDate, invoice.Status,
		invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount,
		invoice.Notes, invoice.Terms, invoice.SentAt, invoice.PaidAt,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persists one line item.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, description, quantity, unit_price, amount, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.Description, item.Quantity,
		item.UnitPrice, item.Amount, item.SortOrder, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// DeleteItems removes all items of an invoice.
func (r *InvoiceRepo) DeleteItems(invoiceID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// GetByIDAndUser fetches an invoice scoped by owner. Foreign ids come back
// as (nil, nil).
func (r *InvoiceRepo) GetByIDAndUser(id, userID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND user_id = $2`
	row := r.q.QueryRow(context.Background(), query, id, userID)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetItems returns an invoice's items ordered for display.
func (r *InvoiceRepo) GetItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, description, quantity, unit_price, amount, sort_order, created_at, updated_at
		FROM invoice_items WHERE invoice_id = $1 ORDER BY sort_order, created_at`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var items []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.Description, &it.Quantity,
			&it.UnitPrice, &it.Amount, &it.SortOrder, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByUser lists the user's invoices, newest first, with optional status
// and client filters.
func (r *InvoiceRepo) ListByUser(userID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1`
	args := []any{userID}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.list(query, args...)
}

// ListOverdue returns invoices past due that are still collectible. The
// date comparison matches billing.IsOverdue: due strictly before today.
func (r *InvoiceRepo) ListOverdue(userID string, now time.Time) ([]*entity.Invoice, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	query := `
		SELECT ` + invoiceColumns + ` FROM invoices
		WHERE user_id = $1 AND due_date < $2 AND status NOT IN ('PAID', 'CANCELLED')
		ORDER BY due_date`
	return r.list(query, userID, today)
}

func (r *InvoiceRepo) list(query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update persists header changes (client, dates, totals, status, timestamps).
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET client_id = $2, issue_date = $3, due_date = $4, status = $5,
		    subtotal = $6, tax_amount = $7, total_amount = $8,
		    notes = $9, terms = $10, sent_at = $11, paid_at = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.ClientID, invoice.IssueDate, invoice.DueDate, invoice.Status,
		invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount,
		invoice.Notes, invoice.Terms, invoice.SentAt, invoice.PaidAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// Delete removes an invoice; items and payments cascade.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// LastNumberForYear returns the highest invoice_number for the user and year,
// or "" when the year has no invoices yet. The zero-padded format makes the
// lexicographic MAX the numeric max up to 99999.
func (r *InvoiceRepo) LastNumberForYear(userID string, year int) (string, error) {
	prefix := fmt.Sprintf("%s-%d-", billing.NumberPrefix, year)
	var last *string
	err := r.q.QueryRow(context.Background(),
		`SELECT MAX(invoice_number) FROM invoices WHERE user_id = $1 AND invoice_number LIKE $2`,
		userID, prefix+"%",
	).Scan(&last)
	if err != nil {
		return "", fmt.Errorf("last invoice number: %w", err)
	}
	if last == nil {
		return "", nil
	}
	return *last, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.ClientID, &inv.InvoiceNumber,
		&inv.IssueDate, &inv.DueDate, &inv.Status,
		&inv.Subtotal, &inv.TaxAmount, &inv.TotalAmount,
		&inv.Notes, &inv.Terms, &inv.SentAt, &inv.PaidAt,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
