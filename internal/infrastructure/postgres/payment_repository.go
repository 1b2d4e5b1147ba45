package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements PaymentRepository (usable with pool or tx).
// Tenancy runs through the owning invoice: every scoped read joins invoices
// on user_id.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the adapter. Pass a pool or a tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `p.id, p.invoice_id, p.amount, p.payment_date, p.payment_method,
		p.transaction_ref, p.notes, p.created_at, p.updated_at`

// Create persists a payment.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, invoice_id, amount, payment_date, payment_method, transaction_ref, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.InvoiceID, payment.Amount, payment.PaymentDate,
		payment.Method, payment.TransactionRef, payment.Notes,
		payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByIDAndUser fetches a payment whose invoice belongs to the user.
func (r *PaymentRepo) GetByIDAndUser(id, userID string) (*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments p JOIN invoices i ON i.id = p.invoice_id
		WHERE p.id = $1 AND i.user_id = $2`
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), query, id, userID).Scan(
		&p.ID, &p.InvoiceID, &p.Amount, &p.PaymentDate, &p.Method,
		&p.TransactionRef, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// ListByUser lists payments across the user's invoices, most recent payment
// date first, with optional invoice and method filters.
func (r *PaymentRepo) ListByUser(userID string, f repository.PaymentFilter) ([]*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments p JOIN invoices i ON i.id = p.invoice_id
		WHERE i.user_id = $1`
	args := []any{userID}
	if f.InvoiceID != "" {
		args = append(args, f.InvoiceID)
		query += fmt.Sprintf(" AND p.invoice_id = $%d", len(args))
	}
	if f.Method != "" {
		args = append(args, f.Method)
		query += fmt.Sprintf(" AND p.payment_method = $%d", len(args))
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY p.payment_date DESC, p.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(
			&p.ID, &p.InvoiceID, &p.Amount, &p.PaymentDate, &p.Method,
			&p.TransactionRef, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update persists descriptive changes (date, method, reference, notes).
func (r *PaymentRepo) Update(payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET payment_date = $2, payment_method = $3, transaction_ref = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.PaymentDate, payment.Method,
		payment.TransactionRef, payment.Notes, payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// Delete removes a payment by id.
func (r *PaymentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// SumForInvoice returns the cumulative amount paid against an invoice.
func (r *PaymentRepo) SumForInvoice(invoiceID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`, invoiceID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return sum, nil
}
