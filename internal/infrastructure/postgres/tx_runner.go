package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invoiceflow/invoiceflow-api/internal/application/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction with
// repositories bound to that transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling begins a transaction, runs fn with invoice and payment repos
// bound to it, and commits, or rolls everything back on error. Invoice
// creation (number assignment + items), item replacement and payment
// reconciliation all go through here so totals and statuses never land
// half-written.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewInvoiceRepository(tx)
	paymentRepo := NewPaymentRepository(tx)

	if err := fn(invoiceRepo, paymentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
