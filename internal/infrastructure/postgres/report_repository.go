package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo runs the read-only aggregation queries behind the dashboard and
// report endpoints. Everything is computed against current table state at
// request time.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository builds the adapter.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// Overview computes the dashboard headline numbers in one statement.
// COALESCE keeps sums at zero when the user has no rows in a bucket.
func (r *ReportRepo) Overview(ctx context.Context, userID string, now, monthStart time.Time) (repository.DashboardOverviewResult, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	const query = `
	SELECT
	    COALESCE((SELECT SUM(total_amount) FROM invoices
	              WHERE user_id = $1 AND status NOT IN ('PAID', 'CANCELLED')), 0)  AS total_outstanding,
	    COALESCE((SELECT SUM(total_amount) FROM invoices
	              WHERE user_id = $1 AND status = 'PAID' AND paid_at >= $2), 0)    AS paid_this_month,
	    (SELECT COUNT(*) FROM invoices
	     WHERE user_id = $1 AND status IN ('DRAFT', 'SENT'))                       AS pending_invoices,
	    (SELECT COUNT(*) FROM invoices
	     WHERE user_id = $1 AND due_date < $3
	       AND status NOT IN ('PAID', 'CANCELLED'))                                AS overdue_invoices,
	    COALESCE((SELECT SUM(total_amount) FROM invoices
	              WHERE user_id = $1 AND due_date < $3
	                AND status NOT IN ('PAID', 'CANCELLED')), 0)                   AS overdue_amount,
	    COALESCE((SELECT SUM(amount) FROM expenses
	              WHERE user_id = $1 AND expense_date >= $2), 0)                   AS expenses_this_month`

	var res repository.DashboardOverviewResult
	err := r.pool.QueryRow(ctx, query, userID, monthStart, today).Scan(
		&res.TotalOutstanding,
		&res.PaidThisMonth,
		&res.PendingInvoices,
		&res.OverdueInvoices,
		&res.OverdueAmount,
		&res.ExpensesThisMonth,
	)
	if err != nil {
		return repository.DashboardOverviewResult{}, fmt.Errorf("reports.Overview: %w", err)
	}
	return res, nil
}

// RecentInvoices returns the user's latest invoices with the client name
// joined in, newest first.
func (r *ReportRepo) RecentInvoices(ctx context.Context, userID string, limit int) ([]repository.RecentInvoiceResult, error) {
	const query = `
	SELECT i.id, i.invoice_number, c.name, i.total_amount, i.status, i.due_date
	FROM invoices i
	JOIN clients c ON c.id = i.client_id
	WHERE i.user_id = $1
	ORDER BY i.created_at DESC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.RecentInvoices: %w", err)
	}
	defer rows.Close()

	var results []repository.RecentInvoiceResult
	for rows.Next() {
		var row repository.RecentInvoiceResult
		if err := rows.Scan(&row.ID, &row.InvoiceNumber, &row.ClientName, &row.TotalAmount, &row.Status, &row.DueDate); err != nil {
			return nil, fmt.Errorf("reports.RecentInvoices scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// RevenueBetween sums PAID invoice totals with paid_at in [start, end).
func (r *ReportRepo) RevenueBetween(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(total_amount), 0)
	FROM invoices
	WHERE user_id = $1 AND status = 'PAID' AND paid_at >= $2 AND paid_at < $3`

	var revenue decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, userID, start, end).Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("reports.RevenueBetween: %w", err)
	}
	return revenue, nil
}

// TopClients ranks clients by total invoiced amount, descending.
func (r *ReportRepo) TopClients(ctx context.Context, userID string, limit int) ([]repository.TopClientResult, error) {
	const query = `
	SELECT c.name, c.company_name, COALESCE(SUM(i.total_amount), 0) AS total_invoiced
	FROM clients c
	LEFT JOIN invoices i ON i.client_id = c.id
	WHERE c.user_id = $1
	GROUP BY c.id, c.name, c.company_name
	ORDER BY total_invoiced DESC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.TopClients: %w", err)
	}
	defer rows.Close()

	var results []repository.TopClientResult
	for rows.Next() {
		var row repository.TopClientResult
		if err := rows.Scan(&row.Name, &row.CompanyName, &row.TotalInvoiced); err != nil {
			return nil, fmt.Errorf("reports.TopClients scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// IncomeBetween lists PAID invoices, optionally bounded by paid_at, most
// recently paid first.
func (r *ReportRepo) IncomeBetween(ctx context.Context, userID string, start, end *time.Time) ([]repository.IncomeRowResult, error) {
	query := `
	SELECT i.invoice_number, c.name, i.total_amount, i.paid_at
	FROM invoices i
	JOIN clients c ON c.id = i.client_id
	WHERE i.user_id = $1 AND i.status = 'PAID'`
	args := []any{userID}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND i.paid_at >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND i.paid_at <= $%d", len(args))
	}
	query += " ORDER BY i.paid_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.IncomeBetween: %w", err)
	}
	defer rows.Close()

	var results []repository.IncomeRowResult
	for rows.Next() {
		var row repository.IncomeRowResult
		if err := rows.Scan(&row.InvoiceNumber, &row.ClientName, &row.TotalAmount, &row.PaidAt); err != nil {
			return nil, fmt.Errorf("reports.IncomeBetween scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ExpensesBetween lists expenses, optionally bounded by expense_date.
func (r *ReportRepo) ExpensesBetween(ctx context.Context, userID string, start, end *time.Time) ([]*entity.Expense, error) {
	query := `
	SELECT id, user_id, description, amount, category, expense_date,
	       vendor, notes, tax_deductible, created_at, updated_at
	FROM expenses WHERE user_id = $1`
	args := []any{userID}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND expense_date >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND expense_date <= $%d", len(args))
	}
	query += " ORDER BY expense_date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.ExpensesBetween: %w", err)
	}
	defer rows.Close()

	var results []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.ExpenseDate,
			&e.Vendor, &e.Notes, &e.TaxDeductible, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("reports.ExpensesBetween scan: %w", err)
		}
		results = append(results, &e)
	}
	return results, rows.Err()
}

// ExpensesByCategory groups the user's expenses by category, biggest first.
func (r *ReportRepo) ExpensesByCategory(ctx context.Context, userID string, start, end *time.Time) ([]repository.ExpenseCategoryResult, error) {
	query := `
	SELECT category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count
	FROM expenses WHERE user_id = $1`
	args := []any{userID}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND expense_date >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND expense_date <= $%d", len(args))
	}
	query += " GROUP BY category ORDER BY total DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.ExpensesByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.ExpenseCategoryResult
	for rows.Next() {
		var row repository.ExpenseCategoryResult
		if err := rows.Scan(&row.Category, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("reports.ExpensesByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ClientReport aggregates invoiced/paid totals and invoice counts per
// client, ordered by total invoiced descending.
func (r *ReportRepo) ClientReport(ctx context.Context, userID string) ([]repository.ClientReportResult, error) {
	const query = `
	SELECT
	    c.id, c.name, c.company_name, c.email,
	    COALESCE(SUM(i.total_amount), 0)                                  AS total_invoiced,
	    COALESCE(SUM(i.total_amount) FILTER (WHERE i.status = 'PAID'), 0) AS total_paid,
	    COUNT(i.id)                                                       AS invoice_count
	FROM clients c
	LEFT JOIN invoices i ON i.client_id = c.id
	WHERE c.user_id = $1
	GROUP BY c.id, c.name, c.company_name, c.email
	ORDER BY total_invoiced DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("reports.ClientReport: %w", err)
	}
	defer rows.Close()

	var results []repository.ClientReportResult
	for rows.Next() {
		var row repository.ClientReportResult
		if err := rows.Scan(
			&row.ID, &row.Name, &row.CompanyName, &row.Email,
			&row.TotalInvoiced, &row.TotalPaid, &row.InvoiceCount,
		); err != nil {
			return nil, fmt.Errorf("reports.ClientReport scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
