package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
)

// DashboardOverviewResult is the raw aggregate block of the dashboard.
// Produced by the DB; the use case turns it into a DTO.
type DashboardOverviewResult struct {
	TotalOutstanding  decimal.Decimal // invoices not PAID and not CANCELLED
	PaidThisMonth     decimal.Decimal // PAID invoices with paid_at this month
	PendingInvoices   int             // DRAFT + SENT count
	OverdueInvoices   int             // past due, not PAID/CANCELLED
	OverdueAmount     decimal.Decimal
	ExpensesThisMonth decimal.Decimal
}

// RecentInvoiceResult is a dashboard row for the latest invoices.
type RecentInvoiceResult struct {
	ID            string
	InvoiceNumber string
	ClientName    string
	TotalAmount   decimal.Decimal
	Status        string
	DueDate       time.Time
}

// TopClientResult ranks clients by total invoiced amount.
type TopClientResult struct {
	Name          string
	CompanyName   string
	TotalInvoiced decimal.Decimal
}

// IncomeRowResult is one PAID invoice in the income report.
type IncomeRowResult struct {
	InvoiceNumber string
	ClientName    string
	TotalAmount   decimal.Decimal
	PaidAt        time.Time
}

// ExpenseCategoryResult is a group-by-category bucket of the expense report.
type ExpenseCategoryResult struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// ClientReportResult is one row of the per-client revenue report.
type ClientReportResult struct {
	ID            string
	Name          string
	CompanyName   string
	Email         string
	TotalInvoiced decimal.Decimal
	TotalPaid     decimal.Decimal
	InvoiceCount  int
}

// ReportRepository defines the read-only aggregation queries behind the
// dashboard and report endpoints. Every query runs against current table
// state at request time; there is no pre-aggregation. Implementations must
// not modify data.
type ReportRepository interface {
	// Overview computes the dashboard headline numbers. monthStart is the
	// first day of the current month; now bounds the overdue check.
	Overview(ctx context.Context, userID string, now, monthStart time.Time) (DashboardOverviewResult, error)

	RecentInvoices(ctx context.Context, userID string, limit int) ([]RecentInvoiceResult, error)

	// RevenueBetween sums PAID invoice totals with paid_at in [start, end).
	RevenueBetween(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error)

	TopClients(ctx context.Context, userID string, limit int) ([]TopClientResult, error)

	// IncomeBetween lists PAID invoices, optionally bounded by paid_at.
	IncomeBetween(ctx context.Context, userID string, start, end *time.Time) ([]IncomeRowResult, error)

	// ExpensesBetween lists expenses, optionally bounded by expense_date.
	ExpensesBetween(ctx context.Context, userID string, start, end *time.Time) ([]*entity.Expense, error)

	ExpensesByCategory(ctx context.Context, userID string, start, end *time.Time) ([]ExpenseCategoryResult, error)

	ClientReport(ctx context.Context, userID string) ([]ClientReportResult, error)
}
