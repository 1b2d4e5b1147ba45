package dto

import "github.com/shopspring/decimal"

// DashboardOverviewDTO is the headline block of the dashboard.
type DashboardOverviewDTO struct {
	TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
	PaidThisMonth     decimal.Decimal `json:"paid_this_month"`
	PendingInvoices   int             `json:"pending_invoices"`
	OverdueInvoices   int             `json:"overdue_invoices"`
	OverdueAmount     decimal.Decimal `json:"overdue_amount"`
	ExpensesThisMonth decimal.Decimal `json:"expenses_this_month"`
}

// RecentInvoiceDTO is one row of the dashboard's recent-invoice list.
type RecentInvoiceDTO struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	DueDate       string          `json:"due_date"`
}

// MonthlyRevenueDTO is one bucket of the 6-month revenue series.
type MonthlyRevenueDTO struct {
	Month   string          `json:"month"` // e.g. "Jan 2024"
	Revenue decimal.Decimal `json:"revenue"`
}

// TopClientDTO ranks a client on the dashboard.
type TopClientDTO struct {
	Name          string          `json:"name"`
	CompanyName   string          `json:"company_name"`
	TotalInvoiced decimal.Decimal `json:"total_invoiced"`
}

// DashboardDTO is the full dashboard payload.
type DashboardDTO struct {
	Overview       DashboardOverviewDTO `json:"overview"`
	RecentInvoices []RecentInvoiceDTO   `json:"recent_invoices"`
	MonthlyRevenue []MonthlyRevenueDTO  `json:"monthly_revenue"`
	TopClients     []TopClientDTO       `json:"top_clients"`
}

// IncomeInvoiceDTO is one PAID invoice in the income report.
type IncomeInvoiceDTO struct {
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAt        string          `json:"paid_at"`
}

// IncomeReportDTO is the income report payload.
type IncomeReportDTO struct {
	TotalIncome  decimal.Decimal    `json:"total_income"`
	InvoiceCount int                `json:"invoice_count"`
	Invoices     []IncomeInvoiceDTO `json:"invoices"`
}

// ExpenseCategoryDTO is a group-by-category bucket.
type ExpenseCategoryDTO struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// ExpenseReportDTO is the expense report payload.
type ExpenseReportDTO struct {
	TotalExpenses decimal.Decimal      `json:"total_expenses"`
	TaxDeductible decimal.Decimal      `json:"tax_deductible"`
	ByCategory    []ExpenseCategoryDTO `json:"by_category"`
	Expenses      []ExpenseResponse    `json:"expenses"`
}

// ClientReportRowDTO is one row of the client revenue report.
type ClientReportRowDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CompanyName   string          `json:"company_name"`
	Email         string          `json:"email"`
	TotalInvoiced decimal.Decimal `json:"total_invoiced"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	InvoiceCount  int             `json:"invoice_count"`
}

// ClientReportDTO is the client report payload.
type ClientReportDTO struct {
	Clients []ClientReportRowDTO `json:"clients"`
}

// DateRangeRequest bounds a report by dates (YYYY-MM-DD, both optional).
type DateRangeRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}
