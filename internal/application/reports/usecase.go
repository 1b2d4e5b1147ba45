package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
	"github.com/invoiceflow/invoiceflow-api/internal/domain"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

const (
	recentInvoiceLimit = 5
	topClientLimit     = 5
	revenueMonths      = 6
)

// ReportUseCase assembles the dashboard and the income, expense and client
// reports from the aggregation queries.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	now        func() time.Time
}

// NewReportUseCase builds the report use case.
func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, now: time.Now}
}

// Dashboard returns the overview block, the recent invoices, the 6-month
// revenue series and the top clients.
func (uc *ReportUseCase) Dashboard(ctx context.Context, userID string) (*dto.DashboardDTO, error) {
	now := uc.now()
	monthStart := firstOfMonth(now)

	overview, err := uc.reportRepo.Overview(ctx, userID, now, monthStart)
	if err != nil {
		return nil, err
	}
	recent, err := uc.reportRepo.RecentInvoices(ctx, userID, recentInvoiceLimit)
	if err != nil {
		return nil, err
	}
	revenue, err := uc.monthlyRevenue(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	top, err := uc.reportRepo.TopClients(ctx, userID, topClientLimit)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardDTO{
		Overview: dto.DashboardOverviewDTO{
			TotalOutstanding:  overview.TotalOutstanding,
			PaidThisMonth:     overview.PaidThisMonth,
			PendingInvoices:   overview.PendingInvoices,
			OverdueInvoices:   overview.OverdueInvoices,
			OverdueAmount:     overview.OverdueAmount,
			ExpensesThisMonth: overview.ExpensesThisMonth,
		},
		RecentInvoices: make([]dto.RecentInvoiceDTO, 0, len(recent)),
		MonthlyRevenue: revenue,
		TopClients:     make([]dto.TopClientDTO, 0, len(top)),
	}
	for _, r := range recent {
		out.RecentInvoices = append(out.RecentInvoices, dto.RecentInvoiceDTO{
			ID:            r.ID,
			InvoiceNumber: r.InvoiceNumber,
			ClientName:    r.ClientName,
			TotalAmount:   r.TotalAmount,
			Status:        r.Status,
			DueDate:       r.DueDate.Format(dto.DateLayout),
		})
	}
	for _, t := range top {
		out.TopClients = append(out.TopClients, dto.TopClientDTO{
			Name:          t.Name,
			CompanyName:   t.CompanyName,
			TotalInvoiced: t.TotalInvoiced,
		})
	}
	return out, nil
}

// monthlyRevenue builds the trailing 6-month revenue series. Buckets are
// derived by snapping today to the first of the month and stepping back 30
// days at a time from there, so around month boundaries a calendar month can
// be skipped or repeated. Kept as-is; the series is cosmetic.
func (uc *ReportUseCase) monthlyRevenue(ctx context.Context, userID string, now time.Time) ([]dto.MonthlyRevenueDTO, error) {
	monthStart := firstOfMonth(now)
	out := make([]dto.MonthlyRevenueDTO, 0, revenueMonths)
	for i := revenueMonths - 1; i >= 0; i-- {
		start := firstOfMonth(monthStart.AddDate(0, 0, -i*30))
		end := firstOfMonth(start.AddDate(0, 0, 32))
		revenue, err := uc.reportRepo.RevenueBetween(ctx, userID, start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.MonthlyRevenueDTO{
			Month:   start.Format("Jan 2006"),
			Revenue: revenue,
		})
	}
	return out, nil
}

// Income reports PAID invoices, optionally bounded by paid date.
func (uc *ReportUseCase) Income(ctx context.Context, userID string, in dto.DateRangeRequest) (*dto.IncomeReportDTO, error) {
	start, end, err := parseRange(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.IncomeBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	out := &dto.IncomeReportDTO{
		TotalIncome:  decimal.Zero,
		InvoiceCount: len(rows),
		Invoices:     make([]dto.IncomeInvoiceDTO, 0, len(rows)),
	}
	for _, r := range rows {
		out.TotalIncome = out.TotalIncome.Add(r.TotalAmount)
		out.Invoices = append(out.Invoices, dto.IncomeInvoiceDTO{
			InvoiceNumber: r.InvoiceNumber,
			ClientName:    r.ClientName,
			TotalAmount:   r.TotalAmount,
			PaidAt:        r.PaidAt.Format(dto.DateLayout),
		})
	}
	return out, nil
}

// Expenses reports the user's expenses with per-category totals, optionally
// bounded by expense date.
func (uc *ReportUseCase) Expenses(ctx context.Context, userID string, in dto.DateRangeRequest) (*dto.ExpenseReportDTO, error) {
	start, end, err := parseRange(in)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.reportRepo.ExpensesBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	byCategory, err := uc.reportRepo.ExpensesByCategory(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	out := &dto.ExpenseReportDTO{
		TotalExpenses: decimal.Zero,
		TaxDeductible: decimal.Zero,
		ByCategory:    make([]dto.ExpenseCategoryDTO, 0, len(byCategory)),
		Expenses:      make([]dto.ExpenseResponse, 0, len(expenses)),
	}
	for _, e := range expenses {
		out.TotalExpenses = out.TotalExpenses.Add(e.Amount)
		if e.TaxDeductible {
			out.TaxDeductible = out.TaxDeductible.Add(e.Amount)
		}
		out.Expenses = append(out.Expenses, dto.ExpenseResponse{
			ID:            e.ID,
			Description:   e.Description,
			Amount:        e.Amount,
			Category:      e.Category,
			ExpenseDate:   e.ExpenseDate.Format(dto.DateLayout),
			Vendor:        e.Vendor,
			Notes:         e.Notes,
			TaxDeductible: e.TaxDeductible,
			CreatedAt:     e.CreatedAt,
			UpdatedAt:     e.UpdatedAt,
		})
	}
	for _, c := range byCategory {
		out.ByCategory = append(out.ByCategory, dto.ExpenseCategoryDTO{
			Category: c.Category,
			Total:    c.Total,
			Count:    c.Count,
		})
	}
	return out, nil
}

// Clients reports invoiced/paid totals per client.
func (uc *ReportUseCase) Clients(ctx context.Context, userID string) (*dto.ClientReportDTO, error) {
	rows, err := uc.reportRepo.ClientReport(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.ClientReportDTO{Clients: make([]dto.ClientReportRowDTO, 0, len(rows))}
	for _, r := range rows {
		out.Clients = append(out.Clients, dto.ClientReportRowDTO{
			ID:            r.ID,
			Name:          r.Name,
			CompanyName:   r.CompanyName,
			Email:         r.Email,
			TotalInvoiced: r.TotalInvoiced,
			TotalPaid:     r.TotalPaid,
			InvoiceCount:  r.InvoiceCount,
		})
	}
	return out, nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func parseRange(in dto.DateRangeRequest) (start, end *time.Time, err error) {
	if in.StartDate != "" {
		t, err := time.Parse(dto.DateLayout, in.StartDate)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		start = &t
	}
	if in.EndDate != "" {
		t, err := time.Parse(dto.DateLayout, in.EndDate)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		// inclusive end: cover the whole day
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, fmt.Errorf("%w: end_date must not precede start_date", domain.ErrInvalidInput)
	}
	return start, end, nil
}
