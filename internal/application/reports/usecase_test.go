package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
	"github.com/invoiceflow/invoiceflow-api/internal/domain"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

// fakeReportRepo returns canned aggregates and records the revenue windows it
// was asked for.
type fakeReportRepo struct {
	overview       repository.DashboardOverviewResult
	recent         []repository.RecentInvoiceResult
	top            []repository.TopClientResult
	income         []repository.IncomeRowResult
	expenses       []*entity.Expense
	byCategory     []repository.ExpenseCategoryResult
	clients        []repository.ClientReportResult
	revenueByStart map[string]decimal.Decimal
	revenueWindows [][2]time.Time
	incomeStart    *time.Time
	incomeEnd      *time.Time
}

func (r *fakeReportRepo) Overview(_ context.Context, _ string, _, _ time.Time) (repository.DashboardOverviewResult, error) {
	return r.overview, nil
}

func (r *fakeReportRepo) RecentInvoices(_ context.Context, _ string, limit int) ([]repository.RecentInvoiceResult, error) {
	if limit < len(r.recent) {
		return r.recent[:limit], nil
	}
	return r.recent, nil
}

func (r *fakeReportRepo) RevenueBetween(_ context.Context, _ string, start, end time.Time) (decimal.Decimal, error) {
	r.revenueWindows = append(r.revenueWindows, [2]time.Time{start, end})
	if v, ok := r.revenueByStart[start.Format("2006-01")]; ok {
		return v, nil
	}
	return decimal.Zero, nil
}

func (r *fakeReportRepo) TopClients(_ context.Context, _ string, limit int) ([]repository.TopClientResult, error) {
	if limit < len(r.top) {
		return r.top[:limit], nil
	}
	return r.top, nil
}

func (r *fakeReportRepo) IncomeBetween(_ context.Context, _ string, start, end *time.Time) ([]repository.IncomeRowResult, error) {
	r.incomeStart, r.incomeEnd = start, end
	return r.income, nil
}

func (r *fakeReportRepo) ExpensesBetween(_ context.Context, _ string, _, _ *time.Time) ([]*entity.Expense, error) {
	return r.expenses, nil
}

func (r *fakeReportRepo) ExpensesByCategory(_ context.Context, _ string, _, _ *time.Time) ([]repository.ExpenseCategoryResult, error) {
	return r.byCategory, nil
}

func (r *fakeReportRepo) ClientReport(_ context.Context, _ string) ([]repository.ClientReportResult, error) {
	return r.clients, nil
}

func newReportUC(repo *fakeReportRepo, now time.Time) *ReportUseCase {
	uc := NewReportUseCase(repo)
	uc.now = func() time.Time { return now }
	return uc
}

func TestDashboard_MonthlyRevenueSeries(t *testing.T) {
	// Mid-month anchor keeps the 30-day stepping one bucket per month.
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeReportRepo{
		revenueByStart: map[string]decimal.Decimal{
			"2026-06": decimal.NewFromInt(5000),
			"2026-04": decimal.NewFromInt(1200),
		},
	}
	uc := newReportUC(repo, now)

	out, err := uc.Dashboard(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, out.MonthlyRevenue, 6)
	labels := make([]string, 0, 6)
	for _, m := range out.MonthlyRevenue {
		labels = append(labels, m.Month)
	}
	assert.Equal(t, []string{"Jan 2026", "Feb 2026", "Mar 2026", "Apr 2026", "May 2026", "Jun 2026"}, labels)
	assert.True(t, out.MonthlyRevenue[5].Revenue.Equal(decimal.NewFromInt(5000)))
	assert.True(t, out.MonthlyRevenue[3].Revenue.Equal(decimal.NewFromInt(1200)))
	assert.True(t, out.MonthlyRevenue[0].Revenue.IsZero())

	// each window spans exactly its calendar month
	for _, w := range repo.revenueWindows {
		assert.Equal(t, 1, w[0].Day())
		assert.Equal(t, 1, w[1].Day())
		assert.Equal(t, w[0].AddDate(0, 1, 0), w[1])
	}
}

// Late in a month the 30-day stepping drifts: a short month drops out of the
// series and its neighbor appears twice. That drift is part of the behavior.
func TestDashboard_MonthlyRevenueSeries_LateMonthDrift(t *testing.T) {
	now := time.Date(2026, time.March, 29, 12, 0, 0, 0, time.UTC)
	uc := newReportUC(&fakeReportRepo{}, now)

	out, err := uc.Dashboard(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, out.MonthlyRevenue, 6)
	labels := make([]string, 0, 6)
	for _, m := range out.MonthlyRevenue {
		labels = append(labels, m.Month)
	}
	// February is skipped and December repeats
	assert.Equal(t, []string{"Oct 2025", "Nov 2025", "Dec 2025", "Dec 2025", "Jan 2026", "Mar 2026"}, labels)
}

func TestDashboard_AssemblesBlocks(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	repo := &fakeReportRepo{
		overview: repository.DashboardOverviewResult{
			TotalOutstanding: decimal.NewFromInt(900),
			PendingInvoices:  3,
			OverdueInvoices:  1,
			OverdueAmount:    decimal.NewFromInt(400),
		},
		recent: []repository.RecentInvoiceResult{
			{ID: "inv-1", InvoiceNumber: "INV-2026-00007", ClientName: "Acme", TotalAmount: decimal.NewFromInt(500), Status: entity.StatusSent, DueDate: now.AddDate(0, 0, 14)},
		},
		top: []repository.TopClientResult{
			{Name: "Acme", CompanyName: "Acme Corp", TotalInvoiced: decimal.NewFromInt(9000)},
		},
	}
	uc := newReportUC(repo, now)

	out, err := uc.Dashboard(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, out.Overview.TotalOutstanding.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, 3, out.Overview.PendingInvoices)
	require.Len(t, out.RecentInvoices, 1)
	assert.Equal(t, "INV-2026-00007", out.RecentInvoices[0].InvoiceNumber)
	assert.Equal(t, "2026-06-29", out.RecentInvoices[0].DueDate)
	require.Len(t, out.TopClients, 1)
	assert.Equal(t, "Acme Corp", out.TopClients[0].CompanyName)
}

func TestIncomeReport(t *testing.T) {
	repo := &fakeReportRepo{
		income: []repository.IncomeRowResult{
			{InvoiceNumber: "INV-2026-00001", ClientName: "Acme", TotalAmount: decimal.RequireFromString("1100.00"), PaidAt: time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)},
			{InvoiceNumber: "INV-2026-00002", ClientName: "Globex", TotalAmount: decimal.RequireFromString("250.50"), PaidAt: time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)},
		},
	}
	uc := newReportUC(repo, time.Now())

	out, err := uc.Income(context.Background(), "user-1", dto.DateRangeRequest{StartDate: "2026-03-01", EndDate: "2026-03-31"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.InvoiceCount)
	assert.True(t, out.TotalIncome.Equal(decimal.RequireFromString("1350.50")))
	assert.Equal(t, "2026-03-03", out.Invoices[0].PaidAt)

	// the end bound covers the whole last day
	require.NotNil(t, repo.incomeEnd)
	assert.Equal(t, 31, repo.incomeEnd.Day())
	assert.Equal(t, 23, repo.incomeEnd.Hour())
	require.NotNil(t, repo.incomeStart)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), *repo.incomeStart)
}

func TestExpenseReport_Totals(t *testing.T) {
	repo := &fakeReportRepo{
		expenses: []*entity.Expense{
			{ID: "e1", Description: "Flight", Amount: decimal.NewFromInt(300), Category: entity.CategoryTravel, ExpenseDate: time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC), TaxDeductible: true},
			{ID: "e2", Description: "Lunch", Amount: decimal.NewFromInt(40), Category: entity.CategoryMeals, ExpenseDate: time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC), TaxDeductible: false},
		},
		byCategory: []repository.ExpenseCategoryResult{
			{Category: entity.CategoryTravel, Total: decimal.NewFromInt(300), Count: 1},
			{Category: entity.CategoryMeals, Total: decimal.NewFromInt(40), Count: 1},
		},
	}
	uc := newReportUC(repo, time.Now())

	out, err := uc.Expenses(context.Background(), "user-1", dto.DateRangeRequest{})
	require.NoError(t, err)
	assert.True(t, out.TotalExpenses.Equal(decimal.NewFromInt(340)))
	assert.True(t, out.TaxDeductible.Equal(decimal.NewFromInt(300)))
	require.Len(t, out.ByCategory, 2)
	assert.Equal(t, entity.CategoryTravel, out.ByCategory[0].Category)
}

func TestReportDateRangeValidation(t *testing.T) {
	uc := newReportUC(&fakeReportRepo{}, time.Now())

	_, err := uc.Income(context.Background(), "user-1", dto.DateRangeRequest{StartDate: "03/01/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Expenses(context.Background(), "user-1", dto.DateRangeRequest{EndDate: "not-a-date"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Income(context.Background(), "user-1", dto.DateRangeRequest{StartDate: "2026-03-10", EndDate: "2026-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientReport(t *testing.T) {
	repo := &fakeReportRepo{
		clients: []repository.ClientReportResult{
			{ID: "c1", Name: "Acme", Email: "billing@acme.test", TotalInvoiced: decimal.NewFromInt(9000), TotalPaid: decimal.NewFromInt(7500), InvoiceCount: 4},
		},
	}
	uc := newReportUC(repo, time.Now())

	out, err := uc.Clients(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, out.Clients, 1)
	assert.True(t, out.Clients[0].TotalPaid.Equal(decimal.NewFromInt(7500)))
	assert.Equal(t, 4, out.Clients[0].InvoiceCount)
}
