package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
)

func item(qty, price string) *entity.InvoiceItem {
	q := decimal.RequireFromString(qty)
	p := decimal.RequireFromString(price)
	return &entity.InvoiceItem{
		Quantity:  q,
		UnitPrice: p,
		Amount:    billing.ItemAmount(q, p),
	}
}

func TestItemAmount(t *testing.T) {
	assert.True(t, decimal.RequireFromString("250.00").Equal(
		billing.ItemAmount(decimal.NewFromInt(5), decimal.NewFromInt(50))))
	// Fractional quantities round to cents.
	assert.True(t, decimal.RequireFromString("41.99").Equal(
		billing.ItemAmount(decimal.RequireFromString("1.5"), decimal.RequireFromString("27.99"))))
}

func TestComputeTotals_SubtotalTaxAndTotal(t *testing.T) {
	items := []*entity.InvoiceItem{item("2", "100.00"), item("1", "50.00")}

	totals := billing.ComputeTotals(items, decimal.RequireFromString("19"))

	assert.True(t, decimal.RequireFromString("250.00").Equal(totals.Subtotal))
	assert.True(t, decimal.RequireFromString("47.50").Equal(totals.TaxAmount))
	assert.True(t, decimal.RequireFromString("297.50").Equal(totals.TotalAmount))
}

// total_amount == subtotal + tax_amount must hold for any item set and rate.
func TestComputeTotals_TotalIsSubtotalPlusTax(t *testing.T) {
	cases := []struct {
		items []*entity.InvoiceItem
		rate  string
	}{
		{nil, "19"},
		{[]*entity.InvoiceItem{item("1", "0.01")}, "0"},
		{[]*entity.InvoiceItem{item("3", "33.33"), item("0.5", "19.99")}, "7.25"},
		{[]*entity.InvoiceItem{item("100", "999.99")}, "21"},
	}
	for _, tc := range cases {
		totals := billing.ComputeTotals(tc.items, decimal.RequireFromString(tc.rate))
		assert.True(t, totals.TotalAmount.Equal(totals.Subtotal.Add(totals.TaxAmount)),
			"rate %s: %s != %s + %s", tc.rate, totals.TotalAmount, totals.Subtotal, totals.TaxAmount)
	}
}

func TestComputeTotals_ZeroRate(t *testing.T) {
	totals := billing.ComputeTotals([]*entity.InvoiceItem{item("4", "25.00")}, decimal.Zero)
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Subtotal.Equal(totals.TotalAmount))
}

func TestCoversTotal(t *testing.T) {
	total := decimal.RequireFromString("297.50")
	assert.False(t, billing.CoversTotal(decimal.RequireFromString("297.49"), total))
	assert.True(t, billing.CoversTotal(total, total))
	assert.True(t, billing.CoversTotal(decimal.RequireFromString("300.00"), total))
}
