package billing

import (
	"github.com/shopspring/decimal"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
)

var oneHundred = decimal.NewFromInt(100)

// ItemAmount computes a line amount: quantity × unit price, rounded to 2
// decimal places.
func ItemAmount(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// Totals is the derived monetary state of an invoice.
type Totals struct {
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// ComputeTotals re-derives an invoice's totals from its items and the
// owner's tax rate (a percentage): subtotal is the sum of item amounts,
// tax = subtotal × rate/100, total = subtotal + tax. The whole collection is
// re-summed on every call; item mutations always pass through here.
func ComputeTotals(items []*entity.InvoiceItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount)
	}
	tax := subtotal.Mul(taxRate.Div(oneHundred)).Round(2)
	return Totals{
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: subtotal.Add(tax),
	}
}

// AmountDue is the remainder after payments: total − paid, never used to
// flip status by itself (reconciliation compares paid against total).
func AmountDue(total, paid decimal.Decimal) decimal.Decimal {
	return total.Sub(paid)
}

// CoversTotal reports whether cumulative payments settle the invoice.
func CoversTotal(paid, total decimal.Decimal) bool {
	return paid.GreaterThanOrEqual(total)
}
