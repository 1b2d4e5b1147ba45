package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem is a line entry on an invoice. Amount = Quantity × UnitPrice,
// recomputed on every save.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
