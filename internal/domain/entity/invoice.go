package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses. CANCELLED is terminal; the rest are derived from
// sent_at, paid_at and due_date on every save.
const (
	StatusDraft     = "DRAFT"
	StatusSent      = "SENT"
	StatusOverdue   = "OVERDUE"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"
)

// Invoice is the billing document header. Monetary fields are derived from
// the line items and the owner's tax rate and must satisfy
// TotalAmount = Subtotal + TaxAmount at all times.
type Invoice struct {
	ID            string
	UserID        string
	ClientID      string
	InvoiceNumber string // INV-{year}-{seq 5 digits}, unique, assigned at first save
	IssueDate     time.Time
	DueDate       time.Time
	Status        string
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	Notes         string // private notes, not shown to the client
	Terms         string // payment terms and conditions
	SentAt        *time.Time
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
