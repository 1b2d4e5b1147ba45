package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemInput is one line of a create/update invoice request.
// Amount is never accepted from the caller; it is derived.
type InvoiceItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Order       int             `json:"order"`
}

// CreateInvoiceRequest creates an invoice with its items.
type CreateInvoiceRequest struct {
	ClientID  string             `json:"client_id"`
	IssueDate string             `json:"issue_date"` // YYYY-MM-DD
	DueDate   string             `json:"due_date"`   // YYYY-MM-DD
	Notes     string             `json:"notes"`
	Terms     string             `json:"terms"`
	Items     []InvoiceItemInput `json:"items"`
}

// UpdateInvoiceRequest updates an invoice. A non-nil Items slice replaces
// the item set wholesale; nil leaves items untouched.
type UpdateInvoiceRequest struct {
	ClientID  *string             `json:"client_id"`
	IssueDate *string             `json:"issue_date"`
	DueDate   *string             `json:"due_date"`
	Notes     *string             `json:"notes"`
	Terms     *string             `json:"terms"`
	Items     *[]InvoiceItemInput `json:"items"`
}

// InvoiceItemResponse is the public view of a line item.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	Order       int             `json:"order"`
}

// InvoiceResponse is the full view of an invoice.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	ClientID      string                `json:"client_id"`
	ClientName    string                `json:"client_name,omitempty"`
	InvoiceNumber string                `json:"invoice_number"`
	IssueDate     string                `json:"issue_date"`
	DueDate       string                `json:"due_date"`
	Status        string                `json:"status"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	AmountPaid    decimal.Decimal       `json:"amount_paid"`
	AmountDue     decimal.Decimal       `json:"amount_due"`
	IsOverdue     bool                  `json:"is_overdue"`
	Notes         string                `json:"notes"`
	Terms         string                `json:"terms"`
	SentAt        *time.Time            `json:"sent_at"`
	PaidAt        *time.Time            `json:"paid_at"`
	Items         []InvoiceItemResponse `json:"items"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// InvoiceActionResponse wraps lifecycle actions (send, mark_paid, cancel).
type InvoiceActionResponse struct {
	Invoice InvoiceResponse `json:"invoice"`
	Message string          `json:"message"`
}

// ListInvoicesRequest carries list filters.
type ListInvoicesRequest struct {
	Status   string `query:"status"`
	ClientID string `query:"client_id"`
	PageRequest
}
