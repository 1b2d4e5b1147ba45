package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest records a payment against an invoice.
type CreatePaymentRequest struct {
	InvoiceID      string          `json:"invoice_id"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentDate    string          `json:"payment_date"` // YYYY-MM-DD
	Method         string          `json:"payment_method"`
	TransactionRef string          `json:"transaction_id"`
	Notes          string          `json:"notes"`
}

// UpdatePaymentRequest updates a payment's descriptive fields. Amount and
// invoice are immutable after creation; reconciliation already ran.
type UpdatePaymentRequest struct {
	PaymentDate    *string `json:"payment_date"`
	Method         *string `json:"payment_method"`
	TransactionRef *string `json:"transaction_id"`
	Notes          *string `json:"notes"`
}

// PaymentResponse is the public view of a Payment.
type PaymentResponse struct {
	ID             string          `json:"id"`
	InvoiceID      string          `json:"invoice_id"`
	InvoiceNumber  string          `json:"invoice_number,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentDate    string          `json:"payment_date"`
	Method         string          `json:"payment_method"`
	TransactionRef string          `json:"transaction_id"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ListPaymentsRequest carries list filters.
type ListPaymentsRequest struct {
	InvoiceID string `query:"invoice"`
	Method    string `query:"payment_method"`
	PageRequest
}
