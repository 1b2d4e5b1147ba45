package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods.
const (
	MethodBankTransfer = "BANK_TRANSFER"
	MethodCreditCard   = "CREDIT_CARD"
	MethodDebitCard    = "DEBIT_CARD"
	MethodPayPal       = "PAYPAL"
	MethodCash         = "CASH"
	MethodCheck        = "CHECK"
	MethodOther        = "OTHER"
)

// PaymentMethods lists the accepted values for Payment.Method.
var PaymentMethods = []string{
	MethodBankTransfer, MethodCreditCard, MethodDebitCard,
	MethodPayPal, MethodCash, MethodCheck, MethodOther,
}

// Payment records a receipt of funds against an invoice. Amount must be
// positive; when the sum of an invoice's payments reaches its total the
// invoice is marked PAID.
type Payment struct {
	ID             string
	InvoiceID      string
	Amount         decimal.Decimal
	PaymentDate    time.Time
	Method         string
	TransactionRef string // external transaction reference
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
