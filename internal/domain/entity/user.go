package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an account owner. Every client, invoice, payment and
// expense in the system belongs to exactly one user.
type User struct {
	ID              string
	Email           string
	PasswordHash    string // bcrypt hash, never plaintext past registration
	FirstName       string
	LastName        string
	BusinessName    string
	BusinessAddress string
	Phone           string
	Currency        string          // ISO 4217, e.g. "USD"
	TaxRate         decimal.Decimal // percentage applied to invoice subtotals, >= 0
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
