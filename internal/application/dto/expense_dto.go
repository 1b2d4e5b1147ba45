package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest creates an expense record.
type CreateExpenseRequest struct {
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	ExpenseDate   string          `json:"expense_date"` // YYYY-MM-DD
	Vendor        string          `json:"vendor"`
	Notes         string          `json:"notes"`
	TaxDeductible *bool           `json:"tax_deductible"` // defaults to true
}

// UpdateExpenseRequest updates an expense. Absent fields keep their value.
type UpdateExpenseRequest struct {
	Description   *string          `json:"description"`
	Amount        *decimal.Decimal `json:"amount"`
	Category      *string          `json:"category"`
	ExpenseDate   *string          `json:"expense_date"`
	Vendor        *string          `json:"vendor"`
	Notes         *string          `json:"notes"`
	TaxDeductible *bool            `json:"tax_deductible"`
}

// ExpenseResponse is the public view of an Expense.
type ExpenseResponse struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	ExpenseDate   string          `json:"expense_date"`
	Vendor        string          `json:"vendor"`
	Notes         string          `json:"notes"`
	TaxDeductible bool            `json:"tax_deductible"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ListExpensesRequest carries list filters.
type ListExpensesRequest struct {
	Category string `query:"category"`
	PageRequest
}
