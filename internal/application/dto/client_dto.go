package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest creates a client. Name and email are required.
type CreateClientRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
}

// UpdateClientRequest updates a client. Absent fields keep their value.
type UpdateClientRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	CompanyName *string `json:"company_name"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Notes       *string `json:"notes"`
}

// ClientResponse is the public view of a Client.
type ClientResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CompanyName string    `json:"company_name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClientDetailResponse adds the on-demand invoice aggregates.
type ClientDetailResponse struct {
	ClientResponse
	TotalInvoiced    decimal.Decimal `json:"total_invoiced"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}
