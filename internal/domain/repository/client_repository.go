package repository

import (
	"github.com/shopspring/decimal"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
)

// ClientTotals are on-demand aggregates over a client's invoices.
type ClientTotals struct {
	TotalInvoiced    decimal.Decimal // all invoices
	TotalPaid        decimal.Decimal // PAID invoices
	TotalOutstanding decimal.Decimal // not PAID, not CANCELLED
}

// ClientRepository is the persistence port for Client. Reads are scoped by
// the owning user; a foreign user's id behaves as nonexistent.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByIDAndUser(id, userID string) (*entity.Client, error)
	GetByUserAndEmail(userID, email string) (*entity.Client, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Client, error)
	Update(client *entity.Client) error
	Delete(id string) error
	// Totals aggregates the client's invoices at read time; no caching.
	Totals(clientID string) (ClientTotals, error)
}
