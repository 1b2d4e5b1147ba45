package repository

import (
	"time"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
)

// InvoiceFilter narrows invoice listings. Zero values mean "no filter".
type InvoiceFilter struct {
	Status   string
	ClientID string
	Limit    int
	Offset   int
}

// InvoiceRepository is the persistence port for Invoice and its items.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	// DeleteItems removes all items of an invoice (items are replaced
	// wholesale on update).
	DeleteItems(invoiceID string) error
	GetByIDAndUser(id, userID string) (*entity.Invoice, error)
	GetItems(invoiceID string) ([]*entity.InvoiceItem, error)
	ListByUser(userID string, f InvoiceFilter) ([]*entity.Invoice, error)
	// ListOverdue returns invoices past due that are neither PAID nor
	// CANCELLED, regardless of whether they were sent.
	ListOverdue(userID string, now time.Time) ([]*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
	Delete(id string) error
	// LastNumberForYear returns the highest invoice_number for the user and
	// year ("" if none). Read inside the creation transaction; see
	// billing.NextNumber for the concurrency caveat.
	LastNumberForYear(userID string, year int) (string, error)
}
