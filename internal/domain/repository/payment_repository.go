package repository

import (
	"github.com/shopspring/decimal"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
)

// PaymentFilter narrows payment listings. Zero values mean "no filter".
type PaymentFilter struct {
	InvoiceID string
	Method    string
	Limit     int
	Offset    int
}

// PaymentRepository is the persistence port for Payment. Tenancy is enforced
// through the invoice's owner: payments are reachable only via invoices that
// belong to the requesting user.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByIDAndUser(id, userID string) (*entity.Payment, error)
	ListByUser(userID string, f PaymentFilter) ([]*entity.Payment, error)
	Update(payment *entity.Payment) error
	Delete(id string) error
	// SumForInvoice returns the cumulative paid amount (zero if none).
	SumForInvoice(invoiceID string) (decimal.Decimal, error)
}
