package billing

import (
	"context"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

// TxRunner executes billing work inside a database transaction. The callback
// receives invoice and payment repositories bound to the transaction; any
// error rolls the whole unit back.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// InvoicePDFGenerator renders a printable document for an invoice.
type InvoicePDFGenerator interface {
	Generate(issuer *entity.User, client *entity.Client, invoice *entity.Invoice, items []*entity.InvoiceItem) ([]byte, error)
}
