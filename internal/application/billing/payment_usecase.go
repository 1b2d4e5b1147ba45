package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
	"github.com/invoiceflow/invoiceflow-api/internal/domain"
	domainbilling "github.com/invoiceflow/invoiceflow-api/internal/domain/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

// PaymentUseCase records payments and reconciles invoice state. Creation and
// deletion run inside a transaction so the payment row and the invoice's
// derived status land together.
type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
	tx          TxRunner
	now         func() time.Time
}

// NewPaymentUseCase builds the payment use case.
func NewPaymentUseCase(paymentRepo repository.PaymentRepository, invoiceRepo repository.InvoiceRepository, tx TxRunner) *PaymentUseCase {
	return &PaymentUseCase{paymentRepo: paymentRepo, invoiceRepo: invoiceRepo, tx: tx, now: time.Now}
}

// Create records a payment against one of the user's invoices. When the
// cumulative paid amount reaches the invoice total, paid_at is stamped (once)
// and the status flips to PAID.
func (uc *PaymentUseCase) Create(ctx context.Context, userID string, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	method := in.Method
	if method == "" {
		method = entity.MethodBankTransfer
	}
	if !validPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment_method %q", domain.ErrInvalidInput, method)
	}
	paymentDate, err := parseDate(in.PaymentDate, "payment_date")
	if err != nil {
		return nil, err
	}

	now := uc.now()
	payment := &entity.Payment{
		ID:             uuid.New().String(),
		Amount:         in.Amount,
		PaymentDate:    paymentDate,
		Method:         method,
		TransactionRef: in.TransactionRef,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var invoiceNumber string
	err = uc.tx.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository) error {
		invoice, err := invoiceRepo.GetByIDAndUser(in.InvoiceID, userID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.Status == entity.StatusCancelled {
			return fmt.Errorf("%w: cancelled invoices do not accept payments", domain.ErrConflict)
		}
		payment.InvoiceID = invoice.ID
		invoiceNumber = invoice.InvoiceNumber
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		return reconcile(invoiceRepo, paymentRepo, invoice, now)
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment, invoiceNumber), nil
}

// Get returns a payment reachable through the user's invoices.
func (uc *PaymentUseCase) Get(userID, paymentID string) (*dto.PaymentResponse, error) {
	payment, err := uc.paymentRepo.GetByIDAndUser(paymentID, userID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return toPaymentResponse(payment, uc.invoiceNumber(userID, payment.InvoiceID)), nil
}

// List returns the user's payments, most recent payment date first.
func (uc *PaymentUseCase) List(userID string, in dto.ListPaymentsRequest) ([]dto.PaymentResponse, error) {
	in.Defaults()
	payments, err := uc.paymentRepo.ListByUser(userID, repository.PaymentFilter{
		InvoiceID: in.InvoiceID,
		Method:    in.Method,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	numbers := map[string]string{}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		number, ok := numbers[p.InvoiceID]
		if !ok {
			number = uc.invoiceNumber(userID, p.InvoiceID)
			numbers[p.InvoiceID] = number
		}
		out = append(out, *toPaymentResponse(p, number))
	}
	return out, nil
}

// Update changes a payment's descriptive fields. Amount and invoice are
// immutable; reconciliation already ran at creation.
func (uc *PaymentUseCase) Update(userID, paymentID string, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	payment, err := uc.paymentRepo.GetByIDAndUser(paymentID, userID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if in.PaymentDate != nil {
		paymentDate, err := parseDate(*in.PaymentDate, "payment_date")
		if err != nil {
			return nil, err
		}
		payment.PaymentDate = paymentDate
	}
	if in.Method != nil {
		if !validPaymentMethod(*in.Method) {
			return nil, fmt.Errorf("%w: unknown payment_method %q", domain.ErrInvalidInput, *in.Method)
		}
		payment.Method = *in.Method
	}
	if in.TransactionRef != nil {
		payment.TransactionRef = *in.TransactionRef
	}
	if in.Notes != nil {
		payment.Notes = *in.Notes
	}
	payment.UpdatedAt = uc.now()
	if err := uc.paymentRepo.Update(payment); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment, uc.invoiceNumber(userID, payment.InvoiceID)), nil
}

// Delete removes a payment. The invoice is re-reconciled but never reopened:
// a PAID invoice stays PAID even when the remaining payments fall short.
func (uc *PaymentUseCase) Delete(ctx context.Context, userID, paymentID string) error {
	payment, err := uc.paymentRepo.GetByIDAndUser(paymentID, userID)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotFound
	}
	now := uc.now()
	return uc.tx.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository) error {
		if err := paymentRepo.Delete(payment.ID); err != nil {
			return err
		}
		invoice, err := invoiceRepo.GetByIDAndUser(payment.InvoiceID, userID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return nil
		}
		return reconcile(invoiceRepo, paymentRepo, invoice, now)
	})
}

// reconcile compares the invoice's cumulative payments against its total.
// paid_at is stamped at most once and never cleared; status transitions are
// one-way through here.
func reconcile(invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository, invoice *entity.Invoice, now time.Time) error {
	paid, err := paymentRepo.SumForInvoice(invoice.ID)
	if err != nil {
		return err
	}
	if domainbilling.CoversTotal(paid, invoice.TotalAmount) && invoice.PaidAt == nil {
		t := now
		invoice.PaidAt = &t
	}
	invoice.Status = domainbilling.DeriveStatus(invoice, now)
	invoice.UpdatedAt = now
	return invoiceRepo.Update(invoice)
}

func (uc *PaymentUseCase) invoiceNumber(userID, invoiceID string) string {
	invoice, err := uc.invoiceRepo.GetByIDAndUser(invoiceID, userID)
	if err != nil || invoice == nil {
		return ""
	}
	return invoice.InvoiceNumber
}

func validPaymentMethod(method string) bool {
	for _, m := range entity.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func toPaymentResponse(p *entity.Payment, invoiceNumber string) *dto.PaymentResponse {
	if p == nil {
		return nil
	}
	return &dto.PaymentResponse{
		ID:             p.ID,
		InvoiceID:      p.InvoiceID,
		InvoiceNumber:  invoiceNumber,
		Amount:         p.Amount,
		PaymentDate:    p.PaymentDate.Format(dto.DateLayout),
		Method:         p.Method,
		TransactionRef: p.TransactionRef,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
