package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
	"github.com/invoiceflow/invoiceflow-api/internal/domain"
	domainbilling "github.com/invoiceflow/invoiceflow-api/internal/domain/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

// InvoiceUseCase implements invoice CRUD, the lifecycle actions and PDF
// rendering. Creation, item replacement and deletion run inside a
// transaction so the number, items and totals land together.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	tx          TxRunner
	pdf         InvoicePDFGenerator
	now         func() time.Time
}

// NewInvoiceUseCase builds the invoice use case.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	tx TxRunner,
	pdf InvoicePDFGenerator,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		tx:          tx,
		pdf:         pdf,
		now:         time.Now,
	}
}

// Create persists an invoice with its items. The number is assigned here:
// the highest existing number for the user and current year is read and
// incremented inside the same transaction as the insert. The sequence year
// is the year of creation, not the issue date, so back-dated invoices still
// number into the current series.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	client, err := uc.clientRepo.GetByIDAndUser(in.ClientID, userID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	issueDate, err := parseDate(in.IssueDate, "issue_date")
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(in.DueDate, "due_date")
	if err != nil {
		return nil, err
	}
	if dueDate.Before(issueDate) {
		return nil, fmt.Errorf("%w: due_date must not precede issue_date", domain.ErrInvalidInput)
	}
	items, err := buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	totals := domainbilling.ComputeTotals(items, user.TaxRate)
	invoice := &entity.Invoice{
		ID:          uuid.New().String(),
		UserID:      userID,
		ClientID:    client.ID,
		IssueDate:   issueDate,
		DueDate:     dueDate,
		Subtotal:    totals.Subtotal,
		TaxAmount:   totals.TaxAmount,
		TotalAmount: totals.TotalAmount,
		Notes:       in.Notes,
		Terms:       in.Terms,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	invoice.Status = domainbilling.DeriveStatus(invoice, now)

	err = uc.tx.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.PaymentRepository) error {
		last, err := invoiceRepo.LastNumberForYear(userID, now.Year())
		if err != nil {
			return err
		}
		number, err := domainbilling.NextNumber(now.Year(), last)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number
		if err := invoiceRepo.Create(invoice); err != nil {
			return err
		}
		for _, item := range items {
			item.InvoiceID = invoice.ID
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(invoice, items, client.Name, decimal.Zero), nil
}

// Get returns a single invoice with items and payment-derived fields.
func (uc *InvoiceUseCase) Get(userID, invoiceID string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByIDAndUser(invoiceID, userID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return uc.respond(invoice)
}

// List returns the user's invoices, newest first, optionally filtered by
// status and client.
func (uc *InvoiceUseCase) List(userID string, in dto.ListInvoicesRequest) ([]dto.InvoiceResponse, error) {
	in.Defaults()
	invoices, err := uc.invoiceRepo.ListByUser(userID, repository.InvoiceFilter{
		Status:   in.Status,
		ClientID: in.ClientID,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, err
	}
	return uc.respondAll(invoices)
}

// ListOverdue returns invoices past due that are still collectible.
func (uc *InvoiceUseCase) ListOverdue(userID string) ([]dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.ListOverdue(userID, uc.now())
	if err != nil {
		return nil, err
	}
	return uc.respondAll(invoices)
}

// Update applies a partial update. A non-nil Items replaces the item set
// wholesale; totals and status are re-derived on every save. CANCELLED and
// PAID invoices reject edits.
func (uc *InvoiceUseCase) Update(ctx context.Context, userID, invoiceID string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByIDAndUser(invoiceID, userID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.Status == entity.StatusCancelled || invoice.Status == entity.StatusPaid {
		return nil, fmt.Errorf("%w: %s invoices cannot be edited", domain.ErrConflict, invoice.Status)
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.ClientID != nil && *in.ClientID != invoice.ClientID {
		client, err := uc.clientRepo.GetByIDAndUser(*in.ClientID, userID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, domain.ErrNotFound
		}
		invoice.ClientID = client.ID
	}
	if in.IssueDate != nil {
		issueDate, err := parseDate(*in.IssueDate, "issue_date")
		if err != nil {
			return nil, err
		}
		invoice.IssueDate = issueDate
	}
	if in.DueDate != nil {
		dueDate, err := parseDate(*in.DueDate, "due_date")
		if err != nil {
			return nil, err
		}
		invoice.DueDate = dueDate
	}
	if invoice.DueDate.Before(invoice.IssueDate) {
		return nil, fmt.Errorf("%w: due_date must not precede issue_date", domain.ErrInvalidInput)
	}
	if in.Notes != nil {
		invoice.Notes = *in.Notes
	}
	if in.Terms != nil {
		invoice.Terms = *in.Terms
	}

	var items []*entity.InvoiceItem
	if in.Items != nil {
		items, err = buildItems(*in.Items)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			item.InvoiceID = invoice.ID
		}
	} else {
		items, err = uc.invoiceRepo.GetItems(invoice.ID)
		if err != nil {
			return nil, err
		}
	}

	now := uc.now()
	totals := domainbilling.ComputeTotals(items, user.TaxRate)
	invoice.Subtotal = totals.Subtotal
	invoice.TaxAmount = totals.TaxAmount
	invoice.TotalAmount = totals.TotalAmount
	invoice.Status = domainbilling.DeriveStatus(invoice, now)
	invoice.UpdatedAt = now

	err = uc.tx.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.PaymentRepository) error {
		if in.Items != nil {
			if err := invoiceRepo.DeleteItems(invoice.ID); err != nil {
				return err
			}
			for _, item := range items {
				if err := invoiceRepo.CreateItem(item); err != nil {
					return err
				}
			}
		}
		return invoiceRepo.Update(invoice)
	})
	if err != nil {
		return nil, err
	}
	return uc.respond(invoice)
}

// Delete removes an invoice and, through the schema's cascade, its items and
// payments.
func (uc *InvoiceUseCase) Delete(userID, invoiceID string) error {
	invoice, err := uc.invoiceRepo.GetByIDAndUser(invoiceID, userID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}
	return uc.invoiceRepo.Delete(invoice.ID)
}

// Send stamps sent_at and re-derives the status. Sending an already-sent
// invoice keeps the original timestamp.
func (uc *InvoiceUseCase) Send(userID, invoiceID string) (*dto.InvoiceActionResponse, error) {
	return uc.action(userID, invoiceID, "invoice sent", func(inv *entity.Invoice, now time.Time) error {
		if inv.Status == entity.StatusCancelled {
			return fmt.Errorf("%w: cancelled invoices cannot be sent", domain.ErrConflict)
		}
		if inv.SentAt == nil {
			t := now
			inv.SentAt = &t
		}
		return nil
	})
}

// MarkPaid stamps paid_at manually, regardless of recorded payments.
func (uc *InvoiceUseCase) MarkPaid(userID, invoiceID string) (*dto.InvoiceActionResponse, error) {
	return uc.action(userID, invoiceID, "invoice marked as paid", func(inv *entity.Invoice, now time.Time) error {
		if inv.Status == entity.StatusCancelled {
			return fmt.Errorf("%w: cancelled invoices cannot be marked paid", domain.ErrConflict)
		}
		if inv.PaidAt == nil {
			t := now
			inv.PaidAt = &t
		}
		return nil
	})
}

// Cancel moves the invoice to its terminal state. Any invoice can be
// cancelled, paid ones included; there is no un-cancel.
func (uc *InvoiceUseCase) Cancel(userID, invoiceID string) (*dto.InvoiceActionResponse, error) {
	return uc.action(userID, invoiceID, "invoice cancelled", func(inv *entity.Invoice, now time.Time) error {
		inv.Status = entity.StatusCancelled
		return nil
	})
}

// RenderPDF produces the printable document for an invoice.
func (uc *InvoiceUseCase) RenderPDF(userID, invoiceID string) ([]byte, string, error) {
	invoice, err := uc.invoiceRepo.GetByIDAndUser(invoiceID, userID)
	if err != nil {
		return nil, "", err
	}
	if invoice == nil {
		return nil, "", domain.ErrNotFound
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrUserNotFound
	}
	client, err := uc.clientRepo.GetByIDAndUser(invoice.ClientID, userID)
	if err != nil {
		return nil, "", err
	}
	items, err := uc.invoiceRepo.GetItems(invoice.ID)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.pdf.Generate(user, client, invoice, items)
	if err != nil {
		return nil, "", fmt.Errorf("render invoice pdf: %w", err)
	}
	return doc, fmt.Sprintf("%s.pdf", invoice.InvoiceNumber), nil
}

func (uc *InvoiceUseCase) action(userID, invoiceID, message string, apply func(*entity.Invoice, time.Time) error) (*dto.InvoiceActionResponse, error) {
	invoice, err := uc.invoiceRepo.GetByIDAndUser(invoiceID, userID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	now := uc.now()
	if err := apply(invoice, now); err != nil {
		return nil, err
	}
	invoice.Status = domainbilling.DeriveStatus(invoice, now)
	invoice.UpdatedAt = now
	if err := uc.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	resp, err := uc.respond(invoice)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceActionResponse{Invoice: *resp, Message: message}, nil
}

// respond loads items, payments and the client name and assembles the full
// response.
func (uc *InvoiceUseCase) respond(invoice *entity.Invoice) (*dto.InvoiceResponse, error) {
	items, err := uc.invoiceRepo.GetItems(invoice.ID)
	if err != nil {
		return nil, err
	}
	paid, err := uc.paymentRepo.SumForInvoice(invoice.ID)
	if err != nil {
		return nil, err
	}
	clientName := ""
	if client, err := uc.clientRepo.GetByIDAndUser(invoice.ClientID, invoice.UserID); err == nil && client != nil {
		clientName = client.Name
	}
	return uc.toResponse(invoice, items, clientName, paid), nil
}

func (uc *InvoiceUseCase) respondAll(invoices []*entity.Invoice) ([]dto.InvoiceResponse, error) {
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp, err := uc.respond(inv)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (uc *InvoiceUseCase) toResponse(invoice *entity.Invoice, items []*entity.InvoiceItem, clientName string, paid decimal.Decimal) *dto.InvoiceResponse {
	itemResponses := make([]dto.InvoiceItemResponse, 0, len(items))
	for _, it := range items {
		itemResponses = append(itemResponses, dto.InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount,
			Order:       it.SortOrder,
		})
	}
	return &dto.InvoiceResponse{
		ID:            invoice.ID,
		ClientID:      invoice.ClientID,
		ClientName:    clientName,
		InvoiceNumber: invoice.InvoiceNumber,
		IssueDate:     invoice.IssueDate.Format(dto.DateLayout),
		DueDate:       invoice.DueDate.Format(dto.DateLayout),
		Status:        invoice.Status,
		Subtotal:      invoice.Subtotal,
		TaxAmount:     invoice.TaxAmount,
		TotalAmount:   invoice.TotalAmount,
		AmountPaid:    paid,
		AmountDue:     domainbilling.AmountDue(invoice.TotalAmount, paid),
		IsOverdue:     domainbilling.IsOverdue(invoice, uc.now()),
		Notes:         invoice.Notes,
		Terms:         invoice.Terms,
		SentAt:        invoice.SentAt,
		PaidAt:        invoice.PaidAt,
		Items:         itemResponses,
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
	}
}

// buildItems validates the request lines and derives their amounts. At least
// one item is required; quantity and unit price must be positive and
// non-negative respectively.
func buildItems(inputs []dto.InvoiceItemInput) ([]*entity.InvoiceItem, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", domain.ErrInvalidInput)
	}
	items := make([]*entity.InvoiceItem, 0, len(inputs))
	now := time.Now()
	for i, in := range inputs {
		if in.Description == "" {
			return nil, fmt.Errorf("%w: item %d: description is required", domain.ErrInvalidInput, i)
		}
		if !in.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: item %d: quantity must be positive", domain.ErrInvalidInput, i)
		}
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %d: unit_price must not be negative", domain.ErrInvalidInput, i)
		}
		order := in.Order
		if order == 0 {
			order = i
		}
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Amount:      domainbilling.ItemAmount(in.Quantity, in.UnitPrice),
			SortOrder:   order,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return items, nil
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return t, nil
}
