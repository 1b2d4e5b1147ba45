package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invoiceflow/invoiceflow-api/internal/application/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
)

// InvoiceHandler handles invoice CRUD and lifecycle actions (protected).
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create creates an invoice with its items and assigns the number.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List returns the user's invoices, optionally filtered by status and client.
// GET /api/invoices?status=SENT&client_id=...
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var in dto.ListInvoicesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	out, err := h.uc.List(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListOverdue returns invoices past due that are still collectible.
// GET /api/invoices/overdue
func (h *InvoiceHandler) ListOverdue(c *fiber.Ctx) error {
	out, err := h.uc.ListOverdue(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID returns the full invoice with items and payment state.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update partially updates an invoice; a present items array replaces the
// item set wholesale.
// PATCH /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete removes an invoice with its items and payments.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Send stamps sent_at and moves the invoice out of DRAFT.
// POST /api/invoices/:id/send
func (h *InvoiceHandler) Send(c *fiber.Ctx) error {
	out, err := h.uc.Send(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkPaid stamps paid_at regardless of recorded payments.
// POST /api/invoices/:id/mark_paid
func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	out, err := h.uc.MarkPaid(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel moves the invoice to its terminal CANCELLED state.
// POST /api/invoices/:id/cancel
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF streams the printable invoice document.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.RenderPDF(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}
