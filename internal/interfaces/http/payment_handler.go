package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invoiceflow/invoiceflow-api/internal/application/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
)

// PaymentHandler handles payment CRUD (protected).
type PaymentHandler struct {
	uc *billing.PaymentUseCase
}

// NewPaymentHandler builds the handler.
func NewPaymentHandler(uc *billing.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Create records a payment and reconciles the invoice.
// POST /api/payments
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List returns the user's payments, optionally filtered by invoice or method.
// GET /api/payments?invoice=...&payment_method=...
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var in dto.ListPaymentsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	out, err := h.uc.List(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID returns a payment.
// GET /api/payments/:id
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update changes a payment's descriptive fields.
// PATCH /api/payments/:id
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete removes a payment and re-reconciles the invoice.
// DELETE /api/payments/:id
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
