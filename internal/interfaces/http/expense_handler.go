package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
	"github.com/invoiceflow/invoiceflow-api/internal/application/expense"
)

// ExpenseHandler handles expense CRUD (protected).
type ExpenseHandler struct {
	uc *expense.ExpenseUseCase
}

// NewExpenseHandler builds the handler.
func NewExpenseHandler(uc *expense.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create records an expense.
// POST /api/expenses
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List returns the user's expenses, optionally filtered by category.
// GET /api/expenses?category=...
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var in dto.ListExpensesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	out, err := h.uc.List(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID returns an expense.
// GET /api/expenses/:id
func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update partially updates an expense.
// PATCH /api/expenses/:id
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete removes an expense.
// DELETE /api/expenses/:id
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
