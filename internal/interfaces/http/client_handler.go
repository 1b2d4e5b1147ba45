package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invoiceflow/invoiceflow-api/internal/application/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
)

// ClientHandler handles client CRUD (protected).
type ClientHandler struct {
	uc *billing.ClientUseCase
}

// NewClientHandler builds the handler.
func NewClientHandler(uc *billing.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create creates a client.
// POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List returns the user's clients.
// GET /api/clients
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	out, err := h.uc.List(GetUserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID returns a client with its invoice aggregates.
// GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update partially updates a client.
// PATCH /api/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete removes a client and everything billed to it.
// DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
