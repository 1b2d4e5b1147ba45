package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
	"github.com/invoiceflow/invoiceflow-api/internal/application/reports"
)

// ReportHandler handles the dashboard and report endpoints (protected).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard returns the overview, recent invoices, the 6-month revenue
// series and the top clients.
// GET /api/reports/dashboard
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Income reports PAID invoices in an optional date range.
// GET /api/reports/income?start_date=...&end_date=...
func (h *ReportHandler) Income(c *fiber.Ctx) error {
	var in dto.DateRangeRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	out, err := h.uc.Income(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Expenses reports expenses with per-category totals in an optional range.
// GET /api/reports/expenses?start_date=...&end_date=...
func (h *ReportHandler) Expenses(c *fiber.Ctx) error {
	var in dto.DateRangeRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	out, err := h.uc.Expenses(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clients reports invoiced/paid totals per client.
// GET /api/reports/clients
func (h *ReportHandler) Clients(c *fiber.Ctx) error {
	out, err := h.uc.Clients(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
