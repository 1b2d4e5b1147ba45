package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invoiceflow/invoiceflow-api/internal/application/auth"
	"github.com/invoiceflow/invoiceflow-api/internal/application/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/application/expense"
	"github.com/invoiceflow/invoiceflow-api/internal/application/reports"
)

// RouterDeps are the router's dependencies.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ClientUC  *billing.ClientUseCase
	InvoiceUC *billing.InvoiceUseCase
	PaymentUC *billing.PaymentUseCase
	ExpenseUC *expense.ExpenseUseCase
	ReportUC  *reports.ReportUseCase
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (register, login and token endpoints are public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/change-password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)
	authGroup.Get("/user", AuthMiddleware(deps.JWTSecret), authHandler.GetProfile)
	authGroup.Patch("/user", AuthMiddleware(deps.JWTSecret), authHandler.UpdateProfile)

	// Everything below requires a Bearer access token
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Patch("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	// static route before the :id parameter
	invoices.Get("/overdue", invoiceHandler.ListOverdue)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/send", invoiceHandler.Send)
	invoices.Post("/:id/mark_paid", invoiceHandler.MarkPaid)
	invoices.Post("/:id/cancel", invoiceHandler.Cancel)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/", paymentHandler.List)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Patch("/:id", paymentHandler.Update)
	payments.Delete("/:id", paymentHandler.Delete)

	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Patch("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
	reportsGroup.Get("/income", reportHandler.Income)
	reportsGroup.Get("/expenses", reportHandler.Expenses)
	reportsGroup.Get("/clients", reportHandler.Clients)
}
