// seed populates a development database with a demo account: one user, a
// handful of clients, invoices in every lifecycle state, payments and
// expenses. It goes through the use cases so numbering, totals and statuses
// come out the same way the API produces them.
//
// Usage: go run ./cmd/seed
// Login afterwards with demo@invoiceflow.dev / demo-password-123.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoiceflow/invoiceflow-api/internal/application/auth"
	"github.com/invoiceflow/invoiceflow-api/internal/application/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
	"github.com/invoiceflow/invoiceflow-api/internal/application/expense"
	infrapdf "github.com/invoiceflow/invoiceflow-api/internal/infrastructure/pdf"
	"github.com/invoiceflow/invoiceflow-api/internal/infrastructure/postgres"
	"github.com/invoiceflow/invoiceflow-api/pkg/config"
)

const (
	demoEmail    = "demo@invoiceflow.dev"
	demoPassword = "demo-password-123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("load configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("PostgreSQL connection: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, tokenRepo, auth.JWTConfig{
		Secret:         cfg.JWT.Secret,
		AccessMinutes:  cfg.JWT.AccessExpiration,
		RefreshMinutes: cfg.JWT.RefreshExpiration,
		Issuer:         cfg.JWT.Issuer,
	})
	clientUC := billing.NewClientUseCase(clientRepo)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, clientRepo, paymentRepo, userRepo, txRunner, infrapdf.NewMarotoPDFGenerator())
	paymentUC := billing.NewPaymentUseCase(paymentRepo, invoiceRepo, txRunner)
	expenseUC := expense.NewExpenseUseCase(expenseRepo)

	// Demo account
	account, err := authUC.Register(dto.RegisterRequest{
		Email:           demoEmail,
		Password:        demoPassword,
		PasswordConfirm: demoPassword,
		FirstName:       "Dana",
		LastName:        "Rivera",
		BusinessName:    "Rivera Design Studio",
		Phone:           "+1 555 0100",
	})
	if err != nil {
		fail("register demo user: %v (already seeded?)", err)
	}
	userID := account.User.ID

	taxRate := decimal.NewFromInt(10)
	address := "100 Market St, Springfield"
	if _, err := authUC.UpdateProfile(userID, dto.UpdateProfileRequest{
		BusinessAddress: &address,
		TaxRate:         &taxRate,
	}); err != nil {
		fail("update demo profile: %v", err)
	}

	// Clients
	clientSpecs := []dto.CreateClientRequest{
		{Name: "Alice Chen", Email: "alice@acme.test", CompanyName: "Acme Corp", Address: "1 Acme Way", Phone: "+1 555 0101"},
		{Name: "Bob Martin", Email: "bob@globex.test", CompanyName: "Globex", Address: "2 Globex Blvd", Phone: "+1 555 0102"},
		{Name: "Carla Diaz", Email: "carla@initech.test", CompanyName: "Initech", Notes: "prefers quarterly billing"},
	}
	clientIDs := make([]string, 0, len(clientSpecs))
	for _, spec := range clientSpecs {
		c, err := clientUC.Create(userID, spec)
		if err != nil {
			fail("create client %s: %v", spec.Name, err)
		}
		clientIDs = append(clientIDs, c.ID)
	}

	now := time.Now()
	day := func(offset int) string { return now.AddDate(0, 0, offset).Format(dto.DateLayout) }

	// Draft invoice
	draft, err := invoiceUC.Create(ctx, userID, dto.CreateInvoiceRequest{
		ClientID:  clientIDs[0],
		IssueDate: day(0),
		DueDate:   day(30),
		Terms:     "Net 30",
		Items: []dto.InvoiceItemInput{
			{Description: "Brand identity package", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(2400)},
			{Description: "Logo revisions", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(150)},
		},
	})
	if err != nil {
		fail("create draft invoice: %v", err)
	}

	// Sent invoice
	sent, err := invoiceUC.Create(ctx, userID, dto.CreateInvoiceRequest{
		ClientID:  clientIDs[1],
		IssueDate: day(-10),
		DueDate:   day(20),
		Terms:     "Net 30",
		Items: []dto.InvoiceItemInput{
			{Description: "Website redesign, phase 1", Quantity: decimal.NewFromInt(40), UnitPrice: decimal.NewFromInt(95)},
		},
	})
	if err != nil {
		fail("create sent invoice: %v", err)
	}
	if _, err := invoiceUC.Send(userID, sent.ID); err != nil {
		fail("send invoice: %v", err)
	}

	// Overdue invoice (sent, due in the past)
	overdue, err := invoiceUC.Create(ctx, userID, dto.CreateInvoiceRequest{
		ClientID:  clientIDs[2],
		IssueDate: day(-45),
		DueDate:   day(-15),
		Notes:     "second reminder sent",
		Items: []dto.InvoiceItemInput{
			{Description: "Print collateral", Quantity: decimal.NewFromInt(500), UnitPrice: decimal.RequireFromString("1.20")},
		},
	})
	if err != nil {
		fail("create overdue invoice: %v", err)
	}
	if _, err := invoiceUC.Send(userID, overdue.ID); err != nil {
		fail("send overdue invoice: %v", err)
	}

	// Paid invoice: settled by a recorded payment
	paid, err := invoiceUC.Create(ctx, userID, dto.CreateInvoiceRequest{
		ClientID:  clientIDs[0],
		IssueDate: day(-20),
		DueDate:   day(10),
		Items: []dto.InvoiceItemInput{
			{Description: "Packaging mockups", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(800)},
		},
	})
	if err != nil {
		fail("create paid invoice: %v", err)
	}
	if _, err := invoiceUC.Send(userID, paid.ID); err != nil {
		fail("send paid invoice: %v", err)
	}
	if _, err := paymentUC.Create(ctx, userID, dto.CreatePaymentRequest{
		InvoiceID:      paid.ID,
		Amount:         paid.TotalAmount,
		PaymentDate:    day(-2),
		Method:         "BANK_TRANSFER",
		TransactionRef: "WIRE-2041",
	}); err != nil {
		fail("record payment: %v", err)
	}

	// Partial payment on the sent invoice
	if _, err := paymentUC.Create(ctx, userID, dto.CreatePaymentRequest{
		InvoiceID:   sent.ID,
		Amount:      decimal.NewFromInt(1000),
		PaymentDate: day(-1),
		Method:      "PAYPAL",
	}); err != nil {
		fail("record partial payment: %v", err)
	}

	// Cancelled invoice
	cancelled, err := invoiceUC.Create(ctx, userID, dto.CreateInvoiceRequest{
		ClientID:  clientIDs[1],
		IssueDate: day(-5),
		DueDate:   day(25),
		Items: []dto.InvoiceItemInput{
			{Description: "Scoping workshop", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(600)},
		},
	})
	if err != nil {
		fail("create cancelled invoice: %v", err)
	}
	if _, err := invoiceUC.Cancel(userID, cancelled.ID); err != nil {
		fail("cancel invoice: %v", err)
	}

	// Expenses
	expenseSpecs := []dto.CreateExpenseRequest{
		{Description: "Figma subscription", Amount: decimal.NewFromInt(45), Category: "SOFTWARE", ExpenseDate: day(-12), Vendor: "Figma"},
		{Description: "Client lunch", Amount: decimal.RequireFromString("82.50"), Category: "MEALS", ExpenseDate: day(-8), Vendor: "Bistro 9", TaxDeductible: boolPtr(false)},
		{Description: "Studio rent", Amount: decimal.NewFromInt(1500), Category: "RENT", ExpenseDate: day(-3), Vendor: "Hargrove Properties"},
	}
	for _, spec := range expenseSpecs {
		if _, err := expenseUC.Create(userID, spec); err != nil {
			fail("create expense %s: %v", spec.Description, err)
		}
	}

	fmt.Printf("seeded demo account %s (password %s)\n", demoEmail, demoPassword)
	fmt.Printf("invoices: %s (draft), %s (sent), %s (overdue), %s (paid), %s (cancelled)\n",
		draft.InvoiceNumber, sent.InvoiceNumber, overdue.InvoiceNumber, paid.InvoiceNumber, cancelled.InvoiceNumber)
}

func boolPtr(b bool) *bool { return &b }

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
