package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/invoiceflow/invoiceflow-api/internal/application/auth"
	"github.com/invoiceflow/invoiceflow-api/internal/application/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/application/expense"
	"github.com/invoiceflow/invoiceflow-api/internal/application/reports"
	infrapdf "github.com/invoiceflow/invoiceflow-api/internal/infrastructure/pdf"
	"github.com/invoiceflow/invoiceflow-api/internal/infrastructure/postgres"
	httpRouter "github.com/invoiceflow/invoiceflow-api/internal/interfaces/http"
	"github.com/invoiceflow/invoiceflow-api/pkg/config"
	"github.com/invoiceflow/invoiceflow-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	authUC := auth.NewAuthUseCase(userRepo, tokenRepo, auth.JWTConfig{
		Secret:         cfg.JWT.Secret,
		AccessMinutes:  cfg.JWT.AccessExpiration,
		RefreshMinutes: cfg.JWT.RefreshExpiration,
		Issuer:         cfg.JWT.Issuer,
	})
	clientUC := billing.NewClientUseCase(clientRepo)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, clientRepo, paymentRepo, userRepo, txRunner, pdfGenerator)
	paymentUC := billing.NewPaymentUseCase(paymentRepo, invoiceRepo, txRunner)
	expenseUC := expense.NewExpenseUseCase(expenseRepo)
	reportUC := reports.NewReportUseCase(reportRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "InvoiceFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ClientUC:  clientUC,
		InvoiceUC: invoiceUC,
		PaymentUC: paymentUC,
		ExpenseUC: expenseUC,
		ReportUC:  reportUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
