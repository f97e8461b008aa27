package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/innatthecape/breakfast-svc/internal/dal/postgres"
	"github.com/innatthecape/breakfast-svc/internal/dal/rabbitmq"
	auditrepo "github.com/innatthecape/breakfast-svc/internal/dal/repositories/audit"
	orderrepo "github.com/innatthecape/breakfast-svc/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/innatthecape/breakfast-svc/internal/dal/repositories/outbox/postgres"
	tokenrepo "github.com/innatthecape/breakfast-svc/internal/dal/repositories/token/postgres"
	"github.com/innatthecape/breakfast-svc/internal/mail"
	"github.com/innatthecape/breakfast-svc/internal/otel"
	"github.com/innatthecape/breakfast-svc/internal/service/services/ordersvc"
	"github.com/innatthecape/breakfast-svc/internal/service/services/reportsvc"
	"github.com/innatthecape/breakfast-svc/internal/service/services/tokensvc"
	httptransport "github.com/innatthecape/breakfast-svc/internal/transport/http"
	outboxworker "github.com/innatthecape/breakfast-svc/internal/worker/outbox"
	reportworker "github.com/innatthecape/breakfast-svc/internal/worker/report"
	sweepworker "github.com/innatthecape/breakfast-svc/internal/worker/sweep"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
	outboxWorker   *outboxworker.Worker
	reportWorker   *reportworker.Worker
	sweepWorker    *sweepworker.Worker
	cancelWorkers  context.CancelFunc
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()
	mailClient := mail.MustNewClient()

	location, err := time.LoadLocation(viper.GetString("report.timezone"))
	if err != nil {
		panic("invalid report.timezone: " + err.Error())
	}

	orderRepository := orderrepo.NewOrderRepository(postgresClient)
	tokenRepository := tokenrepo.NewTokenRepository(postgresClient)
	outboxRepository := outboxrepo.NewOutboxRepository(postgresClient)
	auditRepository := auditrepo.NewAuditRabbitMQRepository(rabbitClient, outboxRepository)

	tokenSvc := tokensvc.MustNewTokenService(
		tokensvc.WithTokenRepository(tokenRepository),
		tokensvc.WithMailer(mailClient),
		tokensvc.WithBaseURL(viper.GetString("tokens.base_url")),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithAuthorizer(tokenSvc),
		ordersvc.WithOrderRepository(orderRepository),
		ordersvc.WithAuditRepository(auditRepository),
	)

	reportSvc := reportsvc.MustNewReportService(
		reportsvc.WithOrderRepository(orderRepository),
		reportsvc.WithMailer(mailClient),
		reportsvc.WithRecipients(viper.GetStringSlice("report.to")),
		reportsvc.WithLocation(location),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, reportSvc, tokenSvc)
	transport.RegisterRoutes()

	return &App{
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
		outboxWorker:   outboxworker.NewWorker(outboxRepository, rabbitClient),
		reportWorker: reportworker.NewWorker(
			reportSvc,
			viper.GetString("report.send_at"),
			viper.GetString("report.target"),
			location,
		),
		sweepWorker: sweepworker.NewWorker(
			tokenSvc,
			viper.GetDuration("sweep.interval"),
			viper.GetInt("sweep.delete_count"),
		),
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancel := context.WithCancel(context.Background())
	a.cancelWorkers = cancel

	go a.outboxWorker.Start(workerCtx)
	go a.reportWorker.Start(workerCtx)
	go a.sweepWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	a.cancelWorkers()

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	}

	if err := a.postgresClient.Close(); err != nil {
		slog.Error("Database connection close error", "error", err)
	} else {
		slog.Info("Database connection closed gracefully")
	}

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
