package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/visago/visago-backend/internal/adapter/docstore"
	"github.com/visago/visago-backend/internal/adapter/notify"
	"github.com/visago/visago-backend/internal/adapter/payproc"
	"github.com/visago/visago-backend/internal/adapter/postgres"
	applicationrepo "github.com/visago/visago-backend/internal/adapter/postgres/application"
	auditrepo "github.com/visago/visago-backend/internal/adapter/postgres/audit"
	bookingrepo "github.com/visago/visago-backend/internal/adapter/postgres/booking"
	creditrepo "github.com/visago/visago-backend/internal/adapter/postgres/credit"
	documentrepo "github.com/visago/visago-backend/internal/adapter/postgres/document"
	paymentrepo "github.com/visago/visago-backend/internal/adapter/postgres/payment"
	snapshotrepo "github.com/visago/visago-backend/internal/adapter/postgres/snapshot"
	"github.com/visago/visago-backend/internal/auth"
	"github.com/visago/visago-backend/internal/config"
	"github.com/visago/visago-backend/internal/domain"
	adminservice "github.com/visago/visago-backend/internal/service/admin"
	applicationservice "github.com/visago/visago-backend/internal/service/application"
	paymentservice "github.com/visago/visago-backend/internal/service/payment"
	"github.com/visago/visago-backend/internal/transport/middleware"
	"github.com/visago/visago-backend/internal/transport/rest"
)

// submissionNotifier matches what the application service consumes, so the
// webhook / noop choice can be made here from config.
type submissionNotifier interface {
	ApplicationSubmitted(ctx context.Context, app *domain.Application) error
	StaffAlert(ctx context.Context, subject, body string) error
}

type orderCreator interface {
	CreateOrder(ctx context.Context, amountCents int64, currency string) (string, error)
}

// Run is the application entry point. It loads configuration, wires the
// repositories, services and HTTP surface together, and serves until the
// process receives SIGINT or SIGTERM.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	apps := applicationrepo.New(pool)
	documents := documentrepo.New(pool)
	snapshots := snapshotrepo.New(pool)
	bookings := bookingrepo.New(pool)
	payments := paymentrepo.New(pool)
	credits := creditrepo.New(pool)
	audit := auditrepo.New(pool)

	signer := docstore.NewSigner(cfg.Docstore.BaseURL, cfg.Docstore.SigningKey)

	var notifier submissionNotifier
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhook(cfg.Notify, logger)
	} else {
		logger.Warn("no notification webhook configured, notifications disabled")
		notifier = &notify.Noop{}
	}

	var processor orderCreator
	if cfg.Payment.BaseURL != "" {
		processor = payproc.NewClient(cfg.Payment, logger)
	} else {
		logger.Warn("no payment processor configured, using stub orders")
		processor = &payproc.Stub{}
	}

	applicationSvc := applicationservice.NewService(
		logger, apps, documents, snapshots, payments, audit, txManager,
		signer, notifier, cfg.Docstore.URLTTL,
	)
	paymentSvc := paymentservice.NewService(
		logger, bookings, payments, credits, apps, audit, txManager,
		processor, cfg.Payment,
	)
	adminSvc := adminservice.NewService(logger, apps, bookings, payments, audit, txManager)

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Applications: rest.NewApplicationHandler(applicationSvc, logger),
		Payments:     rest.NewPaymentHandler(paymentSvc, logger),
		Admin:        rest.NewAdminHandler(adminSvc, logger),
		Health:       rest.NewHealthHandler(pool, BuildVersion()),
		Tokens:       tokens,
		Middlewares: []middleware.Middleware{
			middleware.RequestID,
			middleware.Logger(logger),
			middleware.Recovery(logger),
			middleware.CORS(cfg.CORS),
			limiter.Limit(cfg.RateLimit.RequestsPerMinute),
			metrics.Instrument(),
		},
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case s := <-quit:
			logger.Info("signal caught", slog.String("signal", s.String()))
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	logger.Info("server started", slog.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownErr; err != nil {
		return err
	}

	logger.Info("server stopped", slog.String("addr", srv.Addr))
	return nil
}
