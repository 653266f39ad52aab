// Package server initializes and runs the backend application: it wires
// the database, repositories, services and the HTTP API, and handles
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/heloise-dot/Kaziflow/internal/logging"
	"github.com/heloise-dot/Kaziflow/internal/server/ai"
	"github.com/heloise-dot/Kaziflow/internal/server/config"
	"github.com/heloise-dot/Kaziflow/internal/server/httpapi"
	"github.com/heloise-dot/Kaziflow/internal/server/repositories/repomanager"
	"github.com/heloise-dot/Kaziflow/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	guard := services.NewGuard(db, m, cfg)
	accounts := services.NewAccountService(db, m, cfg)
	attachments := services.NewAttachmentService(cfg)
	invoices := services.NewInvoiceService(db, m, attachments)
	scorer := ai.NewClient(logger, cfg.AIAPIKey, cfg.AIModel, cfg.AIBaseEndpoint)
	risk := services.NewRiskService(db, m, scorer)
	notifications := services.NewNotificationService(db, m)

	handlers := httpapi.NewHandlers(logger, guard, accounts, invoices, risk, notifications)
	router := httpapi.NewRouter(logger, handlers, db, cfg.AllowedOrigins)
	srv := httpapi.NewServer(logger, cfg.EndpointAddr, router)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Start(); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, err.Error())
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
