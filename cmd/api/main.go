package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/tenderbook/internal/config"
	"github.com/MrJamesThe3rd/tenderbook/internal/events"
	"github.com/MrJamesThe3rd/tenderbook/internal/export"
	"github.com/MrJamesThe3rd/tenderbook/internal/gateway"
	tbHttp "github.com/MrJamesThe3rd/tenderbook/internal/http"
	exportHandler "github.com/MrJamesThe3rd/tenderbook/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/tenderbook/internal/http/importcsv"
	summaryHandler "github.com/MrJamesThe3rd/tenderbook/internal/http/summary"
	tenderHandler "github.com/MrJamesThe3rd/tenderbook/internal/http/tender"
	txHandler "github.com/MrJamesThe3rd/tenderbook/internal/http/transaction"
	"github.com/MrJamesThe3rd/tenderbook/internal/importer"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
	"github.com/MrJamesThe3rd/tenderbook/internal/metrics"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw, closeGateway, err := gateway.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeGateway()

	if cfg.Events.AMQPURL != "" {
		pub, err := events.NewClient(cfg.Events.AMQPURL, cfg.Events.Exchange, cfg.Events.RoutingKey)
		if err != nil {
			slog.Error("failed to connect to message broker", "error", err)
			os.Exit(1)
		}
		defer pub.Close()

		gw = events.Notify(gw, pub)
	}

	m := metrics.New()
	ledgerService := ledger.NewService(m.InstrumentGateway(gw))

	// A failed load leaves the ledger empty and is reported on /healthz.
	loadCtx, cancel := context.WithTimeout(ctx, cfg.Server.Timeout)
	_ = ledgerService.Load(loadCtx)

	cancel()

	var (
		importService = importer.NewService()
		exportService = export.NewService(ledgerService)
	)

	router := tbHttp.New(cfg.Server.AllowedOrigins, m, ledgerService, tbHttp.Handlers{
		Tenders:      tenderHandler.NewHandler(ledgerService),
		Transactions: txHandler.NewHandler(ledgerService, cfg.View.TxnPageSize),
		Import:       importHandler.NewHandler(importService, ledgerService),
		Summary:      summaryHandler.NewHandler(ledgerService, cfg.View.SummaryPageSize),
		Export:       exportHandler.NewHandler(exportService),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "store", cfg.Store.Backend)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
