package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ericfisherdev/certlink/internal/adapter/driven/filetemplate"
	sqliteadapter "github.com/ericfisherdev/certlink/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/certlink/internal/adapter/driven/spreadsheet"
	httphandler "github.com/ericfisherdev/certlink/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/certlink/internal/adapter/driving/web"
	"github.com/ericfisherdev/certlink/internal/application"
	"github.com/ericfisherdev/certlink/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"base_url", cfg.BaseURL,
		"template_path", cfg.TemplatePath,
		"timezone", cfg.Location.String(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode), held for the process lifetime.
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters and services.
	recordStore := sqliteadapter.NewRecordRepo(db)
	templates := filetemplate.NewSource(cfg.TemplatePath)
	codec := spreadsheet.NewCodec()

	ingestSvc := application.NewIngestService(recordStore, application.NewFingerprinter(cfg.Location), cfg.BaseURL, slog.Default())
	lookupSvc := application.NewLookupService(recordStore, templates)

	// 6. Register routes. The API fallback answers every unmatched path.
	mux := http.NewServeMux()
	apiHandler := httphandler.NewHandler(ingestSvc, lookupSvc, codec, recordStore, cfg.MaxUploadBytes, slog.Default())
	httphandler.RegisterRoutes(mux, apiHandler)

	webHandler := webhandler.NewHandler("/upload", httphandler.UploadField, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	// 7. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 8. Graceful shutdown with 10s timeout to drain in-flight uploads.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
