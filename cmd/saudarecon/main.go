package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/efreitasn/saudarecon/internal/config"
	"github.com/efreitasn/saudarecon/internal/domain"
	"github.com/efreitasn/saudarecon/internal/export"
	"github.com/efreitasn/saudarecon/internal/handler"
	"github.com/efreitasn/saudarecon/internal/ledgerfile"
	"github.com/efreitasn/saudarecon/internal/service"
	"github.com/efreitasn/saudarecon/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	saudaPath := flag.String("sauda", "", "Sauda ledger file (.csv or .xlsx); runs one reconciliation and exits")
	returnsPath := flag.String("returns", "", "Returns ledger file (.csv or .xlsx)")
	sheet := flag.String("sheet", "", "Worksheet to read from .xlsx ledgers (default: first sheet)")
	party := flag.String("party", "", "Party name for the report")
	format := flag.String("format", "full", "Export format: main, full or xlsx")
	out := flag.String("out", "", "Output file (default: stdout)")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	// One-shot mode writes the export to stdout, so logs go to stderr.
	oneShot := *saudaPath != "" || *returnsPath != ""
	logOut := os.Stdout
	if oneShot {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	reportStore := store.NewReportStore(cfg.MaxReports)
	reconcileSvc := service.NewReconcileService(reportStore, cfg.MaxEntries, cfg.DefaultParty, logger)
	writer := export.NewWriter(cfg.CurrencyPrefix)

	if oneShot {
		loader := ledgerfile.NewLoader()
		loader.Sheet = *sheet
		if err := runOnce(loader, reconcileSvc, writer, *saudaPath, *returnsPath, *party, *format, *out); err != nil {
			logger.Error("reconciliation failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	router := handler.NewRouter(reconcileSvc, writer, logger)
	retention := service.NewRetentionManager(cfg.RetentionInterval, cfg.ReportTTL, reportStore, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	retention.Start(ctx)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop HTTP server, then the retention goroutine.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}

// runOnce reconciles two ledger files and writes a single export.
// Either path may be empty, which stands for an empty ledger.
func runOnce(
	loader *ledgerfile.Loader,
	svc *service.ReconcileService,
	writer *export.Writer,
	saudaPath, returnsPath, party, formatName, outPath string,
) error {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	sauda, err := loadLedger(loader, saudaPath)
	if err != nil {
		return fmt.Errorf("load sauda ledger: %w", err)
	}
	returns, err := loadLedger(loader, returnsPath)
	if err != nil {
		return fmt.Errorf("load returns ledger: %w", err)
	}

	report, err := svc.Reconcile(service.ReconcileRequest{
		Party:   party,
		Sauda:   sauda,
		Returns: returns,
	})
	if err != nil {
		return err
	}

	if outPath == "" {
		return writer.Write(os.Stdout, format, report)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writer.Write(f, format, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadLedger(loader *ledgerfile.Loader, path string) ([]domain.RawEntry, error) {
	if path == "" {
		return nil, nil
	}
	return loader.Load(path)
}
