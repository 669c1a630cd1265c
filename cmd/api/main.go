package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/AlfredoMejia3001/facturacion/internal/config"
	facturacionHttp "github.com/AlfredoMejia3001/facturacion/internal/http"
	eventsHandler "github.com/AlfredoMejia3001/facturacion/internal/http/events"
	exportHandler "github.com/AlfredoMejia3001/facturacion/internal/http/export"
	importHandler "github.com/AlfredoMejia3001/facturacion/internal/http/importcsv"
	invoiceHandler "github.com/AlfredoMejia3001/facturacion/internal/http/invoice"
	"github.com/AlfredoMejia3001/facturacion/internal/importer"
	"github.com/AlfredoMejia3001/facturacion/internal/invoice/store"
	"github.com/AlfredoMejia3001/facturacion/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.Log.Level)

	invoiceStore := store.New()
	if cfg.Seed.DemoData {
		seed.Demo(invoiceStore)
		slog.Info("loaded demo dataset", "invoices", len(invoiceStore.Invoices()))
	}

	var (
		invoicesH = invoiceHandler.NewHandler(invoiceStore)
		importH   = importHandler.NewHandler(importer.NewParser(), invoiceStore)
		exportH   = exportHandler.NewHandler(invoiceStore)
		eventsH   = eventsHandler.NewHandler(invoiceStore)
	)

	router := facturacionHttp.New(invoicesH, importH, exportH, eventsH, cfg.CORS.AllowedOrigins)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		}),
	))
}
