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

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/tillpoint/tillpoint/internal/catalog"
	"github.com/tillpoint/tillpoint/internal/register"
	"github.com/tillpoint/tillpoint/internal/server"
	"github.com/tillpoint/tillpoint/internal/storage/sqlite"
	"github.com/tillpoint/tillpoint/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/tillpoint.db")
	port := getEnv("HTTP_PORT", "8080")

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	// Restore the open cart; a missing or malformed snapshot starts fresh.
	reg := register.New()
	if cart, ok, err := store.LoadCart(context.Background()); err != nil {
		slog.Error("Failed to load cart snapshot", "error", err)
		os.Exit(1)
	} else if ok {
		if resumed, err := register.Resume(cart); err != nil {
			slog.Warn("Discarding unusable cart snapshot", "cart_id", cart.ID, "error", err)
		} else {
			reg = resumed
			slog.Info("Cart restored", "cart_id", cart.ID, "line_items", len(cart.LineItems))
		}
	}

	metrics := server.NewMetrics()
	catalogSvc := catalog.NewService(store)

	router := server.NewRouter(
		server.NewCatalogHandler(catalogSvc),
		server.NewCartHandler(reg, catalogSvc, store, metrics),
		server.NewTransactionsHandler(store),
		metrics,
	)

	// Wrap with h2c for HTTP/2 without TLS.
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: h2c.NewHandler(router, &http2.Server{}),
	}

	go func() {
		slog.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
