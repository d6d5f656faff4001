package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/cart"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/checkout"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/client"
	h "github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/http"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/notify"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/scanner"
	"github.com/VidhyaES/scanova-ai-self-checkout/pkg/logger"
)

func main() {
	var cfg Config
	kctx := kong.Parse(&cfg,
		kong.Name("kiosk-service"),
		kong.Description("Self-checkout kiosk: cart, scanning and checkout."),
		kong.UsageOnError(),
	)

	log, err := logger.New("kiosk-service", cfg.LogLevel)
	kctx.FatalIfErrorf(err)
	defer log.Sync()

	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil || taxRate.IsNegative() {
		log.Fatal("invalid tax rate", zap.String("tax_rate", cfg.TaxRate))
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	snapshots, err := openSnapshots(startCtx, cfg.Storage, cfg.KioskID, log)
	if err != nil {
		cancel()
		log.Fatal("failed to open cart storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	store := cart.Open(startCtx, snapshots, log.Named("cart"), cart.WithTaxRate(taxRate))
	cancel()

	emitter := notify.NewEmitter(cfg.NotificationTTL, log.Named("notify"))
	unsubscribe := store.Subscribe(emitter.OnCartEvent)

	httpClient := client.NewHTTPClient(cfg.RequestTimeout)
	scanClient := client.NewScanClient(cfg.CommerceAPIURL, httpClient, log.Named("scan"))
	catalogClient := client.NewCatalogClient(cfg.CommerceAPIURL, httpClient, client.CatalogConfig{CacheTTL: cfg.CatalogCacheTTL}, log.Named("catalog"))
	paymentClient := client.NewPaymentClient(cfg.CommerceAPIURL, httpClient)

	scanService := scanner.NewService(scanClient, catalogClient, store, emitter, cfg.ConfidenceThreshold, log.Named("scanner"))
	orchestrator := checkout.NewOrchestrator(store, checkout.NewPaymentHandler(paymentClient, cfg.RequestTimeout), emitter, cfg.CompletionDelay, log.Named("checkout"))

	router := h.NewRouter(h.Handlers{
		Cart:         h.NewCartHandler(store, scanService, cfg.RequestTimeout),
		Products:     h.NewProductHandler(scanService, cfg.RequestTimeout),
		Checkout:     h.NewCheckoutHandler(orchestrator),
		Notification: h.NewNotificationHandler(emitter),
	}, h.RouterConfig{
		HandlerTimeout:     cfg.RequestTimeout + 5*time.Second,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	}, log.Named("http"))

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "kiosk-service"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("kiosk service starting", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	orchestrator.Shutdown()
	unsubscribe()
	emitter.Close()
	if err := store.Close(ctx); err != nil {
		log.Error("cart snapshot not flushed", zap.Error(err))
	}
	if err := snapshots.Close(); err != nil {
		log.Error("failed to close cart storage", zap.Error(err))
	}

	log.Info("server exited")
}
