package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/catalog"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/classifier"
	h "github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/http"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/payment"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/pricing"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/publisher"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/repository"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/service"
	"github.com/VidhyaES/scanova-ai-self-checkout/pkg/logger"
)

func main() {
	var cfg Config
	kctx := kong.Parse(&cfg,
		kong.Name("commerce-service"),
		kong.Description("Catalog, prediction and checkout API for self-checkout kiosks."),
		kong.UsageOnError(),
	)

	log, err := logger.New("commerce-service", cfg.LogLevel)
	kctx.FatalIfErrorf(err)
	defer log.Sync()

	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil || taxRate.IsNegative() {
		log.Fatal("invalid tax rate", zap.String("tax_rate", cfg.TaxRate))
	}

	if dir := filepath.Dir(cfg.CatalogDBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal("failed to create catalog directory", zap.Error(err))
		}
	}
	products, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatal("failed to open catalog", zap.Error(err))
	}
	defer products.Close()
	if err := products.RunMigrations(); err != nil {
		log.Fatal("failed to migrate catalog", zap.Error(err))
	}

	repo, err := repository.NewRepository(cfg.DB.credentials())
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer repo.Close()
	if err := repo.RunMigrations(); err != nil {
		log.Fatal("failed to migrate postgres", zap.Error(err))
	}

	var authorizer payment.Authorizer = payment.ApproveAll{}
	if cfg.DeclineRate > 0 {
		authorizer = payment.NewRandomDecline(cfg.DeclineRate)
	}

	var clf service.Classifier
	if cfg.ClassifierURL != "" {
		clf = classifier.NewClient(cfg.ClassifierURL, cfg.ClassifierTimeout, log.Named("classifier"))
	}

	calc := pricing.NewCalculator(products, taxRate)
	predictor := service.NewPredictionService(clf, products)
	checkout := service.NewCheckoutService(calc, authorizer, repo, log)

	router := h.NewRouter(h.Handlers{
		Catalog:  h.NewCatalogHandler(products, predictor.Configured(), cfg.RequestTimeout),
		Predict:  h.NewPredictHandler(predictor, cfg.ClassifierTimeout+5*time.Second),
		Checkout: h.NewCheckoutHandler(calc, checkout, cfg.RequestTimeout),
	}, h.RouterConfig{
		RequestTimeout:     cfg.RequestTimeout + 5*time.Second,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	}, log.Named("http"))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	brokers := slices.DeleteFunc(cfg.KafkaBrokers, func(b string) bool { return strings.TrimSpace(b) == "" })
	var poller *publisher.OutboxPoller
	if len(brokers) > 0 {
		poller = publisher.NewOutboxPoller(repo, log, cfg.KafkaTopic, brokers...)
		go poller.Run(ctx)
	} else {
		log.Warn("no kafka brokers configured, receipt events stay in the outbox")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "commerce-service"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("commerce service starting",
			zap.String("addr", srv.Addr),
			zap.Bool("classifier", clf != nil),
			zap.Int("decline_rate", cfg.DeclineRate))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	stop()
	if poller != nil {
		if err := poller.Close(); err != nil {
			log.Error("failed to close kafka writer", zap.Error(err))
		}
	}

	log.Info("server exited")
}
