package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/storage"
)

type StorageConfig struct {
	Driver    string `help:"Where the cart snapshot lives." enum:"badger,redis,mongo" default:"badger" env:"STORAGE_DRIVER"`
	BadgerDir string `help:"Badger data directory, empty for in-memory." default:"./data/cart" env:"BADGER_DIR"`
	RedisAddr string `help:"Redis address." default:"localhost:6379" env:"REDIS_ADDR"`
	MongoURI  string `help:"MongoDB connection URI." default:"mongodb://localhost:27017" env:"MONGO_URI"`
	MongoDB   string `name:"mongo-database" help:"MongoDB database." default:"scanova" env:"MONGO_DATABASE"`
}

type Config struct {
	HTTPPort            string        `help:"HTTP listen port." default:"8081" env:"HTTP_PORT"`
	CommerceAPIURL      string        `name:"commerce-api-url" help:"Base URL of the prediction and commerce API." default:"http://localhost:5000/api" env:"COMMERCE_API_URL"`
	KioskID             string        `help:"Identifies this kiosk in shared storage." default:"kiosk-1" env:"KIOSK_ID"`
	RequestTimeout      time.Duration `help:"Timeout for every outbound call." default:"30s" env:"REQUEST_TIMEOUT"`
	ShutdownTimeout     time.Duration `help:"Graceful shutdown timeout." default:"10s" env:"SHUTDOWN_TIMEOUT"`
	MaxRequestBodySize  int64         `help:"Largest accepted request body in bytes." default:"10485760" env:"MAX_REQUEST_BODY_SIZE"`
	TaxRate             string        `help:"Sales tax rate applied to the subtotal." default:"0.08" env:"TAX_RATE"`
	ConfidenceThreshold float64       `help:"Lowest scan confidence accepted into the cart." default:"0.6" env:"CONFIDENCE_THRESHOLD"`
	NotificationTTL     time.Duration `name:"notification-ttl" help:"How long a notification stays visible." default:"3s" env:"NOTIFICATION_TTL"`
	CompletionDelay     time.Duration `help:"Delay between a successful payment and clearing the cart." default:"3s" env:"COMPLETION_DELAY"`
	CatalogCacheTTL     time.Duration `help:"How long the product catalog is cached." default:"5m" env:"CATALOG_CACHE_TTL"`
	LogLevel            string        `help:"Log level." default:"info" env:"LOG_LEVEL"`

	Storage StorageConfig `embed:"" prefix:"storage-"`
}

func openSnapshots(ctx context.Context, cfg StorageConfig, kioskID string, log *zap.Logger) (storage.SnapshotStore, error) {
	switch cfg.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return storage.NewRedisStore(client, kioskID), nil
	case "mongo":
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return storage.NewMongoStore(db, kioskID), nil
	default:
		return storage.OpenBadger(cfg.BadgerDir, log)
	}
}
