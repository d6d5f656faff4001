package main

import (
	"time"

	r "github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/repository"
)

type DBConfig struct {
	Host     string `help:"Postgres host." default:"localhost" env:"DB_HOST"`
	Port     int    `help:"Postgres port." default:"5432" env:"DB_PORT"`
	User     string `help:"Postgres user." default:"postgres" env:"DB_USER"`
	Password string `help:"Postgres password." default:"postgres" env:"DB_PASSWORD"`
	Name     string `help:"Postgres database." default:"commerce" env:"DB_NAME"`
}

func (c DBConfig) credentials() *r.Credentials {
	return &r.Credentials{
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		DBName:   c.Name,
	}
}

type Config struct {
	HTTPPort           string        `help:"HTTP listen port." default:"5000" env:"HTTP_PORT"`
	CatalogDBPath      string        `name:"catalog-db-path" help:"SQLite file holding the product catalog." default:"./data/catalog.db" env:"CATALOG_DB_PATH"`
	KafkaBrokers       []string      `help:"Kafka brokers for receipt events; empty disables publishing." default:"localhost:9092" env:"KAFKA_BROKERS" sep:","`
	KafkaTopic         string        `help:"Topic receiving checkout.completed events." default:"checkout-receipts" env:"KAFKA_TOPIC"`
	ClassifierURL      string        `name:"classifier-url" help:"Image classifier endpoint; empty disables /api/predict." env:"CLASSIFIER_URL"`
	ClassifierTimeout  time.Duration `help:"Timeout for one classifier call." default:"20s" env:"CLASSIFIER_TIMEOUT"`
	DeclineRate        int           `help:"Percentage of payments declined at random, 0 approves all." default:"0" env:"DECLINE_RATE"`
	TaxRate            string        `help:"Sales tax rate." default:"0.08" env:"TAX_RATE"`
	RequestTimeout     time.Duration `help:"Per request timeout." default:"30s" env:"REQUEST_TIMEOUT"`
	ShutdownTimeout    time.Duration `help:"Graceful shutdown timeout." default:"10s" env:"SHUTDOWN_TIMEOUT"`
	MaxRequestBodySize int64         `help:"Largest accepted request body in bytes." default:"10485760" env:"MAX_REQUEST_BODY_SIZE"`
	LogLevel           string        `help:"Log level." default:"info" env:"LOG_LEVEL"`

	DB DBConfig `embed:"" prefix:"db-"`
}
