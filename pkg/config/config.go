// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

// Config carries everything the binaries need from the environment.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	TransactionsTable string `env:"DYNAMODB_TRANSACTIONS_TABLE_NAME,required"`
	ComplaintsTable   string `env:"DYNAMODB_COMPLAINTS_TABLE_NAME,required"`
	JobsTable         string `env:"DYNAMODB_JOBS_TABLE_NAME,required"`
	UsersTable        string `env:"DYNAMODB_USERS_TABLE_NAME,required"`
	LedgerTable       string `env:"DYNAMODB_LEDGER_TABLE_NAME,required"`

	QueueURL string `env:"SQS_QUEUE_URL,required"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	EvidenceBucket          string `env:"GCS_EVIDENCE_BUCKET"`
	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`

	PaymentDeadline      time.Duration `env:"PAYMENT_DEADLINE" envDefault:"3h"`
	ShipmentDeadline     time.Duration `env:"SHIPMENT_DEADLINE" envDefault:"48h"`
	BuyerConfirmDeadline time.Duration `env:"BUYER_CONFIRM_DEADLINE" envDefault:"24h"`

	SellerResponseDeadline time.Duration `env:"SELLER_RESPONSE_DEADLINE" envDefault:"48h"`
	ReturnShipmentDeadline time.Duration `env:"RETURN_SHIPMENT_DEADLINE" envDefault:"48h"`
	SellerConfirmDeadline  time.Duration `env:"SELLER_CONFIRM_DEADLINE" envDefault:"24h"`

	SweepBatchSize int32 `env:"SWEEP_BATCH_SIZE" envDefault:"100"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
