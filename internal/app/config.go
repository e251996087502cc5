package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/service/ledger"
)

// StorageDriver выбирает реализацию хранилища.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает настройки запуска витрины.
type Config struct {
	HTTPAddr    string `yaml:"http_addr"`
	GRPCAddr    string `yaml:"grpc_addr"`
	MetricsAddr string `yaml:"metrics_addr"`

	StorageDriver       StorageDriver `yaml:"storage_driver"`
	PostgresDSN         string        `yaml:"postgres_dsn"`
	PostgresAutoMigrate bool          `yaml:"postgres_auto_migrate"`

	// Пустой RedisAddr выключает кэш каталога.
	RedisAddr       string        `yaml:"redis_addr"`
	CatalogCacheTTL time.Duration `yaml:"catalog_cache_ttl"`

	// Без KafkaBrokers outbox-воркер не запускается, события копятся в хранилище.
	KafkaBrokers  []string `yaml:"kafka_brokers"`
	KafkaClientID string   `yaml:"kafka_client_id"`
	KafkaTopic    string   `yaml:"kafka_topic"`
	KafkaDLQTopic string   `yaml:"kafka_dlq_topic"`

	OutboxPollInterval time.Duration `yaml:"outbox_poll_interval"`
	OutboxBatchSize    int           `yaml:"outbox_batch_size"`
	OutboxMaxAttempts  int           `yaml:"outbox_max_attempts"`
	OutboxRetryDelay   time.Duration `yaml:"outbox_retry_delay"`

	IdempotencyTTL              time.Duration `yaml:"idempotency_ttl"`
	IdempotencyCleanupInterval  time.Duration `yaml:"idempotency_cleanup_interval"`
	IdempotencyCleanupBatchSize int           `yaml:"idempotency_cleanup_batch_size"`

	AuthSecret      string        `yaml:"auth_secret"`
	AuthLeeway      time.Duration `yaml:"auth_leeway"`
	PriceValidation string        `yaml:"price_validation"`
	SeedFile        string        `yaml:"seed_file"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig возвращает настройки для локального запуска на in-memory хранилище.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:                    ":8080",
		GRPCAddr:                    ":50051",
		MetricsAddr:                 ":9090",
		StorageDriver:               StorageDriverMemory,
		PostgresAutoMigrate:         true,
		CatalogCacheTTL:             time.Minute,
		KafkaClientID:               "storefront",
		KafkaTopic:                  kafka.TopicOrderEvents,
		KafkaDLQTopic:               kafka.TopicDeadLetterQueue,
		OutboxPollInterval:          time.Second,
		OutboxBatchSize:             100,
		OutboxMaxAttempts:           3,
		OutboxRetryDelay:            100 * time.Millisecond,
		IdempotencyTTL:              24 * time.Hour,
		IdempotencyCleanupInterval:  10 * time.Minute,
		IdempotencyCleanupBatchSize: 500,
		AuthLeeway:                  30 * time.Second,
		PriceValidation:             string(ledger.PriceReject),
		ShutdownTimeout:             5 * time.Second,
	}
}

// LoadConfigFile накладывает YAML-файл поверх cfg. Отсутствующие в файле поля не меняются.
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate проверяет согласованность настроек до старта.
func (c Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			errs = append(errs, errors.New("postgres_dsn is required for postgres storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.StorageDriver))
	}

	if strings.TrimSpace(c.AuthSecret) == "" {
		errs = append(errs, errors.New("auth_secret is required"))
	}
	if _, err := ledger.ParsePriceValidation(c.PriceValidation); err != nil {
		errs = append(errs, err)
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}
	if c.OutboxBatchSize <= 0 {
		errs = append(errs, errors.New("outbox_batch_size must be > 0"))
	}
	if c.OutboxMaxAttempts <= 0 {
		errs = append(errs, errors.New("outbox_max_attempts must be > 0"))
	}
	if c.IdempotencyTTL <= 0 {
		errs = append(errs, errors.New("idempotency_ttl must be > 0"))
	}

	return errors.Join(errs...)
}
