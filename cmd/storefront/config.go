package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/app"
)

const (
	envConfigFile                  = "STOREFRONT_CONFIG"
	envLogLevel                    = "STOREFRONT_LOG_LEVEL"
	envHTTPAddr                    = "STOREFRONT_HTTP_ADDR"
	envGRPCAddr                    = "STOREFRONT_GRPC_ADDR"
	envMetricsAddr                 = "STOREFRONT_METRICS_ADDR"
	envStorageDriver               = "STOREFRONT_STORAGE_DRIVER"
	envPostgresDSN                 = "STOREFRONT_POSTGRES_DSN"
	envPostgresAutoMigrate         = "STOREFRONT_POSTGRES_AUTO_MIGRATE"
	envRedisAddr                   = "STOREFRONT_REDIS_ADDR"
	envCatalogCacheTTL             = "STOREFRONT_CATALOG_CACHE_TTL"
	envKafkaBrokers                = "STOREFRONT_KAFKA_BROKERS"
	envKafkaTopic                  = "STOREFRONT_KAFKA_TOPIC"
	envKafkaDLQTopic               = "STOREFRONT_KAFKA_DLQ_TOPIC"
	envOutboxPollInterval          = "STOREFRONT_OUTBOX_POLL_INTERVAL"
	envOutboxBatchSize             = "STOREFRONT_OUTBOX_BATCH_SIZE"
	envOutboxMaxAttempts           = "STOREFRONT_OUTBOX_MAX_ATTEMPTS"
	envOutboxRetryDelay            = "STOREFRONT_OUTBOX_RETRY_DELAY"
	envIdempotencyTTL              = "STOREFRONT_IDEMPOTENCY_TTL"
	envIdempotencyCleanupInterval  = "STOREFRONT_IDEMPOTENCY_CLEANUP_INTERVAL"
	envIdempotencyCleanupBatchSize = "STOREFRONT_IDEMPOTENCY_CLEANUP_BATCH_SIZE"
	envAuthSecret                  = "STOREFRONT_AUTH_SECRET"
	envPriceValidation             = "STOREFRONT_PRICE_VALIDATION"
	envSeedFile                    = "STOREFRONT_SEED_FILE"
)

type envLookup func(key string) (string, bool)

// readConfigFromEnv собирает конфигурацию: значения по умолчанию, затем YAML-файл, затем переменные окружения.
// Некорректные значения переменных не роняют запуск: остаётся прежнее значение и добавляется предупреждение.
func readConfigFromEnv(lookup envLookup) (app.Config, []string, error) {
	cfg := app.DefaultConfig()
	var warnings []string

	if path, ok := nonEmpty(lookup, envConfigFile); ok {
		if err := app.LoadConfigFile(path, &cfg); err != nil {
			return cfg, nil, err
		}
	}

	setString := func(key string, dst *string) {
		if v, ok := nonEmpty(lookup, key); ok {
			*dst = v
		}
	}
	setBool := func(key string, dst *bool) {
		v, ok := nonEmpty(lookup, key)
		if !ok {
			return
		}
		parsed, err := parseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", key, err))
			return
		}
		*dst = parsed
	}
	setInt := func(key string, dst *int, valid func(int) bool, rule string) {
		v, ok := nonEmpty(lookup, key)
		if !ok {
			return
		}
		parsed, err := parseInt(v, valid, rule)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", key, err))
			return
		}
		*dst = parsed
	}
	setDuration := func(key string, dst *time.Duration, valid func(time.Duration) bool, rule string) {
		v, ok := nonEmpty(lookup, key)
		if !ok {
			return
		}
		parsed, err := parseDuration(v, valid, rule)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", key, err))
			return
		}
		*dst = parsed
	}

	positive := func(v int) bool { return v > 0 }
	positiveDuration := func(v time.Duration) bool { return v > 0 }
	nonNegativeDuration := func(v time.Duration) bool { return v >= 0 }

	setString(envHTTPAddr, &cfg.HTTPAddr)
	setString(envGRPCAddr, &cfg.GRPCAddr)
	setString(envMetricsAddr, &cfg.MetricsAddr)
	if v, ok := nonEmpty(lookup, envStorageDriver); ok {
		cfg.StorageDriver = app.StorageDriver(strings.ToLower(v))
	}
	setString(envPostgresDSN, &cfg.PostgresDSN)
	setBool(envPostgresAutoMigrate, &cfg.PostgresAutoMigrate)
	setString(envRedisAddr, &cfg.RedisAddr)
	setDuration(envCatalogCacheTTL, &cfg.CatalogCacheTTL, positiveDuration, "must be > 0")
	if v, ok := nonEmpty(lookup, envKafkaBrokers); ok {
		cfg.KafkaBrokers = splitList(v)
	}
	setString(envKafkaTopic, &cfg.KafkaTopic)
	setString(envKafkaDLQTopic, &cfg.KafkaDLQTopic)
	setDuration(envOutboxPollInterval, &cfg.OutboxPollInterval, positiveDuration, "must be > 0")
	setInt(envOutboxBatchSize, &cfg.OutboxBatchSize, positive, "must be > 0")
	setInt(envOutboxMaxAttempts, &cfg.OutboxMaxAttempts, positive, "must be > 0")
	setDuration(envOutboxRetryDelay, &cfg.OutboxRetryDelay, nonNegativeDuration, "must be >= 0")
	setDuration(envIdempotencyTTL, &cfg.IdempotencyTTL, positiveDuration, "must be > 0")
	setDuration(envIdempotencyCleanupInterval, &cfg.IdempotencyCleanupInterval, positiveDuration, "must be > 0")
	setInt(envIdempotencyCleanupBatchSize, &cfg.IdempotencyCleanupBatchSize, positive, "must be > 0")
	setString(envAuthSecret, &cfg.AuthSecret)
	setString(envPriceValidation, &cfg.PriceValidation)
	setString(envSeedFile, &cfg.SeedFile)

	return cfg, warnings, nil
}

func nonEmpty(lookup envLookup, key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

func parseInt(raw string, valid func(int) bool, rule string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid int value %q", raw)
	}
	if valid != nil && !valid(v) {
		return 0, fmt.Errorf("value %d %s", v, rule)
	}
	return v, nil
}

func parseDuration(raw string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration value %q", raw)
	}
	if valid != nil && !valid(v) {
		return 0, fmt.Errorf("value %s %s", v, rule)
	}
	return v, nil
}
