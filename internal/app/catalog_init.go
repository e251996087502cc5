package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// initCatalog оборачивает каталог кэшем в Redis, если задан адрес.
// Клиент возвращается для health-проверки и закрытия; nil, если кэш выключен.
func initCatalog(cfg Config, source domain.CatalogReference, logger *log.Entry) (domain.CatalogReference, redis.UniversalClient) {
	if cfg.RedisAddr == "" {
		return source, nil
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{cfg.RedisAddr}})
	logger.WithFields(log.Fields{"addr": cfg.RedisAddr, "ttl": cfg.CatalogCacheTTL}).Info("catalog cache enabled")
	return catalog.NewCache(source, client, cfg.CatalogCacheTTL), client
}

func pingRedis(client redis.UniversalClient) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

// forgetSeededProducts сбрасывает кэш для товаров из seed: Redis переживает
// рестарт сервиса, а цена в seed могла измениться.
func forgetSeededProducts(ctx context.Context, ref domain.CatalogReference, seed Seed, logger *log.Entry) {
	cache, ok := ref.(*catalog.Cache)
	if !ok || len(seed.Products) == 0 {
		return
	}
	for _, p := range seed.Products {
		if err := cache.Invalidate(ctx, p.ID); err != nil {
			logger.WithError(err).WithField("product_id", p.ID).Warn("failed to drop cached product")
			return
		}
	}
}
