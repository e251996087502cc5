// Package catalog кэширует чтение каталога в Redis.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const (
	productKeyPrefix = "storefront:catalog:product:"
	defaultTTL       = time.Minute
)

type cachedProduct struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// Cache — read-through кэш поверх CatalogReference.
// Параллельные промахи по одному товару схлопываются в один запрос к источнику.
// Недоступность Redis не ломает чтение: запрос уходит напрямую в источник.
type Cache struct {
	next   domain.CatalogReference
	client redis.UniversalClient
	ttl    time.Duration
	group  singleflight.Group
	logger *log.Entry
}

// NewCache оборачивает next кэшем в Redis.
func NewCache(next domain.CatalogReference, client redis.UniversalClient, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: log.WithField("component", "catalog-cache"),
	}
}

func productKey(id string) string {
	return productKeyPrefix + id
}

// GetProduct возвращает товар из кэша или из источника.
func (c *Cache) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if product, ok := c.lookup(ctx, id); ok {
		return product, nil
	}

	v, err, _ := c.group.Do(id, func() (interface{}, error) {
		product, err := c.next.GetProduct(ctx, id)
		if err != nil {
			return domain.Product{}, err
		}
		c.store(ctx, product)
		return product, nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return v.(domain.Product), nil
}

// Invalidate удаляет товар из кэша.
func (c *Cache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, productKey(id)).Err()
}

func (c *Cache) lookup(ctx context.Context, id string) (domain.Product, bool) {
	raw, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WithError(err).WithField("product_id", id).Debug("catalog cache lookup failed")
		}
		return domain.Product{}, false
	}

	var cached cachedProduct
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.logger.WithError(err).WithField("product_id", id).Warn("corrupted catalog cache entry")
		return domain.Product{}, false
	}
	return domain.Product{ID: cached.ID, Name: cached.Name, Price: cached.Price, Stock: cached.Stock}, true
}

func (c *Cache) store(ctx context.Context, product domain.Product) {
	raw, err := json.Marshal(cachedProduct{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Stock: product.Stock,
	})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productKey(product.ID), raw, c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("product_id", product.ID).Debug("catalog cache store failed")
	}
}

var _ domain.CatalogReference = (*Cache)(nil)
