package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productRepositoryInMemory — каталог и журнал отзывов в памяти.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory каталог.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{items: make(map[string]domain.Product)}
}

func (r *productRepositoryInMemory) Create(_ context.Context, product domain.Product) error {
	if product.ID == "" {
		return domain.Validation("product id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.ID]; exists {
		return &domain.Error{Kind: domain.KindConflict, Message: "Product already exists"}
	}
	product.Reviews = append([]domain.Review(nil), product.Reviews...)
	r.items[product.ID] = product
	return nil
}

// GetProduct возвращает товар без отзывов.
func (r *productRepositoryInMemory) GetProduct(_ context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	product.Reviews = nil
	return product, nil
}

// AppendReview дописывает отзыв; блокировка на запись сериализует конкурентные добавления.
func (r *productRepositoryInMemory) AppendReview(_ context.Context, productID string, review domain.Review) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.items[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	reviews := make([]domain.Review, 0, len(product.Reviews)+1)
	reviews = append(reviews, product.Reviews...)
	reviews = append(reviews, review)
	product.Reviews = reviews
	r.items[productID] = product

	return append([]domain.Review(nil), reviews...), nil
}

func (r *productRepositoryInMemory) ListReviews(_ context.Context, productID string) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return append([]domain.Review{}, product.Reviews...), nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
