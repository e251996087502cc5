package domain

import (
	"context"
	"time"
)

// UserRepository хранит агрегаты пользователей.
// Мутации корзины и избранного выполняются атомарно на стороне хранилища:
// вызывающий код никогда не делает load-modify-save целого документа.
type UserRepository interface {
	// Get возвращает пользователя или ErrUserNotFound.
	Get(ctx context.Context, id string) (User, error)
	// Create заводит пользователя (используется загрузчиком сидов).
	Create(ctx context.Context, user User) error
	// AddCartLine увеличивает количество существующей строки или добавляет новую.
	AddCartLine(ctx context.Context, userID, productID string, quantity int) ([]CartLine, error)
	// SetCartLineQuantity заменяет количество; ErrCartLineNotFound, если строки нет.
	SetCartLineQuantity(ctx context.Context, userID, productID string, quantity int) ([]CartLine, error)
	// RemoveCartLine удаляет строку; отсутствие строки не считается ошибкой.
	RemoveCartLine(ctx context.Context, userID, productID string) ([]CartLine, error)
	// AddFavorite добавляет товар в избранное; ErrFavoriteExists при повторе.
	AddFavorite(ctx context.Context, userID, productID string) ([]string, error)
	// RemoveFavorite удаляет товар из избранного; ErrFavoriteNotFound, если его нет.
	RemoveFavorite(ctx context.Context, userID, productID string) ([]string, error)
}

// CatalogReference — read-only доступ к каталогу.
// GetProduct возвращает товар без отзывов или ErrProductNotFound.
type CatalogReference interface {
	GetProduct(ctx context.Context, id string) (Product, error)
}

// ReviewRepository — append-only журнал отзывов внутри товара.
type ReviewRepository interface {
	AppendReview(ctx context.Context, productID string, review Review) ([]Review, error)
	ListReviews(ctx context.Context, productID string) ([]Review, error)
}

// ProductRepository объединяет чтение каталога, отзывы и заведение товаров сидом.
type ProductRepository interface {
	CatalogReference
	ReviewRepository
	Create(ctx context.Context, product Product) error
}

// OrderFilter задаёт выборку заказов. Пустой UserID выбирает все заказы.
type OrderFilter struct {
	UserID string
	Limit  int
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ. Возвращает ошибку, если запись с таким ID уже существует.
	Create(ctx context.Context, order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(ctx context.Context, id string) (Order, error)
	// List возвращает заказы по возрастанию даты оформления.
	List(ctx context.Context, filter OrderFilter) ([]Order, error)
	// Count возвращает общее число заказов.
	Count(ctx context.Context) (int, error)
	// Save применяет обновления к заказу с учётом optimistic locking.
	Save(ctx context.Context, order Order) error
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) (OutboxMessage, error)
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// TimelineRepository хранит события жизненного цикла заказа.
type TimelineRepository interface {
	Append(ctx context.Context, event TimelineEvent) error
	List(ctx context.Context, orderID string) ([]TimelineEvent, error)
}

// IdempotencyRepository хранит состояние обработки запросов по idempotency-key.
type IdempotencyRepository interface {
	CreateProcessing(ctx context.Context, key, requestHash string, ttlAt time.Time) (IdempotencyRecord, error)
	Get(ctx context.Context, key string) (IdempotencyRecord, error)
	MarkDone(ctx context.Context, key string, responseBody []byte, httpStatus int) error
	MarkFailed(ctx context.Context, key string, responseBody []byte, httpStatus int) error
	DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error)
}

// Типы событий outbox для агрегата заказа.
const (
	OutboxAggregateOrder          = "order"
	EventTypeOrderCreated         = "order.created"
	EventTypeOrderStatusChanged   = "order.status_changed"
	TimelineTypeOrderCreated      = "created"
	TimelineTypeOrderStatusChange = "status_changed"
)

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	Attempts      int
	CreatedAt     time.Time
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
