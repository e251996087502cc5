// Package httpapi отдаёт JSON API витрины поверх net/http.
package httpapi

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/service/favorites"
	"github.com/vladislavdragonenkov/storefront/internal/service/ledger"
)

const defaultIdempotencyTTL = 24 * time.Hour

// CartService — операции корзины, нужные транспорту.
type CartService interface {
	AddItem(ctx context.Context, userID, productID string, quantity *int) ([]domain.CartLine, error)
	ViewCart(ctx context.Context, userID string) ([]cart.View, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) ([]domain.CartLine, error)
	RemoveItem(ctx context.Context, userID, productID string) ([]domain.CartLine, error)
}

type FavoritesService interface {
	AddFavorite(ctx context.Context, userID, productID string) ([]string, error)
	ListFavorites(ctx context.Context, userID string) ([]string, error)
	ListFavoritesExpanded(ctx context.Context, userID string) ([]favorites.View, error)
	RemoveFavorite(ctx context.Context, userID, productID string) ([]string, error)
}

type LedgerService interface {
	CreateOrder(ctx context.Context, userID string, in ledger.CreateOrderInput) (domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	GetOrderDetail(ctx context.Context, userID, orderID string) (ledger.OrderDetail, error)
	CountOrders(ctx context.Context) (int, error)
	FirstOrders(ctx context.Context, limit int) ([]domain.Order, error)
}

type ReviewService interface {
	AddReview(ctx context.Context, productID, userID string, rating *int, comment string) ([]domain.Review, error)
	ListReviews(ctx context.Context, productID string) ([]domain.Review, error)
}

// TokenVerifier превращает токен в идентификатор пользователя.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Idempotency и Metrics опциональны.
type Deps struct {
	Cart           CartService
	Favorites      FavoritesService
	Ledger         LedgerService
	Reviews        ReviewService
	Verifier       TokenVerifier
	Idempotency    domain.IdempotencyRepository
	IdempotencyTTL time.Duration
	Metrics        *metrics.StorefrontMetrics
	Logger         *log.Entry
}

type api struct {
	Deps
	logger *log.Entry
}

// NewHandler собирает маршруты API.
func NewHandler(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = log.WithField("component", "http-api")
	}
	if deps.IdempotencyTTL <= 0 {
		deps.IdempotencyTTL = defaultIdempotencyTTL
	}
	a := &api{Deps: deps, logger: logger}

	mux := http.NewServeMux()
	a.route(mux, "POST /cart/add/{productId}", true, a.addToCart)
	a.route(mux, "GET /cart/display", true, a.displayCart)
	a.route(mux, "PUT /cart/update/{productId}", true, a.updateCart)
	a.route(mux, "DELETE /cart/remove/{productId}", true, a.removeFromCart)

	a.route(mux, "POST /favorites/add/{productId}", true, a.addFavorite)
	a.route(mux, "GET /favorites/list", true, a.listFavorites)
	a.route(mux, "DELETE /favorites/remove/{productId}", true, a.removeFavorite)

	a.route(mux, "POST /order/create", true, a.createOrder)
	a.route(mux, "GET /order/mine", true, a.myOrders)
	a.route(mux, "GET /order/count", false, a.countOrders)
	a.route(mux, "GET /order/first", false, a.firstOrders)
	a.route(mux, "GET /order/{orderId}", true, a.orderDetail)

	a.route(mux, "POST /reviews/add/{productId}", true, a.addReview)
	a.route(mux, "GET /reviews/{productId}", false, a.listReviews)

	return a.recoverPanics(mux)
}

func (a *api) route(mux *http.ServeMux, pattern string, authRequired bool, h http.HandlerFunc) {
	var handler http.Handler = h
	if authRequired {
		handler = a.authenticate(handler)
	}
	mux.Handle(pattern, a.instrument(pattern, handler))
}
