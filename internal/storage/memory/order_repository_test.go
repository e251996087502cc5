package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newOrder(id, userID string, at time.Time) domain.Order {
	items := []domain.LineItem{
		{ProductID: "P1", Quantity: 5, Price: decimal.NewFromInt(100)},
	}
	return domain.Order{
		ID:             id,
		UserID:         userID,
		LineItems:      items,
		SaleAmount:     domain.SumLineItems(items),
		PaymentMethod:  "card",
		OrderNo:        "ORD-" + id,
		TrackingNumber: "0123456789AB",
		Status:         domain.OrderStatusPending,
		OrderDate:      at,
		UpdatedAt:      at,
	}
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()
	order := newOrder("order-1", "user-1", time.Now().UTC())

	require.NoError(t, repo.Create(ctx, order))
	require.ErrorIs(t, repo.Create(ctx, order), domain.ErrOrderVersionConflict)

	order.LineItems[0].Quantity = 99
	stored, err := repo.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.LineItems[0].Quantity)
	assert.True(t, stored.SaleAmount.Equal(decimal.NewFromInt(500)))

	stored.LineItems[0].Quantity = 1
	again, err := repo.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.LineItems[0].Quantity)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderRepository_ListOrdersByDate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()
	base := time.Now().UTC()

	for _, o := range []domain.Order{
		newOrder("o-3", "user-1", base.Add(3*time.Minute)),
		newOrder("o-1", "user-1", base.Add(time.Minute)),
		newOrder("o-2", "user-2", base.Add(2*time.Minute)),
		newOrder("o-0", "user-2", base.Add(2*time.Minute)),
	} {
		require.NoError(t, repo.Create(ctx, o))
	}

	all, err := repo.List(ctx, domain.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"o-1", "o-0", "o-2", "o-3"}, orderIDs(all))

	mine, err := repo.List(ctx, domain.OrderFilter{UserID: "user-1", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"o-1"}, orderIDs(mine))

	none, err := repo.List(ctx, domain.OrderFilter{UserID: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, none)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestOrderRepository_SaveBumpsVersion(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()
	require.NoError(t, repo.Create(ctx, newOrder("order-1", "user-1", time.Now().UTC())))

	stored, err := repo.Get(ctx, "order-1")
	require.NoError(t, err)
	stored.Status = domain.OrderStatusProcessing
	require.NoError(t, repo.Save(ctx, stored))

	updated, err := repo.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, updated.Status)
	assert.Equal(t, stored.Version+1, updated.Version)

	// Повтор со старой версией проигрывает.
	err = repo.Save(ctx, stored)
	assert.True(t, domain.IsVersionConflict(err))

	require.ErrorIs(t, repo.Save(ctx, newOrder("ghost", "user-1", time.Now())), domain.ErrOrderNotFound)
}

func orderIDs(orders []domain.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}
