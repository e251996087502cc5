package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestUserRepository_PostgresCartFlow(t *testing.T) {
	ctx := context.Background()
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewUserRepository(store)

	require.NoError(t, repo.Create(ctx, domain.User{ID: "U1", Name: "Ann", Email: "ann@example.com"}))

	lines, err := repo.AddCartLine(ctx, "U1", "P1", 1)
	require.NoError(t, err)
	require.Equal(t, []domain.CartLine{{ProductID: "P1", Quantity: 1}}, lines)

	lines, err = repo.AddCartLine(ctx, "U1", "P2", 2)
	require.NoError(t, err)
	lines, err = repo.AddCartLine(ctx, "U1", "P1", 2)
	require.NoError(t, err)
	require.Equal(t, []domain.CartLine{{ProductID: "P1", Quantity: 3}, {ProductID: "P2", Quantity: 2}}, lines)

	lines, err = repo.SetCartLineQuantity(ctx, "U1", "P2", 7)
	require.NoError(t, err)
	require.Equal(t, 7, lines[1].Quantity)

	_, err = repo.SetCartLineQuantity(ctx, "U1", "P9", 1)
	require.ErrorIs(t, err, domain.ErrCartLineNotFound)

	lines, err = repo.RemoveCartLine(ctx, "U1", "P1")
	require.NoError(t, err)
	require.Equal(t, []domain.CartLine{{ProductID: "P2", Quantity: 7}}, lines)

	lines, err = repo.RemoveCartLine(ctx, "U1", "P1")
	require.NoError(t, err)
	require.Len(t, lines, 1)

	user, err := repo.Get(ctx, "U1")
	require.NoError(t, err)
	require.Equal(t, "Ann", user.Name)
	require.Len(t, user.CartLines, 1)
}

func TestUserRepository_PostgresCartQuantityCap(t *testing.T) {
	ctx := context.Background()
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewUserRepository(store)

	require.NoError(t, repo.Create(ctx, domain.User{ID: "U1"}))

	_, err := repo.AddCartLine(ctx, "U1", "P1", domain.MaxCartQuantity)
	require.NoError(t, err)

	_, err = repo.AddCartLine(ctx, "U1", "P1", 1)
	require.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = repo.AddCartLine(ctx, "U1", "P1", 1<<40)
	require.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = repo.SetCartLineQuantity(ctx, "U1", "P1", domain.MaxCartQuantity+1)
	require.Equal(t, domain.KindValidation, domain.KindOf(err))

	user, err := repo.Get(ctx, "U1")
	require.NoError(t, err)
	require.Equal(t, []domain.CartLine{{ProductID: "P1", Quantity: domain.MaxCartQuantity}}, user.CartLines)
}

func TestUserRepository_PostgresUnknownUser(t *testing.T) {
	ctx := context.Background()
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewUserRepository(store)

	_, err := repo.Get(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.AddCartLine(ctx, "ghost", "P1", 1)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.RemoveCartLine(ctx, "ghost", "P1")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.AddFavorite(ctx, "ghost", "P1")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.RemoveFavorite(ctx, "ghost", "P1")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_PostgresConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewUserRepository(store)
	require.NoError(t, repo.Create(ctx, domain.User{ID: "U1"}))

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := repo.AddCartLine(ctx, "U1", "P1", 1); err != nil {
				t.Errorf("add cart line: %v", err)
			}
		}()
	}
	wg.Wait()

	user, err := repo.Get(ctx, "U1")
	require.NoError(t, err)
	require.Equal(t, []domain.CartLine{{ProductID: "P1", Quantity: workers}}, user.CartLines)
}

func TestUserRepository_PostgresFavorites(t *testing.T) {
	ctx := context.Background()
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewUserRepository(store)
	require.NoError(t, repo.Create(ctx, domain.User{ID: "U1"}))

	favs, err := repo.AddFavorite(ctx, "U1", "P1")
	require.NoError(t, err)
	require.Equal(t, []string{"P1"}, favs)

	_, err = repo.AddFavorite(ctx, "U1", "P1")
	require.ErrorIs(t, err, domain.ErrFavoriteExists)

	favs, err = repo.RemoveFavorite(ctx, "U1", "P1")
	require.NoError(t, err)
	require.Empty(t, favs)

	_, err = repo.RemoveFavorite(ctx, "U1", "P1")
	require.ErrorIs(t, err, domain.ErrFavoriteNotFound)
}
