package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// userRepositoryInMemory хранит агрегаты пользователей в памяти.
// Каждая мутация корзины/избранного идёт под блокировкой пользователя:
// load -> чистая функция слияния -> save, поэтому параллельные запросы не теряют обновления.
type userRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.User
	locks *keyedMutex
}

// NewUserRepository возвращает in-memory репозиторий пользователей.
func NewUserRepository() domain.UserRepository {
	return &userRepositoryInMemory{
		items: make(map[string]domain.User),
		locks: newKeyedMutex(),
	}
}

func (r *userRepositoryInMemory) Get(_ context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.items[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user.Clone(), nil
}

func (r *userRepositoryInMemory) Create(_ context.Context, user domain.User) error {
	if user.ID == "" {
		return domain.Validation("user id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[user.ID]; exists {
		return &domain.Error{Kind: domain.KindConflict, Message: "User already exists"}
	}
	r.items[user.ID] = user.Clone()
	return nil
}

func (r *userRepositoryInMemory) AddCartLine(_ context.Context, userID, productID string, quantity int) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	err := r.mutate(userID, func(u *domain.User) error {
		merged, err := domain.MergeCartLine(u.CartLines, productID, quantity)
		if err != nil {
			return err
		}
		u.CartLines = merged
		lines = merged
		return nil
	})
	return cloneLines(lines), err
}

func (r *userRepositoryInMemory) SetCartLineQuantity(_ context.Context, userID, productID string, quantity int) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	err := r.mutate(userID, func(u *domain.User) error {
		updated, err := domain.SetCartLineQuantity(u.CartLines, productID, quantity)
		if err != nil {
			return err
		}
		u.CartLines = updated
		lines = updated
		return nil
	})
	return cloneLines(lines), err
}

func (r *userRepositoryInMemory) RemoveCartLine(_ context.Context, userID, productID string) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	err := r.mutate(userID, func(u *domain.User) error {
		u.CartLines = domain.RemoveCartLine(u.CartLines, productID)
		lines = u.CartLines
		return nil
	})
	return cloneLines(lines), err
}

func (r *userRepositoryInMemory) AddFavorite(_ context.Context, userID, productID string) ([]string, error) {
	var favorites []string
	err := r.mutate(userID, func(u *domain.User) error {
		updated, err := domain.AddFavorite(u.Favorites, productID)
		if err != nil {
			return err
		}
		u.Favorites = updated
		favorites = updated
		return nil
	})
	return append([]string(nil), favorites...), err
}

func (r *userRepositoryInMemory) RemoveFavorite(_ context.Context, userID, productID string) ([]string, error) {
	var favorites []string
	err := r.mutate(userID, func(u *domain.User) error {
		updated, err := domain.RemoveFavorite(u.Favorites, productID)
		if err != nil {
			return err
		}
		u.Favorites = updated
		favorites = updated
		return nil
	})
	return append([]string(nil), favorites...), err
}

// mutate выполняет load-modify-save под блокировкой конкретного пользователя.
func (r *userRepositoryInMemory) mutate(userID string, fn func(u *domain.User) error) error {
	unlock := r.locks.Lock(userID)
	defer unlock()

	r.mu.RLock()
	user, ok := r.items[userID]
	r.mu.RUnlock()
	if !ok {
		return domain.ErrUserNotFound
	}

	user = user.Clone()
	if err := fn(&user); err != nil {
		return err
	}

	r.mu.Lock()
	r.items[userID] = user
	r.mu.Unlock()
	return nil
}

func cloneLines(lines []domain.CartLine) []domain.CartLine {
	if lines == nil {
		return nil
	}
	return append([]domain.CartLine(nil), lines...)
}

var _ domain.UserRepository = (*userRepositoryInMemory)(nil)
