package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// queryer — общее подмножество *sql.DB и *sql.Tx для чтения.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// userRepository хранит корзину и избранное построчно: каждая мутация это один
// атомарный SQL-оператор, поэтому параллельные запросы не затирают друг друга.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository создаёт PostgreSQL-реализацию UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{db: store.DB()}
}

func (r *userRepository) Get(ctx context.Context, id string) (domain.User, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var user domain.User
	err := r.db.QueryRowContext(ctx, `SELECT id, name, email FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}

	if user.CartLines, err = loadCartLines(ctx, r.db, id); err != nil {
		return domain.User{}, err
	}
	if user.Favorites, err = loadFavorites(ctx, r.db, id); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user domain.User) error {
	if user.ID == "" {
		return domain.Validation("user id is required")
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, name, email) VALUES ($1,$2,$3)`,
			user.ID, user.Name, user.Email); err != nil {
			if isUniqueViolation(err) {
				return &domain.Error{Kind: domain.KindConflict, Message: "User already exists"}
			}
			return fmt.Errorf("insert user: %w", err)
		}
		for _, line := range user.CartLines {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO cart_lines (user_id, product_id, quantity) VALUES ($1,$2,$3)
			`, user.ID, line.ProductID, line.Quantity); err != nil {
				return fmt.Errorf("insert cart line: %w", err)
			}
		}
		for _, productID := range user.Favorites {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO favorites (user_id, product_id) VALUES ($1,$2)
			`, user.ID, productID); err != nil {
				return fmt.Errorf("insert favorite: %w", err)
			}
		}
		return nil
	})
}

// AddCartLine увеличивает количество одним upsert-ом; новая строка встаёт в конец корзины.
// Upsert не срабатывает, если сумма превысила бы MaxCartQuantity.
func (r *userRepository) AddCartLine(ctx context.Context, userID, productID string, quantity int) ([]domain.CartLine, error) {
	if err := domain.ValidateCartQuantity(quantity); err != nil {
		return nil, err
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var lines []domain.CartLine
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO cart_lines (user_id, product_id, quantity)
			VALUES ($1,$2,$3)
			ON CONFLICT (user_id, product_id)
			DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
			WHERE cart_lines.quantity + EXCLUDED.quantity <= $4
		`, userID, productID, quantity, domain.MaxCartQuantity)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("upsert cart line: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return domain.Validation("cart quantity of %s would exceed %d", productID, domain.MaxCartQuantity)
		}

		lines, err = loadCartLines(ctx, tx, userID)
		return err
	})
	return lines, err
}

func (r *userRepository) SetCartLineQuantity(ctx context.Context, userID, productID string, quantity int) ([]domain.CartLine, error) {
	if err := domain.ValidateCartQuantity(quantity); err != nil {
		return nil, err
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var lines []domain.CartLine
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE cart_lines SET quantity = $3
			WHERE user_id = $1 AND product_id = $2
		`, userID, productID, quantity)
		if err != nil {
			return fmt.Errorf("update cart line: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			if err := ensureUserExists(ctx, tx, userID); err != nil {
				return err
			}
			return domain.ErrCartLineNotFound
		}

		lines, err = loadCartLines(ctx, tx, userID)
		return err
	})
	return lines, err
}

// RemoveCartLine удаляет строку; повторное удаление возвращает неизменную корзину.
func (r *userRepository) RemoveCartLine(ctx context.Context, userID, productID string) ([]domain.CartLine, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var lines []domain.CartLine
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := ensureUserExists(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM cart_lines WHERE user_id = $1 AND product_id = $2
		`, userID, productID); err != nil {
			return fmt.Errorf("delete cart line: %w", err)
		}

		var err error
		lines, err = loadCartLines(ctx, tx, userID)
		return err
	})
	return lines, err
}

func (r *userRepository) AddFavorite(ctx context.Context, userID, productID string) ([]string, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var favorites []string
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO favorites (user_id, product_id) VALUES ($1,$2)
		`, userID, productID); err != nil {
			switch {
			case isUniqueViolation(err):
				return domain.ErrFavoriteExists
			case isForeignKeyViolation(err):
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("insert favorite: %w", err)
		}

		var err error
		favorites, err = loadFavorites(ctx, tx, userID)
		return err
	})
	return favorites, err
}

func (r *userRepository) RemoveFavorite(ctx context.Context, userID, productID string) ([]string, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var favorites []string
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM favorites WHERE user_id = $1 AND product_id = $2
		`, userID, productID)
		if err != nil {
			return fmt.Errorf("delete favorite: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			if err := ensureUserExists(ctx, tx, userID); err != nil {
				return err
			}
			return domain.ErrFavoriteNotFound
		}

		favorites, err = loadFavorites(ctx, tx, userID)
		return err
	})
	return favorites, err
}

func ensureUserExists(ctx context.Context, q queryer, userID string) error {
	var exists bool
	if err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return fmt.Errorf("check user exists: %w", err)
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return nil
}

func loadCartLines(ctx context.Context, q queryer, userID string) ([]domain.CartLine, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT product_id, quantity
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY position ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.CartLine, 0)
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart lines: %w", err)
	}
	return lines, nil
}

func loadFavorites(ctx context.Context, q queryer, userID string) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT product_id
		FROM favorites
		WHERE user_id = $1
		ORDER BY position ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return favorites, nil
}

var _ domain.UserRepository = (*userRepository)(nil)
