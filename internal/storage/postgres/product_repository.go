package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию каталога и журнала отзывов.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) error {
	if product.ID == "" {
		return domain.Validation("product id is required")
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, name, price, stock) VALUES ($1,$2,$3,$4)
		`, product.ID, product.Name, product.Price, product.Stock); err != nil {
			if isUniqueViolation(err) {
				return &domain.Error{Kind: domain.KindConflict, Message: "Product already exists"}
			}
			return fmt.Errorf("insert product: %w", err)
		}
		for _, review := range product.Reviews {
			if err := insertReview(ctx, tx, product.ID, review); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *productRepository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var product domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price, stock FROM products WHERE id = $1
	`, id).Scan(&product.ID, &product.Name, &product.Price, &product.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return product, nil
}

// AppendReview делает один INSERT, поэтому конкурентные отзывы не теряются.
func (r *productRepository) AppendReview(ctx context.Context, productID string, review domain.Review) ([]domain.Review, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var reviews []domain.Review
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := insertReview(ctx, tx, productID, review); err != nil {
			return err
		}
		var err error
		reviews, err = loadReviews(ctx, tx, productID)
		return err
	})
	return reviews, err
}

func (r *productRepository) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check product exists: %w", err)
	}
	if !exists {
		return nil, domain.ErrProductNotFound
	}
	return loadReviews(ctx, r.db, productID)
}

func insertReview(ctx context.Context, tx *sql.Tx, productID string, review domain.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO product_reviews (product_id, user_id, rating, comment, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, productID, review.UserID, review.Rating, review.Comment, review.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func loadReviews(ctx context.Context, q queryer, productID string) ([]domain.Review, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT user_id, rating, comment, created_at
		FROM product_reviews
		WHERE product_id = $1
		ORDER BY id ASC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(&review.UserID, &review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		review.CreatedAt = review.CreatedAt.UTC()
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
