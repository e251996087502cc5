package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product — запись каталога. Ядро читает только существование, имя и цену;
// отзывы хранятся внутри товара как append-only журнал.
type Product struct {
	ID      string
	Name    string
	Price   decimal.Decimal
	Stock   int
	Reviews []Review
}

const (
	// MinRating и MaxRating задают допустимый диапазон оценки.
	MinRating = 1
	MaxRating = 5
)

// Review — отзыв покупателя о товаре.
type Review struct {
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewReview проверяет вход и собирает отзыв.
func NewReview(userID string, rating *int, comment string, now time.Time) (Review, error) {
	if rating == nil || strings.TrimSpace(comment) == "" {
		return Review{}, ErrReviewIncomplete
	}
	if *rating < MinRating || *rating > MaxRating {
		return Review{}, Validation("rating must be between %d and %d", MinRating, MaxRating)
	}
	return Review{
		UserID:    userID,
		Rating:    *rating,
		Comment:   comment,
		CreatedAt: now.UTC(),
	}, nil
}
