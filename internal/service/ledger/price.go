package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// PriceValidation задаёт, как цены из запроса сверяются с каталогом.
type PriceValidation string

const (
	// PriceTrust сохраняет присланную цену без проверки.
	PriceTrust PriceValidation = "trust"
	// PriceReject отклоняет заказ при расхождении с каталогом.
	PriceReject PriceValidation = "reject"
	// PriceClamp подставляет цену из каталога.
	PriceClamp PriceValidation = "clamp"
)

// ParsePriceValidation разбирает значение из конфигурации. Пустая строка означает reject.
func ParsePriceValidation(raw string) (PriceValidation, error) {
	switch mode := PriceValidation(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return PriceReject, nil
	case PriceTrust, PriceReject, PriceClamp:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown price validation mode %q", raw)
	}
}

// checkPrices сверяет позиции с каталогом и возвращает позиции с итоговыми ценами.
func (s *Service) checkPrices(ctx context.Context, items []domain.LineItem) ([]domain.LineItem, error) {
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	if s.prices == PriceTrust {
		return out, nil
	}

	for idx := range out {
		product, err := s.catalog.GetProduct(ctx, out[idx].ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) && s.prices == PriceReject {
				return nil, domain.Validation("products[%d]: product %s does not exist", idx, out[idx].ProductID)
			}
			return nil, err
		}

		switch s.prices {
		case PriceClamp:
			out[idx].Price = product.Price
		case PriceReject:
			if !out[idx].Price.Equal(product.Price) {
				return nil, domain.Validation("products[%d]: price %s does not match catalog price %s",
					idx, out[idx].Price.StringFixed(2), product.Price.StringFixed(2))
			}
		}
	}
	return out, nil
}
