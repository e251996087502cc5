package domain

const (
	// DefaultCartQuantity используется, когда клиент не передал количество.
	DefaultCartQuantity = 1
	// MaxCartQuantity ограничивает количество в строке корзины и в позиции заказа.
	// Сумма двух допустимых значений помещается и в int, и в INTEGER PostgreSQL.
	MaxCartQuantity = 10_000
)

// ValidateCartQuantity проверяет, что количество лежит в [1, MaxCartQuantity].
func ValidateCartQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxCartQuantity {
		return Validation("quantity must be between 1 and %d", MaxCartQuantity)
	}
	return nil
}

// ResolveCartQuantity применяет значение по умолчанию и проверяет границы.
func ResolveCartQuantity(quantity *int) (int, error) {
	if quantity == nil {
		return DefaultCartQuantity, nil
	}
	if err := ValidateCartQuantity(*quantity); err != nil {
		return 0, err
	}
	return *quantity, nil
}

// MergeCartLine добавляет товар в корзину: существующая строка увеличивается,
// новая дописывается в конец. Исходный срез не меняется.
// Если итог превысит MaxCartQuantity, корзина не меняется и возвращается Validation.
func MergeCartLine(lines []CartLine, productID string, quantity int) ([]CartLine, error) {
	if err := ValidateCartQuantity(quantity); err != nil {
		return nil, err
	}

	out := make([]CartLine, 0, len(lines)+1)
	merged := false
	for _, line := range lines {
		if line.ProductID == productID {
			if quantity > MaxCartQuantity-line.Quantity {
				return nil, Validation("cart quantity of %s would exceed %d", productID, MaxCartQuantity)
			}
			line.Quantity += quantity
			merged = true
		}
		out = append(out, line)
	}
	if !merged {
		out = append(out, CartLine{ProductID: productID, Quantity: quantity})
	}
	return out, nil
}

// SetCartLineQuantity заменяет количество у существующей строки.
func SetCartLineQuantity(lines []CartLine, productID string, quantity int) ([]CartLine, error) {
	if err := ValidateCartQuantity(quantity); err != nil {
		return nil, err
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Quantity = quantity
			return out, nil
		}
	}
	return nil, ErrCartLineNotFound
}

// RemoveCartLine удаляет строку товара. Отсутствие строки ошибкой не считается.
func RemoveCartLine(lines []CartLine, productID string) []CartLine {
	out := make([]CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ProductID != productID {
			out = append(out, line)
		}
	}
	return out
}
