package domain

// User — агрегат покупателя: корзина и избранное живут внутри него.
// Учётные записи создаются вне ядра; здесь только чтение и изменение вложенных коллекций.
type User struct {
	ID        string
	Name      string
	Email     string
	CartLines []CartLine
	Favorites []string
}

// CartLine — строка корзины. ProductID уникален в пределах корзины, Quantity >= 1.
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Clone возвращает копию пользователя с независимыми срезами.
func (u User) Clone() User {
	out := u
	out.CartLines = append([]CartLine(nil), u.CartLines...)
	out.Favorites = append([]string(nil), u.Favorites...)
	return out
}
