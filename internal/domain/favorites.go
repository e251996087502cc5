package domain

// AddFavorite дописывает товар в избранное; повторное добавление отклоняется.
func AddFavorite(favorites []string, productID string) ([]string, error) {
	for _, id := range favorites {
		if id == productID {
			return nil, ErrFavoriteExists
		}
	}
	out := make([]string, 0, len(favorites)+1)
	out = append(out, favorites...)
	return append(out, productID), nil
}

// RemoveFavorite удаляет товар из избранного, сравнивая сырые идентификаторы.
func RemoveFavorite(favorites []string, productID string) ([]string, error) {
	for i, id := range favorites {
		if id != productID {
			continue
		}
		out := make([]string, 0, len(favorites)-1)
		out = append(out, favorites[:i]...)
		return append(out, favorites[i+1:]...), nil
	}
	return nil, ErrFavoriteNotFound
}
