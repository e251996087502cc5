package httpapi

import (
	"net/http"
	"strconv"
)

func (a *api) addFavorite(w http.ResponseWriter, r *http.Request) {
	favs, err := a.Favorites.AddFavorite(r.Context(), userIDFrom(r.Context()), r.PathValue("productId"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, favoritesResponse{Message: "Product added to favorites", Favorites: favs})
}

func (a *api) listFavorites(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	if expand, _ := strconv.ParseBool(r.URL.Query().Get("expand")); expand {
		views, err := a.Favorites.ListFavoritesExpanded(r.Context(), userID)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, views)
		return
	}

	favs, err := a.Favorites.ListFavorites(r.Context(), userID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favs)
}

func (a *api) removeFavorite(w http.ResponseWriter, r *http.Request) {
	favs, err := a.Favorites.RemoveFavorite(r.Context(), userIDFrom(r.Context()), r.PathValue("productId"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favoritesResponse{Message: "Product removed from favorites", Favorites: favs})
}
