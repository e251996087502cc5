package httpapi

import (
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func (a *api) addToCart(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	lines, err := a.Cart.AddItem(r.Context(), userIDFrom(r.Context()), r.PathValue("productId"), req.Quantity)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func (a *api) displayCart(w http.ResponseWriter, r *http.Request) {
	views, err := a.Cart.ViewCart(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (a *api) updateCart(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if req.Quantity == nil {
		a.writeError(w, r, domain.Validation("quantity is required"))
		return
	}
	lines, err := a.Cart.UpdateQuantity(r.Context(), userIDFrom(r.Context()), r.PathValue("productId"), *req.Quantity)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func (a *api) removeFromCart(w http.ResponseWriter, r *http.Request) {
	lines, err := a.Cart.RemoveItem(r.Context(), userIDFrom(r.Context()), r.PathValue("productId"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}
