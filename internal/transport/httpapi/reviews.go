package httpapi

import "net/http"

func (a *api) addReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	reviews, err := a.Reviews.AddReview(r.Context(), r.PathValue("productId"), userIDFrom(r.Context()), req.Rating, req.Comment)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reviews)
}

func (a *api) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := a.Reviews.ListReviews(r.Context(), r.PathValue("productId"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
