package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/ledger"
)

const idempotencyKeyHeader = "Idempotency-Key"

func (a *api) createOrder(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		a.writeError(w, r, domain.Validation("failed to read request body"))
		return
	}

	ctx := r.Context()
	userID := userIDFrom(ctx)
	run := func() (int, []byte) { return a.placeOrder(ctx, userID, raw) }

	key := strings.TrimSpace(r.Header.Get(idempotencyKeyHeader))
	if key == "" || a.Idempotency == nil {
		status, body := run()
		writeRaw(w, status, body)
		return
	}

	status, body, replayed := a.idempotent(ctx, userID+":"+key, requestHash(r.Method, r.URL.Path, userID, raw), run)
	if replayed {
		w.Header().Set("Idempotent-Replayed", "true")
	}
	writeRaw(w, status, body)
}

func (a *api) placeOrder(ctx context.Context, userID string, raw []byte) (int, []byte) {
	var req createOrderRequest
	if err := decodeBytes(raw, &req); err != nil {
		return encodeError(err)
	}

	order, err := a.Ledger.CreateOrder(ctx, userID, ledger.CreateOrderInput{
		PaymentMethod: req.PaymentMethod,
		LineItems:     req.Products,
		Status:        req.Status,
		OrderNo:       req.OrderNo,
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			a.logger.WithError(err).WithField("user_id", userID).Error("order creation failed")
		}
		return encodeError(err)
	}
	return encode(http.StatusCreated, toOrderResponse(order))
}

func (a *api) myOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := a.Ledger.ListOrders(r.Context(), domain.OrderFilter{UserID: userIDFrom(r.Context())})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (a *api) countOrders(w http.ResponseWriter, r *http.Request) {
	total, err := a.Ledger.CountOrders(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"totalOrders": total})
}

func (a *api) firstOrders(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			a.writeError(w, r, domain.Validation("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	orders, err := a.Ledger.FirstOrders(r.Context(), limit)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (a *api) orderDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := a.Ledger.GetOrderDetail(r.Context(), userIDFrom(r.Context()), r.PathValue("orderId"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	o := detail.Order
	products := o.LineItems
	if products == nil {
		products = []domain.LineItem{}
	}
	writeJSON(w, http.StatusOK, orderDetailResponse{
		OrderID:            o.ID,
		OrderNo:            o.OrderNo,
		OrderDate:          o.OrderDate,
		TrackingNumber:     o.TrackingNumber,
		Status:             o.Status,
		PaymentMethod:      o.PaymentMethod,
		Products:           products,
		SaleAmount:         o.SaleAmount,
		TotalProductsPrice: detail.TotalProductsPrice,
		History:            detail.History,
	})
}

func encode(status int, body interface{}) (int, []byte) {
	data, err := json.Marshal(body)
	if err != nil {
		log.WithError(err).Error("failed to encode response")
		return encodeError(domain.Internal(err))
	}
	return status, data
}

func encodeError(err error) (int, []byte) {
	status, body := errorPayload(err)
	data, _ := json.Marshal(body)
	return status, data
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
