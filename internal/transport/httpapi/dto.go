package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type orderResponse struct {
	ID             string             `json:"id"`
	UserID         string             `json:"userId"`
	Products       []domain.LineItem  `json:"products"`
	SaleAmount     decimal.Decimal    `json:"saleAmount"`
	PaymentMethod  string             `json:"paymentMethod"`
	OrderNo        string             `json:"orderNo"`
	TrackingNumber string             `json:"trackingNumber"`
	Status         domain.OrderStatus `json:"status"`
	OrderDate      time.Time          `json:"orderDate"`
}

func toOrderResponse(o domain.Order) orderResponse {
	products := o.LineItems
	if products == nil {
		products = []domain.LineItem{}
	}
	return orderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		Products:       products,
		SaleAmount:     o.SaleAmount,
		PaymentMethod:  o.PaymentMethod,
		OrderNo:        o.OrderNo,
		TrackingNumber: o.TrackingNumber,
		Status:         o.Status,
		OrderDate:      o.OrderDate,
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

type orderDetailResponse struct {
	OrderID            string                 `json:"orderId"`
	OrderNo            string                 `json:"orderNo"`
	OrderDate          time.Time              `json:"orderDate"`
	TrackingNumber     string                 `json:"trackingNumber"`
	Status             domain.OrderStatus     `json:"status"`
	PaymentMethod      string                 `json:"paymentMethod"`
	Products           []domain.LineItem      `json:"products"`
	SaleAmount         decimal.Decimal        `json:"saleAmount"`
	TotalProductsPrice decimal.Decimal        `json:"totalProductsPrice"`
	History            []domain.TimelineEvent `json:"history"`
}

type createOrderRequest struct {
	PaymentMethod string            `json:"paymentMethod"`
	Products      []domain.LineItem `json:"products"`
	Status        string            `json:"status"`
	OrderNo       string            `json:"orderNo"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

type reviewRequest struct {
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

type favoritesResponse struct {
	Message   string   `json:"message"`
	Favorites []string `json:"favorites"`
}
