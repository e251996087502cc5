package grpcsvc

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	storefrontv1 "github.com/vladislavdragonenkov/storefront/proto/storefront/v1"
)

// toProtoOrder переводит заказ в сообщение API. Суммы уходят десятичной строкой без потери точности.
func toProtoOrder(o domain.Order) *storefrontv1.Order {
	products := make([]*storefrontv1.LineItem, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		products = append(products, &storefrontv1.LineItem{
			ProductId: item.ProductID,
			Quantity:  int64(item.Quantity),
			Price:     item.Price.String(),
		})
	}

	return &storefrontv1.Order{
		Id:             o.ID,
		UserId:         o.UserID,
		Products:       products,
		SaleAmount:     o.SaleAmount.String(),
		PaymentMethod:  o.PaymentMethod,
		OrderNo:        o.OrderNo,
		TrackingNumber: o.TrackingNumber,
		Status:         string(o.Status),
		OrderDate:      timestamppb.New(o.OrderDate),
		UpdatedAt:      timestamppb.New(o.UpdatedAt),
		Version:        o.Version,
	}
}
