// Package grpcsvc реализует административный gRPC API журнала заказов.
package grpcsvc

import (
	"context"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	storefrontv1 "github.com/vladislavdragonenkov/storefront/proto/storefront/v1"
)

// ServiceName совпадает с именем сервиса в proto-описании; под ним публикуется gRPC health.
var ServiceName = storefrontv1.OrderAdmin_ServiceDesc.ServiceName

// Ledger — операции журнала заказов, доступные администратору.
type Ledger interface {
	AdvanceStatus(ctx context.Context, orderID string, target domain.OrderStatus) (domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	CountOrders(ctx context.Context) (int, error)
}

// OrderAdmin реализует storefrontv1.OrderAdminServer поверх журнала заказов.
type OrderAdmin struct {
	storefrontv1.UnimplementedOrderAdminServer

	ledger Ledger
	logger *log.Entry
}

// NewOrderAdmin конструирует сервис.
func NewOrderAdmin(ledger Ledger, logger *log.Entry) *OrderAdmin {
	if logger == nil {
		logger = log.WithField("component", "order-admin")
	}
	return &OrderAdmin{ledger: ledger, logger: logger}
}

// Register регистрирует сервис на gRPC-сервере.
func Register(server grpc.ServiceRegistrar, srv storefrontv1.OrderAdminServer) {
	storefrontv1.RegisterOrderAdminServer(server, srv)
}

// AdvanceOrderStatus переводит заказ в следующий статус.
func (s *OrderAdmin) AdvanceOrderStatus(ctx context.Context, req *storefrontv1.AdvanceOrderStatusRequest) (*storefrontv1.Order, error) {
	if req.GetOrderId() == "" {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	target, err := domain.ParseOrderStatus(req.GetStatus())
	if err != nil {
		return nil, toStatus(err)
	}

	order, err := s.ledger.AdvanceStatus(ctx, req.GetOrderId(), target)
	if err != nil {
		s.logFailure("AdvanceOrderStatus", err, log.Fields{"order_id": req.GetOrderId(), "to": target})
		return nil, toStatus(err)
	}
	return toProtoOrder(order), nil
}

// GetOrder возвращает заказ любого покупателя.
func (s *OrderAdmin) GetOrder(ctx context.Context, req *storefrontv1.GetOrderRequest) (*storefrontv1.Order, error) {
	if req.GetOrderId() == "" {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	order, err := s.ledger.GetOrder(ctx, req.GetOrderId())
	if err != nil {
		s.logFailure("GetOrder", err, log.Fields{"order_id": req.GetOrderId()})
		return nil, toStatus(err)
	}
	return toProtoOrder(order), nil
}

// ListOrders возвращает заказы всех покупателей.
func (s *OrderAdmin) ListOrders(ctx context.Context, req *storefrontv1.ListOrdersRequest) (*storefrontv1.ListOrdersResponse, error) {
	filter := domain.OrderFilter{UserID: req.GetUserId(), Limit: int(req.GetLimit())}
	orders, err := s.ledger.ListOrders(ctx, filter)
	if err != nil {
		s.logFailure("ListOrders", err, log.Fields{"user_id": filter.UserID})
		return nil, toStatus(err)
	}

	resp := &storefrontv1.ListOrdersResponse{Orders: make([]*storefrontv1.Order, 0, len(orders))}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, toProtoOrder(o))
	}
	return resp, nil
}

// CountOrders возвращает число заказов.
func (s *OrderAdmin) CountOrders(ctx context.Context, _ *storefrontv1.CountOrdersRequest) (*storefrontv1.CountOrdersResponse, error) {
	total, err := s.ledger.CountOrders(ctx)
	if err != nil {
		s.logFailure("CountOrders", err, nil)
		return nil, toStatus(err)
	}
	return &storefrontv1.CountOrdersResponse{TotalOrders: int64(total)}, nil
}

func (s *OrderAdmin) logFailure(method string, err error, fields log.Fields) {
	entry := s.logger.WithError(err).WithField("method", method).WithFields(fields)
	if domain.KindOf(err) == domain.KindInternal {
		entry.Error("order admin call failed")
		return
	}
	entry.Debug("order admin call rejected")
}

// toStatus переводит доменную ошибку в gRPC-статус.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	msg := domain.MessageOf(err)
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return status.Error(codes.NotFound, msg)
	case domain.KindValidation:
		return status.Error(codes.InvalidArgument, msg)
	case domain.KindInvalidTransition:
		return status.Error(codes.FailedPrecondition, msg)
	case domain.KindConflict:
		return status.Error(codes.Aborted, msg)
	case domain.KindUnauthorized:
		return status.Error(codes.Unauthenticated, msg)
	default:
		return status.Error(codes.Internal, msg)
	}
}

var _ storefrontv1.OrderAdminServer = (*OrderAdmin)(nil)
