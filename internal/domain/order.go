package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

// orderStatusFlow — единственная допустимая последовательность статусов.
var orderStatusFlow = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	return s.index() >= 0
}

func (s OrderStatus) index() int {
	for i, st := range orderStatusFlow {
		if st == s {
			return i
		}
	}
	return -1
}

// Next возвращает следующий статус; ok=false для Delivered и неизвестных значений.
func (s OrderStatus) Next() (OrderStatus, bool) {
	idx := s.index()
	if idx < 0 || idx == len(orderStatusFlow)-1 {
		return "", false
	}
	return orderStatusFlow[idx+1], true
}

// Terminal сообщает, что из статуса нет переходов.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered
}

// Transition проверяет переход from -> to: разрешён только ближайший следующий статус.
func Transition(from, to OrderStatus) error {
	if !to.Valid() {
		return Validation("unknown order status %q", to)
	}
	next, ok := from.Next()
	if !ok || next != to {
		return InvalidTransition(from, to)
	}
	return nil
}

// ParseOrderStatus приводит пользовательский ввод к OrderStatus (регистр не важен).
func ParseOrderStatus(raw string) (OrderStatus, error) {
	raw = strings.TrimSpace(raw)
	for _, st := range orderStatusFlow {
		if strings.EqualFold(string(st), raw) {
			return st, nil
		}
	}
	return "", Validation("unknown order status %q", raw)
}

// LineItem.Price фиксирует цену на момент оформления, это не ссылка на каталог.
type LineItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Order — неизменяемая историческая запись покупки; меняется только Status.
type Order struct {
	ID             string
	UserID         string
	LineItems      []LineItem
	SaleAmount     decimal.Decimal
	PaymentMethod  string
	OrderNo        string
	TrackingNumber string
	Status         OrderStatus
	OrderDate      time.Time
	Version        int64
	UpdatedAt      time.Time
}

// SumLineItems считает Σ quantity × price.
func SumLineItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// MoneyScale: число знаков после запятой, которое хранит журнал заказов.
const MoneyScale = 2

// maxMoney: верхняя граница суммы для NUMERIC(14,2).
var maxMoney = decimal.New(1, 12)

// ValidateLineItems проверяет позиции до расчёта суммы.
func ValidateLineItems(items []LineItem) error {
	if len(items) == 0 {
		return Validation("order must contain at least one product")
	}
	for idx, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return Validation("products[%d].productId is required", idx)
		}
		if item.Quantity < 1 || item.Quantity > MaxCartQuantity {
			return Validation("products[%d].quantity must be between 1 and %d", idx, MaxCartQuantity)
		}
		if item.Price.IsNegative() {
			return Validation("products[%d].price must be >= 0", idx)
		}
		if !item.Price.Equal(item.Price.Truncate(MoneyScale)) {
			return Validation("products[%d].price must have at most %d decimal places", idx, MoneyScale)
		}
	}
	if SumLineItems(items).GreaterThanOrEqual(maxMoney) {
		return Validation("order total must be less than %s", maxMoney.String())
	}
	return nil
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.UserID == "" {
		errs = append(errs, Validation("userId is required"))
	}
	if strings.TrimSpace(o.PaymentMethod) == "" {
		errs = append(errs, Validation("paymentMethod is required"))
	}
	if strings.TrimSpace(o.OrderNo) == "" {
		errs = append(errs, Validation("orderNo is required"))
	}
	if !o.Status.Valid() {
		errs = append(errs, Validation("unknown order status %q", o.Status))
	}
	if err := ValidateLineItems(o.LineItems); err != nil {
		errs = append(errs, err)
	}
	// Сверяем сумму заказа с суммой позиций: qty * price.
	if !SumLineItems(o.LineItems).Equal(o.SaleAmount) {
		errs = append(errs, Validation("saleAmount does not match products sum"))
	}

	return errs
}

const trackingNumberBytes = 6

// NewTrackingNumber генерирует 12 hex-символов в верхнем регистре из 6 криптослучайных байт.
func NewTrackingNumber() (string, error) {
	return newTrackingNumberFrom(rand.Reader)
}

func newTrackingNumberFrom(r io.Reader) (string, error) {
	buf := make([]byte, trackingNumberBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
