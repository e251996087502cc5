package domain

import (
	"errors"
	"fmt"
)

// Kind — стабильный машинно-различимый класс ошибки, который уходит клиенту рядом с message.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindValidation        Kind = "validation"
	KindInvalidTransition Kind = "invalid_transition"
	KindUnauthorized      Kind = "unauthorized"
	KindInternal          Kind = "internal"
)

// Error несёт класс ошибки и сообщение для пользователя.
// Err хранит исходную причину и в ответ клиенту не попадает.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrUserNotFound возвращается, если пользователя нет в репозитории.
	ErrUserNotFound = &Error{Kind: KindNotFound, Message: "User not found"}
	// ErrProductNotFound возвращается для неизвестного товара каталога.
	ErrProductNotFound = &Error{Kind: KindNotFound, Message: "Product not found"}
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = &Error{Kind: KindNotFound, Message: "Order not found"}
	// ErrCartLineNotFound возвращается, если товара нет в корзине.
	ErrCartLineNotFound = &Error{Kind: KindNotFound, Message: "Product not found in the cart"}
	// ErrFavoriteNotFound возвращается, если товара нет в избранном.
	ErrFavoriteNotFound = &Error{Kind: KindNotFound, Message: "Product is not in favorites"}
	// ErrFavoriteExists возвращается при повторном добавлении в избранное.
	ErrFavoriteExists = &Error{Kind: KindConflict, Message: "Product is already in favorites"}
	// ErrOrderVersionConflict сигнализирует о конфликте версий при сохранении.
	ErrOrderVersionConflict = &Error{Kind: KindConflict, Message: "order version conflict"}
	// ErrInvalidTransition возвращается, если запрошенный переход статуса заказа запрещён.
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition, Message: "invalid order status transition"}
	// ErrReviewIncomplete возвращается, если в отзыве нет оценки или комментария.
	ErrReviewIncomplete = &Error{Kind: KindValidation, Message: "Please provide both rating and comment."}
	// ErrUnauthenticated возвращается, если токен идентичности отсутствует или невалиден.
	ErrUnauthenticated = &Error{Kind: KindUnauthorized, Message: "PLEASE AUTHENTICATE A VALID TOKEN"}

	ErrOutboxPublish         = errors.New("outbox publish failed")
	ErrOutboxMessageNotFound = errors.New("outbox message not found")

	ErrIdempotencyKeyRequired         = errors.New("idempotency key is required")
	ErrIdempotencyRequestHashRequired = errors.New("idempotency request hash is required")
	ErrIdempotencyKeyNotFound         = errors.New("idempotency key not found")
	// ErrIdempotencyKeyAlreadyExists возвращается, если ключ уже использован с тем же телом запроса.
	ErrIdempotencyKeyAlreadyExists = errors.New("idempotency key already exists")
	// ErrIdempotencyHashMismatch возвращается, если ключ уже использован с другим телом запроса.
	ErrIdempotencyHashMismatch = errors.New("idempotency key reused with different payload")
)

// Validation создаёт ошибку валидации входных данных.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// InvalidTransition создаёт ошибку недопустимого перехода статуса с пояснением.
func InvalidTransition(from, to OrderStatus) error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot move order from %s to %s", from, to),
		Err:     ErrInvalidTransition,
	}
}

// Internal оборачивает неожиданную ошибку хранилища.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Err: err}
}

// KindOf возвращает класс ошибки; всё, что не *Error, считается internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// MessageOf возвращает безопасное для клиента сообщение.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "Internal Server Error"
}

// IsVersionConflict проверяет, является ли ошибка конфликтом версий.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrOrderVersionConflict)
}

// IsIdempotencyConflict проверяет, связана ли ошибка с повторным использованием ключа.
func IsIdempotencyConflict(err error) bool {
	return errors.Is(err, ErrIdempotencyKeyAlreadyExists) || errors.Is(err, ErrIdempotencyHashMismatch)
}
