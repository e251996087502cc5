// Package auth проверяет токены идентичности и достаёт из них идентификатор пользователя.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// ErrSecretRequired возвращается, если секрет подписи не задан.
var ErrSecretRequired = errors.New("auth secret is required")

// Claims — полезная нагрузка токена. Идентификатор лежит в user.id,
// стандартный sub поддерживается как запасной вариант.
type Claims struct {
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	jwt.RegisteredClaims
}

// UserID возвращает идентификатор пользователя из токена.
func (c *Claims) UserID() string {
	if c.User.ID != "" {
		return c.User.ID
	}
	return c.Subject
}

// Verifier проверяет HS256-токены общим секретом.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier создаёт проверку токенов. Пустой секрет недопустим.
func NewVerifier(secret string, leeway time.Duration) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretRequired
	}
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(leeway),
		),
	}, nil
}

// Verify разбирает токен и возвращает идентификатор пользователя.
// Любая проблема с токеном превращается в domain.ErrUnauthenticated.
func (v *Verifier) Verify(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domain.ErrUnauthenticated
	}

	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", &domain.Error{
			Kind:    domain.KindUnauthorized,
			Message: domain.ErrUnauthenticated.Message,
			Err:     fmt.Errorf("parse token: %w", err),
		}
	}

	userID := claims.UserID()
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	return userID, nil
}

// Issue подписывает токен для пользователя. Используется сид-загрузчиком и тестами.
func (v *Verifier) Issue(userID string, ttl time.Duration) (string, error) {
	claims := Claims{}
	claims.User.ID = userID
	claims.Subject = userID
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// TokenFromHeaders достаёт токен из заголовка auth-token или Authorization: Bearer.
func TokenFromHeaders(authToken, authorization string) string {
	if token := strings.TrimSpace(authToken); token != "" {
		return token
	}
	const bearer = "bearer "
	if len(authorization) > len(bearer) && strings.EqualFold(authorization[:len(bearer)], bearer) {
		return strings.TrimSpace(authorization[len(bearer):])
	}
	return ""
}
