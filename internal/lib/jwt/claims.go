// Package jwt извлекает сведения о пользователе из токена доступа.
//
// Подпись токена проверяет только сервер, клиент ключа не знает. Поэтому
// токен разбирается без проверки, и результат используется исключительно
// для отображения: кто вошёл и когда истекает сеанс. Решения о доступе
// клиент на основании этих данных не принимает.
package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает отображаемые данные токена.
type Claims struct {
	UserID    string    // Идентификатор пользователя (user_id или sub)
	Email     string    // Электронная почта, если сервер её кладёт
	ExpiresAt time.Time // Время истечения, нулевое если не указано
}

// Inspect разбирает токен без проверки подписи.
func Inspect(token string) (*Claims, error) {
	const op = "jwt.Inspect"

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var c Claims
	exp, err := mc.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exp != nil {
		c.ExpiresAt = exp.Time
	}

	switch v := mc["user_id"].(type) {
	case string:
		c.UserID = v
	case float64:
		c.UserID = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if c.UserID == "" {
		if sub, err := mc.GetSubject(); err == nil {
			c.UserID = sub
		}
	}
	if email, ok := mc["email"].(string); ok {
		c.Email = email
	}
	return &c, nil
}

// Expired сообщает, истёк ли токен к моменту now. Токен без срока не истекает.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Identity возвращает подпись пользователя для строки состояния.
func (c *Claims) Identity() string {
	switch {
	case c.Email != "":
		return c.Email
	case c.UserID != "":
		return "user #" + c.UserID
	default:
		return "unknown user"
	}
}
