// Package services содержит общие для сервисов ошибки и правило, по которому
// ошибка превращается в сообщение для пользователя.
//
// Правило одно для всех действий: если сервер прислал описание ошибки,
// оно показывается после общего сообщения действия; отсутствие ответа
// сервера сообщается отдельно от отказа.
package services

import (
	"errors"

	"github.com/magabrotheeeer/research-assistant/internal/api"
)

var (
	// ErrNotLoggedIn действие требует входа, а токена в сеансе нет.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrPasswordMismatch пароль и подтверждение не совпали.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidInput выбранное значение не входит в допустимый набор.
	ErrInvalidInput = errors.New("invalid input")
)

// Тексты сообщений, не зависящие от действия.
const (
	MsgPasswordMismatch = "비밀번호가 일치하지 않습니다."
	MsgNotLoggedIn      = "로그인이 필요합니다."
	MsgUnavailable      = "서버에 연결할 수 없습니다."
	MsgInvalidInput     = "입력값이 올바르지 않습니다."
)

// Message возвращает текст ошибки err для пользователя. fallback: общее
// сообщение действия, например "프로젝트 생성 실패".
func Message(err error, fallback string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPasswordMismatch):
		return MsgPasswordMismatch
	case errors.Is(err, ErrNotLoggedIn):
		return MsgNotLoggedIn
	case errors.Is(err, ErrInvalidInput):
		return fallback + ": " + MsgInvalidInput
	case errors.Is(err, api.ErrUnavailable):
		return fallback + ": " + MsgUnavailable
	}
	if detail, ok := api.Detail(err); ok {
		return fallback + ": " + detail
	}
	return fallback
}
