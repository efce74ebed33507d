package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnavailable означает, что ответа от сервера не было: сеть, DNS,
// таймаут или отменённый контекст.
var ErrUnavailable = errors.New("api unavailable")

// StatusError сервер ответил, но не тем кодом, который ожидался.
// Detail содержит текст ошибки из тела ответа, если он был.
type StatusError struct {
	Op     string
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Code, e.Detail)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Code)
}

// IsStatus сообщает, является ли err ответом сервера с кодом code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// Detail возвращает текст ошибки сервера из err, если он есть.
func Detail(err error) (string, bool) {
	var se *StatusError
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail, true
	}
	return "", false
}

// parseDetail достаёт человекочитаемое описание ошибки из тела ответа.
// Понимает {"detail": "..."}, {"error": "..."} и ошибки полей вида
// {"email": ["..."], "non_field_errors": ["..."]}.
func parseDetail(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, k := range []string{"detail", "error", "message"} {
		if s, ok := payload[k].(string); ok && s != "" {
			return s
		}
	}

	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		msg := flatten(payload[k])
		if msg == "" {
			continue
		}
		if k == "non_field_errors" {
			parts = append(parts, msg)
			continue
		}
		parts = append(parts, k+": "+msg)
	}
	return strings.Join(parts, "; ")
}

func flatten(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []any:
		var msgs []string
		for _, item := range v {
			if s := flatten(item); s != "" {
				msgs = append(msgs, s)
			}
		}
		return strings.Join(msgs, " ")
	default:
		return ""
	}
}
