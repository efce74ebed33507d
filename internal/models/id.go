// Package models содержит структуры, описывающие данные удалённого API:
// исследовательские проекты, подписки и платежи, а также тела запросов.
// Клиент ничего не вычисляет по этим полям и отображает их в том виде,
// в котором они пришли.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID идентификатор удалённой записи. API может прислать его числом или
// строкой, клиент хранит текстовое представление без изменений.
type ID string

// UnmarshalJSON принимает как числовые, так и строковые идентификаторы.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("models.ID: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("models.ID: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Page конверт списочных ответов API.
type Page[T any] struct {
	Count   int     `json:"count,omitempty"`
	Next    *string `json:"next,omitempty"`
	Results []T     `json:"results"`
}
