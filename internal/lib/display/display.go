// Package display содержит единственные локальные преобразования данных API:
// процент выполнения, доля для индикатора прогресса, обрезку подписи шага
// и вывод даты без времени. Всё остальное показывается как пришло.
package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// StepLabelLimit сколько символов описания шага видно в свёрнутом виде.
const StepLabelLimit = 50

// CompletionPercent возвращает процент выполнения в виде "33.3%".
// При нулевом или нечисловом total возвращается "0%".
func CompletionPercent(completed, total json.Number) string {
	t := count(total)
	if t <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", count(completed)/t*100)
}

// ProgressRatio возвращает долю completed/total в пределах [0, 1].
func ProgressRatio(completed, total json.Number) float64 {
	t := count(total)
	if t <= 0 {
		return 0
	}
	r := count(completed) / t
	switch {
	case r < 0 || math.IsNaN(r):
		return 0
	case r > 1:
		return 1
	}
	return r
}

// StepsLabel возвращает подпись вида "2/5" из значений как они пришли.
func StepsLabel(completed, total json.Number) string {
	return Number(completed) + "/" + Number(total)
}

// count разбирает счётчик шагов. Пустое или нечисловое значение даёт 0.
func count(n json.Number) float64 {
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// StepLabel строит заголовок свёрнутого шага: "Step N: <первые 50 символов>...".
func StepLabel(number int, description string) string {
	return fmt.Sprintf("Step %d: %s...", number, Truncate(description, StepLabelLimit))
}

// Truncate обрезает s до limit символов (рун, а не байт).
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date выводит отметку времени API в виде YYYY-MM-DD.
// Нераспознанное значение возвращается без изменений.
func Date(raw string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}

// Number возвращает числовое значение как пришло, "0" для отсутствующего.
func Number(n json.Number) string {
	if n == "" {
		return "0"
	}
	return n.String()
}

// Usage возвращает пару "использовано/лимит".
func Usage(used, limit json.Number) string {
	return Number(used) + "/" + Number(limit)
}

// JSON форматирует произвольный JSON с отступами, не интерпретируя его.
func JSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}
