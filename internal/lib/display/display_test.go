package display

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletionPercent(t *testing.T) {
	tests := []struct {
		name      string
		completed json.Number
		total     json.Number
		want      string
	}{
		{name: "zero total", completed: "0", total: "0", want: "0%"},
		{name: "zero total with completed", completed: "5", total: "0", want: "0%"},
		{name: "negative total", completed: "1", total: "-1", want: "0%"},
		{name: "missing total", completed: "1", total: "", want: "0%"},
		{name: "non numeric total", completed: "1", total: "many", want: "0%"},
		{name: "none done", completed: "0", total: "4", want: "0.0%"},
		{name: "third", completed: "1", total: "3", want: "33.3%"},
		{name: "float counts", completed: "1.0", total: "3.0", want: "33.3%"},
		{name: "done", completed: "4", total: "4", want: "100.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletionPercent(tt.completed, tt.total)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "NaN")
			assert.NotContains(t, got, "Inf")
		})
	}
}

func TestProgressRatio(t *testing.T) {
	assert.Equal(t, 0.0, ProgressRatio("3", "0"))
	assert.Equal(t, 0.5, ProgressRatio("1", "2"))
	assert.Equal(t, 0.5, ProgressRatio("1.0", "2.0"))
	assert.Equal(t, 1.0, ProgressRatio("7", "5"))
	assert.Equal(t, 0.0, ProgressRatio("-1", "5"))
	assert.Equal(t, 0.0, ProgressRatio("", ""))

	for completed := 0; completed <= 10; completed++ {
		for total := 0; total <= 10; total++ {
			r := ProgressRatio(json.Number(strconv.Itoa(completed)), json.Number(strconv.Itoa(total)))
			assert.False(t, math.IsNaN(r))
			assert.GreaterOrEqual(t, r, 0.0)
			assert.LessOrEqual(t, r, 1.0)
		}
	}
}

func TestStepsLabel(t *testing.T) {
	assert.Equal(t, "2/5", StepsLabel("2", "5"))
	assert.Equal(t, "0/0", StepsLabel("", ""))
	assert.Equal(t, "1.0/3.0", StepsLabel("1.0", "3.0"))
}

func TestStepLabel(t *testing.T) {
	short := "collect sources"
	assert.Equal(t, "Step 1: collect sources...", StepLabel(1, short))

	long := strings.Repeat("가", 80)
	label := StepLabel(2, long)
	assert.Equal(t, "Step 2: "+strings.Repeat("가", 50)+"...", label)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "한국", Truncate("한국어", 2))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestDate(t *testing.T) {
	tests := map[string]string{
		"2024-03-01T10:00:00Z":             "2024-03-01",
		"2024-03-01T10:00:00.123456+09:00": "2024-03-01",
		"2024-03-01T10:00:00.123456":       "2024-03-01",
		"2024-03-01 10:00:00":              "2024-03-01",
		"2024-03-01":                       "2024-03-01",
		"yesterday":                        "yesterday",
		"":                                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Date(in), in)
	}
}

func TestUsage(t *testing.T) {
	assert.Equal(t, "3/10", Usage("3", "10"))
	assert.Equal(t, "0/10", Usage("", "10"))
	assert.Equal(t, "12.5/512", Usage("12.5", "512"))
}

func TestJSON(t *testing.T) {
	got := JSON(json.RawMessage(`{"refs":[1,2],"summary":"ok"}`))
	assert.Equal(t, "{\n  \"refs\": [\n    1,\n    2\n  ],\n  \"summary\": \"ok\"\n}", got)

	assert.Equal(t, "not json", JSON(json.RawMessage("not json")))
}
