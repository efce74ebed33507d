package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/research-assistant/internal/api"
)

func TestMessage(t *testing.T) {
	const fallback = "프로젝트 생성 실패"

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "password mismatch", err: fmt.Errorf("auth.Signup: %w", ErrPasswordMismatch), want: MsgPasswordMismatch},
		{name: "not logged in", err: ErrNotLoggedIn, want: MsgNotLoggedIn},
		{name: "invalid input", err: ErrInvalidInput, want: fallback + ": " + MsgInvalidInput},
		{
			name: "unavailable",
			err:  fmt.Errorf("research.Create: %w", fmt.Errorf("api.CreateProject: %w: %w", api.ErrUnavailable, errors.New("dial tcp: refused"))),
			want: fallback + ": " + MsgUnavailable,
		},
		{
			name: "remote detail",
			err:  fmt.Errorf("research.Create: %w", &api.StatusError{Op: "api.CreateProject", Code: http.StatusBadRequest, Detail: "title: This field may not be blank."}),
			want: fallback + ": title: This field may not be blank.",
		},
		{
			name: "status without detail",
			err:  &api.StatusError{Op: "api.CreateProject", Code: http.StatusInternalServerError},
			want: fallback,
		},
		{name: "anything else", err: errors.New("decode response: EOF"), want: fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err, fallback))
		})
	}
}
