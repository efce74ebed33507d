package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/research-assistant/internal/api"
	"github.com/magabrotheeeer/research-assistant/internal/apitest"
	"github.com/magabrotheeeer/research-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/research-assistant/internal/models"
	"github.com/magabrotheeeer/research-assistant/internal/services"
	"github.com/magabrotheeeer/research-assistant/internal/session"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Register(ctx context.Context, req models.SignupRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockClient) Login(ctx context.Context, creds models.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

func TestService_Signup(t *testing.T) {
	form := models.SignupForm{
		Email:           "kim@example.com",
		FullName:        "Kim",
		Password:        "secret1",
		PasswordConfirm: "secret1",
	}

	tests := []struct {
		name       string
		form       models.SignupForm
		setupMocks func(*MockClient)
		wantErr    error
		wantMode   session.Mode
	}{
		{
			name: "success returns to login",
			form: form,
			setupMocks: func(c *MockClient) {
				c.On("Register", mock.Anything, form.Request()).Return(nil).Once()
			},
			wantMode: session.ModeLogin,
		},
		{
			name: "mismatch sends nothing",
			form: models.SignupForm{
				Email:           "kim@example.com",
				Password:        "secret1",
				PasswordConfirm: "secret2",
			},
			setupMocks: func(c *MockClient) {},
			wantErr:    services.ErrPasswordMismatch,
			wantMode:   session.ModeSignup,
		},
		{
			name: "server rejection keeps signup form",
			form: form,
			setupMocks: func(c *MockClient) {
				c.On("Register", mock.Anything, form.Request()).
					Return(&api.StatusError{Op: "api.Register", Code: http.StatusBadRequest, Detail: "email: user with this email already exists."}).Once()
			},
			wantErr:  &api.StatusError{},
			wantMode: session.ModeSignup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockClient)
			tt.setupMocks(client)
			sess := session.New()
			svc := New(client, sess, sl.Discard())
			svc.ShowSignup()

			err := svc.Signup(context.Background(), tt.form)

			switch want := tt.wantErr.(type) {
			case nil:
				require.NoError(t, err)
			case *api.StatusError:
				var se *api.StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusBadRequest, se.Code)
			default:
				require.ErrorIs(t, err, want)
			}
			assert.Equal(t, tt.wantMode, sess.Mode())
			client.AssertExpectations(t)
		})
	}
}

func TestService_Signup_MismatchMakesNoRequest(t *testing.T) {
	client := new(MockClient)
	svc := New(client, session.New(), sl.Discard())

	err := svc.Signup(context.Background(), models.SignupForm{
		Email:           "kim@example.com",
		Password:        "a",
		PasswordConfirm: "b",
	})

	require.ErrorIs(t, err, services.ErrPasswordMismatch)
	client.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestService_Login(t *testing.T) {
	creds := models.Credentials{Email: "kim@example.com", Password: "secret1"}

	t.Run("stores token and switches to main", func(t *testing.T) {
		client := new(MockClient)
		client.On("Login", mock.Anything, creds).Return("opaque-token", nil).Once()
		sess := session.New()
		svc := New(client, sess, sl.Discard())

		require.NoError(t, svc.Login(context.Background(), creds))

		assert.Equal(t, "opaque-token", sess.Token())
		assert.Equal(t, session.ModeMain, sess.Mode())
		client.AssertExpectations(t)
	})

	t.Run("failure leaves session untouched", func(t *testing.T) {
		client := new(MockClient)
		client.On("Login", mock.Anything, creds).Return("", errors.New("boom")).Once()
		sess := session.New()
		svc := New(client, sess, sl.Discard())

		require.Error(t, svc.Login(context.Background(), creds))

		assert.False(t, sess.LoggedIn())
		assert.Equal(t, session.ModeLogin, sess.Mode())
	})
}

func TestService_LoginAgainstServer(t *testing.T) {
	srv := apitest.New(t)
	srv.AddUser("kim@example.com", "Kim", "secret1")
	client := api.New(srv.BaseURL(), api.WithRateLimit(0, 0))
	sess := session.New()
	svc := New(client, sess, sl.Discard())

	err := svc.Login(context.Background(), models.Credentials{Email: "kim@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "로그인 실패: No active account found with the given credentials", services.Message(err, "로그인 실패"))
	assert.False(t, sess.LoggedIn())

	require.NoError(t, svc.Login(context.Background(), models.Credentials{Email: "kim@example.com", Password: "secret1"}))
	who, expired := svc.Identity()
	assert.Equal(t, "kim@example.com", who)
	assert.False(t, expired)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, expired = svc.Identity()
	assert.True(t, expired)
}

func TestService_LogoutAndModes(t *testing.T) {
	sess := session.New()
	svc := New(new(MockClient), sess, sl.Discard())

	svc.ShowSignup()
	assert.Equal(t, session.ModeSignup, sess.Mode())
	svc.ShowLogin()
	assert.Equal(t, session.ModeLogin, sess.Mode())

	sess.SetToken("t")
	sess.SetCurrentProject("7")
	svc.Logout()

	assert.False(t, sess.LoggedIn())
	_, ok := sess.CurrentProject()
	assert.False(t, ok)
	assert.Equal(t, session.ModeLogin, sess.Mode())

	who, _ := svc.Identity()
	assert.Empty(t, who)
}
