// Package auth реализует вход, регистрацию и выход.
//
// Единственная локальная проверка: совпадение пароля и подтверждения при
// регистрации. Всё остальное решает сервер.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/research-assistant/internal/lib/jwt"
	"github.com/magabrotheeeer/research-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/research-assistant/internal/models"
	"github.com/magabrotheeeer/research-assistant/internal/services"
	"github.com/magabrotheeeer/research-assistant/internal/session"
)

// Client описывает вызовы API, нужные сервису.
type Client interface {
	Register(ctx context.Context, req models.SignupRequest) error
	Login(ctx context.Context, creds models.Credentials) (string, error)
}

// Service управляет переходами сеанса, связанными с входом.
type Service struct {
	client   Client
	session  *session.Session
	log      *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// New создаёт сервис аутентификации.
func New(client Client, sess *session.Session, log *slog.Logger) *Service {
	return &Service{
		client:   client,
		session:  sess,
		log:      log,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Signup регистрирует пользователя. При несовпадении паролей запрос не
// отправляется. После успеха интерфейс возвращается к форме входа.
func (s *Service) Signup(ctx context.Context, form models.SignupForm) error {
	const op = "auth.Signup"
	log := s.log.With(slog.String("op", op))

	if err := s.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Info("signup form rejected locally", slog.String("field", verrs[0].Field()))
			return fmt.Errorf("%s: %w", op, services.ErrPasswordMismatch)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.client.Register(ctx, form.Request()); err != nil {
		log.Error("register failed", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("email", form.Email))
	s.session.SetMode(session.ModeLogin)
	return nil
}

// Login выполняет вход и сохраняет токен. При ошибке сеанс не меняется.
func (s *Service) Login(ctx context.Context, creds models.Credentials) error {
	const op = "auth.Login"
	log := s.log.With(slog.String("op", op))

	token, err := s.client.Login(ctx, creds)
	if err != nil {
		log.Warn("login failed", slog.String("email", creds.Email), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.session.SetToken(token)
	if claims, err := jwt.Inspect(token); err == nil {
		log.Info("logged in", slog.String("user", claims.Identity()), slog.Time("expires_at", claims.ExpiresAt))
	} else {
		log.Info("logged in with opaque token")
	}
	return nil
}

// Logout полностью очищает сеанс.
func (s *Service) Logout() {
	s.session.ClearToken()
	s.log.Info("logged out")
}

// ShowSignup переключает интерфейс на форму регистрации.
func (s *Service) ShowSignup() {
	s.session.SetMode(session.ModeSignup)
}

// ShowLogin возвращает интерфейс к форме входа.
func (s *Service) ShowLogin() {
	s.session.SetMode(session.ModeLogin)
}

// Identity возвращает строку "кто вошёл" для статусной строки. Пустая строка,
// если токен не является JWT. Флаг expired только для отображения.
func (s *Service) Identity() (who string, expired bool) {
	if !s.session.LoggedIn() {
		return "", false
	}
	claims, err := jwt.Inspect(s.session.Token())
	if err != nil {
		return "", false
	}
	return claims.Identity(), claims.Expired(s.now())
}
