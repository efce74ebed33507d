// Package billing реализует подписку и платежи: просмотр и отмену подписки,
// двухшаговую оплату тарифа, историю платежей и запрос возврата.
package billing

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/research-assistant/internal/api"
	"github.com/magabrotheeeer/research-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/research-assistant/internal/models"
	"github.com/magabrotheeeer/research-assistant/internal/services"
	"github.com/magabrotheeeer/research-assistant/internal/session"
)

// Client описывает вызовы API, нужные сервису.
type Client interface {
	CurrentSubscription(ctx context.Context, token string) (*models.Subscription, error)
	CancelSubscription(ctx context.Context, token string, id models.ID) error
	CreatePayment(ctx context.Context, token string, plan models.PlanType) (*models.PaymentIntent, error)
	ProcessPayment(ctx context.Context, token string, id models.ID) error
	ListPayments(ctx context.Context, token string) ([]models.Payment, error)
	RequestRefund(ctx context.Context, token string, id models.ID, reason string) error
}

// Service выполняет действия с подпиской и платежами.
type Service struct {
	client   Client
	session  *session.Session
	log      *slog.Logger
	validate *validator.Validate
}

// New создаёт сервис подписки и платежей.
func New(client Client, sess *session.Session, log *slog.Logger) *Service {
	return &Service{
		client:   client,
		session:  sess,
		log:      log,
		validate: validator.New(),
	}
}

func (s *Service) token(op string) (string, error) {
	token := s.session.Token()
	if token == "" {
		return "", fmt.Errorf("%s: %w", op, services.ErrNotLoggedIn)
	}
	return token, nil
}

// Current возвращает текущую подписку. Ответ 404 означает, что подписки
// нет: тогда возвращается nil без ошибки.
func (s *Service) Current(ctx context.Context) (*models.Subscription, error) {
	const op = "billing.Current"

	token, err := s.token(op)
	if err != nil {
		return nil, err
	}
	sub, err := s.client.CurrentSubscription(ctx, token)
	if err != nil {
		if api.IsStatus(err, http.StatusNotFound) {
			s.log.Info("no current subscription", slog.String("op", op))
			return nil, nil
		}
		s.log.Error("failed to get subscription", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// Cancel отменяет подписку id.
func (s *Service) Cancel(ctx context.Context, id models.ID) error {
	const op = "billing.Cancel"

	token, err := s.token(op)
	if err != nil {
		return err
	}
	if err := s.client.CancelSubscription(ctx, token, id); err != nil {
		s.log.Error("failed to cancel subscription", slog.String("op", op), slog.String("id", id.String()), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("subscription cancelled", slog.String("op", op), slog.String("id", id.String()))
	return nil
}

// StartSubscription создаёт ожидающий платёж за тариф plan. Платёж
// проводится только после явного подтверждения через ConfirmPayment.
func (s *Service) StartSubscription(ctx context.Context, plan models.PlanType) (*models.PaymentIntent, error) {
	const op = "billing.StartSubscription"
	log := s.log.With(slog.String("op", op))

	if err := s.validate.Struct(models.CreatePaymentRequest{PlanType: plan}); err != nil {
		log.Info("unknown plan rejected locally", slog.String("plan_type", string(plan)))
		return nil, fmt.Errorf("%s: %w", op, services.ErrInvalidInput)
	}
	token, err := s.token(op)
	if err != nil {
		return nil, err
	}

	intent, err := s.client.CreatePayment(ctx, token, plan)
	if err != nil {
		log.Error("failed to create payment", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("payment created",
		slog.String("id", intent.ID.String()),
		slog.String("order_id", intent.OrderID.String()),
		slog.String("plan_type", string(plan)),
	)
	return intent, nil
}

// ConfirmPayment проводит ранее созданный платёж.
func (s *Service) ConfirmPayment(ctx context.Context, intent models.PaymentIntent) error {
	const op = "billing.ConfirmPayment"

	token, err := s.token(op)
	if err != nil {
		return err
	}
	if err := s.client.ProcessPayment(ctx, token, intent.ID); err != nil {
		s.log.Error("failed to process payment", slog.String("op", op), slog.String("id", intent.ID.String()), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("payment processed", slog.String("op", op), slog.String("id", intent.ID.String()))
	return nil
}

// Payments возвращает историю платежей.
func (s *Service) Payments(ctx context.Context) ([]models.Payment, error) {
	const op = "billing.Payments"

	token, err := s.token(op)
	if err != nil {
		return nil, err
	}
	payments, err := s.client.ListPayments(ctx, token)
	if err != nil {
		s.log.Error("failed to list payments", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

// Refund запрашивает возврат платежа id. Причина уходит как введена.
func (s *Service) Refund(ctx context.Context, id models.ID, reason string) error {
	const op = "billing.Refund"

	token, err := s.token(op)
	if err != nil {
		return err
	}
	if err := s.client.RequestRefund(ctx, token, id, reason); err != nil {
		s.log.Error("failed to request refund", slog.String("op", op), slog.String("id", id.String()), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("refund requested", slog.String("op", op), slog.String("id", id.String()))
	return nil
}
