package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/magabrotheeeer/research-assistant/internal/models"
)

// Имена конечных точек для метрик.
const (
	EndpointRegister           = "register"
	EndpointLogin              = "login"
	EndpointListProjects       = "list_projects"
	EndpointGetProject         = "get_project"
	EndpointCreateProject      = "create_project"
	EndpointExecuteProject     = "execute_project"
	EndpointProjectStatus      = "project_status"
	EndpointSubscription       = "current_subscription"
	EndpointCancelSubscription = "cancel_subscription"
	EndpointCreatePayment      = "create_payment"
	EndpointProcessPayment     = "process_payment"
	EndpointListPayments       = "list_payments"
	EndpointRefund             = "refund"
)

// Register регистрирует пользователя. Ожидается 201.
func (c *Client) Register(ctx context.Context, req models.SignupRequest) error {
	return c.do(ctx, call{
		op:       "api.Register",
		endpoint: EndpointRegister,
		method:   http.MethodPost,
		path:     "/users/",
		body:     req,
		want:     http.StatusCreated,
	})
}

// Login отправляет учётные данные формой и возвращает токен доступа.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, error) {
	const op = "api.Login"

	var resp models.TokenResponse
	err := c.do(ctx, call{
		op:       op,
		endpoint: EndpointLogin,
		method:   http.MethodPost,
		path:     "/token/",
		form: url.Values{
			"email":    {creds.Email},
			"password": {creds.Password},
		},
		want: http.StatusOK,
		out:  &resp,
	})
	if err != nil {
		return "", err
	}
	if resp.Access == "" {
		return "", fmt.Errorf("%s: response has no access token", op)
	}
	return resp.Access, nil
}

// ListProjects возвращает проекты пользователя.
func (c *Client) ListProjects(ctx context.Context, token string) ([]models.Project, error) {
	var page models.Page[models.Project]
	err := c.do(ctx, call{
		op:       "api.ListProjects",
		endpoint: EndpointListProjects,
		method:   http.MethodGet,
		path:     "/research/",
		token:    token,
		want:     http.StatusOK,
		out:      &page,
	})
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// GetProject возвращает проект вместе с шагами.
func (c *Client) GetProject(ctx context.Context, token string, id models.ID) (*models.ProjectDetail, error) {
	var detail models.ProjectDetail
	err := c.do(ctx, call{
		op:       "api.GetProject",
		endpoint: EndpointGetProject,
		method:   http.MethodGet,
		path:     idPath("/research/%s/", id),
		token:    token,
		want:     http.StatusOK,
		out:      &detail,
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateProject создаёт проект. Ожидается 201.
func (c *Client) CreateProject(ctx context.Context, token string, req models.CreateProjectRequest) (*models.Project, error) {
	var project models.Project
	err := c.do(ctx, call{
		op:       "api.CreateProject",
		endpoint: EndpointCreateProject,
		method:   http.MethodPost,
		path:     "/research/",
		token:    token,
		body:     req,
		want:     http.StatusCreated,
		out:      &project,
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ExecuteProject запускает выполнение проекта на сервере.
func (c *Client) ExecuteProject(ctx context.Context, token string, id models.ID) error {
	return c.do(ctx, call{
		op:       "api.ExecuteProject",
		endpoint: EndpointExecuteProject,
		method:   http.MethodPost,
		path:     idPath("/research/%s/execute/", id),
		token:    token,
		want:     http.StatusOK,
	})
}

// ProjectStatus возвращает текущий статус выполнения проекта.
func (c *Client) ProjectStatus(ctx context.Context, token string, id models.ID) (*models.ProjectStatus, error) {
	var status models.ProjectStatus
	err := c.do(ctx, call{
		op:       "api.ProjectStatus",
		endpoint: EndpointProjectStatus,
		method:   http.MethodGet,
		path:     idPath("/research/%s/status/", id),
		token:    token,
		want:     http.StatusOK,
		out:      &status,
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// CurrentSubscription возвращает текущую подписку.
func (c *Client) CurrentSubscription(ctx context.Context, token string) (*models.Subscription, error) {
	var sub models.Subscription
	err := c.do(ctx, call{
		op:       "api.CurrentSubscription",
		endpoint: EndpointSubscription,
		method:   http.MethodGet,
		path:     "/subscriptions/current/",
		token:    token,
		want:     http.StatusOK,
		out:      &sub,
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CancelSubscription отменяет подписку.
func (c *Client) CancelSubscription(ctx context.Context, token string, id models.ID) error {
	return c.do(ctx, call{
		op:       "api.CancelSubscription",
		endpoint: EndpointCancelSubscription,
		method:   http.MethodPost,
		path:     idPath("/subscriptions/%s/cancel/", id),
		token:    token,
		want:     http.StatusOK,
	})
}

// CreatePayment создаёт ожидающий платёж за тариф plan.
func (c *Client) CreatePayment(ctx context.Context, token string, plan models.PlanType) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := c.do(ctx, call{
		op:       "api.CreatePayment",
		endpoint: EndpointCreatePayment,
		method:   http.MethodPost,
		path:     "/payments/create/",
		token:    token,
		body:     models.CreatePaymentRequest{PlanType: plan},
		want:     http.StatusOK,
		out:      &intent,
	})
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// ProcessPayment подтверждает ранее созданный платёж.
func (c *Client) ProcessPayment(ctx context.Context, token string, id models.ID) error {
	return c.do(ctx, call{
		op:       "api.ProcessPayment",
		endpoint: EndpointProcessPayment,
		method:   http.MethodPost,
		path:     idPath("/payments/%s/process/", id),
		token:    token,
		want:     http.StatusOK,
	})
}

// ListPayments возвращает историю платежей.
func (c *Client) ListPayments(ctx context.Context, token string) ([]models.Payment, error) {
	var page models.Page[models.Payment]
	err := c.do(ctx, call{
		op:       "api.ListPayments",
		endpoint: EndpointListPayments,
		method:   http.MethodGet,
		path:     "/payments/",
		token:    token,
		want:     http.StatusOK,
		out:      &page,
	})
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// RequestRefund запрашивает возврат платежа с указанной причиной.
func (c *Client) RequestRefund(ctx context.Context, token string, id models.ID, reason string) error {
	return c.do(ctx, call{
		op:       "api.RequestRefund",
		endpoint: EndpointRefund,
		method:   http.MethodPost,
		path:     idPath("/payments/%s/refund/", id),
		token:    token,
		body:     models.RefundRequest{Reason: reason},
		want:     http.StatusOK,
	})
}
