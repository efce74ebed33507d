package billing

import (
	"context"
	"errors"
	"net/http"
	"testing"

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

func (m *MockClient) CurrentSubscription(ctx context.Context, token string) (*models.Subscription, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockClient) CancelSubscription(ctx context.Context, token string, id models.ID) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockClient) CreatePayment(ctx context.Context, token string, plan models.PlanType) (*models.PaymentIntent, error) {
	args := m.Called(ctx, token, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentIntent), args.Error(1)
}

func (m *MockClient) ProcessPayment(ctx context.Context, token string, id models.ID) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockClient) ListPayments(ctx context.Context, token string) ([]models.Payment, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockClient) RequestRefund(ctx context.Context, token string, id models.ID, reason string) error {
	args := m.Called(ctx, token, id, reason)
	return args.Error(0)
}

func newService(client Client) *Service {
	sess := session.New()
	sess.SetToken("token")
	return New(client, sess, sl.Discard())
}

func TestService_Current(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*MockClient)
		wantSub    bool
		wantErr    bool
	}{
		{
			name: "active subscription",
			setupMocks: func(c *MockClient) {
				c.On("CurrentSubscription", mock.Anything, "token").
					Return(&models.Subscription{ID: "1", PlanType: models.PlanBasic, Status: models.StatusActive}, nil).Once()
			},
			wantSub: true,
		},
		{
			name: "not found means no subscription",
			setupMocks: func(c *MockClient) {
				c.On("CurrentSubscription", mock.Anything, "token").
					Return(nil, &api.StatusError{Op: "api.CurrentSubscription", Code: http.StatusNotFound}).Once()
			},
		},
		{
			name: "other status is a failure",
			setupMocks: func(c *MockClient) {
				c.On("CurrentSubscription", mock.Anything, "token").
					Return(nil, &api.StatusError{Op: "api.CurrentSubscription", Code: http.StatusInternalServerError}).Once()
			},
			wantErr: true,
		},
		{
			name: "server unreachable",
			setupMocks: func(c *MockClient) {
				c.On("CurrentSubscription", mock.Anything, "token").
					Return(nil, api.ErrUnavailable).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockClient)
			tt.setupMocks(client)

			sub, err := newService(client).Current(context.Background())

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantSub, sub != nil)
			client.AssertExpectations(t)
		})
	}
}

func TestService_StartSubscription_UnknownPlan(t *testing.T) {
	client := new(MockClient)

	_, err := newService(client).StartSubscription(context.Background(), "GOLD")

	require.ErrorIs(t, err, services.ErrInvalidInput)
	client.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ConfirmPaymentUsesIntentID(t *testing.T) {
	client := new(MockClient)
	client.On("ProcessPayment", mock.Anything, "token", models.ID("55")).Return(nil).Once()

	err := newService(client).ConfirmPayment(context.Background(), models.PaymentIntent{ID: "55", OrderID: "ORD-55"})

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestService_RefundForwardsReason(t *testing.T) {
	client := new(MockClient)
	client.On("RequestRefund", mock.Anything, "token", models.ID("7"), "  changed my mind ").
		Return(errors.New("boom")).Once()

	err := newService(client).Refund(context.Background(), "7", "  changed my mind ")

	require.Error(t, err)
	client.AssertExpectations(t)
}

func TestService_RequiresLogin(t *testing.T) {
	client := new(MockClient)
	svc := New(client, session.New(), sl.Discard())
	ctx := context.Background()

	_, err := svc.Current(ctx)
	assert.ErrorIs(t, err, services.ErrNotLoggedIn)
	assert.ErrorIs(t, svc.Cancel(ctx, "1"), services.ErrNotLoggedIn)
	_, err = svc.StartSubscription(ctx, models.PlanBasic)
	assert.ErrorIs(t, err, services.ErrNotLoggedIn)
	assert.ErrorIs(t, svc.ConfirmPayment(ctx, models.PaymentIntent{ID: "1"}), services.ErrNotLoggedIn)
	_, err = svc.Payments(ctx)
	assert.ErrorIs(t, err, services.ErrNotLoggedIn)
	assert.ErrorIs(t, svc.Refund(ctx, "1", "r"), services.ErrNotLoggedIn)
}

func TestService_SubscribeFlowAgainstServer(t *testing.T) {
	srv := apitest.New(t)
	srv.AddUser("kim@example.com", "Kim", "pw")
	sess := session.New()
	sess.SetToken(srv.IssueToken("kim@example.com"))
	svc := New(api.New(srv.BaseURL(), api.WithRateLimit(0, 0)), sess, sl.Discard())
	ctx := context.Background()

	sub, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Nil(t, sub)

	intent, err := svc.StartSubscription(ctx, models.PlanPremium)
	require.NoError(t, err)
	assert.Equal(t, "30000", intent.Amount.String())
	assert.Equal(t, models.ID("ORD-"+intent.ID.String()), intent.OrderID)

	require.NoError(t, svc.ConfirmPayment(ctx, *intent))
	assert.Equal(t, 1, srv.Hits(http.MethodPost, "/payments/"+intent.ID.String()+"/process/"))

	sub, err = svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.True(t, sub.Active())
	assert.Equal(t, models.PlanPremium, sub.PlanType)

	payments, err := svc.Payments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)

	require.NoError(t, svc.Refund(ctx, payments[0].ID, "not needed"))
	p, ok := srv.Payment(payments[0].ID)
	require.True(t, ok)
	assert.Equal(t, "REFUND_REQUESTED", p.Status)

	err = svc.Refund(ctx, payments[0].ID, "again")
	require.Error(t, err)
	assert.Equal(t, "환불 요청 실패: Payment cannot be refunded.", services.Message(err, "환불 요청 실패"))

	require.NoError(t, svc.Cancel(ctx, sub.ID))
	sub, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.False(t, sub.Active())
}
