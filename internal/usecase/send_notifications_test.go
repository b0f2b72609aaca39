package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/entity"
	"github.com/droppurity/leadsboard/internal/infra/push"
)

// TestSendNotificationsNoSubscriptions - sem assinaturas não há envio.
func TestSendNotificationsNoSubscriptions(t *testing.T) {
	ctx := context.Background()
	mockSubs := new(MockPushSubscriptionRepository)
	mockSender := new(MockPushSender)

	mockSubs.On("FindAll", ctx).Return([]entity.PushSubscription{}, nil)

	uc := NewSendNotificationsUseCase(mockSubs, mockSender, "/dashboard", zap.NewNop())
	result, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, "No subscriptions to send to.", result.Message)
	mockSender.AssertNotCalled(t, "Send")
}

// TestSendNotificationsAllDelivered - payload idêntico para todos.
func TestSendNotificationsAllDelivered(t *testing.T) {
	ctx := context.Background()
	mockSubs := new(MockPushSubscriptionRepository)
	mockSender := new(MockPushSender)

	subs := []entity.PushSubscription{
		{Endpoint: "https://push.example.com/a", P256dh: "k1", Auth: "a1"},
		{Endpoint: "https://push.example.com/b", P256dh: "k2", Auth: "a2"},
		{Endpoint: "https://push.example.com/c", P256dh: "k3", Auth: "a3"},
	}

	mockSubs.On("FindAll", ctx).Return(subs, nil)
	mockSender.On("Send", ctx, mock.Anything, mock.Anything).Return(nil)

	uc := NewSendNotificationsUseCase(mockSubs, mockSender, "/dashboard", zap.NewNop())
	result, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Sent)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 0, result.Pruned)
	mockSender.AssertNumberOfCalls(t, "Send", 3)
	mockSubs.AssertNotCalled(t, "DeleteByEndpoint")

	// Conteúdo do payload fixo por disparo
	mockSender.AssertCalled(t, "Send", ctx, mock.Anything, mock.MatchedBy(func(body []byte) bool {
		var p NotificationPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return false
		}
		return p.Title == "New Lead Received!" &&
			p.Body == "A new lead has been added. Check your dashboard." &&
			p.Icon == "/icon-192x192.png" &&
			p.Data.URL == "/dashboard"
	}))
}

// TestSendNotificationsPrunesGoneEndpoint - 410 remove exatamente aquele
// endpoint; os demais continuam registrados.
func TestSendNotificationsPrunesGoneEndpoint(t *testing.T) {
	ctx := context.Background()
	mockSubs := new(MockPushSubscriptionRepository)
	mockSender := new(MockPushSender)

	dead := entity.PushSubscription{Endpoint: "https://push.example.com/dead", P256dh: "k2", Auth: "a2"}
	subs := []entity.PushSubscription{
		{Endpoint: "https://push.example.com/a", P256dh: "k1", Auth: "a1"},
		dead,
		{Endpoint: "https://push.example.com/c", P256dh: "k3", Auth: "a3"},
	}

	mockSubs.On("FindAll", ctx).Return(subs, nil)
	mockSender.On("Send", ctx, mock.MatchedBy(func(s entity.PushSubscription) bool {
		return s.Endpoint == dead.Endpoint
	}), mock.Anything).Return(&push.DeliveryError{Endpoint: dead.Endpoint, StatusCode: 410})
	mockSender.On("Send", ctx, mock.Anything, mock.Anything).Return(nil)
	mockSubs.On("DeleteByEndpoint", ctx, dead.Endpoint).Return(nil)

	uc := NewSendNotificationsUseCase(mockSubs, mockSender, "/dashboard", zap.NewNop())
	result, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Pruned)

	// Só o endpoint morto é removido
	mockSubs.AssertCalled(t, "DeleteByEndpoint", ctx, dead.Endpoint)
	mockSubs.AssertNumberOfCalls(t, "DeleteByEndpoint", 1)
}

// TestSendNotificationsKeepsTransientFailures - erro de transporte não
// remove a assinatura.
func TestSendNotificationsKeepsTransientFailures(t *testing.T) {
	ctx := context.Background()
	mockSubs := new(MockPushSubscriptionRepository)
	mockSender := new(MockPushSender)

	subs := []entity.PushSubscription{
		{Endpoint: "https://push.example.com/a", P256dh: "k1", Auth: "a1"},
		{Endpoint: "https://push.example.com/b", P256dh: "k2", Auth: "a2"},
	}

	mockSubs.On("FindAll", ctx).Return(subs, nil)
	mockSender.On("Send", ctx, mock.MatchedBy(func(s entity.PushSubscription) bool {
		return s.Endpoint == "https://push.example.com/b"
	}), mock.Anything).Return(errors.New("push transport error: timeout"))
	mockSender.On("Send", ctx, mock.Anything, mock.Anything).Return(nil)

	uc := NewSendNotificationsUseCase(mockSubs, mockSender, "/dashboard", zap.NewNop())
	result, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Pruned)
	mockSubs.AssertNotCalled(t, "DeleteByEndpoint")
}

// TestSendNotificationsRateLimitedIsNotPruned - 429 é falha transitória.
func TestSendNotificationsRateLimitedIsNotPruned(t *testing.T) {
	ctx := context.Background()
	mockSubs := new(MockPushSubscriptionRepository)
	mockSender := new(MockPushSender)

	subs := []entity.PushSubscription{
		{Endpoint: "https://push.example.com/a", P256dh: "k1", Auth: "a1"},
	}

	mockSubs.On("FindAll", ctx).Return(subs, nil)
	mockSender.On("Send", ctx, mock.Anything, mock.Anything).
		Return(&push.DeliveryError{Endpoint: subs[0].Endpoint, StatusCode: 429})

	uc := NewSendNotificationsUseCase(mockSubs, mockSender, "/dashboard", zap.NewNop())
	result, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Pruned)
	mockSubs.AssertNotCalled(t, "DeleteByEndpoint")
}

// TestSendNotificationsRepositoryFailure
func TestSendNotificationsRepositoryFailure(t *testing.T) {
	ctx := context.Background()
	mockSubs := new(MockPushSubscriptionRepository)
	mockSender := new(MockPushSender)

	mockSubs.On("FindAll", ctx).Return(nil, errors.New("connection refused"))

	uc := NewSendNotificationsUseCase(mockSubs, mockSender, "/dashboard", zap.NewNop())
	result, err := uc.Execute(ctx)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, IsTechnicalError(err))
}
