package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/droppurity/leadsboard/internal/entity"
	"github.com/droppurity/leadsboard/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, leadType entity.LeadType, lead *entity.Lead) error {
	args := m.Called(ctx, leadType, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindAll(ctx context.Context, leadType entity.LeadType) ([]entity.Lead, error) {
	args := m.Called(ctx, leadType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, leadType entity.LeadType, id string) (*entity.Lead, error) {
	args := m.Called(ctx, leadType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, leadType entity.LeadType, id string, status entity.LeadStatus, closedReason string) error {
	args := m.Called(ctx, leadType, id, status, closedReason)
	return args.Error(0)
}

func (m *MockLeadRepository) MarkContacted(ctx context.Context, leadType entity.LeadType, id string) error {
	args := m.Called(ctx, leadType, id)
	return args.Error(0)
}

func (m *MockLeadRepository) Count(ctx context.Context, leadType entity.LeadType) (int, error) {
	args := m.Called(ctx, leadType)
	return args.Int(0), args.Error(1)
}

// MockInteractionRepository
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) Create(ctx context.Context, interaction *entity.Interaction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

func (m *MockInteractionRepository) FindByLeadIDs(ctx context.Context, leadIDs []string) ([]entity.Interaction, error) {
	args := m.Called(ctx, leadIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Interaction), args.Error(1)
}

func (m *MockInteractionRepository) FindAllWithLeadNames(ctx context.Context) ([]entity.Interaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Interaction), args.Error(1)
}

func (m *MockInteractionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockPushSubscriptionRepository
type MockPushSubscriptionRepository struct {
	mock.Mock
}

func (m *MockPushSubscriptionRepository) Save(ctx context.Context, sub *entity.PushSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockPushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	args := m.Called(ctx, endpoint)
	return args.Error(0)
}

func (m *MockPushSubscriptionRepository) FindAll(ctx context.Context) ([]entity.PushSubscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PushSubscription), args.Error(1)
}

// MockPushSender
type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) Send(ctx context.Context, sub entity.PushSubscription, payload []byte) error {
	args := m.Called(ctx, sub, payload)
	return args.Error(0)
}

// MockViewCache
type MockViewCache struct {
	mock.Mock
}

func (m *MockViewCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockViewCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockViewCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
