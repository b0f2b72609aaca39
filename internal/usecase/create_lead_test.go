package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/entity"
	"github.com/droppurity/leadsboard/internal/infra/queue"
)

// TestCreateLeadFreeTrialSuccess - captura persiste e publica o evento.
func TestCreateLeadFreeTrialSuccess(t *testing.T) {
	ctx := context.Background()
	mockLeads := new(MockLeadRepository)
	mockQueue := new(MockQueueProducer)

	mockLeads.On("Create", ctx, entity.LeadTypeFreeTrial, mock.Anything).Return(nil)
	mockQueue.On("PublishLeadCreated", ctx, mock.Anything).Return(nil)

	uc := NewCreateLeadUseCase(mockLeads, nil, mockQueue, zap.NewNop())
	output, err := uc.Execute(ctx, CreateLeadInput{
		LeadType:     "Free Trial",
		Name:         "Ramesh Kumar",
		Email:        "ramesh@example.com",
		Phone:        "9876543210",
		PurifierName: "Droppurity RO+",
		StartDate:    "2026-08-01",
		EndDate:      "2026-08-08",
	})

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.NotEmpty(t, output.ID)
	assert.Equal(t, "New", output.Status)
	assert.Equal(t, "Lead captured successfully.", output.Msg)

	mockLeads.AssertCalled(t, "Create", ctx, entity.LeadTypeFreeTrial, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Name == "Ramesh Kumar" &&
			l.Status == entity.StatusNew &&
			l.StartDate != nil && l.EndDate != nil
	}))
	mockQueue.AssertCalled(t, "PublishLeadCreated", ctx, mock.MatchedBy(func(p queue.LeadCreatedPayload) bool {
		return p.LeadType == "Free Trial" && p.Name == "Ramesh Kumar" && p.Origin == "API_FORM"
	}))
}

// TestCreateLeadValidationFailure - contato sem mensagem é rejeitado antes
// de tocar o banco.
func TestCreateLeadValidationFailure(t *testing.T) {
	ctx := context.Background()
	mockLeads := new(MockLeadRepository)
	mockQueue := new(MockQueueProducer)

	uc := NewCreateLeadUseCase(mockLeads, nil, mockQueue, zap.NewNop())
	output, err := uc.Execute(ctx, CreateLeadInput{
		LeadType: "Contact",
		Name:     "Ramesh",
		Email:    "ramesh@example.com",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, IsDomainError(err))
	mockLeads.AssertNotCalled(t, "Create")
	mockQueue.AssertNotCalled(t, "PublishLeadCreated")
}

// TestCreateLeadReferralRequiresReferrer
func TestCreateLeadReferralRequiresReferrer(t *testing.T) {
	ctx := context.Background()
	mockLeads := new(MockLeadRepository)

	uc := NewCreateLeadUseCase(mockLeads, nil, nil, zap.NewNop())
	output, err := uc.Execute(ctx, CreateLeadInput{
		LeadType: "Referral",
		Name:     "Suresh",
		Email:    "suresh@example.com",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, IsDomainError(err))
}

// TestCreateLeadPublishFailureDoesNotUndoCapture - o alerta se perde,
// o lead não.
func TestCreateLeadPublishFailureDoesNotUndoCapture(t *testing.T) {
	ctx := context.Background()
	mockLeads := new(MockLeadRepository)
	mockQueue := new(MockQueueProducer)

	mockLeads.On("Create", ctx, entity.LeadTypeContact, mock.Anything).Return(nil)
	mockQueue.On("PublishLeadCreated", ctx, mock.Anything).Return(errors.New("broker unavailable"))

	uc := NewCreateLeadUseCase(mockLeads, nil, mockQueue, zap.NewNop())
	output, err := uc.Execute(ctx, CreateLeadInput{
		LeadType: "Contact",
		Name:     "Ramesh",
		Email:    "ramesh@example.com",
		Message:  "Preciso de um orçamento",
	})

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, "Lead captured successfully.", output.Msg)
}

// TestCreateLeadDatabaseFailure
func TestCreateLeadDatabaseFailure(t *testing.T) {
	ctx := context.Background()
	mockLeads := new(MockLeadRepository)
	mockQueue := new(MockQueueProducer)

	mockLeads.On("Create", ctx, entity.LeadTypeSubscription, mock.Anything).Return(errors.New("database error"))

	uc := NewCreateLeadUseCase(mockLeads, nil, mockQueue, zap.NewNop())
	output, err := uc.Execute(ctx, CreateLeadInput{
		LeadType: "Subscription",
		Name:     "Priya",
		Email:    "priya@example.com",
		Phone:    "9876543210",
		PlanName: "Basic",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, IsTechnicalError(err))
	mockQueue.AssertNotCalled(t, "PublishLeadCreated")
}

// TestCreateLeadInvalidatesDashboardAndCollection - captura invalida o
// dashboard e a lista do tipo, nada além disso.
func TestCreateLeadInvalidatesDashboardAndCollection(t *testing.T) {
	ctx := context.Background()
	mockLeads := new(MockLeadRepository)
	mockCache := new(MockViewCache)

	mockLeads.On("Create", ctx, entity.LeadTypeFreeTrial, mock.Anything).Return(nil)
	mockCache.On("Delete", ctx, []string{"views:dashboard", "views:free_trials"}).Return(nil)

	uc := NewCreateLeadUseCase(mockLeads, mockCache, nil, zap.NewNop())
	output, err := uc.Execute(ctx, CreateLeadInput{
		LeadType: "Free Trial",
		Name:     "Ramesh",
		Email:    "ramesh@example.com",
		Phone:    "9876543210",
	})

	assert.NoError(t, err)
	assert.NotNil(t, output)
	mockCache.AssertExpectations(t)
}
