package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/entity"
)

// TestGetLeadsCacheHitSkipsDatabase
func TestGetLeadsCacheHitSkipsDatabase(t *testing.T) {
	ctx := context.Background()
	mockLeads := new(MockLeadRepository)
	mockInteractions := new(MockInteractionRepository)
	mockCache := new(MockViewCache)

	cached, _ := json.Marshal([]entity.LeadWithHistory{
		{Lead: entity.Lead{ID: "lead-1", Name: "Ramesh"}, LeadType: entity.LeadTypeFreeTrial, Interactions: []entity.Interaction{}},
	})
	mockCache.On("Get", ctx, "views:free_trials").Return(cached, nil)

	uc := NewGetLeadsUseCase(mockLeads, NewInteractionAggregator(mockInteractions), mockCache, zap.NewNop())
	result, err := uc.Execute(ctx, entity.LeadTypeFreeTrial)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "Ramesh", result[0].Name)
	mockLeads.AssertNotCalled(t, "FindAll")
	mockInteractions.AssertNotCalled(t, "FindByLeadIDs")
}

// TestGetLeadsCacheMissFillsCache - miss vai ao banco, agrega e grava a view.
func TestGetLeadsCacheMissFillsCache(t *testing.T) {
	ctx := context.Background()
	mockLeads := new(MockLeadRepository)
	mockInteractions := new(MockInteractionRepository)
	mockCache := new(MockViewCache)

	mockCache.On("Get", ctx, "views:subscriptions").Return(nil, nil)
	mockLeads.On("FindAll", ctx, entity.LeadTypeSubscription).Return([]entity.Lead{
		{ID: "lead-1", Name: "Priya", Status: entity.StatusContacted},
	}, nil)
	mockInteractions.On("FindByLeadIDs", ctx, []string{"lead-1"}).Return([]entity.Interaction{
		{ID: "i-1", LeadID: "lead-1", Type: entity.InteractionCall},
	}, nil)
	mockCache.On("Set", ctx, "views:subscriptions", mock.Anything, viewCacheTTL).Return(nil)

	uc := NewGetLeadsUseCase(mockLeads, NewInteractionAggregator(mockInteractions), mockCache, zap.NewNop())
	result, err := uc.Execute(ctx, entity.LeadTypeSubscription)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, 1, result[0].CallCount)
	mockCache.AssertCalled(t, "Set", ctx, "views:subscriptions", mock.Anything, viewCacheTTL)
}

// TestGetLeadsWorksWithoutCache - cache nil cai direto no banco.
func TestGetLeadsWorksWithoutCache(t *testing.T) {
	ctx := context.Background()
	mockLeads := new(MockLeadRepository)
	mockInteractions := new(MockInteractionRepository)

	mockLeads.On("FindAll", ctx, entity.LeadTypeContact).Return([]entity.Lead{
		{ID: "lead-1", Name: "Ramesh"},
	}, nil)

	uc := NewGetLeadsUseCase(mockLeads, NewInteractionAggregator(mockInteractions), nil, zap.NewNop())
	result, err := uc.ExecutePlain(ctx, entity.LeadTypeContact)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
}

// TestGetLeadByIDNotFound
func TestGetLeadByIDNotFound(t *testing.T) {
	ctx := context.Background()
	mockLeads := new(MockLeadRepository)
	mockInteractions := new(MockInteractionRepository)

	mockLeads.On("FindByID", ctx, entity.LeadTypeFreeTrial, "ghost").Return(nil, assert.AnError)

	uc := NewGetLeadsUseCase(mockLeads, NewInteractionAggregator(mockInteractions), nil, zap.NewNop())
	result, err := uc.GetByID(ctx, entity.LeadTypeFreeTrial, "ghost")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, IsDomainError(err))
}
