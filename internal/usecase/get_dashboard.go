package usecase

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/entity"
)

// GetDashboardUseCase monta os contadores da página inicial do painel.
type GetDashboardUseCase struct {
	Leads        LeadRepositoryInterface
	Interactions InteractionRepositoryInterface
	Cache        ViewCache
	Log          *zap.Logger
}

func NewGetDashboardUseCase(
	leads LeadRepositoryInterface,
	interactions InteractionRepositoryInterface,
	cache ViewCache,
	log *zap.Logger,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{Leads: leads, Interactions: interactions, Cache: cache, Log: log}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context) (*DashboardSummary, error) {
	if uc.Cache != nil {
		if cached, err := uc.Cache.Get(ctx, ViewKeyDashboard); err == nil && cached != nil {
			var summary DashboardSummary
			if err := json.Unmarshal(cached, &summary); err == nil {
				return &summary, nil
			}
		}
	}

	summary := &DashboardSummary{}

	counts := []struct {
		leadType entity.LeadType
		dest     *int
	}{
		{entity.LeadTypeContact, &summary.Contacts},
		{entity.LeadTypeFreeTrial, &summary.FreeTrials},
		{entity.LeadTypeReferral, &summary.Referrals},
		{entity.LeadTypeSubscription, &summary.Subscriptions},
	}

	for _, c := range counts {
		n, err := uc.Leads.Count(ctx, c.leadType)
		if err != nil {
			return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to count leads: " + err.Error()}
		}
		*c.dest = n
	}

	n, err := uc.Interactions.Count(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to count interactions: " + err.Error()}
	}
	summary.Interactions = n

	if uc.Cache != nil {
		if body, err := json.Marshal(summary); err == nil {
			if err := uc.Cache.Set(ctx, ViewKeyDashboard, body, viewCacheTTL); err != nil {
				uc.Log.Warn("cache write failed", zap.Error(err))
			}
		}
	}

	return summary, nil
}
