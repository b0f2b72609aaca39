package usecase

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/entity"
)

// GetInteractionsUseCase serve o log global de interações. Os nomes vêm
// resolvidos por join contra as coleções de lead; interações cujo lead
// sumiu ficam de fora do feed (o snapshot gravado continua na tabela).
type GetInteractionsUseCase struct {
	Interactions InteractionRepositoryInterface
	Cache        ViewCache
	Log          *zap.Logger
}

func NewGetInteractionsUseCase(interactions InteractionRepositoryInterface, cache ViewCache, log *zap.Logger) *GetInteractionsUseCase {
	return &GetInteractionsUseCase{Interactions: interactions, Cache: cache, Log: log}
}

func (uc *GetInteractionsUseCase) Execute(ctx context.Context) ([]entity.Interaction, error) {
	if uc.Cache != nil {
		if cached, err := uc.Cache.Get(ctx, ViewKeyInteractions); err == nil && cached != nil {
			var result []entity.Interaction
			if err := json.Unmarshal(cached, &result); err == nil {
				return result, nil
			}
		}
	}

	interactions, err := uc.Interactions.FindAllWithLeadNames(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load interactions: " + err.Error()}
	}
	if interactions == nil {
		interactions = []entity.Interaction{}
	}

	if uc.Cache != nil {
		if body, err := json.Marshal(interactions); err == nil {
			if err := uc.Cache.Set(ctx, ViewKeyInteractions, body, viewCacheTTL); err != nil {
				uc.Log.Warn("cache write failed", zap.Error(err))
			}
		}
	}

	return interactions, nil
}
