package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/entity"
)

const viewCacheTTL = 5 * time.Minute

// GetLeadsUseCase é a leitura das listas do painel, com cache
// read-through na frente do banco. Cache indisponível nunca derruba a
// leitura: cai direto no Postgres.
type GetLeadsUseCase struct {
	Leads      LeadRepositoryInterface
	Aggregator *InteractionAggregator
	Cache      ViewCache
	Log        *zap.Logger
}

func NewGetLeadsUseCase(
	leads LeadRepositoryInterface,
	aggregator *InteractionAggregator,
	cache ViewCache,
	log *zap.Logger,
) *GetLeadsUseCase {
	return &GetLeadsUseCase{Leads: leads, Aggregator: aggregator, Cache: cache, Log: log}
}

// Execute retorna trials/assinaturas com histórico anexado, mais recente
// primeiro, na ordem em que o banco devolveu os leads.
func (uc *GetLeadsUseCase) Execute(ctx context.Context, leadType entity.LeadType) ([]entity.LeadWithHistory, error) {
	key := viewKeyForCollection(leadType)

	if cached, ok := uc.cacheGet(ctx, key); ok {
		var result []entity.LeadWithHistory
		if err := json.Unmarshal(cached, &result); err == nil {
			return result, nil
		}
	}

	leads, err := uc.Leads.FindAll(ctx, leadType)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load leads: " + err.Error()}
	}

	result, err := uc.Aggregator.AttachInteractions(ctx, leads, leadType)
	if err != nil {
		return nil, err
	}

	uc.cacheSet(ctx, key, result)
	return result, nil
}

// ExecutePlain serve contatos e indicações: lista simples, sem histórico.
func (uc *GetLeadsUseCase) ExecutePlain(ctx context.Context, leadType entity.LeadType) ([]entity.Lead, error) {
	key := viewKeyForCollection(leadType)

	if cached, ok := uc.cacheGet(ctx, key); ok {
		var result []entity.Lead
		if err := json.Unmarshal(cached, &result); err == nil {
			return result, nil
		}
	}

	leads, err := uc.Leads.FindAll(ctx, leadType)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load leads: " + err.Error()}
	}
	if leads == nil {
		leads = []entity.Lead{}
	}

	uc.cacheSet(ctx, key, leads)
	return leads, nil
}

// GetByID resolve o detalhe de um lead com histórico completo.
func (uc *GetLeadsUseCase) GetByID(ctx context.Context, leadType entity.LeadType, id string) (*entity.LeadWithHistory, error) {
	key := viewKeyForLead(leadType, id)

	if cached, ok := uc.cacheGet(ctx, key); ok {
		var result entity.LeadWithHistory
		if err := json.Unmarshal(cached, &result); err == nil {
			return &result, nil
		}
	}

	lead, err := uc.Leads.FindByID(ctx, leadType, id)
	if err != nil {
		return nil, &DomainError{Code: CodeLeadNotFound, Message: "lead not found"}
	}

	withHistory, err := uc.Aggregator.AttachInteractions(ctx, []entity.Lead{*lead}, leadType)
	if err != nil {
		return nil, err
	}

	uc.cacheSet(ctx, key, withHistory[0])
	return &withHistory[0], nil
}

func (uc *GetLeadsUseCase) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if uc.Cache == nil {
		return nil, false
	}
	cached, err := uc.Cache.Get(ctx, key)
	if err != nil || cached == nil {
		return nil, false
	}
	return cached, true
}

func (uc *GetLeadsUseCase) cacheSet(ctx context.Context, key string, value any) {
	if uc.Cache == nil {
		return
	}
	body, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := uc.Cache.Set(ctx, key, body, viewCacheTTL); err != nil {
		uc.Log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
