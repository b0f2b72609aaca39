package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/entity"
)

// LogContactAttemptUseCase é a especialização dos botões de um clique
// (ligar / abrir WhatsApp): grava uma interação com notas sintetizadas
// e aplica o mesmo bump condicional de status.
type LogContactAttemptUseCase struct {
	Leads        LeadRepositoryInterface
	Interactions InteractionRepositoryInterface
	Cache        ViewCache
	Log          *zap.Logger
}

func NewLogContactAttemptUseCase(
	leads LeadRepositoryInterface,
	interactions InteractionRepositoryInterface,
	cache ViewCache,
	log *zap.Logger,
) *LogContactAttemptUseCase {
	return &LogContactAttemptUseCase{
		Leads:        leads,
		Interactions: interactions,
		Cache:        cache,
		Log:          log,
	}
}

func (uc *LogContactAttemptUseCase) Execute(ctx context.Context, input LogContactAttemptInput) ContactAttemptResult {
	if errs := ValidateLogContactAttemptInput(input); len(errs) > 0 {
		return ContactAttemptResult{Success: false, Message: "Missing required fields."}
	}

	leadType, _ := entity.ParseLeadType(input.LeadType)
	method := entity.InteractionType(input.Method)

	lead, err := uc.Leads.FindByID(ctx, leadType, input.LeadID)
	if err != nil {
		return ContactAttemptResult{Success: false, Message: "Lead not found."}
	}

	notes := fmt.Sprintf("%s attempt.", method)
	interaction := entity.NewInteraction(lead.ID, leadType, lead.Name, method, notes)
	if err := uc.Interactions.Create(ctx, interaction); err != nil {
		uc.Log.Error("failed to log contact attempt", zap.Error(err))
		return ContactAttemptResult{Success: false, Message: fmt.Sprintf("Failed to log %s attempt.", method)}
	}

	if lead.Status == entity.StatusNew {
		if err := uc.Leads.MarkContacted(ctx, leadType, lead.ID); err != nil {
			uc.Log.Error("contact attempt saved but status bump failed",
				zap.String("lead_id", lead.ID),
				zap.Error(err),
			)
		}
	}

	if uc.Cache != nil {
		if err := uc.Cache.Delete(ctx, leadViewKeys(leadType, lead.ID)...); err != nil {
			uc.Log.Warn("cache invalidation failed", zap.Error(err))
		}
	}

	return ContactAttemptResult{Success: true, Message: fmt.Sprintf("%s attempt logged successfully.", method)}
}
