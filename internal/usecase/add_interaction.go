package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/entity"
)

// AddInteractionUseCase registra uma interação contra um lead e aplica a
// transição implícita New -> Contacted. A sequência não é transacional:
// lookup, insert, bump de status, invalidação de cache — nessa ordem.
type AddInteractionUseCase struct {
	Leads        LeadRepositoryInterface
	Interactions InteractionRepositoryInterface
	Cache        ViewCache
	Log          *zap.Logger
}

func NewAddInteractionUseCase(
	leads LeadRepositoryInterface,
	interactions InteractionRepositoryInterface,
	cache ViewCache,
	log *zap.Logger,
) *AddInteractionUseCase {
	return &AddInteractionUseCase{
		Leads:        leads,
		Interactions: interactions,
		Cache:        cache,
		Log:          log,
	}
}

// Execute nunca devolve erro: o contrato da action é uma mensagem
// exibível, com validação e not-found recuperados localmente.
func (uc *AddInteractionUseCase) Execute(ctx context.Context, input AddInteractionInput) ActionResult {
	if errs := ValidateAddInteractionInput(input); len(errs) > 0 {
		return ActionResult{Message: "Missing required fields."}
	}

	leadType, _ := entity.ParseLeadType(input.LeadType)
	interactionType, _ := entity.ParseInteractionType(input.InteractionType)

	lead, err := uc.Leads.FindByID(ctx, leadType, input.LeadID)
	if err != nil {
		uc.Log.Warn("interaction for unknown lead",
			zap.String("lead_id", input.LeadID),
			zap.String("lead_type", input.LeadType),
			zap.Error(err),
		)
		return ActionResult{Message: "Lead not found."}
	}

	interaction := entity.NewInteraction(lead.ID, leadType, lead.Name, interactionType, input.Notes)
	if err := uc.Interactions.Create(ctx, interaction); err != nil {
		uc.Log.Error("failed to insert interaction", zap.Error(err))
		return ActionResult{Message: "Failed to add interaction."}
	}

	// Só promove New -> Contacted. Converted e Closed ficam como estão.
	if lead.Status == entity.StatusNew {
		if err := uc.Leads.MarkContacted(ctx, leadType, lead.ID); err != nil {
			// Interação já gravada; inconsistência aceita, não desfazemos.
			uc.Log.Error("interaction saved but status bump failed",
				zap.String("lead_id", lead.ID),
				zap.Error(err),
			)
		}
	}

	uc.invalidateViews(ctx, leadType, lead.ID)

	return ActionResult{Message: "Interaction added successfully."}
}

func (uc *AddInteractionUseCase) invalidateViews(ctx context.Context, leadType entity.LeadType, leadID string) {
	if uc.Cache == nil {
		return
	}
	if err := uc.Cache.Delete(ctx, leadViewKeys(leadType, leadID)...); err != nil {
		uc.Log.Warn("cache invalidation failed", zap.Error(err))
	}
}
