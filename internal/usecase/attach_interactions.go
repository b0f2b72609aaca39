package usecase

import (
	"context"
	"fmt"

	"github.com/droppurity/leadsboard/internal/entity"
)

// InteractionAggregator junta leads de um tipo com seu histórico de
// interações e os contadores derivados (ligações e WhatsApp).
type InteractionAggregator struct {
	Interactions InteractionRepositoryInterface
}

func NewInteractionAggregator(interactions InteractionRepositoryInterface) *InteractionAggregator {
	return &InteractionAggregator{Interactions: interactions}
}

// AttachInteractions preserva ordem e comprimento da entrada: cada lead
// sai com sua lista de interações (mais recente primeiro) e contadores.
// Entrada vazia não toca o banco.
func (a *InteractionAggregator) AttachInteractions(ctx context.Context, leads []entity.Lead, leadType entity.LeadType) ([]entity.LeadWithHistory, error) {
	if len(leads) == 0 {
		return []entity.LeadWithHistory{}, nil
	}

	leadIDs := make([]string, len(leads))
	for i, lead := range leads {
		leadIDs[i] = lead.ID
	}

	interactions, err := a.Interactions.FindByLeadIDs(ctx, leadIDs)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: fmt.Sprintf("failed to load interactions: %v", err),
		}
	}

	// Uma passada só: a lista já vem ordenada por created_at DESC do
	// repositório, então cada balde herda a ordem.
	byLead := make(map[string][]entity.Interaction, len(leads))
	for _, interaction := range interactions {
		byLead[interaction.LeadID] = append(byLead[interaction.LeadID], interaction)
	}

	result := make([]entity.LeadWithHistory, len(leads))
	for i, lead := range leads {
		leadInteractions := byLead[lead.ID]
		if leadInteractions == nil {
			leadInteractions = []entity.Interaction{}
		}

		callCount := 0
		whatsAppCount := 0
		for _, interaction := range leadInteractions {
			switch interaction.Type {
			case entity.InteractionCall:
				callCount++
			case entity.InteractionWhatsApp:
				whatsAppCount++
			}
		}

		result[i] = entity.LeadWithHistory{
			Lead:          lead,
			LeadType:      leadType,
			Interactions:  leadInteractions,
			CallCount:     callCount,
			WhatsAppCount: whatsAppCount,
		}
	}

	return result, nil
}
