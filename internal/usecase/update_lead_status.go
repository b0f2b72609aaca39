package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/entity"
)

// UpdateLeadStatusUseCase aplica transições explícitas de status. O grafo
// é livre por decisão de produto: o painel pode reabrir um lead Closed.
// closed_reason só é gravado quando o destino é Closed com motivo; nas
// demais transições o motivo antigo fica intocado.
type UpdateLeadStatusUseCase struct {
	Leads LeadRepositoryInterface
	Cache ViewCache
	Log   *zap.Logger
}

func NewUpdateLeadStatusUseCase(leads LeadRepositoryInterface, cache ViewCache, log *zap.Logger) *UpdateLeadStatusUseCase {
	return &UpdateLeadStatusUseCase{Leads: leads, Cache: cache, Log: log}
}

func (uc *UpdateLeadStatusUseCase) Execute(ctx context.Context, input UpdateLeadStatusInput) ActionResult {
	if errs := ValidateUpdateLeadStatusInput(input); len(errs) > 0 {
		return ActionResult{Message: "Missing required fields."}
	}

	leadType, _ := entity.ParseLeadType(input.LeadType)
	status, _ := entity.ParseLeadStatus(input.Status)

	closedReason := ""
	if status == entity.StatusClosed && input.Reason != "" {
		closedReason = input.Reason
	}

	if err := uc.Leads.UpdateStatus(ctx, leadType, input.LeadID, status, closedReason); err != nil {
		uc.Log.Error("failed to update lead status",
			zap.String("lead_id", input.LeadID),
			zap.String("status", input.Status),
			zap.Error(err),
		)
		return ActionResult{Message: "Failed to update status."}
	}

	if uc.Cache != nil {
		if err := uc.Cache.Delete(ctx, leadViewKeys(leadType, input.LeadID)...); err != nil {
			uc.Log.Warn("cache invalidation failed", zap.Error(err))
		}
	}

	return ActionResult{Message: "Status updated successfully."}
}
