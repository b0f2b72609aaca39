package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/entity"
	"github.com/droppurity/leadsboard/internal/infra/queue"
)

// CreateLeadUseCase é o lado de captura: formulário do site vira lead.
// Depois de persistir, publica lead.created na fila; a falha de publicação
// não desfaz a captura (o alerta se perde, o lead não).
type CreateLeadUseCase struct {
	Leads LeadRepositoryInterface
	Cache ViewCache
	Queue QueueProducerInterface
	Log   *zap.Logger
}

func NewCreateLeadUseCase(
	leads LeadRepositoryInterface,
	cache ViewCache,
	producer QueueProducerInterface,
	log *zap.Logger,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{Leads: leads, Cache: cache, Queue: producer, Log: log}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: CodeValidation, Message: validationMessage(errs)}
	}

	leadType, _ := entity.ParseLeadType(input.LeadType)

	lead := entity.NewLead(input.Name, input.Email)
	lead.Phone = input.Phone
	lead.Address = input.Address
	lead.MapLink = input.MapLink
	lead.PurifierName = input.PurifierName
	lead.PlanName = input.PlanName
	lead.Tenure = input.Tenure
	lead.Message = input.Message
	lead.ReferrerEmail = input.ReferrerEmail
	lead.StartDate = parseDateOrNil(input.StartDate)
	lead.EndDate = parseDateOrNil(input.EndDate)

	if err := uc.Leads.Create(ctx, leadType, lead); err != nil {
		uc.Log.Error("failed to persist lead", zap.String("lead_type", input.LeadType), zap.Error(err))
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to persist lead: " + err.Error()}
	}

	if uc.Cache != nil {
		if err := uc.Cache.Delete(ctx, ViewKeyDashboard, viewKeyForCollection(leadType)); err != nil {
			uc.Log.Warn("cache invalidation failed", zap.Error(err))
		}
	}

	if uc.Queue != nil {
		payload := queue.LeadCreatedPayload{
			LeadID:    lead.ID,
			LeadType:  string(leadType),
			Name:      lead.Name,
			Email:     lead.Email,
			Phone:     lead.Phone,
			Origin:    "API_FORM",
			CreatedAt: lead.CreatedAt,
		}
		if err := uc.Queue.PublishLeadCreated(ctx, payload); err != nil {
			uc.Log.Warn("lead saved but event publish failed",
				zap.String("lead_id", lead.ID),
				zap.Error(err),
			)
		}
	}

	return &CreateLeadOutput{
		ID:     lead.ID,
		Status: string(lead.Status),
		Msg:    "Lead captured successfully.",
	}, nil
}

func parseDateOrNil(dateStr string) *time.Time {
	if dateStr == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", dateStr); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return &t
	}
	return nil
}
