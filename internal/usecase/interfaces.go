package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/droppurity/leadsboard/internal/entity"
	"github.com/droppurity/leadsboard/internal/infra/queue"
)

type LeadRepositoryInterface interface {
	Create(ctx context.Context, leadType entity.LeadType, lead *entity.Lead) error
	FindAll(ctx context.Context, leadType entity.LeadType) ([]entity.Lead, error)
	FindByID(ctx context.Context, leadType entity.LeadType, id string) (*entity.Lead, error)
	UpdateStatus(ctx context.Context, leadType entity.LeadType, id string, status entity.LeadStatus, closedReason string) error
	// MarkContacted só promove New -> Contacted; qualquer outro status fica intocado.
	MarkContacted(ctx context.Context, leadType entity.LeadType, id string) error
	Count(ctx context.Context, leadType entity.LeadType) (int, error)
}

type InteractionRepositoryInterface interface {
	Create(ctx context.Context, interaction *entity.Interaction) error
	// FindByLeadIDs retorna todas as interações dos leads, mais recente primeiro.
	FindByLeadIDs(ctx context.Context, leadIDs []string) ([]entity.Interaction, error)
	// FindAllWithLeadNames resolve o nome atual do lead via join e descarta órfãs.
	FindAllWithLeadNames(ctx context.Context) ([]entity.Interaction, error)
	Count(ctx context.Context) (int, error)
}

type PushSubscriptionRepositoryInterface interface {
	Save(ctx context.Context, sub *entity.PushSubscription) error
	DeleteByEndpoint(ctx context.Context, endpoint string) error
	FindAll(ctx context.Context) ([]entity.PushSubscription, error)
}

// PushSender entrega um payload a um endpoint. Falhas permanentes chegam
// como *push.DeliveryError com Gone() == true.
type PushSenderInterface interface {
	Send(ctx context.Context, sub entity.PushSubscription, payload []byte) error
}

// ViewCache é o cache read-through na frente do Lead Store.
type ViewCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type QueueProducerInterface interface {
	PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error
}

type EmailService interface {
	SendNewLeadAlert(to, leadName string, leadType entity.LeadType) error
}

// Chaves das views cacheadas. As actions de mutação invalidam exatamente
// este conjunto: dashboard, lista do tipo, log de interações e detalhe.
const (
	ViewKeyDashboard    = "views:dashboard"
	ViewKeyInteractions = "views:interactions"
)

func viewKeyForCollection(leadType entity.LeadType) string {
	collection, _ := leadType.Collection()
	return "views:" + collection
}

func viewKeyForLead(leadType entity.LeadType, leadID string) string {
	slug := strings.ReplaceAll(string(leadType), " ", "-")
	return fmt.Sprintf("views:lead:%s-%s", slug, leadID)
}

func leadViewKeys(leadType entity.LeadType, leadID string) []string {
	return []string{
		ViewKeyDashboard,
		viewKeyForCollection(leadType),
		ViewKeyInteractions,
		viewKeyForLead(leadType, leadID),
	}
}
