package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/entity"
	"github.com/droppurity/leadsboard/internal/infra/push"
)

// NotificationPayload é o JSON entregue ao service worker do navegador.
// O conteúdo é fixo por disparo: o dispatcher não sabe qual lead chegou.
type NotificationPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
	Data  struct {
		URL string `json:"url"`
	} `json:"data"`
}

// SendNotificationsUseCase faz o fan-out de push: carrega todos os
// endpoints registrados, envia o mesmo payload para todos em paralelo e
// remove da tabela os que o serviço de push reportar como mortos.
type SendNotificationsUseCase struct {
	Subs         PushSubscriptionRepositoryInterface
	Sender       PushSenderInterface
	DashboardURL string
	Log          *zap.Logger
}

func NewSendNotificationsUseCase(
	subs PushSubscriptionRepositoryInterface,
	sender PushSenderInterface,
	dashboardURL string,
	log *zap.Logger,
) *SendNotificationsUseCase {
	return &SendNotificationsUseCase{
		Subs:         subs,
		Sender:       sender,
		DashboardURL: dashboardURL,
		Log:          log,
	}
}

type deliveryOutcome struct {
	endpoint string
	err      error
}

func (uc *SendNotificationsUseCase) Execute(ctx context.Context) (*DispatchResult, error) {
	subs, err := uc.Subs.FindAll(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load push subscriptions: " + err.Error()}
	}

	if len(subs) == 0 {
		return &DispatchResult{Sent: 0, Failed: 0, Message: "No subscriptions to send to."}, nil
	}

	payload := NotificationPayload{
		Title: "New Lead Received!",
		Body:  "A new lead has been added. Check your dashboard.",
		Icon:  "/icon-192x192.png",
	}
	payload.Data.URL = uc.DashboardURL

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &TechnicalError{Code: "PAYLOAD_ERROR", Message: "failed to marshal notification payload: " + err.Error()}
	}

	// Settle-all: todo envio termina (sucesso ou falha) antes do tally.
	// Um endpoint podre não derruba a entrega para o resto.
	outcomes := make(chan deliveryOutcome, len(subs))
	var wg sync.WaitGroup

	for _, sub := range subs {
		wg.Add(1)
		go func(s entity.PushSubscription) {
			defer wg.Done()
			outcomes <- deliveryOutcome{endpoint: s.Endpoint, err: uc.Sender.Send(ctx, s, body)}
		}(sub)
	}

	wg.Wait()
	close(outcomes)

	result := &DispatchResult{}
	for outcome := range outcomes {
		if outcome.err == nil {
			result.Sent++
			continue
		}

		result.Failed++

		var deliveryErr *push.DeliveryError
		if errors.As(outcome.err, &deliveryErr) && deliveryErr.Gone() {
			// Endpoint permanentemente inválido: limpa o registro.
			if delErr := uc.Subs.DeleteByEndpoint(ctx, outcome.endpoint); delErr != nil {
				uc.Log.Warn("failed to prune dead subscription",
					zap.String("endpoint", outcome.endpoint),
					zap.Error(delErr),
				)
			} else {
				result.Pruned++
			}
			continue
		}

		// Falha transitória: loga e mantém o endpoint registrado.
		uc.Log.Warn("push delivery failed",
			zap.String("endpoint", outcome.endpoint),
			zap.Error(outcome.err),
		)
	}

	uc.Log.Info("notification dispatch settled",
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Int("pruned", result.Pruned),
	)

	return result, nil
}

// SendNewLeadNotifications adapta Execute para o contrato do worker da fila.
func (uc *SendNotificationsUseCase) SendNewLeadNotifications(ctx context.Context) (int, int, error) {
	result, err := uc.Execute(ctx)
	if err != nil {
		return 0, 0, err
	}
	return result.Sent, result.Failed, nil
}
