package push

import (
	"context"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/droppurity/leadsboard/internal/entity"
)

// DeliveryError classifica a falha de entrega por assinatura.
// Gone() == true significa endpoint permanentemente inválido: o
// dispatcher deve remover a assinatura da tabela.
type DeliveryError struct {
	Endpoint   string
	StatusCode int
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("push delivery failed with status %d", e.StatusCode)
}

// Gone: 410 é o sinal do protocolo; alguns serviços de push devolvem
// 404 para endpoints expirados, tratamos igual.
func (e *DeliveryError) Gone() bool {
	return e.StatusCode == http.StatusGone || e.StatusCode == http.StatusNotFound
}

// Client envia Web Push assinado com VAPID.
type Client struct {
	vapidPublicKey  string
	vapidPrivateKey string
	subscriber      string
	ttl             int
}

func NewClient(vapidPublicKey, vapidPrivateKey, subscriber string) *Client {
	return &Client{
		vapidPublicKey:  vapidPublicKey,
		vapidPrivateKey: vapidPrivateKey,
		subscriber:      subscriber,
		ttl:             60,
	}
}

func (c *Client) Send(ctx context.Context, sub entity.PushSubscription, payload []byte) error {
	s := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, s, &webpush.Options{
		Subscriber:      c.subscriber,
		VAPIDPublicKey:  c.vapidPublicKey,
		VAPIDPrivateKey: c.vapidPrivateKey,
		TTL:             c.ttl,
	})
	if err != nil {
		return fmt.Errorf("push transport error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	return &DeliveryError{Endpoint: sub.Endpoint, StatusCode: resp.StatusCode}
}
