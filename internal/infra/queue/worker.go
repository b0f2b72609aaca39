package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/entity"
)

// NotificationTrigger dispara o fan-out de push para a equipe.
type NotificationTrigger interface {
	SendNewLeadNotifications(ctx context.Context) (sent int, failed int, err error)
}

// StaffMailer envia o alerta de lead novo por email.
type StaffMailer interface {
	SendNewLeadAlert(to, leadName string, leadType entity.LeadType) error
}

// Worker consome q.lead-alerts: cada evento de lead novo vira uma rodada
// de notificações push mais um email para a equipe.
type Worker struct {
	Channel    *amqp.Channel
	Notifier   NotificationTrigger
	Mailer     StaffMailer
	StaffEmail string
	Log        *zap.Logger
}

func NewWorker(ch *amqp.Channel, notifier NotificationTrigger, mailer StaffMailer, staffEmail string, log *zap.Logger) *Worker {
	return &Worker{
		Channel:    ch,
		Notifier:   notifier,
		Mailer:     mailer,
		StaffEmail: staffEmail,
		Log:        log,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		w.Log.Fatal("failed to register RabbitMQ consumer", zap.Error(err))
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCreatedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				w.Log.Error("invalid lead event, sending to DLQ", zap.Error(err))
				// Mensagem podre: rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			w.Log.Info("processing new lead alert",
				zap.String("lead_id", payload.LeadID),
				zap.String("lead_type", payload.LeadType),
			)

			if err := w.process(context.Background(), payload); err != nil {
				w.Log.Error("failed to process lead alert", zap.Error(err))
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	w.Log.Info("worker waiting for lead events", zap.String("queue", queueName))
	<-forever
}

func (w *Worker) process(ctx context.Context, payload LeadCreatedPayload) error {
	sent, failed, err := w.Notifier.SendNewLeadNotifications(ctx)
	if err != nil {
		return err
	}

	w.Log.Info("push fan-out settled",
		zap.String("lead_id", payload.LeadID),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
	)

	// Email é melhor esforço: falha não devolve o evento para a fila.
	if w.Mailer != nil && w.StaffEmail != "" {
		leadType, terr := entity.ParseLeadType(payload.LeadType)
		if terr != nil {
			leadType = entity.LeadTypeContact
		}
		if merr := w.Mailer.SendNewLeadAlert(w.StaffEmail, payload.Name, leadType); merr != nil {
			w.Log.Warn("staff alert email failed", zap.Error(merr))
		}
	}

	return nil
}
