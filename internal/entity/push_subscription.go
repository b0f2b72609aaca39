package entity

import (
	"errors"
	"time"
)

// PushSubscription é o registro de endpoint emitido pelo navegador.
// O endpoint é a chave natural: um save repetido substitui as chaves.
type PushSubscription struct {
	Endpoint  string    `json:"endpoint"`
	P256dh    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *PushSubscription) Validate() error {
	if s.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	if s.P256dh == "" || s.Auth == "" {
		return errors.New("subscription keys are required")
	}
	return nil
}
