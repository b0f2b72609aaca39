package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type InteractionType string

const (
	InteractionCall     InteractionType = "Call"
	InteractionWhatsApp InteractionType = "WhatsApp"
	InteractionNote     InteractionType = "Note"
)

func ParseInteractionType(s string) (InteractionType, error) {
	switch InteractionType(s) {
	case InteractionCall, InteractionWhatsApp, InteractionNote:
		return InteractionType(s), nil
	}
	return "", errors.New("invalid interaction type")
}

// Interaction é um evento de contato registrado contra um lead.
// Imutável depois de criado. LeadName é desnormalizado no momento da
// escrita: o histórico continua legível mesmo se o lead mudar de nome.
type Interaction struct {
	ID        string          `json:"id"`
	LeadID    string          `json:"lead_id"`
	LeadType  LeadType        `json:"lead_type"`
	LeadName  string          `json:"lead_name"`
	Type      InteractionType `json:"type"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewInteraction(leadID string, leadType LeadType, leadName string, kind InteractionType, notes string) *Interaction {
	return &Interaction{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		LeadType:  leadType,
		LeadName:  leadName,
		Type:      kind,
		Notes:     notes,
		CreatedAt: time.Now(),
	}
}
