package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidLeadType = errors.New("invalid lead type")

// LeadType identifica a origem do lead e decide em qual tabela ele vive.
type LeadType string

const (
	LeadTypeContact      LeadType = "Contact"
	LeadTypeFreeTrial    LeadType = "Free Trial"
	LeadTypeReferral     LeadType = "Referral"
	LeadTypeSubscription LeadType = "Subscription"
)

// Collection retorna o nome da tabela correspondente ao tipo.
func (t LeadType) Collection() (string, error) {
	switch t {
	case LeadTypeContact:
		return "contacts", nil
	case LeadTypeFreeTrial:
		return "free_trials", nil
	case LeadTypeReferral:
		return "referrals", nil
	case LeadTypeSubscription:
		return "subscriptions", nil
	}
	return "", ErrInvalidLeadType
}

func ParseLeadType(s string) (LeadType, error) {
	t := LeadType(s)
	if _, err := t.Collection(); err != nil {
		return "", err
	}
	return t, nil
}

type LeadStatus string

const (
	StatusNew       LeadStatus = "New"
	StatusContacted LeadStatus = "Contacted"
	StatusConverted LeadStatus = "Converted"
	StatusClosed    LeadStatus = "Closed"
)

func ParseLeadStatus(s string) (LeadStatus, error) {
	switch LeadStatus(s) {
	case StatusNew, StatusContacted, StatusConverted, StatusClosed:
		return LeadStatus(s), nil
	}
	return "", errors.New("invalid lead status")
}

type Lead struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	MapLink string `json:"map_link,omitempty"`

	// Campos de plano (trials e assinaturas)
	PurifierName string `json:"purifier_name,omitempty"`
	PlanName     string `json:"plan_name,omitempty"`
	Tenure       string `json:"tenure,omitempty"`

	// Contato (formulário do site)
	Message string `json:"message,omitempty"`

	// Indicação
	ReferrerEmail string `json:"referrer_email,omitempty"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	Status       LeadStatus `json:"status"`
	ClosedReason string     `json:"closed_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewLead cria um lead recém-capturado. Todo lead nasce com status New.
func NewLead(name, email string) *Lead {
	return &Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Status:    StatusNew,
		CreatedAt: time.Now(),
	}
}

// LeadWithHistory é o lead enriquecido pelo agregador de interações:
// o registro original mais a lista de interações (mais recente primeiro)
// e os contadores derivados.
type LeadWithHistory struct {
	Lead
	LeadType      LeadType      `json:"lead_type"`
	Interactions  []Interaction `json:"interactions"`
	CallCount     int           `json:"call_count"`
	WhatsAppCount int           `json:"whatsapp_count"`
}
