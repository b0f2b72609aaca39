package usecase

type AddInteractionInput struct {
	LeadID          string `json:"lead_id"`
	LeadType        string `json:"lead_type"`
	Notes           string `json:"notes"`
	InteractionType string `json:"interaction_type"`
}

// ActionResult é o contrato das actions de mutação: sempre uma mensagem
// exibível, nunca um erro cru.
type ActionResult struct {
	Message string `json:"message"`
}

type UpdateLeadStatusInput struct {
	LeadID   string `json:"lead_id"`
	LeadType string `json:"lead_type"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
}

// ContactAttemptResult mantém o contrato assimétrico do botão de
// contato rápido (success + message, em vez de só message).
type ContactAttemptResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LogContactAttemptInput struct {
	LeadID   string `json:"lead_id"`
	LeadType string `json:"lead_type"`
	Method   string `json:"method"` // Call | WhatsApp
}

type CreateLeadInput struct {
	LeadType      string `json:"lead_type"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	MapLink       string `json:"map_link"`
	PurifierName  string `json:"purifier_name"`
	PlanName      string `json:"plan_name"`
	Tenure        string `json:"tenure"`
	Message       string `json:"message"`
	ReferrerEmail string `json:"referrer_email"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

type CreateLeadOutput struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

// DispatchResult agrega o fan-out de push: nunca detalha endpoint por
// endpoint para quem disparou.
type DispatchResult struct {
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Message string `json:"message,omitempty"`

	// Quantos endpoints mortos foram removidos de tabela nesta rodada.
	Pruned int `json:"-"`
}

type DashboardSummary struct {
	Contacts      int `json:"contacts"`
	FreeTrials    int `json:"free_trials"`
	Referrals     int `json:"referrals"`
	Subscriptions int `json:"subscriptions"`
	Interactions  int `json:"interactions"`
}
