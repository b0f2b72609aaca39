package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/droppurity/leadsboard/internal/infra/http/middleware"
	"github.com/droppurity/leadsboard/internal/usecase"
)

type InteractionHandler struct {
	AddInteraction  *usecase.AddInteractionUseCase
	LogAttempt      *usecase.LogContactAttemptUseCase
	GetInteractions *usecase.GetInteractionsUseCase
}

func NewInteractionHandler(
	addInteraction *usecase.AddInteractionUseCase,
	logAttempt *usecase.LogContactAttemptUseCase,
	getInteractions *usecase.GetInteractionsUseCase,
) *InteractionHandler {
	return &InteractionHandler{
		AddInteraction:  addInteraction,
		LogAttempt:      logAttempt,
		GetInteractions: getInteractions,
	}
}

// HandleAddInteraction registra uma anotação manual do painel. A action
// sempre responde 200 com mensagem; erro de negócio vira texto.
func (h *InteractionHandler) HandleAddInteraction(w http.ResponseWriter, r *http.Request) {
	var input usecase.AddInteractionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON.")
		return
	}

	result := h.AddInteraction.Execute(r.Context(), input)
	if result.Message == "Interaction added successfully." {
		middleware.RecordInteractionLogged(input.InteractionType)
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleLogContactAttempt é o registro de um clique em "ligar" ou
// "WhatsApp" no painel.
func (h *InteractionHandler) HandleLogContactAttempt(w http.ResponseWriter, r *http.Request) {
	var input usecase.LogContactAttemptInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON.")
		return
	}

	result := h.LogAttempt.Execute(r.Context(), input)
	if result.Success {
		middleware.RecordInteractionLogged(input.Method)
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleList serve o log global, mais recente primeiro.
func (h *InteractionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	interactions, err := h.GetInteractions.Execute(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load interactions.")
		return
	}
	writeJSON(w, http.StatusOK, interactions)
}
