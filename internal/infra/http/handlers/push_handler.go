package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/entity"
	"github.com/droppurity/leadsboard/internal/usecase"
)

// subscribeRequest espelha o objeto PushSubscription serializado pelo
// navegador.
type subscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

type PushHandler struct {
	Subs usecase.PushSubscriptionRepositoryInterface
	Log  *zap.Logger
}

func NewPushHandler(subs usecase.PushSubscriptionRepositoryInterface, log *zap.Logger) *PushHandler {
	return &PushHandler{Subs: subs, Log: log}
}

// HandleSubscribe faz o upsert por endpoint: reinscrever o mesmo
// navegador nunca duplica registro, só renova as chaves.
func (h *PushHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON.")
		return
	}

	sub := &entity.PushSubscription{
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}

	if err := sub.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields.")
		return
	}

	if err := h.Subs.Save(r.Context(), sub); err != nil {
		h.Log.Error("failed to save push subscription", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save subscription.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Subscription saved."})
}

// HandleUnsubscribe remove o endpoint. Remover um endpoint que não
// existe também responde sucesso.
func (h *PushHandler) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req unsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON.")
		return
	}

	if req.Endpoint == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields.")
		return
	}

	if err := h.Subs.DeleteByEndpoint(r.Context(), req.Endpoint); err != nil {
		h.Log.Error("failed to remove push subscription", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to remove subscription.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Subscription removed."})
}
