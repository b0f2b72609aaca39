package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/infra/http/middleware"
	"github.com/droppurity/leadsboard/internal/usecase"
)

type notifyRequest struct {
	Secret string `json:"secret"`
}

// NotifyHandler expõe o gatilho manual de push. Protegido por segredo
// compartilhado no corpo, não por sessão de usuário.
type NotifyHandler struct {
	Dispatcher *usecase.SendNotificationsUseCase
	Secret     string
	Log        *zap.Logger
}

func NewNotifyHandler(dispatcher *usecase.SendNotificationsUseCase, secret string, log *zap.Logger) *NotifyHandler {
	return &NotifyHandler{Dispatcher: dispatcher, Secret: secret, Log: log}
}

func (h *NotifyHandler) HandleSendNotifications(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.Secret)) != 1 {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.Dispatcher.Execute(r.Context())
	if err != nil {
		h.Log.Error("notification dispatch failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to send notifications.")
		return
	}

	middleware.RecordPushDispatch(result.Sent, result.Failed, result.Pruned)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Notifications sent successfully.",
		"result":  result,
	})
}
