package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/droppurity/leadsboard/internal/entity"
	"github.com/droppurity/leadsboard/internal/infra/http/middleware"
	"github.com/droppurity/leadsboard/internal/usecase"
)

type LeadHandler struct {
	GetLeads     *usecase.GetLeadsUseCase
	CreateLead   *usecase.CreateLeadUseCase
	Dashboard    *usecase.GetDashboardUseCase
	UpdateStatus *usecase.UpdateLeadStatusUseCase
}

func NewLeadHandler(
	getLeads *usecase.GetLeadsUseCase,
	createLead *usecase.CreateLeadUseCase,
	dashboard *usecase.GetDashboardUseCase,
	updateStatus *usecase.UpdateLeadStatusUseCase,
) *LeadHandler {
	return &LeadHandler{
		GetLeads:     getLeads,
		CreateLead:   createLead,
		Dashboard:    dashboard,
		UpdateStatus: updateStatus,
	}
}

// ListWithHistory serve free trials e assinaturas: leads + interações + contadores.
func (h *LeadHandler) ListWithHistory(leadType entity.LeadType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leads, err := h.GetLeads.Execute(r.Context(), leadType)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load leads.")
			return
		}
		writeJSON(w, http.StatusOK, leads)
	}
}

// ListPlain serve contatos e indicações, sem histórico.
func (h *LeadHandler) ListPlain(leadType entity.LeadType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leads, err := h.GetLeads.ExecutePlain(r.Context(), leadType)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load leads.")
			return
		}
		writeJSON(w, http.StatusOK, leads)
	}
}

// Capture recebe a submissão de formulário do site para um tipo fixo.
func (h *LeadHandler) Capture(leadType entity.LeadType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input usecase.CreateLeadInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON.")
			return
		}
		input.LeadType = string(leadType)

		output, err := h.CreateLead.Execute(r.Context(), input)
		if err != nil {
			if usecase.IsDomainError(err) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to capture lead.")
			return
		}

		middleware.RecordLeadCaptured(string(leadType))
		writeJSON(w, http.StatusCreated, output)
	}
}

// HandleGetByID resolve /api/leads/{leadType}/{id}. O tipo vem no slug
// do painel ("Free-Trial", "Subscription").
func (h *LeadHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "leadType")
	id := chi.URLParam(r, "id")

	leadType, err := entity.ParseLeadType(strings.ReplaceAll(slug, "-", " "))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid lead type.")
		return
	}

	lead, getErr := h.GetLeads.GetByID(r.Context(), leadType, id)
	if getErr != nil {
		if usecase.IsDomainError(getErr) {
			writeError(w, http.StatusNotFound, "Lead not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load lead.")
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Dashboard.Execute(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load dashboard.")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleUpdateStatus é a action de transição explícita: sempre 200 com
// mensagem, igual ao contrato do painel.
func (h *LeadHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON.")
		return
	}

	result := h.UpdateStatus.Execute(r.Context(), input)
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
