package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/EmanuelGdA/AnjoAnimal/middleware"
	"github.com/EmanuelGdA/AnjoAnimal/models"
)

type AddVisitRequest struct {
	Description string `json:"description"`
}

// AddVisitResponse carries the visit the store confirmed, plus a ready-made
// WhatsApp link for forwarding the update when the report has a phone.
type AddVisitResponse struct {
	Success      bool         `json:"success"`
	Visit        models.Visit `json:"visit"`
	WhatsAppLink string       `json:"whatsappLink,omitempty"`
}

// AddVisit appends a visit note to a report's history. The note is stamped
// with the acting operator's identity; nothing is recorded locally until the
// store confirms.
func (h *ReportHandler) AddVisit(w http.ResponseWriter, r *http.Request) {
	var req AddVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	text := strings.TrimSpace(req.Description)
	if text == "" {
		writeError(w, "Descreva o que foi feito.", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	author := middleware.Identity(r.Context())

	visit, ok := h.store.AddVisit(r.Context(), id, text, author)
	if !ok {
		writeError(w, "Não foi possível salvar.", http.StatusBadGateway)
		return
	}

	h.logger.Info("visit recorded", zap.String("id", id), zap.String("author", author))

	resp := AddVisitResponse{Success: true, Visit: visit}
	if report, err := h.store.GetReport(r.Context(), id); err == nil {
		if link, err := h.composer.VisitUpdateLink(report, visit.Description); err == nil {
			resp.WhatsAppLink = link
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// RemoveVisitResponse returns the visit list as it stands after pruning the
// removed value.
type RemoveVisitResponse struct {
	Success bool           `json:"success"`
	Visits  []models.Visit `json:"visits"`
}

// RemoveVisit deletes one visit from the history. The request body carries
// the exact visit record; the store matches it by full value equality, so
// when two visits have identical content either one may be the casualty.
func (h *ReportHandler) RemoveVisit(w http.ResponseWriter, r *http.Request) {
	var visit models.Visit
	if err := json.NewDecoder(r.Body).Decode(&visit); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	report, err := h.store.GetReport(r.Context(), id)
	if err != nil {
		writeError(w, "Denúncia não encontrada.", http.StatusNotFound)
		return
	}

	if !h.store.RemoveVisit(r.Context(), id, visit) {
		writeError(w, "Não foi possível remover.", http.StatusBadGateway)
		return
	}

	h.logger.Info("visit removed", zap.String("id", id))

	pruned, _ := models.PruneVisit(report.Visits, visit)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RemoveVisitResponse{
		Success: true,
		Visits:  pruned,
	})
}
