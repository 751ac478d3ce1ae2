package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/EmanuelGdA/AnjoAnimal/db"
	"github.com/EmanuelGdA/AnjoAnimal/geo"
	"github.com/EmanuelGdA/AnjoAnimal/models"
	"github.com/EmanuelGdA/AnjoAnimal/notify"
)

// ReportHandler owns the report list, intake and lifecycle endpoints.
type ReportHandler struct {
	store    *db.Store
	geocoder *geo.Geocoder
	composer *notify.Composer
	logger   *zap.Logger
}

func NewReportHandler(store *db.Store, geocoder *geo.Geocoder, composer *notify.Composer, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		store:    store,
		geocoder: geocoder,
		composer: composer,
		logger:   logger,
	}
}

// List returns the collection newest-first, optionally filtered by the q
// parameter.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports := h.store.ListReports(r.Context())
	filtered := filterReports(reports, r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"reports": filtered,
		"count":   len(filtered),
	})
}

// filterReports applies the office's search semantics: protocol matches are
// exact-substring and case-sensitive, description and address matches are
// case-insensitive. An empty query returns the collection untouched; a query
// matching nothing returns an empty slice, never nil.
func filterReports(reports []models.Report, query string) []models.Report {
	if query == "" {
		return reports
	}

	lowered := strings.ToLower(query)
	filtered := []models.Report{}
	for _, report := range reports {
		if strings.Contains(report.Protocol, query) ||
			strings.Contains(strings.ToLower(report.Description), lowered) ||
			strings.Contains(strings.ToLower(report.Address), lowered) {
			filtered = append(filtered, report)
		}
	}
	return filtered
}

// CreateReportRequest is the intake form. Description and address are
// required; everything else is optional or defaulted.
type CreateReportRequest struct {
	Origin      models.Origin  `json:"origin"`
	Urgency     models.Urgency `json:"urgency"`
	Name        string         `json:"name"`
	Phone       string         `json:"phone"`
	Description string         `json:"description"`
	Address     string         `json:"address"`
	Region      string         `json:"region"`
	Images      []string       `json:"images"`
}

// Create files a new report. Geocoding of the address is best-effort: when
// it fails the report is created without coordinates.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Description = strings.TrimSpace(req.Description)
	req.Address = strings.TrimSpace(req.Address)
	if req.Description == "" || req.Address == "" {
		writeError(w, "Preencha descrição e endereço.", http.StatusBadRequest)
		return
	}

	if len(req.Images) > models.MaxImages {
		writeError(w, "Você pode adicionar no máximo 5 fotos.", http.StatusBadRequest)
		return
	}

	if req.Origin == "" {
		req.Origin = models.OriginWhatsApp
	} else if !models.ValidOrigin(req.Origin) {
		writeError(w, "Canal de origem inválido.", http.StatusBadRequest)
		return
	}

	if req.Urgency == "" {
		req.Urgency = models.UrgencyLow
	} else if !models.ValidUrgency(req.Urgency) {
		writeError(w, "Urgência inválida.", http.StatusBadRequest)
		return
	}

	if req.Region == "" {
		req.Region = models.Regions[0]
	} else if !models.ValidRegion(req.Region) {
		writeError(w, "Região inválida.", http.StatusBadRequest)
		return
	}

	location, err := h.geocoder.Forward(r.Context(), req.Address)
	if err != nil {
		h.logger.Warn("geocoding failed, filing report without coordinates",
			zap.String("address", req.Address), zap.Error(err))
	}

	form := models.ReportForm{
		Origin:        req.Origin,
		Urgency:       req.Urgency,
		Name:          strings.TrimSpace(req.Name),
		Phone:         models.FormatPhone(req.Phone),
		Description:   req.Description,
		Address:       req.Address,
		Region:        req.Region,
		ExactLocation: location,
	}

	report := h.store.CreateReport(r.Context(), form, req.Images)
	if report == nil {
		writeError(w, "Não foi possível registrar a denúncia.", http.StatusBadGateway)
		return
	}

	h.logger.Info("report created",
		zap.String("id", report.ID),
		zap.String("protocol", report.Protocol),
		zap.String("urgency", string(report.Urgency)),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(report)
}

// Get returns one report by id.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.store.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, "Denúncia não encontrada.", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

type UpdateStatusRequest struct {
	Status models.Status `json:"status"`
}

// UpdateStatus overwrites the report status. Every status is reachable from
// every other; the response is sent only after the store confirms.
func (h *ReportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !models.ValidStatus(req.Status) {
		writeError(w, "Status inválido.", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	if !h.store.UpdateStatus(r.Context(), id, req.Status) {
		writeError(w, "Não foi possível atualizar o status.", http.StatusBadGateway)
		return
	}

	h.logger.Info("status updated", zap.String("id", id), zap.String("status", string(req.Status)))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"status":  req.Status,
	})
}

// Delete removes a report permanently.
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.store.DeleteReport(r.Context(), id) {
		writeError(w, "Não foi possível excluir a denúncia.", http.StatusBadGateway)
		return
	}

	h.logger.Info("report deleted", zap.String("id", id))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// WhatsAppLink hands back a deep link for contacting the complainant: the
// general template by default, the visit-update template when the visit
// parameter carries the note text. Reports without a phone cannot be
// contacted.
func (h *ReportHandler) WhatsAppLink(w http.ResponseWriter, r *http.Request) {
	report, err := h.store.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, "Denúncia não encontrada.", http.StatusNotFound)
		return
	}

	var link string
	if visitText := r.URL.Query().Get("visit"); visitText != "" {
		link, err = h.composer.VisitUpdateLink(report, visitText)
	} else {
		link, err = h.composer.ContactLink(report)
	}
	if err != nil {
		writeError(w, "Esta denúncia não possui telefone cadastrado.", http.StatusPreconditionFailed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"link": link})
}
