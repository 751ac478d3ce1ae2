package handlers

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/EmanuelGdA/AnjoAnimal/models"
)

// caseDocumentTmpl renders the printable case report: the office prints it
// to PDF from the browser or a share sheet.
var caseDocumentTmpl = template.Must(template.New("case").Parse(`<html>
  <body style="font-family: Helvetica, Arial; padding: 20px;">
    <h1 style="color: #2E86C1;">Denúncia Anjo Animal</h1>
    <p><strong>Protocolo:</strong> {{.Protocol}}</p>
    <hr />
    <h3>Status: {{.Status}}</h3>
    <p><strong>Endereço:</strong> {{.Address}} - {{.Region}}</p>

    <h3>Dados Internos</h3>
    <p><strong>Origem:</strong> {{.Origin}}</p>
    <p><strong>Denunciante:</strong> {{.Name}}</p>
    <p><strong>Telefone:</strong> {{.Phone}}</p>

    <h3>Descrição Inicial</h3>
    <p style="background-color: #f0f0f0; padding: 10px;">{{.Description}}</p>

    <h3>Histórico de Visitas / Tratativas</h3>
    {{if .Visits}}{{range .Visits}}
    <div style="background-color: #f9f9f9; padding: 10px; margin-bottom: 5px; border-left: 3px solid #2E86C1;">
      <p style="margin: 0; font-size: 10px; color: grey;">{{.When}} - {{.Author}}</p>
      <p style="margin: 5px 0 0 0;">{{.Description}}</p>
    </div>
    {{end}}{{else}}<p>Nenhuma visita registrada.</p>{{end}}

    <h3>Evidências</h3>
    {{if .Images}}{{range .Images}}
    <img src="{{.}}" style="width: 100%; max-height: 300px; object-fit: contain; margin-bottom: 10px;" />
    {{end}}{{else}}<p>Sem fotos.</p>{{end}}
  </body>
</html>
`))

type caseDocumentVisit struct {
	When        string
	Author      string
	Description string
}

type caseDocumentView struct {
	Protocol    string
	Status      models.Status
	Address     string
	Region      string
	Origin      models.Origin
	Name        string
	Phone       string
	Description string
	Visits      []caseDocumentVisit
	Images      []template.URL
}

func newCaseDocumentView(report *models.Report) caseDocumentView {
	view := caseDocumentView{
		Protocol:    report.Protocol,
		Status:      report.Status,
		Address:     report.Address,
		Region:      report.Region,
		Origin:      report.Origin,
		Name:        report.Name,
		Phone:       report.Phone,
		Description: report.Description,
	}
	if view.Name == "" {
		view.Name = "Anônimo"
	}
	if view.Phone == "" {
		view.Phone = "Não informado"
	}
	for _, visit := range report.Visits {
		view.Visits = append(view.Visits, caseDocumentVisit{
			When:        formatVisitDate(visit.Date),
			Author:      visit.Author,
			Description: visit.Description,
		})
	}
	for _, img := range report.Images {
		// Embedded data URIs are our own payloads; mark them safe for the
		// template's URL context.
		view.Images = append(view.Images, template.URL(img))
	}
	return view
}

func formatVisitDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006 15:04")
}

// ExportDocument renders one report as a printable HTML case document.
func (h *ReportHandler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	report, err := h.store.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, "Denúncia não encontrada.", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := caseDocumentTmpl.Execute(w, newCaseDocumentView(report)); err != nil {
		h.logger.Error("failed to render case document", zap.String("id", report.ID), zap.Error(err))
	}
}

var exportHeader = []string{
	"Protocolo", "Status", "Urgência", "Origem", "Denunciante",
	"Telefone", "Endereço", "Região", "Data", "Visitas", "Descrição",
}

func exportRow(report models.Report) []string {
	return []string{
		report.Protocol,
		string(report.Status),
		string(report.Urgency),
		string(report.Origin),
		report.Name,
		report.Phone,
		report.Address,
		report.Region,
		report.Date,
		strconv.Itoa(len(report.Visits)),
		report.Description,
	}
}

// ExportCSV streams the full collection as CSV.
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	reports := h.store.ListReports(r.Context())

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=denuncias_%s.csv", timestamp))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(exportHeader); err != nil {
		h.logger.Error("failed to write CSV header", zap.Error(err))
		return
	}
	for _, report := range reports {
		if err := writer.Write(exportRow(report)); err != nil {
			h.logger.Error("failed to write CSV row", zap.String("protocol", report.Protocol), zap.Error(err))
			return
		}
	}

	h.logger.Info("CSV export", zap.Int("reports", len(reports)))
}

// ExportXLSX streams the full collection as a spreadsheet.
func (h *ReportHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	reports := h.store.ListReports(r.Context())

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Denúncias"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		h.logger.Error("failed to prepare spreadsheet", zap.Error(err))
		writeError(w, "Não foi possível gerar a planilha.", http.StatusInternalServerError)
		return
	}

	header := make([]interface{}, len(exportHeader))
	for i, col := range exportHeader {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		h.logger.Error("failed to write spreadsheet header", zap.Error(err))
		writeError(w, "Não foi possível gerar a planilha.", http.StatusInternalServerError)
		return
	}

	for i, report := range reports {
		row := exportRow(report)
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			h.logger.Error("failed to write spreadsheet row", zap.String("protocol", report.Protocol), zap.Error(err))
			writeError(w, "Não foi possível gerar a planilha.", http.StatusInternalServerError)
			return
		}
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=denuncias_%s.xlsx", timestamp))

	if err := f.Write(w); err != nil {
		h.logger.Error("failed to stream spreadsheet", zap.Error(err))
		return
	}

	h.logger.Info("XLSX export", zap.Int("reports", len(reports)))
}
