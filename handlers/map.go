package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/EmanuelGdA/AnjoAnimal/models"
)

// popupSanitizer strips the characters that would break the inline marker
// script: quotes and newlines become spaces.
var popupSanitizer = strings.NewReplacer(`"`, " ", `'`, " ", "\n", " ", "\r", " ")

const mapDocumentHead = `<!DOCTYPE html>
<html>
<head>
  <meta name="viewport" content="width=device-width, initial-scale=1.0, maximum-scale=1.0, user-scalable=no" />
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  <style> body { margin: 0; padding: 0; } #map { height: 100vh; width: 100vw; } </style>
</head>
<body>
  <div id="map"></div>
  <script>
    var map = L.map('map').setView([-15.7942, -47.8822], 4);

    L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
      maxZoom: 19,
      attribution: '© OpenStreetMap'
    }).addTo(map);

`

const mapDocumentTail = `  </script>
</body>
</html>
`

// GetMap serves a self-contained Leaflet document with one marker per
// report that has valid coordinates. Rebuilt from a fresh fetch on every
// request.
func (h *ReportHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	reports := h.store.ListReports(r.Context())

	var markers strings.Builder
	for _, report := range reports {
		if report.ExactLocation == nil {
			continue
		}
		markers.WriteString(markerScript(report))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, mapDocumentHead, markers.String(), mapDocumentTail)
}

// markerScript emits one circle marker colored by urgency, with the
// protocol and description in the popup.
func markerScript(report models.Report) string {
	title := popupSanitizer.Replace("Protocolo " + report.Protocol)
	desc := popupSanitizer.Replace(report.Description)
	color := models.UrgencyColors[report.Urgency]
	if color == "" {
		color = models.UrgencyColors[models.UrgencyLow]
	}

	return fmt.Sprintf(
		"    L.circleMarker([%f, %f], {color: '%s', radius: 9, fillOpacity: 0.8})"+
			".addTo(map).bindPopup('<b>%s</b><br>%s');\n",
		report.ExactLocation.Latitude, report.ExactLocation.Longitude,
		color, title, desc,
	)
}
