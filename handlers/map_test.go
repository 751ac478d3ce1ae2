package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EmanuelGdA/AnjoAnimal/models"
)

func TestMarkerScript(t *testing.T) {
	report := models.Report{
		Protocol:      "20241234",
		Urgency:       models.UrgencyEmergency,
		Description:   "Cão ferido",
		ExactLocation: &models.GeoPoint{Latitude: -25.4284, Longitude: -49.2733},
	}

	script := markerScript(report)
	assert.Contains(t, script, "L.circleMarker([-25.428400, -49.273300]")
	assert.Contains(t, script, "#E74C3C") // Emergência color
	assert.Contains(t, script, "Protocolo 20241234")
	assert.Contains(t, script, "Cão ferido")
}

func TestMarkerScript_SanitizesPopupText(t *testing.T) {
	report := models.Report{
		Protocol:      "20240001",
		Urgency:       models.UrgencyLow,
		Description:   "linha um\nlinha \"dois\" e 'três'",
		ExactLocation: &models.GeoPoint{Latitude: 1, Longitude: 2},
	}

	script := markerScript(report)
	assert.NotContains(t, script, "\n linha")
	assert.NotContains(t, script, `"dois"`)
	assert.NotContains(t, script, "'três'")
	assert.Contains(t, script, "linha um linha  dois  e  três")
}

func TestMarkerScript_UnknownUrgencyFallsBackToLowColor(t *testing.T) {
	report := models.Report{
		Protocol:      "20240002",
		Urgency:       "Desconhecida",
		ExactLocation: &models.GeoPoint{Latitude: 1, Longitude: 2},
	}

	assert.Contains(t, markerScript(report), models.UrgencyColors[models.UrgencyLow])
}
