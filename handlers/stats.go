package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/EmanuelGdA/AnjoAnimal/models"
)

// Stats is the office dashboard summary.
type Stats struct {
	Total          int     `json:"total"`
	Resolved       int     `json:"resolved"`
	Pending        int     `json:"pending"`
	Urgent         int     `json:"urgent"`
	TopRegion      string  `json:"topRegion"`
	ResolutionRate float64 `json:"resolutionRate"` // percentage, 0 when total is 0
}

// GetStats aggregates the current collection.
func (h *ReportHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	reports := h.store.ListReports(r.Context())
	stats := computeStats(reports)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// computeStats counts totals, resolved/pending, urgent cases (Alta or
// Emergência) and the region with the most reports. Region ties go to the
// region seen first in the collection order.
func computeStats(reports []models.Report) Stats {
	stats := Stats{TopRegion: "-"}
	stats.Total = len(reports)

	regionCounts := map[string]int{}
	regionOrder := []string{}

	for _, report := range reports {
		switch report.Status {
		case models.StatusResolved:
			stats.Resolved++
		case models.StatusPending:
			stats.Pending++
		}
		if report.Urgency == models.UrgencyHigh || report.Urgency == models.UrgencyEmergency {
			stats.Urgent++
		}

		if _, seen := regionCounts[report.Region]; !seen {
			regionOrder = append(regionOrder, report.Region)
		}
		regionCounts[report.Region]++
	}

	maxCount := 0
	for _, region := range regionOrder {
		if regionCounts[region] > maxCount {
			maxCount = regionCounts[region]
			stats.TopRegion = region
		}
	}

	if stats.Total > 0 {
		stats.ResolutionRate = float64(stats.Resolved) / float64(stats.Total) * 100
	}

	return stats
}
