package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EmanuelGdA/AnjoAnimal/models"
)

func TestComputeStats_EmptyCollection(t *testing.T) {
	stats := computeStats(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Resolved)
	assert.Equal(t, 0, stats.Pending)
	assert.Equal(t, 0, stats.Urgent)
	assert.Equal(t, "-", stats.TopRegion)
	// Resolution rate is defined as zero for an empty collection, never a
	// division by zero.
	assert.Equal(t, 0.0, stats.ResolutionRate)
}

func TestComputeStats_Counts(t *testing.T) {
	reports := []models.Report{
		{Status: models.StatusResolved, Urgency: models.UrgencyHigh, Region: "Cajuru"},
		{Status: models.StatusPending, Urgency: models.UrgencyLow, Region: "Portão"},
		{Status: models.StatusAnalysis, Urgency: models.UrgencyEmergency, Region: "Cajuru"},
		{Status: models.StatusPending, Urgency: models.UrgencyMedium, Region: "Matriz"},
	}

	stats := computeStats(reports)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Resolved)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 2, stats.Urgent) // Alta + Emergência
	assert.Equal(t, "Cajuru", stats.TopRegion)
	assert.InDelta(t, 25.0, stats.ResolutionRate, 0.001)
	assert.LessOrEqual(t, stats.Resolved+stats.Pending, stats.Total)
}

func TestComputeStats_ResolvedPlusPendingNeverExceedsTotal(t *testing.T) {
	reports := []models.Report{
		{Status: models.StatusAnalysis},
		{Status: models.StatusAnalysis},
		{Status: models.StatusResolved},
	}

	stats := computeStats(reports)
	assert.LessOrEqual(t, stats.Resolved+stats.Pending, stats.Total)
}

func TestComputeStats_RegionTieGoesToFirstSeen(t *testing.T) {
	reports := []models.Report{
		{Region: "Boqueirão"},
		{Region: "Tatuquara"},
		{Region: "Tatuquara"},
		{Region: "Boqueirão"},
	}

	stats := computeStats(reports)
	assert.Equal(t, "Boqueirão", stats.TopRegion)
}

func TestComputeStats_AllResolved(t *testing.T) {
	reports := []models.Report{
		{Status: models.StatusResolved},
		{Status: models.StatusResolved},
	}

	stats := computeStats(reports)
	assert.InDelta(t, 100.0, stats.ResolutionRate, 0.001)
	assert.Equal(t, 0, stats.Pending)
}
