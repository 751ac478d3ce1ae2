package models

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var protocolPattern = regexp.MustCompile(`^\d{4}\d{1,4}$`)

func TestNewProtocol_Pattern(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 500; i++ {
		protocol := NewProtocol(now)
		assert.Regexp(t, protocolPattern, protocol)
		assert.Equal(t, "2024", protocol[:4])
	}
}

func TestNewProtocol_ConcurrentIntake(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	const workers = 8
	results := make([][]string, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				results[w] = append(results[w], NewProtocol(now))
			}
		}(w)
	}
	wg.Wait()

	for _, batch := range results {
		require.Len(t, batch, 200)
		for _, protocol := range batch {
			assert.Regexp(t, protocolPattern, protocol)
		}
	}
}

func TestNewReport_CreationInvariants(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	form := ReportForm{
		Origin:      OriginPhone,
		Urgency:     UrgencyHigh,
		Description: "Cão ferido",
		Address:     "Rua A, 10",
		Region:      "Cajuru",
	}
	report := NewReport(form, []string{"data:image/jpeg;base64,AAAA"}, now)

	assert.Equal(t, StatusPending, report.Status)
	assert.Equal(t, UrgencyHigh, report.Urgency)
	require.NotNil(t, report.Visits)
	assert.Empty(t, report.Visits)
	assert.LessOrEqual(t, len(report.Images), MaxImages)
	assert.Regexp(t, protocolPattern, report.Protocol)
	assert.Equal(t, "2024-03-15T10:30:00Z", report.Date)
	assert.Empty(t, report.ID, "id belongs to the store")
}

func TestNewReport_NilImagesBecomeEmptySlice(t *testing.T) {
	report := NewReport(ReportForm{}, nil, time.Now())
	require.NotNil(t, report.Images)
	assert.Empty(t, report.Images)
}

func TestPruneVisit_RemovesSingleMatch(t *testing.T) {
	visits := []Visit{
		{Date: "2024-01-01T10:00:00Z", Description: "Primeira visita", Author: "ana@gabinete.br"},
		{Date: "2024-01-02T10:00:00Z", Description: "Segunda visita", Author: "ana@gabinete.br"},
	}

	pruned, found := PruneVisit(visits, visits[0])
	assert.True(t, found)
	require.Len(t, pruned, 1)
	assert.Equal(t, "Segunda visita", pruned[0].Description)
}

func TestPruneVisit_AbsentValueIsNoOp(t *testing.T) {
	visits := []Visit{
		{Date: "2024-01-01T10:00:00Z", Description: "Visita", Author: "Equipe"},
	}
	ghost := Visit{Date: "2024-02-02T10:00:00Z", Description: "Nunca existiu", Author: "Equipe"}

	pruned, found := PruneVisit(visits, ghost)
	assert.False(t, found)
	assert.Equal(t, visits, pruned)

	pruned, found = PruneVisit(nil, ghost)
	assert.False(t, found)
	assert.Empty(t, pruned)
}

// Two visits with identical content are indistinguishable under
// value-equality removal: deleting "one of them" removes an arbitrary one.
// This is a documented defect of the removal contract, not a guarantee of
// which element goes.
func TestPruneVisit_IdenticalVisitsAreAmbiguous(t *testing.T) {
	twin := Visit{Date: "2024-01-01T10:00:00Z", Description: "Ração entregue", Author: "Equipe"}
	visits := []Visit{twin, twin}

	pruned, found := PruneVisit(visits, twin)
	assert.True(t, found)
	require.Len(t, pruned, 1)
	// The survivor is equal to the removed value; there is no way to tell
	// which of the two was deleted.
	assert.Equal(t, twin, pruned[0])
}

func TestEnumValidators(t *testing.T) {
	assert.True(t, ValidStatus(StatusAnalysis))
	assert.False(t, ValidStatus("Arquivado"))

	assert.True(t, ValidUrgency(UrgencyEmergency))
	assert.False(t, ValidUrgency("Altíssima"))

	assert.True(t, ValidOrigin(OriginInPerson))
	assert.False(t, ValidOrigin("Fax"))

	assert.True(t, ValidRegion("Santa Felicidade"))
	assert.False(t, ValidRegion("Centro Cívico"))
}
