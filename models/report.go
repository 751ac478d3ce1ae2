// models.go equivalent for the Anjo Animal case office.
// Defines the Report document stored in Firestore and its embedded Visit records.

package models

import (
	"fmt"
	"math/rand"
	"time"
)

// Status defines the handling state of a report. Any status is reachable
// from any other; there is no terminal state.
type Status string

const (
	StatusPending  Status = "Pendente"
	StatusAnalysis Status = "Em Análise"
	StatusResolved Status = "Resolvido"
)

// ValidStatus reports whether s is one of the three known states.
func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusAnalysis || s == StatusResolved
}

// Urgency is set at creation and never edited afterwards.
type Urgency string

const (
	UrgencyLow       Urgency = "Baixa"
	UrgencyMedium    Urgency = "Média"
	UrgencyHigh      Urgency = "Alta"
	UrgencyEmergency Urgency = "Emergência"
)

func ValidUrgency(u Urgency) bool {
	return u == UrgencyLow || u == UrgencyMedium || u == UrgencyHigh || u == UrgencyEmergency
}

// Origin is the channel the complaint arrived through.
type Origin string

const (
	OriginWhatsApp Origin = "WhatsApp"
	OriginPhone    Origin = "Telefone"
	OriginEmail    Origin = "E-mail"
	OriginInPerson Origin = "Presencial"
)

func ValidOrigin(o Origin) bool {
	return o == OriginWhatsApp || o == OriginPhone || o == OriginEmail || o == OriginInPerson
}

// Regions is the fixed district list offered at intake. The first entry is
// the intake default.
var Regions = []string{
	"Matriz", "Portão", "Cajuru", "Boa Vista",
	"Boqueirão", "Pinheirinho", "CIC", "Bairro Novo",
	"Santa Felicidade", "Tatuquara",
}

func ValidRegion(r string) bool {
	for _, known := range Regions {
		if known == r {
			return true
		}
	}
	return false
}

// UrgencyColors maps each urgency to the hex color used by the map markers
// and rendered documents.
var UrgencyColors = map[Urgency]string{
	UrgencyEmergency: "#E74C3C",
	UrgencyHigh:      "#E67E22",
	UrgencyMedium:    "#F1C40F",
	UrgencyLow:       "#27AE60",
}

// MaxImages bounds the evidence photos attached at creation time.
const MaxImages = 5

// GeoPoint is the geocoded location of a report's address. Absent when
// geocoding failed at intake.
type GeoPoint struct {
	Latitude  float64 `firestore:"latitude" json:"latitude"`
	Longitude float64 `firestore:"longitude" json:"longitude"`
}

// Visit is one field-visit or follow-up note, embedded in the report
// document. Visits carry no identifier of their own: removal matches the
// full value, so two textually identical visits are indistinguishable.
type Visit struct {
	Date        string `firestore:"date" json:"date"` // ISO-8601
	Description string `firestore:"description" json:"description"`
	Author      string `firestore:"author" json:"author"` // operator e-mail, or "Equipe"
}

// Report is the sole domain entity; maps directly to a document in the
// "reports" collection.
type Report struct {
	ID            string    `firestore:"-" json:"id"`              // store-assigned, immutable
	Protocol      string    `firestore:"protocol" json:"protocol"` // client-generated ticket code
	Status        Status    `firestore:"status" json:"status"`
	Urgency       Urgency   `firestore:"urgency" json:"urgency"`
	Origin        Origin    `firestore:"origin" json:"origin"`
	Name          string    `firestore:"name" json:"name"`
	Phone         string    `firestore:"phone" json:"phone"` // pre-formatted "(DD) DDDDD-DDDD"
	Description   string    `firestore:"description" json:"description"`
	Address       string    `firestore:"address" json:"address"`
	Region        string    `firestore:"region" json:"region"`
	Images        []string  `firestore:"images" json:"images"` // data URIs, at most MaxImages
	ExactLocation *GeoPoint `firestore:"exactLocation" json:"exactLocation,omitempty"`
	Date          string    `firestore:"date" json:"date"` // ISO-8601 creation timestamp
	Visits        []Visit   `firestore:"visits" json:"visits"`
}

// NewProtocol builds the human-facing ticket code: current year followed by
// a random number in [0, 9999]. Not collision-checked; two reports filed the
// same year can share a protocol. The top-level rand source is locked, so
// concurrent intake submissions are safe.
func NewProtocol(now time.Time) string {
	return fmt.Sprintf("%d%d", now.Year(), rand.Intn(10000))
}

// ReportForm carries the intake fields the operator fills in. Everything
// else on the report (protocol, date, status, visits, id) is assigned at
// materialization or by the store.
type ReportForm struct {
	Origin        Origin
	Urgency       Urgency
	Name          string
	Phone         string
	Description   string
	Address       string
	Region        string
	ExactLocation *GeoPoint
}

// NewReport materializes a fresh report from an intake form: generated
// protocol, creation timestamp, status Pendente and an empty visit history.
// The store-assigned id is filled in after persistence.
func NewReport(form ReportForm, images []string, now time.Time) Report {
	if images == nil {
		images = []string{}
	}
	return Report{
		Protocol:      NewProtocol(now),
		Status:        StatusPending,
		Urgency:       form.Urgency,
		Origin:        form.Origin,
		Name:          form.Name,
		Phone:         form.Phone,
		Description:   form.Description,
		Address:       form.Address,
		Region:        form.Region,
		Images:        images,
		ExactLocation: form.ExactLocation,
		Date:          now.UTC().Format(time.RFC3339),
		Visits:        []Visit{},
	}
}

// PruneVisit returns visits without the first element structurally equal to
// target, plus whether a match was found. This mirrors the store's
// value-equality removal: when two visits carry identical content, which one
// disappears is ambiguous. Absence of target leaves the list unchanged.
func PruneVisit(visits []Visit, target Visit) ([]Visit, bool) {
	for i, v := range visits {
		if v == target {
			pruned := make([]Visit, 0, len(visits)-1)
			pruned = append(pruned, visits[:i]...)
			pruned = append(pruned, visits[i+1:]...)
			return pruned, true
		}
	}
	return visits, false
}
