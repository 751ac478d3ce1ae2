// Package notify composes WhatsApp deep links pre-filled with the office's
// message templates. Nothing is sent from here: the link is handed to the
// operator's device, which owns delivery.
package notify

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/EmanuelGdA/AnjoAnimal/models"
)

// ErrNoPhone indicates the report has no contact phone on file.
var ErrNoPhone = errors.New("report has no phone on file")

// Composer builds whatsapp://send links for a given office identity.
type Composer struct {
	countryCode string
	officeName  string
}

// NewComposer configures the international calling prefix and the office
// name used in the templates.
func NewComposer(countryCode, officeName string) *Composer {
	return &Composer{countryCode: countryCode, officeName: officeName}
}

// ContactLink builds the general first-contact message for a report.
func (c *Composer) ContactLink(report *models.Report) (string, error) {
	message := fmt.Sprintf("Olá %s, somos do %s. Sobre sua denúncia (Prot. %s)...",
		report.Name, c.officeName, report.Protocol)
	return c.link(report.Phone, message)
}

// VisitUpdateLink builds the follow-up message for a specific visit note.
func (c *Composer) VisitUpdateLink(report *models.Report, visitText string) (string, error) {
	message := fmt.Sprintf(
		"🏛️ *Atualização %s*\n\nOlá %s, temos uma novidade sobre o protocolo *%s*:\n\n\"%s\"\n\nQualquer dúvida, estamos à disposição!",
		c.officeName, report.Name, report.Protocol, visitText)
	return c.link(report.Phone, message)
}

func (c *Composer) link(phone, message string) (string, error) {
	digits := models.PhoneDigits(phone)
	if digits == "" {
		return "", ErrNoPhone
	}
	return fmt.Sprintf("whatsapp://send?phone=%s%s&text=%s",
		c.countryCode, digits, url.QueryEscape(message)), nil
}
