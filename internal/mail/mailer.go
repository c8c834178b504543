package mail

import (
	"encoding/base64"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/mbodji/metallerie-backend/internal/models"
)

// Mailer sends quote notifications through SendGrid. An empty API key turns
// every send into a logged no-op so local development never requires
// credentials.
type Mailer struct {
	apiKey   string
	from     string
	workshop string
}

func NewMailer(apiKey, from, workshop string) *Mailer {
	return &Mailer{apiKey: apiKey, from: from, workshop: workshop}
}

// QuoteCreated dispatches the customer confirmation (with the quote PDF when
// available) and the workshop notification. Best-effort: failures are logged
// and dropped, never retried.
func (m *Mailer) QuoteCreated(quote *models.Quote, pdfData []byte) {
	subject := "Votre demande de devis " + quote.Numero
	body := fmt.Sprintf(
		"Bonjour %s,\n\nNous avons bien reçu votre demande de devis %s d'un montant de %.2f € TTC.\n"+
			"Il est valable jusqu'au %s. Nous revenons vers vous sous 48h ouvrées.\n\nL'atelier",
		quote.User.Prenom, quote.Numero, quote.TotalTTC, quote.DateExpiration.Format("02/01/2006"))
	if err := m.send(quote.User.Email, subject, body, pdfData, "devis-"+quote.Numero+".pdf"); err != nil {
		log.Printf("[mail] confirmation client devis %s: %v", quote.Numero, err)
	}

	wsBody := fmt.Sprintf("Nouvelle demande de devis %s (%.2f € TTC) de %s %s <%s>.",
		quote.Numero, quote.TotalTTC, quote.User.Prenom, quote.User.Nom, quote.User.Email)
	if err := m.send(m.workshop, "Nouvelle demande "+quote.Numero, wsBody, nil, ""); err != nil {
		log.Printf("[mail] notification atelier devis %s: %v", quote.Numero, err)
	}
}

func (m *Mailer) send(to, subject, body string, attachment []byte, filename string) error {
	if m.apiKey == "" {
		log.Printf("[mail] SENDGRID_API_KEY absent, envoi ignoré: to=%s subject=%q", to, subject)
		return nil
	}
	if to == "" {
		return fmt.Errorf("destinataire vide")
	}
	from := sgmail.NewEmail("Métallerie Durand", m.from)
	dest := sgmail.NewEmail("", to)
	htmlBody := fmt.Sprintf("<pre>%s</pre>", body)
	message := sgmail.NewSingleEmail(from, subject, dest, body, htmlBody)
	if len(attachment) > 0 {
		att := sgmail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(attachment))
		att.SetType("application/pdf")
		att.SetFilename(filename)
		att.SetDisposition("attachment")
		message.AddAttachment(att)
	}
	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}
	return nil
}
