// Package email implementa el envío de correo a través de la API v3 de SendGrid.
package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/tu-usuario/municare-api/internal/application/campaign"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

var _ campaign.EmailSender = (*SendGridSender)(nil)

// SendGridSender implementa campaign.EmailSender contra la API v3 de SendGrid.
type SendGridSender struct {
	key  string
	from *sgmail.Email
}

// NewSendGridSender construye el remitente. fromName aparece como nombre
// visible del remitente en la bandeja del destinatario.
func NewSendGridSender(apiKey, fromName, fromEmail string) *SendGridSender {
	return &SendGridSender{
		key:  apiKey,
		from: sgmail.NewEmail(fromName, fromEmail),
	}
}

// Send entrega un correo a un destinatario. Un fallo aquí cuenta como
// destinatario fallido en la campaña; el caso de uso no reintenta.
func (s *SendGridSender) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	m := s.build(to, subject, htmlBody, textBody)

	req := sendgrid.GetRequest(s.key, sendGridEndpoint, sendGridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid: llamada fallida: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

func (s *SendGridSender) build(to, subject, htmlBody, textBody string) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail("", to))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)

	if textBody != "" {
		m.AddContent(sgmail.NewContent("text/plain", textBody))
	}
	if htmlBody != "" {
		m.AddContent(sgmail.NewContent("text/html", htmlBody))
	}
	return m
}
