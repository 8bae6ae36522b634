package campaign

import "context"

// EmailSender puerto de salida hacia el proveedor de correo (SendGrid).
// Un error por destinatario no aborta la campaña: se registra y se cuenta.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SMSSender puerto de salida hacia el proveedor de mensajería HTTP.
type SMSSender interface {
	Send(ctx context.Context, to, message string) error
}
