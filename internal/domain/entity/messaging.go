package entity

import "time"

// Canales de envío registrados en emailLogs.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Resultados por destinatario.
const (
	SendOK     = "sent"
	SendFailed = "failed"
)

// EmailLog es el resultado de un envío individual dentro de una campaña
// (emails y SMS comparten la colección, distinguidos por Channel).
type EmailLog struct {
	BatchID   string    `dynamodbav:"batch_id" json:"batch_id"`
	Recipient string    `dynamodbav:"recipient" json:"recipient"`
	Channel   string    `dynamodbav:"channel" json:"channel"`
	Status    string    `dynamodbav:"status" json:"status"`
	Error     string    `dynamodbav:"error,omitempty" json:"error,omitempty"`
	SentAt    time.Time `dynamodbav:"sent_at" json:"sent_at"`
}

// EmailBatch resume una campaña: totales y duración (colección emailBatches).
type EmailBatch struct {
	ID          string    `dynamodbav:"id" json:"id"`
	Subject     string    `dynamodbav:"subject" json:"subject"`
	Channel     string    `dynamodbav:"channel" json:"channel"`
	InitiatedBy string    `dynamodbav:"initiated_by" json:"initiated_by"`
	Recipients  int       `dynamodbav:"recipients" json:"recipients"`
	Sent        int       `dynamodbav:"sent" json:"sent"`
	Failed      int       `dynamodbav:"failed" json:"failed"`
	DurationMs  int64     `dynamodbav:"duration_ms" json:"duration_ms"`
	CreatedAt   time.Time `dynamodbav:"created_at" json:"created_at"`
}
