package dto

import "time"

// SendEmailsRequest campaña masiva de correo (POST /api/send-emails).
// Si AllActive es true se ignora Recipients y se envía a todas las cuentas
// activas con email registrado.
type SendEmailsRequest struct {
	Subject    string   `json:"subject" validate:"required,min=1,max=300"`
	HTMLBody   string   `json:"html_body" validate:"required_without=TextBody"`
	TextBody   string   `json:"text_body" validate:"required_without=HTMLBody"`
	Recipients []string `json:"recipients" validate:"omitempty,dive,email"`
	AllActive  bool     `json:"all_active"`
}

// SendSMSRequest campaña corta de SMS.
type SendSMSRequest struct {
	Message    string   `json:"message" validate:"required,min=1,max=480"`
	Recipients []string `json:"recipients" validate:"required,min=1,dive,min=7,max=20"`
}

// CampaignResultResponse resumen de la campaña: conteos, nunca detalle por error.
type CampaignResultResponse struct {
	BatchID    string `json:"batch_id"`
	Recipients int    `json:"recipients"`
	Sent       int    `json:"sent"`
	Failed     int    `json:"failed"`
	DurationMs int64  `json:"duration_ms"`
}

// BatchResponse resumen histórico de una campaña.
type BatchResponse struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	Channel     string    `json:"channel"`
	InitiatedBy string    `json:"initiated_by"`
	Recipients  int       `json:"recipients"`
	Sent        int       `json:"sent"`
	Failed      int       `json:"failed"`
	DurationMs  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// SendLogResponse resultado individual de un envío.
type SendLogResponse struct {
	Recipient string    `json:"recipient"`
	Channel   string    `json:"channel"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}
