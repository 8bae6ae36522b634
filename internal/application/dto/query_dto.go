package dto

import "time"

// SubmitQueryRequest presentación de una consulta/reclamo.
type SubmitQueryRequest struct {
	AccountNumber string `json:"account_number" validate:"required,min=3,max=30"`
	Category      string `json:"category" validate:"required,oneof=billing water electricity refuse other"`
	Description   string `json:"description" validate:"required,min=5,max=2000"`
	Channel       string `json:"channel" validate:"omitempty,oneof=web phone office"`
}

// UpdateQueryRequest cambio de estado / asignación / resolución.
type UpdateQueryRequest struct {
	Status     string `json:"status" validate:"required,oneof=open in_progress resolved"`
	AssignedTo string `json:"assigned_to" validate:"omitempty,max=100"`
	Resolution string `json:"resolution" validate:"omitempty,max=2000"`
	// NotifySMS envía un SMS al titular cuando la consulta queda resuelta.
	NotifySMS bool `json:"notify_sms"`
}

// QueryResponse salida de una consulta.
type QueryResponse struct {
	Reference     string     `json:"reference"`
	AccountNumber string     `json:"account_number"`
	Category      string     `json:"category"`
	Description   string     `json:"description"`
	Channel       string     `json:"channel"`
	Status        string     `json:"status"`
	AssignedTo    string     `json:"assigned_to,omitempty"`
	Resolution    string     `json:"resolution,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

// QueryStatsResponse contadores por categoría para el dashboard.
type QueryStatsResponse struct {
	Category   string `json:"category"`
	Open       int64  `json:"open"`
	InProgress int64  `json:"in_progress"`
	Resolved   int64  `json:"resolved"`
	Total      int64  `json:"total"`
}
