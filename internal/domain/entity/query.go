package entity

import "time"

// Estados del ciclo de vida de una consulta/reclamo.
const (
	QueryOpen       = "open"
	QueryInProgress = "in_progress"
	QueryResolved   = "resolved"
)

// Categorías de consulta reconocidas por el municipio.
const (
	CategoryBilling     = "billing"
	CategoryWater       = "water"
	CategoryElectricity = "electricity"
	CategoryRefuse      = "refuse"
	CategoryOther       = "other"
)

// Query es una consulta o reclamo presentado por un titular (ticket).
type Query struct {
	Reference     string     `dynamodbav:"reference" json:"reference"`
	AccountNumber string     `dynamodbav:"account_number" json:"account_number"`
	Category      string     `dynamodbav:"category" json:"category"`
	Description   string     `dynamodbav:"description" json:"description"`
	Channel       string     `dynamodbav:"channel" json:"channel"` // web, phone, office
	Status        string     `dynamodbav:"status" json:"status"`
	AssignedTo    string     `dynamodbav:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	Resolution    string     `dynamodbav:"resolution,omitempty" json:"resolution,omitempty"`
	CreatedAt     time.Time  `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `dynamodbav:"updated_at" json:"updated_at"`
	ResolvedAt    *time.Time `dynamodbav:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}

// QueryStat contador incremental por categoría (colección customerQueryStats).
type QueryStat struct {
	Category   string `dynamodbav:"category" json:"category"`
	Open       int64  `dynamodbav:"open" json:"open"`
	InProgress int64  `dynamodbav:"in_progress" json:"in_progress"`
	Resolved   int64  `dynamodbav:"resolved" json:"resolved"`
	Total      int64  `dynamodbav:"total" json:"total"`
}
