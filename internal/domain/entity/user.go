package entity

import "time"

// Roles de los operadores del dashboard.
const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

// Estados de la cuenta de un operador.
const (
	UserActive   = "active"
	UserDisabled = "disabled"
)

// User operador del sistema (agente de atención o administrador).
type User struct {
	ID           string    `dynamodbav:"id" json:"id"`
	Email        string    `dynamodbav:"email" json:"email"`
	PasswordHash string    `dynamodbav:"password_hash" json:"-"`
	Name         string    `dynamodbav:"name" json:"name"`
	Role         string    `dynamodbav:"role" json:"role"`
	Status       string    `dynamodbav:"status" json:"status"`
	CreatedAt    time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt    time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

// UserActivity traza de acciones de operadores (colección userActivities).
type UserActivity struct {
	UserID    string    `dynamodbav:"user_id" json:"user_id"`
	SortKey   string    `dynamodbav:"sk" json:"-"` // "<timestamp>#<uuid>" para orden y unicidad
	Action    string    `dynamodbav:"action" json:"action"` // "POST /api/send-emails", ...
	Detail    string    `dynamodbav:"detail,omitempty" json:"detail,omitempty"`
	Timestamp time.Time `dynamodbav:"timestamp" json:"timestamp"`
}
