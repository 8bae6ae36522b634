package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cuenta de un titular municipal.
const (
	AccountActive    = "active"
	AccountSuspended = "suspended"
	AccountClosed    = "closed"
)

// Customer representa un titular de cuenta municipal (servicios de agua/luz/tasas).
type Customer struct {
	AccountNumber string          `dynamodbav:"account_number" json:"account_number"`
	Name          string          `dynamodbav:"name" json:"name"`
	NameKey       string          `dynamodbav:"name_key" json:"-"` // nombre normalizado para búsqueda
	Email         string          `dynamodbav:"email" json:"email"`
	Phone         string          `dynamodbav:"phone" json:"phone"`
	Address       string          `dynamodbav:"address" json:"address"`
	Ward          string          `dynamodbav:"ward" json:"ward"`
	Status        string          `dynamodbav:"status" json:"status"`
	Balance       decimal.Decimal `dynamodbav:"balance" json:"balance"` // saldo pendiente
	CreatedAt     time.Time       `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `dynamodbav:"updated_at" json:"updated_at"`
}
