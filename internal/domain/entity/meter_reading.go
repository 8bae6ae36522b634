package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de medidor.
const (
	MeterWater       = "water"
	MeterElectricity = "electricity"
)

// MeterReading lectura de medidor asociada a una cuenta.
type MeterReading struct {
	AccountNumber string          `dynamodbav:"account_number" json:"account_number"`
	SortKey       string          `dynamodbav:"sk" json:"-"` // "<type>#<fecha RFC3339>" para orden cronológico
	MeterNumber   string          `dynamodbav:"meter_number" json:"meter_number"`
	MeterType     string          `dynamodbav:"meter_type" json:"meter_type"`
	Reading       decimal.Decimal `dynamodbav:"reading" json:"reading"`
	ReadingDate   time.Time       `dynamodbav:"reading_date" json:"reading_date"`
	Source        string          `dynamodbav:"source" json:"source"` // field, estimated, customer
	RecordedBy    string          `dynamodbav:"recorded_by,omitempty" json:"recorded_by,omitempty"`
}

// UsageStat agregado mensual por tipo de medidor (colección usageStats).
type UsageStat struct {
	Period      string          `dynamodbav:"period" json:"period"` // "2026-08"
	MeterType   string          `dynamodbav:"meter_type" json:"meter_type"`
	Readings    int64           `dynamodbav:"readings" json:"readings"`
	Consumption decimal.Decimal `dynamodbav:"consumption" json:"consumption"`
}
