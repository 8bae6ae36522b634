package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgedRecord antigüedad de saldos de una cuenta para un período
// (colección detailed_aged_analysis). Los montos por tramo son decimales exactos.
type AgedRecord struct {
	AccountNumber string          `dynamodbav:"account_number" json:"account_number"`
	Period        string          `dynamodbav:"period" json:"period"` // "2026-08"
	Current       decimal.Decimal `dynamodbav:"current" json:"current"`
	Days30        decimal.Decimal `dynamodbav:"days_30" json:"days_30"`
	Days60        decimal.Decimal `dynamodbav:"days_60" json:"days_60"`
	Days90        decimal.Decimal `dynamodbav:"days_90" json:"days_90"`
	Days120Plus   decimal.Decimal `dynamodbav:"days_120_plus" json:"days_120_plus"`
	Total         decimal.Decimal `dynamodbav:"total" json:"total"`
	UploadedAt    time.Time       `dynamodbav:"uploaded_at" json:"uploaded_at"`
}

// LeviedRecord cargo facturado a una cuenta en un período (colección detailed_levied).
type LeviedRecord struct {
	AccountNumber string          `dynamodbav:"account_number" json:"account_number"`
	SortKey       string          `dynamodbav:"sk" json:"-"` // "<period>#<levy_type>"
	Period        string          `dynamodbav:"period" json:"period"`
	LevyType      string          `dynamodbav:"levy_type" json:"levy_type"` // rates, water, electricity, refuse, ...
	Amount        decimal.Decimal `dynamodbav:"amount" json:"amount"`
	UploadedAt    time.Time       `dynamodbav:"uploaded_at" json:"uploaded_at"`
}
