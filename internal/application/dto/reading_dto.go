package dto

import "time"

// RecordReadingRequest registro de una lectura de medidor.
type RecordReadingRequest struct {
	AccountNumber string    `json:"account_number" validate:"required,min=3,max=30"`
	MeterNumber   string    `json:"meter_number" validate:"required,max=30"`
	MeterType     string    `json:"meter_type" validate:"required,oneof=water electricity"`
	Reading       string    `json:"reading" validate:"required"` // decimal como string
	ReadingDate   time.Time `json:"reading_date" validate:"required"`
	Source        string    `json:"source" validate:"omitempty,oneof=field estimated customer"`
}

// ReadingResponse salida de una lectura.
type ReadingResponse struct {
	AccountNumber string    `json:"account_number"`
	MeterNumber   string    `json:"meter_number"`
	MeterType     string    `json:"meter_type"`
	Reading       string    `json:"reading"`
	ReadingDate   time.Time `json:"reading_date"`
	Source        string    `json:"source"`
}

// UsagePointDTO punto de la serie mensual de consumo de una cuenta.
type UsagePointDTO struct {
	Period      string `json:"period"` // "2026-08"
	MeterType   string `json:"meter_type"`
	Consumption string `json:"consumption"` // delta entre lecturas del período
}

// UsageStatDTO agregado global mensual (gráficas del dashboard).
type UsageStatDTO struct {
	Period      string `json:"period"`
	MeterType   string `json:"meter_type"`
	Readings    int64  `json:"readings"`
	Consumption string `json:"consumption"`
}
