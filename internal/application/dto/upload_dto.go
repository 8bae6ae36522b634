package dto

// AgedRowRequest fila de la carga masiva de antigüedad de saldos.
// Los montos viajan como strings decimales para no perder precisión.
// Sin tags de validación a propósito: las filas defectuosas se cuentan y
// descartan una a una en la carga, nunca rechazan el archivo completo.
type AgedRowRequest struct {
	AccountNumber string `json:"account_number"`
	Current       string `json:"current"`
	Days30        string `json:"days_30"`
	Days60        string `json:"days_60"`
	Days90        string `json:"days_90"`
	Days120Plus   string `json:"days_120_plus"`
}

// UploadAgedRequest carga completa de un período.
type UploadAgedRequest struct {
	Period string           `json:"period" validate:"required,len=7"` // "2026-08"
	Rows   []AgedRowRequest `json:"rows" validate:"required,min=1"`
}

// LeviedRowRequest fila de la carga de cargos facturados. Igual que las filas
// de antigüedad, se valida por fila en la carga.
type LeviedRowRequest struct {
	AccountNumber string `json:"account_number"`
	LevyType      string `json:"levy_type"` // rates, water, electricity, refuse, sewerage, other
	Amount        string `json:"amount"`
}

// UploadLeviedRequest carga completa de cargos de un período.
type UploadLeviedRequest struct {
	Period string             `json:"period" validate:"required,len=7"`
	Rows   []LeviedRowRequest `json:"rows" validate:"required,min=1"`
}

// UploadResultResponse conteos de la carga: filas inválidas y fallos de escritura
// se reportan como números, la carga nunca se aborta por una fila.
type UploadResultResponse struct {
	Received int `json:"received"`
	Written  int `json:"written"`
	Failed   int `json:"failed"`
	Invalid  int `json:"invalid"`
}
