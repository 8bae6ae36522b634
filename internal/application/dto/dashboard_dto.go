package dto

// AgedSummaryDTO totales por tramo de antigüedad para el dashboard.
type AgedSummaryDTO struct {
	Period      string `json:"period"`
	Accounts    int    `json:"accounts"`
	Current     string `json:"current"`
	Days30      string `json:"days_30"`
	Days60      string `json:"days_60"`
	Days90      string `json:"days_90"`
	Days120Plus string `json:"days_120_plus"`
	Total       string `json:"total"`
}

// AgedRecordDTO antigüedad de saldos de una cuenta en un período.
type AgedRecordDTO struct {
	AccountNumber string `json:"account_number"`
	Period        string `json:"period"`
	Current       string `json:"current"`
	Days30        string `json:"days_30"`
	Days60        string `json:"days_60"`
	Days90        string `json:"days_90"`
	Days120Plus   string `json:"days_120_plus"`
	Total         string `json:"total"`
}

// LeviedRecordDTO cargo facturado a una cuenta.
type LeviedRecordDTO struct {
	AccountNumber string `json:"account_number"`
	Period        string `json:"period"`
	LevyType      string `json:"levy_type"`
	Amount        string `json:"amount"`
}

// DashboardSummaryDTO resumen combinado para la pantalla principal.
type DashboardSummaryDTO struct {
	QueryStats  []QueryStatsResponse `json:"query_stats"`
	UsageStats  []UsageStatDTO       `json:"usage_stats"`
	AgedSummary *AgedSummaryDTO      `json:"aged_summary,omitempty"`
	LastBatches []BatchResponse      `json:"last_batches"`
}
