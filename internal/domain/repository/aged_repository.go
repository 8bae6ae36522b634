package repository

import (
	"context"

	"github.com/tu-usuario/municare-api/internal/domain/entity"
)

// BatchResult resultado de una escritura por lotes: conteos, nunca aborta por registro.
type BatchResult struct {
	Written int
	Failed  int
}

// AgedRepository colecciones detailed_aged_analysis y detailed_levied.
// Las cargas son masivas (miles de filas) y usan la API de escritura por lotes
// de la base documental, troceadas al límite de 25 ítems por lote.
type AgedRepository interface {
	BatchPutAged(ctx context.Context, records []*entity.AgedRecord) (BatchResult, error)
	BatchPutLevied(ctx context.Context, records []*entity.LeviedRecord) (BatchResult, error)
	ListAgedByPeriod(ctx context.Context, period string, limit int) ([]*entity.AgedRecord, error)
	GetAged(ctx context.Context, accountNumber, period string) (*entity.AgedRecord, error)
	ListLeviedByAccount(ctx context.Context, accountNumber string, limit int) ([]*entity.LeviedRecord, error)
}
