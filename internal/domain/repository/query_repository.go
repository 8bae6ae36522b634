package repository

import (
	"context"

	"github.com/tu-usuario/municare-api/internal/domain/entity"
)

// QueryRepository acceso a la colección queries.
type QueryRepository interface {
	Create(ctx context.Context, q *entity.Query) error
	GetByReference(ctx context.Context, reference string) (*entity.Query, error)
	Update(ctx context.Context, q *entity.Query) error
	ListByStatus(ctx context.Context, status string, limit int) ([]*entity.Query, error)
	ListByAccount(ctx context.Context, accountNumber string, limit int) ([]*entity.Query, error)
}

// QueryStatsRepository contadores por categoría (colección customerQueryStats).
type QueryStatsRepository interface {
	// IncrementNew registra un alta: +1 en "open" y +1 en el total acumulado
	// de la categoría. Solo Submit debe usarlo.
	IncrementNew(ctx context.Context, category string) error
	// Increment suma delta al contador de la categoría para el estado dado.
	// Nunca toca el total: una reapertura no es un reclamo nuevo.
	Increment(ctx context.Context, category, status string, delta int64) error
	List(ctx context.Context) ([]*entity.QueryStat, error)
}
