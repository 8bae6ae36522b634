package repository

import (
	"context"

	"github.com/tu-usuario/municare-api/internal/domain/entity"
)

// MessagingRepository registros de envíos (colecciones emailLogs y emailBatches).
type MessagingRepository interface {
	CreateBatch(ctx context.Context, batch *entity.EmailBatch) error
	UpdateBatch(ctx context.Context, batch *entity.EmailBatch) error
	ListBatches(ctx context.Context, limit int) ([]*entity.EmailBatch, error)
	// PutLogs persiste los resultados por destinatario de un lote; devuelve cuántos
	// registros no pudieron escribirse (la campaña no se aborta por fallos de log).
	PutLogs(ctx context.Context, logs []*entity.EmailLog) (failed int, err error)
	ListLogsByBatch(ctx context.Context, batchID string, limit int) ([]*entity.EmailLog, error)
}
