package dynamo

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tu-usuario/municare-api/pkg/logger"
)

// maxBatchItems límite de ítems por BatchWriteItem impuesto por DynamoDB.
const maxBatchItems = 25

// BatchConfig parámetros de la escritura por lotes.
type BatchConfig struct {
	BatchSize   int // se recorta a maxBatchItems
	MaxRetries  int
	BaseDelayMs int
}

// BatchWriter trocea conjuntos grandes de ítems en lotes acotados y reintenta
// los no procesados con backoff exponencial y jitter. Los ítems que siguen sin
// procesarse tras agotar los reintentos se cuentan como fallidos; la carga
// continúa con el resto.
type BatchWriter struct {
	client *dynamodb.Client
	cfg    BatchConfig
	log    *logger.Logger

	// sleep es inyectable para que los tests no esperen de verdad.
	sleep func(time.Duration)
}

// NewBatchWriter construye el escritor por lotes.
func NewBatchWriter(client *dynamodb.Client, cfg BatchConfig, log *logger.Logger) *BatchWriter {
	if cfg.BatchSize <= 0 || cfg.BatchSize > maxBatchItems {
		cfg.BatchSize = maxBatchItems
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if cfg.BaseDelayMs <= 0 {
		cfg.BaseDelayMs = 200
	}
	return &BatchWriter{client: client, cfg: cfg, log: log, sleep: time.Sleep}
}

// WriteAll escribe todos los ítems en la tabla. Devuelve cuántos quedaron
// escritos y cuántos fallaron definitivamente. Solo retorna error por
// cancelación de contexto; los errores por lote se cuentan, no abortan.
func (w *BatchWriter) WriteAll(ctx context.Context, table string, items []map[string]types.AttributeValue) (written, failed int, err error) {
	for from := 0; from < len(items); from += w.cfg.BatchSize {
		to := from + w.cfg.BatchSize
		if to > len(items) {
			to = len(items)
		}
		ok, bad, err := w.writeChunk(ctx, table, items[from:to])
		written += ok
		failed += bad
		if err != nil {
			return written, failed + (len(items) - to), err
		}
	}
	return written, failed, nil
}

// writeChunk escribe un lote (≤25 ítems) reintentando los no procesados.
func (w *BatchWriter) writeChunk(ctx context.Context, table string, chunk []map[string]types.AttributeValue) (written, failed int, err error) {
	pending := make([]types.WriteRequest, 0, len(chunk))
	for _, item := range chunk {
		pending = append(pending, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}
	total := len(pending)

	for attempt := 0; len(pending) > 0; attempt++ {
		if attempt > w.cfg.MaxRetries {
			w.log.Warn().
				Str("table", table).
				Int("unprocessed", len(pending)).
				Msg("lote agotó reintentos, ítems contados como fallidos")
			return total - len(pending), failed + len(pending), nil
		}
		if attempt > 0 {
			delay := w.backoff(attempt)
			w.log.Debug().
				Int("attempt", attempt).
				Int("pending", len(pending)).
				Dur("delay", delay).
				Msg("reintentando lote no procesado")
			select {
			case <-ctx.Done():
				return total - len(pending), failed + len(pending), ctx.Err()
			default:
			}
			w.sleep(delay)
		}

		out, callErr := w.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{table: pending},
		})
		if callErr != nil {
			if errors.Is(callErr, context.Canceled) || errors.Is(callErr, context.DeadlineExceeded) {
				return total - len(pending), failed + len(pending), callErr
			}
			if isThrottle(callErr) {
				// Se reintenta el lote completo con más backoff.
				continue
			}
			w.log.Error().Err(callErr).Str("table", table).Msg("BatchWriteItem falló, lote contado como fallido")
			return total - len(pending), failed + len(pending), nil
		}

		pending = out.UnprocessedItems[table]
	}
	return total, failed, nil
}

// backoff delay exponencial con jitter: base*2^(attempt-1) ± 50 %.
func (w *BatchWriter) backoff(attempt int) time.Duration {
	base := time.Duration(w.cfg.BaseDelayMs) * time.Millisecond
	d := base << (attempt - 1)
	if d > 10*time.Second {
		d = 10 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(d)/2 + 1))
	return d/2 + jitter
}

// isThrottle detecta errores de capacidad/limitación del servicio.
func isThrottle(err error) bool {
	var throughput *types.ProvisionedThroughputExceededException
	if errors.As(err, &throughput) {
		return true
	}
	var limit *types.LimitExceededException
	if errors.As(err, &limit) {
		return true
	}
	var internal *types.InternalServerError
	return errors.As(err, &internal)
}
