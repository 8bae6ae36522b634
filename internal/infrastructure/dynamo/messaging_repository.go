package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
)

var _ repository.MessagingRepository = (*MessagingRepo)(nil)

// MessagingRepo registros de campañas: emailBatches (PK id) y emailLogs
// (PK batch_id, SK recipient#channel). Los logs por lote se escriben con el
// BatchWriter para no hacer miles de PutItem individuales.
type MessagingRepo struct {
	client      *dynamodb.Client
	batchTable  string
	logTable    string
	batchWriter *BatchWriter
}

// NewMessagingRepository construye el adaptador.
func NewMessagingRepository(client *dynamodb.Client, batchTable, logTable string, bw *BatchWriter) *MessagingRepo {
	return &MessagingRepo{
		client:      client,
		batchTable:  batchTable,
		logTable:    logTable,
		batchWriter: bw,
	}
}

// CreateBatch persiste el resumen inicial de la campaña.
func (r *MessagingRepo) CreateBatch(ctx context.Context, batch *entity.EmailBatch) error {
	item, err := marshalItem(batch)
	if err != nil {
		return fmt.Errorf("serializar batch: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.batchTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("insert emailBatch: %w", err)
	}
	return nil
}

// UpdateBatch sobrescribe el resumen con los totales finales.
func (r *MessagingRepo) UpdateBatch(ctx context.Context, batch *entity.EmailBatch) error {
	return r.CreateBatch(ctx, batch)
}

// ListBatches campañas más recientes primero. La colección es pequeña
// (una fila por campaña), se ordena en memoria tras el scan.
func (r *MessagingRepo) ListBatches(ctx context.Context, limit int) ([]*entity.EmailBatch, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.batchTable),
	})
	if err != nil {
		return nil, fmt.Errorf("list emailBatches: %w", err)
	}
	batches, err := unmarshalItems[entity.EmailBatch](out.Items)
	if err != nil {
		return nil, err
	}
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].CreatedAt.After(batches[j].CreatedAt)
	})
	if limit > 0 && len(batches) > limit {
		batches = batches[:limit]
	}
	return batches, nil
}

// PutLogs escribe los resultados por destinatario de un lote. Devuelve el
// número de registros que no pudieron escribirse; no aborta la campaña.
func (r *MessagingRepo) PutLogs(ctx context.Context, logs []*entity.EmailLog) (int, error) {
	items := make([]map[string]types.AttributeValue, 0, len(logs))
	for _, l := range logs {
		if l == nil {
			continue
		}
		item, err := marshalItem(l)
		if err != nil {
			return len(logs), fmt.Errorf("serializar emailLog: %w", err)
		}
		// Sort key compuesto: un destinatario por canal dentro del batch.
		item["sk"] = &types.AttributeValueMemberS{Value: l.Recipient + "#" + l.Channel}
		items = append(items, item)
	}
	_, failed, err := r.batchWriter.WriteAll(ctx, r.logTable, items)
	return failed, err
}

// ListLogsByBatch resultados de una campaña.
func (r *MessagingRepo) ListLogsByBatch(ctx context.Context, batchID string, limit int) ([]*entity.EmailLog, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.logTable),
		KeyConditionExpression: aws.String("batch_id = :b"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":b": &types.AttributeValueMemberS{Value: batchID},
		},
	}
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}
	out, err := r.client.Query(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("list emailLogs: %w", err)
	}
	return unmarshalItems[entity.EmailLog](out.Items)
}
