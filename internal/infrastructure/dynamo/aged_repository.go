package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
)

var _ repository.AgedRepository = (*AgedRepo)(nil)

// AgedRepo registros financieros: detailed_aged_analysis (PK account_number,
// SK period, índice period-index) y detailed_levied (PK account_number,
// SK "<period>#<levy_type>"). Las cargas masivas pasan por el BatchWriter,
// que trocea al límite de 25 ítems y reintenta con backoff.
type AgedRepo struct {
	client      *dynamodb.Client
	agedTable   string
	leviedTable string
	batchWriter *BatchWriter
}

// NewAgedRepository construye el adaptador.
func NewAgedRepository(client *dynamodb.Client, agedTable, leviedTable string, bw *BatchWriter) *AgedRepo {
	return &AgedRepo{
		client:      client,
		agedTable:   agedTable,
		leviedTable: leviedTable,
		batchWriter: bw,
	}
}

// BatchPutAged escribe la carga de antigüedad de saldos por lotes.
func (r *AgedRepo) BatchPutAged(ctx context.Context, records []*entity.AgedRecord) (repository.BatchResult, error) {
	items := make([]map[string]types.AttributeValue, 0, len(records))
	for _, rec := range records {
		item, err := marshalItem(rec)
		if err != nil {
			return repository.BatchResult{}, fmt.Errorf("serializar registro aged: %w", err)
		}
		items = append(items, item)
	}
	written, failed, err := r.batchWriter.WriteAll(ctx, r.agedTable, items)
	return repository.BatchResult{Written: written, Failed: failed}, err
}

// BatchPutLevied escribe la carga de cargos facturados por lotes.
func (r *AgedRepo) BatchPutLevied(ctx context.Context, records []*entity.LeviedRecord) (repository.BatchResult, error) {
	items := make([]map[string]types.AttributeValue, 0, len(records))
	for _, rec := range records {
		item, err := marshalItem(rec)
		if err != nil {
			return repository.BatchResult{}, fmt.Errorf("serializar registro levied: %w", err)
		}
		items = append(items, item)
	}
	written, failed, err := r.batchWriter.WriteAll(ctx, r.leviedTable, items)
	return repository.BatchResult{Written: written, Failed: failed}, err
}

// ListAgedByPeriod registros de un período vía period-index; pagina hasta
// agotar el índice (limit 0 = sin tope, el resumen necesita el período entero).
func (r *AgedRepo) ListAgedByPeriod(ctx context.Context, period string, limit int) ([]*entity.AgedRecord, error) {
	var records []*entity.AgedRecord
	var startKey map[string]types.AttributeValue
	for {
		in := &dynamodb.QueryInput{
			TableName:              aws.String(r.agedTable),
			IndexName:              aws.String(agedPeriodIndex),
			KeyConditionExpression: aws.String("#p = :period"),
			ExpressionAttributeNames: map[string]string{
				"#p": "period",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":period": &types.AttributeValueMemberS{Value: period},
			},
			ExclusiveStartKey: startKey,
		}
		if limit > 0 {
			in.Limit = aws.Int32(int32(limit))
		}
		out, err := r.client.Query(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("list aged by period: %w", err)
		}
		page, err := unmarshalItems[entity.AgedRecord](out.Items)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
		if limit > 0 && len(records) >= limit {
			return records[:limit], nil
		}
		if len(out.LastEvaluatedKey) == 0 {
			return records, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// GetAged registro de una cuenta en un período (nil si no existe).
func (r *AgedRepo) GetAged(ctx context.Context, accountNumber, period string) (*entity.AgedRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.agedTable),
		Key: map[string]types.AttributeValue{
			"account_number": &types.AttributeValueMemberS{Value: accountNumber},
			"period":         &types.AttributeValueMemberS{Value: period},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get aged: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}
	var rec entity.AgedRecord
	if err := unmarshalItem(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("deserializar registro aged: %w", err)
	}
	return &rec, nil
}

// ListLeviedByAccount cargos de una cuenta, cronológico por período.
func (r *AgedRepo) ListLeviedByAccount(ctx context.Context, accountNumber string, limit int) ([]*entity.LeviedRecord, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.leviedTable),
		KeyConditionExpression: aws.String("account_number = :acc"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":acc": &types.AttributeValueMemberS{Value: accountNumber},
		},
	}
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}
	out, err := r.client.Query(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("list levied: %w", err)
	}
	return unmarshalItems[entity.LeviedRecord](out.Items)
}
