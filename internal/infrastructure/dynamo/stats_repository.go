package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
)

var (
	_ repository.QueryStatsRepository = (*QueryStatsRepo)(nil)
	_ repository.UsageStatsRepository = (*UsageStatsRepo)(nil)
)

// QueryStatsRepo contadores por categoría (tabla customerQueryStats, PK category).
// Los incrementos usan ADD, que crea el documento si no existe.
type QueryStatsRepo struct {
	client *dynamodb.Client
	table  string
}

// NewQueryStatsRepository construye el adaptador.
func NewQueryStatsRepository(client *dynamodb.Client, table string) *QueryStatsRepo {
	return &QueryStatsRepo{client: client, table: table}
}

// IncrementNew registra un alta nueva: +1 en "open" y +1 en el total de la
// categoría. Las transiciones posteriores usan Increment y dejan el total
// intacto, aunque el reclamo vuelva a "open".
func (r *QueryStatsRepo) IncrementNew(ctx context.Context, category string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"category": &types.AttributeValueMemberS{Value: category},
		},
		UpdateExpression: aws.String("ADD #st :d, #tot :d"),
		ExpressionAttributeNames: map[string]string{
			"#st":  "open",
			"#tot": "total",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":d": &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		return fmt.Errorf("increment new customerQueryStats: %w", err)
	}
	return nil
}

// Increment suma delta al contador del estado; el total no se toca.
func (r *QueryStatsRepo) Increment(ctx context.Context, category, status string, delta int64) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"category": &types.AttributeValueMemberS{Value: category},
		},
		UpdateExpression: aws.String("ADD #st :d"),
		ExpressionAttributeNames: map[string]string{
			"#st": statusField(status),
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":d": &types.AttributeValueMemberN{Value: strconv.FormatInt(delta, 10)},
		},
	})
	if err != nil {
		return fmt.Errorf("increment customerQueryStats: %w", err)
	}
	return nil
}

// List devuelve todos los contadores (una fila por categoría).
func (r *QueryStatsRepo) List(ctx context.Context) ([]*entity.QueryStat, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
	})
	if err != nil {
		return nil, fmt.Errorf("list customerQueryStats: %w", err)
	}
	return unmarshalItems[entity.QueryStat](out.Items)
}

// statusField mapea el estado al atributo del contador.
func statusField(status string) string {
	switch status {
	case entity.QueryInProgress:
		return "in_progress"
	case entity.QueryResolved:
		return "resolved"
	default:
		return "open"
	}
}

// UsageStatsRepo agregados mensuales de consumo (tabla usageStats,
// PK period, SK meter_type). readings y consumption son numéricos para
// poder acumular con ADD.
type UsageStatsRepo struct {
	client *dynamodb.Client
	table  string
}

// NewUsageStatsRepository construye el adaptador.
func NewUsageStatsRepository(client *dynamodb.Client, table string) *UsageStatsRepo {
	return &UsageStatsRepo{client: client, table: table}
}

// Add acumula lecturas y consumo en el período.
func (r *UsageStatsRepo) Add(ctx context.Context, period, meterType string, readings int64, consumption decimal.Decimal) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"period":     &types.AttributeValueMemberS{Value: period},
			"meter_type": &types.AttributeValueMemberS{Value: meterType},
		},
		UpdateExpression: aws.String("ADD readings :r, consumption :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":r": &types.AttributeValueMemberN{Value: strconv.FormatInt(readings, 10)},
			":c": &types.AttributeValueMemberN{Value: consumption.String()},
		},
	})
	if err != nil {
		return fmt.Errorf("add usageStats: %w", err)
	}
	return nil
}

// ListByPeriodRange agregados entre dos períodos inclusive ("2025-08".."2026-08").
// Los atributos numéricos se convierten a mano: consumption viaja como N.
func (r *UsageStatsRepo) ListByPeriodRange(ctx context.Context, fromPeriod, toPeriod string) ([]*entity.UsageStat, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.table),
		FilterExpression: aws.String("#p BETWEEN :from AND :to"),
		ExpressionAttributeNames: map[string]string{
			"#p": "period",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from": &types.AttributeValueMemberS{Value: fromPeriod},
			":to":   &types.AttributeValueMemberS{Value: toPeriod},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("list usageStats: %w", err)
	}

	stats := make([]*entity.UsageStat, 0, len(out.Items))
	for _, item := range out.Items {
		s := &entity.UsageStat{}
		if v, ok := item["period"].(*types.AttributeValueMemberS); ok {
			s.Period = v.Value
		}
		if v, ok := item["meter_type"].(*types.AttributeValueMemberS); ok {
			s.MeterType = v.Value
		}
		if v, ok := item["readings"].(*types.AttributeValueMemberN); ok {
			s.Readings, _ = strconv.ParseInt(v.Value, 10, 64)
		}
		if v, ok := item["consumption"].(*types.AttributeValueMemberN); ok {
			if d, err := decimal.NewFromString(v.Value); err == nil {
				s.Consumption = d
			}
		}
		stats = append(stats, s)
	}
	return stats, nil
}
