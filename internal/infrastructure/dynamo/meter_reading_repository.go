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

var _ repository.MeterReadingRepository = (*MeterReadingRepo)(nil)

// MeterReadingRepo lecturas de medidor (tabla meterReadings, PK account_number,
// SK "<type>#<RFC3339>"); el sort key da el orden cronológico dentro del tipo.
type MeterReadingRepo struct {
	client *dynamodb.Client
	table  string
}

// NewMeterReadingRepository construye el adaptador.
func NewMeterReadingRepository(client *dynamodb.Client, table string) *MeterReadingRepo {
	return &MeterReadingRepo{client: client, table: table}
}

// Create persiste una lectura.
func (r *MeterReadingRepo) Create(ctx context.Context, reading *entity.MeterReading) error {
	item, err := marshalItem(reading)
	if err != nil {
		return fmt.Errorf("serializar lectura: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("insert meterReading: %w", err)
	}
	return nil
}

// ListByAccount lecturas en orden cronológico, opcionalmente por tipo.
func (r *MeterReadingRepo) ListByAccount(ctx context.Context, accountNumber, meterType string, limit int) ([]*entity.MeterReading, error) {
	keyCond := "account_number = :acc"
	values := map[string]types.AttributeValue{
		":acc": &types.AttributeValueMemberS{Value: accountNumber},
	}
	if meterType != "" {
		keyCond += " AND begins_with(sk, :mt)"
		values[":mt"] = &types.AttributeValueMemberS{Value: meterType + "#"}
	}
	in := &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    aws.String(keyCond),
		ExpressionAttributeValues: values,
	}
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}
	out, err := r.client.Query(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("list meterReadings: %w", err)
	}
	return unmarshalItems[entity.MeterReading](out.Items)
}

// Latest lectura más reciente de la cuenta para un tipo (nil si no hay).
func (r *MeterReadingRepo) Latest(ctx context.Context, accountNumber, meterType string) (*entity.MeterReading, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("account_number = :acc AND begins_with(sk, :mt)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":acc": &types.AttributeValueMemberS{Value: accountNumber},
			":mt":  &types.AttributeValueMemberS{Value: meterType + "#"},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("latest meterReading: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	var reading entity.MeterReading
	if err := unmarshalItem(out.Items[0], &reading); err != nil {
		return nil, fmt.Errorf("deserializar lectura: %w", err)
	}
	return &reading, nil
}
