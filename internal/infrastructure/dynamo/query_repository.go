package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tu-usuario/municare-api/internal/domain"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
)

var _ repository.QueryRepository = (*QueryRepo)(nil)

// QueryRepo implementación de QueryRepository sobre la tabla queries.
// Clave primaria: reference. Índices: status-index (status + created_at) y
// account-index (account_number + created_at), ambos con proyección completa.
type QueryRepo struct {
	client *dynamodb.Client
	table  string
}

// NewQueryRepository construye el adaptador.
func NewQueryRepository(client *dynamodb.Client, table string) *QueryRepo {
	return &QueryRepo{client: client, table: table}
}

// Create persiste una consulta nueva.
func (r *QueryRepo) Create(ctx context.Context, q *entity.Query) error {
	item, err := marshalItem(q)
	if err != nil {
		return fmt.Errorf("serializar query: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#ref)"),
		ExpressionAttributeNames: map[string]string{
			"#ref": "reference",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert query: %w", err)
	}
	return nil
}

// GetByReference obtiene una consulta (nil si no existe).
func (r *QueryRepo) GetByReference(ctx context.Context, reference string) (*entity.Query, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"reference": &types.AttributeValueMemberS{Value: reference},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get query: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}
	var q entity.Query
	if err := unmarshalItem(out.Item, &q); err != nil {
		return nil, fmt.Errorf("deserializar query: %w", err)
	}
	return &q, nil
}

// Update sobrescribe el documento de la consulta.
func (r *QueryRepo) Update(ctx context.Context, q *entity.Query) error {
	item, err := marshalItem(q)
	if err != nil {
		return fmt.Errorf("serializar query: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("update query: %w", err)
	}
	return nil
}

// ListByStatus consulta el índice status-index, más recientes primero.
func (r *QueryRepo) ListByStatus(ctx context.Context, status string, limit int) ([]*entity.Query, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(queryStatusIndex),
		KeyConditionExpression: aws.String("#st = :status"),
		ExpressionAttributeNames: map[string]string{
			"#st": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("list queries by status: %w", err)
	}
	return unmarshalItems[entity.Query](out.Items)
}

// ListByAccount consulta el índice account-index, más recientes primero.
func (r *QueryRepo) ListByAccount(ctx context.Context, accountNumber string, limit int) ([]*entity.Query, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(queryAccountIndex),
		KeyConditionExpression: aws.String("account_number = :acc"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":acc": &types.AttributeValueMemberS{Value: accountNumber},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("list queries by account: %w", err)
	}
	return unmarshalItems[entity.Query](out.Items)
}
