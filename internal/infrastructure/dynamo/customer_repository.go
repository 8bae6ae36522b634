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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre la tabla customers.
// Clave primaria: account_number.
type CustomerRepo struct {
	client *dynamodb.Client
	table  string
}

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(client *dynamodb.Client, table string) *CustomerRepo {
	return &CustomerRepo{client: client, table: table}
}

// Create persiste un titular nuevo. Devuelve ErrDuplicate si la cuenta ya existe.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	item, err := marshalItem(customer)
	if err != nil {
		return fmt.Errorf("serializar customer: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(account_number)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByAccount obtiene un titular por número de cuenta (nil si no existe).
func (r *CustomerRepo) GetByAccount(ctx context.Context, accountNumber string) (*entity.Customer, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"account_number": &types.AttributeValueMemberS{Value: accountNumber},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}
	var c entity.Customer
	if err := unmarshalItem(out.Item, &c); err != nil {
		return nil, fmt.Errorf("deserializar customer: %w", err)
	}
	return &c, nil
}

// Update sobrescribe el documento del titular.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	item, err := marshalItem(customer)
	if err != nil {
		return fmt.Errorf("serializar customer: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(account_number)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// List pagina con Scan; el cursor es el último account_number de la página anterior.
func (r *CustomerRepo) List(ctx context.Context, limit int, cursor string) ([]*entity.Customer, string, error) {
	in := &dynamodb.ScanInput{
		TableName: aws.String(r.table),
		Limit:     aws.Int32(int32(limit)),
	}
	if cursor != "" {
		in.ExclusiveStartKey = map[string]types.AttributeValue{
			"account_number": &types.AttributeValueMemberS{Value: cursor},
		}
	}
	out, err := r.client.Scan(ctx, in)
	if err != nil {
		return nil, "", fmt.Errorf("list customers: %w", err)
	}
	customers, err := unmarshalItems[entity.Customer](out.Items)
	if err != nil {
		return nil, "", err
	}
	next := ""
	if lek, ok := out.LastEvaluatedKey["account_number"]; ok {
		if s, ok := lek.(*types.AttributeValueMemberS); ok {
			next = s.Value
		}
	}
	return customers, next, nil
}

// Search filtra por nombre normalizado o email con contains(); la colección
// de titulares es acotada, el scan con filtro replica la consulta del original.
func (r *CustomerRepo) Search(ctx context.Context, term string, limit int) ([]*entity.Customer, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.table),
		FilterExpression: aws.String("contains(name_key, :t) OR contains(email, :t)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberS{Value: term},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	customers, err := unmarshalItems[entity.Customer](out.Items)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(customers) > limit {
		customers = customers[:limit]
	}
	return customers, nil
}

// ListActiveEmails emails de cuentas activas con email registrado (campañas).
// Pagina el scan completo: una campaña "a todos" debe cubrir toda la colección.
func (r *CustomerRepo) ListActiveEmails(ctx context.Context) ([]string, error) {
	var emails []string
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(r.table),
			FilterExpression:     aws.String("#st = :active AND attribute_exists(email) AND email <> :empty"),
			ProjectionExpression: aws.String("email"),
			ExpressionAttributeNames: map[string]string{
				"#st": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":active": &types.AttributeValueMemberS{Value: entity.AccountActive},
				":empty":  &types.AttributeValueMemberS{Value: ""},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("list active emails: %w", err)
		}
		for _, item := range out.Items {
			if s, ok := item["email"].(*types.AttributeValueMemberS); ok && s.Value != "" {
				emails = append(emails, s.Value)
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return emails, nil
}
