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

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.ActivityRepository = (*ActivityRepo)(nil)
)

// UserRepo operadores (tabla users, PK id, índice email-index).
type UserRepo struct {
	client *dynamodb.Client
	table  string
}

const userEmailIndex = "email-index"

// NewUserRepository construye el adaptador.
func NewUserRepository(client *dynamodb.Client, table string) *UserRepo {
	return &UserRepo{client: client, table: table}
}

// Create persiste un operador nuevo.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	item, err := marshalItem(user)
	if err != nil {
		return fmt.Errorf("serializar user: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un operador por id (nil si no existe).
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}
	var u entity.User
	if err := unmarshalItem(out.Item, &u); err != nil {
		return nil, fmt.Errorf("deserializar user: %w", err)
	}
	return &u, nil
}

// GetByEmail busca por el índice email-index (nil si no existe).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(userEmailIndex),
		KeyConditionExpression: aws.String("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	var u entity.User
	if err := unmarshalItem(out.Items[0], &u); err != nil {
		return nil, fmt.Errorf("deserializar user: %w", err)
	}
	return &u, nil
}

// Update sobrescribe el documento del operador.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	item, err := marshalItem(user)
	if err != nil {
		return fmt.Errorf("serializar user: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List operadores (colección pequeña, scan directo).
func (r *UserRepo) List(ctx context.Context, limit int) ([]*entity.User, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.table)}
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}
	out, err := r.client.Scan(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return unmarshalItems[entity.User](out.Items)
}

// ActivityRepo traza de acciones (tabla userActivities, PK user_id,
// SK "<timestamp>#<uuid>").
type ActivityRepo struct {
	client *dynamodb.Client
	table  string
}

// NewActivityRepository construye el adaptador.
func NewActivityRepository(client *dynamodb.Client, table string) *ActivityRepo {
	return &ActivityRepo{client: client, table: table}
}

// Record persiste una entrada de actividad.
func (r *ActivityRepo) Record(ctx context.Context, activity *entity.UserActivity) error {
	item, err := marshalItem(activity)
	if err != nil {
		return fmt.Errorf("serializar actividad: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("insert userActivity: %w", err)
	}
	return nil
}

// ListByUser actividad de un operador, más reciente primero.
func (r *ActivityRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.UserActivity, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}
	out, err := r.client.Query(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("list userActivities: %w", err)
	}
	return unmarshalItems[entity.UserActivity](out.Items)
}
