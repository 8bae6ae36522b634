package repository

import (
	"context"

	"github.com/tu-usuario/municare-api/internal/domain/entity"
)

// UserRepository operadores del dashboard (colección users).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit int) ([]*entity.User, error)
}

// ActivityRepository traza de acciones (colección userActivities).
type ActivityRepository interface {
	Record(ctx context.Context, activity *entity.UserActivity) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.UserActivity, error)
}
