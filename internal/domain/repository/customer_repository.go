package repository

import (
	"context"

	"github.com/tu-usuario/municare-api/internal/domain/entity"
)

// CustomerRepository acceso a la colección customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByAccount(ctx context.Context, accountNumber string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// List pagina con un cursor opaco (último account_number devuelto; vacío = desde el inicio).
	List(ctx context.Context, limit int, cursor string) ([]*entity.Customer, string, error)
	// Search filtra por nombre normalizado o email (scan con filtro, colección acotada).
	Search(ctx context.Context, term string, limit int) ([]*entity.Customer, error)
	// ListActiveEmails devuelve los emails de todas las cuentas activas (campañas).
	ListActiveEmails(ctx context.Context) ([]string, error)
}
