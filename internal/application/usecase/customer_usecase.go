package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/domain"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
)

// CustomerUseCase gestión de titulares de cuenta municipal y su detalle
// financiero (antigüedad de saldos y cargos facturados).
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	agedRepo     repository.AgedRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, agedRepo repository.AgedRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, agedRepo: agedRepo}
}

// Create da de alta un titular. Devuelve ErrDuplicate si el número de cuenta ya existe.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	existing, err := uc.customerRepo.GetByAccount(ctx, in.AccountNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		Name:          in.Name,
		NameKey:       normalizeTerm(in.Name),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:         in.Phone,
		Address:       in.Address,
		Ward:          in.Ward,
		Status:        entity.AccountActive,
		Balance:       decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Get obtiene un titular por número de cuenta.
func (uc *CustomerUseCase) Get(ctx context.Context, accountNumber string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza datos de contacto y estado (solo campos enviados).
func (uc *CustomerUseCase) Update(ctx context.Context, accountNumber string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		customer.Name = in.Name
		customer.NameKey = normalizeTerm(in.Name)
	}
	if in.Email != "" {
		customer.Email = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if in.Phone != "" {
		customer.Phone = in.Phone
	}
	if in.Address != "" {
		customer.Address = in.Address
	}
	if in.Ward != "" {
		customer.Ward = in.Ward
	}
	if in.Status != "" {
		customer.Status = in.Status
	}
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List pagina titulares con cursor opaco.
func (uc *CustomerUseCase) List(ctx context.Context, limit int, cursor string) (*dto.CustomerListResponse, error) {
	customers, next, err := uc.customerRepo.List(ctx, limit, cursor)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{Items: items, NextCursor: next}, nil
}

// Search busca por nombre (insensible a acentos/mayúsculas) o email.
func (uc *CustomerUseCase) Search(ctx context.Context, term string, limit int) ([]dto.CustomerResponse, error) {
	term = normalizeTerm(term)
	if term == "" {
		return nil, domain.ErrInvalidInput
	}
	customers, err := uc.customerRepo.Search(ctx, term, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// AgedRecord antigüedad de saldos de una cuenta en un período concreto.
func (uc *CustomerUseCase) AgedRecord(ctx context.Context, accountNumber, period string) (*dto.AgedRecordDTO, error) {
	record, err := uc.agedRepo.GetAged(ctx, accountNumber, period)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.AgedRecordDTO{
		AccountNumber: record.AccountNumber,
		Period:        record.Period,
		Current:       record.Current.StringFixed(2),
		Days30:        record.Days30.StringFixed(2),
		Days60:        record.Days60.StringFixed(2),
		Days90:        record.Days90.StringFixed(2),
		Days120Plus:   record.Days120Plus.StringFixed(2),
		Total:         record.Total.StringFixed(2),
	}, nil
}

// LeviedHistory cargos facturados a una cuenta, cronológico por período.
func (uc *CustomerUseCase) LeviedHistory(ctx context.Context, accountNumber string, limit int) ([]dto.LeviedRecordDTO, error) {
	records, err := uc.agedRepo.ListLeviedByAccount(ctx, accountNumber, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LeviedRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, dto.LeviedRecordDTO{
			AccountNumber: r.AccountNumber,
			Period:        r.Period,
			LevyType:      r.LevyType,
			Amount:        r.Amount.StringFixed(2),
		})
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		AccountNumber: c.AccountNumber,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		Ward:          c.Ward,
		Status:        c.Status,
		Balance:       c.Balance.StringFixed(2),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
