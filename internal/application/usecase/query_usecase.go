package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/municare-api/internal/application/campaign"
	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/domain"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
	"github.com/tu-usuario/municare-api/pkg/logger"
)

// QueryUseCase ciclo de vida de consultas/reclamos y sus contadores.
type QueryUseCase struct {
	queryRepo    repository.QueryRepository
	statsRepo    repository.QueryStatsRepository
	customerRepo repository.CustomerRepository
	smsSender    campaign.SMSSender // puede ser nil si el proveedor no está configurado
	log          *logger.Logger
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	queryRepo repository.QueryRepository,
	statsRepo repository.QueryStatsRepository,
	customerRepo repository.CustomerRepository,
	smsSender campaign.SMSSender,
	log *logger.Logger,
) *QueryUseCase {
	return &QueryUseCase{
		queryRepo:    queryRepo,
		statsRepo:    statsRepo,
		customerRepo: customerRepo,
		smsSender:    smsSender,
		log:          log,
	}
}

// Submit registra una consulta nueva y genera su referencia.
// La cuenta debe existir; el contador de la categoría se incrementa en "open".
func (uc *QueryUseCase) Submit(ctx context.Context, in dto.SubmitQueryRequest) (*dto.QueryResponse, error) {
	customer, err := uc.customerRepo.GetByAccount(ctx, in.AccountNumber)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	channel := in.Channel
	if channel == "" {
		channel = "web"
	}
	q := &entity.Query{
		Reference:     newReference(now),
		AccountNumber: in.AccountNumber,
		Category:      in.Category,
		Description:   in.Description,
		Channel:       channel,
		Status:        entity.QueryOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.queryRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	// El contador es best-effort: un fallo no invalida el ticket ya creado.
	if err := uc.statsRepo.IncrementNew(ctx, q.Category); err != nil {
		uc.log.Warn().Err(err).Str("category", q.Category).Msg("no se pudo incrementar customerQueryStats")
	}
	return toQueryResponse(q), nil
}

// Get obtiene una consulta por referencia.
func (uc *QueryUseCase) Get(ctx context.Context, reference string) (*dto.QueryResponse, error) {
	q, err := uc.queryRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return toQueryResponse(q), nil
}

// ListByStatus lista consultas en un estado dado.
func (uc *QueryUseCase) ListByStatus(ctx context.Context, status string, limit int) ([]dto.QueryResponse, error) {
	queries, err := uc.queryRepo.ListByStatus(ctx, status, limit)
	if err != nil {
		return nil, err
	}
	return toQueryResponses(queries), nil
}

// ListByAccount lista consultas de una cuenta.
func (uc *QueryUseCase) ListByAccount(ctx context.Context, accountNumber string, limit int) ([]dto.QueryResponse, error) {
	queries, err := uc.queryRepo.ListByAccount(ctx, accountNumber, limit)
	if err != nil {
		return nil, err
	}
	return toQueryResponses(queries), nil
}

// UpdateStatus cambia el estado de una consulta, mantiene los contadores por
// categoría y, si queda resuelta y se pide, notifica por SMS al titular.
func (uc *QueryUseCase) UpdateStatus(ctx context.Context, reference string, in dto.UpdateQueryRequest) (*dto.QueryResponse, error) {
	q, err := uc.queryRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if q.Status == entity.QueryResolved && in.Status != entity.QueryResolved {
		return nil, domain.ErrConflict // una consulta resuelta no se reabre por esta vía
	}
	prevStatus := q.Status
	now := time.Now()
	q.Status = in.Status
	if in.AssignedTo != "" {
		q.AssignedTo = in.AssignedTo
	}
	if in.Resolution != "" {
		q.Resolution = in.Resolution
	}
	q.UpdatedAt = now
	if in.Status == entity.QueryResolved && q.ResolvedAt == nil {
		q.ResolvedAt = &now
	}
	if err := uc.queryRepo.Update(ctx, q); err != nil {
		return nil, err
	}

	if prevStatus != q.Status {
		if err := uc.statsRepo.Increment(ctx, q.Category, prevStatus, -1); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo decrementar customerQueryStats")
		}
		if err := uc.statsRepo.Increment(ctx, q.Category, q.Status, 1); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo incrementar customerQueryStats")
		}
	}

	if in.NotifySMS && q.Status == entity.QueryResolved {
		uc.notifyResolved(ctx, q)
	}
	return toQueryResponse(q), nil
}

// Stats devuelve los contadores por categoría.
func (uc *QueryUseCase) Stats(ctx context.Context) ([]dto.QueryStatsResponse, error) {
	stats, err := uc.statsRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QueryStatsResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.QueryStatsResponse{
			Category:   s.Category,
			Open:       s.Open,
			InProgress: s.InProgress,
			Resolved:   s.Resolved,
			Total:      s.Total,
		})
	}
	return out, nil
}

// notifyResolved envía el SMS de resolución; cualquier fallo solo se loguea.
func (uc *QueryUseCase) notifyResolved(ctx context.Context, q *entity.Query) {
	if uc.smsSender == nil {
		uc.log.Warn().Str("reference", q.Reference).Msg("SMS no configurado, se omite notificación")
		return
	}
	customer, err := uc.customerRepo.GetByAccount(ctx, q.AccountNumber)
	if err != nil || customer == nil || customer.Phone == "" {
		uc.log.Warn().Str("reference", q.Reference).Msg("titular sin teléfono, se omite notificación")
		return
	}
	msg := fmt.Sprintf("Su consulta %s ha sido resuelta. Municipio.", q.Reference)
	if err := uc.smsSender.Send(ctx, customer.Phone, msg); err != nil {
		uc.log.Error().Err(err).Str("reference", q.Reference).Msg("fallo el SMS de resolución")
	}
}

// newReference genera una referencia legible y única: Q-20260823-7F3A2C.
func newReference(now time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:6]
	return fmt.Sprintf("Q-%s-%s", now.Format("20060102"), id)
}

func toQueryResponse(q *entity.Query) *dto.QueryResponse {
	return &dto.QueryResponse{
		Reference:     q.Reference,
		AccountNumber: q.AccountNumber,
		Category:      q.Category,
		Description:   q.Description,
		Channel:       q.Channel,
		Status:        q.Status,
		AssignedTo:    q.AssignedTo,
		Resolution:    q.Resolution,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
		ResolvedAt:    q.ResolvedAt,
	}
}

func toQueryResponses(queries []*entity.Query) []dto.QueryResponse {
	out := make([]dto.QueryResponse, 0, len(queries))
	for _, q := range queries {
		out = append(out, *toQueryResponse(q))
	}
	return out
}
