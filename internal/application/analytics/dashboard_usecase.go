package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/domain"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
)

// DashboardUseCase agrega las fuentes que alimentan las gráficas del dashboard:
// contadores de consultas, consumo mensual, antigüedad de saldos y campañas.
type DashboardUseCase struct {
	statsRepo repository.QueryStatsRepository
	usageRepo repository.UsageStatsRepository
	agedRepo  repository.AgedRepository
	msgRepo   repository.MessagingRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	statsRepo repository.QueryStatsRepository,
	usageRepo repository.UsageStatsRepository,
	agedRepo repository.AgedRepository,
	msgRepo repository.MessagingRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		statsRepo: statsRepo,
		usageRepo: usageRepo,
		agedRepo:  agedRepo,
		msgRepo:   msgRepo,
	}
}

// GetSummary arma el resumen de la pantalla principal. Las cuatro consultas
// son independientes y se ejecutan en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	period := now.Format("2006-01")
	fromPeriod := now.AddDate(-1, 0, 0).Format("2006-01")

	var (
		queryStats []*entity.QueryStat
		usageStats []*entity.UsageStat
		aged       []*entity.AgedRecord
		batches    []*entity.EmailBatch
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		queryStats, err = uc.statsRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		usageStats, err = uc.usageRepo.ListByPeriodRange(gctx, fromPeriod, period)
		return err
	})
	g.Go(func() (err error) {
		aged, err = uc.agedRepo.ListAgedByPeriod(gctx, period, 0)
		return err
	})
	g.Go(func() (err error) {
		batches, err = uc.msgRepo.ListBatches(gctx, 10)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryDTO{
		QueryStats:  make([]dto.QueryStatsResponse, 0, len(queryStats)),
		UsageStats:  make([]dto.UsageStatDTO, 0, len(usageStats)),
		LastBatches: make([]dto.BatchResponse, 0, len(batches)),
	}
	for _, s := range queryStats {
		out.QueryStats = append(out.QueryStats, dto.QueryStatsResponse{
			Category:   s.Category,
			Open:       s.Open,
			InProgress: s.InProgress,
			Resolved:   s.Resolved,
			Total:      s.Total,
		})
	}
	for _, s := range usageStats {
		out.UsageStats = append(out.UsageStats, dto.UsageStatDTO{
			Period:      s.Period,
			MeterType:   s.MeterType,
			Readings:    s.Readings,
			Consumption: s.Consumption.StringFixed(2),
		})
	}
	for _, b := range batches {
		out.LastBatches = append(out.LastBatches, dto.BatchResponse{
			ID:          b.ID,
			Subject:     b.Subject,
			Channel:     b.Channel,
			InitiatedBy: b.InitiatedBy,
			Recipients:  b.Recipients,
			Sent:        b.Sent,
			Failed:      b.Failed,
			DurationMs:  b.DurationMs,
			CreatedAt:   b.CreatedAt,
		})
	}
	if len(aged) > 0 {
		summary := BuildAgedSummary(period, aged)
		out.AgedSummary = &summary
	}
	return out, nil
}

// AgedSummary totales por tramo de un período.
func (uc *DashboardUseCase) AgedSummary(ctx context.Context, period string) (*dto.AgedSummaryDTO, error) {
	records, err := uc.agedRepo.ListAgedByPeriod(ctx, period, 0)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	summary := BuildAgedSummary(period, records)
	return &summary, nil
}

// BuildAgedSummary suma los tramos de todos los registros de un período.
func BuildAgedSummary(period string, records []*entity.AgedRecord) dto.AgedSummaryDTO {
	var current, d30, d60, d90, d120, total decimal.Decimal
	for _, r := range records {
		current = current.Add(r.Current)
		d30 = d30.Add(r.Days30)
		d60 = d60.Add(r.Days60)
		d90 = d90.Add(r.Days90)
		d120 = d120.Add(r.Days120Plus)
		total = total.Add(r.Total)
	}
	return dto.AgedSummaryDTO{
		Period:      period,
		Accounts:    len(records),
		Current:     current.StringFixed(2),
		Days30:      d30.StringFixed(2),
		Days60:      d60.StringFixed(2),
		Days90:      d90.StringFixed(2),
		Days120Plus: d120.StringFixed(2),
		Total:       total.StringFixed(2),
	}
}
