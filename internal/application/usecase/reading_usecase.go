package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/domain"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
	"github.com/tu-usuario/municare-api/pkg/logger"
)

// ReadingUseCase lecturas de medidor y agregados de consumo.
type ReadingUseCase struct {
	readingRepo  repository.MeterReadingRepository
	statsRepo    repository.UsageStatsRepository
	customerRepo repository.CustomerRepository
	log          *logger.Logger
}

// NewReadingUseCase construye el caso de uso.
func NewReadingUseCase(
	readingRepo repository.MeterReadingRepository,
	statsRepo repository.UsageStatsRepository,
	customerRepo repository.CustomerRepository,
	log *logger.Logger,
) *ReadingUseCase {
	return &ReadingUseCase{
		readingRepo:  readingRepo,
		statsRepo:    statsRepo,
		customerRepo: customerRepo,
		log:          log,
	}
}

// Record registra una lectura y acumula el consumo del período en usageStats.
// El consumo es el delta contra la lectura anterior del mismo medidor; la
// primera lectura (o un retroceso de contador) acumula cero.
func (uc *ReadingUseCase) Record(ctx context.Context, recordedBy string, in dto.RecordReadingRequest) (*dto.ReadingResponse, error) {
	customer, err := uc.customerRepo.GetByAccount(ctx, in.AccountNumber)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	value, err := decimal.NewFromString(in.Reading)
	if err != nil || value.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	prev, err := uc.readingRepo.Latest(ctx, in.AccountNumber, in.MeterType)
	if err != nil {
		return nil, err
	}

	source := in.Source
	if source == "" {
		source = "field"
	}
	reading := &entity.MeterReading{
		AccountNumber: in.AccountNumber,
		SortKey:       readingSortKey(in.MeterType, in.ReadingDate),
		MeterNumber:   in.MeterNumber,
		MeterType:     in.MeterType,
		Reading:       value,
		ReadingDate:   in.ReadingDate,
		Source:        source,
		RecordedBy:    recordedBy,
	}
	if err := uc.readingRepo.Create(ctx, reading); err != nil {
		return nil, err
	}

	consumption := decimal.Zero
	if prev != nil && value.GreaterThan(prev.Reading) {
		consumption = value.Sub(prev.Reading)
	}
	period := in.ReadingDate.Format("2006-01")
	if err := uc.statsRepo.Add(ctx, period, in.MeterType, 1, consumption); err != nil {
		// Agregado best-effort: la lectura ya quedó persistida.
		uc.log.Warn().Err(err).Str("period", period).Msg("no se pudo acumular usageStats")
	}

	return toReadingResponse(reading), nil
}

// ListByAccount lista las lecturas de una cuenta (opcionalmente por tipo).
func (uc *ReadingUseCase) ListByAccount(ctx context.Context, accountNumber, meterType string, limit int) ([]dto.ReadingResponse, error) {
	readings, err := uc.readingRepo.ListByAccount(ctx, accountNumber, meterType, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReadingResponse, 0, len(readings))
	for _, r := range readings {
		out = append(out, *toReadingResponse(r))
	}
	return out, nil
}

// UsageSeries serie mensual de consumo de una cuenta: deltas entre lecturas
// consecutivas del mismo tipo, agrupados por período.
func (uc *ReadingUseCase) UsageSeries(ctx context.Context, accountNumber, meterType string) ([]dto.UsagePointDTO, error) {
	readings, err := uc.readingRepo.ListByAccount(ctx, accountNumber, meterType, 500)
	if err != nil {
		return nil, err
	}
	return buildUsageSeries(readings), nil
}

// GlobalUsage agregados mensuales para las gráficas del dashboard.
func (uc *ReadingUseCase) GlobalUsage(ctx context.Context, fromPeriod, toPeriod string) ([]dto.UsageStatDTO, error) {
	stats, err := uc.statsRepo.ListByPeriodRange(ctx, fromPeriod, toPeriod)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsageStatDTO, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.UsageStatDTO{
			Period:      s.Period,
			MeterType:   s.MeterType,
			Readings:    s.Readings,
			Consumption: s.Consumption.StringFixed(2),
		})
	}
	return out, nil
}

// buildUsageSeries agrupa deltas consecutivos por tipo de medidor y período.
// Las lecturas llegan en orden cronológico por el sort key del repositorio.
func buildUsageSeries(readings []*entity.MeterReading) []dto.UsagePointDTO {
	type key struct{ period, meterType string }
	totals := make(map[key]decimal.Decimal)
	order := make([]key, 0)
	last := make(map[string]decimal.Decimal) // por tipo de medidor

	for _, r := range readings {
		prev, ok := last[r.MeterType]
		last[r.MeterType] = r.Reading
		if !ok || r.Reading.LessThanOrEqual(prev) {
			continue // primera lectura o contador reemplazado
		}
		k := key{r.ReadingDate.Format("2006-01"), r.MeterType}
		if _, seen := totals[k]; !seen {
			order = append(order, k)
		}
		totals[k] = totals[k].Add(r.Reading.Sub(prev))
	}

	out := make([]dto.UsagePointDTO, 0, len(order))
	for _, k := range order {
		out = append(out, dto.UsagePointDTO{
			Period:      k.period,
			MeterType:   k.meterType,
			Consumption: totals[k].StringFixed(2),
		})
	}
	return out
}

// readingSortKey "<type>#<RFC3339>" ordena cronológicamente dentro del tipo.
func readingSortKey(meterType string, date time.Time) string {
	return fmt.Sprintf("%s#%s", meterType, date.UTC().Format(time.RFC3339))
}

func toReadingResponse(r *entity.MeterReading) *dto.ReadingResponse {
	return &dto.ReadingResponse{
		AccountNumber: r.AccountNumber,
		MeterNumber:   r.MeterNumber,
		MeterType:     r.MeterType,
		Reading:       r.Reading.String(),
		ReadingDate:   r.ReadingDate,
		Source:        r.Source,
	}
}
