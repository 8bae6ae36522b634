package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/municare-api/internal/domain/entity"
)

// MeterReadingRepository acceso a la colección meterReadings.
type MeterReadingRepository interface {
	Create(ctx context.Context, r *entity.MeterReading) error
	// ListByAccount devuelve las lecturas de la cuenta en orden cronológico,
	// opcionalmente restringidas a un tipo de medidor (vacío = todos).
	ListByAccount(ctx context.Context, accountNumber, meterType string, limit int) ([]*entity.MeterReading, error)
	// Latest devuelve la lectura más reciente de la cuenta para un tipo de medidor (nil si no hay).
	Latest(ctx context.Context, accountNumber, meterType string) (*entity.MeterReading, error)
}

// UsageStatsRepository agregados mensuales (colección usageStats).
type UsageStatsRepository interface {
	// Add acumula lecturas y consumo en el período indicado.
	Add(ctx context.Context, period, meterType string, readings int64, consumption decimal.Decimal) error
	ListByPeriodRange(ctx context.Context, fromPeriod, toPeriod string) ([]*entity.UsageStat, error)
}
