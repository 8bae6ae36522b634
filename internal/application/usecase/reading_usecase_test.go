package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/application/usecase"
	"github.com/tu-usuario/municare-api/internal/domain"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks
// ──────────────────────────────────────────────────────────────────────────────

type mockReadingRepo struct {
	readings []*entity.MeterReading
}

func (m *mockReadingRepo) Create(_ context.Context, r *entity.MeterReading) error {
	cp := *r
	m.readings = append(m.readings, &cp)
	return nil
}

func (m *mockReadingRepo) ListByAccount(_ context.Context, account, meterType string, _ int) ([]*entity.MeterReading, error) {
	var out []*entity.MeterReading
	for _, r := range m.readings {
		if r.AccountNumber != account {
			continue
		}
		if meterType != "" && r.MeterType != meterType {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockReadingRepo) Latest(_ context.Context, account, meterType string) (*entity.MeterReading, error) {
	var latest *entity.MeterReading
	for _, r := range m.readings {
		if r.AccountNumber == account && r.MeterType == meterType {
			latest = r
		}
	}
	return latest, nil
}

// mockUsageStats registra las acumulaciones para verificar los agregados.
type mockUsageStats struct {
	adds []usageAdd
}

type usageAdd struct {
	period, meterType string
	readings          int64
	consumption       decimal.Decimal
}

func (m *mockUsageStats) Add(_ context.Context, period, meterType string, readings int64, consumption decimal.Decimal) error {
	m.adds = append(m.adds, usageAdd{period, meterType, readings, consumption})
	return nil
}

func (m *mockUsageStats) ListByPeriodRange(context.Context, string, string) ([]*entity.UsageStat, error) {
	return nil, nil
}

func buildReadingUC() (*usecase.ReadingUseCase, *mockReadingRepo, *mockUsageStats) {
	readingRepo := &mockReadingRepo{}
	statsRepo := &mockUsageStats{}
	custRepo := &stubCustomerRepo{customers: map[string]*entity.Customer{
		"ACC-001": {AccountNumber: "ACC-001", Name: "Ana Pérez", Status: entity.AccountActive},
	}}
	uc := usecase.NewReadingUseCase(readingRepo, statsRepo, custRepo, logger.Nop())
	return uc, readingRepo, statsRepo
}

func readingReq(reading string, date time.Time) dto.RecordReadingRequest {
	return dto.RecordReadingRequest{
		AccountNumber: "ACC-001",
		MeterNumber:   "MTR-9",
		MeterType:     "water",
		Reading:       reading,
		ReadingDate:   date,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Record
// ──────────────────────────────────────────────────────────────────────────────

// La primera lectura acumula consumo cero; la segunda acumula el delta.
func TestRecord_AcumulaDeltaContraLecturaAnterior(t *testing.T) {
	uc, _, statsRepo := buildReadingUC()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	_, err := uc.Record(context.Background(), "agente-1", readingReq("100.0", base))
	require.NoError(t, err)

	_, err = uc.Record(context.Background(), "agente-1", readingReq("132.5", base.AddDate(0, 0, 15)))
	require.NoError(t, err)

	require.Len(t, statsRepo.adds, 2)
	assert.True(t, statsRepo.adds[0].consumption.IsZero(), "la primera lectura acumula cero")
	assert.Equal(t, "32.5", statsRepo.adds[1].consumption.String())
	assert.Equal(t, "2026-08", statsRepo.adds[1].period)
	assert.Equal(t, int64(1), statsRepo.adds[1].readings)
}

// Un contador reemplazado (lectura menor a la anterior) acumula cero, no negativo.
func TestRecord_ContadorReemplazadoAcumulaCero(t *testing.T) {
	uc, _, statsRepo := buildReadingUC()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	_, err := uc.Record(context.Background(), "agente-1", readingReq("500.0", base))
	require.NoError(t, err)
	_, err = uc.Record(context.Background(), "agente-1", readingReq("10.0", base.AddDate(0, 1, 0)))
	require.NoError(t, err)

	require.Len(t, statsRepo.adds, 2)
	assert.True(t, statsRepo.adds[1].consumption.IsZero())
}

// Lecturas negativas o no numéricas se rechazan.
func TestRecord_LecturaInvalida(t *testing.T) {
	uc, _, _ := buildReadingUC()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	_, err := uc.Record(context.Background(), "agente-1", readingReq("-5", base))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Record(context.Background(), "agente-1", readingReq("abc", base))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UsageSeries
// ──────────────────────────────────────────────────────────────────────────────

// La serie agrupa deltas por período y tipo; la primera lectura no aporta delta.
func TestUsageSeries_AgrupaPorPeriodo(t *testing.T) {
	uc, _, _ := buildReadingUC()

	dates := []struct {
		date  time.Time
		value string
	}{
		{time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), "100"},
		{time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC), "110"}, // +10 en 2026-06
		{time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), "135"}, // +25 en 2026-07
		{time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), "150"}, // +15 en 2026-08
	}
	for _, d := range dates {
		_, err := uc.Record(context.Background(), "agente-1", readingReq(d.value, d.date))
		require.NoError(t, err)
	}

	series, err := uc.UsageSeries(context.Background(), "ACC-001", "water")
	require.NoError(t, err)

	require.Len(t, series, 3)
	assert.Equal(t, "2026-06", series[0].Period)
	assert.Equal(t, "10.00", series[0].Consumption)
	assert.Equal(t, "25.00", series[1].Consumption)
	assert.Equal(t, "15.00", series[2].Consumption)
}
