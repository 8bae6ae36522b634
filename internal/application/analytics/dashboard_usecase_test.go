package analytics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/municare-api/internal/application/analytics"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// El resumen suma cada tramo de todas las cuentas del período.
func TestBuildAgedSummary_SumaTramos(t *testing.T) {
	records := []*entity.AgedRecord{
		{
			AccountNumber: "ACC-001",
			Current:       dec("100.00"),
			Days30:        dec("50.00"),
			Days60:        dec("0.00"),
			Days90:        dec("25.50"),
			Days120Plus:   dec("0.00"),
			Total:         dec("175.50"),
		},
		{
			AccountNumber: "ACC-002",
			Current:       dec("10.00"),
			Days30:        dec("0.00"),
			Days60:        dec("40.00"),
			Days90:        dec("0.00"),
			Days120Plus:   dec("300.00"),
			Total:         dec("350.00"),
		},
	}

	s := analytics.BuildAgedSummary("2026-08", records)

	assert.Equal(t, "2026-08", s.Period)
	assert.Equal(t, 2, s.Accounts)
	assert.Equal(t, "110.00", s.Current)
	assert.Equal(t, "50.00", s.Days30)
	assert.Equal(t, "40.00", s.Days60)
	assert.Equal(t, "25.50", s.Days90)
	assert.Equal(t, "300.00", s.Days120Plus)
	assert.Equal(t, "525.50", s.Total)
}

// Período sin registros: resumen en cero con cero cuentas.
func TestBuildAgedSummary_SinRegistros(t *testing.T) {
	s := analytics.BuildAgedSummary("2026-01", nil)

	assert.Equal(t, 0, s.Accounts)
	assert.Equal(t, "0.00", s.Total)
}
