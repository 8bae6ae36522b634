package reports

import (
	"context"
	"sort"

	"github.com/tu-usuario/municare-api/internal/application/analytics"
	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/domain"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
)

// AgedReportGenerator puerto de salida para la generación del PDF.
type AgedReportGenerator interface {
	GenerateAgedReport(ctx context.Context, summary dto.AgedSummaryDTO, records []*entity.AgedRecord) ([]byte, error)
}

// ReportUseCase genera el informe PDF de antigüedad de saldos de un período.
type ReportUseCase struct {
	agedRepo  repository.AgedRepository
	generator AgedReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(agedRepo repository.AgedRepository, generator AgedReportGenerator) *ReportUseCase {
	return &ReportUseCase{agedRepo: agedRepo, generator: generator}
}

// AgedReportPDF arma el resumen del período y delega el render al generador.
// Se incluyen como detalle las cuentas de mayor deuda (hasta 50 filas).
func (uc *ReportUseCase) AgedReportPDF(ctx context.Context, period string) ([]byte, error) {
	records, err := uc.agedRepo.ListAgedByPeriod(ctx, period, 0)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	summary := analytics.BuildAgedSummary(period, records)

	detail := topDebtors(records, 50)
	return uc.generator.GenerateAgedReport(ctx, summary, detail)
}

// topDebtors ordena por total descendente y corta a n.
func topDebtors(records []*entity.AgedRecord, n int) []*entity.AgedRecord {
	sorted := make([]*entity.AgedRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Total.GreaterThan(sorted[j].Total)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
