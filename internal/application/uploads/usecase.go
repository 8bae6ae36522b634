package uploads

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
	"github.com/tu-usuario/municare-api/pkg/logger"
)

// UploadUseCase carga masiva de registros financieros (antigüedad de saldos y
// cargos facturados). Las filas inválidas se cuentan y se descartan; las
// válidas van a la base documental en lotes con reintento/backoff a cargo del
// repositorio. La carga nunca se aborta por una fila.
type UploadUseCase struct {
	agedRepo repository.AgedRepository
	log      *logger.Logger
}

// NewUploadUseCase construye el caso de uso.
func NewUploadUseCase(agedRepo repository.AgedRepository, log *logger.Logger) *UploadUseCase {
	return &UploadUseCase{agedRepo: agedRepo, log: log}
}

// UploadAged procesa la carga de antigüedad de saldos de un período.
func (uc *UploadUseCase) UploadAged(ctx context.Context, in dto.UploadAgedRequest) (*dto.UploadResultResponse, error) {
	now := time.Now()
	records := make([]*entity.AgedRecord, 0, len(in.Rows))
	invalid := 0
	for _, row := range in.Rows {
		rec, ok := parseAgedRow(row, in.Period, now)
		if !ok {
			invalid++
			continue
		}
		records = append(records, rec)
	}

	res, err := uc.agedRepo.BatchPutAged(ctx, records)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("period", in.Period).
		Int("received", len(in.Rows)).
		Int("written", res.Written).
		Int("failed", res.Failed).
		Int("invalid", invalid).
		Msg("carga de antigüedad de saldos completada")

	return &dto.UploadResultResponse{
		Received: len(in.Rows),
		Written:  res.Written,
		Failed:   res.Failed,
		Invalid:  invalid,
	}, nil
}

// UploadLevied procesa la carga de cargos facturados de un período.
func (uc *UploadUseCase) UploadLevied(ctx context.Context, in dto.UploadLeviedRequest) (*dto.UploadResultResponse, error) {
	now := time.Now()
	records := make([]*entity.LeviedRecord, 0, len(in.Rows))
	invalid := 0
	for _, row := range in.Rows {
		account := strings.TrimSpace(row.AccountNumber)
		if account == "" || !validLevyTypes[row.LevyType] {
			invalid++
			continue
		}
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			invalid++
			continue
		}
		records = append(records, &entity.LeviedRecord{
			AccountNumber: account,
			SortKey:       in.Period + "#" + row.LevyType,
			Period:        in.Period,
			LevyType:      row.LevyType,
			Amount:        amount,
			UploadedAt:    now,
		})
	}

	res, err := uc.agedRepo.BatchPutLevied(ctx, records)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("period", in.Period).
		Int("received", len(in.Rows)).
		Int("written", res.Written).
		Int("failed", res.Failed).
		Int("invalid", invalid).
		Msg("carga de cargos facturados completada")

	return &dto.UploadResultResponse{
		Received: len(in.Rows),
		Written:  res.Written,
		Failed:   res.Failed,
		Invalid:  invalid,
	}, nil
}

// validLevyTypes tipos de cargo admitidos en detailed_levied.
var validLevyTypes = map[string]bool{
	"rates":       true,
	"water":       true,
	"electricity": true,
	"refuse":      true,
	"sewerage":    true,
	"other":       true,
}

// parseAgedRow valida la fila completa (cuenta y montos); Total se calcula,
// nunca se confía en un total enviado por el cliente.
func parseAgedRow(row dto.AgedRowRequest, period string, now time.Time) (*entity.AgedRecord, bool) {
	account := strings.TrimSpace(row.AccountNumber)
	if account == "" {
		return nil, false
	}
	amounts := make([]decimal.Decimal, 0, 5)
	for _, s := range []string{row.Current, row.Days30, row.Days60, row.Days90, row.Days120Plus} {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, false
		}
		amounts = append(amounts, d)
	}
	total := decimal.Zero
	for _, d := range amounts {
		total = total.Add(d)
	}
	return &entity.AgedRecord{
		AccountNumber: account,
		Period:        period,
		Current:       amounts[0],
		Days30:        amounts[1],
		Days60:        amounts[2],
		Days90:        amounts[3],
		Days120Plus:   amounts[4],
		Total:         total,
		UploadedAt:    now,
	}, true
}
