package uploads_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/application/uploads"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
	"github.com/tu-usuario/municare-api/pkg/logger"
)

// mockAgedRepo captura los registros que llegan a la escritura por lotes y
// permite simular fallos parciales.
type mockAgedRepo struct {
	aged       []*entity.AgedRecord
	levied     []*entity.LeviedRecord
	failWrites int // cuántos registros reporta como fallidos
}

func (m *mockAgedRepo) BatchPutAged(_ context.Context, records []*entity.AgedRecord) (repository.BatchResult, error) {
	m.aged = records
	return repository.BatchResult{Written: len(records) - m.failWrites, Failed: m.failWrites}, nil
}

func (m *mockAgedRepo) BatchPutLevied(_ context.Context, records []*entity.LeviedRecord) (repository.BatchResult, error) {
	m.levied = records
	return repository.BatchResult{Written: len(records) - m.failWrites, Failed: m.failWrites}, nil
}

func (m *mockAgedRepo) ListAgedByPeriod(context.Context, string, int) ([]*entity.AgedRecord, error) {
	return nil, nil
}

func (m *mockAgedRepo) GetAged(context.Context, string, string) (*entity.AgedRecord, error) {
	return nil, nil
}

func (m *mockAgedRepo) ListLeviedByAccount(context.Context, string, int) ([]*entity.LeviedRecord, error) {
	return nil, nil
}

func agedRow(account, current, d30, d60, d90, d120 string) dto.AgedRowRequest {
	return dto.AgedRowRequest{
		AccountNumber: account,
		Current:       current,
		Days30:        d30,
		Days60:        d60,
		Days90:        d90,
		Days120Plus:   d120,
	}
}

// Carga normal: todas las filas válidas, el total se calcula sumando tramos.
func TestUploadAged_TotalCalculadoDesdeTramos(t *testing.T) {
	repo := &mockAgedRepo{}
	uc := uploads.NewUploadUseCase(repo, logger.Nop())

	res, err := uc.UploadAged(context.Background(), dto.UploadAgedRequest{
		Period: "2026-08",
		Rows: []dto.AgedRowRequest{
			agedRow("ACC-001", "100.50", "200.00", "0.00", "0.00", "49.50"),
			agedRow("ACC-002", "0.00", "0.00", "10.00", "20.00", "30.00"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Received)
	assert.Equal(t, 2, res.Written)
	assert.Equal(t, 0, res.Invalid)

	require.Len(t, repo.aged, 2)
	assert.Equal(t, "350", repo.aged[0].Total.String(), "el total debe ser la suma de los tramos")
	assert.Equal(t, "60", repo.aged[1].Total.String())
	assert.Equal(t, "2026-08", repo.aged[0].Period)
}

// Filas con montos no numéricos se cuentan como inválidas y se descartan;
// las demás se escriben igual.
func TestUploadAged_FilasInvalidasNoAbortanLaCarga(t *testing.T) {
	repo := &mockAgedRepo{}
	uc := uploads.NewUploadUseCase(repo, logger.Nop())

	res, err := uc.UploadAged(context.Background(), dto.UploadAgedRequest{
		Period: "2026-08",
		Rows: []dto.AgedRowRequest{
			agedRow("ACC-001", "100.00", "0.00", "0.00", "0.00", "0.00"),
			agedRow("ACC-002", "no-es-numero", "0.00", "0.00", "0.00", "0.00"),
			agedRow("ACC-003", "50.00", "", "0.00", "0.00", "0.00"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Received)
	assert.Equal(t, 1, res.Written)
	assert.Equal(t, 2, res.Invalid)
	require.Len(t, repo.aged, 1)
	assert.Equal(t, "ACC-001", repo.aged[0].AccountNumber)
}

// Una fila sin número de cuenta se cuenta como inválida: la validación por
// fila vive acá, el HTTP solo exige período y al menos una fila.
func TestUploadAged_CuentaVaciaContadaComoInvalida(t *testing.T) {
	repo := &mockAgedRepo{}
	uc := uploads.NewUploadUseCase(repo, logger.Nop())

	res, err := uc.UploadAged(context.Background(), dto.UploadAgedRequest{
		Period: "2026-08",
		Rows: []dto.AgedRowRequest{
			agedRow("  ", "100.00", "0.00", "0.00", "0.00", "0.00"),
			agedRow("ACC-002", "50.00", "0.00", "0.00", "0.00", "0.00"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Written)
	assert.Equal(t, 1, res.Invalid)
	require.Len(t, repo.aged, 1)
	assert.Equal(t, "ACC-002", repo.aged[0].AccountNumber)
}

// Los fallos de escritura reportados por el repositorio se propagan en los conteos.
func TestUploadAged_FallosDeEscrituraSeCuentan(t *testing.T) {
	repo := &mockAgedRepo{failWrites: 1}
	uc := uploads.NewUploadUseCase(repo, logger.Nop())

	res, err := uc.UploadAged(context.Background(), dto.UploadAgedRequest{
		Period: "2026-08",
		Rows: []dto.AgedRowRequest{
			agedRow("ACC-001", "1.00", "0", "0", "0", "0"),
			agedRow("ACC-002", "2.00", "0", "0", "0", "0"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Written)
	assert.Equal(t, 1, res.Failed)
}

// Carga de cargos facturados: el sort key compone período y tipo de cargo.
func TestUploadLevied_SortKeyPorPeriodoYTipo(t *testing.T) {
	repo := &mockAgedRepo{}
	uc := uploads.NewUploadUseCase(repo, logger.Nop())

	res, err := uc.UploadLevied(context.Background(), dto.UploadLeviedRequest{
		Period: "2026-08",
		Rows: []dto.LeviedRowRequest{
			{AccountNumber: "ACC-001", LevyType: "water", Amount: "150.75"},
			{AccountNumber: "ACC-001", LevyType: "rates", Amount: "abc"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Written)
	assert.Equal(t, 1, res.Invalid)
	require.Len(t, repo.levied, 1)
	assert.Equal(t, "2026-08#water", repo.levied[0].SortKey)
	assert.Equal(t, "150.75", repo.levied[0].Amount.String())
}

// Tipos de cargo desconocidos y cuentas vacías se descartan fila a fila.
func TestUploadLevied_FilasInvalidasSeDescartan(t *testing.T) {
	repo := &mockAgedRepo{}
	uc := uploads.NewUploadUseCase(repo, logger.Nop())

	res, err := uc.UploadLevied(context.Background(), dto.UploadLeviedRequest{
		Period: "2026-08",
		Rows: []dto.LeviedRowRequest{
			{AccountNumber: "ACC-001", LevyType: "parking", Amount: "10.00"},
			{AccountNumber: "", LevyType: "water", Amount: "10.00"},
			{AccountNumber: "ACC-001", LevyType: "refuse", Amount: "80.00"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Received)
	assert.Equal(t, 1, res.Written)
	assert.Equal(t, 2, res.Invalid)
	require.Len(t, repo.levied, 1)
	assert.Equal(t, "refuse", repo.levied[0].LevyType)
}
