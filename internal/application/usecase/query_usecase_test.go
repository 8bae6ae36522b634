package usecase_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/municare-api/internal/application/campaign"
	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/application/usecase"
	"github.com/tu-usuario/municare-api/internal/domain"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks en memoria
// ──────────────────────────────────────────────────────────────────────────────

type mockQueryRepo struct {
	queries map[string]*entity.Query
}

func newMockQueryRepo() *mockQueryRepo {
	return &mockQueryRepo{queries: make(map[string]*entity.Query)}
}

func (m *mockQueryRepo) Create(_ context.Context, q *entity.Query) error {
	cp := *q
	m.queries[q.Reference] = &cp
	return nil
}

func (m *mockQueryRepo) GetByReference(_ context.Context, ref string) (*entity.Query, error) {
	q, ok := m.queries[ref]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (m *mockQueryRepo) Update(_ context.Context, q *entity.Query) error {
	cp := *q
	m.queries[q.Reference] = &cp
	return nil
}

func (m *mockQueryRepo) ListByStatus(_ context.Context, status string, _ int) ([]*entity.Query, error) {
	var out []*entity.Query
	for _, q := range m.queries {
		if q.Status == status {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockQueryRepo) ListByAccount(_ context.Context, account string, _ int) ([]*entity.Query, error) {
	var out []*entity.Query
	for _, q := range m.queries {
		if q.AccountNumber == account {
			out = append(out, q)
		}
	}
	return out, nil
}

// mockStatsRepo registra cada incremento como tupla y lleva el total por
// categoría igual que el contador real: solo las altas lo suman.
type mockStatsRepo struct {
	increments []statDelta
	totals     map[string]int64
}

type statDelta struct {
	category, status string
	delta            int64
}

func (m *mockStatsRepo) IncrementNew(_ context.Context, category string) error {
	if m.totals == nil {
		m.totals = make(map[string]int64)
	}
	m.totals[category]++
	m.increments = append(m.increments, statDelta{category, entity.QueryOpen, 1})
	return nil
}

func (m *mockStatsRepo) Increment(_ context.Context, category, status string, delta int64) error {
	m.increments = append(m.increments, statDelta{category, status, delta})
	return nil
}

func (m *mockStatsRepo) List(context.Context) ([]*entity.QueryStat, error) { return nil, nil }

type stubCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (m *stubCustomerRepo) Create(context.Context, *entity.Customer) error { return nil }
func (m *stubCustomerRepo) GetByAccount(_ context.Context, account string) (*entity.Customer, error) {
	return m.customers[account], nil
}
func (m *stubCustomerRepo) Update(context.Context, *entity.Customer) error { return nil }
func (m *stubCustomerRepo) List(context.Context, int, string) ([]*entity.Customer, string, error) {
	return nil, "", nil
}
func (m *stubCustomerRepo) Search(context.Context, string, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (m *stubCustomerRepo) ListActiveEmails(context.Context) ([]string, error) { return nil, nil }

type recordingSMS struct {
	sent []string
	msgs []string
}

func (m *recordingSMS) Send(_ context.Context, to, msg string) error {
	m.sent = append(m.sent, to)
	m.msgs = append(m.msgs, msg)
	return nil
}

func buildQueryUC(sms *recordingSMS) (*usecase.QueryUseCase, *mockQueryRepo, *mockStatsRepo) {
	queryRepo := newMockQueryRepo()
	statsRepo := &mockStatsRepo{}
	custRepo := &stubCustomerRepo{customers: map[string]*entity.Customer{
		"ACC-001": {AccountNumber: "ACC-001", Name: "Ana Pérez", Phone: "+27115550001", Status: entity.AccountActive},
		"ACC-002": {AccountNumber: "ACC-002", Name: "Sin Teléfono", Status: entity.AccountActive},
	}}
	var sender campaign.SMSSender
	if sms != nil {
		sender = sms
	}
	uc := usecase.NewQueryUseCase(queryRepo, statsRepo, custRepo, sender, logger.Nop())
	return uc, queryRepo, statsRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Submit
// ──────────────────────────────────────────────────────────────────────────────

// La referencia generada sigue el formato Q-YYYYMMDD-XXXXXX y el contador
// "open" de la categoría se incrementa.
func TestSubmit_GeneraReferenciaEIncrementaContador(t *testing.T) {
	uc, _, statsRepo := buildQueryUC(nil)

	q, err := uc.Submit(context.Background(), dto.SubmitQueryRequest{
		AccountNumber: "ACC-001",
		Category:      entity.CategoryWater,
		Description:   "No hay agua en el sector desde ayer",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^Q-\d{8}-[0-9A-F]{6}$`), q.Reference)
	assert.Equal(t, entity.QueryOpen, q.Status)
	assert.Equal(t, "web", q.Channel, "el canal por defecto es web")

	require.Len(t, statsRepo.increments, 1)
	assert.Equal(t, statDelta{entity.CategoryWater, entity.QueryOpen, 1}, statsRepo.increments[0])
	assert.Equal(t, int64(1), statsRepo.totals[entity.CategoryWater], "el alta suma al total")
}

// La cuenta debe existir.
func TestSubmit_CuentaInexistente_RetornaNotFound(t *testing.T) {
	uc, _, _ := buildQueryUC(nil)

	_, err := uc.Submit(context.Background(), dto.SubmitQueryRequest{
		AccountNumber: "NO-EXISTE",
		Category:      entity.CategoryBilling,
		Description:   "Factura duplicada este mes",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

// El cambio de estado mueve los contadores: -1 del estado anterior, +1 del nuevo.
func TestUpdateStatus_MueveContadores(t *testing.T) {
	uc, _, statsRepo := buildQueryUC(nil)

	q, err := uc.Submit(context.Background(), dto.SubmitQueryRequest{
		AccountNumber: "ACC-001",
		Category:      entity.CategoryRefuse,
		Description:   "No pasó el camión de basura",
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), q.Reference, dto.UpdateQueryRequest{
		Status:     entity.QueryInProgress,
		AssignedTo: "agente-7",
	})
	require.NoError(t, err)

	// submit(+1 open), luego -1 open y +1 in_progress
	require.Len(t, statsRepo.increments, 3)
	assert.Equal(t, statDelta{entity.CategoryRefuse, entity.QueryOpen, -1}, statsRepo.increments[1])
	assert.Equal(t, statDelta{entity.CategoryRefuse, entity.QueryInProgress, 1}, statsRepo.increments[2])
}

// Reabrir un reclamo (in_progress → open) mueve el contador "open" pero el
// total de la categoría cuenta reclamos presentados, no transiciones: debe
// quedar en 1.
func TestUpdateStatus_ReaperturaNoSumaAlTotal(t *testing.T) {
	uc, _, statsRepo := buildQueryUC(nil)

	q, err := uc.Submit(context.Background(), dto.SubmitQueryRequest{
		AccountNumber: "ACC-001",
		Category:      entity.CategoryWater,
		Description:   "Baja presión de agua en la cuadra",
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), q.Reference, dto.UpdateQueryRequest{
		Status:     entity.QueryInProgress,
		AssignedTo: "agente-2",
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), q.Reference, dto.UpdateQueryRequest{
		Status: entity.QueryOpen,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), statsRepo.totals[entity.CategoryWater], "un único reclamo: total 1")
	// El vaivén de estados sí queda reflejado en los contadores por estado.
	require.Len(t, statsRepo.increments, 5)
	assert.Equal(t, statDelta{entity.CategoryWater, entity.QueryInProgress, -1}, statsRepo.increments[3])
	assert.Equal(t, statDelta{entity.CategoryWater, entity.QueryOpen, 1}, statsRepo.increments[4])
}

// Una consulta resuelta no puede reabrirse.
func TestUpdateStatus_ResueltaNoSeReabre(t *testing.T) {
	uc, _, _ := buildQueryUC(nil)

	q, err := uc.Submit(context.Background(), dto.SubmitQueryRequest{
		AccountNumber: "ACC-001",
		Category:      entity.CategoryOther,
		Description:   "Consulta general de prueba",
	})
	require.NoError(t, err)

	resolved, err := uc.UpdateStatus(context.Background(), q.Reference, dto.UpdateQueryRequest{
		Status:     entity.QueryResolved,
		Resolution: "Atendido en oficina",
	})
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt, "la resolución debe fijar resolved_at")

	_, err = uc.UpdateStatus(context.Background(), q.Reference, dto.UpdateQueryRequest{
		Status: entity.QueryOpen,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Repetir el mismo estado no toca los contadores.
func TestUpdateStatus_MismoEstadoNoMueveContadores(t *testing.T) {
	uc, _, statsRepo := buildQueryUC(nil)

	q, err := uc.Submit(context.Background(), dto.SubmitQueryRequest{
		AccountNumber: "ACC-001",
		Category:      entity.CategoryWater,
		Description:   "Fuga en la vía pública",
	})
	require.NoError(t, err)
	before := len(statsRepo.increments)

	_, err = uc.UpdateStatus(context.Background(), q.Reference, dto.UpdateQueryRequest{
		Status:     entity.QueryOpen,
		AssignedTo: "agente-3",
	})
	require.NoError(t, err)
	assert.Len(t, statsRepo.increments, before, "mismo estado: sin movimientos de contador")
}

// Al resolver con notify_sms el titular recibe el SMS con la referencia.
func TestUpdateStatus_ResueltaNotificaPorSMS(t *testing.T) {
	sms := &recordingSMS{}
	uc, _, _ := buildQueryUC(sms)

	q, err := uc.Submit(context.Background(), dto.SubmitQueryRequest{
		AccountNumber: "ACC-001",
		Category:      entity.CategoryElectricity,
		Description:   "Poste sin luz en la esquina",
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), q.Reference, dto.UpdateQueryRequest{
		Status:     entity.QueryResolved,
		Resolution: "Luminaria reparada",
		NotifySMS:  true,
	})
	require.NoError(t, err)

	require.Len(t, sms.sent, 1)
	assert.Equal(t, "+27115550001", sms.sent[0])
	assert.Contains(t, sms.msgs[0], q.Reference)
}

// Titular sin teléfono: la notificación se omite sin fallar la operación.
func TestUpdateStatus_TitularSinTelefono_OmiteSMS(t *testing.T) {
	sms := &recordingSMS{}
	uc, _, _ := buildQueryUC(sms)

	q, err := uc.Submit(context.Background(), dto.SubmitQueryRequest{
		AccountNumber: "ACC-002",
		Category:      entity.CategoryBilling,
		Description:   "Cobro duplicado en la factura",
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), q.Reference, dto.UpdateQueryRequest{
		Status:    entity.QueryResolved,
		NotifySMS: true,
	})
	require.NoError(t, err)
	assert.Empty(t, sms.sent, "sin teléfono no debe enviarse SMS")
}
