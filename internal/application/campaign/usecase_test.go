package campaign_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/municare-api/internal/application/campaign"
	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/domain"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks en memoria
// ──────────────────────────────────────────────────────────────────────────────

type mockMsgRepo struct {
	mu      sync.Mutex
	batches map[string]*entity.EmailBatch
	logs    []*entity.EmailLog
	puts    int // llamadas a PutLogs (una por lote)
}

func newMockMsgRepo() *mockMsgRepo {
	return &mockMsgRepo{batches: make(map[string]*entity.EmailBatch)}
}

func (m *mockMsgRepo) CreateBatch(_ context.Context, b *entity.EmailBatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.batches[b.ID] = &cp
	return nil
}

func (m *mockMsgRepo) UpdateBatch(_ context.Context, b *entity.EmailBatch) error {
	return m.CreateBatch(context.Background(), b)
}

func (m *mockMsgRepo) ListBatches(_ context.Context, _ int) ([]*entity.EmailBatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.EmailBatch, 0, len(m.batches))
	for _, b := range m.batches {
		out = append(out, b)
	}
	return out, nil
}

func (m *mockMsgRepo) PutLogs(_ context.Context, logs []*entity.EmailLog) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.logs = append(m.logs, logs...)
	return 0, nil
}

func (m *mockMsgRepo) ListLogsByBatch(_ context.Context, batchID string, _ int) ([]*entity.EmailLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.EmailLog
	for _, l := range m.logs {
		if l.BatchID == batchID {
			out = append(out, l)
		}
	}
	return out, nil
}

type mockCustomerRepo struct {
	activeEmails []string
}

func (m *mockCustomerRepo) Create(context.Context, *entity.Customer) error { return nil }
func (m *mockCustomerRepo) GetByAccount(context.Context, string) (*entity.Customer, error) {
	return nil, nil
}
func (m *mockCustomerRepo) Update(context.Context, *entity.Customer) error { return nil }
func (m *mockCustomerRepo) List(context.Context, int, string) ([]*entity.Customer, string, error) {
	return nil, "", nil
}
func (m *mockCustomerRepo) Search(context.Context, string, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (m *mockCustomerRepo) ListActiveEmails(context.Context) ([]string, error) {
	return m.activeEmails, nil
}

// mockSender falla para los destinatarios marcados; registra cada envío.
type mockSender struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func (m *mockSender) Send(_ context.Context, to, _, _, _ string) error {
	m.mu.Lock()
	m.sent = append(m.sent, to)
	fail := m.failFor[to]
	m.mu.Unlock()
	if fail {
		return errors.New("proveedor rechazó el mensaje")
	}
	return nil
}

type mockSMSSender struct {
	mu   sync.Mutex
	sent []string
}

func (m *mockSMSSender) Send(_ context.Context, to, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func newUC(msgRepo *mockMsgRepo, custRepo *mockCustomerRepo, email campaign.EmailSender, sms campaign.SMSSender, batchSize int) *campaign.CampaignUseCase {
	return campaign.NewCampaignUseCase(msgRepo, custRepo, email, sms,
		campaign.Config{BatchSize: batchSize}, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SendEmails
// ──────────────────────────────────────────────────────────────────────────────

// Campaña exitosa: todos los destinatarios enviados, un log por destinatario
// y el batch cerrado con los totales.
func TestSendEmails_TodosEnviados(t *testing.T) {
	msgRepo := newMockMsgRepo()
	sender := &mockSender{}
	uc := newUC(msgRepo, &mockCustomerRepo{}, sender, nil, 100)

	res, err := uc.SendEmails(context.Background(), "admin-1", dto.SendEmailsRequest{
		Subject:    "Corte programado",
		HTMLBody:   "<p>Aviso</p>",
		Recipients: []string{"a@municipio.test", "b@municipio.test", "c@municipio.test"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Recipients)
	assert.Equal(t, 3, res.Sent)
	assert.Equal(t, 0, res.Failed)
	assert.Len(t, msgRepo.logs, 3, "debe haber un log por destinatario")

	batch := msgRepo.batches[res.BatchID]
	require.NotNil(t, batch, "el batch debe quedar persistido")
	assert.Equal(t, 3, batch.Sent)
	assert.Equal(t, "admin-1", batch.InitiatedBy)
	assert.Equal(t, entity.ChannelEmail, batch.Channel)
}

// Un fallo por destinatario se cuenta y se registra, pero no corta la campaña.
func TestSendEmails_FalloIndividualNoAbortaCampana(t *testing.T) {
	msgRepo := newMockMsgRepo()
	sender := &mockSender{failFor: map[string]bool{"malo@municipio.test": true}}
	uc := newUC(msgRepo, &mockCustomerRepo{}, sender, nil, 100)

	res, err := uc.SendEmails(context.Background(), "admin-1", dto.SendEmailsRequest{
		Subject:    "Aviso",
		TextBody:   "texto",
		Recipients: []string{"ok@municipio.test", "malo@municipio.test", "ok2@municipio.test"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 1, res.Failed)

	var failedLogs int
	for _, l := range msgRepo.logs {
		if l.Status == entity.SendFailed {
			failedLogs++
			assert.Equal(t, "malo@municipio.test", l.Recipient)
			assert.NotEmpty(t, l.Error, "el log fallido debe incluir el mensaje de error")
		}
	}
	assert.Equal(t, 1, failedLogs)
}

// Los duplicados (con mayúsculas y espacios) se eliminan antes de enviar.
func TestSendEmails_DeduplicaDestinatarios(t *testing.T) {
	msgRepo := newMockMsgRepo()
	sender := &mockSender{}
	uc := newUC(msgRepo, &mockCustomerRepo{}, sender, nil, 100)

	res, err := uc.SendEmails(context.Background(), "admin-1", dto.SendEmailsRequest{
		Subject:  "Aviso",
		TextBody: "texto",
		Recipients: []string{
			"uno@municipio.test",
			" UNO@municipio.test ",
			"dos@municipio.test",
			"uno@municipio.test",
			"",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Recipients, "tras dedupe deben quedar 2 destinatarios")
	assert.Len(t, sender.sent, 2)
}

// AllActive usa los emails de las cuentas activas e ignora Recipients.
func TestSendEmails_AllActiveUsaCuentasActivas(t *testing.T) {
	msgRepo := newMockMsgRepo()
	sender := &mockSender{}
	custRepo := &mockCustomerRepo{activeEmails: []string{"x@municipio.test", "y@municipio.test"}}
	uc := newUC(msgRepo, custRepo, sender, nil, 100)

	res, err := uc.SendEmails(context.Background(), "admin-1", dto.SendEmailsRequest{
		Subject:    "Aviso general",
		TextBody:   "texto",
		Recipients: []string{"ignorado@municipio.test"},
		AllActive:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Recipients)
	assert.NotContains(t, sender.sent, "ignorado@municipio.test")
}

// Sin destinatarios (tras dedupe) la campaña no se crea.
func TestSendEmails_SinDestinatarios_RetornaError(t *testing.T) {
	msgRepo := newMockMsgRepo()
	uc := newUC(msgRepo, &mockCustomerRepo{}, &mockSender{}, nil, 100)

	_, err := uc.SendEmails(context.Background(), "admin-1", dto.SendEmailsRequest{
		Subject:    "Aviso",
		TextBody:   "texto",
		Recipients: []string{"", "   "},
	})
	assert.ErrorIs(t, err, domain.ErrNoRecipients)
	assert.Empty(t, msgRepo.batches, "no debe crearse ningún batch")
}

// Con BatchSize 2 y 5 destinatarios deben procesarse 3 lotes (2+2+1) y
// escribirse los logs una vez por lote.
func TestSendEmails_TroceaPorLotes(t *testing.T) {
	msgRepo := newMockMsgRepo()
	sender := &mockSender{}
	uc := newUC(msgRepo, &mockCustomerRepo{}, sender, nil, 2)

	recipients := []string{"a@m.test", "b@m.test", "c@m.test", "d@m.test", "e@m.test"}
	res, err := uc.SendEmails(context.Background(), "admin-1", dto.SendEmailsRequest{
		Subject:    "Aviso",
		TextBody:   "texto",
		Recipients: recipients,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Sent)
	assert.Equal(t, 3, msgRepo.puts, "PutLogs debe llamarse una vez por lote")
	assert.Len(t, msgRepo.logs, 5)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SendSMS
// ──────────────────────────────────────────────────────────────────────────────

func TestSendSMS_EnviaYRegistraCanal(t *testing.T) {
	msgRepo := newMockMsgRepo()
	sms := &mockSMSSender{}
	uc := newUC(msgRepo, &mockCustomerRepo{}, &mockSender{}, sms, 100)

	res, err := uc.SendSMS(context.Background(), "admin-1", dto.SendSMSRequest{
		Message:    "Corte de agua el lunes en su sector.",
		Recipients: []string{"+27115550001", "+27115550002"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Sent)
	for _, l := range msgRepo.logs {
		assert.Equal(t, entity.ChannelSMS, l.Channel)
	}
}

// El asunto del batch SMS se trunca a 60 caracteres del mensaje. El corte es
// por runas: con tildes de por medio no puede quedar UTF-8 inválido.
func TestSendSMS_AsuntoTruncado(t *testing.T) {
	msgRepo := newMockMsgRepo()
	sms := &mockSMSSender{}
	uc := newUC(msgRepo, &mockCustomerRepo{}, &mockSender{}, sms, 100)

	long := strings.Repeat("lámpara ", 15) // 120 runas, con tildes
	res, err := uc.SendSMS(context.Background(), "admin-1", dto.SendSMSRequest{
		Message:    long,
		Recipients: []string{"+27115550001"},
	})
	require.NoError(t, err)

	batch := msgRepo.batches[res.BatchID]
	require.NotNil(t, batch)
	assert.Equal(t, 60, utf8.RuneCountInString(batch.Subject))
	assert.True(t, utf8.ValidString(batch.Subject), "el truncado no debe partir una runa")
	assert.True(t, strings.HasPrefix(long, batch.Subject))
}

// Sin proveedor de SMS configurado la campaña se rechaza de entrada.
func TestSendSMS_ProveedorDeshabilitado(t *testing.T) {
	msgRepo := newMockMsgRepo()
	uc := newUC(msgRepo, &mockCustomerRepo{}, &mockSender{}, nil, 100)

	_, err := uc.SendSMS(context.Background(), "admin-1", dto.SendSMSRequest{
		Message:    "hola",
		Recipients: []string{"+27115550001"},
	})
	assert.ErrorIs(t, err, domain.ErrProviderDisabled)
}
