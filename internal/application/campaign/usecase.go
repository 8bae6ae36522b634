package campaign

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/domain"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
	"github.com/tu-usuario/municare-api/pkg/logger"
)

// concurrencia máxima de llamadas simultáneas al proveedor dentro de un lote
const sendConcurrency = 8

// Config parámetros de campañas.
type Config struct {
	BatchSize int // destinatarios por lote de envío
}

// CampaignUseCase campañas masivas de email y SMS: dedupe de destinatarios,
// envío por lotes, registro por destinatario en emailLogs y resumen en emailBatches.
// Los fallos individuales se cuentan, no se reintentan (el proveedor ya reintenta
// a su nivel); solo la escritura por lotes a la base documental reintenta.
type CampaignUseCase struct {
	msgRepo      repository.MessagingRepository
	customerRepo repository.CustomerRepository
	emailSender  EmailSender
	smsSender    SMSSender
	cfg          Config
	log          *logger.Logger
}

// NewCampaignUseCase construye el caso de uso.
func NewCampaignUseCase(
	msgRepo repository.MessagingRepository,
	customerRepo repository.CustomerRepository,
	emailSender EmailSender,
	smsSender SMSSender,
	cfg Config,
	log *logger.Logger,
) *CampaignUseCase {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &CampaignUseCase{
		msgRepo:      msgRepo,
		customerRepo: customerRepo,
		emailSender:  emailSender,
		smsSender:    smsSender,
		cfg:          cfg,
		log:          log,
	}
}

// SendEmails ejecuta la campaña de correo (POST /api/send-emails).
func (uc *CampaignUseCase) SendEmails(ctx context.Context, initiatedBy string, in dto.SendEmailsRequest) (*dto.CampaignResultResponse, error) {
	if uc.emailSender == nil {
		return nil, domain.ErrProviderDisabled
	}
	recipients := in.Recipients
	if in.AllActive {
		var err error
		recipients, err = uc.customerRepo.ListActiveEmails(ctx)
		if err != nil {
			return nil, err
		}
	}
	recipients = dedupe(recipients)
	if len(recipients) == 0 {
		return nil, domain.ErrNoRecipients
	}

	send := func(ctx context.Context, to string) error {
		return uc.emailSender.Send(ctx, to, in.Subject, in.HTMLBody, in.TextBody)
	}
	return uc.run(ctx, entity.ChannelEmail, in.Subject, initiatedBy, recipients, send)
}

// SendSMS ejecuta una campaña corta de SMS.
func (uc *CampaignUseCase) SendSMS(ctx context.Context, initiatedBy string, in dto.SendSMSRequest) (*dto.CampaignResultResponse, error) {
	if uc.smsSender == nil {
		return nil, domain.ErrProviderDisabled
	}
	recipients := dedupe(in.Recipients)
	if len(recipients) == 0 {
		return nil, domain.ErrNoRecipients
	}

	send := func(ctx context.Context, to string) error {
		return uc.smsSender.Send(ctx, to, in.Message)
	}
	// El corte es por runas: un mensaje con tildes no debe dejar un asunto
	// con UTF-8 inválido en emailBatches.
	subject := in.Message
	if r := []rune(subject); len(r) > 60 {
		subject = string(r[:60])
	}
	return uc.run(ctx, entity.ChannelSMS, subject, initiatedBy, recipients, send)
}

// ListBatches histórico de campañas.
func (uc *CampaignUseCase) ListBatches(ctx context.Context, limit int) ([]dto.BatchResponse, error) {
	batches, err := uc.msgRepo.ListBatches(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.BatchResponse{
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
	return out, nil
}

// ListLogs resultados por destinatario de una campaña.
func (uc *CampaignUseCase) ListLogs(ctx context.Context, batchID string, limit int) ([]dto.SendLogResponse, error) {
	logs, err := uc.msgRepo.ListLogsByBatch(ctx, batchID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SendLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.SendLogResponse{
			Recipient: l.Recipient,
			Channel:   l.Channel,
			Status:    l.Status,
			Error:     l.Error,
			SentAt:    l.SentAt,
		})
	}
	return out, nil
}

// run motor común: crea el batch, envía por lotes con concurrencia acotada,
// persiste los logs de cada lote y cierra el batch con los totales.
func (uc *CampaignUseCase) run(
	ctx context.Context,
	channel, subject, initiatedBy string,
	recipients []string,
	send func(ctx context.Context, to string) error,
) (*dto.CampaignResultResponse, error) {
	start := time.Now()
	batch := &entity.EmailBatch{
		ID:          uuid.New().String(),
		Subject:     subject,
		Channel:     channel,
		InitiatedBy: initiatedBy,
		Recipients:  len(recipients),
		CreatedAt:   start,
	}
	if err := uc.msgRepo.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	var sent, failed int
	for from := 0; from < len(recipients); from += uc.cfg.BatchSize {
		to := from + uc.cfg.BatchSize
		if to > len(recipients) {
			to = len(recipients)
		}
		chunk := recipients[from:to]

		logs := make([]*entity.EmailLog, len(chunk))
		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(sendConcurrency)
		for i, recipient := range chunk {
			i, recipient := i, recipient
			g.Go(func() error {
				entry := &entity.EmailLog{
					BatchID:   batch.ID,
					Recipient: recipient,
					Channel:   channel,
					Status:    entity.SendOK,
					SentAt:    time.Now(),
				}
				if err := send(gctx, recipient); err != nil {
					entry.Status = entity.SendFailed
					entry.Error = err.Error()
					mu.Lock()
					failed++
					mu.Unlock()
				} else {
					mu.Lock()
					sent++
					mu.Unlock()
				}
				logs[i] = entry
				return nil // el fallo por destinatario no corta la campaña
			})
		}
		_ = g.Wait()

		if logFailed, err := uc.msgRepo.PutLogs(ctx, logs); err != nil {
			uc.log.Error().Err(err).Str("batch_id", batch.ID).Msg("no se pudieron escribir los logs del lote")
		} else if logFailed > 0 {
			uc.log.Warn().Int("failed", logFailed).Str("batch_id", batch.ID).Msg("logs de envío no escritos")
		}

		uc.log.Info().
			Str("batch_id", batch.ID).
			Str("channel", channel).
			Int("from", from).Int("to", to).
			Int("sent", sent).Int("failed", failed).
			Msg("lote de campaña procesado")
	}

	batch.Sent = sent
	batch.Failed = failed
	batch.DurationMs = time.Since(start).Milliseconds()
	if err := uc.msgRepo.UpdateBatch(ctx, batch); err != nil {
		uc.log.Error().Err(err).Str("batch_id", batch.ID).Msg("no se pudo cerrar el batch")
	}

	return &dto.CampaignResultResponse{
		BatchID:    batch.ID,
		Recipients: len(recipients),
		Sent:       sent,
		Failed:     failed,
		DurationMs: batch.DurationMs,
	}, nil
}

// dedupe normaliza y elimina duplicados conservando el orden de llegada.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
