// services/lembrete_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nmalls-recorrencia/config"
	"nmalls-recorrencia/logger"
	"nmalls-recorrencia/models"
	"nmalls-recorrencia/utils"
)

const (
	LembreteEnviado = "enviado"
	LembreteFalhou  = "falhou"
)

// Recorder is notified of every reminder attempt.
type Recorder interface {
	ReminderSent(canal, status string)
}

// Resultado summarises one reminder run.
type Resultado struct {
	Enviados int
	Falhas   int
	Pulados  int
}

type LembreteService struct {
	db       *gorm.DB
	notifier Notifier
	recorder Recorder
	cfg      config.ReminderConfig
	now      func() time.Time
}

func NewLembreteService(db *gorm.DB, cfg config.ReminderConfig, notifier Notifier, recorder Recorder) *LembreteService {
	if cfg.Template == "" {
		cfg.Template = config.DefaultReminderTemplate
	}
	return &LembreteService{
		db:       db,
		notifier: notifier,
		recorder: recorder,
		cfg:      cfg,
		now:      time.Now,
	}
}

// StartScheduler registers the reminder job on cfg.Cron and starts it.
// The caller stops the returned scheduler on shutdown.
func (s *LembreteService) StartScheduler() (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(s.cfg.Cron, func() {
		if _, err := s.EnviarLembretes(context.Background()); err != nil {
			logger.Logger.Error().Err(err).Msg("Reminder run failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule reminders %q: %w", s.cfg.Cron, err)
	}

	c.Start()
	logger.Logger.Info().Str("cron", s.cfg.Cron).Int("lead_days", s.cfg.LeadDays).Msg("Reminder scheduler started")
	return c, nil
}

// EnviarLembretes notifies the clients of every active recurrence due
// between today and today plus the lead days. A recurrence already
// notified for the same due date is skipped; failed attempts are retried
// on the next run.
func (s *LembreteService) EnviarLembretes(ctx context.Context) (Resultado, error) {
	var res Resultado

	today := models.DateOf(s.now())
	until := today.AddDays(s.cfg.LeadDays)

	var recorrencias []models.Recorrencia
	if err := s.db.WithContext(ctx).
		Preload("Cliente").
		Where("status = ?", models.StatusAtiva).
		Where("proxima_compra >= ? AND proxima_compra <= ?", today, until).
		Order("proxima_compra asc").
		Find(&recorrencias).Error; err != nil {
		return res, fmt.Errorf("load due recurrences: %w", err)
	}

	logger.Logger.Info().Int("count", len(recorrencias)).Msg("Starting reminder processing")

	for _, rec := range recorrencias {
		sent, err := s.jaNotificada(ctx, rec)
		if err != nil {
			return res, err
		}
		if sent || rec.Cliente == nil || strings.TrimSpace(rec.Cliente.Telefone) == "" {
			res.Pulados++
			continue
		}

		if s.enviar(ctx, rec) {
			res.Enviados++
		} else {
			res.Falhas++
		}
	}

	logger.Logger.Info().
		Int("enviados", res.Enviados).
		Int("falhas", res.Falhas).
		Int("pulados", res.Pulados).
		Msg("Reminder processing completed")
	return res, nil
}

func (s *LembreteService) jaNotificada(ctx context.Context, rec models.Recorrencia) (bool, error) {
	var log models.LembreteLog
	err := s.db.WithContext(ctx).
		Select("id").
		Where("recorrencia_id = ? AND proxima_compra = ? AND status = ?", rec.ID, rec.ProximaCompra, LembreteEnviado).
		First(&log).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("lookup reminder log: %w", err)
}

func (s *LembreteService) enviar(ctx context.Context, rec models.Recorrencia) bool {
	mensagem := RenderMensagem(s.cfg.Template, rec.Cliente.Nome, rec.ProximaCompra, rec.ValorTotal)
	canal, to := Destino(rec.Cliente.Telefone)

	status := LembreteEnviado
	erro := ""
	sid, err := s.notifier.Send(canal, to, mensagem)
	if err != nil {
		logger.Logger.Error().Err(err).Str("cliente_id", rec.ClienteID.String()).Str("canal", canal).Msg("Failed to send reminder")
		status = LembreteFalhou
		erro = err.Error()
	} else {
		logger.Logger.Info().Str("cliente_id", rec.ClienteID.String()).Str("canal", canal).Str("sid", sid).Msg("Reminder sent")
	}

	entry := models.LembreteLog{
		RecorrenciaID: rec.ID,
		ClienteID:     rec.ClienteID,
		ProximaCompra: rec.ProximaCompra,
		Canal:         canal,
		Mensagem:      mensagem,
		Status:        status,
		Erro:          erro,
		EnviadoEm:     s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		logger.Logger.Error().Err(err).Str("recorrencia_id", rec.ID.String()).Msg("Failed to log reminder")
	}

	if s.recorder != nil {
		s.recorder.ReminderSent(canal, status)
	}
	return status == LembreteEnviado
}

// RenderMensagem fills the [NomeCliente], [DataCompra] and [ValorTotal]
// placeholders. The value is written without currency symbol.
func RenderMensagem(template, nome string, data models.Date, valor decimal.Decimal) string {
	return strings.NewReplacer(
		"[NomeCliente]", nome,
		"[DataCompra]", utils.FormatDate(data.Time()),
		"[ValorTotal]", strings.TrimPrefix(utils.FormatCurrency(valor), "R$ "),
	).Replace(template)
}
