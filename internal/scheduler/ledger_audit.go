// Package scheduler contém os serviços de agendamento em background
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stockly-api/internal/config"
	"github.com/vfg2006/stockly-api/internal/domain"
)

// LedgerAuditor recalcula o faturamento esperado a partir dos pedidos
type LedgerAuditor interface {
	AuditLedger(ctx context.Context) ([]domain.LedgerDrift, error)
}

// ClampCounter expõe quantas reversões foram limitadas a zero
type ClampCounter interface {
	ClampCount() int64
}

type LedgerAuditConfig struct {
	CronSchedule string
	AuditEnabled bool
}

type LedgerAuditService struct {
	scheduler            *gocron.Scheduler
	auditor              LedgerAuditor
	clamps               ClampCounter
	config               LedgerAuditConfig
	auditRunning         bool
	auditMutex           sync.Mutex
	lastAuditStartedAt   time.Time
	lastAuditCompletedAt time.Time
	lastDrifts           []domain.LedgerDrift
	lastError            error
}

func NewLedgerAuditService(auditor LedgerAuditor, clamps ClampCounter, cfg *config.Config) *LedgerAuditService {
	auditConfig := LedgerAuditConfig{
		CronSchedule: cfg.LedgerAudit.CronSchedule, // Default: 2h30 da manhã todos os dias
		AuditEnabled: cfg.LedgerAudit.Enabled,      // Default: desabilitado
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": auditConfig.CronSchedule,
	}).Info("Configuração do agendador de auditoria do faturamento carregada")

	return &LedgerAuditService{
		scheduler: gocron.NewScheduler(time.UTC),
		auditor:   auditor,
		clamps:    clamps,
		config:    auditConfig,
	}
}

func (s *LedgerAuditService) Start(ctx context.Context) error {
	if !s.config.AuditEnabled {
		logrus.Info("Cron de auditoria do faturamento desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de auditoria do faturamento")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunAudit(ctx); err != nil {
			logrus.WithError(err).Error("Erro na auditoria do faturamento")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar auditoria do faturamento: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de auditoria do faturamento")
		s.scheduler.Stop()
	}()

	return nil
}

// RunAudit compara o faturamento com as contribuições dos pedidos e registra as divergências
func (s *LedgerAuditService) RunAudit(ctx context.Context) error {
	s.auditMutex.Lock()
	if s.auditRunning {
		s.auditMutex.Unlock()
		logrus.Warn("Auditoria do faturamento já está em execução")
		return nil
	}
	s.auditRunning = true
	s.lastAuditStartedAt = time.Now()
	s.auditMutex.Unlock()

	drifts, err := s.auditor.AuditLedger(ctx)

	s.auditMutex.Lock()
	s.auditRunning = false
	s.lastAuditCompletedAt = time.Now()
	s.lastError = err
	if err == nil {
		s.lastDrifts = drifts
	}
	s.auditMutex.Unlock()

	if err != nil {
		return err
	}

	for _, drift := range drifts {
		logrus.WithFields(logrus.Fields{
			"owner_id":        drift.OwnerID,
			"period":          drift.Period.String(),
			"ledger_revenue":  drift.Ledger.StringFixed(2),
			"ledger_expected": drift.Expected.StringFixed(2),
			"ledger_diff":     drift.Difference().StringFixed(2),
		}).Warn("Divergência no faturamento mensal")
	}

	logrus.WithField("drifts", len(drifts)).Info("Auditoria do faturamento concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma auditoria em background
func (s *LedgerAuditService) TriggerManualSync() {
	s.auditMutex.Lock()
	if s.auditRunning {
		s.auditMutex.Unlock()
		logrus.Info("Auditoria do faturamento já em andamento, ignorando solicitação manual")
		return
	}
	s.auditMutex.Unlock()

	logrus.Info("Iniciando auditoria manual do faturamento")
	go func() {
		if err := s.RunAudit(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na auditoria manual do faturamento")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *LedgerAuditService) GetStatus() map[string]any {
	s.auditMutex.Lock()
	defer s.auditMutex.Unlock()

	status := map[string]any{
		"audit_enabled":           s.config.AuditEnabled,
		"audit_cron":              s.config.CronSchedule,
		"audit_running":           s.auditRunning,
		"last_audit_started_at":   s.lastAuditStartedAt,
		"last_audit_completed_at": s.lastAuditCompletedAt,
		"drifts":                  s.lastDrifts,
	}
	if s.clamps != nil {
		status["clamped_reversals"] = s.clamps.ClampCount()
	}
	if s.lastError != nil {
		status["last_error"] = s.lastError.Error()
	}

	return status
}
