package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stockly-api/internal/config"
	"github.com/vfg2006/stockly-api/internal/domain"
)

type stubAuditor struct {
	drifts []domain.LedgerDrift
	err    error
	calls  int
}

func (a *stubAuditor) AuditLedger(context.Context) ([]domain.LedgerDrift, error) {
	a.calls++
	return a.drifts, a.err
}

type stubClamps int64

func (c stubClamps) ClampCount() int64 { return int64(c) }

func newAuditConfig(enabled bool) *config.Config {
	return &config.Config{LedgerAudit: config.LedgerAudit{CronSchedule: "30 2 * * *", Enabled: enabled}}
}

func TestLedgerAuditService_RunAudit(t *testing.T) {
	drift := domain.LedgerDrift{
		OwnerID:  1,
		Period:   domain.Period{Year: 2025, Month: time.March},
		Ledger:   decimal.RequireFromString("10"),
		Expected: decimal.RequireFromString("25.5"),
	}

	tests := []struct {
		name       string
		auditor    *stubAuditor
		wantErr    bool
		wantDrifts int
	}{
		{
			name:       "Deve registrar divergências encontradas",
			auditor:    &stubAuditor{drifts: []domain.LedgerDrift{drift}},
			wantDrifts: 1,
		},
		{
			name:       "Sem divergências o status fica vazio",
			auditor:    &stubAuditor{drifts: []domain.LedgerDrift{}},
			wantDrifts: 0,
		},
		{
			name:    "Erro do auditor aparece no status",
			auditor: &stubAuditor{err: errors.New("banco indisponível")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewLedgerAuditService(tt.auditor, stubClamps(3), newAuditConfig(false))

			err := service.RunAudit(context.Background())

			status := service.GetStatus()
			assert.Equal(t, int64(3), status["clamped_reversals"])
			assert.Equal(t, false, status["audit_running"])

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "banco indisponível", status["last_error"])
				return
			}

			require.NoError(t, err)
			assert.Len(t, status["drifts"], tt.wantDrifts)
			assert.Equal(t, 1, tt.auditor.calls)
		})
	}
}

func TestLedgerAuditService_StartDisabled(t *testing.T) {
	auditor := &stubAuditor{}
	service := NewLedgerAuditService(auditor, nil, newAuditConfig(false))

	require.NoError(t, service.Start(context.Background()))
	assert.Zero(t, auditor.calls)
	assert.NotContains(t, service.GetStatus(), "clamped_reversals")
}

func TestLedgerAuditService_StartInvalidCron(t *testing.T) {
	cfg := newAuditConfig(true)
	cfg.LedgerAudit.CronSchedule = "isso não é cron"

	service := NewLedgerAuditService(&stubAuditor{}, nil, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, service.Start(ctx))
}
